package store

import (
	"fmt"
	"strings"
)

const (
	defaultLimit = 50
	maxLimit     = 500

	orderByName         = "name"
	orderByCreatedAt    = "created_at"
	orderByPricePerUnit = "price_per_unit"
	orderByPrice        = "price"
	orderByUpdatedAt    = "updated_at"
)

// validProductOrderBy maps allowed OrderBy values to their SQL column expressions.
var validProductOrderBy = map[string]string{
	orderByName:      "name ASC",
	orderByCreatedAt: "created_at DESC",
}

const defaultProductOrderBy = "created_at DESC"

// validEntryOrderBy maps allowed OrderBy values to their SQL column expressions.
var validEntryOrderBy = map[string]string{
	orderByPricePerUnit: "price_per_unit ASC NULLS LAST",
	orderByPrice:        "price ASC",
	orderByUpdatedAt:    "updated_at DESC",
}

const defaultEntryOrderBy = "updated_at DESC"

const baseProductsSelect = `SELECT id, name, COALESCE(category, ''), created_at, updated_at
FROM products`

const countProductsSelect = "SELECT COUNT(*) FROM products"

const baseEntriesSelect = `SELECT id, product_id, store, size_text, price, currency,
	size_display, size_category, normalized_value, price_per_unit,
	created_at, updated_at
FROM entries`

const countEntriesSelect = "SELECT COUNT(*) FROM entries"

// ToSQL builds the WHERE clause, ORDER BY, LIMIT, and OFFSET for a product query.
// It returns two SQL strings (one for the data query, one for the count query)
// and the positional parameters.
func (q *ProductQuery) ToSQL() (dataSQL, countSQL string, args []any) {
	var conditions []string
	paramIdx := 1

	if q.Category != nil {
		conditions = append(conditions, fmt.Sprintf("category = $%d", paramIdx))
		args = append(args, *q.Category)
		paramIdx++
	}

	if q.NameLike != nil {
		conditions = append(conditions, fmt.Sprintf("name ILIKE $%d", paramIdx))
		args = append(args, "%"+*q.NameLike+"%")
		paramIdx++
	}

	var whereClause string
	if len(conditions) > 0 {
		whereClause = " WHERE " + strings.Join(conditions, " AND ")
	}

	orderClause := defaultProductOrderBy
	if q.OrderBy != "" {
		if col, ok := validProductOrderBy[q.OrderBy]; ok {
			orderClause = col
		}
	}

	limit, offset := clampPage(q.Limit, q.Offset)

	dataSQL = fmt.Sprintf(
		"%s%s ORDER BY %s LIMIT %d OFFSET %d",
		baseProductsSelect, whereClause, orderClause, limit, offset,
	)

	countSQL = countProductsSelect + whereClause

	return dataSQL, countSQL, args
}

// ToSQL builds the WHERE clause, ORDER BY, LIMIT, and OFFSET for an entry query.
func (q *EntryQuery) ToSQL() (dataSQL, countSQL string, args []any) {
	var conditions []string
	paramIdx := 1

	if q.ProductID != nil {
		conditions = append(conditions, fmt.Sprintf("product_id = $%d", paramIdx))
		args = append(args, *q.ProductID)
		paramIdx++
	}

	if q.Store != nil {
		conditions = append(conditions, fmt.Sprintf("store = $%d", paramIdx))
		args = append(args, *q.Store)
		paramIdx++
	}

	if q.SizeCategory != nil {
		conditions = append(conditions, fmt.Sprintf("size_category = $%d", paramIdx))
		args = append(args, *q.SizeCategory)
		paramIdx++
	}

	if q.Comparable != nil {
		if *q.Comparable {
			conditions = append(conditions, "normalized_value IS NOT NULL AND price_per_unit IS NOT NULL")
		} else {
			conditions = append(conditions, "(normalized_value IS NULL OR price_per_unit IS NULL)")
		}
	}

	var whereClause string
	if len(conditions) > 0 {
		whereClause = " WHERE " + strings.Join(conditions, " AND ")
	}

	orderClause := defaultEntryOrderBy
	if q.OrderBy != "" {
		if col, ok := validEntryOrderBy[q.OrderBy]; ok {
			orderClause = col
		}
	}

	limit, offset := clampPage(q.Limit, q.Offset)

	dataSQL = fmt.Sprintf(
		"%s%s ORDER BY %s LIMIT %d OFFSET %d",
		baseEntriesSelect, whereClause, orderClause, limit, offset,
	)

	countSQL = countEntriesSelect + whereClause

	return dataSQL, countSQL, args
}

func clampPage(limit, offset int) (int, int) {
	if limit <= 0 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}
	return limit, max(offset, 0)
}
