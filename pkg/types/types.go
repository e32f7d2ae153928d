// Package domain defines the core business types for shelfmatch.
package domain

import "time"

// Product is a logical grocery product ("semi-skimmed milk") that may be
// packaged differently by each store carrying it.
type Product struct {
	ID        string    `json:"id"         db:"id"`
	Name      string    `json:"name"       db:"name"`
	Category  string    `json:"category"   db:"category"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// Entry is one store's packaging of a product: the raw size string as the
// catalog supplied it, the shelf price, and the size fields derived from
// parsing. Derived fields are nil when the size text does not parse; the
// entry stays in the catalog but carries no comparable value.
type Entry struct {
	ID        string `json:"id"         db:"id"`
	ProductID string `json:"product_id" db:"product_id"`
	Store     string `json:"store"      db:"store"`

	// Catalog-supplied fields. SizeText is free text and must never be
	// assumed pre-validated.
	SizeText string  `json:"size_text" db:"size_text"`
	Price    float64 `json:"price"     db:"price"`
	Currency string  `json:"currency"  db:"currency"`

	// Derived from SizeText.
	SizeDisplay     *string  `json:"size_display,omitempty"     db:"size_display"`
	SizeCategory    *string  `json:"size_category,omitempty"    db:"size_category"`
	NormalizedValue *float64 `json:"normalized_value,omitempty" db:"normalized_value"`
	PricePerUnit    *float64 `json:"price_per_unit,omitempty"   db:"price_per_unit"`

	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// Comparable reports whether the entry carries the derived values needed
// for value comparison and size matching.
func (e *Entry) Comparable() bool {
	return e.NormalizedValue != nil && e.PricePerUnit != nil
}

// DerivedSize holds the size fields recomputed from an entry's size text.
// All fields nil means the size text did not parse.
type DerivedSize struct {
	SizeDisplay     *string
	SizeCategory    *string
	NormalizedValue *float64
	PricePerUnit    *float64
}

// RankedEntry is one entry in a best-value ranking, with its formatted
// unit price.
type RankedEntry struct {
	Entry        Entry  `json:"entry"`
	UnitPriceStr string `json:"unit_price"`
}

// BestValue is the result of ranking a product's entries by unit price.
// Skipped counts entries excluded because their size text did not parse;
// a high skip count means the ranking is running on partial data.
type BestValue struct {
	ProductID string        `json:"product_id"`
	Ranked    []RankedEntry `json:"ranked"`
	Skipped   int           `json:"skipped"`
}

// JobRun records a single execution of a scheduled job.
type JobRun struct {
	ID           string     `json:"id"                      db:"id"`
	JobName      string     `json:"job_name"                db:"job_name"`
	StartedAt    time.Time  `json:"started_at"              db:"started_at"`
	CompletedAt  *time.Time `json:"completed_at,omitempty"  db:"completed_at"`
	Status       string     `json:"status"                  db:"status"`
	ErrorText    string     `json:"error_text,omitempty"    db:"error_text"`
	RowsAffected *int       `json:"rows_affected,omitempty" db:"rows_affected"`
}

// Job status constants.
const (
	JobStatusRunning   = "running"
	JobStatusSucceeded = "succeeded"
	JobStatusFailed    = "failed"
)
