package store

// SQL query constants organized by entity. PostgresStore methods reference
// these constants rather than carrying inline SQL.

// Product queries.
const (
	queryCreateProduct = `
		INSERT INTO products (name, category, created_at, updated_at)
		VALUES (@name, @category, now(), now())
		RETURNING id, created_at, updated_at`

	queryGetProduct = `
		SELECT id, name, COALESCE(category, ''), created_at, updated_at
		FROM products
		WHERE id = $1`

	queryUpdateProduct = `
		UPDATE products SET
			name = @name,
			category = @category,
			updated_at = now()
		WHERE id = @id`

	queryDeleteProduct = `DELETE FROM products WHERE id = $1`
)

// Entry queries.
const (
	queryUpsertEntry = `
		INSERT INTO entries (
			product_id, store, size_text, price, currency,
			size_display, size_category, normalized_value, price_per_unit,
			created_at, updated_at
		) VALUES (
			@product_id, @store, @size_text, @price, @currency,
			@size_display, @size_category, @normalized_value, @price_per_unit,
			now(), now()
		)
		ON CONFLICT (product_id, store, size_text) DO UPDATE SET
			price = EXCLUDED.price,
			currency = EXCLUDED.currency,
			size_display = EXCLUDED.size_display,
			size_category = EXCLUDED.size_category,
			normalized_value = EXCLUDED.normalized_value,
			price_per_unit = EXCLUDED.price_per_unit,
			updated_at = now()
		RETURNING id, created_at, updated_at`

	queryGetEntry = `
		SELECT id, product_id, store, size_text, price, currency,
			size_display, size_category, normalized_value, price_per_unit,
			created_at, updated_at
		FROM entries
		WHERE id = $1`

	queryListEntriesByProduct = `
		SELECT id, product_id, store, size_text, price, currency,
			size_display, size_category, normalized_value, price_per_unit,
			created_at, updated_at
		FROM entries
		WHERE product_id = $1
		ORDER BY price_per_unit ASC NULLS LAST, store ASC`

	queryDeleteEntry = `DELETE FROM entries WHERE id = $1`

	queryUpdateEntryDerived = `
		UPDATE entries SET
			size_display = $2,
			size_category = $3,
			normalized_value = $4,
			price_per_unit = $5,
			updated_at = now()
		WHERE id = $1`

	queryListAllEntries = `
		SELECT id, product_id, store, size_text, price, currency,
			size_display, size_category, normalized_value, price_per_unit,
			created_at, updated_at
		FROM entries
		ORDER BY updated_at DESC`

	queryListEntriesMissingDerived = `
		SELECT id, product_id, store, size_text, price, currency,
			size_display, size_category, normalized_value, price_per_unit,
			created_at, updated_at
		FROM entries
		WHERE normalized_value IS NULL OR price_per_unit IS NULL
		ORDER BY updated_at DESC
		LIMIT $1`

	queryCountUnparseableEntries = `
		SELECT COUNT(*) FROM entries
		WHERE normalized_value IS NULL OR price_per_unit IS NULL`
)

// Job run queries.
const (
	queryInsertJobRun = `
		INSERT INTO job_runs (job_name, started_at, status)
		VALUES ($1, now(), 'running')
		RETURNING id`

	queryCompleteJobRun = `
		UPDATE job_runs SET
			completed_at = now(),
			status = $2,
			error_text = $3,
			rows_affected = $4
		WHERE id = $1`

	queryListJobRuns = `
		SELECT id, job_name, started_at, completed_at, status, COALESCE(error_text, ''), rows_affected
		FROM job_runs
		WHERE job_name = $1
		ORDER BY started_at DESC
		LIMIT $2`

	queryListLatestJobRuns = `
		SELECT DISTINCT ON (job_name)
			id, job_name, started_at, completed_at, status, COALESCE(error_text, ''), rows_affected
		FROM job_runs
		ORDER BY job_name, started_at DESC`
)
