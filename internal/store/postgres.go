package store

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	domain "github.com/pantrylab/shelfmatch/pkg/types"
)

const defaultPoolSize = 10

// PostgresStore implements Store using pgxpool (connection-pooled PostgreSQL).
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore creates a new PostgresStore with connection pooling.
func NewPostgresStore(ctx context.Context, connString string) (*PostgresStore, error) {
	return NewPostgresStoreWithPoolSize(ctx, connString, defaultPoolSize)
}

// NewPostgresStoreWithPoolSize creates a PostgresStore with an explicit pool size.
func NewPostgresStoreWithPoolSize(
	ctx context.Context,
	connString string,
	poolSize int,
) (*PostgresStore, error) {
	cfg, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, fmt.Errorf("parsing connection string: %w", err)
	}

	if poolSize <= 0 {
		poolSize = defaultPoolSize
	}
	cfg.MaxConns = int32(poolSize) //nolint:gosec // pool size validated by config

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("creating connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("pinging database: %w", err)
	}

	return &PostgresStore{pool: pool}, nil
}

// Close gracefully shuts down the connection pool.
func (s *PostgresStore) Close() {
	s.pool.Close()
}

// Ping verifies the database connection is alive.
func (s *PostgresStore) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}

// Migrate applies pending SQL schema migrations.
func (s *PostgresStore) Migrate(ctx context.Context) error {
	return RunMigrations(ctx, s.pool)
}

// CreateProduct inserts a new product.
func (s *PostgresStore) CreateProduct(ctx context.Context, p *domain.Product) error {
	args := pgx.NamedArgs{
		"name":     p.Name,
		"category": p.Category,
	}

	return s.pool.QueryRow(ctx, queryCreateProduct, args).Scan(
		&p.ID, &p.CreatedAt, &p.UpdatedAt,
	)
}

// GetProduct retrieves a product by its ID.
func (s *PostgresStore) GetProduct(ctx context.Context, id string) (*domain.Product, error) {
	p := &domain.Product{}
	err := s.pool.QueryRow(ctx, queryGetProduct, id).Scan(
		&p.ID, &p.Name, &p.Category, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return p, nil
}

// ListProducts queries products with optional filters, returning results and total count.
func (s *PostgresStore) ListProducts(
	ctx context.Context,
	opts *ProductQuery,
) ([]domain.Product, int, error) {
	dataSQL, countSQL, args := opts.ToSQL()

	var total int
	if err := s.pool.QueryRow(ctx, countSQL, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("counting products: %w", err)
	}

	rows, err := s.pool.Query(ctx, dataSQL, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("querying products: %w", err)
	}
	defer rows.Close()

	var products []domain.Product
	for rows.Next() {
		var p domain.Product
		if err := rows.Scan(&p.ID, &p.Name, &p.Category, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, 0, fmt.Errorf("scanning product: %w", err)
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterating products: %w", err)
	}

	return products, total, nil
}

// UpdateProduct updates an existing product.
func (s *PostgresStore) UpdateProduct(ctx context.Context, p *domain.Product) error {
	args := pgx.NamedArgs{
		"id":       p.ID,
		"name":     p.Name,
		"category": p.Category,
	}

	_, err := s.pool.Exec(ctx, queryUpdateProduct, args)
	if err != nil {
		return fmt.Errorf("updating product: %w", err)
	}
	return nil
}

// DeleteProduct removes a product by its ID. Entries cascade.
func (s *PostgresStore) DeleteProduct(ctx context.Context, id string) error {
	_, err := s.pool.Exec(ctx, queryDeleteProduct, id)
	if err != nil {
		return fmt.Errorf("deleting product: %w", err)
	}
	return nil
}

// UpsertEntry inserts or updates an entry keyed by (product_id, store, size_text).
func (s *PostgresStore) UpsertEntry(ctx context.Context, e *domain.Entry) error {
	args := pgx.NamedArgs{
		"product_id":       e.ProductID,
		"store":            e.Store,
		"size_text":        e.SizeText,
		"price":            e.Price,
		"currency":         e.Currency,
		"size_display":     e.SizeDisplay,
		"size_category":    e.SizeCategory,
		"normalized_value": e.NormalizedValue,
		"price_per_unit":   e.PricePerUnit,
	}

	return s.pool.QueryRow(ctx, queryUpsertEntry, args).Scan(
		&e.ID, &e.CreatedAt, &e.UpdatedAt,
	)
}

// GetEntry retrieves an entry by its ID.
func (s *PostgresStore) GetEntry(ctx context.Context, id string) (*domain.Entry, error) {
	e := &domain.Entry{}
	err := scanEntry(s.pool.QueryRow(ctx, queryGetEntry, id), e)
	if err != nil {
		return nil, err
	}
	return e, nil
}

// ListEntries queries entries with optional filters, returning results and total count.
func (s *PostgresStore) ListEntries(
	ctx context.Context,
	opts *EntryQuery,
) ([]domain.Entry, int, error) {
	dataSQL, countSQL, args := opts.ToSQL()

	var total int
	if err := s.pool.QueryRow(ctx, countSQL, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("counting entries: %w", err)
	}

	rows, err := s.pool.Query(ctx, dataSQL, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("querying entries: %w", err)
	}
	defer rows.Close()

	entries, err := scanEntries(rows)
	if err != nil {
		return nil, 0, err
	}

	return entries, total, nil
}

// ListEntriesByProduct returns all entries for a product, cheapest unit price first.
func (s *PostgresStore) ListEntriesByProduct(
	ctx context.Context,
	productID string,
) ([]domain.Entry, error) {
	rows, err := s.pool.Query(ctx, queryListEntriesByProduct, productID)
	if err != nil {
		return nil, fmt.Errorf("querying entries by product: %w", err)
	}
	defer rows.Close()

	return scanEntries(rows)
}

// DeleteEntry removes an entry by its ID.
func (s *PostgresStore) DeleteEntry(ctx context.Context, id string) error {
	_, err := s.pool.Exec(ctx, queryDeleteEntry, id)
	if err != nil {
		return fmt.Errorf("deleting entry: %w", err)
	}
	return nil
}

// UpdateEntryDerived writes the recomputed size fields for an entry.
// Nil fields clear the stored values, marking the entry unparseable.
func (s *PostgresStore) UpdateEntryDerived(
	ctx context.Context,
	id string,
	d *domain.DerivedSize,
) error {
	_, err := s.pool.Exec(ctx, queryUpdateEntryDerived,
		id, d.SizeDisplay, d.SizeCategory, d.NormalizedValue, d.PricePerUnit,
	)
	if err != nil {
		return fmt.Errorf("updating entry derived fields: %w", err)
	}
	return nil
}

// ListAllEntries returns every entry in the catalog.
func (s *PostgresStore) ListAllEntries(ctx context.Context) ([]domain.Entry, error) {
	rows, err := s.pool.Query(ctx, queryListAllEntries)
	if err != nil {
		return nil, fmt.Errorf("querying all entries: %w", err)
	}
	defer rows.Close()

	return scanEntries(rows)
}

// ListEntriesMissingDerived returns entries whose derived size fields are absent.
func (s *PostgresStore) ListEntriesMissingDerived(
	ctx context.Context,
	limit int,
) ([]domain.Entry, error) {
	rows, err := s.pool.Query(ctx, queryListEntriesMissingDerived, limit)
	if err != nil {
		return nil, fmt.Errorf("querying entries missing derived fields: %w", err)
	}
	defer rows.Close()

	return scanEntries(rows)
}

// CountUnparseableEntries returns the number of entries without derived values.
func (s *PostgresStore) CountUnparseableEntries(ctx context.Context) (int, error) {
	var count int
	if err := s.pool.QueryRow(ctx, queryCountUnparseableEntries).Scan(&count); err != nil {
		return 0, fmt.Errorf("counting unparseable entries: %w", err)
	}
	return count, nil
}

// InsertJobRun records the start of a scheduled job and returns its UUID.
func (s *PostgresStore) InsertJobRun(ctx context.Context, jobName string) (string, error) {
	var id string
	if err := s.pool.QueryRow(ctx, queryInsertJobRun, jobName).Scan(&id); err != nil {
		return "", fmt.Errorf("inserting job run: %w", err)
	}
	return id, nil
}

// CompleteJobRun marks a job run as finished with the given status and metadata.
func (s *PostgresStore) CompleteJobRun(
	ctx context.Context,
	id string,
	status string,
	errText string,
	rowsAffected int,
) error {
	_, err := s.pool.Exec(ctx, queryCompleteJobRun, id, status, errText, rowsAffected)
	if err != nil {
		return fmt.Errorf("completing job run: %w", err)
	}
	return nil
}

// ListJobRuns returns the most recent runs for a specific job, newest first.
func (s *PostgresStore) ListJobRuns(
	ctx context.Context,
	jobName string,
	limit int,
) ([]domain.JobRun, error) {
	rows, err := s.pool.Query(ctx, queryListJobRuns, jobName, limit)
	if err != nil {
		return nil, fmt.Errorf("querying job runs: %w", err)
	}
	defer rows.Close()

	return scanJobRuns(rows)
}

// ListLatestJobRuns returns the single most recent run for each distinct job name.
func (s *PostgresStore) ListLatestJobRuns(ctx context.Context) ([]domain.JobRun, error) {
	rows, err := s.pool.Query(ctx, queryListLatestJobRuns)
	if err != nil {
		return nil, fmt.Errorf("querying latest job runs: %w", err)
	}
	defer rows.Close()

	return scanJobRuns(rows)
}

// scannable abstracts pgx.Row and pgx.Rows for reuse.
type scannable interface {
	Scan(dest ...any) error
}

func scanEntry(row scannable, e *domain.Entry) error {
	return row.Scan(
		&e.ID, &e.ProductID, &e.Store, &e.SizeText, &e.Price, &e.Currency,
		&e.SizeDisplay, &e.SizeCategory, &e.NormalizedValue, &e.PricePerUnit,
		&e.CreatedAt, &e.UpdatedAt,
	)
}

func scanEntries(rows pgx.Rows) ([]domain.Entry, error) {
	var entries []domain.Entry
	for rows.Next() {
		var e domain.Entry
		if err := scanEntry(rows, &e); err != nil {
			return nil, fmt.Errorf("scanning entry: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func scanJobRuns(rows pgx.Rows) ([]domain.JobRun, error) {
	var runs []domain.JobRun
	for rows.Next() {
		var r domain.JobRun
		if err := rows.Scan(
			&r.ID, &r.JobName, &r.StartedAt, &r.CompletedAt,
			&r.Status, &r.ErrorText, &r.RowsAffected,
		); err != nil {
			return nil, fmt.Errorf("scanning job run: %w", err)
		}
		runs = append(runs, r)
	}
	return runs, rows.Err()
}
