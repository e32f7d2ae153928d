// Package store defines the datastore abstraction for shelfmatch.
// All business logic depends on the Store interface, never on concrete
// implementations. This enables mock-based testing without a running database.
package store

import (
	"context"

	domain "github.com/pantrylab/shelfmatch/pkg/types"
)

// ProductQuery defines optional filters for product queries.
type ProductQuery struct {
	Category *string
	NameLike *string
	Limit    int // default 50
	Offset   int
	OrderBy  string // "name", "created_at"
}

// EntryQuery defines optional filters for entry queries.
type EntryQuery struct {
	ProductID    *string
	Store        *string
	SizeCategory *string
	Comparable   *bool // true: only entries with derived values; false: only without
	Limit        int   // default 50
	Offset       int
	OrderBy      string // "price_per_unit", "price", "updated_at"
}

// Store defines all data access operations for shelfmatch.
type Store interface {
	// Products
	CreateProduct(ctx context.Context, p *domain.Product) error
	GetProduct(ctx context.Context, id string) (*domain.Product, error)
	ListProducts(ctx context.Context, opts *ProductQuery) ([]domain.Product, int, error)
	UpdateProduct(ctx context.Context, p *domain.Product) error
	DeleteProduct(ctx context.Context, id string) error

	// Entries
	UpsertEntry(ctx context.Context, e *domain.Entry) error
	GetEntry(ctx context.Context, id string) (*domain.Entry, error)
	ListEntries(ctx context.Context, opts *EntryQuery) ([]domain.Entry, int, error)
	ListEntriesByProduct(ctx context.Context, productID string) ([]domain.Entry, error)
	DeleteEntry(ctx context.Context, id string) error
	UpdateEntryDerived(ctx context.Context, id string, d *domain.DerivedSize) error
	ListAllEntries(ctx context.Context) ([]domain.Entry, error)
	ListEntriesMissingDerived(ctx context.Context, limit int) ([]domain.Entry, error)
	CountUnparseableEntries(ctx context.Context) (int, error)

	// Scheduler
	InsertJobRun(ctx context.Context, jobName string) (id string, err error)
	CompleteJobRun(ctx context.Context, id string, status string, errText string, rowsAffected int) error
	ListJobRuns(ctx context.Context, jobName string, limit int) ([]domain.JobRun, error)
	ListLatestJobRuns(ctx context.Context) ([]domain.JobRun, error)

	// Migrations
	Migrate(ctx context.Context) error

	// Health
	Ping(ctx context.Context) error
}
