package ports

import (
	"context"

	"github.com/printforge/catalog-api/internal/core/domain"
)

// CatalogRepository defines persistence operations for catalog products.
//
// Lookups run as filter queries on the id field rather than point reads: the
// store needs (id, category) for a direct access, and the category is not
// known until the existing document has been read.
type CatalogRepository interface {
	// FindByID returns the document with the given id, soft-deleted or not.
	// Zero matches yields domain.ErrProductNotFound.
	FindByID(ctx context.Context, id string) (*domain.Product, error)
	// List returns all live (non-deleted) products, newest updated first.
	List(ctx context.Context) ([]*domain.Product, error)
	// PublicList returns the storefront projection of all live products.
	PublicList(ctx context.Context) ([]*domain.PublicProduct, error)
	// PublicFindByID returns the storefront projection of a live product.
	// Soft-deleted documents yield domain.ErrProductNotFound.
	PublicFindByID(ctx context.Context, id string) (*domain.PublicProduct, error)
	Insert(ctx context.Context, p *domain.Product) error
	// Replace overwrites the document keyed by (p.ID, p.Category). The
	// category filter pins the partition: a replace can never move a document
	// to another category. Zero matches yields domain.ErrProductNotFound.
	Replace(ctx context.Context, p *domain.Product) error
}
