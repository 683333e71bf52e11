package ports

import (
	"context"

	"github.com/printforge/catalog-api/internal/core/domain"
)

// ProductInput is a sanitized, normalized create payload. Produced only by
// the validation package; handlers never build it from raw client input.
type ProductInput struct {
	Name           string
	Description    string
	Price          float64
	Category       string
	ImageURL       string
	Tags           []string
	InStock        bool
	Stock          *int
	Specifications map[string]string
}

// ProductUpdate is the allow-list patch for partial updates. Nil fields were
// absent from the request and leave the stored value untouched. There is
// deliberately no way to express id, category, createdAt or createdBy here.
type ProductUpdate struct {
	Name           *string
	Description    *string
	Price          *float64
	ImageURL       *string
	Tags           *[]string
	InStock        *bool
	Stock          *int
	Specifications map[string]string
}

// CatalogService defines the catalog use cases. The actor argument is the
// verified caller identity used for audit fields.
type CatalogService interface {
	List(ctx context.Context) ([]*domain.Product, error)
	Get(ctx context.Context, id string) (*domain.Product, error)
	Create(ctx context.Context, input ProductInput, actor string) (*domain.Product, error)
	Update(ctx context.Context, id string, patch ProductUpdate, actor string) (*domain.Product, error)
	// Delete flips the soft-delete marker. Repeating it on an already-deleted
	// product succeeds and refreshes deletedAt/deletedBy.
	Delete(ctx context.Context, id string, actor string) (*domain.Product, error)

	PublicList(ctx context.Context) ([]*domain.PublicProduct, error)
	PublicGet(ctx context.Context, id string) (*domain.PublicProduct, error)
}
