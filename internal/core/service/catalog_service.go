package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/printforge/catalog-api/internal/api/metrics"
	"github.com/printforge/catalog-api/internal/core/domain"
	"github.com/printforge/catalog-api/internal/core/ports"
)

// CatalogService implements the catalog use cases on top of the document
// store gateway. It owns id generation, audit timestamps and the soft-delete
// lifecycle; it never trusts client input for any of them.
type CatalogService struct {
	repo   ports.CatalogRepository
	logger zerolog.Logger
}

func NewCatalogService(repo ports.CatalogRepository, logger zerolog.Logger) *CatalogService {
	return &CatalogService{repo: repo, logger: logger}
}

// List returns all live products for the management console, newest updated
// first.
func (s *CatalogService) List(ctx context.Context) ([]*domain.Product, error) {
	return s.repo.List(ctx)
}

// Get returns a single full record. Soft-deleted records are returned as-is,
// flagged by isDeleted; an explicit by-id read is the one place the console
// can still see them.
func (s *CatalogService) Get(ctx context.Context, id string) (*domain.Product, error) {
	return s.repo.FindByID(ctx, id)
}

// Create inserts a new product. The server assigns the id and sets all four
// audit fields; on a fresh record createdAt equals updatedAt and createdBy
// equals updatedBy.
func (s *CatalogService) Create(ctx context.Context, input ports.ProductInput, actor string) (*domain.Product, error) {
	now := time.Now().UTC()
	p := &domain.Product{
		ID:             uuid.NewString(),
		Name:           input.Name,
		Description:    input.Description,
		Price:          input.Price,
		Category:       input.Category,
		ImageURL:       input.ImageURL,
		Tags:           input.Tags,
		InStock:        input.InStock,
		Stock:          input.Stock,
		Specifications: input.Specifications,
		CreatedAt:      now,
		CreatedBy:      actor,
		UpdatedAt:      now,
		UpdatedBy:      actor,
	}

	if err := s.repo.Insert(ctx, p); err != nil {
		s.logger.Error().Err(err).Msg("failed to create product")
		return nil, err
	}

	s.logger.Info().Str("product_id", p.ID).Str("category", p.Category).Str("actor", actor).Msg("product created")
	metrics.ProductsCreatedTotal.WithLabelValues(p.Category).Inc()

	return p, nil
}

// Update applies an allow-list patch to the stored record. The existing
// document supplies id, category, createdAt and createdBy verbatim; the
// replace is keyed by (id, stored category) so the partition cannot move.
func (s *CatalogService) Update(ctx context.Context, id string, patch ports.ProductUpdate, actor string) (*domain.Product, error) {
	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if patch.Name != nil {
		existing.Name = *patch.Name
	}
	if patch.Description != nil {
		existing.Description = *patch.Description
	}
	if patch.Price != nil {
		existing.Price = *patch.Price
	}
	if patch.ImageURL != nil {
		existing.ImageURL = *patch.ImageURL
	}
	if patch.Tags != nil {
		existing.Tags = *patch.Tags
	}
	if patch.InStock != nil {
		existing.InStock = *patch.InStock
	}
	if patch.Stock != nil {
		existing.Stock = patch.Stock
	}
	if patch.Specifications != nil {
		existing.Specifications = patch.Specifications
	}
	existing.UpdatedAt = time.Now().UTC()
	existing.UpdatedBy = actor

	if err := s.repo.Replace(ctx, existing); err != nil {
		s.logger.Error().Err(err).Str("product_id", id).Msg("failed to update product")
		return nil, err
	}

	s.logger.Info().Str("product_id", id).Str("actor", actor).Msg("product updated")
	metrics.ProductsUpdatedTotal.Inc()

	return existing, nil
}

// Delete flips the soft-delete marker; the record stays in the store and only
// disappears from list queries. Re-deleting an already-deleted record is not
// an error and refreshes deletedAt/deletedBy.
func (s *CatalogService) Delete(ctx context.Context, id string, actor string) (*domain.Product, error) {
	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	existing.IsDeleted = true
	existing.DeletedAt = &now
	existing.DeletedBy = actor
	existing.UpdatedAt = now
	existing.UpdatedBy = actor

	if err := s.repo.Replace(ctx, existing); err != nil {
		s.logger.Error().Err(err).Str("product_id", id).Msg("failed to delete product")
		return nil, err
	}

	s.logger.Info().Str("product_id", id).Str("actor", actor).Msg("product soft-deleted")
	metrics.ProductsDeletedTotal.Inc()

	return existing, nil
}

// PublicList returns the storefront projection of the live catalog.
func (s *CatalogService) PublicList(ctx context.Context) ([]*domain.PublicProduct, error) {
	return s.repo.PublicList(ctx)
}

// PublicGet returns a single storefront record; soft-deleted products are
// indistinguishable from absent ones.
func (s *CatalogService) PublicGet(ctx context.Context, id string) (*domain.PublicProduct, error) {
	return s.repo.PublicFindByID(ctx, id)
}
