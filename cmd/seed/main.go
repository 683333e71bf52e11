// Command seed populates the products collection with a fixture catalog.
// One-shot batch loader for development and demo environments; not part of
// the runtime service.
package main

import (
	"context"
	"errors"
	"time"

	"github.com/printforge/catalog-api/internal/core/domain"
	"github.com/printforge/catalog-api/internal/infrastructure/config"
	mongodb "github.com/printforge/catalog-api/internal/infrastructure/db/mongo"
	"github.com/printforge/catalog-api/pkg/logger"
)

const seedActor = "seed-script"

func fixtures(now time.Time) []*domain.Product {
	stock := func(n int) *int { return &n }
	audit := func(p *domain.Product) *domain.Product {
		p.CreatedAt = now
		p.CreatedBy = seedActor
		p.UpdatedAt = now
		p.UpdatedBy = seedActor
		return p
	}

	return []*domain.Product{
		audit(&domain.Product{
			ID:          "prod-001",
			Name:        "Orc Warboss",
			Description: "Detailed 3D printed orc warboss miniature for tabletop gaming",
			Price:       15.0,
			Category:    "miniatures",
			InStock:     true,
			Stock:       stock(12),
			ImageURL:    "/products/orc-warboss.jpg",
			Tags:        []string{"orc", "warboss", "miniature", "fantasy"},
			Specifications: map[string]string{
				"printTime": "8 hours",
				"material":  "PLA+",
				"scale":     "32mm",
				"supports":  "Yes",
			},
		}),
		audit(&domain.Product{
			ID:          "prod-002",
			Name:        "Forest Terrain Set",
			Description: "Collection of 10 modular forest terrain pieces - trees, rocks, and vegetation",
			Price:       25.0,
			Category:    "terrain",
			InStock:     true,
			Stock:       stock(5),
			ImageURL:    "/products/forest-terrain.jpg",
			Tags:        []string{"terrain", "forest", "modular"},
			Specifications: map[string]string{
				"printTime": "20 hours",
				"material":  "PLA",
				"pieces":    "10",
			},
		}),
		audit(&domain.Product{
			ID:          "prod-003",
			Name:        "Dice Tower",
			Description: "Functional castle-themed dice tower with catch tray",
			Price:       18.5,
			Category:    "accessories",
			InStock:     true,
			Stock:       stock(8),
			ImageURL:    "/products/dice-tower.jpg",
			Tags:        []string{"dice", "tower", "accessory"},
			Specifications: map[string]string{
				"printTime": "12 hours",
				"material":  "PETG",
			},
		}),
	}
}

func main() {
	cfg := config.Load()
	log := logger.Init(logger.Options{Level: cfg.LogLevel, Pretty: true})

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	client, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to mongodb")
	}
	defer func() { _ = client.Disconnect(ctx) }()

	repo := mongodb.NewProductRepository(db)
	if err := repo.EnsureIndexes(ctx); err != nil {
		log.Warn().Err(err).Msg("failed to ensure indexes")
	}

	for _, p := range fixtures(time.Now().UTC()) {
		err := repo.Replace(ctx, p)
		if errors.Is(err, domain.ErrProductNotFound) {
			err = repo.Insert(ctx, p)
		}
		if err != nil {
			log.Error().Err(err).Str("product_id", p.ID).Msg("seed failed")
			continue
		}
		log.Info().Str("product_id", p.ID).Str("category", p.Category).Msg("seeded")
	}
}
