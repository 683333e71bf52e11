package domain

import (
	"errors"
	"time"
)

var ErrProductNotFound = errors.New("product not found")
var ErrForbidden = errors.New("access forbidden")

// Product is the catalog document stored in MongoDB. The category field
// doubles as the partition key: every replace is keyed by (id, category), so
// neither value can change after creation.
type Product struct {
	ID             string            `json:"id" bson:"_id"`
	Name           string            `json:"name" bson:"name"`
	Description    string            `json:"description" bson:"description"`
	Price          float64           `json:"price" bson:"price"`
	Category       string            `json:"category" bson:"category"`
	ImageURL       string            `json:"imageUrl,omitempty" bson:"image_url,omitempty"`
	Tags           []string          `json:"tags,omitempty" bson:"tags,omitempty"`
	InStock        bool              `json:"inStock" bson:"in_stock"`
	Stock          *int              `json:"stock,omitempty" bson:"stock,omitempty"`
	Specifications map[string]string `json:"specifications,omitempty" bson:"specifications,omitempty"`

	// Soft-delete marker. Absent on live records; deleted records stay in the
	// collection and are filtered out of list queries.
	IsDeleted bool       `json:"isDeleted,omitempty" bson:"is_deleted,omitempty"`
	DeletedAt *time.Time `json:"deletedAt,omitempty" bson:"deleted_at,omitempty"`
	DeletedBy string     `json:"deletedBy,omitempty" bson:"deleted_by,omitempty"`

	CreatedAt time.Time `json:"createdAt" bson:"created_at"`
	CreatedBy string    `json:"createdBy" bson:"created_by"`
	UpdatedAt time.Time `json:"updatedAt" bson:"updated_at"`
	UpdatedBy string    `json:"updatedBy" bson:"updated_by"`
}

// PublicProduct is the storefront projection: no audit or soft-delete fields.
type PublicProduct struct {
	ID             string            `json:"id" bson:"_id"`
	Name           string            `json:"name" bson:"name"`
	Description    string            `json:"description" bson:"description"`
	Price          float64           `json:"price" bson:"price"`
	Category       string            `json:"category" bson:"category"`
	ImageURL       string            `json:"imageUrl,omitempty" bson:"image_url,omitempty"`
	Tags           []string          `json:"tags,omitempty" bson:"tags,omitempty"`
	Specifications map[string]string `json:"specifications,omitempty" bson:"specifications,omitempty"`
	InStock        bool              `json:"inStock" bson:"in_stock"`
}
