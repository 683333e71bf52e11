package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/printforge/catalog-api/internal/core/domain"
	"github.com/printforge/catalog-api/internal/core/ports"
)

// PublicHandler serves the unauthenticated storefront routes. Responses carry
// only the fixed public projection and never include soft-deleted records.
type PublicHandler struct {
	service ports.CatalogService
}

func NewPublicHandler(service ports.CatalogService) *PublicHandler {
	return &PublicHandler{service: service}
}

type publicListResponse struct {
	Products []*domain.PublicProduct `json:"products"`
	Count    int                     `json:"count"`
}

// List handles GET /products.
//
// @Summary      List the public catalog
// @Tags         public
// @Produce      json
// @Success      200  {object}  publicListResponse
// @Failure      500  {object}  map[string]string
// @Router       /products [get]
func (h *PublicHandler) List(c echo.Context) error {
	products, err := h.service.PublicList(c.Request().Context())
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, publicListResponse{
		Products: products,
		Count:    len(products),
	})
}

// Get handles GET /products/:id. Absent and soft-deleted products are both
// reported as 404.
//
// @Summary      Get a public product
// @Tags         public
// @Produce      json
// @Param        id   path      string  true  "Product id"
// @Success      200  {object}  domain.PublicProduct
// @Failure      404  {object}  map[string]string
// @Router       /products/{id} [get]
func (h *PublicHandler) Get(c echo.Context) error {
	product, err := h.service.PublicGet(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, product)
}
