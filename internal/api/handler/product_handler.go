package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/printforge/catalog-api/internal/api/middleware"
	"github.com/printforge/catalog-api/internal/core/domain"
	"github.com/printforge/catalog-api/internal/core/ports"
	"github.com/printforge/catalog-api/internal/core/validation"
)

// ProductHandler handles the authenticated management routes. Every handler
// runs behind the Auth and RequireRole middleware; by the time a request gets
// here it carries a verified AuthContext.
type ProductHandler struct {
	service ports.CatalogService
}

func NewProductHandler(service ports.CatalogService) *ProductHandler {
	return &ProductHandler{service: service}
}

// --- Response types ---

type listProductsResponse struct {
	Products    []*domain.Product `json:"products"`
	Count       int               `json:"count"`
	RequestedBy string            `json:"requestedBy,omitempty"`
}

type deleteProductResponse struct {
	Message   string `json:"message"`
	DeletedBy string `json:"deletedBy"`
}

// List handles GET /manage/products.
//
// @Summary      List all products (management view)
// @Tags         manage
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  listProductsResponse
// @Failure      401  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /manage/products [get]
func (h *ProductHandler) List(c echo.Context) error {
	products, err := h.service.List(c.Request().Context())
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, listProductsResponse{
		Products:    products,
		Count:       len(products),
		RequestedBy: middleware.AuthFromContext(c).UserEmail,
	})
}

// Get handles GET /manage/products/:id. Unlike the list, an explicit by-id
// read returns soft-deleted records too, flagged by isDeleted.
//
// @Summary      Get a single product (full record)
// @Tags         manage
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Product id"
// @Success      200  {object}  domain.Product
// @Failure      404  {object}  map[string]string
// @Router       /manage/products/{id} [get]
func (h *ProductHandler) Get(c echo.Context) error {
	product, err := h.service.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, product)
}

// Create handles POST /manage/products.
//
// @Summary      Create a product
// @Tags         manage
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      map[string]any  true  "Product fields"
// @Success      201   {object}  domain.Product
// @Failure      400   {object}  map[string]string
// @Router       /manage/products [post]
func (h *ProductHandler) Create(c echo.Context) error {
	var body map[string]any
	if err := c.Bind(&body); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	input, err := validation.ValidateProduct(body)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	created, err := h.service.Create(c.Request().Context(), input, middleware.AuthFromContext(c).Actor())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, created)
}

// Update handles PUT /manage/products/:id. Only allow-listed fields reach the
// stored record; id, category, createdAt and createdBy in the body are
// ignored outright.
//
// @Summary      Partially update a product
// @Tags         manage
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string          true  "Product id"
// @Param        body  body      map[string]any  true  "Fields to update"
// @Success      200   {object}  domain.Product
// @Failure      400   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /manage/products/{id} [put]
func (h *ProductHandler) Update(c echo.Context) error {
	var body map[string]any
	if err := c.Bind(&body); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	patch, err := validation.ValidateProductUpdate(body)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	updated, err := h.service.Update(c.Request().Context(), c.Param("id"), patch, middleware.AuthFromContext(c).Actor())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, updated)
}

// Delete handles DELETE /manage/products/:id as a soft delete. Repeating the
// call on an already-deleted product succeeds again.
//
// @Summary      Soft-delete a product
// @Tags         manage
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Product id"
// @Success      200  {object}  deleteProductResponse
// @Failure      404  {object}  map[string]string
// @Router       /manage/products/{id} [delete]
func (h *ProductHandler) Delete(c echo.Context) error {
	actor := middleware.AuthFromContext(c).Actor()
	deleted, err := h.service.Delete(c.Request().Context(), c.Param("id"), actor)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, deleteProductResponse{
		Message:   "Product " + deleted.ID + " deleted",
		DeletedBy: actor,
	})
}
