package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/printforge/catalog-api/internal/api/handler"
	"github.com/printforge/catalog-api/internal/api/middleware"
	"github.com/printforge/catalog-api/internal/core/domain"
	"github.com/printforge/catalog-api/internal/core/ports"
	"github.com/printforge/catalog-api/internal/core/service"
	mongocatalog "github.com/printforge/catalog-api/internal/infrastructure/db/mongo"
)

// NewRouter builds and returns the Echo instance with all routes registered.
//
// Route classes:
//   - /products          public storefront reads, CORS-allow-listed, no auth
//   - /manage/products   management console, bearer token + role checks
//   - /health, /metrics  operational endpoints, no auth
func NewRouter(db *mongo.Database, verifier ports.TokenVerifier, allowedOrigins []string, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("catalog"))

	// --- Dependencies ---
	repo := mongocatalog.NewProductRepository(db)
	catalogService := service.NewCatalogService(repo, log)
	productHandler := handler.NewProductHandler(catalogService)
	publicHandler := handler.NewPublicHandler(catalogService)

	// --- Public storefront routes ---
	public := e.Group("/products", echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins: allowedOrigins,
		AllowMethods: []string{echo.GET},
	}))
	public.GET("", publicHandler.List)
	public.GET("/:id", publicHandler.Get)

	// --- Management routes ---
	// Verification first, then the per-operation role set. Delete is Admin
	// only; Admin also passes the weaker checks via the role override.
	manage := e.Group("/manage/products", middleware.Auth(verifier))
	manage.GET("", productHandler.List, middleware.RequireRole(domain.RoleViewer, domain.RoleEditor, domain.RoleAdmin))
	manage.GET("/:id", productHandler.Get, middleware.RequireRole(domain.RoleViewer, domain.RoleEditor, domain.RoleAdmin))
	manage.POST("", productHandler.Create, middleware.RequireRole(domain.RoleEditor, domain.RoleAdmin))
	manage.PUT("/:id", productHandler.Update, middleware.RequireRole(domain.RoleEditor, domain.RoleAdmin))
	manage.DELETE("/:id", productHandler.Delete, middleware.RequireRole(domain.RoleAdmin))

	// --- Operational endpoints ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(db)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", readinessHandler.Readiness)
	e.GET("/metrics", echoprometheus.NewHandler())

	return e
}
