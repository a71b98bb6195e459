package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/liorgem/diamondlab-backend/api/controllers"
	"github.com/liorgem/diamondlab-backend/api/middleware"
	"github.com/liorgem/diamondlab-backend/internal/carats"
	"github.com/liorgem/diamondlab-backend/internal/catalog"
	"github.com/liorgem/diamondlab-backend/internal/products"
	"github.com/liorgem/diamondlab-backend/internal/variants"
	pkgauth "github.com/liorgem/diamondlab-backend/pkg/auth"
	"github.com/liorgem/diamondlab-backend/pkg/config"
	"github.com/liorgem/diamondlab-backend/pkg/db"
	"github.com/liorgem/diamondlab-backend/pkg/logger"
	"github.com/liorgem/diamondlab-backend/pkg/redis"
)

// NewRouter wires every route the storefront and the admin console use.
// Read paths are public. Mutations sit behind the admin token check.
func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	dbClient *db.Client,
	redisClient *redis.Client,
	tokens *pkgauth.TokenManager,
	registry *prometheus.Registry,
	catalogService catalog.Service,
	caratService carats.Service,
	variantService variants.Service,
	productService products.Service,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, dbClient, redisClient))
	})

	if registry != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
	}

	r.Route("/api/v1/admin", func(r chi.Router) {
		r.Use(middleware.AdminAuth(tokens, logg))
		r.Get("/me", controllers.AdminMe(logg))
	})

	r.Route("/api/v1/carat-pricing", func(r chi.Router) {
		r.Get("/", controllers.ListCaratPricing(catalogService, logg))
		r.Get("/weight/{weight}", controllers.GetCaratPricingByWeight(catalogService, logg))

		r.Group(func(r chi.Router) {
			r.Use(middleware.AdminAuth(tokens, logg))
			r.Post("/", controllers.CreateCaratPricing(catalogService, logg))
			r.Put("/{id}", controllers.UpdateCaratPricing(catalogService, logg))
			r.Delete("/{id}", controllers.DeleteCaratPricing(catalogService, logg))
		})
	})

	r.Route("/api/v1/products", func(r chi.Router) {
		r.Get("/", controllers.ListProducts(productService, logg))
		r.Get("/{id}", controllers.GetProduct(productService, logg))
		r.Get("/{id}/gallery", controllers.GetProductGallery(productService, logg))
		r.Get("/{id}/price/{weight}", controllers.GetProductPrice(productService, logg))
		r.Get("/{id}/images", controllers.ListProductImages(productService, logg))
		r.Get("/{id}/carats", controllers.ListProductCarats(caratService, logg))
		r.Get("/{id}/variants", controllers.ListVariants(variantService, logg))
		r.Get("/{id}/variants/colors", controllers.ListAvailableColors(variantService, logg))

		r.Group(func(r chi.Router) {
			r.Use(middleware.AdminAuth(tokens, logg))

			r.Post("/", controllers.CreateProduct(productService, logg))
			r.Put("/{id}", controllers.UpdateProduct(productService, logg))
			r.Delete("/{id}", controllers.DeleteProduct(productService, logg))
			r.Post("/{id}/featured", controllers.ToggleProductFeatured(productService, logg))

			r.Post("/{id}/images", controllers.AddProductImage(productService, logg))
			r.Delete("/{id}/images/{imageID}", controllers.DeleteProductImage(productService, logg))

			r.Post("/{id}/carats", controllers.AddProductCarat(caratService, logg))
			r.Post("/{id}/carats/all", controllers.AddAllProductCarats(caratService, logg))
			r.Delete("/{id}/carats/{caratPricingID}", controllers.RemoveProductCarat(caratService, logg))
			r.Post("/{id}/carats/{caratPricingID}/default", controllers.SetDefaultProductCarat(caratService, logg))

			r.Post("/{id}/variants", controllers.AddVariant(variantService, logg))
			r.Put("/{id}/variants/{variantID}", controllers.UpdateVariant(variantService, logg))
			r.Delete("/{id}/variants/{variantID}", controllers.RemoveVariant(variantService, logg))
			r.Post("/{id}/variants/{variantID}/default", controllers.SetDefaultVariant(variantService, logg))
		})
	})

	return r
}
