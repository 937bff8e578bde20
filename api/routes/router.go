package routes

import (
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/angelmondragon/aestheticmarket-backend/api/controllers"
	"github.com/angelmondragon/aestheticmarket-backend/api/middleware"
	"github.com/angelmondragon/aestheticmarket-backend/api/responses"
	"github.com/angelmondragon/aestheticmarket-backend/internal/auth"
	"github.com/angelmondragon/aestheticmarket-backend/internal/catalog"
	"github.com/angelmondragon/aestheticmarket-backend/internal/products"
	"github.com/angelmondragon/aestheticmarket-backend/internal/sellers"
	"github.com/angelmondragon/aestheticmarket-backend/pkg/config"
	pkgerrors "github.com/angelmondragon/aestheticmarket-backend/pkg/errors"
	"github.com/angelmondragon/aestheticmarket-backend/pkg/logger"
	"github.com/angelmondragon/aestheticmarket-backend/pkg/metrics"
)

// Dependencies are the collaborators the HTTP surface is built from.
// Limiter and Gatherer are optional.
type Dependencies struct {
	DB          controllers.Pinger
	Limiter     middleware.RateLimiter
	Sellers     middleware.SellerResolver
	Gatherer    prometheus.Gatherer
	HTTPMetrics *metrics.HTTPMetrics
	StartedAt   time.Time

	AuthService    auth.Service
	SellerService  sellers.Service
	ProductService products.Service
	CatalogService catalog.Service
}

func NewRouter(cfg *config.Config, logg *logger.Logger, deps Dependencies) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.Metrics(deps.HTTPMetrics),
		middleware.CORS(cfg.App.CORSOrigins),
	)
	if cfg.App.MaxBodyBytes > 0 {
		r.Use(chimw.RequestSize(cfg.App.MaxBodyBytes))
	}

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		msg := fmt.Sprintf("Can't find %s on this server!", r.URL.RequestURI())
		responses.WriteError(r.Context(), nil, w, pkgerrors.New(pkgerrors.CodeNotFound, msg))
	})

	if deps.Gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(deps.Gatherer, promhttp.HandlerOpts{}))
	}

	loginPolicy := middleware.LoginRateLimitPolicy(cfg.AuthRateLimit)
	registerPolicy := middleware.RegisterRateLimitPolicy(cfg.AuthRateLimit)

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", controllers.Health(deps.DB, deps.StartedAt, logg))

		r.Get("/aesthetics", controllers.PublicAesthetics(deps.CatalogService, logg))
		r.Get("/products", controllers.PublicProducts(deps.CatalogService, logg))
		r.Get("/products/{id}", controllers.PublicProduct(deps.CatalogService, logg))

		r.Route("/sellers", func(r chi.Router) {
			r.Get("/{id:[0-9]+}/public", controllers.PublicSeller(deps.SellerService, logg))

			r.With(middleware.AuthRateLimit(registerPolicy, deps.Limiter, logg)).Post("/register", controllers.SellerRegister(deps.AuthService, logg))
			r.With(middleware.AuthRateLimit(loginPolicy, deps.Limiter, logg)).Post("/login", controllers.SellerLogin(deps.AuthService, logg))

			r.Group(func(r chi.Router) {
				r.Use(middleware.Auth(cfg.JWT, deps.Sellers, logg))

				r.Get("/profile", controllers.SellerProfile(deps.SellerService, logg))
				r.Patch("/profile", controllers.SellerUpdateProfile(deps.SellerService, logg))
				r.Get("/{id:[0-9]+}", controllers.SellerByID(deps.SellerService, logg))

				r.Route("/products", func(r chi.Router) {
					r.Get("/", controllers.SellerListProducts(deps.ProductService, logg))
					r.Post("/", controllers.SellerCreateProduct(deps.ProductService, logg))
					r.Get("/{id}", controllers.SellerGetProduct(deps.ProductService, logg))
					r.Patch("/{id}", controllers.SellerUpdateProduct(deps.ProductService, logg))
					r.Delete("/{id}", controllers.SellerDeleteProduct(deps.ProductService, logg))
				})
			})
		})
	})

	return r
}
