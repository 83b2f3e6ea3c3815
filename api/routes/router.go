package routes

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/kareemadel/printshop-backend/api/controllers"
	"github.com/kareemadel/printshop-backend/api/middleware"
	authsvc "github.com/kareemadel/printshop-backend/internal/auth"
	"github.com/kareemadel/printshop-backend/internal/cart"
	"github.com/kareemadel/printshop-backend/internal/catalog"
	"github.com/kareemadel/printshop-backend/internal/invoice"
	"github.com/kareemadel/printshop-backend/internal/pricing"
	"github.com/kareemadel/printshop-backend/pkg/auth/session"
	"github.com/kareemadel/printshop-backend/pkg/config"
	"github.com/kareemadel/printshop-backend/pkg/logger"
	"github.com/kareemadel/printshop-backend/pkg/metrics"
)

type sessionManager interface {
	session.AccessSessionChecker
	Rotate(context.Context, string, string) (string, string, error)
	Revoke(context.Context, string) error
}

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	dbP controllers.Pinger,
	redisP controllers.Pinger,
	registry *prometheus.Registry,
	httpMetrics *metrics.HTTPMetrics,
	sessionManager sessionManager,
	authService authsvc.Service,
	catalogService catalog.Service,
	cartService cart.Service,
	pricingService pricing.Service,
	invoiceService invoice.Service,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.Metrics(httpMetrics),
		middleware.CORS(),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, dbP, redisP))
	})

	if registry != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
	}

	r.Route("/api/v1/auth", func(r chi.Router) {
		r.Post("/login", controllers.AuthLogin(authService, logg))
		r.Post("/logout", controllers.AuthLogout(sessionManager, cfg.JWT, logg))
		r.Post("/refresh", controllers.AuthRefresh(sessionManager, cfg.JWT, logg))
	})

	// Customer surface: anonymous, keyed by the cart session cookie.
	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.CartSession(cfg.Cart, logg))

		r.Route("/catalog", func(r chi.Router) {
			r.Get("/years", controllers.CatalogYears(catalogService, logg))
			r.Get("/years/{yearId}/subjects", controllers.CatalogSubjects(catalogService, logg))
			r.Get("/subjects/{subjectId}/books", controllers.CatalogBooks(catalogService, logg))
			r.Get("/books", controllers.CatalogBookTree(catalogService, logg))
			r.Get("/options", controllers.CatalogOptions(catalogService, logg))
		})

		r.Route("/cart", func(r chi.Router) {
			r.Get("/", controllers.CartList(cartService, logg))
			r.Delete("/", controllers.CartClear(cartService, logg))
			r.Post("/items/{bookId}", controllers.CartAdd(cartService, logg))
			r.Delete("/items/{bookId}", controllers.CartRemove(cartService, logg))
			r.Post("/quote", controllers.CartQuote(cartService, pricingService, logg))
		})

		r.Post("/invoices", controllers.InvoiceCreate(cartService, invoiceService, logg))
	})

	r.Route("/api/admin/v1", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, sessionManager, logg))

		r.Get("/dashboard", controllers.AdminDashboard(catalogService, logg))

		r.Route("/years", func(r chi.Router) {
			r.Get("/", controllers.AdminListYears(catalogService, logg))
			r.Post("/", controllers.AdminCreateYear(catalogService, logg))
			r.Patch("/{yearId}", controllers.AdminUpdateYear(catalogService, logg))
			r.Delete("/{yearId}", controllers.AdminDeleteYear(catalogService, logg))
		})

		r.Route("/subjects", func(r chi.Router) {
			r.Get("/", controllers.AdminListSubjects(catalogService, logg))
			r.Post("/", controllers.AdminCreateSubject(catalogService, logg))
			r.Patch("/{subjectId}", controllers.AdminUpdateSubject(catalogService, logg))
			r.Delete("/{subjectId}", controllers.AdminDeleteSubject(catalogService, logg))
		})

		r.Route("/books", func(r chi.Router) {
			r.Get("/", controllers.AdminListBooks(catalogService, logg))
			r.Post("/", controllers.AdminCreateBook(catalogService, logg))
			r.Patch("/{bookId}", controllers.AdminUpdateBook(catalogService, logg))
			r.Delete("/{bookId}", controllers.AdminDeleteBook(catalogService, logg))
		})

		r.Route("/print-tiers", func(r chi.Router) {
			r.Get("/", controllers.AdminListPrintTiers(catalogService, logg))
			r.Post("/", controllers.AdminCreatePrintTier(catalogService, logg))
			r.Patch("/{tierId}", controllers.AdminUpdatePrintTier(catalogService, logg))
			r.Delete("/{tierId}", controllers.AdminDeletePrintTier(catalogService, logg))
		})

		r.Route("/addons", func(r chi.Router) {
			r.Get("/", controllers.AdminListAddOns(catalogService, logg))
			r.Post("/", controllers.AdminCreateAddOn(catalogService, logg))
			r.Patch("/{addonId}", controllers.AdminUpdateAddOn(catalogService, logg))
			r.Delete("/{addonId}", controllers.AdminDeleteAddOn(catalogService, logg))
		})

		r.Route("/invoices", func(r chi.Router) {
			r.Get("/", controllers.AdminListInvoices(invoiceService, logg))
			r.Get("/{invoiceId}", controllers.AdminGetInvoice(invoiceService, logg))
		})
	})

	return r
}
