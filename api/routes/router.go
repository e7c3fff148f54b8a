package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/peacein/brewpoint-backend/api/controllers"
	"github.com/peacein/brewpoint-backend/api/middleware"
	"github.com/peacein/brewpoint-backend/internal/cart"
	checkoutsvc "github.com/peacein/brewpoint-backend/internal/checkout"
	"github.com/peacein/brewpoint-backend/internal/menu"
	"github.com/peacein/brewpoint-backend/internal/orders"
	"github.com/peacein/brewpoint-backend/pkg/config"
	"github.com/peacein/brewpoint-backend/pkg/db"
	"github.com/peacein/brewpoint-backend/pkg/logger"
	"github.com/peacein/brewpoint-backend/pkg/redis"
)

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	dbP db.Pinger,
	cacheP redis.Pinger,
	registry *prometheus.Registry,
	menuService menu.Service,
	cartService cart.Service,
	checkoutService checkoutsvc.Service,
	ordersService orders.Service,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(),
	)

	r.Get("/healthz", controllers.HealthLive(cfg))
	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, dbP, cacheP, logg))
	})

	if registry != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
	}

	r.Route("/api", func(r chi.Router) {
		r.Route("/menu", func(r chi.Router) {
			r.Get("/", controllers.MenuList(menuService, logg))
			r.Get("/options", controllers.MenuOptions(menuService, logg))
			r.Get("/{menuId}", controllers.MenuDetail(menuService, logg))
		})

		r.Route("/cart", func(r chi.Router) {
			r.Use(middleware.Session(logg))
			r.Get("/", controllers.CartFetch(cartService, logg))
			r.Post("/", controllers.CartAdd(cartService, logg))
			r.Delete("/", controllers.CartClear(cartService, logg))
			r.Put("/{lineId}", controllers.CartUpdateLine(cartService, logg))
			r.Delete("/{lineId}", controllers.CartRemoveLine(cartService, logg))
		})

		r.Route("/orders", func(r chi.Router) {
			r.Use(middleware.Session(logg))
			r.Post("/", controllers.PlaceOrder(checkoutService, cartService, logg))
			r.Get("/", controllers.OrderList(ordersService, logg))
			r.Get("/{orderId}", controllers.OrderDetail(ordersService, logg))
			r.Put("/{orderId}/status", controllers.OrderUpdateStatus(ordersService, logg))
		})

		r.Route("/admin", func(r chi.Router) {
			r.Put("/menu/{menuId}/stock", controllers.AdminSetStock(menuService, logg))
		})
	})

	return r
}
