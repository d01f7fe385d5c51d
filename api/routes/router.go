package routes

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/marianalima/joalheria-backend/api/controllers"
	"github.com/marianalima/joalheria-backend/api/middleware"
	"github.com/marianalima/joalheria-backend/internal/adminauth"
	"github.com/marianalima/joalheria-backend/internal/cart"
	"github.com/marianalima/joalheria-backend/internal/catalog"
	"github.com/marianalima/joalheria-backend/internal/messages"
	"github.com/marianalima/joalheria-backend/internal/orders"
	"github.com/marianalima/joalheria-backend/internal/shippingsvc"
	"github.com/marianalima/joalheria-backend/internal/testimonials"
	"github.com/marianalima/joalheria-backend/internal/users"
	"github.com/marianalima/joalheria-backend/pkg/auth/session"
	"github.com/marianalima/joalheria-backend/pkg/cep"
	"github.com/marianalima/joalheria-backend/pkg/config"
	"github.com/marianalima/joalheria-backend/pkg/logger"
	"github.com/marianalima/joalheria-backend/pkg/metrics"
	"github.com/marianalima/joalheria-backend/pkg/redis"
)

// Deps carries everything the router wires into handlers.
type Deps struct {
	Config *config.Config
	Logger *logger.Logger

	DBPinger    controllers.Pinger
	RedisClient *redis.Client

	Sessions    *session.Manager
	HTTPMetrics *metrics.HTTPMetrics
	Gatherer    prometheus.Gatherer

	CatalogService     catalog.Service
	OrderService       orders.Service
	UserService        users.Service
	AdminAuth          *adminauth.Service
	ShippingService    *shippingsvc.Service
	CartStore          *cart.Store
	TestimonialService testimonials.Service
	MessageService     messages.Service

	CEPClient       *cep.Client
	PaymentProvider controllers.PreferenceCreator
}

// NewRouter assembles the full HTTP surface.
func NewRouter(deps Deps) http.Handler {
	cfg := deps.Config
	logg := deps.Logger

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(cfg.App.CORSOrigins...),
		middleware.Metrics(deps.HTTPMetrics),
		middleware.Session(deps.Sessions, cfg.Session, logg),
	)

	loginPolicy := middleware.NewAuthRateLimitPolicy(
		"login",
		cfg.RateLimit.LoginWindow,
		cfg.RateLimit.LoginIPLimit,
		cfg.RateLimit.LoginEmailLimit,
	)
	adminLoginPolicy := middleware.NewAuthRateLimitPolicy(
		"admin-login",
		cfg.RateLimit.LoginWindow,
		cfg.RateLimit.LoginIPLimit,
		0,
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, deps.DBPinger, deps.RedisClient))
	})

	if deps.Gatherer != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(deps.Gatherer, promhttp.HandlerOpts{}))
	}

	adminOnly := middleware.AdminRequired(deps.AdminAuth, logg)

	r.Route("/api", func(r chi.Router) {
		r.Get("/products", controllers.ListProducts(deps.CatalogService, logg))
		r.Get("/products/{productId}", controllers.GetProduct(deps.CatalogService, logg))
		r.With(adminOnly).Post("/products", controllers.CreateProduct(deps.CatalogService, logg))
		r.With(adminOnly).Patch("/products/{productId}", controllers.UpdateProduct(deps.CatalogService, logg))
		r.With(adminOnly).Delete("/products/{productId}", controllers.DeleteProduct(deps.CatalogService, logg))

		r.Route("/cart", func(r chi.Router) {
			r.Get("/", controllers.GetCart(deps.CartStore, logg))
			r.Delete("/", controllers.ClearCart(deps.CartStore, logg))
			r.Post("/items", controllers.AddCartItem(deps.CartStore, logg))
			r.Patch("/items", controllers.UpdateCartItem(deps.CartStore, logg))
			r.Delete("/items", controllers.RemoveCartItem(deps.CartStore, logg))
		})

		r.Post("/shipping/quote", controllers.QuoteShipping(deps.ShippingService, logg))
		r.Get("/cep/{cep}", controllers.LookupCEP(deps.CEPClient, logg))

		r.Post("/orders", controllers.CreateOrder(deps.OrderService, cfg, logg))
		r.With(middleware.CustomerRequired(logg)).
			Get("/my-orders", controllers.MyOrders(deps.OrderService, deps.UserService, logg))
		r.With(adminOnly).Get("/orders", controllers.AdminListOrders(deps.OrderService, logg))
		r.With(adminOnly).Get("/orders/{orderId}", controllers.AdminGetOrder(deps.OrderService, logg))
		r.With(adminOnly).Patch("/orders/{orderId}/status", controllers.UpdateOrderStatus(deps.OrderService, logg))
		r.With(adminOnly).Delete("/orders/{orderId}", controllers.DeleteOrder(deps.OrderService, logg))

		r.Post("/payments/preference", controllers.CreatePaymentPreference(deps.PaymentProvider, deps.OrderService, cfg, logg))

		r.Post("/register", controllers.Register(deps.UserService, deps.Sessions, cfg.Session, logg))
		r.With(middleware.AuthRateLimit(loginPolicy, deps.RedisClient, logg)).
			Post("/login", controllers.Login(deps.UserService, deps.Sessions, cfg.Session, logg))
		r.Post("/logout", controllers.Logout(deps.Sessions, cfg.Session, logg))
		r.With(middleware.CustomerRequired(logg)).
			Get("/user", controllers.CurrentUser(deps.UserService, logg))
		r.With(adminOnly).Get("/users", controllers.AdminListUsers(deps.UserService, logg))
		r.With(adminOnly).Delete("/users/{userId}", controllers.DeleteUser(deps.UserService, logg))

		r.Get("/testimonials", controllers.ListTestimonials(deps.TestimonialService, logg))
		r.Post("/testimonials", controllers.CreateTestimonial(deps.TestimonialService, logg))
		r.With(adminOnly).Patch("/testimonials/{testimonialId}/response", controllers.RespondTestimonial(deps.TestimonialService, logg))
		r.With(adminOnly).Delete("/testimonials/{testimonialId}", controllers.DeleteTestimonial(deps.TestimonialService, logg))

		r.Post("/contact", controllers.CreateContactMessage(deps.MessageService, logg))
		r.With(adminOnly).Get("/messages", controllers.AdminListMessages(deps.MessageService, logg))
		r.With(adminOnly).Patch("/messages/{messageId}/read", controllers.SetMessageRead(deps.MessageService, logg))
		r.With(adminOnly).Delete("/messages/{messageId}", controllers.DeleteMessage(deps.MessageService, logg))

		r.Route("/admin", func(r chi.Router) {
			r.With(middleware.AuthRateLimit(adminLoginPolicy, deps.RedisClient, logg)).
				Post("/login", controllers.AdminLogin(deps.AdminAuth, deps.Sessions, cfg.Session, logg))
			r.Post("/logout", controllers.AdminLogout(deps.Sessions, cfg.Session, logg))
			r.Get("/check", controllers.AdminCheck(deps.AdminAuth, logg))
		})
	})

	mountUploads(r, cfg.Uploads)

	return r
}

// mountUploads serves product images from local disk.
func mountUploads(r chi.Router, cfg config.UploadsConfig) {
	if cfg.Dir == "" {
		return
	}
	prefix := cfg.Path
	if !strings.HasPrefix(prefix, "/") {
		prefix = "/" + prefix
	}
	prefix = strings.TrimSuffix(prefix, "/")

	fs := http.StripPrefix(prefix, http.FileServer(http.Dir(cfg.Dir)))
	r.Get(prefix+"/*", fs.ServeHTTP)
}
