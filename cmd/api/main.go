package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/marianalima/joalheria-backend/api/routes"
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
	"github.com/marianalima/joalheria-backend/pkg/db"
	"github.com/marianalima/joalheria-backend/pkg/logger"
	"github.com/marianalima/joalheria-backend/pkg/metrics"
	"github.com/marianalima/joalheria-backend/pkg/migrate"
	"github.com/marianalima/joalheria-backend/pkg/payments"
	"github.com/marianalima/joalheria-backend/pkg/redis"
	"github.com/marianalima/joalheria-backend/pkg/shipping"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	dbClient, err := db.New(context.Background(), cfg.DB, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing database", err)
		}
	}()

	if err := migrate.MaybeRunDev(context.Background(), cfg, logg, dbClient); err != nil {
		logg.Error(context.Background(), "failed to run dev migrations", err)
		os.Exit(1)
	}

	redisClient, err := redis.New(context.Background(), cfg.Redis, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap redis", err)
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing redis", err)
		}
	}()

	sessionManager, err := session.NewManager(redisClient, cfg.Session)
	if err != nil {
		logg.Error(context.Background(), "failed to create session manager", err)
		os.Exit(1)
	}

	catalogService, err := catalog.NewService(catalog.NewRepository(dbClient.DB()))
	if err != nil {
		logg.Error(context.Background(), "failed to create catalog service", err)
		os.Exit(1)
	}
	if cfg.App.SeedCatalog {
		seeded, err := catalogService.Seed(context.Background())
		if err != nil {
			logg.Error(context.Background(), "failed to seed catalog", err)
			os.Exit(1)
		}
		if seeded > 0 {
			ctx := logg.WithField(context.Background(), "products", seeded)
			logg.Info(ctx, "seeded catalog")
		}
	}

	var rateFetcher shippingsvc.RateFetcher
	if cfg.Shipping.APIURL != "" {
		shippingClient, err := shipping.NewClient(cfg.Shipping.APIURL, cfg.Shipping.APIToken, cfg.Shipping.Origin)
		if err != nil {
			logg.Error(context.Background(), "failed to create shipping client", err)
			os.Exit(1)
		}
		rateFetcher = shippingClient
	} else {
		logg.Warn(context.Background(), "shipping api not configured, serving fallback rates")
	}
	shippingService, err := shippingsvc.NewService(rateFetcher, redisClient, cfg.Shipping.CacheTTL, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create shipping service", err)
		os.Exit(1)
	}

	orderService, err := orders.NewService(
		orders.NewRepository(dbClient.DB()),
		catalog.NewRepository(dbClient.DB()),
		shippingService,
	)
	if err != nil {
		logg.Error(context.Background(), "failed to create order service", err)
		os.Exit(1)
	}

	userService, err := users.NewService(users.NewRepository(dbClient.DB()), cfg.Password)
	if err != nil {
		logg.Error(context.Background(), "failed to create user service", err)
		os.Exit(1)
	}

	testimonialService, err := testimonials.NewService(testimonials.NewRepository(dbClient.DB()))
	if err != nil {
		logg.Error(context.Background(), "failed to create testimonial service", err)
		os.Exit(1)
	}

	messageService, err := messages.NewService(messages.NewRepository(dbClient.DB()))
	if err != nil {
		logg.Error(context.Background(), "failed to create message service", err)
		os.Exit(1)
	}

	cepClient, err := cep.NewClient(cfg.CEP.BaseURL)
	if err != nil {
		logg.Error(context.Background(), "failed to create cep client", err)
		os.Exit(1)
	}

	deps := routes.Deps{
		Config:      cfg,
		Logger:      logg,
		DBPinger:    dbClient,
		RedisClient: redisClient,
		Sessions:    sessionManager,

		CatalogService:     catalogService,
		OrderService:       orderService,
		UserService:        userService,
		AdminAuth:          adminauth.NewService(cfg.Admin),
		ShippingService:    shippingService,
		CartStore:          cart.NewStore(cart.NewRedisKV(redisClient, cfg.Redis.CartTTL)),
		TestimonialService: testimonialService,
		MessageService:     messageService,
		CEPClient:          cepClient,
	}

	if cfg.Payments.AccessToken != "" {
		paymentClient, err := payments.NewClient(cfg.Payments.APIURL, cfg.Payments.AccessToken)
		if err != nil {
			logg.Error(context.Background(), "failed to create payment client", err)
			os.Exit(1)
		}
		deps.PaymentProvider = paymentClient
	} else {
		logg.Warn(context.Background(), "payment provider not configured, checkout falls back to whatsapp handoff")
	}

	deps.HTTPMetrics = metrics.NewHTTPMetrics(prometheus.DefaultRegisterer)
	deps.Gatherer = prometheus.DefaultGatherer

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr:    addr,
		Handler: routes.NewRouter(deps),
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.ListenAndServe()
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil && err != http.ErrServerClosed {
			logg.Error(ctx, "api server stopped unexpectedly", err)
			os.Exit(1)
		}
	case <-stop:
		logg.Info(ctx, "shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logg.Error(ctx, "graceful shutdown failed", err)
		}
	}
}
