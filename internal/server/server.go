package server

import (
	"context"
	"database/sql"
	"fmt"
	"net"
	"net/http"
	"time"

	"storefront-cms/internal/assets"
	"storefront-cms/internal/config"
	"storefront-cms/internal/middleware"
	"storefront-cms/internal/payment"
	"storefront-cms/internal/repository"
	"storefront-cms/internal/service"
	"storefront-cms/internal/transport"

	"github.com/go-chi/chi/v5"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

type Server struct {
	*http.Server
	config *config.Config
	logger *zap.Logger
	db     *sql.DB
	redis  *redis.Client
}

func NewServer(cfg *config.Config, logger *zap.Logger, db *sql.DB) (*Server, error) {
	router := chi.NewRouter()

	for _, mw := range middleware.DefaultMiddlewareStack() {
		router.Use(mw)
	}
	router.Use(middleware.LoggingMiddleware(logger))
	router.Use(middleware.ErrorHandlingMiddleware(logger))
	router.Use(middleware.AuthMiddleware(cfg.Auth.JWTSecret, cfg.Auth.SessionCookie, logger))

	router.Get("/health", healthHandler(db))

	redisClient := redis.NewClient(&redis.Options{
		Addr:     net.JoinHostPort(cfg.Redis.Host, cfg.Redis.Port),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	// Initialize repositories
	storeRepo := repository.NewStoreRepository(db)
	billboardRepo := repository.NewBillboardRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	sizeRepo := repository.NewSizeRepository(db)
	colorRepo := repository.NewColorRepository(db)
	productRepo := repository.NewProductRepository(db)
	orderRepo := repository.NewOrderRepository(db)

	// Initialize services
	storeService := service.NewStoreService(storeRepo)
	gateway := payment.NewStripeGateway(cfg.Stripe.SecretKey, cfg.Stripe.WebhookSecret, nil)
	checkoutService := service.NewCheckoutService(storeService, productRepo, orderRepo, gateway, cfg.Stripe.StorefrontURL)

	requireUser := middleware.RequireUser(logger)
	checkoutLimit := middleware.RateLimitMiddleware(redisClient, middleware.RateLimitConfig{
		RequestsPerWindow: cfg.RateLimit.CheckoutRequests,
		Window:            cfg.RateLimit.CheckoutWindow,
		KeyPrefix:         "ratelimit:checkout",
	}, logger)

	// Storefront-facing routes carry their own CORS policy
	transport.NewCheckoutHandler(checkoutService, logger).RegisterRoutes(router, checkoutLimit)

	var imageHost transport.ImageHost
	if cfg.Cloudinary.URL != "" {
		host, err := assets.NewCloudinaryHost(cfg.Cloudinary.URL)
		if err != nil {
			redisClient.Close()
			return nil, err
		}
		imageHost = host
	}

	router.Group(func(r chi.Router) {
		r.Use(middleware.CORSMiddleware(cfg.Server.AllowedOrigins, cfg.IsDevelopment()))

		transport.NewStoreHandler(storeService, logger).RegisterRoutes(r, requireUser)
		transport.NewBillboardHandler(service.NewBillboardService(storeService, billboardRepo), logger).RegisterRoutes(r, requireUser)
		transport.NewCategoryHandler(service.NewCategoryService(storeService, categoryRepo), logger).RegisterRoutes(r, requireUser)
		transport.NewSizeHandler(service.NewSizeService(storeService, sizeRepo), logger).RegisterRoutes(r, requireUser)
		transport.NewColorHandler(service.NewColorService(storeService, colorRepo), logger).RegisterRoutes(r, requireUser)
		transport.NewProductHandler(service.NewProductService(storeService, productRepo), logger).RegisterRoutes(r, requireUser)
		transport.NewOrderHandler(service.NewOverviewService(storeService, productRepo, orderRepo), logger).RegisterRoutes(r, requireUser)

		if imageHost != nil {
			transport.NewImageHandler(storeService, imageHost, logger).RegisterRoutes(r, requireUser)
		} else {
			logger.Info("CLOUDINARY_URL not set, image upload routes disabled")
		}
	})

	server := &Server{
		Server: &http.Server{
			Addr:         fmt.Sprintf(":%s", cfg.Server.Port),
			Handler:      router,
			IdleTimeout:  time.Minute,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 30 * time.Second,
		},
		config: cfg,
		logger: logger,
		db:     db,
		redis:  redisClient,
	}

	return server, nil
}

func healthHandler(db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), time.Second)
		defer cancel()

		if err := db.PingContext(ctx); err != nil {
			middleware.RespondWithJSON(w, http.StatusServiceUnavailable, map[string]string{
				"status":   "degraded",
				"database": err.Error(),
			})
			return
		}

		middleware.RespondWithJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}

func (s *Server) Close() error {
	s.logger.Info("Closing server resources")

	if s.redis != nil {
		if err := s.redis.Close(); err != nil {
			s.logger.Error("Failed to close redis client", zap.Error(err))
		}
	}

	if s.db != nil {
		if err := s.db.Close(); err != nil {
			s.logger.Error("Failed to close database connection", zap.Error(err))
		}
	}

	s.logger.Sync()
	return nil
}
