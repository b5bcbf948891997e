// internal/app/server.go
package app

import (
	"context"
	"fmt"
	"log"

	"artisan-catalog-service/internal/config"
	"artisan-catalog-service/internal/db"
	dcatalog "artisan-catalog-service/internal/domain/catalog"
	catalogHandler "artisan-catalog-service/internal/handlers/catalog"
	customerHandler "artisan-catalog-service/internal/handlers/customer"
	dispatchHandler "artisan-catalog-service/internal/handlers/dispatch"
	profileHandler "artisan-catalog-service/internal/handlers/profile"
	"artisan-catalog-service/internal/middleware"
	"artisan-catalog-service/internal/pkg/ratelimit"
	"artisan-catalog-service/internal/repository/postgres"
	artisansvc "artisan-catalog-service/internal/service/artisan"
	catalogsvc "artisan-catalog-service/internal/service/catalog"
	customersvc "artisan-catalog-service/internal/service/customer"
	dispatchsvc "artisan-catalog-service/internal/service/dispatch"
	"artisan-catalog-service/internal/storage"
	"artisan-catalog-service/internal/transport/twilio"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Server struct {
	cfg    config.AppConfig
	engine *gin.Engine
	logger *zap.Logger
}

func NewServer() *Server {
	cfg := config.Load()
	engine := gin.New()
	return &Server{cfg: cfg, engine: engine}
}

func (s *Server) Start() error {
	ctx := context.Background()

	// ----- Logger -----
	logger, err := zap.NewProduction()
	if err != nil {
		return fmt.Errorf("failed to build logger: %w", err)
	}
	defer logger.Sync()
	s.logger = logger

	// ----- PostgreSQL -----
	pool, err := postgres.Connect(ctx, s.cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("failed to connect to PostgreSQL: %w", err)
	}

	// ----- Redis -----
	redisClient, err := db.NewRedisClient(db.RedisConfig{
		Addr:     s.cfg.RedisAddr,
		Password: s.cfg.RedisPass,
		DB:       0,
		PoolSize: 10,
	})
	if err != nil {
		return fmt.Errorf("failed to connect to Redis: %w", err)
	}
	log.Println("[REDIS] connected")

	// ----- Object storage -----
	uploader, err := storage.NewS3Uploader(ctx, storage.S3Config{
		Bucket:        s.cfg.Storage.Bucket,
		Region:        s.cfg.Storage.Region,
		AccessKey:     s.cfg.Storage.AccessKey,
		SecretKey:     s.cfg.Storage.SecretKey,
		Endpoint:      s.cfg.Storage.Endpoint,
		PublicBaseURL: s.cfg.Storage.PublicBaseURL,
	})
	if err != nil {
		return fmt.Errorf("failed to set up object storage: %w", err)
	}

	// ----- Repositories -----
	customerRepo := postgres.NewCustomerRepository(pool)
	artisanRepo := postgres.NewArtisanRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	catalogRepo := postgres.NewCatalogRepository(pool)
	shareRepo := postgres.NewShareRepository(pool)

	// ----- Transport & rate limiting -----
	whatsapp := twilio.NewClient(
		s.cfg.Twilio.AccountSID,
		s.cfg.Twilio.AuthToken,
		s.cfg.Twilio.WhatsAppFrom,
		twilio.WithBaseURL(s.cfg.Twilio.BaseURL),
	)
	limiter := ratelimit.NewLimiter(redisClient, int64(s.cfg.Dispatch.MaxPerWindow), s.cfg.Dispatch.Window)

	// ----- Services -----
	customerService := customersvc.NewCustomerService(customerRepo, s.cfg.DefaultCountryCode, logger)
	artisanService := artisansvc.NewArtisanService(artisanRepo, logger)
	catalogService := catalogsvc.NewService(
		productRepo,
		catalogRepo,
		artisanRepo,
		uploader,
		map[dcatalog.Format]catalogsvc.Renderer{
			dcatalog.FormatPDF:   catalogsvc.NewPDFRenderer(),
			dcatalog.FormatImage: catalogsvc.NewImageRenderer(s.cfg.CatalogFontPath),
		},
		logger,
	)
	executor := dispatchsvc.NewExecutor(
		whatsapp,
		s.cfg.Dispatch.Concurrency,
		s.cfg.Dispatch.SendTimeout,
		s.cfg.Dispatch.CancelGrace,
		logger,
	)
	dispatchService := dispatchsvc.NewService(customerRepo, artisanRepo, shareRepo, executor, limiter, logger)

	// ----- Handlers -----
	customerHandlerInst := customerHandler.NewCustomerHandler(customerService)
	catalogHandlerInst := catalogHandler.NewCatalogHandler(catalogService)
	dispatchHandlerInst := dispatchHandler.NewDispatchHandler(dispatchService, catalogService)
	profileHandlerInst := profileHandler.NewProfileHandler(artisanService)

	// ----- Middlewares -----
	authMiddleware := middleware.NewAuthMiddleware(s.cfg.JWTSecret)

	s.engine.Use(
		middleware.RecoveryMiddleware(logger),
		middleware.LoggingMiddleware(logger),
		middleware.CORSMiddleware(),
	)

	// ----- Router -----
	handlers := &Handlers{
		CustomerHandler: customerHandlerInst,
		CatalogHandler:  catalogHandlerInst,
		DispatchHandler: dispatchHandlerInst,
		ProfileHandler:  profileHandlerInst,
		AuthMiddleware:  authMiddleware,
	}
	SetupRouter(s.engine, handlers)

	// ----- Start HTTP -----
	log.Printf("server running on %s", s.cfg.HTTPAddr)
	return s.engine.Run(s.cfg.HTTPAddr)
}
