package main

import (
	"context"
	"errors"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/fekuna/omnipos-inventory-service/config"
	"github.com/fekuna/omnipos-inventory-service/internal/alert"
	"github.com/fekuna/omnipos-inventory-service/internal/auth"
	"github.com/fekuna/omnipos-inventory-service/internal/health"
	"github.com/fekuna/omnipos-inventory-service/internal/product"
	"github.com/fekuna/omnipos-inventory-service/migrations"
	"github.com/fekuna/omnipos-inventory-service/pkg/broker"
	"github.com/fekuna/omnipos-inventory-service/pkg/cache"
	"github.com/fekuna/omnipos-inventory-service/pkg/logger"
	"github.com/fekuna/omnipos-inventory-service/pkg/middleware"
	"github.com/fekuna/omnipos-inventory-service/pkg/postgres"
	"github.com/fekuna/omnipos-inventory-service/pkg/tracing"

	alertH "github.com/fekuna/omnipos-inventory-service/internal/alert/handler"
	alertRepoPkg "github.com/fekuna/omnipos-inventory-service/internal/alert/repository"
	alertUCPkg "github.com/fekuna/omnipos-inventory-service/internal/alert/usecase"

	invH "github.com/fekuna/omnipos-inventory-service/internal/inventory/handler"
	invListenerPkg "github.com/fekuna/omnipos-inventory-service/internal/inventory/listener"
	invRepoPkg "github.com/fekuna/omnipos-inventory-service/internal/inventory/repository"
	invUCPkg "github.com/fekuna/omnipos-inventory-service/internal/inventory/usecase"

	productClient "github.com/fekuna/omnipos-inventory-service/internal/product/client"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"google.golang.org/grpc"
	grpchealth "google.golang.org/grpc/health"
	"google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"
)

func main() {
	// 1. Load Configuration
	_ = godotenv.Load() // Load .env file if it exists
	cfg := config.LoadEnv()

	// 2. Initialize Logger
	logConfig := &logger.ZapLoggerConfig{
		IsDevelopment:     false,
		Encoding:          cfg.Logger.Encoding,
		Level:             cfg.Logger.Level,
		DisableCaller:     cfg.Logger.DisableCaller,
		DisableStacktrace: cfg.Logger.DisableStacktrace,
	}
	if cfg.Server.AppEnv == "development" || cfg.Server.AppEnv == "dev" {
		logConfig.IsDevelopment = true
	} else {
		logConfig.Encoding = "json"
		gin.SetMode(gin.ReleaseMode)
	}

	appLogger := logger.NewZapLogger(logConfig)
	defer appLogger.Sync()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// 3. Tracing
	shutdownTracing, err := tracing.Setup(ctx, &tracing.Config{
		Enabled:     cfg.Tracing.Enabled,
		Endpoint:    cfg.Tracing.Endpoint,
		ServiceName: cfg.Tracing.ServiceName,
	})
	if err != nil {
		appLogger.Fatal("Could not initialize tracing", zap.Error(err))
	}

	// 4. Connect to Database
	db, err := postgres.NewPostgres(&postgres.Config{
		Host:            cfg.Postgres.Host,
		Port:            cfg.Postgres.Port,
		User:            cfg.Postgres.User,
		Password:        cfg.Postgres.Password,
		DBName:          cfg.Postgres.DBName,
		SSLMode:         cfg.Postgres.SSLMode,
		MaxOpenConns:    cfg.Postgres.MaxOpenConns,
		MaxIdleConns:    cfg.Postgres.MaxIdleConns,
		ConnMaxLifetime: time.Duration(cfg.Postgres.ConnMaxLifetime) * time.Second,
		ConnMaxIdleTime: time.Duration(cfg.Postgres.ConnMaxIdleTime) * time.Second,
	})
	if err != nil {
		appLogger.Fatal("Could not connect to database", zap.Error(err))
	}
	defer db.Close()
	appLogger.Info("Connected to PostgreSQL database", zap.String("db_name", cfg.Postgres.DBName))

	if cfg.Postgres.AutoMigrate {
		if err := migrations.Apply(ctx, db); err != nil {
			appLogger.Fatal("Could not apply migrations", zap.Error(err))
		}
		names, _ := migrations.Names()
		appLogger.Info("Schema migrations applied", zap.Strings("migrations", names))
	}

	// 5. Product gate, optionally cached in Redis
	var gate product.Gate = productClient.NewHTTPClient(&productClient.Config{
		BaseURL: cfg.ProductService.BaseURL,
		Timeout: cfg.ProductService.Timeout,
		Retries: cfg.ProductService.Retries,
	}, appLogger)

	if cfg.Redis.Enabled {
		redisClient, err := cache.NewRedisClient(&cache.Config{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			appLogger.Warn("Could not connect to Redis, product lookups are uncached", zap.Error(err))
		} else {
			defer redisClient.Close()
			gate = productClient.NewCachedGate(gate, redisClient, cfg.ProductService.CacheTTL, appLogger)
			appLogger.Info("Connected to Redis", zap.String("addr", cfg.Redis.Addr))
		}
	}

	// 6. Alert notifications
	var notifier alert.Notifier
	if cfg.Kafka.ProducerEnabled {
		producer, err := broker.NewProducer(&broker.ProducerConfig{
			Brokers: cfg.Kafka.Brokers,
			Topic:   cfg.Kafka.AlertsTopic,
			Acks:    cfg.Kafka.Acks,
			Retries: cfg.Kafka.Retries,
		})
		if err != nil {
			appLogger.Warn("Could not create Kafka producer, alerts are logged only", zap.Error(err))
		} else {
			defer producer.Close()
			notifier = producer
			appLogger.Info("Connected to Kafka Producer", zap.String("topic", cfg.Kafka.AlertsTopic))
		}
	}

	// 7. Repositories and UseCases
	invRepo := invRepoPkg.NewPGRepository(db)
	alertRepo := alertRepoPkg.NewPGRepository(db)

	alertUC := alertUCPkg.NewAlertUseCase(alertRepo, gate, notifier, cfg.Ledger, appLogger)
	invUC := invUCPkg.NewInventoryUseCase(invRepo, gate, alertUC, cfg.Ledger, appLogger)

	// 8. Order event listener
	if cfg.Kafka.ListenerEnabled {
		kafkaConsumer := broker.NewConsumer(&broker.Config{
			Brokers: cfg.Kafka.Brokers,
			Topic:   cfg.Kafka.OrdersTopic,
			GroupID: cfg.Kafka.GroupID,
		})
		defer kafkaConsumer.Close()
		appLogger.Info("Connected to Kafka Consumer", zap.Strings("brokers", cfg.Kafka.Brokers), zap.String("topic", cfg.Kafka.OrdersTopic))

		invListener := invListenerPkg.NewInventoryListener(kafkaConsumer, invUC, appLogger)
		go invListener.Start(ctx)
	}

	// 9. Health
	healthServer := grpchealth.NewServer()
	checker := health.NewChecker(db, healthServer, appLogger)
	go checker.Watch(ctx, 15*time.Second)

	// 10. HTTP Server
	router := gin.New()
	router.Use(
		middleware.RequestID(),
		logger.GinMiddleware(appLogger),
		middleware.Recovery(appLogger),
		auth.Middleware(),
	)
	router.GET("/health", checker.Handler)

	api := router.Group("/api")
	invH.NewInventoryHandler(invUC, appLogger).RegisterRoutes(api)
	alertH.NewAlertHandler(alertUC, appLogger).RegisterRoutes(api)

	httpServer := &http.Server{
		Addr:              normalizePort(cfg.Server.HTTPPort),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// 11. gRPC Server (health and reflection)
	port := normalizePort(cfg.Server.GRPCPort)
	lis, err := net.Listen("tcp", port)
	if err != nil {
		log.Fatalf("failed to listen: %v", err)
	}

	grpcServer := grpc.NewServer()
	grpc_health_v1.RegisterHealthServer(grpcServer, healthServer)
	reflection.Register(grpcServer)

	// Graceful Shutdown
	go func() {
		appLogger.Info("Starting gRPC server", zap.String("port", port))
		if err := grpcServer.Serve(lis); err != nil {
			appLogger.Fatal("failed to serve gRPC", zap.Error(err))
		}
	}()
	go func() {
		appLogger.Info("Starting HTTP server", zap.String("addr", httpServer.Addr))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			appLogger.Fatal("failed to serve HTTP", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down server...")
	cancel()
	healthServer.Shutdown()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		appLogger.Error("HTTP server shutdown failed", zap.Error(err))
	}
	grpcServer.GracefulStop()
	if err := shutdownTracing(shutdownCtx); err != nil {
		appLogger.Error("Tracer shutdown failed", zap.Error(err))
	}
	appLogger.Info("Server stopped")
}

func normalizePort(port string) string {
	if !strings.Contains(port, ":") {
		return ":" + port
	}
	return port
}
