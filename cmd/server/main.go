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

	"github.com/fekuna/perfume-order-service/config"
	"github.com/fekuna/perfume-order-service/internal/event"
	"github.com/fekuna/perfume-order-service/internal/notification"
	"github.com/fekuna/perfume-order-service/internal/order"
	orderH "github.com/fekuna/perfume-order-service/internal/order/handler"
	orderRepoPkg "github.com/fekuna/perfume-order-service/internal/order/repository"
	orderUCPkg "github.com/fekuna/perfume-order-service/internal/order/usecase"
	"github.com/fekuna/perfume-order-service/internal/pricing"
	"github.com/fekuna/perfume-order-service/pkg/broker"
	"github.com/fekuna/perfume-order-service/pkg/cache"
	"github.com/fekuna/perfume-order-service/pkg/database"
	"github.com/fekuna/perfume-order-service/pkg/i18n"
	"github.com/fekuna/perfume-order-service/pkg/logger"
	"github.com/fekuna/perfume-order-service/pkg/middleware"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"
)

func main() {
	// 1. Load Configuration
	_ = godotenv.Load()
	cfg, err := config.LoadEnv()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	// 2. Initialize Logger
	logConfig := &logger.ZapLoggerConfig{
		IsDevelopment:     cfg.IsDevelopment(),
		Encoding:          cfg.LogEncoding(),
		Level:             cfg.LogLevel(),
		DisableCaller:     cfg.Logger.DisableCaller,
		DisableStacktrace: cfg.Logger.DisableStacktrace,
	}

	appLogger := logger.NewZapLogger(logConfig)
	defer appLogger.Sync()

	// 3. Initialize i18n
	translator, err := i18n.New(cfg.I18n.DefaultLanguage)
	if err != nil {
		appLogger.Fatal("Could not load locales", zap.Error(err))
	}
	for _, path := range cfg.I18n.ExtraLocales {
		if err := translator.Load(path); err != nil {
			appLogger.Warn("Failed to load locale file", zap.String("path", path), zap.Error(err))
		}
	}

	// 4. Initialize Sheet Store
	var repo order.Repository
	switch cfg.Store.Driver {
	case "memory":
		repo = orderRepoPkg.NewMemoryRepository()
		appLogger.Warn("Using in-memory sheet store; orders are lost on restart")
	default:
		db, err := database.NewPostgres(&database.Config{
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

		pgRepo := orderRepoPkg.NewPGRepository(db)
		if err := pgRepo.Migrate(context.Background()); err != nil {
			appLogger.Fatal("Could not migrate sheet store", zap.Error(err))
		}
		repo = pgRepo
		appLogger.Info("Connected to PostgreSQL database", zap.String("db_name", cfg.Postgres.DBName))
	}

	// 5. Initialize Redis (duplicate submission guard)
	var locker order.Locker
	if cfg.Redis.Enabled {
		redisClient, err := cache.NewRedisClient(&cache.Config{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			appLogger.Warn("Could not connect to Redis (duplicate submission guard disabled)", zap.Error(err))
		} else {
			defer redisClient.Close()
			locker = redisClient
			appLogger.Info("Connected to Redis", zap.String("addr", cfg.Redis.Addr))
		}
	}

	// 6. Initialize Kafka Producer
	var publisher order.Publisher
	if cfg.Kafka.Enabled {
		producer := broker.NewProducer(&broker.Config{
			Brokers: cfg.Kafka.Brokers,
			Topic:   cfg.Kafka.Topic,
		})
		defer producer.Close()
		publisher = event.NewPublisher(producer)
		appLogger.Info("Kafka producer ready", zap.Strings("brokers", cfg.Kafka.Brokers), zap.String("topic", cfg.Kafka.Topic))
	}

	// 7. Initialize Mail Notifier
	var notifier order.Notifier
	if cfg.Mail.Enabled {
		sender, err := notification.NewSMTPSender(&notification.SMTPConfig{
			Host:     cfg.Mail.Host,
			Port:     cfg.Mail.Port,
			Username: cfg.Mail.Username,
			Password: cfg.Mail.Password,
			From:     cfg.Mail.From,
		})
		if err != nil {
			appLogger.Warn("Could not configure mail sender (notifications disabled)", zap.Error(err))
		} else {
			notifier = notification.NewMailNotifier(sender, cfg.Mail.Recipients, appLogger)
			appLogger.Info("Mail notifier ready", zap.Int("recipients", len(cfg.Mail.Recipients)))
		}
	}

	// 8. Initialize UseCase and Handler
	loc, err := time.LoadLocation(cfg.Order.Timezone)
	if err != nil {
		appLogger.Fatal("Invalid order timezone", zap.Error(err))
	}
	orderUC := orderUCPkg.NewOrderUseCase(repo, notifier, publisher, locker, orderUCPkg.Options{
		Pricing: pricing.Table{
			PriceSmall:            cfg.Order.PriceSmall,
			PriceLarge:            cfg.Order.PriceLarge,
			FreeShippingThreshold: cfg.Order.FreeShippingThreshold,
			ShippingFee:           cfg.Order.ShippingFee,
		},
		Location: loc,
		Sheets: orderUCPkg.SheetNames{
			AI:              cfg.Order.AISheet,
			Perfumer:        cfg.Order.PerfumerSheet,
			Shipping:        cfg.Order.ShippingSheet,
			ShippingAliases: cfg.Order.ShippingSheetAliases,
			Errors:          cfg.Order.ErrorSheet,
		},
		LockTTL: cfg.Redis.SubmitLockTTL,
		Now:     time.Now,
	}, appLogger)

	orderHandler := orderH.NewOrderHandler(orderUC, translator, appLogger)

	// 9. Start HTTP Server
	httpServer := &http.Server{
		Addr:              normalizePort(cfg.Server.HTTPPort),
		Handler:           orderH.NewRouter(orderHandler, cfg.Server.AllowedOrigins),
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		appLogger.Info("Starting HTTP server", zap.String("addr", httpServer.Addr))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			appLogger.Fatal("failed to serve http", zap.Error(err))
		}
	}()

	// 10. Start gRPC Health Server
	port := normalizePort(cfg.Server.GRPCPort)
	lis, err := net.Listen("tcp", port)
	if err != nil {
		appLogger.Fatal("failed to listen", zap.Error(err))
	}

	grpcServer := grpc.NewServer(
		grpc.UnaryInterceptor(middleware.UnaryLogging(appLogger)),
	)
	healthServer := health.NewServer()
	healthpb.RegisterHealthServer(grpcServer, healthServer)
	healthServer.SetServingStatus("", healthpb.HealthCheckResponse_SERVING)
	reflection.Register(grpcServer)

	appLogger.Info("Starting gRPC server", zap.String("port", port))
	go func() {
		if err := grpcServer.Serve(lis); err != nil {
			appLogger.Fatal("failed to serve", zap.Error(err))
		}
	}()

	// Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down server...")
	healthServer.Shutdown()

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := httpServer.Shutdown(ctx); err != nil {
		appLogger.Error("HTTP shutdown did not complete", zap.Error(err))
	}
	grpcServer.GracefulStop()
	appLogger.Info("Server stopped")
}

func normalizePort(port string) string {
	if !strings.HasPrefix(port, ":") && !strings.Contains(port, ":") {
		return ":" + port
	}
	return port
}
