package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/redis/go-redis/v9"

	"github.com/musfiqshanta/launchmybiz-backend/internal/auth"
	"github.com/musfiqshanta/launchmybiz-backend/internal/cache"
	"github.com/musfiqshanta/launchmybiz-backend/internal/config"
	"github.com/musfiqshanta/launchmybiz-backend/internal/email"
	"github.com/musfiqshanta/launchmybiz-backend/internal/events"
	httpapi "github.com/musfiqshanta/launchmybiz-backend/internal/http"
	"github.com/musfiqshanta/launchmybiz-backend/internal/partner"
	"github.com/musfiqshanta/launchmybiz-backend/internal/payment"
	"github.com/musfiqshanta/launchmybiz-backend/internal/repository"
	"github.com/musfiqshanta/launchmybiz-backend/internal/service"
	"github.com/musfiqshanta/launchmybiz-backend/pkg/metrics"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg := config.Load()
	ctx := context.Background()

	// MongoDB
	mongoDB, err := repository.ConnectMongoDB(ctx, cfg.MongoURI, cfg.MongoDBName)
	if err != nil {
		logger.Error("failed to connect to MongoDB", "error", err)
		os.Exit(1)
	}
	defer mongoDB.Client().Disconnect(ctx)
	logger.Info("connected to MongoDB", "database", cfg.MongoDBName)

	if err := repository.EnsureOrderIndexes(ctx, mongoDB); err != nil {
		logger.Error("failed to create order indexes", "error", err)
		os.Exit(1)
	}
	if err := repository.EnsureUserIndexes(ctx, mongoDB); err != nil {
		logger.Error("failed to create user indexes", "error", err)
		os.Exit(1)
	}

	orderRepo := repository.NewMongoOrderRepository(mongoDB)
	userRepo := repository.NewMongoUserRepository(mongoDB)
	adminRepo := repository.NewMongoAdminRepository(mongoDB)

	// Redis
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       0,
	})
	defer redisClient.Close()
	if err := redisClient.Ping(ctx).Err(); err != nil {
		logger.Error("Redis connection failed", "error", err)
		os.Exit(1)
	}
	logger.Info("Redis ping succeeded", "addr", cfg.RedisAddr)
	quoteCache := cache.NewRedisQuoteCache(redisClient)

	// Kafka is optional; without brokers order events are dropped.
	publisher := events.NewPublisher(cfg.KafkaBrokers, cfg.OrderEventsTopic)
	defer publisher.Close()

	// Outbound integrations
	mailer, err := email.NewSMTPMailer(email.Config{
		Host:       cfg.SMTPHost,
		Port:       cfg.SMTPPort,
		Username:   cfg.SMTPUser,
		Password:   cfg.SMTPPass,
		AdminEmail: cfg.AdminEmail,
		LogoURL:    cfg.LogoURL,
	})
	if err != nil {
		logger.Error("failed to build SMTP mailer", "error", err)
		os.Exit(1)
	}

	corpnet := partner.NewClient(partner.Config{
		BaseURL:    cfg.CorpnetBaseURL,
		APIKey:     cfg.CorpnetAPIKey,
		APIUserPid: cfg.CorpnetAPIUserPid,
		PCID:       cfg.CorpnetPCID,
		ProductID:  cfg.CorpnetProductID,
	})

	stripeClient := payment.NewClient(cfg.StripeSecretKey, cfg.ClientURL)
	verifier := payment.NewVerifier(cfg.StripeWebhookSecret)

	orderService := service.NewOrderService(orderRepo, mailer, corpnet, publisher, logger)

	tokens := auth.NewTokenManager(cfg.JWTSecret)
	serverMetrics := metrics.NewServerMetrics("backend")

	router := httpapi.NewRouter(httpapi.RouterConfig{
		Webhook:        httpapi.NewWebhookHandler(verifier, orderService, serverMetrics, logger),
		Checkout:       httpapi.NewCheckoutHandler(stripeClient, logger, cfg.RequestTimeout),
		Packages:       httpapi.NewPackageHandler(corpnet, quoteCache, logger, cfg.RequestTimeout),
		Admin:          httpapi.NewAdminHandler(adminRepo, orderRepo, orderService, tokens, logger, cfg.RequestTimeout, cfg.IsProduction()),
		Customers:      httpapi.NewCustomerHandler(userRepo, tokens, logger, cfg.RequestTimeout),
		Tokens:         tokens,
		Admins:         adminRepo,
		Metrics:        serverMetrics,
		AllowedOrigins: cfg.AllowedOrigins,
		RequestTimeout: cfg.RequestTimeout,
	})

	server := &http.Server{
		Addr:    ":" + cfg.HTTPPort,
		Handler: router,
	}

	go func() {
		logger.Info("server listening", "port", cfg.HTTPPort, "env", cfg.Env)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server failed", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(ctx, cfg.ShutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("forced shutdown", "error", err)
	}
	logger.Info("server stopped")
}
