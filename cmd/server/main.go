package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/fathima-sithara/socialnet/internal/auth"
	"github.com/fathima-sithara/socialnet/internal/config"
	"github.com/fathima-sithara/socialnet/internal/events"
	"github.com/fathima-sithara/socialnet/internal/handlers"
	"github.com/fathima-sithara/socialnet/internal/logger"
	"github.com/fathima-sithara/socialnet/internal/middleware"
	"github.com/fathima-sithara/socialnet/internal/realtime"
	"github.com/fathima-sithara/socialnet/internal/repository"
	"github.com/fathima-sithara/socialnet/internal/routes"
	"github.com/fathima-sithara/socialnet/internal/service"
)

func main() {
	_ = godotenv.Load() // load .env if present

	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "config.yaml"
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatalf("config load: %v", err)
	}

	zlog, err := logger.New(logger.Config{Development: cfg.App.Env != "production"})
	if err != nil {
		log.Fatalf("logger init: %v", err)
	}
	defer func() { _ = zlog.Sync() }()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	mc, err := repository.Connect(ctx, cfg.Mongo.URI)
	if err != nil {
		zlog.Fatal("mongo connect failed", zap.Error(err))
	}
	defer func() { _ = mc.Disconnect(context.Background()) }()
	db := mc.Database(cfg.Mongo.Database)

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	defer rdb.Close()

	producer := events.NewProducer(cfg.Kafka.Brokers, zlog)
	defer producer.Close()

	userRepo := repository.NewUserRepository(db)
	messageRepo := repository.NewMessageRepository(db)
	notifRepo := repository.NewNotificationRepository(db)
	postRepo := repository.NewPostRepository(db)
	groupRepo := repository.NewGroupRepository(db)

	hub := realtime.NewHub(messageRepo, zlog)
	go hub.Run(ctx)

	tokens := auth.NewManager(cfg.App.JWTSecret, 0)

	notifSvc := service.NewNotificationService(notifRepo, userRepo, hub, producer, cfg.Kafka.TopicNotifs, cfg.NotifDeleteDelay, zlog)
	authSvc := service.NewAuthService(userRepo, tokens, zlog)
	userSvc := service.NewUserService(userRepo, groupRepo, zlog)
	followSvc := service.NewFollowService(userRepo, notifSvc, zlog)
	postSvc := service.NewPostService(postRepo, notifSvc, zlog)
	messageSvc := service.NewMessageService(messageRepo, hub, producer, cfg.Kafka.TopicMessages, zlog)
	groupSvc := service.NewGroupService(groupRepo, zlog)

	limiter := middleware.NewRateLimiter(rdb, cfg.Redis.Prefix, cfg.RateLimit.Limit, cfg.RateLimitWindow)

	app := fiber.New(fiber.Config{
		AppName:      "socialnet",
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	})

	routes.Register(app, routes.Deps{
		Tokens:        tokens,
		Limiter:       limiter,
		Auth:          handlers.NewAuthHandler(authSvc, userSvc, zlog),
		Users:         handlers.NewUserHandler(userSvc, zlog),
		Follows:       handlers.NewFollowHandler(followSvc, zlog),
		Posts:         handlers.NewPostHandler(postSvc, zlog),
		Messages:      handlers.NewMessageHandler(messageSvc, zlog),
		Groups:        handlers.NewGroupHandler(groupSvc, zlog),
		Notifications: handlers.NewNotificationHandler(notifSvc, zlog),
		WS:            handlers.NewWSHandler(hub, tokens, cfg.PingInterval, cfg.WriteDeadline, cfg.WS.MaxMessageSizeBytes, zlog),
		Hub:           hub,
	})

	go func() {
		if err := app.Listen(":" + cfg.App.Port); err != nil {
			zlog.Fatal("server listen failed", zap.Error(err))
		}
	}()
	zlog.Info("socialnet started", zap.String("port", cfg.App.Port), zap.String("env", cfg.App.Env))

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	_ = app.ShutdownWithContext(shutdownCtx)
	cancel()
	zlog.Info("socialnet stopped")
}
