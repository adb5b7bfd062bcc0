// main.go
package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"
	"time"

	"court-booking/cmd"
	"court-booking/internal/data/repository"
	"court-booking/internal/usecase"
	"court-booking/internal/wire"
	"court-booking/pkg/cache"
	"court-booking/pkg/database"
	"court-booking/pkg/events"
	"court-booking/pkg/locker"
	"court-booking/pkg/mailer"
	"court-booking/pkg/media"
	"court-booking/pkg/payment/vnpay"
	"court-booking/pkg/payment/zalopay"
	"court-booking/pkg/realtime"
	"court-booking/pkg/scheduler"
	"court-booking/pkg/token"
	"court-booking/pkg/utils"

	"go.uber.org/zap"
)

func main() {
	// Load config
	config, err := utils.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	logger, err := utils.InitLogger(config.App)
	if err != nil {
		log.Printf("Failed to init logger: %v. Using standard log.", err)
		logger, _ = zap.NewProduction()
	}
	defer logger.Sync()

	logger.Info("Starting application",
		zap.String("app", config.App.Name),
		zap.String("port", config.App.Port),
		zap.Bool("debug", config.App.Debug),
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Connect to database
	db, err := database.InitDB(config.Database)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	if err := database.Migrate(ctx, db); err != nil {
		logger.Fatal("Failed to migrate database", zap.Error(err))
	}
	logger.Info("Database connected successfully")

	// Redis is optional; without it cache and locks stay in-process
	redisClient, err := database.InitRedis(config.Redis)
	if err != nil {
		logger.Fatal("Failed to connect to redis", zap.Error(err))
	}

	var (
		appCache  cache.Cache
		appLocker locker.Locker
	)
	if redisClient != nil {
		defer redisClient.Close()
		appCache = cache.NewRedis(redisClient, config.App.Name)
		appLocker = locker.NewRedis(redisClient, 10*time.Second, logger)
		logger.Info("Redis connected", zap.String("addr", config.Redis.Addr))
	} else {
		appCache = cache.NewMemory()
		appLocker = locker.NewLocal()
		logger.Warn("REDIS_ADDR not set, using in-process cache and locks (single instance only)")
	}

	bus := events.NewBus(logger)
	defer bus.Close()

	hub := realtime.NewHub(config.CORS.AllowedOrigins, logger)
	defer hub.Close()

	infra := &usecase.Infra{
		Tokens: token.NewManager(config.JWT.Secret, time.Duration(config.JWT.ExpiryHours)*time.Hour),
		Locker: appLocker,
		Cache:  appCache,
		Events: bus,
		Mailer: mailer.New(config.Email, logger),
		Media:  media.NewStore(config.App.UploadDir, "/uploads"),
		VNPay: vnpay.NewClient(vnpay.Config{
			TmnCode:       config.VNPay.TmnCode,
			HashSecret:    config.VNPay.HashSecret,
			PayURL:        config.VNPay.PayURL,
			ReturnURL:     config.VNPay.ReturnURL,
			HashType:      config.VNPay.HashType,
			ExpireMinutes: config.VNPay.ExpireMinutes,
		}),
		ZaloPay: zalopay.NewClient(zalopay.Config{
			AppID:         config.ZaloPay.AppID,
			Key1:          config.ZaloPay.Key1,
			Key2:          config.ZaloPay.Key2,
			Endpoint:      config.ZaloPay.Endpoint,
			CallbackURL:   config.ZaloPay.CallbackURL,
			RedirectURL:   config.ZaloPay.RedirectURL,
			ExpireMinutes: config.ZaloPay.ExpireMinutes,
		}, zalopay.NewBreakerClient(config.ZaloPay.Timeout, config.ZaloPay.BreakerThreshold, logger)),
	}

	// Initialize all repositories
	repos := repository.NewRepository(db, logger)

	// Wire all dependencies
	app := wire.Wiring(repos, db, infra, hub, config, logger)

	// Push booking and commission events to connected clients
	if err := usecase.NewNotificationService(hub, logger).Start(ctx, bus); err != nil {
		logger.Fatal("Failed to subscribe notifications", zap.Error(err))
	}

	sched := scheduler.New(logger)
	if err := usecase.RegisterJobs(sched, app.Service, config, logger); err != nil {
		logger.Fatal("Failed to register jobs", zap.Error(err))
	}
	sched.Start()

	// Start server
	logger.Info("Starting HTTP server", zap.String("port", config.App.Port))
	if err := cmd.APIServer(ctx, app.Router, config.App.Port, logger); err != nil {
		logger.Error("HTTP server stopped", zap.Error(err))
	}

	stopCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	sched.Stop(stopCtx)

	logger.Info("Shutdown complete")
}
