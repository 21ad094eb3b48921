package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/BruksfildServices01/salon-booking/internal/audit"
	"github.com/BruksfildServices01/salon-booking/internal/config"
	dbpkg "github.com/BruksfildServices01/salon-booking/internal/db"
	"github.com/BruksfildServices01/salon-booking/internal/imaging"
	"github.com/BruksfildServices01/salon-booking/internal/infra/events"
	"github.com/BruksfildServices01/salon-booking/internal/infra/otp"
	"github.com/BruksfildServices01/salon-booking/internal/infra/payment"
	"github.com/BruksfildServices01/salon-booking/internal/infra/storage"
	"github.com/BruksfildServices01/salon-booking/internal/middleware"
	"github.com/BruksfildServices01/salon-booking/internal/routes"
	ucIdentity "github.com/BruksfildServices01/salon-booking/internal/usecase/identity"
	"github.com/BruksfildServices01/salon-booking/internal/validators"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "configuration error: %v\n", err)
		os.Exit(1)
	}

	logger := newLogger(cfg)
	defer func() { _ = logger.Sync() }()

	if err := run(cfg, logger); err != nil {
		logger.Fatal("application terminated with error", zap.Error(err))
	}
}

func newLogger(cfg *config.Config) *zap.Logger {
	var (
		logger *zap.Logger
		err    error
	)
	if cfg.IsProduction() {
		logger, err = zap.NewProduction()
	} else {
		logger, err = zap.NewDevelopment()
	}
	if err != nil {
		return zap.NewNop()
	}
	return logger
}

func run(cfg *config.Config, logger *zap.Logger) error {
	if err := validators.Register(); err != nil {
		return err
	}

	db, err := dbpkg.NewDB(cfg, logger)
	if err != nil {
		return err
	}

	// ======================================================
	// REDIS (optional)
	// ======================================================
	var rdb *redis.Client
	if cfg.RedisURL != "" {
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			return fmt.Errorf("parse REDIS_URL: %w", err)
		}
		rdb = redis.NewClient(opts)
		defer rdb.Close()
	}

	// ======================================================
	// PROVIDERS
	// ======================================================
	otpGateway := newOTPGateway(cfg, rdb, logger)

	payments, err := newPaymentGateway(cfg)
	if err != nil {
		return err
	}

	publisher, closePublisher := newPublisher(cfg, logger)
	defer closePublisher()

	images := newImageStore(cfg)

	auditDispatcher := audit.NewDispatcher(audit.New(db), logger)
	defer auditDispatcher.Close()

	// ======================================================
	// HTTP
	// ======================================================
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(middleware.Recovery(logger), middleware.RequestLogger(logger))
	r.MaxMultipartMemory = 12 << 20

	routes.RegisterRoutes(r, routes.Deps{
		DB:        db,
		Config:    cfg,
		Log:       logger,
		Redis:     rdb,
		Audit:     auditDispatcher,
		OTP:       otpGateway,
		Payments:  payments,
		Events:    publisher,
		Images:    images,
		Transcode: imaging.ToWebP,
	})

	server := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("server starting", zap.String("addr", cfg.Addr()), zap.String("env", cfg.AppEnv))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		logger.Info("shutting down server")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server shutdown: %w", err)
		}
		logger.Info("server stopped")
		return nil
	})

	return g.Wait()
}

func newOTPGateway(cfg *config.Config, rdb *redis.Client, logger *zap.Logger) ucIdentity.OTPGateway {
	if cfg.Twilio.Enabled() {
		logger.Info("otp provider: twilio verify")
		return otp.NewTwilioGateway(cfg.Twilio.AccountSID, cfg.Twilio.AuthToken, cfg.Twilio.VerifyServiceSID)
	}

	var store otp.CodeStore = otp.NewMemoryStore()
	if rdb != nil {
		store = otp.NewRedisStore(rdb)
	}
	if cfg.IsProduction() {
		logger.Warn("twilio not configured; otp codes are only written to the log")
	}
	return otp.NewLocalGateway(store, otp.NewLogSender(logger), cfg.OTPTTL)
}

func newPaymentGateway(cfg *config.Config) (payment.Gateway, error) {
	switch cfg.Payment.Provider {
	case "mercadopago":
		return payment.NewMercadoPagoGateway(cfg.Payment.MercadoPagoToken, cfg.Payment.MercadoPagoWebhook)
	default:
		return payment.NewRazorpayGateway(cfg.Payment.RazorpayKeyID, cfg.Payment.RazorpayKeySecret), nil
	}
}

func newPublisher(cfg *config.Config, logger *zap.Logger) (events.Publisher, func()) {
	if cfg.AMQP.URL == "" {
		return events.NewLogPublisher(logger), func() {}
	}

	pub, err := events.NewAMQPPublisher(cfg.AMQP.URL, cfg.AMQP.Exchange)
	if err != nil {
		logger.Warn("amqp unavailable, falling back to log publisher", zap.Error(err))
		return events.NewLogPublisher(logger), func() {}
	}
	return pub, func() { _ = pub.Close() }
}

func newImageStore(cfg *config.Config) storage.ImageStore {
	s := cfg.Storage
	if s.S3Enabled() {
		return storage.NewS3Store(storage.S3Options{
			Bucket:    s.S3Bucket,
			Region:    s.S3Region,
			Endpoint:  s.S3Endpoint,
			AccessKey: s.S3AccessKey,
			SecretKey: s.S3SecretKey,
			PublicURL: s.S3PublicURL,
		})
	}
	return storage.NewDiskStore(s.UploadDir, "/uploads")
}
