package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"

	"github.com/example/inventra/internal/analytics"
	"github.com/example/inventra/internal/api"
	"github.com/example/inventra/internal/auth"
	"github.com/example/inventra/internal/catalog"
	"github.com/example/inventra/internal/config"
	"github.com/example/inventra/internal/events"
	"github.com/example/inventra/internal/insight"
	"github.com/example/inventra/internal/model"
	"github.com/example/inventra/internal/ordering"
	"github.com/example/inventra/internal/scheduler"
	"github.com/example/inventra/internal/store"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	_ = godotenv.Load()

	log.SetFormatter(&log.JSONFormatter{})

	cfg, err := config.Load()
	if err != nil {
		log.WithField("err", err).Fatal("load configuration")
	}

	log.WithFields(log.Fields{
		"addr":   cfg.HTTPAddr,
		"kafka":  cfg.Brokers(),
		"topic":  cfg.KafkaTopic,
		"gemini": cfg.GeminiModel,
	}).Info("starting inventra api")

	db, err := store.Connect(cfg.DatabaseURL)
	if err != nil {
		log.WithField("err", err).Fatal("connect to postgres")
	}
	defer db.Close()
	log.Info("connected to postgres")

	products := store.NewPostgresProductStore(db)
	suppliers := store.NewPostgresSupplierStore(db)
	orders := store.NewPostgresOrderStore(db)
	users := store.NewPostgresUserStore(db)

	producer := events.NewProducer(cfg.Brokers(), cfg.KafkaTopic)
	defer producer.Close()

	jwtService := auth.NewJWTService(cfg.JWTSecret, cfg.TokenTTL)
	catalogSvc := catalog.NewService(products, suppliers)
	orderingSvc := ordering.NewService(products, orders, producer)
	analyticsSvc := analytics.NewService(products, orders, suppliers)
	generator := insight.NewGeminiClient(cfg.GeminiAPIKey, cfg.GeminiModel)
	insightSvc := insight.NewService(analyticsSvc, products, orders, generator)

	if err := bootstrapAdmin(ctx, users, cfg); err != nil {
		log.WithField("err", err).Fatal("bootstrap admin account")
	}

	// Daily low-stock scan
	scanner := scheduler.NewScanner(products, producer, cfg.LowStockScanHour)
	go scanner.Run(ctx)

	router := api.NewRouter(
		api.NewAuthHandlers(users, jwtService),
		api.NewHandlers(catalogSvc, orderingSvc),
		api.NewAnalyticsHandlers(analyticsSvc, insightSvc),
		jwtService,
	)

	server := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: router,
	}

	go func() {
		log.WithField("addr", cfg.HTTPAddr).Info("server started")
		if err := server.ListenAndServe(); err != http.ErrServerClosed {
			log.WithField("err", err).Fatal("server error")
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	log.Info("shutting down")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.WithField("err", err).Error("shutdown")
	}
}

// bootstrapAdmin creates the default admin account on an empty user table so
// a fresh deployment can log in.
func bootstrapAdmin(ctx context.Context, users store.UserStore, cfg *config.Config) error {
	count, err := users.Count(ctx)
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	hash, err := auth.HashPassword(cfg.AdminPassword)
	if err != nil {
		return err
	}

	admin := &model.User{
		ID:           uuid.NewString(),
		Name:         "Admin",
		Email:        cfg.AdminEmail,
		PasswordHash: hash,
		Role:         model.RoleAdmin,
		CreatedAt:    time.Now(),
	}
	if err := users.Create(ctx, admin); err != nil {
		return err
	}

	log.WithField("email", admin.Email).Info("created default admin account")
	return nil
}
