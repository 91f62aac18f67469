package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/unclebandit/campaignhub-backend/internal/api"
	"github.com/unclebandit/campaignhub-backend/internal/config"
	"github.com/unclebandit/campaignhub-backend/internal/db"
	"github.com/unclebandit/campaignhub-backend/internal/logger"
	"github.com/unclebandit/campaignhub-backend/internal/queue"
	"github.com/unclebandit/campaignhub-backend/internal/repository"
	"github.com/unclebandit/campaignhub-backend/internal/service"
	"github.com/unclebandit/campaignhub-backend/internal/session"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found, relying on OS environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	zl, err := logger.New(cfg.Environment)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer zl.Sync()

	ctx := context.Background()
	database, err := db.Open(ctx, cfg.DSN(), cfg.DBMaxOpen, cfg.DBMaxIdle)
	if err != nil {
		zl.Fatal("failed to connect to database", zap.Error(err))
	}
	defer database.Close()
	zl.Info("connected to database", zap.String("host", cfg.DBHost), zap.String("name", cfg.DBName))

	customerRepo := &repository.CustomerRepository{DB: database}
	campaignRepo := &repository.CampaignRepository{DB: database}
	senderRepo := &repository.SenderRepository{DB: database}
	outboundRepo := &repository.OutboundMessageRepository{DB: database}
	userRepo := &repository.UserRepository{DB: database}
	sessionRepo := &repository.SessionRepository{DB: database}

	sessions := session.NewManager(sessionRepo, []byte(cfg.SessionSecret), cfg.SessionTTL)

	var publisher queue.Publisher
	if cfg.AMQPURL != "" {
		amqpPub, err := queue.NewAMQPPublisher(cfg.AMQPURL, cfg.QueueName)
		if err != nil {
			zl.Fatal("failed to connect to queue", zap.Error(err))
		}
		defer amqpPub.Close()
		publisher = amqpPub
		zl.Info("publishing sends to RabbitMQ", zap.String("queue", cfg.QueueName))
	} else {
		// No broker configured: deliver in-process.
		inMem := queue.NewInMemoryQueue(zl)
		delivery := &service.DeliveryService{
			OutboundRepo: outboundRepo,
			CampaignRepo: campaignRepo,
			CustomerRepo: customerRepo,
			SenderRepo:   senderRepo,
			Send:         service.MockSender,
			Log:          zl,
		}
		if err := service.SubscribeInMemory(inMem, cfg.QueueName, delivery); err != nil {
			zl.Fatal("failed to subscribe delivery handler", zap.Error(err))
		}
		publisher = inMem
		zl.Info("no AMQP_URL set, delivering sends in-process")
	}

	campaignService := &service.CampaignService{
		CampaignRepo: campaignRepo,
		CustomerRepo: customerRepo,
		SenderRepo:   senderRepo,
		OutboundRepo: outboundRepo,
		Queue:        publisher,
		QueueName:    cfg.QueueName,
		Log:          zl,
	}
	senderService := &service.SenderService{SenderRepo: senderRepo}
	authService := &service.AuthService{UserRepo: userRepo, Sessions: sessions}

	a := &api.API{
		Campaigns: campaignService,
		Senders:   senderService,
		Auth:      authService,
		Customers: customerRepo,
		Sessions:  sessions,
		Log:       zl,
	}

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           a.Router(api.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst)),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		zl.Info("server running", zap.String("addr", cfg.HTTPAddr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zl.Fatal("server failed", zap.Error(err))
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	zl.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		zl.Error("graceful shutdown failed", zap.Error(err))
	}
}
