package main

import (
	"context"
	"encoding/json"
	"log"

	"github.com/joho/godotenv"
	"github.com/streadway/amqp"
	"go.uber.org/zap"

	"github.com/unclebandit/campaignhub-backend/internal/config"
	"github.com/unclebandit/campaignhub-backend/internal/db"
	"github.com/unclebandit/campaignhub-backend/internal/logger"
	"github.com/unclebandit/campaignhub-backend/internal/queue"
	"github.com/unclebandit/campaignhub-backend/internal/repository"
	"github.com/unclebandit/campaignhub-backend/internal/service"
)

const maxDeliveryAttempts = 3

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found, relying on OS environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	if cfg.AMQPURL == "" {
		log.Fatal("AMQP_URL is required for the worker")
	}

	zl, err := logger.New(cfg.Environment)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer zl.Sync()

	database, err := db.Open(context.Background(), cfg.DSN(), cfg.DBMaxOpen, cfg.DBMaxIdle)
	if err != nil {
		zl.Fatal("failed to connect to database", zap.Error(err))
	}
	defer database.Close()

	delivery := &service.DeliveryService{
		OutboundRepo: &repository.OutboundMessageRepository{DB: database},
		CampaignRepo: &repository.CampaignRepository{DB: database},
		CustomerRepo: &repository.CustomerRepository{DB: database},
		SenderRepo:   &repository.SenderRepository{DB: database},
		Send:         service.MockSender,
		Log:          zl,
	}

	conn, err := amqp.Dial(cfg.AMQPURL)
	if err != nil {
		zl.Fatal("failed to connect to RabbitMQ", zap.Error(err))
	}
	defer conn.Close()

	ch, err := conn.Channel()
	if err != nil {
		zl.Fatal("failed to open a channel", zap.Error(err))
	}
	defer ch.Close()

	q, err := ch.QueueDeclare(
		cfg.QueueName,
		true,  // durable
		false, // delete when unused
		false, // exclusive
		false, // no-wait
		nil,   // arguments
	)
	if err != nil {
		zl.Fatal("failed to declare queue", zap.Error(err))
	}

	msgs, err := ch.Consume(
		q.Name,
		"",
		false, // manual ack for reliability
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		zl.Fatal("failed to register consumer", zap.Error(err))
	}

	zl.Info("worker running, waiting for messages", zap.String("queue", q.Name))

	for d := range msgs {
		var job queue.SendJob
		if err := json.Unmarshal(d.Body, &job); err != nil {
			zl.Warn("invalid job payload, dropping", zap.Error(err))
			d.Ack(false)
			continue
		}

		if err := delivery.Process(job.OutboundMessageID); err != nil {
			zl.Warn("delivery failed",
				zap.Int("message_id", job.OutboundMessageID),
				zap.Error(err))

			// Nack(requeue) would not carry a retry counter, so requeue
			// by republishing with the count bumped.
			if n := attempts(d.Headers); n < maxDeliveryAttempts {
				if err := republish(ch, q.Name, d.Body, n+1); err != nil {
					zl.Error("failed to requeue job", zap.Error(err))
					d.Nack(false, true)
					continue
				}
			} else {
				zl.Error("delivery abandoned after retries",
					zap.Int("message_id", job.OutboundMessageID))
			}
		}

		d.Ack(false)
	}
}

func republish(ch *amqp.Channel, queueName string, body []byte, retryCount int) error {
	return ch.Publish(
		"",
		queueName,
		false,
		false,
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Headers:      amqp.Table{"x-retry-count": int32(retryCount)},
			Body:         body,
		},
	)
}

func attempts(headers amqp.Table) int {
	if headers == nil {
		return 0
	}
	switch v := headers["x-retry-count"].(type) {
	case int:
		return v
	case int32:
		return int(v)
	case int64:
		return int(v)
	}
	return 0
}
