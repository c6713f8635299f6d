package main

import (
	"context"
	"log"
	"strconv"

	"github.com/samfisher58/LoanLink-server-side/configs"
	"github.com/samfisher58/LoanLink-server-side/internal/app/router"
	"github.com/samfisher58/LoanLink-server-side/internal/pkg/db"
	"github.com/samfisher58/LoanLink-server-side/internal/pkg/downstreams"
	"github.com/samfisher58/LoanLink-server-side/internal/pkg/kafka/producer"
	"github.com/samfisher58/LoanLink-server-side/internal/pkg/logger"
	"github.com/samfisher58/LoanLink-server-side/internal/pkg/otel"
	"github.com/samfisher58/LoanLink-server-side/internal/pkg/pubsub"
)

func main() {
	cfg, err := configs.Load("config.yaml")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	logger.Init(cfg.Otel.ServiceName, cfg.Logging.Level)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	otelShutdown, err := otel.Setup(ctx, cfg.Otel.ServiceName, cfg.Otel.CollectorURL)
	if err != nil {
		logger.Error(ctx, "Error setting up OTLP: %v", err)
	}
	defer func() {
		if err := otelShutdown(ctx); err != nil {
			logger.Error(ctx, "Error shutting down OTLP: %v", err)
		}
	}()

	mdb, err := db.NewMongoDB(ctx, cfg.Mongo)
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	defer mdb.Close(ctx)

	if err := mdb.EnsureIndexes(ctx); err != nil {
		log.Fatalf("Failed to create indexes: %v", err)
	}
	logger.Info(ctx, "Connected to MongoDB database %v", cfg.Mongo.DBName)

	var events producer.EventPublisher
	if cfg.Kafka.Server != "" {
		kafkaProducer, err := producer.NewKafkaProducer(cfg.Kafka)
		if err != nil {
			logger.Error(ctx, "Failed to create Kafka producer: %v", err)
		} else {
			defer kafkaProducer.Close()
			events = kafkaProducer
			logger.Info(ctx, "Kafka producer created")
		}
	}

	var pubsubPublisher pubsub.PubSubPublisherInterface
	if cfg.PubSub.ProjectID != "" {
		publisher, err := pubsub.NewPubSubPublisher(ctx, cfg.PubSub.ProjectID)
		if err != nil {
			logger.Error(ctx, "Failed to create Pub/Sub publisher: %v", err)
		} else {
			defer publisher.Close()
			pubsubPublisher = publisher
			logger.Info(ctx, "Pub/Sub publisher created")
		}
	}

	verifier := downstreams.NewIdentityService(cfg.Identity)
	checkout := downstreams.NewStripeService(cfg.Stripe)

	r := router.SetupRouter(cfg, mdb, verifier, checkout, events, pubsubPublisher)

	port := strconv.Itoa(cfg.Server.Port)
	logger.Info(ctx, "Loan link listening on port %v", port)
	if err := r.Run(":" + port); err != nil {
		logger.Error(ctx, "Failed to run server: %v", err)
	}
}
