package producer

import (
	"context"
	"encoding/json"
	"time"

	"github.com/samfisher58/LoanLink-server-side/configs"
	"github.com/samfisher58/LoanLink-server-side/internal/pkg/logger"

	"github.com/confluentinc/confluent-kafka-go/v2/kafka"
)

// PaymentEvent is published after each new ledger entry so downstream
// consumers (notification service, reporting) see confirmed payments.
type PaymentEvent struct {
	TransactionID string    `json:"transactionId"`
	TrackingID    string    `json:"loanTrackingId"`
	Email         string    `json:"email"`
	Amount        float64   `json:"amount"`
	Currency      string    `json:"currency"`
	PaidAt        time.Time `json:"paidAt"`
}

type EventPublisher interface {
	PublishPaymentEvent(ctx context.Context, event PaymentEvent) error
}

type Producer struct {
	producer *kafka.Producer
	topic    string
}

func NewKafkaProducer(cfg configs.KafkaConfig) (*Producer, error) {
	p, err := kafka.NewProducer(&kafka.ConfigMap{
		"bootstrap.servers":  cfg.Server,
		"security.protocol":  cfg.SecurityProtocol,
		"sasl.mechanisms":    cfg.SASLMechanism,
		"sasl.username":      cfg.SASLUsername,
		"sasl.password":      cfg.SASLPassword,
		"session.timeout.ms": cfg.SessionTimeoutMs,
		"client.id":          cfg.ClientID,
		"log_level":          0,
	})
	if err != nil {
		return nil, err
	}

	return &Producer{
		producer: p,
		topic:    cfg.PaymentTopic,
	}, nil
}

// PublishPaymentEvent produces one message keyed by transaction id and waits
// for the delivery report.
func (p *Producer) PublishPaymentEvent(ctx context.Context, event PaymentEvent) error {
	value, err := json.Marshal(event)
	if err != nil {
		return err
	}

	deliveryChan := make(chan kafka.Event, 1)
	err = p.producer.Produce(&kafka.Message{
		TopicPartition: kafka.TopicPartition{Topic: &p.topic, Partition: kafka.PartitionAny},
		Key:            []byte(event.TransactionID),
		Value:          value,
	}, deliveryChan)
	if err != nil {
		return err
	}

	select {
	case e := <-deliveryChan:
		if m, ok := e.(*kafka.Message); ok && m.TopicPartition.Error != nil {
			return m.TopicPartition.Error
		}
		logger.Info(ctx, "Published payment event for transaction %v", event.TransactionID)
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (p *Producer) Close() {
	p.producer.Flush(5000)
	p.producer.Close()
}
