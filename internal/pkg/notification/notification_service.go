package notification

import (
	"context"
	"encoding/json"
	"time"

	"github.com/samfisher58/LoanLink-server-side/internal/pkg/logger"
	"github.com/samfisher58/LoanLink-server-side/internal/pkg/pubsub"
)

// Events carried in message attributes so the notification consumer can
// pick a template without parsing the body.
const (
	EventStatusChanged   = "APPLICATION_STATUS_CHANGED"
	EventPaymentReceived = "PAYMENT_RECEIVED"
)

type applicantMessage struct {
	Email      string    `json:"email"`
	TrackingID string    `json:"loanTrackingId"`
	Event      string    `json:"event"`
	Detail     string    `json:"detail"`
	SentAt     time.Time `json:"sentAt"`
}

type NotificationService struct {
	publisher pubsub.PubSubPublisherInterface
	topic     string
}

// NewNotificationService wires the pubsub publisher. A nil publisher makes
// every notify call a logged no-op, which is how local dev runs.
func NewNotificationService(publisher pubsub.PubSubPublisherInterface, topic string) *NotificationService {
	return &NotificationService{publisher: publisher, topic: topic}
}

func (s *NotificationService) NotifyApplicant(ctx context.Context, email, trackingID, event, detail string) error {
	if s.publisher == nil {
		logger.Debug(ctx, "Notification publisher disabled, skipping %v for %v", event, trackingID)
		return nil
	}

	msg := applicantMessage{
		Email:      email,
		TrackingID: trackingID,
		Event:      event,
		Detail:     detail,
		SentAt:     time.Now().UTC(),
	}
	data, err := json.Marshal(msg)
	if err != nil {
		return err
	}

	attributes := map[string]string{"event": event}
	messageID, err := s.publisher.Publish(ctx, s.topic, data, attributes)
	if err != nil {
		logger.Error(ctx, "Failed to publish %v notification for %v: %v", event, trackingID, err)
		return err
	}
	logger.Info(ctx, "Queued %v notification %v for %v", event, messageID, trackingID)
	return nil
}
