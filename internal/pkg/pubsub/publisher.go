package pubsub

import (
	"context"

	"github.com/samfisher58/LoanLink-server-side/internal/pkg/logger"

	"cloud.google.com/go/pubsub/v2"
)

// PubSubPublisherInterface is what the notification service depends on.
type PubSubPublisherInterface interface {
	Publish(ctx context.Context, topic string, data []byte, attributes map[string]string) (string, error)
	Close() error
}

// PubSubPublisher publishes notification messages to Google Cloud Pub/Sub.
type PubSubPublisher struct {
	client *pubsub.Client
}

func NewPubSubPublisher(ctx context.Context, projectID string) (*PubSubPublisher, error) {
	client, err := pubsub.NewClient(ctx, projectID)
	if err != nil {
		return nil, err
	}
	return &PubSubPublisher{client: client}, nil
}

func (p *PubSubPublisher) Publish(ctx context.Context, topic string, data []byte, attributes map[string]string) (string, error) {
	publisher := p.client.Publisher(topic)
	res := publisher.Publish(ctx, &pubsub.Message{
		Data:       data,
		Attributes: attributes,
	})

	messageID, err := res.Get(ctx)
	if err != nil {
		return "", err
	}
	logger.Debug(ctx, "Published pubsub message %v to topic %v", messageID, topic)
	return messageID, nil
}

func (p *PubSubPublisher) Close() error {
	return p.client.Close()
}
