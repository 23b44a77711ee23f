package nftregistry

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/twmb/franz-go/pkg/kgo"

	"ticketledger/internal/ticketing/models"
)

// Kafka publishes mint notifications to the registry's ingest topic, keyed
// by event id so a single event's tickets stay ordered.
type Kafka struct {
	client *kgo.Client
	topic  string
}

func NewKafka(client *kgo.Client, topic string) *Kafka {
	return &Kafka{client: client, topic: topic}
}

func (r *Kafka) Mint(ctx context.Context, mint models.NFTMint) error {
	payload, err := json.Marshal(mint)
	if err != nil {
		return fmt.Errorf("marshal mint notification: %w", err)
	}
	record := &kgo.Record{
		Topic: r.topic,
		Key:   []byte(mint.EventID),
		Value: payload,
	}
	if err := r.client.ProduceSync(ctx, record).FirstErr(); err != nil {
		return fmt.Errorf("produce mint notification: %w", err)
	}
	return nil
}
