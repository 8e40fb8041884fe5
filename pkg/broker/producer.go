package broker

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/IBM/sarama"
	"github.com/google/uuid"
)

type ProducerConfig struct {
	Brokers []string
	Topic   string
	Acks    string
	Retries int
}

// KafkaProducer publishes JSON payloads to a single topic.
type KafkaProducer struct {
	producer sarama.SyncProducer
	topic    string
}

func NewProducer(cfg *ProducerConfig) (*KafkaProducer, error) {
	sc := sarama.NewConfig()
	sc.Producer.Return.Successes = true
	sc.Producer.Retry.Max = cfg.Retries
	// sarama rejects an idempotent producer without retries.
	sc.Producer.Idempotent = cfg.Retries > 0
	sc.Net.MaxOpenRequests = 1

	switch cfg.Acks {
	case "0":
		sc.Producer.RequiredAcks = sarama.NoResponse
		sc.Producer.Idempotent = false
	case "1":
		sc.Producer.RequiredAcks = sarama.WaitForLocal
		sc.Producer.Idempotent = false
	default:
		sc.Producer.RequiredAcks = sarama.WaitForAll
	}

	producer, err := sarama.NewSyncProducer(cfg.Brokers, sc)
	if err != nil {
		return nil, fmt.Errorf("failed to create Kafka producer: %w", err)
	}
	return &KafkaProducer{producer: producer, topic: cfg.Topic}, nil
}

func (p *KafkaProducer) Publish(ctx context.Context, key string, payload any) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	value, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	msg := &sarama.ProducerMessage{
		Topic: p.topic,
		Key:   sarama.StringEncoder(key),
		Value: sarama.ByteEncoder(value),
		Headers: []sarama.RecordHeader{
			{Key: []byte("event-id"), Value: []byte(uuid.New().String())},
			{Key: []byte("timestamp"), Value: []byte(time.Now().UTC().Format(time.RFC3339))},
		},
	}

	if _, _, err := p.producer.SendMessage(msg); err != nil {
		return fmt.Errorf("failed to publish to %s: %w", p.topic, err)
	}
	return nil
}

func (p *KafkaProducer) Close() error {
	return p.producer.Close()
}
