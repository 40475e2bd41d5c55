package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/segmentio/kafka-go"
)

type ChangeAction string

const (
	ActionCreated ChangeAction = "created"
	ActionSaved   ChangeAction = "saved"
	ActionDeleted ChangeAction = "deleted"
)

// ConfigChange is published after a mutation succeeded on the admin API.
type ConfigChange struct {
	Kind        string       `json:"kind"`
	Action      ChangeAction `json:"action"`
	Key         string       `json:"key"`
	PreviousKey string       `json:"previous_key,omitempty"`
	At          time.Time    `json:"at"`
}

type ChangePublisher interface {
	Publish(ctx context.Context, change ConfigChange) error
	Close() error
}

type KafkaChangePublisher struct {
	writer *kafka.Writer
}

func NewKafkaChangePublisher(writer *kafka.Writer) *KafkaChangePublisher {
	return &KafkaChangePublisher{writer: writer}
}

func (p *KafkaChangePublisher) Publish(ctx context.Context, change ConfigChange) error {
	value, err := json.Marshal(change)
	if err != nil {
		return err
	}
	return p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(change.Kind + ":" + change.Key),
		Value: value,
	})
}

func (p *KafkaChangePublisher) Close() error {
	return p.writer.Close()
}

type NoopChangePublisher struct{}

func (NoopChangePublisher) Publish(ctx context.Context, change ConfigChange) error {
	return nil
}

func (NoopChangePublisher) Close() error {
	return nil
}
