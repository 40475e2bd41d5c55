package config

import (
	"fmt"

	"github.com/segmentio/kafka-go"
)

func GetWriter(broker string, topic string) (*kafka.Writer, error) {
	if broker == "" {
		return nil, fmt.Errorf("KAFKA_BROKER environment variable not set")
	}
	if topic == "" {
		return nil, fmt.Errorf("KAFKA_TOPIC environment variable not set")
	}
	return kafka.NewWriter(kafka.WriterConfig{
		Brokers:  []string{broker},
		Topic:    topic,
		Balancer: &kafka.Hash{},
	}), nil
}
