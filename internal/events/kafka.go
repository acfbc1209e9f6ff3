package events

import (
	"context"
	"encoding/json"

	"github.com/segmentio/kafka-go"
)

const transferTopic = "transfer_completed"

type KafkaPublisher struct {
	writer *kafka.Writer
}

func NewKafkaPublisher(brokers []string) *KafkaPublisher {
	return &KafkaPublisher{
		writer: &kafka.Writer{
			Addr:     kafka.TCP(brokers...),
			Topic:    transferTopic,
			Balancer: &kafka.LeastBytes{},
		},
	}
}

func (p *KafkaPublisher) Publish(event TransferCompleted) error {
	data, err := json.Marshal(event)
	if err != nil {
		return err
	}

	return p.writer.WriteMessages(
		context.Background(),
		kafka.Message{
			Key:   []byte(event.EventID),
			Value: data,
		},
	)
}

func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}
