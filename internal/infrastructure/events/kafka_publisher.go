package events

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"fieldservice/internal/domain/entities"
	"fieldservice/internal/usecase/interfaces"

	"github.com/segmentio/kafka-go"
)

// Writer is the subset of kafka.Writer the publisher needs.
type Writer interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaPublisher writes job lifecycle events to one topic, keyed by job id
// so that every event of a job lands on the same partition in order.
type KafkaPublisher struct {
	writer Writer
}

var _ interfaces.IEventPublisher = (*KafkaPublisher)(nil)

func NewKafkaPublisher(brokerURL, topic string) *KafkaPublisher {
	return &KafkaPublisher{
		writer: &kafka.Writer{
			Addr:         kafka.TCP(brokerURL),
			Topic:        topic,
			Balancer:     &kafka.Hash{},
			RequiredAcks: kafka.RequireOne,
			WriteTimeout: 5 * time.Second,
		},
	}
}

// NewKafkaPublisherWithWriter allows injecting a test writer.
func NewKafkaPublisherWithWriter(w Writer) *KafkaPublisher {
	return &KafkaPublisher{writer: w}
}

func (p *KafkaPublisher) Publish(ctx context.Context, event entities.JobEvent) error {
	b, err := json.Marshal(event)
	if err != nil {
		log.Printf("[job][events] marshal failed job_id=%s type=%s err=%v", event.JobID, event.Type, err)
		return err
	}
	msg := kafka.Message{
		Key:   []byte(event.JobID),
		Value: b,
		Time:  event.OccurredAt,
		Headers: []kafka.Header{
			{Key: "event_type", Value: []byte(event.Type)},
		},
	}
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		log.Printf("[job][events] kafka write failed job_id=%s type=%s err=%v", event.JobID, event.Type, err)
		return err
	}
	log.Printf("[job][events] published job_id=%s type=%s", event.JobID, event.Type)
	return nil
}

func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}

// LogPublisher only logs events. Used when no broker is configured.
type LogPublisher struct{}

var _ interfaces.IEventPublisher = LogPublisher{}

func (LogPublisher) Publish(_ context.Context, event entities.JobEvent) error {
	log.Printf("[job][events] job_id=%s type=%s from=%s to=%s invoice_id=%s",
		event.JobID, event.Type, event.FromStatus, event.ToStatus, event.InvoiceID)
	return nil
}
