package events

import (
	"context"
	"encoding/json"

	"github.com/segmentio/kafka-go"

	"github.com/vinifranco48/performace/internal/observability"
)

// MessageWriter is the subset of kafka.Writer used by KafkaPublisher.
type MessageWriter interface {
	WriteMessages(context.Context, ...kafka.Message) error
	Close() error
}

// KafkaPublisher writes run events to a single topic.
type KafkaPublisher struct {
	topic  string
	writer MessageWriter
}

// NewKafkaPublisher creates a synchronous, all-acks writer for topic.
func NewKafkaPublisher(brokers []string, topic string) *KafkaPublisher {
	return NewPublisherWithWriter(topic, &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  topic,
		Balancer:               &kafka.Hash{},
		RequiredAcks:           kafka.RequireAll,
		Compression:            kafka.Snappy,
		Async:                  false,
		AllowAutoTopicCreation: true,
	})
}

// NewPublisherWithWriter wires an existing writer, mostly for tests.
func NewPublisherWithWriter(topic string, writer MessageWriter) *KafkaPublisher {
	return &KafkaPublisher{topic: topic, writer: writer}
}

// PublishRunRecorded encodes the event as JSON keyed by sheet name so runs of one
// sheet stay ordered within a partition.
func (p *KafkaPublisher) PublishRunRecorded(ctx context.Context, event RunRecorded) error {
	body, err := json.Marshal(event)
	if err != nil {
		return err
	}
	msg := kafka.Message{
		Key:   []byte(event.Sheet),
		Value: body,
		Time:  event.RecordedAt,
		Headers: []kafka.Header{
			{Key: "event_type", Value: []byte(RunRecordedType)},
			{Key: "entry_id", Value: []byte(event.EntryID)},
		},
	}
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		observability.RecordEventFailed(p.topic)
		return err
	}
	observability.RecordEventPublished(p.topic)
	return nil
}

// Close releases the writer.
func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}
