package events

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/require"
)

func TestPublishRunRecordedWritesJSONWithHeaders(t *testing.T) {
	writer := &stubWriter{}
	publisher := NewPublisherWithWriter("run_events", writer)

	event := RunRecorded{
		EntryID:         "entry-1",
		Sheet:           "Performace",
		Date:            "2024-05-01",
		DistanceKm:      5,
		DurationSeconds: 1530,
		Duration:        "0:25:30",
		WeightKg:        70,
		Pace:            "5:06",
		RecordedAt:      time.Date(2024, time.May, 1, 8, 0, 0, 0, time.UTC),
	}
	require.NoError(t, publisher.PublishRunRecorded(context.Background(), event))

	require.Len(t, writer.messages, 1)
	msg := writer.messages[0]
	require.Equal(t, "Performace", string(msg.Key))
	require.Equal(t, event.RecordedAt, msg.Time)
	require.Equal(t, []kafka.Header{
		{Key: "event_type", Value: []byte(RunRecordedType)},
		{Key: "entry_id", Value: []byte("entry-1")},
	}, msg.Headers)

	var decoded RunRecorded
	require.NoError(t, json.Unmarshal(msg.Value, &decoded))
	require.Equal(t, event, decoded)
}

func TestPublishRunRecordedReturnsWriterError(t *testing.T) {
	boom := errors.New("leader not available")
	publisher := NewPublisherWithWriter("run_events", &stubWriter{err: boom})

	err := publisher.PublishRunRecorded(context.Background(), RunRecorded{EntryID: "x"})
	require.ErrorIs(t, err, boom)
	require.NoError(t, publisher.Close())
}

type stubWriter struct {
	messages []kafka.Message
	err      error
}

func (w *stubWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	if w.err != nil {
		return w.err
	}
	w.messages = append(w.messages, msgs...)
	return nil
}

func (w *stubWriter) Close() error { return nil }
