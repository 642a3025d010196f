// Package domain holds the run-recording rules: pace, the sheet header
// contract and the per-request evaluation flow.
package domain

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/vinifranco48/performace/internal/events"
	"github.com/vinifranco48/performace/internal/observability"
)

// Publisher announces recorded runs to downstream consumers.
type Publisher interface {
	PublishRunRecorded(ctx context.Context, event events.RunRecorded) error
}

// NoopPublisher drops every event.
type NoopPublisher struct{}

// PublishRunRecorded performs no action.
func (NoopPublisher) PublishRunRecorded(context.Context, events.RunRecorded) error { return nil }

// Submission carries the raw form fields.
type Submission struct {
	Date       time.Time
	DistanceKm float64
	Hours      int
	Minutes    int
	Seconds    int
	WeightKg   float64
}

// Duration combines the hour, minute and second fields.
func (s Submission) Duration() time.Duration {
	return time.Duration(s.Hours)*time.Hour +
		time.Duration(s.Minutes)*time.Minute +
		time.Duration(s.Seconds)*time.Second
}

// Validate applies the form's numeric bounds.
func (s Submission) Validate() error {
	switch {
	case s.Date.IsZero():
		return errors.New("date is required")
	case s.DistanceKm < 0:
		return errors.New("distance must be >= 0")
	case s.Hours < 0:
		return errors.New("hours must be >= 0")
	case s.Minutes < 0 || s.Minutes > 59:
		return errors.New("minutes must be between 0 and 59")
	case s.Seconds < 0 || s.Seconds > 59:
		return errors.New("seconds must be between 0 and 59")
	case s.WeightKg < 0:
		return errors.New("weight must be >= 0")
	}
	return nil
}

// Entry builds the workout entry for the submission.
func (s Submission) Entry() WorkoutEntry {
	return NewWorkoutEntry(s.Date, s.DistanceKm, s.Duration(), s.WeightKg)
}

// Page is the outcome of one evaluation. InsertErr and LoadErr are set
// independently; a failed insert still loads the history.
type Page struct {
	Submitted bool
	Entry     *WorkoutEntry
	InsertErr error
	History   History
	LoadErr   error
}

// Option configures optional behaviour for the Service.
type Option func(*Service)

// WithLogger overrides the logger.
func WithLogger(logger *zap.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

// WithPublisher sets the run-recorded event publisher.
func WithPublisher(p Publisher) Option {
	return func(s *Service) {
		s.publisher = p
	}
}

// WithSheetName labels emitted events with the store name.
func WithSheetName(name string) Option {
	return func(s *Service) {
		s.sheet = name
	}
}

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
	}
}

// Service runs the form workflow against a freshly opened table per call.
type Service struct {
	connector Connector
	publisher Publisher
	logger    *zap.Logger
	sheet     string
	now       func() time.Time
}

// NewService constructs a Service.
func NewService(connector Connector, opts ...Option) *Service {
	s := &Service{
		connector: connector,
		publisher: NoopPublisher{},
		logger:    zap.NewNop(),
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Evaluate opens the store, verifies its header, records sub when non-nil and
// loads the history. The returned error is always a *ConnectionError; insert
// and load failures are reported on the Page.
func (s *Service) Evaluate(ctx context.Context, sub *Submission) (Page, error) {
	table, err := s.Open(ctx)
	if err != nil {
		observability.RecordEvaluation("connection_error")
		return Page{}, err
	}

	var page Page
	if sub != nil {
		page.Submitted = true
		entry, insertErr := s.Record(ctx, table, *sub)
		if insertErr != nil {
			page.InsertErr = insertErr
		} else {
			page.Entry = &entry
		}
	}

	page.History, page.LoadErr = LoadAll(ctx, table)
	if page.LoadErr != nil {
		s.logger.Warn("history load failed", zap.Error(page.LoadErr))
	}
	observability.RecordEvaluation("ok")
	return page, nil
}

// Open connects to the store and enforces the header row.
func (s *Service) Open(ctx context.Context) (Table, error) {
	table, err := s.connector.Connect(ctx)
	if err != nil {
		s.logger.Error("store connection failed", zap.Error(err))
		return nil, &ConnectionError{Err: err}
	}
	if err := EnsureSchema(ctx, table); err != nil {
		s.logger.Error("schema verification failed", zap.Error(err))
		return nil, err
	}
	return table, nil
}

// Record appends the submission to an already opened table.
func (s *Service) Record(ctx context.Context, table Table, sub Submission) (WorkoutEntry, error) {
	entry := sub.Entry()
	if err := AppendRow(ctx, table, entry.Values()); err != nil {
		observability.RecordSubmission("insert_error")
		s.logger.Error("run insert failed", zap.Error(err))
		return WorkoutEntry{}, err
	}
	observability.RecordSubmission("inserted")

	recordedAt := s.now().UTC()
	if secs, ok := PaceSeconds(entry.Duration, entry.DistanceKm); ok {
		observability.RecordRunRecorded(recordedAt, secs)
	} else {
		observability.RecordRunRecorded(recordedAt, 0)
	}

	event := events.RunRecorded{
		EntryID:         uuid.NewString(),
		Sheet:           s.sheet,
		Date:            entry.Date.Format(DateLayout),
		DistanceKm:      entry.DistanceKm,
		DurationSeconds: int64(entry.Duration / time.Second),
		Duration:        FormatDuration(entry.Duration),
		WeightKg:        entry.WeightKg,
		Pace:            entry.Pace,
		RecordedAt:      recordedAt,
	}
	if err := s.publisher.PublishRunRecorded(ctx, event); err != nil {
		s.logger.Warn("run.recorded publish failed", zap.String("entry_id", event.EntryID), zap.Error(err))
	}

	s.logger.Info("run recorded",
		zap.String("entry_id", event.EntryID),
		zap.String("date", event.Date),
		zap.Float64("distance_km", entry.DistanceKm),
		zap.String("pace", entry.Pace))
	return entry, nil
}

// EntryFromEvent rebuilds the workout entry carried by a RunRecorded event.
func EntryFromEvent(event events.RunRecorded) (WorkoutEntry, error) {
	date, err := time.Parse(DateLayout, event.Date)
	if err != nil {
		return WorkoutEntry{}, err
	}
	return WorkoutEntry{
		Date:       date,
		DistanceKm: event.DistanceKm,
		Duration:   time.Duration(event.DurationSeconds) * time.Second,
		WeightKg:   event.WeightKg,
		Pace:       event.Pace,
	}, nil
}
