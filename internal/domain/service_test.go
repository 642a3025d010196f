package domain

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/vinifranco48/performace/internal/events"
)

func TestEvaluateRecordsSubmissionAndLoadsHistory(t *testing.T) {
	table := &fakeTable{rows: [][]string{Columns()}}
	publisher := &stubPublisher{}
	fixed := time.Date(2024, time.May, 1, 7, 30, 0, 0, time.UTC)
	svc := NewService(&stubConnector{table: table},
		WithLogger(zaptest.NewLogger(t)),
		WithPublisher(publisher),
		WithSheetName("Performace"),
		WithClock(func() time.Time { return fixed }),
	)

	sub := &Submission{
		Date:       time.Date(2024, time.May, 1, 0, 0, 0, 0, time.UTC),
		DistanceKm: 5,
		Minutes:    25,
		Seconds:    30,
		WeightKg:   71.3,
	}
	page, err := svc.Evaluate(context.Background(), sub)
	require.NoError(t, err)

	require.True(t, page.Submitted)
	require.NoError(t, page.InsertErr)
	require.NoError(t, page.LoadErr)
	require.NotNil(t, page.Entry)
	require.Equal(t, "5:06", page.Entry.Pace)

	require.Equal(t, [][]string{Columns(), {"2024-05-01", "5", "0:25:30", "71.3", "5:06"}}, table.rows)
	require.Equal(t, 1, page.History.Len())

	require.Len(t, publisher.events, 1)
	event := publisher.events[0]
	require.Equal(t, "Performace", event.Sheet)
	require.Equal(t, int64(1530), event.DurationSeconds)
	require.Equal(t, fixed, event.RecordedAt)
	require.NotEmpty(t, event.EntryID)
}

func TestEvaluateWithoutSubmissionOnlyLoads(t *testing.T) {
	table := &fakeTable{rows: [][]string{Columns(), {"2024-04-30", "10", "1:00:00", "70", "6:00"}}}
	svc := NewService(&stubConnector{table: table})

	page, err := svc.Evaluate(context.Background(), nil)
	require.NoError(t, err)
	require.False(t, page.Submitted)
	require.Nil(t, page.Entry)
	require.Zero(t, table.appendCalls)
	require.Equal(t, 1, page.History.Len())
}

func TestEvaluateConnectionFailureIsTerminal(t *testing.T) {
	svc := NewService(&stubConnector{err: errors.New("invalid_grant")})

	_, err := svc.Evaluate(context.Background(), &Submission{Date: time.Now()})
	var connErr *ConnectionError
	require.ErrorAs(t, err, &connErr)
}

func TestEvaluateSchemaFailureIsConnectionError(t *testing.T) {
	svc := NewService(&stubConnector{table: &fakeTable{headerErr: errors.New("403")}})

	_, err := svc.Evaluate(context.Background(), nil)
	var connErr *ConnectionError
	require.ErrorAs(t, err, &connErr)
}

func TestEvaluateInsertFailureStillLoadsHistory(t *testing.T) {
	table := &fakeTable{rows: [][]string{Columns(), {"2024-04-30", "10", "1:00:00", "70", "6:00"}}}
	publisher := &stubPublisher{}
	svc := NewService(&stubConnector{table: table, afterOpen: func(ft *fakeTable) {
		ft.appendErr = errors.New("rate limited")
	}}, WithPublisher(publisher))

	page, err := svc.Evaluate(context.Background(), &Submission{Date: time.Now(), DistanceKm: 3})
	require.NoError(t, err)

	var insertErr *InsertError
	require.ErrorAs(t, page.InsertErr, &insertErr)
	require.Nil(t, page.Entry)
	require.NoError(t, page.LoadErr)
	require.Equal(t, 1, page.History.Len())
	require.Empty(t, publisher.events)
}

func TestEvaluateLoadFailureKeepsInsert(t *testing.T) {
	table := &fakeTable{rows: [][]string{Columns()}, rowsErr: errors.New("backend error")}
	svc := NewService(&stubConnector{table: table})

	page, err := svc.Evaluate(context.Background(), &Submission{Date: time.Now(), DistanceKm: 3, Minutes: 18})
	require.NoError(t, err)
	require.NotNil(t, page.Entry)

	var loadErr *LoadError
	require.ErrorAs(t, page.LoadErr, &loadErr)
	require.Zero(t, page.History.Len())
}

func TestPublishFailureDoesNotFailInsert(t *testing.T) {
	table := &fakeTable{rows: [][]string{Columns()}}
	svc := NewService(&stubConnector{table: table}, WithPublisher(&stubPublisher{err: errors.New("broker down")}))

	page, err := svc.Evaluate(context.Background(), &Submission{Date: time.Now(), DistanceKm: 1, Minutes: 5})
	require.NoError(t, err)
	require.NoError(t, page.InsertErr)
	require.Len(t, table.rows, 2)
}

func TestSubmissionValidate(t *testing.T) {
	valid := Submission{Date: time.Now(), DistanceKm: 5, Hours: 1, Minutes: 59, Seconds: 59, WeightKg: 70}
	require.NoError(t, valid.Validate())
	require.Equal(t, time.Hour+59*time.Minute+59*time.Second, valid.Duration())

	invalid := []Submission{
		{DistanceKm: 5},
		{Date: time.Now(), DistanceKm: -1},
		{Date: time.Now(), Hours: -1},
		{Date: time.Now(), Minutes: 60},
		{Date: time.Now(), Seconds: 60},
		{Date: time.Now(), WeightKg: -0.1},
	}
	for _, sub := range invalid {
		require.Error(t, sub.Validate(), "%+v", sub)
	}
}

func TestEntryFromEvent(t *testing.T) {
	entry, err := EntryFromEvent(events.RunRecorded{
		Date:            "2024-05-01",
		DistanceKm:      5,
		DurationSeconds: 1800,
		WeightKg:        70,
		Pace:            "6:00",
	})
	require.NoError(t, err)
	require.Equal(t, []any{"2024-05-01", 5.0, "0:30:00", 70.0, "6:00"}, entry.Values())

	_, err = EntryFromEvent(events.RunRecorded{Date: "yesterday"})
	require.Error(t, err)
}

type stubConnector struct {
	table     *fakeTable
	err       error
	afterOpen func(*fakeTable)
}

func (c *stubConnector) Connect(context.Context) (Table, error) {
	if c.err != nil {
		return nil, c.err
	}
	return &hookTable{fakeTable: c.table, after: c.afterOpen}, nil
}

// hookTable lets a test break the table once the header has been verified.
type hookTable struct {
	*fakeTable
	after func(*fakeTable)
	fired bool
}

func (h *hookTable) HeaderRow(ctx context.Context) ([]string, error) {
	header, err := h.fakeTable.HeaderRow(ctx)
	if !h.fired && h.after != nil {
		h.fired = true
		h.after(h.fakeTable)
	}
	return header, err
}

type stubPublisher struct {
	events []events.RunRecorded
	err    error
}

func (p *stubPublisher) PublishRunRecorded(_ context.Context, event events.RunRecorded) error {
	if p.err != nil {
		return p.err
	}
	p.events = append(p.events, event)
	return nil
}
