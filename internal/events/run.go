// Package events defines the payloads emitted when runs are recorded.
package events

import "time"

// RunRecordedType is the event_type header value for RunRecorded.
const RunRecordedType = "run.recorded"

// RunRecorded is emitted after a run row is appended to the sheet.
type RunRecorded struct {
	EntryID         string    `json:"entry_id"`
	Sheet           string    `json:"sheet"`
	Date            string    `json:"date"`
	DistanceKm      float64   `json:"distance_km"`
	DurationSeconds int64     `json:"duration_seconds"`
	Duration        string    `json:"duration"`
	WeightKg        float64   `json:"weight_kg"`
	Pace            string    `json:"pace"`
	RecordedAt      time.Time `json:"recorded_at"`
}
