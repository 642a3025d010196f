package domain

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// DateLayout is the calendar-date format written to the Data column.
const DateLayout = "2006-01-02"

// Column names of the workout sheet, in storage order.
const (
	ColumnDate     = "Data"
	ColumnDistance = "Distância (km)"
	ColumnDuration = "Tempo"
	ColumnWeight   = "Peso (kg)"
	ColumnPace     = "Pace"
)

// Columns returns the expected header row. A fresh slice is returned on every call.
func Columns() []string {
	return []string{ColumnDate, ColumnDistance, ColumnDuration, ColumnWeight, ColumnPace}
}

// WorkoutEntry is one recorded run. Entries are never updated once appended.
type WorkoutEntry struct {
	Date       time.Time
	DistanceKm float64
	Duration   time.Duration
	WeightKg   float64
	Pace       string
}

// NewWorkoutEntry builds an entry and derives its pace.
func NewWorkoutEntry(date time.Time, distanceKm float64, duration time.Duration, weightKg float64) WorkoutEntry {
	return WorkoutEntry{
		Date:       date,
		DistanceKm: distanceKm,
		Duration:   duration,
		WeightKg:   weightKg,
		Pace:       ComputePace(duration, distanceKm),
	}
}

// Values returns the row cells positionally aligned with Columns.
func (e WorkoutEntry) Values() []any {
	return []any{
		e.Date.Format(DateLayout),
		e.DistanceKm,
		FormatDuration(e.Duration),
		e.WeightKg,
		e.Pace,
	}
}

// Record is a single data row keyed by header name. Cell values are
// strings, int64 or float64.
type Record map[string]any

// History is the content of the store below the header row.
type History struct {
	Columns []string
	Records []Record
}

// Len reports the number of records.
func (h History) Len() int {
	return len(h.Records)
}

// Rows renders the records as display strings in column order.
func (h History) Rows() [][]string {
	out := make([][]string, 0, len(h.Records))
	for _, rec := range h.Records {
		row := make([]string, len(h.Columns))
		for i, col := range h.Columns {
			row[i] = FormatCell(rec[col])
		}
		out = append(out, row)
	}
	return out
}

// Last returns the most recently appended record.
func (h History) Last() (Record, bool) {
	if len(h.Records) == 0 {
		return nil, false
	}
	return h.Records[len(h.Records)-1], true
}

// FormatCell renders a cell value the way the store displays it.
func FormatCell(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(val), 'f', -1, 32)
	case int:
		return strconv.Itoa(val)
	case int64:
		return strconv.FormatInt(val, 10)
	case bool:
		if val {
			return "TRUE"
		}
		return "FALSE"
	default:
		return fmt.Sprint(val)
	}
}

// FormatDuration renders d as H:MM:SS. Spans of a day or more carry a
// "N day(s), " prefix. Sub-second precision is dropped.
func FormatDuration(d time.Duration) string {
	neg := d < 0
	if neg {
		d = -d
	}
	total := int64(d / time.Second)
	days := total / 86400
	rem := total % 86400
	clock := fmt.Sprintf("%d:%02d:%02d", rem/3600, (rem%3600)/60, rem%60)

	var b strings.Builder
	if neg {
		b.WriteByte('-')
	}
	if days > 0 {
		unit := "days"
		if days == 1 {
			unit = "day"
		}
		fmt.Fprintf(&b, "%d %s, ", days, unit)
	}
	b.WriteString(clock)
	return b.String()
}

// ParseDuration reverses FormatDuration.
func ParseDuration(s string) (time.Duration, error) {
	s = strings.TrimSpace(s)
	var days int64
	if head, clock, ok := strings.Cut(s, ", "); ok {
		fields := strings.Fields(head)
		if len(fields) != 2 || (fields[1] != "day" && fields[1] != "days") {
			return 0, fmt.Errorf("invalid duration %q", s)
		}
		n, err := strconv.ParseInt(fields[0], 10, 64)
		if err != nil {
			return 0, fmt.Errorf("invalid duration %q: %w", s, err)
		}
		days = n
		s = clock
	}

	parts := strings.Split(s, ":")
	if len(parts) != 3 {
		return 0, fmt.Errorf("invalid duration %q", s)
	}
	var hms [3]int64
	for i, p := range parts {
		n, err := strconv.ParseInt(p, 10, 64)
		if err != nil || n < 0 {
			return 0, fmt.Errorf("invalid duration %q", s)
		}
		hms[i] = n
	}
	if hms[1] > 59 || hms[2] > 59 {
		return 0, fmt.Errorf("invalid duration %q", s)
	}
	secs := days*86400 + hms[0]*3600 + hms[1]*60 + hms[2]
	return time.Duration(secs) * time.Second, nil
}
