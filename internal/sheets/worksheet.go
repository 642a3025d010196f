package sheets

import (
	"context"
	"strings"

	"google.golang.org/api/sheets/v4"

	"github.com/vinifranco48/performace/internal/domain"
)

// Worksheet is one tab of a spreadsheet.
type Worksheet struct {
	svc           *sheets.Service
	spreadsheetID string
	title         string
}

// NewWorksheet binds a tab by spreadsheet id and tab title.
func NewWorksheet(svc *sheets.Service, spreadsheetID, title string) *Worksheet {
	return &Worksheet{svc: svc, spreadsheetID: spreadsheetID, title: title}
}

// Title returns the tab title.
func (w *Worksheet) Title() string {
	return w.title
}

// HeaderRow implements domain.Table.
func (w *Worksheet) HeaderRow(ctx context.Context) ([]string, error) {
	resp, err := w.svc.Spreadsheets.Values.Get(w.spreadsheetID, w.a1("1:1")).
		ValueRenderOption("FORMATTED_VALUE").
		Context(ctx).
		Do()
	if err != nil {
		return nil, err
	}
	if len(resp.Values) == 0 {
		return []string{}, nil
	}
	return toStrings(resp.Values[0]), nil
}

// Clear implements domain.Table.
func (w *Worksheet) Clear(ctx context.Context) error {
	_, err := w.svc.Spreadsheets.Values.Clear(w.spreadsheetID, w.a1(""), &sheets.ClearValuesRequest{}).
		Context(ctx).
		Do()
	return err
}

// AppendRow implements domain.Table. Values are written RAW into new rows.
func (w *Worksheet) AppendRow(ctx context.Context, values []any) error {
	body := &sheets.ValueRange{
		MajorDimension: "ROWS",
		Values:         [][]interface{}{values},
	}
	_, err := w.svc.Spreadsheets.Values.Append(w.spreadsheetID, w.a1("A1"), body).
		ValueInputOption("RAW").
		InsertDataOption("INSERT_ROWS").
		Context(ctx).
		Do()
	return err
}

// Rows implements domain.Table.
func (w *Worksheet) Rows(ctx context.Context) ([][]string, error) {
	resp, err := w.svc.Spreadsheets.Values.Get(w.spreadsheetID, w.a1("")).
		ValueRenderOption("FORMATTED_VALUE").
		Context(ctx).
		Do()
	if err != nil {
		return nil, err
	}
	rows := make([][]string, 0, len(resp.Values))
	for _, row := range resp.Values {
		rows = append(rows, toStrings(row))
	}
	return rows, nil
}

func (w *Worksheet) a1(cells string) string {
	quoted := "'" + strings.ReplaceAll(w.title, "'", "''") + "'"
	if cells == "" {
		return quoted
	}
	return quoted + "!" + cells
}

func toStrings(row []interface{}) []string {
	out := make([]string, len(row))
	for i, cell := range row {
		out[i] = domain.FormatCell(cell)
	}
	return out
}
