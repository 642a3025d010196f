package sheets

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"google.golang.org/api/drive/v3"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"

	"github.com/vinifranco48/performace/internal/domain"
)

const spreadsheetMimeType = "application/vnd.google-apps.spreadsheet"

var (
	// ErrSpreadsheetNotFound is returned when no spreadsheet carries the configured name.
	ErrSpreadsheetNotFound = errors.New("spreadsheet not found")
	// ErrNoWorksheets is returned when the spreadsheet has no tabs.
	ErrNoWorksheets = errors.New("spreadsheet has no worksheets")
)

// Connector opens the first worksheet of a spreadsheet looked up by name.
// Every Connect builds new API clients; nothing is cached between calls.
type Connector struct {
	name   string
	opts   []option.ClientOption
	logger *zap.Logger
}

// NewConnector constructs a Connector. opts carry credentials and scopes.
func NewConnector(name string, logger *zap.Logger, opts ...option.ClientOption) *Connector {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Connector{name: name, opts: opts, logger: logger}
}

// Connect implements domain.Connector.
func (c *Connector) Connect(ctx context.Context) (domain.Table, error) {
	driveSvc, err := drive.NewService(ctx, c.opts...)
	if err != nil {
		return nil, fmt.Errorf("drive client: %w", err)
	}
	sheetsSvc, err := sheets.NewService(ctx, c.opts...)
	if err != nil {
		return nil, fmt.Errorf("sheets client: %w", err)
	}

	id, err := c.lookup(ctx, driveSvc)
	if err != nil {
		return nil, err
	}

	spreadsheet, err := sheetsSvc.Spreadsheets.Get(id).Fields("sheets.properties").Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("open spreadsheet %q: %w", c.name, err)
	}
	if len(spreadsheet.Sheets) == 0 || spreadsheet.Sheets[0].Properties == nil {
		return nil, ErrNoWorksheets
	}
	title := spreadsheet.Sheets[0].Properties.Title

	c.logger.Debug("spreadsheet opened",
		zap.String("name", c.name),
		zap.String("spreadsheet_id", id),
		zap.String("worksheet", title))
	return NewWorksheet(sheetsSvc, id, title), nil
}

func (c *Connector) lookup(ctx context.Context, svc *drive.Service) (string, error) {
	query := fmt.Sprintf("name = '%s' and mimeType = '%s' and trashed = false", escapeQuery(c.name), spreadsheetMimeType)
	list, err := svc.Files.List().
		Q(query).
		Fields("files(id, name)").
		PageSize(1).
		SupportsAllDrives(true).
		IncludeItemsFromAllDrives(true).
		Context(ctx).
		Do()
	if err != nil {
		return "", fmt.Errorf("search spreadsheet %q: %w", c.name, err)
	}
	if len(list.Files) == 0 {
		return "", fmt.Errorf("%w: %q", ErrSpreadsheetNotFound, c.name)
	}
	return list.Files[0].Id, nil
}

func escapeQuery(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	return strings.ReplaceAll(s, `'`, `\'`)
}
