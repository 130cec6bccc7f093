// Package sheets appends submission rows to a Google Sheets worksheet.
package sheets

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/rs/zerolog/log"
	"google.golang.org/api/drive/v3"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

const spreadsheetMimeType = "application/vnd.google-apps.spreadsheet"

// Config locates the target worksheet and the service-account key.
type Config struct {
	// CredentialsFile is a path to a service-account JSON key.
	CredentialsFile string

	// CredentialsJSON is the key itself; it wins over CredentialsFile.
	CredentialsJSON string

	// SpreadsheetID addresses the spreadsheet directly.
	SpreadsheetID string

	// SpreadsheetName is resolved through Drive when no ID is given.
	SpreadsheetName string

	// Worksheet is the tab title. Empty selects the first tab.
	Worksheet string
}

// Validate reports a config that cannot address any spreadsheet.
func (c Config) Validate() error {
	if c.SpreadsheetID == "" && c.SpreadsheetName == "" {
		return errors.New("sheets: spreadsheet_id or spreadsheet_name is required")
	}
	return nil
}

// Appender appends rows to one worksheet. The spreadsheet ID and tab title
// are resolved on first use and cached.
type Appender struct {
	sheets *sheets.Service
	drive  *drive.Service
	cfg    Config

	mu            sync.Mutex
	spreadsheetID string
	sheetTitle    string
}

// New creates an Appender. Extra client options are applied after the
// credentials derived from cfg.
func New(ctx context.Context, cfg Config, opts ...option.ClientOption) (*Appender, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	var clientOpts []option.ClientOption
	switch {
	case cfg.CredentialsJSON != "":
		clientOpts = append(clientOpts, option.WithCredentialsJSON([]byte(cfg.CredentialsJSON)))
	case cfg.CredentialsFile != "":
		clientOpts = append(clientOpts, option.WithCredentialsFile(cfg.CredentialsFile))
	}
	clientOpts = append(clientOpts, option.WithScopes(sheets.SpreadsheetsScope, drive.DriveMetadataReadonlyScope))
	clientOpts = append(clientOpts, opts...)

	sheetsSvc, err := sheets.NewService(ctx, clientOpts...)
	if err != nil {
		return nil, fmt.Errorf("create sheets client: %w", err)
	}

	a := &Appender{
		sheets:        sheetsSvc,
		cfg:           cfg,
		spreadsheetID: cfg.SpreadsheetID,
		sheetTitle:    cfg.Worksheet,
	}

	if cfg.SpreadsheetID == "" {
		a.drive, err = drive.NewService(ctx, clientOpts...)
		if err != nil {
			return nil, fmt.Errorf("create drive client: %w", err)
		}
	}
	return a, nil
}

// AppendRow appends row below the last row of the worksheet. Values are
// stored as entered (RAW) and always go into a new row.
func (a *Appender) AppendRow(ctx context.Context, row []string) error {
	id, title, err := a.target(ctx)
	if err != nil {
		return err
	}

	values := make([]interface{}, len(row))
	for i, v := range row {
		values[i] = v
	}

	resp, err := a.sheets.Spreadsheets.Values.
		Append(id, quoteTitle(title), &sheets.ValueRange{Values: [][]interface{}{values}}).
		ValueInputOption("RAW").
		InsertDataOption("INSERT_ROWS").
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("append row to %q: %w", title, err)
	}

	if resp.Updates != nil {
		log.Debug().Str("range", resp.Updates.UpdatedRange).Msg("sheet row appended")
	}
	return nil
}

func (a *Appender) target(ctx context.Context) (string, string, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.spreadsheetID == "" {
		id, err := a.lookupByName(ctx, a.cfg.SpreadsheetName)
		if err != nil {
			return "", "", err
		}
		a.spreadsheetID = id
	}

	if a.sheetTitle == "" {
		title, err := a.firstSheetTitle(ctx, a.spreadsheetID)
		if err != nil {
			return "", "", err
		}
		a.sheetTitle = title
	}

	return a.spreadsheetID, a.sheetTitle, nil
}

func (a *Appender) lookupByName(ctx context.Context, name string) (string, error) {
	q := fmt.Sprintf("name = '%s' and mimeType = '%s' and trashed = false",
		escapeQuery(name), spreadsheetMimeType)

	list, err := a.drive.Files.List().
		Q(q).
		Fields("files(id, name)").
		PageSize(1).
		Context(ctx).
		Do()
	if err != nil {
		return "", fmt.Errorf("find spreadsheet %q: %w", name, err)
	}
	if len(list.Files) == 0 {
		return "", fmt.Errorf("spreadsheet %q not found or not shared with the service account", name)
	}

	log.Debug().Str("name", name).Str("spreadsheet_id", list.Files[0].Id).Msg("resolved spreadsheet")
	return list.Files[0].Id, nil
}

func (a *Appender) firstSheetTitle(ctx context.Context, id string) (string, error) {
	ss, err := a.sheets.Spreadsheets.Get(id).
		Fields("sheets.properties.title").
		Context(ctx).
		Do()
	if err != nil {
		return "", fmt.Errorf("get spreadsheet %s: %w", id, err)
	}
	if len(ss.Sheets) == 0 || ss.Sheets[0].Properties == nil {
		return "", fmt.Errorf("spreadsheet %s has no worksheets", id)
	}
	return ss.Sheets[0].Properties.Title, nil
}

// quoteTitle turns a tab title into an A1 range covering the whole tab.
func quoteTitle(title string) string {
	return "'" + strings.ReplaceAll(title, "'", "''") + "'"
}

func escapeQuery(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	return strings.ReplaceAll(s, `'`, `\'`)
}
