package google

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	goption "google.golang.org/api/option"
	gsheet "google.golang.org/api/sheets/v4"

	"financeiro/internal/export"
	ports "financeiro/internal/sheets"
)

// clearColumns bounds the range cleared before a tab is rewritten.
const clearColumns = "A:Z"

type Client struct {
	svc           *gsheet.Service
	spreadsheetID string
}

var _ ports.TableWriter = (*Client)(nil)

// Credentials selects the service account used by the client. JSON wins
// over File; with neither, GOOGLE_APPLICATION_CREDENTIALS is read.
type Credentials struct {
	JSON string
	File string
}

// New creates a Sheets client for spreadsheetID.
func New(ctx context.Context, spreadsheetID string, creds Credentials) (*Client, error) {
	spreadsheetID = strings.TrimSpace(spreadsheetID)
	if spreadsheetID == "" {
		return nil, errors.New("missing GOOGLE_SPREADSHEET_ID")
	}
	svc, err := newSheetsService(ctx, creds)
	if err != nil {
		return nil, fmt.Errorf("sheets service: %w", err)
	}
	return &Client{svc: svc, spreadsheetID: spreadsheetID}, nil
}

// newSheetsService initializes a Sheets Service using Service Account credentials.
func newSheetsService(ctx context.Context, creds Credentials) (*gsheet.Service, error) {
	credentialsJSON, err := readCredentials(creds)
	if err != nil {
		return nil, err
	}

	slog.InfoContext(ctx, "Creating Google Sheets service with Service Account",
		"credentials_size", len(credentialsJSON),
		"scope", gsheet.SpreadsheetsScope)

	service, err := gsheet.NewService(ctx,
		goption.WithCredentialsJSON(credentialsJSON),
		goption.WithScopes(gsheet.SpreadsheetsScope))
	if err != nil {
		return nil, fmt.Errorf("create sheets service: %w", err)
	}
	return service, nil
}

func readCredentials(creds Credentials) ([]byte, error) {
	inline := strings.TrimSpace(creds.JSON)
	file := strings.TrimSpace(creds.File)
	if inline == "" && file == "" {
		file = strings.TrimSpace(os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"))
	}

	switch {
	case inline != "":
		return []byte(inline), nil
	case file != "":
		data, err := os.ReadFile(file)
		if err != nil {
			return nil, fmt.Errorf("read service account file: %w", err)
		}
		return data, nil
	default:
		return nil, errors.New("missing service account credentials (set GOOGLE_SERVICE_ACCOUNT_JSON, GOOGLE_SERVICE_ACCOUNT_FILE, or GOOGLE_APPLICATION_CREDENTIALS)")
	}
}

func (c *Client) Name() string {
	return "sheets"
}

// Write replaces the content of one tab per table, creating missing tabs.
func (c *Client) Write(ctx context.Context, tables []export.Table) error {
	if c.svc == nil {
		return errors.New("sheets service not initialized")
	}
	if err := c.ensureTabs(ctx, tables); err != nil {
		return err
	}

	for _, t := range tables {
		if _, err := c.svc.Spreadsheets.Values.Clear(c.spreadsheetID, tabRange(t.Name, clearColumns), &gsheet.ClearValuesRequest{}).
			Context(ctx).Do(); err != nil {
			return fmt.Errorf("clear tab %s: %w", t.Name, err)
		}
		vr := valueRange(t)
		if _, err := c.svc.Spreadsheets.Values.Update(c.spreadsheetID, vr.Range, vr).
			ValueInputOption("RAW").Context(ctx).Do(); err != nil {
			return fmt.Errorf("update tab %s: %w", t.Name, err)
		}
	}
	slog.InfoContext(ctx, "Reports exported to Google Sheets",
		"spreadsheet_id", c.spreadsheetID,
		"tabs", len(tables))
	return nil
}

func (c *Client) ensureTabs(ctx context.Context, tables []export.Table) error {
	ss, err := c.svc.Spreadsheets.Get(c.spreadsheetID).Fields("sheets.properties.title").Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("read spreadsheet: %w", err)
	}
	existing := make([]string, 0, len(ss.Sheets))
	for _, sh := range ss.Sheets {
		if sh.Properties != nil {
			existing = append(existing, sh.Properties.Title)
		}
	}

	missing := missingTabs(existing, tables)
	if len(missing) == 0 {
		return nil
	}
	reqs := make([]*gsheet.Request, len(missing))
	for i, name := range missing {
		reqs[i] = &gsheet.Request{AddSheet: &gsheet.AddSheetRequest{Properties: &gsheet.SheetProperties{Title: name}}}
	}
	if _, err := c.svc.Spreadsheets.BatchUpdate(c.spreadsheetID, &gsheet.BatchUpdateSpreadsheetRequest{Requests: reqs}).
		Context(ctx).Do(); err != nil {
		return fmt.Errorf("add tabs %v: %w", missing, err)
	}
	slog.InfoContext(ctx, "Created spreadsheet tabs", "tabs", missing)
	return nil
}
