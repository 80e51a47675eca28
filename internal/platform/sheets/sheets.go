// Package sheets wraps the Google Sheets API surface the enrollment flow
// needs: counting the occupied rows of a column and updating one row at an
// explicit range.
package sheets

import (
	"context"
	"fmt"

	"google.golang.org/api/option"
	sheetsapi "google.golang.org/api/sheets/v4"

	"github.com/we-edu/enrollment-api/internal/config"
)

// Client talks to one spreadsheet, constructed once at startup and shared
// by reference across requests.
type Client struct {
	svc           *sheetsapi.Service
	spreadsheetID string
}

// New builds a Sheets client for the configured spreadsheet. When
// CredentialsFile is empty the default application credentials chain is
// used.
func New(ctx context.Context, cfg config.SheetsConfig) (*Client, error) {
	var opts []option.ClientOption
	opts = append(opts, option.WithScopes(sheetsapi.SpreadsheetsScope))
	if cfg.CredentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(cfg.CredentialsFile))
	}

	svc, err := sheetsapi.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create sheets client: %w", err)
	}

	return &Client{svc: svc, spreadsheetID: cfg.SpreadsheetID}, nil
}

// ColumnRowCount returns how many rows of column A of the named sheet hold
// values, header included. The Sheets API omits trailing empty rows from
// the response, so the length of the returned values is the occupied count.
func (c *Client) ColumnRowCount(ctx context.Context, sheetName string) (int, error) {
	rng := fmt.Sprintf("%s!A:A", sheetName)
	resp, err := c.svc.Spreadsheets.Values.Get(c.spreadsheetID, rng).Context(ctx).Do()
	if err != nil {
		return 0, fmt.Errorf("read column %s: %w", rng, err)
	}
	return len(resp.Values), nil
}

// UpdateRow writes one row of cells at the given A1-notation range using
// USER_ENTERED input semantics, so formula cells (the hyperlink columns)
// are evaluated by the spreadsheet.
func (c *Client) UpdateRow(ctx context.Context, rng string, row []any) error {
	body := &sheetsapi.ValueRange{
		MajorDimension: "ROWS",
		Values:         [][]any{row},
	}
	_, err := c.svc.Spreadsheets.Values.Update(c.spreadsheetID, rng, body).
		ValueInputOption("USER_ENTERED").
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("update range %s: %w", rng, err)
	}
	return nil
}
