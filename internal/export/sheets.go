package export

import (
	"context"
	"fmt"
	"os"

	"google.golang.org/api/option"
	sheetsv4 "google.golang.org/api/sheets/v4"
)

// SheetsPublisher rewrites the export tabs of a Google Spreadsheet.
type SheetsPublisher struct {
	srv           *sheetsv4.Service
	spreadsheetID string
}

// NewSheetsPublisher authenticates with a service account JSON file.
func NewSheetsPublisher(ctx context.Context, serviceAccountJSONPath, spreadsheetID string) (*SheetsPublisher, error) {
	if _, err := os.Stat(serviceAccountJSONPath); err != nil {
		return nil, fmt.Errorf("service account json: %w", err)
	}
	return NewSheetsPublisherWithOptions(ctx, spreadsheetID,
		option.WithCredentialsFile(serviceAccountJSONPath),
		option.WithScopes(sheetsv4.SpreadsheetsScope),
	)
}

// NewSheetsPublisherWithOptions builds the Sheets client from raw client options.
func NewSheetsPublisherWithOptions(ctx context.Context, spreadsheetID string, opts ...option.ClientOption) (*SheetsPublisher, error) {
	if spreadsheetID == "" {
		return nil, fmt.Errorf("spreadsheet id is empty")
	}
	srv, err := sheetsv4.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create sheets client: %w", err)
	}
	return &SheetsPublisher{srv: srv, spreadsheetID: spreadsheetID}, nil
}

// SpreadsheetID returns the target spreadsheet.
func (p *SheetsPublisher) SpreadsheetID() string { return p.spreadsheetID }

// Publish creates missing tabs, then replaces the contents of each tab with
// the workbook table of the same name.
func (p *SheetsPublisher) Publish(ctx context.Context, wb Workbook) error {
	if err := p.ensureTabs(ctx, wb); err != nil {
		return err
	}

	for _, table := range wb.Sheets {
		rng := fmt.Sprintf("'%s'", table.Name)

		_, err := p.srv.Spreadsheets.Values.Clear(p.spreadsheetID, rng, &sheetsv4.ClearValuesRequest{}).
			Context(ctx).
			Do()
		if err != nil {
			return fmt.Errorf("failed to clear %q: %w", table.Name, err)
		}

		values := make([][]interface{}, 0, len(table.Rows)+1)
		header := make([]interface{}, len(table.Header))
		for i, h := range table.Header {
			header[i] = h
		}
		values = append(values, header)
		for _, row := range table.Rows {
			values = append(values, row)
		}

		vr := &sheetsv4.ValueRange{Values: values}
		_, err = p.srv.Spreadsheets.Values.Update(p.spreadsheetID, rng+"!A1", vr).
			ValueInputOption("RAW").
			Context(ctx).
			Do()
		if err != nil {
			return fmt.Errorf("failed to write %q: %w", table.Name, err)
		}
	}
	return nil
}

func (p *SheetsPublisher) ensureTabs(ctx context.Context, wb Workbook) error {
	ss, err := p.srv.Spreadsheets.Get(p.spreadsheetID).
		Fields("sheets.properties.title").
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("failed to read spreadsheet: %w", err)
	}

	existing := map[string]bool{}
	for _, sh := range ss.Sheets {
		if sh.Properties != nil {
			existing[sh.Properties.Title] = true
		}
	}

	var requests []*sheetsv4.Request
	for _, table := range wb.Sheets {
		if existing[table.Name] {
			continue
		}
		requests = append(requests, &sheetsv4.Request{
			AddSheet: &sheetsv4.AddSheetRequest{
				Properties: &sheetsv4.SheetProperties{Title: table.Name},
			},
		})
	}
	if len(requests) == 0 {
		return nil
	}

	_, err = p.srv.Spreadsheets.BatchUpdate(p.spreadsheetID, &sheetsv4.BatchUpdateSpreadsheetRequest{Requests: requests}).
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("failed to add tabs: %w", err)
	}
	return nil
}
