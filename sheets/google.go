package sheets

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/oauth2/google"
	"golang.org/x/oauth2/jwt"
	"google.golang.org/api/option"
	sheetsapi "google.golang.org/api/sheets/v4"
)

const valueInputRaw = "RAW"

// GoogleStore writes to a Google Sheets spreadsheet.
type GoogleStore struct {
	svc           *sheetsapi.Service
	spreadsheetID string
}

// NewGoogleStore authenticates as a service account. The private key may
// carry literal "\n" sequences, as it does when passed through env vars.
func NewGoogleStore(ctx context.Context, spreadsheetID, clientEmail, privateKey string) (*GoogleStore, error) {
	conf := &jwt.Config{
		Email:      clientEmail,
		PrivateKey: []byte(NormalizePrivateKey(privateKey)),
		Scopes:     []string{sheetsapi.SpreadsheetsScope},
		TokenURL:   google.JWTTokenURL,
	}
	return NewGoogleStoreWithOptions(ctx, spreadsheetID, option.WithHTTPClient(conf.Client(ctx)))
}

func NewGoogleStoreWithOptions(ctx context.Context, spreadsheetID string, opts ...option.ClientOption) (*GoogleStore, error) {
	svc, err := sheetsapi.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create sheets service: %w", err)
	}
	return &GoogleStore{svc: svc, spreadsheetID: spreadsheetID}, nil
}

// NormalizePrivateKey turns escaped newlines into real ones.
func NormalizePrivateKey(key string) string {
	return strings.ReplaceAll(key, `\n`, "\n")
}

func (g *GoogleStore) EnsureSheet(ctx context.Context, sheet Sheet) (bool, error) {
	exists, err := g.hasSheet(ctx, sheet.Title)
	if err != nil {
		return false, err
	}
	if exists {
		return false, nil
	}

	add := &sheetsapi.BatchUpdateSpreadsheetRequest{
		Requests: []*sheetsapi.Request{{
			AddSheet: &sheetsapi.AddSheetRequest{
				Properties: &sheetsapi.SheetProperties{Title: sheet.Title},
			},
		}},
	}
	if _, err := g.svc.Spreadsheets.BatchUpdate(g.spreadsheetID, add).Context(ctx).Do(); err != nil {
		return false, fmt.Errorf("failed to add sheet %s: %w", sheet.Title, err)
	}

	header := &sheetsapi.ValueRange{Values: [][]interface{}{toCells(sheet.Headers)}}
	_, err = g.svc.Spreadsheets.Values.Update(g.spreadsheetID, sheet.Title+"!A1", header).
		ValueInputOption(valueInputRaw).
		Context(ctx).
		Do()
	if err != nil {
		return true, fmt.Errorf("failed to write headers to %s: %w", sheet.Title, err)
	}

	return true, nil
}

func (g *GoogleStore) AppendRow(ctx context.Context, sheet Sheet, row []string) error {
	body := &sheetsapi.ValueRange{Values: [][]interface{}{toCells(row)}}
	_, err := g.svc.Spreadsheets.Values.Append(g.spreadsheetID, sheet.Range(), body).
		ValueInputOption(valueInputRaw).
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("failed to append to %s: %w", sheet.Title, err)
	}
	return nil
}

func (g *GoogleStore) hasSheet(ctx context.Context, title string) (bool, error) {
	resp, err := g.svc.Spreadsheets.Get(g.spreadsheetID).
		Fields("sheets.properties.title").
		Context(ctx).
		Do()
	if err != nil {
		return false, fmt.Errorf("failed to get spreadsheet: %w", err)
	}

	for _, s := range resp.Sheets {
		if s.Properties != nil && s.Properties.Title == title {
			return true, nil
		}
	}
	return false, nil
}

func toCells(values []string) []interface{} {
	cells := make([]interface{}, len(values))
	for i, v := range values {
		cells[i] = v
	}
	return cells
}
