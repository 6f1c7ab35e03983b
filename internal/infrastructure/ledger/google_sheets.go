package ledger

import (
	"campusedge_payments/internal/usecase/interfaces"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

const valueInputOption = "USER_ENTERED"

var ErrLedgerNotConfigured = errors.New("google sheets ledger not configured")

// GoogleSheetsLedger appends payment rows to a spreadsheet range.
type GoogleSheetsLedger struct {
	svc           *sheets.Service
	spreadsheetID string
	writeRange    string
	log           logrus.FieldLogger
}

var _ interfaces.ILedgerNotifier = (*GoogleSheetsLedger)(nil)

// NewGoogleSheetsLedger authenticates with a service account. credentials may
// be the JSON document itself or a path to it.
func NewGoogleSheetsLedger(ctx context.Context, credentials, spreadsheetID, writeRange string, log logrus.FieldLogger) (*GoogleSheetsLedger, error) {
	if strings.TrimSpace(credentials) == "" || strings.TrimSpace(spreadsheetID) == "" {
		return nil, ErrLedgerNotConfigured
	}

	credsJSON, err := resolveCredentials(credentials)
	if err != nil {
		return nil, err
	}

	svc, err := sheets.NewService(ctx,
		option.WithCredentialsJSON(credsJSON),
		option.WithScopes(sheets.SpreadsheetsScope),
	)
	if err != nil {
		return nil, fmt.Errorf("create sheets service: %w", err)
	}
	return NewGoogleSheetsLedgerWithService(svc, spreadsheetID, writeRange, log), nil
}

func NewGoogleSheetsLedgerWithService(svc *sheets.Service, spreadsheetID, writeRange string, log logrus.FieldLogger) *GoogleSheetsLedger {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &GoogleSheetsLedger{svc: svc, spreadsheetID: spreadsheetID, writeRange: writeRange, log: log}
}

func (l *GoogleSheetsLedger) AppendRow(ctx context.Context, values []any) error {
	vr := &sheets.ValueRange{Values: [][]interface{}{values}}
	resp, err := l.svc.Spreadsheets.Values.
		Append(l.spreadsheetID, l.writeRange, vr).
		ValueInputOption(valueInputOption).
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("sheets append: %w", err)
	}
	updated := ""
	if resp.Updates != nil {
		updated = resp.Updates.UpdatedRange
	}
	l.log.Debugf("[ledger][sheets] row appended range=%s updated=%s", l.writeRange, updated)
	return nil
}

func resolveCredentials(raw string) ([]byte, error) {
	trimmed := strings.TrimSpace(raw)
	if json.Valid([]byte(trimmed)) {
		return []byte(trimmed), nil
	}
	b, err := os.ReadFile(trimmed)
	if err != nil {
		return nil, fmt.Errorf("invalid GOOGLE_SERVICE_ACCOUNT_JSON: not json and not a readable file: %w", err)
	}
	if !json.Valid(b) {
		return nil, errors.New("invalid GOOGLE_SERVICE_ACCOUNT_JSON: file is not json")
	}
	return b, nil
}

// Disabled is used when no spreadsheet is configured; rows are discarded.
type Disabled struct {
	Log logrus.FieldLogger
}

var _ interfaces.ILedgerNotifier = Disabled{}

func (d Disabled) AppendRow(_ context.Context, values []any) error {
	if d.Log != nil {
		d.Log.Debugf("[ledger][disabled] row skipped columns=%d", len(values))
	}
	return nil
}
