package ledger

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

func newTestService(t *testing.T, handler http.HandlerFunc) *sheets.Service {
	t.Helper()
	ts := httptest.NewServer(handler)
	t.Cleanup(ts.Close)

	svc, err := sheets.NewService(context.Background(),
		option.WithEndpoint(ts.URL+"/"),
		option.WithHTTPClient(ts.Client()),
	)
	require.NoError(t, err)
	return svc
}

func TestGoogleSheetsLedger_AppendRow(t *testing.T) {
	var gotPath, gotQuery string
	var gotBody map[string]any

	svc := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.RawQuery
		b, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(b, &gotBody)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"spreadsheetId":"sheet-1","updates":{"updatedRange":"Sheet1!A2:E2"}}`))
	})

	l := NewGoogleSheetsLedgerWithService(svc, "sheet-1", "Sheet1!A1", nil)
	err := l.AppendRow(context.Background(), []any{"2025-03-01T10:30:00.000Z", "pay-1", "APPROVED", 500.0, "S1"})
	require.NoError(t, err)

	assert.Contains(t, gotPath, "/spreadsheets/sheet-1/values/")
	assert.True(t, strings.HasSuffix(gotPath, ":append"), "unexpected path %s", gotPath)
	assert.Contains(t, gotQuery, "valueInputOption=USER_ENTERED")

	values, ok := gotBody["values"].([]any)
	require.True(t, ok, "body: %v", gotBody)
	row := values[0].([]any)
	assert.Equal(t, "pay-1", row[1])
	assert.Equal(t, "APPROVED", row[2])
}

func TestGoogleSheetsLedger_AppendRowError(t *testing.T) {
	svc := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte(`{"error":{"code":403,"message":"The caller does not have permission"}}`))
	})

	l := NewGoogleSheetsLedgerWithService(svc, "sheet-1", "Sheet1!A1", nil)
	err := l.AppendRow(context.Background(), []any{"x"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "sheets append")
}

func TestNewGoogleSheetsLedger_NotConfigured(t *testing.T) {
	_, err := NewGoogleSheetsLedger(context.Background(), "", "sheet-1", "Sheet1!A1", nil)
	assert.True(t, errors.Is(err, ErrLedgerNotConfigured))

	_, err = NewGoogleSheetsLedger(context.Background(), `{"type":"service_account"}`, " ", "Sheet1!A1", nil)
	assert.True(t, errors.Is(err, ErrLedgerNotConfigured))
}

func TestResolveCredentials(t *testing.T) {
	inline := `{"type":"service_account","client_email":"svc@example.iam.gserviceaccount.com"}`
	got, err := resolveCredentials("  " + inline + " ")
	require.NoError(t, err)
	assert.JSONEq(t, inline, string(got))

	path := filepath.Join(t.TempDir(), "sa.json")
	require.NoError(t, os.WriteFile(path, []byte(inline), 0o600))
	got, err = resolveCredentials(path)
	require.NoError(t, err)
	assert.JSONEq(t, inline, string(got))

	_, err = resolveCredentials(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)

	bad := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte("not json"), 0o600))
	_, err = resolveCredentials(bad)
	assert.Error(t, err)
}

func TestDisabled_AppendRow(t *testing.T) {
	assert.NoError(t, Disabled{}.AppendRow(context.Background(), []any{"a"}))
}
