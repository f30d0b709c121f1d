package sheet

import (
	"context"
	"encoding/base64"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

func newFakeSheets(t *testing.T) *sheets.Service {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if strings.Contains(r.URL.Path, "/values/") {
			assert.Equal(t, "UNFORMATTED_VALUE", r.URL.Query().Get("valueRenderOption"))
			_, _ = w.Write([]byte(`{"range":"Due!A1:Z","values":[["Name","Cycle Date"],["Asha",44927]]}`))
			return
		}
		_, _ = w.Write([]byte(`{"sheets":[{"properties":{"sheetId":1,"title":"Archive"}},{"properties":{"sheetId":7,"title":"Due"}}]}`))
	}))
	t.Cleanup(ts.Close)

	srv, err := sheets.NewService(context.Background(),
		option.WithEndpoint(ts.URL+"/"),
		option.WithoutAuthentication(),
		option.WithHTTPClient(ts.Client()),
	)
	require.NoError(t, err)
	return srv
}

func TestNewSheetService_BadCredentials(t *testing.T) {
	_, err := NewSheetService(context.Background(), "%%%", "sheet", "", 0)
	assert.ErrorContains(t, err, "decode credentials")

	_, err = NewSheetService(context.Background(), base64.StdEncoding.EncodeToString([]byte("{")), "sheet", "", 0)
	assert.ErrorContains(t, err, "credentials from JSON")
}

func TestFetchSheetNameAndReadGrid(t *testing.T) {
	s := &SheetService{SpreadsheetID: "abc", SheetID: "7", Columns: defaultColumns, srv: newFakeSheets(t)}

	require.NoError(t, s.fetchSheetName(context.Background()))
	assert.Equal(t, "Due", s.SheetName)

	grid, err := s.ReadGrid(context.Background())
	require.NoError(t, err)
	require.Len(t, grid, 2)
	assert.Equal(t, "Asha", grid[1][0])
	assert.Equal(t, float64(44927), grid[1][1])
}

func TestFetchSheetName_UnknownID(t *testing.T) {
	s := &SheetService{SpreadsheetID: "abc", SheetID: "99", srv: newFakeSheets(t)}
	assert.ErrorContains(t, s.fetchSheetName(context.Background()), "sheet with ID 99 not found")
}

func TestWait_Pauses(t *testing.T) {
	s := &SheetService{PauseMs: 30, lastCall: time.Now()}
	start := time.Now()
	s.Wait()
	assert.GreaterOrEqual(t, time.Since(start), 25*time.Millisecond)
}
