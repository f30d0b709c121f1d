package sheet

import (
	"context"
	"encoding/base64"
	"fmt"
	"sync"
	"time"

	"golang.org/x/oauth2/google"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

const defaultColumns = "A1:Z"

// SheetService читает клиентскую выгрузку из Google Sheets
type SheetService struct {
	SpreadsheetID string
	SheetID       string
	SheetName     string
	Columns       string // диапазон без имени листа, например "A1:Z"
	PauseMs       int    // пауза между запросами в миллисекундах
	srv           *sheets.Service
	limiterMu     sync.Mutex
	lastCall      time.Time
}

// Конструктор SheetService. Credentials - JSON сервисного аккаунта в base64.
func NewSheetService(ctx context.Context, base64Creds, spreadsheetID, sheetID string, pauseMs int) (*SheetService, error) {
	credBytes, err := base64.StdEncoding.DecodeString(base64Creds)
	if err != nil {
		return nil, fmt.Errorf("decode credentials from base64: %w", err)
	}
	creds, err := google.CredentialsFromJSON(ctx, credBytes, sheets.SpreadsheetsReadonlyScope)
	if err != nil {
		return nil, fmt.Errorf("credentials from JSON: %w", err)
	}
	srv, err := sheets.NewService(ctx, option.WithCredentials(creds))
	if err != nil {
		return nil, fmt.Errorf("init Google Sheets service: %w", err)
	}

	s := &SheetService{
		SpreadsheetID: spreadsheetID,
		SheetID:       sheetID,
		Columns:       defaultColumns,
		PauseMs:       pauseMs,
		srv:           srv,
		lastCall:      time.Now(),
	}

	if err := s.fetchSheetName(ctx); err != nil {
		return nil, fmt.Errorf("resolve sheet name: %w", err)
	}
	return s, nil
}

// Имя листа по его числовому ID
func (s *SheetService) fetchSheetName(ctx context.Context) error {
	s.Wait()

	resp, err := s.srv.Spreadsheets.Get(s.SpreadsheetID).Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("get spreadsheet: %w", err)
	}

	for _, sh := range resp.Sheets {
		if sh.Properties == nil {
			continue
		}
		if s.SheetID == "" || fmt.Sprint(sh.Properties.SheetId) == s.SheetID {
			s.SheetName = sh.Properties.Title
			return nil
		}
	}
	return fmt.Errorf("sheet with ID %s not found", s.SheetID)
}

// Лимитер: пауза между запросами
func (s *SheetService) Wait() {
	s.limiterMu.Lock()
	defer s.limiterMu.Unlock()
	elapsed := time.Since(s.lastCall)
	pause := time.Duration(s.PauseMs) * time.Millisecond
	if elapsed < pause {
		time.Sleep(pause - elapsed)
	}
	s.lastCall = time.Now()
}

// ReadGrid читает диапазон листа. Даты приходят сериальными числами, как в xlsx.
func (s *SheetService) ReadGrid(ctx context.Context) ([][]interface{}, error) {
	s.Wait()

	rangeStr := fmt.Sprintf("'%s'!%s", s.SheetName, s.Columns)
	resp, err := s.srv.Spreadsheets.Values.Get(s.SpreadsheetID, rangeStr).
		ValueRenderOption("UNFORMATTED_VALUE").
		DateTimeRenderOption("SERIAL_NUMBER").
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("read range %s: %w", rangeStr, err)
	}
	return resp.Values, nil
}
