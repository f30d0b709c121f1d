package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	mw "ptp_tracker/internal/api/middleware"
	"ptp_tracker/internal/domain"
	"ptp_tracker/internal/domain/mocks"
	"ptp_tracker/internal/model"
	"ptp_tracker/internal/service/collections"
	"ptp_tracker/internal/service/importer"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newCustomerHandler(t *testing.T) (*Customer, *mocks.CustomerRepo, *mocks.SheetService) {
	repo := &mocks.CustomerRepo{}
	sheet := &mocks.SheetService{}
	t.Cleanup(func() {
		repo.AssertExpectations(t)
		sheet.AssertExpectations(t)
	})
	logger := zap.NewNop()
	h := NewCustomer(
		collections.NewCustomerService(repo, logger),
		importer.NewService(repo, sheet, nil, logger),
		logger,
	)
	return h, repo, sheet
}

func TestCustomerList_PassesFilter(t *testing.T) {
	h, repo, _ := newCustomerHandler(t)
	owner := uuid.New()
	want := domain.CustomerFilter{Search: "ravi", TodaysVisit: true, Pincode: "560001"}
	repo.On("FindMany", mock.Anything, owner, want, domain.SortBalance).
		Return([]model.Customer{{Name: "Ravi"}}, nil)

	rec := httptest.NewRecorder()
	h.List(rec, newRequest(owner, http.MethodGet, "/api/customers?search=ravi&todaysVisit=true&pincode=560001&sort=balance", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	var got []model.Customer
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Len(t, got, 1)
	assert.Equal(t, "Ravi", got[0].Name)
}

func TestCustomerCreate(t *testing.T) {
	h, repo, _ := newCustomerHandler(t)
	owner := uuid.New()
	repo.On("Create", mock.Anything, mock.MatchedBy(func(c *model.Customer) bool {
		return c.UserID == owner &&
			c.Name == "Ravi Kumar" &&
			c.Pincode == "560001" &&
			c.Status == model.CustomerActive &&
			c.Balance.Valid && c.Balance.Decimal.Equal(decimal.NewFromInt(1500)) &&
			c.CycleDate != nil && c.CycleDate.Format("2006-01-02") == "2024-01-05"
	})).Return(nil)

	rec := httptest.NewRecorder()
	h.Create(rec, newRequest(owner, http.MethodPost, "/api/customers", map[string]any{
		"name":      "Ravi Kumar",
		"address":   "12 MG Road, Bangalore 560001",
		"balance":   1500,
		"cycleDate": "2024-01-05",
	}))

	assert.Equal(t, http.StatusCreated, rec.Code)
}

func TestCustomerCreate_MissingName(t *testing.T) {
	h, _, _ := newCustomerHandler(t)

	rec := httptest.NewRecorder()
	h.Create(rec, newRequest(uuid.New(), http.MethodPost, "/api/customers", map[string]any{"mobile": "123"}))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, decodeErrorResponse(rec)["error"], "validation error")
}

func TestCustomerCreate_InvalidStatus(t *testing.T) {
	h, _, _ := newCustomerHandler(t)

	rec := httptest.NewRecorder()
	h.Create(rec, newRequest(uuid.New(), http.MethodPost, "/api/customers", map[string]any{"name": "A", "status": "Gone"}))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCustomerBulk_JSONGrid(t *testing.T) {
	h, repo, _ := newCustomerHandler(t)
	owner := uuid.New()
	repo.On("CreateMany", mock.Anything, mock.MatchedBy(func(cs []model.Customer) bool {
		return len(cs) == 2 && cs[0].Name == "A" && cs[1].Name == "B" && cs[0].UserID == owner
	})).Return(nil)

	rec := httptest.NewRecorder()
	h.Bulk(rec, newRequest(owner, http.MethodPost, "/api/customers/bulk", map[string]any{
		"rows": [][]any{{"Name", "Current Balance"}, {"A", 100}, {"", 5}, {"B", nil}},
	}))

	assert.Equal(t, http.StatusCreated, rec.Code)
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, float64(2), body["count"])
	assert.Equal(t, "Successfully imported 2 customers", body["message"])
}

func TestCustomerBulk_CSVUpload(t *testing.T) {
	h, repo, _ := newCustomerHandler(t)
	owner := uuid.New()
	repo.On("CreateMany", mock.Anything, mock.MatchedBy(func(cs []model.Customer) bool {
		return len(cs) == 1 && cs[0].Name == "Asha" && cs[0].Pincode == "400001" && cs[0].Mobile == "9876543210"
	})).Return(nil)

	var buf bytes.Buffer
	mp := multipart.NewWriter(&buf)
	fw, err := mp.CreateFormFile("file", "customers.csv")
	require.NoError(t, err)
	_, err = fw.Write([]byte("Name,Mobile No,Address\nAsha,9876543210,Fort Mumbai 400001\n"))
	require.NoError(t, err)
	require.NoError(t, mp.Close())

	r := httptest.NewRequest(http.MethodPost, "/api/customers/bulk", &buf)
	r.Header.Set("Content-Type", mp.FormDataContentType())
	r = r.WithContext(mw.WithOwner(r.Context(), owner))

	rec := httptest.NewRecorder()
	h.Bulk(rec, r)

	assert.Equal(t, http.StatusCreated, rec.Code)
}

func TestCustomerBulk_NoValidRows(t *testing.T) {
	h, _, _ := newCustomerHandler(t)

	rec := httptest.NewRecorder()
	h.Bulk(rec, newRequest(uuid.New(), http.MethodPost, "/api/customers/bulk", map[string]any{
		"rows": [][]any{{"Name"}, {""}},
	}))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, decodeErrorResponse(rec)["error"], "no valid rows")
}

func TestCustomerBulk_StoreFailure(t *testing.T) {
	h, repo, _ := newCustomerHandler(t)
	repo.On("CreateMany", mock.Anything, mock.Anything).Return(errors.New("db down"))

	rec := httptest.NewRecorder()
	h.Bulk(rec, newRequest(uuid.New(), http.MethodPost, "/api/customers/bulk", map[string]any{
		"rows": [][]any{{"Name"}, {"A"}},
	}))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestCustomerImportSheet(t *testing.T) {
	h, repo, sheet := newCustomerHandler(t)
	sheet.On("ReadGrid", mock.Anything).Return([][]interface{}{{"Name"}, {"A"}}, nil)
	repo.On("CreateMany", mock.Anything, mock.Anything).Return(nil)

	rec := httptest.NewRecorder()
	h.ImportSheet(rec, newRequest(uuid.New(), http.MethodPost, "/api/customers/import/sheet", nil))

	assert.Equal(t, http.StatusCreated, rec.Code)
}

func TestCustomerImportSheet_NotConfigured(t *testing.T) {
	logger := zap.NewNop()
	repo := &mocks.CustomerRepo{}
	h := NewCustomer(collections.NewCustomerService(repo, logger), importer.NewService(repo, nil, nil, logger), logger)

	rec := httptest.NewRecorder()
	h.ImportSheet(rec, newRequest(uuid.New(), http.MethodPost, "/api/customers/import/sheet", nil))

	assert.Equal(t, http.StatusNotImplemented, rec.Code)
}

func TestCustomerExport_CSV(t *testing.T) {
	h, repo, _ := newCustomerHandler(t)
	owner := uuid.New()
	repo.On("FindMany", mock.Anything, owner, domain.CustomerFilter{}, domain.SortNewest).
		Return([]model.Customer{{Name: "Asha", Balance: decimal.NewNullDecimal(decimal.NewFromInt(42))}}, nil)

	r := withChiURLParam(newRequest(owner, http.MethodGet, "/api/customers/export/csv", nil), "format", "csv")
	rec := httptest.NewRecorder()
	h.Export(rec, r)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/csv", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "attachment")
	assert.Contains(t, rec.Body.String(), "Name,Account,Mobile,Balance")
	assert.Contains(t, rec.Body.String(), "Asha,,,42")
}

func TestCustomerExport_UnknownFormat(t *testing.T) {
	h, _, _ := newCustomerHandler(t)

	r := withChiURLParam(newRequest(uuid.New(), http.MethodGet, "/api/customers/export/pdf", nil), "format", "pdf")
	rec := httptest.NewRecorder()
	h.Export(rec, r)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCustomerUpdate_NotFound(t *testing.T) {
	h, repo, _ := newCustomerHandler(t)
	owner, id := uuid.New(), uuid.New()
	repo.On("Get", mock.Anything, id, owner).Return(nil, domain.ErrNotFound)

	r := withChiURLParam(newRequest(owner, http.MethodPut, "/api/customers/"+id.String(), map[string]any{"notes": "x"}), "id", id.String())
	rec := httptest.NewRecorder()
	h.Update(rec, r)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCustomerUpdate_InvalidID(t *testing.T) {
	h, _, _ := newCustomerHandler(t)

	r := withChiURLParam(newRequest(uuid.New(), http.MethodPut, "/api/customers/abc", map[string]any{}), "id", "abc")
	rec := httptest.NewRecorder()
	h.Update(rec, r)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCustomerToggleVisit(t *testing.T) {
	h, repo, _ := newCustomerHandler(t)
	owner, id := uuid.New(), uuid.New()
	repo.On("Get", mock.Anything, id, owner).Return(&model.Customer{ID: id, TodaysVisit: false}, nil)
	repo.On("Update", mock.Anything, id, owner, map[string]any{"todays_visit": true}).
		Return(&model.Customer{ID: id, TodaysVisit: true}, nil)

	r := withChiURLParam(newRequest(owner, http.MethodPost, "/", nil), "id", id.String())
	rec := httptest.NewRecorder()
	h.ToggleVisit(rec, r)

	assert.Equal(t, http.StatusOK, rec.Code)
	var got model.Customer
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.True(t, got.TodaysVisit)
}

func TestCustomerArchive(t *testing.T) {
	h, repo, _ := newCustomerHandler(t)
	owner, id := uuid.New(), uuid.New()
	repo.On("Archive", mock.Anything, id, owner).Return(nil)

	r := withChiURLParam(newRequest(owner, http.MethodDelete, "/", nil), "id", id.String())
	rec := httptest.NewRecorder()
	h.Archive(rec, r)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestCustomerStatsAndPincodes(t *testing.T) {
	h, repo, _ := newCustomerHandler(t)
	owner := uuid.New()
	repo.On("Stats", mock.Anything, owner).Return(model.CustomerStats{TotalCustomers: 3, TotalBalance: decimal.NewFromInt(900)}, nil)
	repo.On("Pincodes", mock.Anything, owner).Return([]string{"400001", "560001"}, nil)

	rec := httptest.NewRecorder()
	h.Stats(rec, newRequest(owner, http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"totalCustomers":3,"totalBalance":"900"}`, rec.Body.String())

	rec = httptest.NewRecorder()
	h.Pincodes(rec, newRequest(owner, http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `["400001","560001"]`, rec.Body.String())
}
