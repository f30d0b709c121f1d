package handler

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	mw "ptp_tracker/internal/api/middleware"
	"ptp_tracker/internal/api/request"
	"ptp_tracker/internal/api/response"
	"ptp_tracker/internal/domain"
	"ptp_tracker/internal/model"
	"ptp_tracker/internal/service/collections"
	"ptp_tracker/internal/service/importer"
	"ptp_tracker/internal/service/spreadsheet"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

const maxUploadSize = 10 << 20

var exportContentTypes = map[string]string{
	"csv":  "text/csv",
	"xlsx": "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
}

type Customer struct {
	svc      *collections.CustomerService
	importer *importer.Service
	logger   *zap.Logger
}

func NewCustomer(svc *collections.CustomerService, imp *importer.Service, logger *zap.Logger) *Customer {
	return &Customer{svc: svc, importer: imp, logger: logger}
}

func (h *Customer) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := domain.CustomerFilter{
		Search:      q.Get("search"),
		TodaysVisit: q.Get("todaysVisit") == "true",
		Pincode:     q.Get("pincode"),
	}
	customers, err := h.svc.List(r.Context(), mw.OwnerID(r.Context()), filter, domain.CustomerSort(q.Get("sort")))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	response.WriteJSON(w, http.StatusOK, customers)
}

func (h *Customer) Create(w http.ResponseWriter, r *http.Request) {
	var req request.CreateCustomer
	if err := request.Decode(r, &req); err != nil {
		response.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	c := &model.Customer{
		Name:        req.Name,
		AccountNo:   req.AccountNo,
		Mobile:      req.Mobile,
		Balance:     nullDecimal(req.Balance),
		CD:          req.CD,
		Review:      req.Review,
		Address:     req.Address,
		Pincode:     req.Pincode,
		CycleDate:   req.CycleDate.TimePtr(),
		Status:      model.CustomerStatus(req.Status),
		DueAmount:   nullDecimal(req.DueAmount),
		ExDayAmount: nullDecimal(req.ExDayAmount),
		Notes:       req.Notes,
	}
	if err := h.svc.Create(r.Context(), mw.OwnerID(r.Context()), c); err != nil {
		writeServiceError(w, err)
		return
	}
	response.WriteJSON(w, http.StatusCreated, c)
}

// Bulk принимает файл xlsx/csv в поле "file" либо JSON {"rows": [[...]]}
func (h *Customer) Bulk(w http.ResponseWriter, r *http.Request) {
	var grid [][]any
	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		r.Body = http.MaxBytesReader(w, r.Body, maxUploadSize)
		file, header, err := r.FormFile("file")
		if err != nil {
			response.WriteError(w, http.StatusBadRequest, fmt.Sprintf("invalid upload: %v", err))
			return
		}
		defer file.Close()

		grid, err = spreadsheet.Read(file, header.Filename)
		if err != nil {
			response.WriteError(w, http.StatusBadRequest, fmt.Sprintf("invalid upload: %v", err))
			return
		}
	} else {
		var req request.BulkImport
		if err := request.Decode(r, &req); err != nil {
			response.WriteError(w, http.StatusBadRequest, err.Error())
			return
		}
		grid = req.Rows
	}

	customers, err := h.importer.Import(r.Context(), mw.OwnerID(r.Context()), grid)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	response.WriteJSON(w, http.StatusCreated, map[string]any{
		"message":   fmt.Sprintf("Successfully imported %d customers", len(customers)),
		"count":     len(customers),
		"customers": customers,
	})
}

func (h *Customer) ImportSheet(w http.ResponseWriter, r *http.Request) {
	customers, err := h.importer.ImportSheet(r.Context(), mw.OwnerID(r.Context()))
	if errors.Is(err, importer.ErrSheetNotConfigured) {
		response.WriteError(w, http.StatusNotImplemented, err.Error())
		return
	}
	if err != nil {
		writeServiceError(w, err)
		return
	}
	response.WriteJSON(w, http.StatusCreated, map[string]any{
		"message": fmt.Sprintf("Successfully imported %d customers", len(customers)),
		"count":   len(customers),
	})
}

func (h *Customer) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.svc.Stats(r.Context(), mw.OwnerID(r.Context()))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	response.WriteJSON(w, http.StatusOK, stats)
}

func (h *Customer) Pincodes(w http.ResponseWriter, r *http.Request) {
	codes, err := h.svc.Pincodes(r.Context(), mw.OwnerID(r.Context()))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	response.WriteJSON(w, http.StatusOK, codes)
}

func (h *Customer) Export(w http.ResponseWriter, r *http.Request) {
	format := chi.URLParam(r, "format")

	var buf bytes.Buffer
	if err := h.svc.Export(r.Context(), mw.OwnerID(r.Context()), format, &buf); err != nil {
		writeServiceError(w, err)
		return
	}

	filename := fmt.Sprintf("customers-%s.%s", time.Now().Format("2006-01-02"), format)
	w.Header().Set("Content-Type", exportContentTypes[format])
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.WriteHeader(http.StatusOK)
	if _, err := buf.WriteTo(w); err != nil {
		h.logger.Warn("error writing export", zap.Error(err))
	}
}

func (h *Customer) Update(w http.ResponseWriter, r *http.Request) {
	id, err := request.ParseID(chi.URLParam(r, "id"))
	if err != nil {
		response.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}
	var req request.UpdateCustomer
	if err := request.Decode(r, &req); err != nil {
		response.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	patch := collections.CustomerPatch{
		Name:        req.Name,
		AccountNo:   req.AccountNo,
		Mobile:      req.Mobile,
		Balance:     req.Balance,
		CD:          req.CD,
		Review:      req.Review,
		Address:     req.Address,
		Pincode:     req.Pincode,
		CycleDate:   req.CycleDate.TimePtr(),
		Status:      req.Status,
		DueAmount:   req.DueAmount,
		ExDayAmount: req.ExDayAmount,
		Notes:       req.Notes,
		TodaysVisit: req.TodaysVisit,
	}
	c, err := h.svc.Update(r.Context(), id, mw.OwnerID(r.Context()), patch)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	response.WriteJSON(w, http.StatusOK, c)
}

func (h *Customer) ToggleVisit(w http.ResponseWriter, r *http.Request) {
	id, err := request.ParseID(chi.URLParam(r, "id"))
	if err != nil {
		response.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}
	c, err := h.svc.ToggleVisit(r.Context(), id, mw.OwnerID(r.Context()))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	response.WriteJSON(w, http.StatusOK, c)
}

func (h *Customer) Archive(w http.ResponseWriter, r *http.Request) {
	id, err := request.ParseID(chi.URLParam(r, "id"))
	if err != nil {
		response.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := h.svc.Archive(r.Context(), id, mw.OwnerID(r.Context())); err != nil {
		writeServiceError(w, err)
		return
	}
	response.WriteMessage(w, http.StatusOK, "Customer archived")
}
