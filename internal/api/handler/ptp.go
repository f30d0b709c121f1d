package handler

import (
	"errors"
	"net/http"

	mw "ptp_tracker/internal/api/middleware"
	"ptp_tracker/internal/api/request"
	"ptp_tracker/internal/api/response"
	"ptp_tracker/internal/model"
	"ptp_tracker/internal/service/collections"
	"ptp_tracker/internal/service/push"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

type PTP struct {
	svc   *collections.PTPService
	users *collections.UserService
}

func NewPTP(svc *collections.PTPService, users *collections.UserService) *PTP {
	return &PTP{svc: svc, users: users}
}

func (h *PTP) List(w http.ResponseWriter, r *http.Request) {
	ptps, err := h.svc.List(r.Context(), mw.OwnerID(r.Context()))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	response.WriteJSON(w, http.StatusOK, ptps)
}

// Create: type "existing" берет данные клиента, "manual" - поля запроса.
// Без type решает наличие customerId.
func (h *PTP) Create(w http.ResponseWriter, r *http.Request) {
	var req request.CreatePTP
	if err := request.Decode(r, &req); err != nil {
		response.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	in := collections.NewPTP{
		PTPDate: req.PTPDate.Time,
		Status:  model.PTPStatus(req.Status),
	}
	useCustomer := req.CustomerID != "" && req.Type != "manual"
	if useCustomer {
		id := uuid.MustParse(req.CustomerID)
		in.CustomerID = &id
	}
	if !useCustomer || req.Type == "" {
		in.Name = req.Name
		in.AccountNo = req.AccountNo
		in.Phone = req.Phone
	}

	p, err := h.svc.Create(r.Context(), mw.OwnerID(r.Context()), in)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	response.WriteJSON(w, http.StatusCreated, p)
}

func (h *PTP) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, err := request.ParseID(chi.URLParam(r, "id"))
	if err != nil {
		response.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}
	var req request.UpdatePTP
	if err := request.Decode(r, &req); err != nil {
		response.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}
	p, err := h.svc.UpdateStatus(r.Context(), id, mw.OwnerID(r.Context()), model.PTPStatus(req.Status))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	response.WriteJSON(w, http.StatusOK, p)
}

func (h *PTP) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := request.ParseID(chi.URLParam(r, "id"))
	if err != nil {
		response.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := h.svc.Delete(r.Context(), id, mw.OwnerID(r.Context())); err != nil {
		writeServiceError(w, err)
		return
	}
	response.WriteMessage(w, http.StatusOK, "PTP deleted")
}

func (h *PTP) TestNotification(w http.ResponseWriter, r *http.Request) {
	err := h.users.SendTest(r.Context(), mw.OwnerID(r.Context()))
	switch {
	case err == nil:
		response.WriteMessage(w, http.StatusOK, "Notification sent")
	case errors.Is(err, push.ErrSubscriptionGone):
		response.WriteError(w, http.StatusGone, err.Error())
	case errors.Is(err, push.ErrNotConfigured), errors.Is(err, push.ErrUnknownDescriptor):
		response.WriteError(w, http.StatusNotImplemented, err.Error())
	default:
		writeServiceError(w, err)
	}
}
