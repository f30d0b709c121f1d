package handler

import (
	"encoding/json"
	"io"
	"net/http"

	mw "ptp_tracker/internal/api/middleware"
	"ptp_tracker/internal/api/request"
	"ptp_tracker/internal/api/response"
	"ptp_tracker/internal/service/collections"
)

const maxSubscriptionSize = 16 << 10

type Auth struct {
	svc *collections.UserService
}

func NewAuth(svc *collections.UserService) *Auth {
	return &Auth{svc: svc}
}

func (h *Auth) Register(w http.ResponseWriter, r *http.Request) {
	var req request.Register
	if err := request.Decode(r, &req); err != nil {
		response.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}
	u, err := h.svc.Register(r.Context(), collections.Registration{
		Name:     req.Name,
		Email:    req.Email,
		Phone:    req.Phone,
		Password: req.Password,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}
	response.WriteJSON(w, http.StatusCreated, u)
}

func (h *Auth) Me(w http.ResponseWriter, r *http.Request) {
	u, err := h.svc.Me(r.Context(), mw.OwnerID(r.Context()))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	response.WriteJSON(w, http.StatusOK, u)
}

// Subscribe тело запроса - дескриптор доставки как есть
func (h *Auth) Subscribe(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxSubscriptionSize))
	if err != nil || !json.Valid(body) {
		response.WriteError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	if err := h.svc.Subscribe(r.Context(), mw.OwnerID(r.Context()), json.RawMessage(body)); err != nil {
		writeServiceError(w, err)
		return
	}
	response.WriteMessage(w, http.StatusOK, "Subscribed")
}

func (h *Auth) Unsubscribe(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Unsubscribe(r.Context(), mw.OwnerID(r.Context())); err != nil {
		writeServiceError(w, err)
		return
	}
	response.WriteMessage(w, http.StatusOK, "Unsubscribed")
}
