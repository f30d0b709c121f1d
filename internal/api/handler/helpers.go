package handler

import (
	"errors"
	"net/http"

	"ptp_tracker/internal/api/response"
	"ptp_tracker/internal/domain"
)

// writeServiceError переводит ошибку сервиса в код ответа
func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrValidation):
		response.WriteError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrNotFound):
		response.WriteError(w, http.StatusNotFound, err.Error())
	default:
		response.WriteError(w, http.StatusInternalServerError, err.Error())
	}
}
