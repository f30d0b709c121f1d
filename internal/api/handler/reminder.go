package handler

import (
	"net/http"

	"ptp_tracker/internal/api/response"
)

// Trigger запускает внеочередной тик рассылки
type Trigger interface {
	ForceUpdate()
}

type Reminder struct {
	trigger Trigger
}

func NewReminder(trigger Trigger) *Reminder {
	return &Reminder{trigger: trigger}
}

func (h *Reminder) Run(w http.ResponseWriter, r *http.Request) {
	h.trigger.ForceUpdate()
	response.WriteMessage(w, http.StatusAccepted, "Reminder check scheduled")
}
