package reminder

import (
	"fmt"
	"time"

	"ptp_tracker/internal/model"
	"ptp_tracker/internal/service/push"

	"github.com/google/uuid"
)

const reminderTitle = "Daily PTP Reminder"

// SelectDue оставляет обещания в статусе Pending с датой в [start, end)
func SelectDue(ptps []model.PTP, start, end time.Time) []model.PTP {
	due := make([]model.PTP, 0, len(ptps))
	for _, p := range ptps {
		if p.Status != model.PTPPending {
			continue
		}
		if p.PTPDate.Before(start) || !p.PTPDate.Before(end) {
			continue
		}
		due = append(due, p)
	}
	return due
}

func GroupByOwner(ptps []model.PTP) map[uuid.UUID][]model.PTP {
	groups := make(map[uuid.UUID][]model.PTP)
	for _, p := range ptps {
		groups[p.UserID] = append(groups[p.UserID], p)
	}
	return groups
}

// ComposeMessage одно обещание - по имени, несколько - количеством
func ComposeMessage(ptps []model.PTP, icon string) push.Message {
	body := fmt.Sprintf("You have %d PTP promises due today.", len(ptps))
	if len(ptps) == 1 {
		body = fmt.Sprintf("Reminder: %s promised to pay today.", ptps[0].Name)
	}
	return push.Message{Title: reminderTitle, Body: body, Icon: icon}
}
