package reminder

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	tickTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ptp_reminder_ticks_total",
			Help: "Reminder ticks by result",
		},
		[]string{"result"},
	)

	deliveriesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ptp_reminder_deliveries_total",
			Help: "Reminder deliveries by result",
		},
		[]string{"result"},
	)
)
