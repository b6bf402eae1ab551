package services

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	statusTransitionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "sample_request_status_transitions_total",
		Help: "Completed sample request status transitions by target status.",
	}, []string{"to"})

	deadlineReschedulesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "sample_request_deadline_reschedules_total",
		Help: "Deadline reschedule attempts by outcome.",
	}, []string{"result"})
)
