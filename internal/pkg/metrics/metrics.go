package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Attendance counts ledger transitions by event and resulting status.
type Attendance struct {
	events *prometheus.CounterVec
}

func NewAttendance(reg prometheus.Registerer) *Attendance {
	m := &Attendance{
		events: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "hrms",
			Name:      "attendance_events_total",
			Help:      "Attendance check-in and check-out events by resulting status.",
		}, []string{"event", "status"}),
	}
	if reg != nil {
		reg.MustRegister(m.events)
	}
	return m
}

func (m *Attendance) CheckIn(status string) {
	if m == nil {
		return
	}
	m.events.WithLabelValues("check_in", status).Inc()
}

func (m *Attendance) CheckOut(status string) {
	if m == nil {
		return
	}
	m.events.WithLabelValues("check_out", status).Inc()
}

// Handler exposes the default registry.
func Handler() http.Handler {
	return promhttp.Handler()
}
