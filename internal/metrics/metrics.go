package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Verification outcomes used as the outcome label.
const (
	OutcomeVerified  = "verified"
	OutcomeRejected  = "rejected"
	OutcomeForbidden = "forbidden"
	OutcomeStatus    = "status_check"
)

type Metrics struct {
	RegistrationsCreated prometheus.Counter
	PaymentsCreated      *prometheus.CounterVec
	Verifications        *prometheus.CounterVec
	SelfReports          prometheus.Counter
	OrphanRegistrations  prometheus.Gauge
	EventStreams         prometheus.Gauge
}

// New registers all application metrics on reg.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		RegistrationsCreated: factory.NewCounter(prometheus.CounterOpts{
			Name: "kalayatra_registrations_created_total",
			Help: "Total number of registrations created by the wizard",
		}),
		PaymentsCreated: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "kalayatra_payments_created_total",
			Help: "Total number of payment records created, labeled by source",
		}, []string{"source"}),
		Verifications: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "kalayatra_payment_verifications_total",
			Help: "Total number of verify-payment calls, labeled by outcome",
		}, []string{"outcome"}),
		SelfReports: factory.NewCounter(prometheus.CounterOpts{
			Name: "kalayatra_payment_self_reports_total",
			Help: "Total number of payments re-queued by participants",
		}),
		OrphanRegistrations: factory.NewGauge(prometheus.GaugeOpts{
			Name: "kalayatra_orphan_registrations",
			Help: "Registrations without a payment record found by the last audit",
		}),
		EventStreams: factory.NewGauge(prometheus.GaugeOpts{
			Name: "kalayatra_payment_event_streams",
			Help: "Currently open payment status streams",
		}),
	}
}
