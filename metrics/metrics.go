// Package metrics exports contingency and certificate state as Prometheus metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/fiscalbr/nfecore"
)

// Collector holds the Prometheus metrics of one issuer. It implements
// nfecore.TransitionHook so it can be passed to nfecore.WithTransitionHook.
type Collector struct {
	Transitions         *prometheus.CounterVec
	ContingencyActive   *prometheus.GaugeVec
	CertificateDaysLeft prometheus.Gauge
	CertificateValid    prometheus.Gauge
}

// New creates and registers all metrics on reg. A nil reg means the default registerer.
func New(reg prometheus.Registerer) *Collector {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	factory := promauto.With(reg)

	return &Collector{
		Transitions: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "nfe_contingency_transitions_total",
			Help: "Total number of contingency state transitions",
		}, []string{"kind", "tp_emis"}),
		ContingencyActive: factory.NewGaugeVec(prometheus.GaugeOpts{
			Name: "nfe_contingency_active",
			Help: "1 while contingency is active for the labelled mode, 0 otherwise",
		}, []string{"mode"}),
		CertificateDaysLeft: factory.NewGauge(prometheus.GaugeOpts{
			Name: "nfe_certificate_days_remaining",
			Help: "Whole days until the signing certificate expires, -1 when unavailable",
		}),
		CertificateValid: factory.NewGauge(prometheus.GaugeOpts{
			Name: "nfe_certificate_valid",
			Help: "1 when a non-expired signing certificate is bound",
		}),
	}
}

// OnTransition records a contingency transition.
func (c *Collector) OnTransition(t nfecore.Transition) {
	c.Transitions.WithLabelValues(string(t.Kind), t.To.EmissionType).Inc()

	for _, mode := range []string{nfecore.ModeAutomatic, nfecore.ModeAlternateA, nfecore.ModeAlternateB} {
		c.ContingencyActive.WithLabelValues(nfecore.ModeLabel(mode)).Set(0)
	}
	if t.To.Active {
		c.ContingencyActive.WithLabelValues(nfecore.ModeLabel(t.To.Mode)).Set(1)
	}
}

// ObserveCertificate refreshes the certificate gauges from l.
func (c *Collector) ObserveCertificate(l *nfecore.CertificateLifecycle) {
	if l.IsValid() {
		c.CertificateValid.Set(1)
	} else {
		c.CertificateValid.Set(0)
	}

	days, err := l.DaysRemaining()
	if err != nil {
		c.CertificateDaysLeft.Set(-1)
		return
	}
	c.CertificateDaysLeft.Set(float64(days))
}
