package metrics

import "github.com/prometheus/client_golang/prometheus"

type Counter interface {
	Inc(labels ...string)
}

type Counters struct {
	EntriesReceived Counter

	IntakeRequests Counter
	Logins         Counter
}

type PrometheusCounter struct {
	counter *prometheus.CounterVec
}

func newCounterVec(name, help string, labels []string) *prometheus.CounterVec {
	return prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "sawmill",
		Name:      name,
		Help:      help,
	}, labels)
}

func NewPrometheusCounter(reg prometheus.Registerer, name, help string, labels []string) *PrometheusCounter {
	c := &PrometheusCounter{
		counter: newCounterVec(name, help, labels),
	}
	reg.MustRegister(c.counter)
	return c
}

func (p *PrometheusCounter) Inc(labels ...string) {
	p.counter.WithLabelValues(labels...).Inc()
}

func newCounters(reg prometheus.Registerer) *Counters {
	return &Counters{
		EntriesReceived: NewPrometheusCounter(reg,
			"entries_received_total",
			"Log entries appended through intake",
			[]string{"server"},
		),
		IntakeRequests: NewPrometheusCounter(reg,
			"intake_requests_total",
			"Intake requests by outcome",
			[]string{"status"},
		),
		Logins: NewPrometheusCounter(reg,
			"logins_total",
			"Login attempts by outcome",
			[]string{"result"},
		),
	}
}

func New() *Counters {
	return newCounters(prometheus.DefaultRegisterer)
}

// NewTestCounters registers on a private registry so tests can build as many
// counter sets as they like.
func NewTestCounters() *Counters {
	return newCounters(prometheus.NewRegistry())
}
