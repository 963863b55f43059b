package metrics

import (
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "forgeclient"

// Recorder counts request executor activity. A nil *Recorder records nothing.
type Recorder struct {
	attempts       *prometheus.CounterVec
	retries        prometheus.Counter
	redirects      prometheus.Counter
	backoffSeconds prometheus.Counter
	failures       *prometheus.CounterVec
}

// NewRecorder registers the collectors on reg, nil reg disables metrics.
// Recorders sharing a registerer share its collectors.
func NewRecorder(reg prometheus.Registerer) *Recorder {
	if reg == nil {
		return nil
	}
	return &Recorder{
		attempts: register(reg, prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "attempts_total",
				Help:      "Physical exchanges by classification.",
			},
			[]string{"classification"},
		)),
		retries: register(reg, prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "retries_total",
			Help:      "Retries scheduled after 429 or 5xx responses.",
		})),
		redirects: register(reg, prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "redirects_total",
			Help:      "Redirect hops followed.",
		})),
		backoffSeconds: register(reg, prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "backoff_seconds_total",
			Help:      "Time spent waiting between retries.",
		})),
		failures: register(reg, prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "failures_total",
				Help:      "Logical requests that ended with an error, by error kind.",
			},
			[]string{"kind"},
		)),
	}
}

// register adds c to reg, handing back the collector already registered under the same descriptor.
// Any other registration error leaves c counting unexported.
func register[C prometheus.Collector](reg prometheus.Registerer, c C) C {
	err := reg.Register(c)
	if err == nil {
		return c
	}
	var are prometheus.AlreadyRegisteredError
	if errors.As(err, &are) {
		if existing, ok := are.ExistingCollector.(C); ok {
			return existing
		}
	}
	return c
}

func (r *Recorder) Attempt(classification string) {
	if r == nil {
		return
	}
	r.attempts.WithLabelValues(classification).Inc()
}

func (r *Recorder) Retry(delay time.Duration) {
	if r == nil {
		return
	}
	r.retries.Inc()
	r.backoffSeconds.Add(delay.Seconds())
}

func (r *Recorder) Redirect() {
	if r == nil {
		return
	}
	r.redirects.Inc()
}

func (r *Recorder) Failure(kind string) {
	if r == nil {
		return
	}
	r.failures.WithLabelValues(kind).Inc()
}
