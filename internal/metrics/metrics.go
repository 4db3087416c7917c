// Package metrics exposes Prometheus counters for the proxy endpoints.
package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the counters for chat and contact traffic.
type Metrics struct {
	ChatRequests    prometheus.Counter
	ChatFailures    prometheus.Counter
	ContactAccepted prometheus.Counter
	ContactRejected prometheus.Counter
	RelayFailures   prometheus.Counter
}

var (
	once   sync.Once
	global *Metrics
)

// Global returns the process-wide metrics, registering them on first use.
func Global() *Metrics {
	once.Do(func() {
		global = &Metrics{
			ChatRequests: prometheus.NewCounter(prometheus.CounterOpts{
				Namespace: "g1site",
				Name:      "chat_requests_total",
				Help:      "Total chat proxy requests received",
			}),
			ChatFailures: prometheus.NewCounter(prometheus.CounterOpts{
				Namespace: "g1site",
				Name:      "chat_failures_total",
				Help:      "Total chat proxy requests that failed upstream",
			}),
			ContactAccepted: prometheus.NewCounter(prometheus.CounterOpts{
				Namespace: "g1site",
				Name:      "contact_accepted_total",
				Help:      "Total contact submissions relayed successfully",
			}),
			ContactRejected: prometheus.NewCounter(prometheus.CounterOpts{
				Namespace: "g1site",
				Name:      "contact_rejected_total",
				Help:      "Total contact submissions rejected by validation",
			}),
			RelayFailures: prometheus.NewCounter(prometheus.CounterOpts{
				Namespace: "g1site",
				Name:      "contact_relay_failures_total",
				Help:      "Total contact submissions the form backend failed to accept",
			}),
		}
		prometheus.MustRegister(
			global.ChatRequests, global.ChatFailures,
			global.ContactAccepted, global.ContactRejected, global.RelayFailures,
		)
	})
	return global
}
