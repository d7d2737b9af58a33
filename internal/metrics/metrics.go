// Package metrics defines the Prometheus collectors of the service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds every collector. A nil *Metrics is valid and records nothing.
type Metrics struct {
	rpcRequests *prometheus.CounterVec
	rpcLatency  *prometheus.HistogramVec

	expensesAdded   prometheus.Counter
	expensesDeleted prometheus.Counter
	settlements     *prometheus.CounterVec
	conflicts       *prometheus.CounterVec
	eventFailures   prometheus.Counter
}

// New registers the collectors with reg.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		rpcRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "splitledger_rpc_requests_total",
			Help: "Total RPC requests",
		}, []string{"procedure", "code"}),

		rpcLatency: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "splitledger_rpc_request_duration_seconds",
			Help:    "RPC latency",
			Buckets: []float64{0.005, 0.01, 0.05, 0.1, 0.5, 1},
		}, []string{"procedure"}),

		expensesAdded: factory.NewCounter(prometheus.CounterOpts{
			Name: "splitledger_shared_expenses_added_total",
			Help: "Shared expenses admitted",
		}),

		expensesDeleted: factory.NewCounter(prometheus.CounterOpts{
			Name: "splitledger_shared_expenses_deleted_total",
			Help: "Shared expenses deleted",
		}),

		settlements: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "splitledger_settlements_total",
			Help: "Settlement workflow transitions",
		}, []string{"action"}),

		conflicts: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "splitledger_state_conflicts_total",
			Help: "Writes rejected because of the current workflow state",
		}, []string{"operation"}),

		eventFailures: factory.NewCounter(prometheus.CounterOpts{
			Name: "splitledger_event_publish_failures_total",
			Help: "Events that could not be published",
		}),
	}
}

// ObserveRPC records one finished RPC.
func (m *Metrics) ObserveRPC(procedure, code string, seconds float64) {
	if m == nil {
		return
	}
	m.rpcRequests.WithLabelValues(procedure, code).Inc()
	m.rpcLatency.WithLabelValues(procedure).Observe(seconds)
}

// ExpenseAdded counts a recorded shared expense.
func (m *Metrics) ExpenseAdded() {
	if m != nil {
		m.expensesAdded.Inc()
	}
}

// ExpenseDeleted counts a removed shared expense.
func (m *Metrics) ExpenseDeleted() {
	if m != nil {
		m.expensesDeleted.Inc()
	}
}

// Settlement counts a workflow transition: "requested", "confirmed" or
// "recorded".
func (m *Metrics) Settlement(action string) {
	if m != nil {
		m.settlements.WithLabelValues(action).Inc()
	}
}

// Conflict counts an operation refused by the settlement state.
func (m *Metrics) Conflict(operation string) {
	if m != nil {
		m.conflicts.WithLabelValues(operation).Inc()
	}
}

// EventFailed counts a domain event the publisher could not deliver.
func (m *Metrics) EventFailed() {
	if m != nil {
		m.eventFailures.Inc()
	}
}
