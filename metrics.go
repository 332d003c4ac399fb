package gatehouse

import "github.com/prometheus/client_golang/prometheus"

// Metrics counts session and authorization activity. All methods are safe
// on a nil receiver, so metrics stay optional.
type Metrics struct {
	logins            *prometheus.CounterVec
	refreshes         *prometheus.CounterVec
	permissionFetches *prometheus.CounterVec
	gateDecisions     *prometheus.CounterVec
}

// NewMetrics creates and registers the gatehouse collectors.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		logins: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "gatehouse",
			Name:      "logins_total",
			Help:      "Login attempts by result (success, degraded, failure).",
		}, []string{"result"}),
		refreshes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "gatehouse",
			Name:      "token_refreshes_total",
			Help:      "Silent token refreshes by result.",
		}, []string{"result"}),
		permissionFetches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "gatehouse",
			Name:      "permission_fetches_total",
			Help:      "Permission fetch completions by result (success, failure, stale).",
		}, []string{"result"}),
		gateDecisions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "gatehouse",
			Name:      "gate_decisions_total",
			Help:      "Gate decisions observed by the HTTP middleware.",
		}, []string{"outcome"}),
	}
	reg.MustRegister(m.logins, m.refreshes, m.permissionFetches, m.gateDecisions)
	return m
}

// LoginObserved counts a login attempt.
func (m *Metrics) LoginObserved(result string) {
	if m == nil {
		return
	}
	m.logins.WithLabelValues(result).Inc()
}

// RefreshObserved counts a token refresh.
func (m *Metrics) RefreshObserved(result string) {
	if m == nil {
		return
	}
	m.refreshes.WithLabelValues(result).Inc()
}

// PermissionFetchObserved counts a permission fetch completion.
func (m *Metrics) PermissionFetchObserved(result string) {
	if m == nil {
		return
	}
	m.permissionFetches.WithLabelValues(result).Inc()
}

// GateDecisionObserved counts a gate decision.
func (m *Metrics) GateDecisionObserved(allowed bool) {
	if m == nil {
		return
	}
	outcome := "deny"
	if allowed {
		outcome = "allow"
	}
	m.gateDecisions.WithLabelValues(outcome).Inc()
}
