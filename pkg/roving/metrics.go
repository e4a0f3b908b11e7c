package roving

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the prometheus collectors for roving groups. A nil *Metrics
// records nothing.
type Metrics struct {
	members     *prometheus.GaugeVec
	elections   *prometheus.CounterVec
	navigations *prometheus.CounterVec
	deadEnds    *prometheus.CounterVec
}

// NewMetrics registers the roving collectors with reg. Pass
// prometheus.DefaultRegisterer to expose them on the default registry.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		members: factory.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: "roving",
			Name:      "group_members",
			Help:      "Number of members registered in a roving group.",
		}, []string{"group"}),
		elections: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "roving",
			Name:      "tab_stop_elections_total",
			Help:      "Times the tab stop moved to a different member, by triggering operation.",
		}, []string{"group", "reason"}),
		navigations: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "roving",
			Name:      "navigations_total",
			Help:      "Keyboard navigations that moved the tab stop, by intent.",
		}, []string{"group", "intent"}),
		deadEnds: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "roving",
			Name:      "navigation_dead_ends_total",
			Help:      "Keyboard navigations ignored because no other enabled member existed.",
		}, []string{"group", "intent"}),
	}
}

func (m *Metrics) setMembers(group string, n int) {
	if m == nil {
		return
	}
	m.members.WithLabelValues(group).Set(float64(n))
}

func (m *Metrics) recordElection(group string, kind TransitionKind) {
	if m == nil {
		return
	}
	m.elections.WithLabelValues(group, string(kind)).Inc()
}

func (m *Metrics) recordNavigation(group string, intent Intent, moved bool) {
	if m == nil {
		return
	}
	if moved {
		m.navigations.WithLabelValues(group, intent.String()).Inc()
		return
	}
	m.deadEnds.WithLabelValues(group, intent.String()).Inc()
}
