package observability

import "github.com/prometheus/client_golang/prometheus"

// Outcome label values for survey_mutations_total.
const (
	OutcomeOK       = "ok"
	OutcomeNoop     = "noop"
	OutcomeCreated  = "created"
	OutcomeUpdated  = "updated"
	OutcomeSkipped  = "skipped"
	OutcomeRejected = "rejected"
	OutcomeError    = "error"
)

// mutations counts domain writes by entity, operation and outcome. Labels
// come from a closed set so cardinality stays bounded.
var mutations = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "survey_mutations_total",
		Help: "Total number of survey domain mutations.",
	},
	[]string{"entity", "op", "outcome"},
)

func init() {
	prometheus.MustRegister(mutations)
}

// RecordMutation increments survey_mutations_total.
func RecordMutation(entity, op, outcome string) {
	mutations.WithLabelValues(entity, op, outcome).Inc()
}
