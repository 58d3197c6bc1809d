package allocation

// Reconcile drops every ticker whose first positive-list score and first
// negative-list score disagree in sign. All entries of a conflicting ticker
// are removed from both lists. The inputs are not modified.
func Reconcile(positive, negative []Observation) ([]Observation, []Observation) {
	firstNeg := make(map[string]float64, len(negative))
	for _, obs := range negative {
		if _, ok := firstNeg[obs.Symbol]; !ok {
			firstNeg[obs.Symbol] = obs.Score
		}
	}

	conflicting := make(map[string]struct{})
	seen := make(map[string]struct{}, len(positive))
	for _, obs := range positive {
		if _, ok := seen[obs.Symbol]; ok {
			continue
		}
		seen[obs.Symbol] = struct{}{}

		negScore, ok := firstNeg[obs.Symbol]
		if ok && obs.Score*negScore < 0 {
			conflicting[obs.Symbol] = struct{}{}
		}
	}

	if len(conflicting) == 0 {
		return clone(positive), clone(negative)
	}
	return without(positive, conflicting), without(negative, conflicting)
}

func without(list []Observation, drop map[string]struct{}) []Observation {
	out := make([]Observation, 0, len(list))
	for _, obs := range list {
		if _, ok := drop[obs.Symbol]; ok {
			continue
		}
		out = append(out, obs)
	}
	return out
}

func clone(list []Observation) []Observation {
	out := make([]Observation, len(list))
	copy(out, list)
	return out
}
