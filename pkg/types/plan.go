package types

// PlanEntry is one planned move: source, destination and the rule that decided it.
type PlanEntry struct {
	Src  string `json:"src"`
	Dst  string `json:"dst"`
	Rule string `json:"rule"`
}

// Plan is the ordered list of planned moves, one entry per input file.
type Plan []PlanEntry

// Destinations returns the destination of every entry, in plan order.
func (p Plan) Destinations() []string {
	out := make([]string, len(p))
	for i, e := range p {
		out[i] = e.Dst
	}
	return out
}

// ByRule groups entry counts by rule name.
func (p Plan) ByRule() map[string]int {
	counts := make(map[string]int)
	for _, e := range p {
		counts[e.Rule]++
	}
	return counts
}
