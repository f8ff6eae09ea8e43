package personality

// Step is one fixed increment offered for a continuous trait
type Step struct {
	Label string
	Delta float64
}

// Steps are offered in this order
var Steps = []Step{
	{Label: "-0.2", Delta: -0.2},
	{Label: "-0.1", Delta: -0.1},
	{Label: "+0.1", Delta: 0.1},
	{Label: "+0.2", Delta: 0.2},
}

// Adjustment is a step resolved against a current level
type Adjustment struct {
	Label  string
	Target float64
}

// Adjustments returns the steps whose result stays within [0.0, 1.0].
// At 0.9 the +0.2 step is omitted; at 0.0 both negative steps are.
func Adjustments(current float64) []Adjustment {
	var out []Adjustment
	for _, step := range Steps {
		target := RoundLevel(current + step.Delta)
		if target < MinLevel || target > MaxLevel {
			continue
		}
		out = append(out, Adjustment{Label: step.Label, Target: target})
	}
	return out
}
