package flowfield

// Stats summarizes an integration field.
type Stats struct {
	Cells       int
	Reachable   int
	Unreachable int
	MaxCost     int
	MeanCost    float64 // over reachable cells
}

// Coverage returns the reachable fraction of the field, 0 for an empty one.
func (s Stats) Coverage() float64 {
	if s.Cells == 0 {
		return 0
	}
	return float64(s.Reachable) / float64(s.Cells)
}

// Analyze scans the field once and returns its Stats.
func (f *IntegrationField[C]) Analyze() Stats {
	var s Stats
	total := 0
	f.costs.Each(func(_, _ int, v int) {
		s.Cells++
		if v >= Unreached {
			s.Unreachable++
			return
		}
		s.Reachable++
		total += v
		s.MaxCost = max(s.MaxCost, v)
	})
	if s.Reachable > 0 {
		s.MeanCost = float64(total) / float64(s.Reachable)
	}
	return s
}
