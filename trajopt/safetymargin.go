package trajopt

// MarginData is a safety margin and cost weight for the collision cost. The margin is the
// minimum allowed signed distance between two bodies before the cost activates; negative margins
// permit controlled interpenetration.
type MarginData struct {
	Margin float64
	Weight float64
}

type bodyPair struct {
	first, second string
}

// pairKey normalizes an unordered pair of body names into a canonical map key.
func pairKey(a, b string) bodyPair {
	if b < a {
		a, b = b, a
	}
	return bodyPair{a, b}
}

// SafetyMarginData holds the default collision margin and weight applied to every pair of
// collision bodies, plus explicit overrides for named pairs. Override lookup is by unordered
// pair; overrides never affect any other pair.
type SafetyMarginData struct {
	Default   MarginData
	overrides map[bodyPair]MarginData
}

// NewSafetyMarginData creates a SafetyMarginData with the given defaults and no overrides.
func NewSafetyMarginData(margin, weight float64) *SafetyMarginData {
	return &SafetyMarginData{
		Default:   MarginData{Margin: margin, Weight: weight},
		overrides: map[bodyPair]MarginData{},
	}
}

// SetPairData overrides the margin and weight for the unordered pair of body names (a, b).
func (s *SafetyMarginData) SetPairData(a, b string, margin, weight float64) {
	s.overrides[pairKey(a, b)] = MarginData{Margin: margin, Weight: weight}
}

// PairData returns the effective margin and weight for the unordered pair of body names (a, b).
func (s *SafetyMarginData) PairData(a, b string) MarginData {
	if data, ok := s.overrides[pairKey(a, b)]; ok {
		return data
	}
	return s.Default
}
