package search

// Summary is the min, max and mean of a list of counts.
type Summary struct {
	Min, Max int
	Mean     float64
}

// MatchPercent returns matched fragments as a percentage of all digest
// fragments. ok is false when no fragment was produced.
func (r *Results) MatchPercent() (pct float64, ok bool) {
	if r.DigestFragments == 0 {
		return 0, false
	}
	return float64(r.MatchedFragments) / float64(r.DigestFragments) * 100, true
}

// SequenceLengthStats summarizes the length of every protein seen.
func (r *Results) SequenceLengthStats() (Summary, bool) {
	return Summarize(r.SequenceLengths)
}

// DigestCountStats summarizes the number of digest fragments per protein.
func (r *Results) DigestCountStats() (Summary, bool) {
	return Summarize(r.DigestsPerSequence)
}

// Summarize returns the min, max and mean of values. ok is false when values
// is empty.
func Summarize(values []int) (Summary, bool) {
	if len(values) == 0 {
		return Summary{}, false
	}
	s := Summary{Min: values[0], Max: values[0]}
	total := 0
	for _, v := range values {
		if v < s.Min {
			s.Min = v
		}
		if v > s.Max {
			s.Max = v
		}
		total += v
	}
	s.Mean = float64(total) / float64(len(values))
	return s, true
}
