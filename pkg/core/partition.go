package core

// Range is a half-open interval [Start, End) of byte offsets or indices.
type Range struct {
	Start, End int
}

// Len returns the number of elements covered by r.
func (r Range) Len() int {
	return r.End - r.Start
}

// Partition splits [0, n) into w contiguous ranges of n/w elements each; the
// remainder goes to the last range. w < 1 is treated as 1.
func Partition(n, w int) []Range {
	if w < 1 {
		w = 1
	}
	per := n / w
	ranges := make([]Range, w)
	for i := range ranges {
		ranges[i] = Range{Start: i * per, End: (i + 1) * per}
	}
	ranges[w-1].End = n
	return ranges
}
