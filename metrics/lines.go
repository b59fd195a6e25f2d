package metrics

import (
	"unicode/utf8"
)

// LineValue is the result of measuring a fragment for line lengths, in runes.
// Newlines do not count as part of a line.
type LineValue struct {
	First  uint64 // length of the text in front of the first newline
	Last   uint64 // length of the text after the last newline
	Max    uint64 // longest line between the first and the last newline
	Breaks bool   // the fragment contains at least one newline
}

// Longest returns the length of the longest line, including the lines which
// may continue into neighbouring fragments.
func (v LineValue) Longest() uint64 {
	return max(v.First, v.Last, v.Max)
}

// LongestLineMetric measures the length of the longest line.
type LongestLineMetric struct{}

// LongestLine creates a metric to find the length of the longest line.
func LongestLine() LongestLineMetric {
	return LongestLineMetric{}
}

// Apply is part of interface Metric.
func (LongestLineMetric) Apply(frag []byte) LineValue {
	var v LineValue
	var cur uint64
	for len(frag) > 0 {
		r, w := utf8.DecodeRune(frag)
		frag = frag[w:]
		if r != '\n' {
			cur++
			continue
		}
		if !v.Breaks {
			v.First, v.Breaks = cur, true
		} else {
			v.Max = max(v.Max, cur)
		}
		cur = 0
	}
	v.Last = cur
	if !v.Breaks {
		v.First = cur
	}
	return v
}

// Combine is part of interface Metric.
func (LongestLineMetric) Combine(left, right LineValue) LineValue {
	switch {
	case !left.Breaks && !right.Breaks:
		n := left.First + right.First
		return LineValue{First: n, Last: n}
	case !left.Breaks:
		right.First += left.First
		return right
	case !right.Breaks:
		left.Last += right.First
		return left
	}
	return LineValue{
		First:  left.First,
		Last:   right.Last,
		Max:    max(left.Max, right.Max, left.Last+right.First),
		Breaks: true,
	}
}

// Count is part of interface CountingMetric.
func (LongestLineMetric) Count(v LineValue) int {
	return int(v.Longest())
}
