package metrics

import (
	"fmt"

	"github.com/npillmayer/sumrope"
)

// Metric is a measure on text fragments. Apply measures a single fragment,
// Combine joins the values of two adjacent fragments, left one first.
// Combine must be associative, and Apply(nil) must be its neutral element.
type Metric[V any] interface {
	Apply(frag []byte) V
	Combine(left, right V) V
}

// CountingMetric is a type for metrics that count items in text. Possible
// items may be lines, words, emojis, …
type CountingMetric[V any] interface {
	Metric[V]
	Count(V) int
}

// Apply computes a metric for the byte range [i, j) of a text.
func Apply[V any](text sumrope.Text, i, j uint64, metric Metric[V]) (V, error) {
	value := metric.Apply(nil)
	if j < i || j > text.Len() {
		return value, fmt.Errorf("%w: range [%d,%d) of text with length %d",
			sumrope.ErrIndexOutOfBounds, i, j, text.Len())
	}
	sub, err := sumrope.Substr(text, i, j-i)
	if err != nil {
		return value, err
	}
	n := 0
	for c := range sub.Chunks() {
		value = metric.Combine(value, metric.Apply(c.Bytes()))
		n++
	}
	tracer().Debugf("metric applied to %d chunks of range [%d,%d)", n, i, j)
	return value, nil
}

// Count applies a counting metric to a text.
func Count[V any](text sumrope.Text, i, j uint64, metric CountingMetric[V]) (int, error) {
	value, err := Apply(text, i, j, metric)
	if err != nil {
		return -1, fmt.Errorf("metrics.Count could not be applied: %w", err)
	}
	return metric.Count(value), nil
}
