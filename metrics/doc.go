/*
Package metrics provides some pre-manufactured metrics on texts.

A metric is computed per chunk of a text and the results of neighbouring
chunks are combined, from left to right. Metrics therefore never need the
text as a contiguous string.

_________________________________________________________________________

# BSD 3-Clause License

# Copyright (c) 2020–21, Norbert Pillmayer

Please refer to the LICENSE file for details.
*/
package metrics

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'sumrope.metrics'
func tracer() tracing.Trace {
	return tracing.Select("sumrope.metrics")
}
