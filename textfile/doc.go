/*
Package textfile loads UTF-8 text files as texts.

Files are read fragment by fragment in a background goroutine. Clients may
subscribe to the progress of a load, which is broadcast after every fragment
read. Fragment boundaries never split a rune: trailing bytes of an incomplete
rune are carried over to the next fragment.

_________________________________________________________________________

BSD 3-Clause License

Copyright (c) 2020–21, Norbert Pillmayer

All rights reserved.

Please refer to the LICENSE file for details.
*/
package textfile

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'sumrope.textfile'
func tracer() tracing.Trace {
	return tracing.Select("sumrope.textfile")
}
