/*
Package sumrope offers ropes of UTF-8 text on top of a persistent summarized B-tree.

Ropes

A rope organizes fragments of immutable text in a tree. Concatenation,
splitting and insertion then cost time proportional to the height of the
tree instead of the length of the text, and an edited text shares all of
its untouched fragments with the original. Applications holding large
texts which are modified often, like editors, benefit from this.

From Wikipedia:
In computer programming, a rope, or cord, is a data structure composed of
smaller strings that is used to efficiently store and manipulate a very long string.
For example, a text editing program may use a rope to represent the text being edited,
so that operations such as insertion, deletion, and random access can be
done efficiently. […] In summary, ropes are preferable when the data is large
and modified often.

Summaries

Texts are stored as chunks of at most 64 bytes (see package chunk) in the
leaves of a B-tree (see package btree). Every subtree carries a summary of
its text: bytes, runes, newlines and chunks. Summaries make byte, rune and
line positions addressable in logarithmic time; they are accumulated from
the left while descending the tree to find the chunk holding a position.

Texts are values. All operations return new texts and never change their
arguments.

_________________________________________________________________________

BSD 3-Clause License

Copyright (c) 2020–21, Norbert Pillmayer

All rights reserved.

Redistribution and use in source and binary forms, with or without
modification, are permitted provided that the following conditions are met:

1. Redistributions of source code must retain the above copyright notice, this
list of conditions and the following disclaimer.

2. Redistributions in binary form must reproduce the above copyright notice,
this list of conditions and the following disclaimer in the documentation
and/or other materials provided with the distribution.

3. Neither the name of the copyright holder nor the names of its
contributors may be used to endorse or promote products derived from
this software without specific prior written permission.

THIS SOFTWARE IS PROVIDED BY THE COPYRIGHT HOLDERS AND CONTRIBUTORS "AS IS"
AND ANY EXPRESS OR IMPLIED WARRANTIES, INCLUDING, BUT NOT LIMITED TO, THE
IMPLIED WARRANTIES OF MERCHANTABILITY AND FITNESS FOR A PARTICULAR PURPOSE ARE
DISCLAIMED. IN NO EVENT SHALL THE COPYRIGHT HOLDER OR CONTRIBUTORS BE LIABLE
FOR ANY DIRECT, INDIRECT, INCIDENTAL, SPECIAL, EXEMPLARY, OR CONSEQUENTIAL
DAMAGES (INCLUDING, BUT NOT LIMITED TO, PROCUREMENT OF SUBSTITUTE GOODS OR
SERVICES; LOSS OF USE, DATA, OR PROFITS; OR BUSINESS INTERRUPTION) HOWEVER
CAUSED AND ON ANY THEORY OF LIABILITY, WHETHER IN CONTRACT, STRICT LIABILITY,
OR TORT (INCLUDING NEGLIGENCE OR OTHERWISE) ARISING IN ANY WAY OUT OF THE USE
OF THIS SOFTWARE, EVEN IF ADVISED OF THE POSSIBILITY OF SUCH DAMAGE.

*/
package sumrope

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'sumrope'.
func tracer() tracing.Trace {
	return tracing.Select("sumrope")
}

// TextError is an error type for the sumrope module.
type TextError string

func (e TextError) Error() string {
	return string(e)
}

// ErrTextCompleted signals that a builder has already completed a text and
// it's illegal to further add fragments.
const ErrTextCompleted = TextError("forbidden to add fragments; text has been completed")

// ErrIndexOutOfBounds is flagged whenever a text position is
// greater than the length of the text.
const ErrIndexOutOfBounds = TextError("index out of bounds")

// ErrIllegalArguments is flagged whenever function parameters are invalid.
const ErrIllegalArguments = TextError("illegal arguments")

// ErrNotCharBoundary is flagged for byte positions inside of a multi-byte rune.
const ErrNotCharBoundary = TextError("position is not a rune boundary")

func assert(condition bool, msg string) {
	if !condition {
		panic(msg)
	}
}
