package metrics

import (
	"unicode"
	"unicode/utf8"

	"github.com/npillmayer/sumrope"
)

// Span is a byte-range descriptor inside a text.
//
// Pos is the start byte offset, Len is the span length in bytes.
type Span struct {
	Pos uint64
	Len uint64
}

// WordsValue is the result of measuring a fragment for words. Span positions
// are relative to the start of the fragment.
type WordsValue struct {
	Spans []Span
	Len   uint64 // length of the fragment in bytes
}

// WordCount returns the number of recognized words.
func (v WordsValue) WordCount() int {
	return len(v.Spans)
}

// WordsMetric finds words, i.e. runs of non-space runes.
type WordsMetric struct{}

// Words creates a word metric.
func Words() WordsMetric {
	return WordsMetric{}
}

// Apply is part of interface Metric.
func (WordsMetric) Apply(frag []byte) WordsValue {
	return WordsValue{Spans: findWordSpans(frag, 0), Len: uint64(len(frag))}
}

// Combine is part of interface Metric. A word ending at the right border of
// left and a word starting at the left border of right are one word.
//
// Combine appends to the spans of left and may therefore reuse its storage.
func (WordsMetric) Combine(left, right WordsValue) WordsValue {
	spans := left.Spans
	for k, s := range right.Spans {
		s.Pos += left.Len
		if k == 0 && s.Pos == left.Len && len(spans) > 0 {
			if last := &spans[len(spans)-1]; last.Pos+last.Len == left.Len {
				last.Len += s.Len
				continue
			}
		}
		spans = append(spans, s)
	}
	return WordsValue{Spans: spans, Len: left.Len + right.Len}
}

// Count is part of interface CountingMetric.
func (WordsMetric) Count(v WordsValue) int {
	return v.WordCount()
}

// FindWords scans [i,j) of a text for words. It returns the word spans, with
// positions relative to the start of text, plus a text consisting of all the
// words in logical order, omitting the separators.
func FindWords(text sumrope.Text, i, j uint64) ([]Span, sumrope.Text, error) {
	value, err := Apply(text, i, j, Words())
	if err != nil {
		return nil, sumrope.Text{}, err
	}
	words := make([]sumrope.Text, 0, len(value.Spans))
	for k := range value.Spans {
		value.Spans[k].Pos += i
		w, err := sumrope.Substr(text, value.Spans[k].Pos, value.Spans[k].Len)
		if err != nil {
			return nil, sumrope.Text{}, err
		}
		words = append(words, w)
	}
	if len(words) == 0 {
		return value.Spans, sumrope.Text{}, nil
	}
	return value.Spans, sumrope.Concat(words[0], words[1:]...), nil
}

func findWordSpans(b []byte, base uint64) []Span {
	var spans []Span
	for pos := 0; pos < len(b); {
		r, width := utf8.DecodeRune(b[pos:])
		if unicode.IsSpace(r) {
			pos += width
			continue
		}
		start := pos
		pos += width
		for pos < len(b) {
			r, width = utf8.DecodeRune(b[pos:])
			if unicode.IsSpace(r) {
				break
			}
			pos += width
		}
		spans = append(spans, Span{
			Pos: base + uint64(start),
			Len: uint64(pos - start),
		})
	}
	return spans
}
