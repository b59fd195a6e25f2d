package sumrope

import (
	"slices"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/npillmayer/sumrope/chunk"
	tassert "github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const poem = "Über Sternen\nmuß ein lieber Vater wohnen.\n\n世界 ist groß\nEnde"

func TestPosFromByte(t *testing.T) {
	text := FromString(poem)
	for b := 0; b <= len(poem); b++ {
		p, err := text.PosFromByte(uint64(b))
		if b < len(poem) && !utf8.RuneStart(poem[b]) {
			tassert.ErrorIs(t, err, ErrNotCharBoundary, "byte %d", b)
			continue
		}
		require.NoError(t, err, "byte %d", b)
		tassert.Equal(t, uint64(b), p.Byte)
		tassert.Equal(t, uint64(utf8.RuneCountInString(poem[:b])), p.Char, "byte %d", b)
		tassert.Equal(t, uint64(strings.Count(poem[:b], "\n")), p.Line, "byte %d", b)
	}
	tassert.Equal(t, text.PosEnd().Byte, uint64(len(poem)))
	tassert.Equal(t, Pos{}, text.PosStart())
	_, err := text.PosFromByte(uint64(len(poem) + 1))
	tassert.ErrorIs(t, err, ErrIndexOutOfBounds)
}

func TestCharOffset(t *testing.T) {
	text := textOfRunes(t, poem)
	k := 0
	for b := range poem {
		at, err := text.CharOffset(uint64(k))
		require.NoError(t, err)
		tassert.Equal(t, uint64(b), at, "rune %d", k)
		k++
	}
	at, err := text.CharOffset(uint64(k))
	require.NoError(t, err)
	tassert.Equal(t, uint64(len(poem)), at)
	_, err = text.CharOffset(uint64(k + 1))
	tassert.ErrorIs(t, err, ErrIndexOutOfBounds)
}

func TestLineOffsetAndLine(t *testing.T) {
	text := textOfRunes(t, poem)
	lines := strings.Split(poem, "\n")
	offset := 0
	for i, line := range lines {
		at, err := text.LineOffset(uint64(i))
		require.NoError(t, err)
		tassert.Equal(t, uint64(offset), at, "line %d", i)
		got, err := text.Line(uint64(i))
		require.NoError(t, err)
		tassert.Equal(t, line, got)
		offset += len(line) + 1
	}
	_, err := text.LineOffset(uint64(len(lines)))
	tassert.ErrorIs(t, err, ErrIndexOutOfBounds)
}

// textOfRunes creates a text with one rune per chunk.
func textOfRunes(t *testing.T, s string) Text {
	t.Helper()
	var parts []chunk.Chunk
	for _, r := range s {
		c, err := chunk.New(string(r))
		require.NoError(t, err)
		parts = append(parts, c)
	}
	text := FromChunks(smallTree, slices.Values(parts))
	require.Equal(t, s, text.String())
	require.Greater(t, text.Height(), 2)
	return text
}
