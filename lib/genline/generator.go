package genline

import (
	"fmt"
	"io"
)

// Base64Alphabet is the RFC 4648 base64 alphabet, the original
// generator's default character set.
const Base64Alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789+/"

// Generator produces delimited records of random length over a fixed
// alphabet. A single PRNG draw picks a record's length; the characters
// filling it come from a persistent, incrementing index into the
// alphabet, not from a further per-character draw. This mirrors the
// original generator's random_string() exactly, trading uniform character
// selection for one PRNG call per record.
type Generator struct {
	rng      *PCG32
	alphabet []byte
	minLen   int
	maxLen   int
	delim    byte
	mi       uint32 // rotating index into alphabet
}

// NewGenerator builds a generator over alphabet, emitting records whose
// length is uniform in [minLen, maxLen] followed by delim.
func NewGenerator(rng *PCG32, alphabet []byte, minLen, maxLen int, delim byte) (*Generator, error) {
	if len(alphabet) == 0 {
		return nil, fmt.Errorf("genline: empty alphabet")
	}
	if minLen < 0 || maxLen < minLen {
		return nil, fmt.Errorf("genline: invalid length range [%d, %d]", minLen, maxLen)
	}
	return &Generator{rng: rng, alphabet: alphabet, minLen: minLen, maxLen: maxLen, delim: delim}, nil
}

// Line returns one record, including its trailing delimiter.
func (g *Generator) Line() []byte {
	width := uint32(g.maxLen - g.minLen + 1)
	l := g.minLen + int(g.rng.Uint32()%width)

	buf := make([]byte, l+1)
	for i := 0; i < l; i++ {
		buf[i] = g.alphabet[g.mi%uint32(len(g.alphabet))]
		g.mi++
	}
	buf[l] = g.delim
	return buf
}

// WriteLines writes n records to w. If suppressFinalDelimiter is set, the
// last record's trailing delimiter is omitted, producing the no-trailing-
// delimiter edge case a scanner must also handle.
func (g *Generator) WriteLines(w io.Writer, n int, suppressFinalDelimiter bool) error {
	for i := 0; i < n; i++ {
		line := g.Line()
		if suppressFinalDelimiter && i == n-1 {
			line = line[:len(line)-1]
		}
		if _, err := w.Write(line); err != nil {
			return err
		}
	}
	return nil
}
