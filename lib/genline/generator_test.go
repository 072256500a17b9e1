package genline

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPCG32_Deterministic(t *testing.T) {
	a := NewPCG32(DefaultInitState, DefaultInitSeq)
	b := NewPCG32(DefaultInitState, DefaultInitSeq)

	for i := 0; i < 100; i++ {
		require.Equal(t, a.Uint32(), b.Uint32(), "same seed must produce same sequence at draw %d", i)
	}
}

func TestPCG32_DifferentSeqDiverges(t *testing.T) {
	a := NewPCG32(DefaultInitState, DefaultInitSeq)
	b := NewPCG32(DefaultInitState, DefaultInitSeq+2)

	same := true
	for i := 0; i < 20; i++ {
		if a.Uint32() != b.Uint32() {
			same = false
			break
		}
	}
	require.False(t, same, "different stream selectors must diverge")
}

func TestGenerator_LineShapeAndAlphabet(t *testing.T) {
	rng := NewPCG32(DefaultInitState, DefaultInitSeq)
	g, err := NewGenerator(rng, []byte(Base64Alphabet), 0, 15, '\n')
	require.NoError(t, err)

	for i := 0; i < 2000; i++ {
		line := g.Line()
		require.LessOrEqual(t, len(line), 16)
		require.NotEmpty(t, line)
		require.Equal(t, byte('\n'), line[len(line)-1])
		for _, c := range line[:len(line)-1] {
			require.Contains(t, Base64Alphabet, string(c))
		}
	}
}

func TestGenerator_RotatingIndexIsPersistentAcrossLines(t *testing.T) {
	rng := NewPCG32(DefaultInitState, DefaultInitSeq)
	alphabet := []byte("AB")
	g, err := NewGenerator(rng, alphabet, 4, 4, '\n')
	require.NoError(t, err)

	first := g.Line()
	second := g.Line()

	// The map index keeps incrementing across calls rather than resetting,
	// so the two four-character bodies must continue each other's rotation
	// through the two-letter alphabet.
	combined := append(append([]byte{}, first[:4]...), second[:4]...)
	for i, c := range combined {
		want := alphabet[i%len(alphabet)]
		require.Equalf(t, want, c, "position %d", i)
	}
}

func TestGenerator_WriteLines_SuppressFinalDelimiter(t *testing.T) {
	rng := NewPCG32(DefaultInitState, DefaultInitSeq)
	g, err := NewGenerator(rng, []byte(Base64Alphabet), 1, 4, '\n')
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, g.WriteLines(&buf, 5, true))

	require.NotEqual(t, byte('\n'), buf.Bytes()[buf.Len()-1])
	require.Equal(t, 4, bytes.Count(buf.Bytes(), []byte{'\n'}))
}

func TestGenerator_WriteLines_KeepsFinalDelimiter(t *testing.T) {
	rng := NewPCG32(DefaultInitState, DefaultInitSeq)
	g, err := NewGenerator(rng, []byte(Base64Alphabet), 1, 4, '\n')
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, g.WriteLines(&buf, 5, false))

	require.Equal(t, byte('\n'), buf.Bytes()[buf.Len()-1])
	require.Equal(t, 5, bytes.Count(buf.Bytes(), []byte{'\n'}))
}

func TestNewGenerator_Validation(t *testing.T) {
	rng := NewPCG32(DefaultInitState, DefaultInitSeq)

	_, err := NewGenerator(rng, nil, 0, 4, '\n')
	require.Error(t, err)

	_, err = NewGenerator(rng, []byte("A"), 4, 1, '\n')
	require.Error(t, err)
}
