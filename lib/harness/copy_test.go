package harness

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/mdsn/rawscan/lib/genline"
	"github.com/stretchr/testify/require"
)

func TestCopyLines_RoundTrip(t *testing.T) {
	in := "one\ntwo\nthree\n"
	var out bytes.Buffer

	require.NoError(t, CopyLines(strings.NewReader(in), &out, 4, '\n'))
	require.Equal(t, in, out.String())
}

func TestCopyLines_NoTrailingDelimiter(t *testing.T) {
	in := "abc"
	var out bytes.Buffer

	require.NoError(t, CopyLines(strings.NewReader(in), &out, 8, '\n'))
	require.Equal(t, in, out.String())
}

func TestCopyLines_LongLines(t *testing.T) {
	in := strings.Repeat("x", 100) + "\n" + strings.Repeat("y", 50)
	var out bytes.Buffer

	require.NoError(t, CopyLines(strings.NewReader(in), &out, 8, '\n'))
	require.Equal(t, in, out.String())
}

func TestCopyLines_GeneratedInput(t *testing.T) {
	rng := genline.NewPCG32(genline.DefaultInitState, genline.DefaultInitSeq)
	g, err := genline.NewGenerator(rng, []byte(genline.Base64Alphabet), 0, 15, '\n')
	require.NoError(t, err)

	var in bytes.Buffer
	require.NoError(t, g.WriteLines(&in, 5000, false))

	var out bytes.Buffer
	require.NoError(t, CopyLines(bytes.NewReader(in.Bytes()), &out, 128, '\n'))
	require.Equal(t, in.Bytes(), out.Bytes())
}

type flakyReader struct {
	body string
	pos  int
	err  error
}

func (r *flakyReader) Read(p []byte) (int, error) {
	if r.pos >= len(r.body) {
		return 0, r.err
	}
	n := copy(p, r.body[r.pos:])
	r.pos += n
	return n, nil
}

func TestCopyLines_ReadError(t *testing.T) {
	boom := errors.New("disk gone")
	r := &flakyReader{body: "ok\n", err: boom}
	var out bytes.Buffer

	err := CopyLines(r, &out, 8, '\n')
	require.Error(t, err)
	require.ErrorIs(t, err, boom)
	require.Equal(t, "ok\n", out.String())
}
