package rawscan

import (
	"bytes"
	"io"

	"golang.org/x/sys/unix"
)

// Scanner is the control record for one input stream. It owns the arena
// bytes and the cursors into them; it borrows the input handle, which the
// caller opened and remains responsible for closing.
type Scanner struct {
	r     io.Reader
	delim byte
	bufsz int

	region []byte // padding + working buffer + sentinel page, one mmap
	pad    int    // bytes of padding below the working buffer
	buf    []byte // region[pad : pad+bufsz], the writable working buffer

	p, q int // cursors into buf; buf[p:q] is buffered, unreturned data
	hint int // cached position of the next delimiter, or noHint

	eofSeen bool
	errSeen bool
	readErr error

	inLongLine    bool
	longlineEnded bool

	pauseOnInval          bool
	terminateCurrentPause bool

	min1stChunk int
	closed      bool
}

func roundUpToPage(n, pgsz int) int {
	if n%pgsz == 0 {
		return n
	}
	return (n/pgsz + 1) * pgsz
}

// Open acquires a page-aligned arena of bufsz working bytes plus one
// trailing sentinel page, stamps the sentinel with delim and makes it
// read-only, and returns a scanner ready to read from r.
//
// If the process has opted into the environment override (see
// AllowForceBufSizeEnv), bufsz may be superseded by RAWSCAN_FORCE_BUFSZ.
func Open(r io.Reader, bufsz int, delim byte) (*Scanner, error) {
	bufsz, err := resolveBufSize(bufsz)
	if err != nil {
		return nil, err
	}

	pgsz := unix.Getpagesize()
	aligned := roundUpToPage(bufsz, pgsz)
	pad := aligned - bufsz

	region, err := unix.Mmap(-1, 0, aligned+pgsz,
		unix.PROT_READ|unix.PROT_WRITE, unix.MAP_ANON|unix.MAP_PRIVATE)
	if err != nil {
		return nil, &AllocError{Cause: err}
	}

	sentinel := region[aligned : aligned+pgsz]
	sentinel[0] = delim

	if err := unix.Mprotect(sentinel, unix.PROT_READ); err != nil {
		_ = unix.Munmap(region)
		return nil, &ProtectError{Cause: err}
	}

	return &Scanner{
		r:           r,
		delim:       delim,
		bufsz:       bufsz,
		region:      region,
		pad:         pad,
		buf:         region[pad : pad+bufsz],
		hint:        noHint,
		min1stChunk: bufsz,
	}, nil
}

// Close releases the arena. The caller's input handle is not touched.
// Every byte range previously returned by GetLine is invalidated.
func (s *Scanner) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true

	pgsz := unix.Getpagesize()
	aligned := roundUpToPage(s.bufsz, pgsz)
	sentinel := s.region[aligned : aligned+pgsz]
	// Restore writability before releasing; matches the discipline the
	// sentinel page is held under while the scanner is live.
	_ = unix.Mprotect(sentinel, unix.PROT_READ|unix.PROT_WRITE)

	return unix.Munmap(s.region)
}

// search returns the position, relative to buf, of the next delimiter at
// or after from. The sentinel guarantees a match at or before bufsz, so
// the search never runs unbounded past the mapped region.
func (s *Scanner) search(from int) int {
	idx := bytes.IndexByte(s.region[s.pad+from:], s.delim)
	return from + idx
}
