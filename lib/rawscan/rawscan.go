// Package rawscan reads a byte stream from an already-open handle and
// yields delimiter-terminated records with a fixed memory footprint.
//
// The scanner never grows its buffer and never copies a record out of the
// buffer for the caller; every Result aliases the scanner's own arena.
// Records longer than the buffer are handed back in chunks. See Scanner
// for the borrow discipline this implies.
package rawscan

import (
	"errors"
	"fmt"
)

// ResultType tags the value returned by Scanner.GetLine.
type ResultType uint8

const (
	FullLine ResultType = iota
	FullLineWithoutDelimiter
	LongLineStart
	LongLineChunk
	LongLineEnd
	Paused
	EndOfFile
	Error
)

// Result is returned by GetLine. Line aliases the scanner's working
// buffer and is valid only until the next call to GetLine that does not
// return Paused, or until Close.
type Result struct {
	Type ResultType
	Line []byte
	Err  error
}

// AllocError is returned by Open when the arena could not be mapped.
type AllocError struct {
	Cause error
}

func (e *AllocError) Error() string { return fmt.Sprintf("rawscan: alloc failed: %v", e.Cause) }
func (e *AllocError) Unwrap() error { return e.Cause }

// ProtectError is returned by Open when the sentinel page could not be
// made read-only.
type ProtectError struct {
	Cause error
}

func (e *ProtectError) Error() string { return fmt.Sprintf("rawscan: mprotect failed: %v", e.Cause) }
func (e *ProtectError) Unwrap() error { return e.Cause }

// InvalidConfigError is returned by SetMinFirstChunk when len is outside
// [1, bufsz].
type InvalidConfigError struct {
	Requested int
	Bufsz     int
}

func (e *InvalidConfigError) Error() string {
	return fmt.Sprintf("rawscan: min1stchunk %d out of range [1,%d]", e.Requested, e.Bufsz)
}

// ErrClosed is returned by GetLine when called on a scanner that has
// already been closed.
var ErrClosed = errors.New("rawscan: scanner closed")

const noHint = -1
