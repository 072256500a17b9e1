package rawscan

import "io"

// GetLine advances the scanner by exactly one Result. It is the sole
// mutator of cursors, long-line state and the cached delimiter hint; it
// must not be called concurrently with itself on the same scanner.
func (s *Scanner) GetLine() Result {
	if s.closed {
		return Result{Type: Error, Err: ErrClosed}
	}

	for {
		// Two-step long-line termination: the final chunk was already
		// handed back as LongLineChunk on a prior call; this call owes
		// only the data-less end marker.
		if s.longlineEnded {
			s.longlineEnded = false
			s.inLongLine = false
			return Result{Type: LongLineEnd}
		}

		// Fast path: a cached delimiter position still inside [p, q).
		if !s.inLongLine && s.p < s.q && s.hint != noHint && s.hint >= s.p && s.hint < s.q {
			d := s.hint
			line := s.buf[s.p : d+1]
			s.p = d + 1
			s.hint = s.search(s.p)
			return Result{Type: FullLine, Line: line}
		}

		haveBytes := s.p < s.q
		var haveDelim bool
		var d int
		if haveBytes {
			d = s.search(s.p)
			haveDelim = d < s.q
		}
		endOfInput := s.eofSeen || s.errSeen
		haveReadSpace := s.q < s.bufsz
		haveShiftRoom := s.p > 0

		switch {
		case haveDelim:
			line := s.buf[s.p : d+1]
			s.p = d + 1
			if s.inLongLine {
				s.longlineEnded = true
				return Result{Type: LongLineChunk, Line: line}
			}
			s.hint = s.search(s.p)
			return Result{Type: FullLine, Line: line}

		case !haveDelim && endOfInput && haveBytes:
			if s.q == s.bufsz {
				// Writability corner case: emitting this tail directly
				// would leave no writable byte after it for a caller to
				// append a terminator. Shift or chunk instead.
				if haveShiftRoom && s.p > s.bufsz-s.min1stChunk {
					if res, paused := s.shiftOrPause(); paused {
						return res
					}
					continue
				}
				return s.longLineSaturated()
			}
			line := s.buf[s.p:s.q]
			s.p = s.q
			if s.inLongLine {
				s.longlineEnded = true
				return Result{Type: LongLineChunk, Line: line}
			}
			return Result{Type: FullLineWithoutDelimiter, Line: line}

		case !haveDelim && endOfInput && !haveBytes && s.inLongLine:
			s.longlineEnded = true
			continue

		case !haveDelim && endOfInput && !haveBytes:
			if s.errSeen {
				return Result{Type: Error, Err: s.readErr}
			}
			return Result{Type: EndOfFile}

		case !haveDelim && !endOfInput && haveReadSpace:
			s.refill()
			continue

		case !haveDelim && !endOfInput && !haveReadSpace && haveBytes && (s.q-s.p) >= s.min1stChunk && !s.inLongLine:
			line := s.buf[s.p:s.q]
			s.inLongLine = true
			s.p = s.q
			return Result{Type: LongLineStart, Line: line}

		case !haveDelim && !endOfInput && !haveReadSpace && haveBytes && haveShiftRoom:
			if res, paused := s.shiftOrPause(); paused {
				return res
			}
			continue

		case !haveDelim && !endOfInput && !haveReadSpace && haveBytes:
			return s.longLineSaturated()

		case !haveBytes && !haveReadSpace:
			if s.pauseOnInval && !s.terminateCurrentPause {
				return Result{Type: Paused}
			}
			s.reset()
			continue

		default:
			panic("rawscan: unreachable getline state")
		}
	}
}

// shiftOrPause applies the pause protocol around an invalidating shift: if
// pause is enabled and the resume latch has not been armed, it reports
// Paused and leaves the buffer untouched; otherwise it performs the shift
// and consumes the latch.
func (s *Scanner) shiftOrPause() (Result, bool) {
	if s.pauseOnInval && !s.terminateCurrentPause {
		return Result{Type: Paused}, true
	}
	s.shift()
	return Result{}, false
}

// longLineSaturated handles the buffer-full-with-no-delimiter case: the
// current chunk of an overlong record is handed back, starting the
// long-line sequence if it hasn't started already.
func (s *Scanner) longLineSaturated() Result {
	line := s.buf[s.p:s.q]
	s.p = s.q
	if !s.inLongLine {
		s.inLongLine = true
		return Result{Type: LongLineStart, Line: line}
	}
	return Result{Type: LongLineChunk, Line: line}
}

// refill attempts one read into the free space above q.
func (s *Scanner) refill() {
	n, err := s.r.Read(s.buf[s.q:s.bufsz])
	if n > 0 {
		s.q += n
		s.hint = noHint
	}
	if err == nil {
		return
	}
	if err == io.EOF {
		s.eofSeen = true
		return
	}
	s.errSeen = true
	s.readErr = err
}
