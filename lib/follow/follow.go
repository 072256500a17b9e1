// Package follow adapts an inotify-watched, growing file into a single
// io.Reader, so a scanner can treat "tail -f" style input the same way it
// treats any other already-open handle.
package follow

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/mdsn/rawscan/lib/watch"
)

// Follower is an io.ReadCloser over a file that may still be growing.
// Read blocks until more bytes are available. It returns io.EOF only once
// the watch has been removed (by Close or Inotify.Rm); removing or
// renaming the file does not by itself end the stream.
type Follower struct {
	fp   *os.File
	ino  *watch.Inotify
	w    *watch.Watch
	done bool
}

// Open starts following path from its current end: only bytes appended
// after Open returns are ever delivered.
func Open(path string) (*Follower, error) {
	fp, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("follow: open %s: %w", path, err)
	}

	if _, err := fp.Seek(0, io.SeekEnd); err != nil {
		fp.Close()
		return nil, fmt.Errorf("follow: seek %s: %w", path, err)
	}

	ino, err := watch.NewInotify()
	if err != nil {
		fp.Close()
		return nil, fmt.Errorf("follow: inotify init: %w", err)
	}

	w, err := ino.Add(path)
	if err != nil {
		fp.Close()
		ino.Close()
		return nil, fmt.Errorf("follow: watch %s: %w", path, err)
	}

	return &Follower{fp: fp, ino: ino, w: w}, nil
}

// Read implements io.Reader. It never returns (0, nil): a call either
// returns newly appended bytes, blocks waiting for the next write, or
// reports io.EOF once the watch has been removed.
func (f *Follower) Read(p []byte) (int, error) {
	if f.done {
		return 0, io.EOF
	}

	for {
		n, err := f.fp.Read(p)
		if n > 0 {
			return n, nil
		}
		if err != nil && !errors.Is(err, io.EOF) {
			return 0, fmt.Errorf("follow: read: %w", err)
		}

		if _, ok := <-f.w.Out; !ok {
			f.done = true
			return 0, io.EOF
		}
	}
}

// Close stops watching and releases the underlying file and inotify
// descriptors.
func (f *Follower) Close() error {
	// The inotify receiver holds its lock while sending on the watch's
	// channel; drain that channel until Rm closes it, so Rm can take the
	// lock even when no Read is waiting for an event.
	go func() {
		for range f.w.Out {
		}
	}()
	rmErr := f.ino.Rm(f.w)
	closeErr := f.ino.Close()
	fileErr := f.fp.Close()
	return errors.Join(rmErr, closeErr, fileErr)
}
