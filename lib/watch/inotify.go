package watch

import (
	"errors"
	"strings"
	"sync"
	"syscall"
	"unsafe"
)

const (
	InotifyBufferSize = 4096
	defaultMask       = syscall.IN_MODIFY | syscall.IN_MOVE_SELF | syscall.IN_DELETE_SELF
)

type Event struct {
	Wd     int32
	Cookie uint32
	Mask   uint32
	Name   string
}

type Watch struct {
	path string
	wd   int
	Out  chan Event
}

type Inotify struct {
	mu  sync.Mutex
	fd  int
	wds map[int]*Watch
}

func NewInotify() (*Inotify, error) {
	fd, err := syscall.InotifyInit()
	if err != nil {
		return nil, err
	}

	ino := &Inotify{fd: fd, wds: make(map[int]*Watch)}
	go inotifyReceive(ino)

	return ino, nil
}

func (ino *Inotify) Close() error {
	return syscall.Close(ino.fd)
}

// Add watches path for modification, rename-away and unlink, the events a
// file follower needs to notice it should read more or stop.
func (ino *Inotify) Add(path string) (*Watch, error) {
	wd, err := syscall.InotifyAddWatch(ino.fd, path, defaultMask)
	if err != nil {
		return nil, err
	}

	w := &Watch{path: path, wd: wd, Out: make(chan Event)}

	ino.mu.Lock()
	ino.wds[wd] = w
	ino.mu.Unlock()

	return w, nil
}

func (ino *Inotify) Rm(w *Watch) error {
	ino.mu.Lock()
	_, ok := ino.wds[w.wd]
	if ok {
		delete(ino.wds, w.wd)
	}
	ino.mu.Unlock()

	if !ok {
		return errors.New("watch not found")
	}

	_, err := syscall.InotifyRmWatch(ino.fd, uint32(w.wd))
	close(w.Out)
	return err
}

func inotifyReceive(ino *Inotify) {
	buf := make([]byte, InotifyBufferSize)
	for {
		buf = buf[:cap(buf)]

		n, err := syscall.Read(ino.fd, buf)
		if err != nil {
			return
		}
		buf = buf[:n]

		offset := 0
		for offset < len(buf) {
			event := (*syscall.InotifyEvent)(unsafe.Pointer(&buf[offset]))
			nameOffset := offset + syscall.SizeofInotifyEvent

			var name string
			if event.Len > 0 {
				raw := buf[nameOffset : nameOffset+int(event.Len)]
				name = strings.TrimRight(string(raw), "\x00")
			}

			// XXX contention? holding the lock across the send blocks
			// Add/Rm until the watch's consumer drains it.
			ino.mu.Lock()
			if w, ok := ino.wds[int(event.Wd)]; ok {
				w.Out <- Event{
					Wd:     event.Wd,
					Cookie: event.Cookie,
					Mask:   event.Mask,
					Name:   name,
				}
			}
			ino.mu.Unlock()

			offset += syscall.SizeofInotifyEvent + int(event.Len)
		}
	}
}
