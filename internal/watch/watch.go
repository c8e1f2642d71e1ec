// Package watch tails files for appended content using raw inotify and
// epoll. Appended data is tracked per file with both a byte offset and a
// line count, so scans over new content keep absolute line numbers.
package watch

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"golang.org/x/sys/unix"
)

// EventType identifies the kind of file change.
type EventType int

const (
	EventModified EventType = iota
	EventCreated
	EventDeleted
)

// Event represents a file change event.
type Event struct {
	Path string
	Type EventType
	Err  error
}

// fileState tracks how much of a file has already been consumed.
type fileState struct {
	offset   int64
	nextLine int // 1-based line number of the next unread line
}

// Watcher watches files and directories for changes.
type Watcher struct {
	inotifyFd int
	epollFd   int
	done      chan struct{}

	mu      sync.Mutex
	watches map[int]string // wd -> path
	files   map[string]*fileState
}

// New creates an inotify-based file watcher.
func New() (*Watcher, error) {
	ifd, err := unix.InotifyInit1(unix.IN_CLOEXEC | unix.IN_NONBLOCK)
	if err != nil {
		return nil, fmt.Errorf("inotify_init1: %w", err)
	}

	efd, err := unix.EpollCreate1(unix.EPOLL_CLOEXEC)
	if err != nil {
		unix.Close(ifd)
		return nil, fmt.Errorf("epoll_create1: %w", err)
	}

	event := unix.EpollEvent{Events: unix.EPOLLIN, Fd: int32(ifd)}
	if err := unix.EpollCtl(efd, unix.EPOLL_CTL_ADD, ifd, &event); err != nil {
		unix.Close(efd)
		unix.Close(ifd)
		return nil, fmt.Errorf("epoll_ctl: %w", err)
	}

	return &Watcher{
		inotifyFd: ifd,
		epollFd:   efd,
		watches:   make(map[int]string),
		files:     make(map[string]*fileState),
		done:      make(chan struct{}),
	}, nil
}

// Add adds a path to watch. For directories, new and modified files are
// reported; for files, modifications and moves (log rotation). Existing
// file content counts as already consumed; only appends are reported.
func (w *Watcher) Add(path string) error {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return err
	}

	mask := uint32(unix.IN_MODIFY | unix.IN_CREATE | unix.IN_MOVED_TO | unix.IN_MOVE_SELF | unix.IN_DELETE_SELF)
	wd, err := unix.InotifyAddWatch(w.inotifyFd, absPath, mask)
	if err != nil {
		return fmt.Errorf("inotify_add_watch %s: %w", absPath, err)
	}
	w.mu.Lock()
	w.watches[wd] = absPath
	w.mu.Unlock()

	info, err := os.Stat(absPath)
	if err == nil && !info.IsDir() {
		lines, err := countLines(absPath, info.Size())
		if err != nil {
			return err
		}
		w.mu.Lock()
		w.files[absPath] = &fileState{offset: info.Size(), nextLine: lines + 1}
		w.mu.Unlock()
	}
	return nil
}

// Events returns a channel of file events. The channel closes after
// Close is called.
func (w *Watcher) Events() <-chan Event {
	ch := make(chan Event, 64)
	go func() {
		defer close(ch)
		buf := make([]byte, 4096)
		events := make([]unix.EpollEvent, 1)

		for {
			select {
			case <-w.done:
				return
			default:
			}

			n, err := unix.EpollWait(w.epollFd, events, 100)
			if err != nil {
				if err == unix.EINTR {
					continue
				}
				ch <- Event{Err: fmt.Errorf("epoll_wait: %w", err)}
				return
			}
			if n == 0 {
				continue
			}

			nbytes, err := unix.Read(w.inotifyFd, buf)
			if err != nil {
				if err == unix.EAGAIN {
					continue
				}
				ch <- Event{Err: fmt.Errorf("read inotify: %w", err)}
				return
			}

			w.parseEvents(buf[:nbytes], ch)
		}
	}()
	return ch
}

// inotify event header layout:
//
//	int32  wd       (offset 0)
//	uint32 mask     (offset 4)
//	uint32 cookie   (offset 8)
//	uint32 len      (offset 12)
//	char   name[]   (offset 16)
const inotifyEventSize = 16

func (w *Watcher) parseEvents(buf []byte, ch chan<- Event) {
	offset := 0
	for offset+inotifyEventSize <= len(buf) {
		wd := int32(binary.LittleEndian.Uint32(buf[offset:]))
		mask := binary.LittleEndian.Uint32(buf[offset+4:])
		nameLen := int(binary.LittleEndian.Uint32(buf[offset+12:]))

		var name string
		if nameLen > 0 {
			nameStart := offset + inotifyEventSize
			nameEnd := nameStart + nameLen
			if nameEnd > len(buf) {
				break
			}
			nameBytes := buf[nameStart:nameEnd]
			if i := bytes.IndexByte(nameBytes, 0); i >= 0 {
				nameBytes = nameBytes[:i]
			}
			name = string(nameBytes)
		}

		offset += inotifyEventSize + nameLen

		w.mu.Lock()
		path := w.watches[int(wd)]
		w.mu.Unlock()
		if name != "" {
			path = filepath.Join(path, name)
		}

		switch {
		case mask&unix.IN_CREATE != 0 || mask&unix.IN_MOVED_TO != 0:
			ch <- Event{Path: path, Type: EventCreated}
		case mask&unix.IN_MODIFY != 0:
			ch <- Event{Path: path, Type: EventModified}
		case mask&unix.IN_DELETE_SELF != 0 || mask&unix.IN_MOVE_SELF != 0:
			ch <- Event{Path: path, Type: EventDeleted}
		}
	}
}

// ReadAppended returns content appended to path since the last read,
// along with the 1-based line number of the first appended line. A
// truncated file resets to the beginning.
func (w *Watcher) ReadAppended(path string) ([]byte, int, error) {
	fd, err := unix.Open(path, unix.O_RDONLY|unix.O_NOATIME, 0)
	if err != nil {
		fd, err = unix.Open(path, unix.O_RDONLY, 0)
		if err != nil {
			return nil, 0, err
		}
	}
	defer unix.Close(fd)

	var stat unix.Stat_t
	if err := unix.Fstat(fd, &stat); err != nil {
		return nil, 0, err
	}

	w.mu.Lock()
	state := w.files[path]
	if state == nil {
		state = &fileState{nextLine: 1}
		w.files[path] = state
	}
	w.mu.Unlock()

	if stat.Size < state.offset {
		// Truncated (rotation): start over.
		state.offset = 0
		state.nextLine = 1
	}
	toRead := stat.Size - state.offset
	if toRead == 0 {
		return nil, state.nextLine, nil
	}

	buf := make([]byte, toRead)
	n, err := unix.Pread(fd, buf, state.offset)
	if err != nil {
		return nil, 0, err
	}
	buf = buf[:n]

	startLine := state.nextLine
	state.offset += int64(n)
	state.nextLine += bytes.Count(buf, []byte{'\n'})
	if n > 0 && buf[n-1] != '\n' {
		// A trailing partial line still counts as started.
		state.nextLine++
	}
	return buf, startLine, nil
}

// Close stops the watcher and releases its descriptors.
func (w *Watcher) Close() error {
	close(w.done)
	unix.Close(w.epollFd)
	return unix.Close(w.inotifyFd)
}

// countLines counts the newline-terminated lines in the first size bytes
// of path.
func countLines(path string, size int64) (int, error) {
	if size == 0 {
		return 0, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, err
	}
	if int64(len(data)) > size {
		data = data[:size]
	}
	n := bytes.Count(data, []byte{'\n'})
	if len(data) > 0 && data[len(data)-1] != '\n' {
		n++
	}
	return n, nil
}
