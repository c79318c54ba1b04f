package inbox

import (
	"io"
	"os"
	"sync"

	"github.com/kbukum/asrdrop/errors"
)

// Opener opens a file for binary reading.
type Opener func(path string) (io.ReadCloser, error)

// OSOpener opens files from the local filesystem.
func OSOpener(path string) (io.ReadCloser, error) {
	return os.Open(path)
}

// Handle is one opened file.
type Handle struct {
	Entry
	io.Reader
}

// Handles owns the files opened for one upload. Close releases every one
// of them exactly once, no matter how often it is called.
type Handles struct {
	items   []Handle
	closers []io.Closer
	once    sync.Once
	err     error
}

// OpenAll opens every entry through opener. If any open fails, the files
// already opened are closed and FILE_ERROR is returned.
func OpenAll(opener Opener, entries []Entry) (*Handles, error) {
	if opener == nil {
		opener = OSOpener
	}
	h := &Handles{
		items:   make([]Handle, 0, len(entries)),
		closers: make([]io.Closer, 0, len(entries)),
	}
	for _, e := range entries {
		rc, err := opener(e.Path)
		if err != nil {
			_ = h.Close()
			return nil, errors.FileError(e.Path, err)
		}
		h.items = append(h.items, Handle{Entry: e, Reader: rc})
		h.closers = append(h.closers, rc)
	}
	return h, nil
}

// Items returns the opened handles in entry order.
func (h *Handles) Items() []Handle {
	return h.items
}

// Len returns the number of open handles.
func (h *Handles) Len() int {
	return len(h.items)
}

// Close closes every handle. The first close error is returned on every call.
func (h *Handles) Close() error {
	if h == nil {
		return nil
	}
	h.once.Do(func() {
		for _, c := range h.closers {
			if err := c.Close(); err != nil && h.err == nil {
				h.err = err
			}
		}
	})
	return h.err
}
