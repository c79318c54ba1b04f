package inbox

import (
	"context"
	"os"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/kbukum/asrdrop/errors"
	"github.com/kbukum/asrdrop/logger"
)

// DefaultDebounce is how long a directory must stay quiet before the
// watcher fires. Copies of long recordings arrive as many write events.
const DefaultDebounce = 2 * time.Second

// Watcher calls a function each time audio files land in a directory.
type Watcher struct {
	dir      string
	debounce time.Duration
	log      *logger.Logger
}

// NewWatcher creates a Watcher for dir. debounce <= 0 means DefaultDebounce.
func NewWatcher(dir string, debounce time.Duration, log *logger.Logger) *Watcher {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	if log == nil {
		log = logger.GetGlobalLogger()
	}
	return &Watcher{dir: dir, debounce: debounce, log: log.WithComponent("inbox")}
}

// Run blocks until ctx is done. After audio files are created or written
// in the directory and no further such event arrives for the debounce
// period, fn runs once. Runs are sequential; events that arrive while fn
// is running schedule one more run.
//
// Run returns NO_INPUT_DIR when the directory does not exist, and nil when
// ctx is canceled.
func (w *Watcher) Run(ctx context.Context, fn func(ctx context.Context)) error {
	info, err := os.Stat(w.dir)
	if err != nil || !info.IsDir() {
		return errors.NoInputDir(w.dir)
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return errors.FileError(w.dir, err)
	}
	defer fw.Close()
	if err := fw.Add(w.dir); err != nil {
		return errors.FileError(w.dir, err)
	}
	w.log.Info("Watching for audio files", logger.Fields("dir", w.dir, "debounce", w.debounce.String()))

	timer := time.NewTimer(w.debounce)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Create|fsnotify.Write) == 0 || !IsAudio(event.Name) {
				continue
			}
			w.log.Debug("Audio file event", logger.Fields(logger.FieldFilename, event.Name, "op", event.Op.String()))
			timer.Reset(w.debounce)

		case <-timer.C:
			fn(ctx)

		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			w.log.Warn("Watcher error", logger.ErrorFields("watch", err))
		}
	}
}
