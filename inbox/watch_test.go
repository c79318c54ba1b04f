package inbox

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/kbukum/asrdrop/errors"
	"github.com/kbukum/asrdrop/logger"
)

func TestWatcher_MissingDir(t *testing.T) {
	w := NewWatcher(filepath.Join(t.TempDir(), "nope"), 10*time.Millisecond, logger.Nop())
	err := w.Run(context.Background(), func(context.Context) { t.Error("fn must not run") })
	if !errors.HasCode(err, errors.ErrCodeNoInputDir) {
		t.Fatalf("expected NO_INPUT_DIR, got %v", err)
	}
}

func TestWatcher_FiresOnceAfterAudioSettles(t *testing.T) {
	dir := t.TempDir()
	w := NewWatcher(dir, 200*time.Millisecond, logger.Nop())

	fired := make(chan struct{}, 10)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- w.Run(ctx, func(context.Context) { fired <- struct{}{} })
	}()
	// Let the watcher register before writing.
	time.Sleep(100 * time.Millisecond)

	writeFiles(t, dir, "notes.txt")
	select {
	case <-fired:
		t.Fatal("non-audio file must not trigger")
	case <-time.After(400 * time.Millisecond):
	}

	writeFiles(t, dir, "a.wav", "b.MP3")
	select {
	case <-fired:
	case <-time.After(3 * time.Second):
		t.Fatal("expected the watcher to fire")
	}
	select {
	case <-fired:
		t.Fatal("a burst of files should fire once")
	case <-time.After(400 * time.Millisecond):
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Run returned %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
}

func TestNewWatcher_Defaults(t *testing.T) {
	w := NewWatcher(os.TempDir(), 0, nil)
	if w.debounce != DefaultDebounce {
		t.Errorf("debounce = %v", w.debounce)
	}
	if w.log == nil {
		t.Error("expected a logger")
	}
}
