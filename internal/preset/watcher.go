package preset

import (
	"crypto/sha256"
	"fmt"
	"log/slog"
	"os"
	"sync"
	"time"
)

// Watcher monitors a preset file for external edits and calls a callback
// when its content changes. It polls (not fsnotify) to keep dependencies
// minimal and behaviour identical across platforms and network filesystems.
//
// The store already reconciles lazily on every operation; the watcher is
// for long-running consumers that want to be told about edits without
// issuing operations — an engine keeping presets warm, or watch-mode
// tooling.
type Watcher struct {
	path     string
	interval time.Duration
	onChange func(old, new []Preset)

	mu       sync.Mutex
	current  []Preset
	done     chan struct{}
	stopOnce sync.Once

	// last known file state for change detection
	lastMtime time.Time
	lastHash  [sha256.Size]byte
}

// WatcherOption configures a [Watcher].
type WatcherOption func(*Watcher)

// WithInterval sets the polling interval. The default is 2 seconds.
func WithInterval(d time.Duration) WatcherOption {
	return func(w *Watcher) {
		if d > 0 {
			w.interval = d
		}
	}
}

// NewWatcher creates a preset file watcher. It loads the file immediately
// (failing if it is unreadable or invalid) and starts polling in a
// background goroutine.
func NewWatcher(path string, onChange func(old, new []Preset), opts ...WatcherOption) (*Watcher, error) {
	w := &Watcher{
		path:     path,
		interval: 2 * time.Second,
		onChange: onChange,
		done:     make(chan struct{}),
	}
	for _, opt := range opts {
		opt(w)
	}

	presets, hash, mtime, err := w.loadAndHash()
	if err != nil {
		return nil, fmt.Errorf("preset: watcher initial load: %w", err)
	}
	w.current = presets
	w.lastHash = hash
	w.lastMtime = mtime

	go w.poll()
	return w, nil
}

// Current returns the most recently loaded valid collection.
func (w *Watcher) Current() []Preset {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.current
}

// Stop stops the file watcher. Safe to call more than once.
func (w *Watcher) Stop() {
	w.stopOnce.Do(func() {
		close(w.done)
	})
}

// poll runs in a background goroutine, checking the file periodically.
func (w *Watcher) poll() {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-w.done:
			return
		case <-ticker.C:
			w.check()
		}
	}
}

// check reads the preset file and, if it has changed and is valid, calls
// onChange and updates the current collection. Invalid content is logged
// and skipped: the previous good collection stays current.
func (w *Watcher) check() {
	// Quick mtime check first to avoid hashing unchanged files.
	info, err := os.Stat(w.path)
	if err != nil {
		slog.Warn("preset watcher: cannot stat file", "path", w.path, "err", err)
		return
	}

	w.mu.Lock()
	mtime := w.lastMtime
	w.mu.Unlock()

	if info.ModTime().Equal(mtime) {
		return
	}

	// Mtime changed — read and hash.
	presets, hash, newMtime, err := w.loadAndHash()
	if err != nil {
		slog.Warn("preset watcher: file changed but does not validate; keeping previous presets",
			"path", w.path, "err", err)
		return
	}

	w.mu.Lock()

	if hash == w.lastHash {
		// File was touched but content is identical.
		w.lastMtime = newMtime
		w.mu.Unlock()
		return
	}

	old := w.current
	w.current = presets
	w.lastHash = hash
	w.lastMtime = newMtime
	w.mu.Unlock()

	slog.Info("preset watcher: presets reloaded", "path", w.path, "presets", len(presets))

	// Invoke the callback outside the lock so it can safely call Current().
	if w.onChange != nil {
		w.onChange(old, presets)
	}
}

// loadAndHash reads the preset file, parses and validates it, and returns
// the collection alongside the file's SHA-256 hash and modification time.
// Invalid content returns an error; the caller keeps the old collection.
func (w *Watcher) loadAndHash() ([]Preset, [sha256.Size]byte, time.Time, error) {
	var zeroHash [sha256.Size]byte

	info, err := os.Stat(w.path)
	if err != nil {
		return nil, zeroHash, time.Time{}, err
	}
	data, err := os.ReadFile(w.path)
	if err != nil {
		return nil, zeroHash, time.Time{}, err
	}

	hash := sha256.Sum256(data)

	presets, err := decodePresets(data)
	if err != nil {
		return nil, zeroHash, time.Time{}, err
	}

	return presets, hash, info.ModTime(), nil
}
