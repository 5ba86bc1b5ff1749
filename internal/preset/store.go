package preset

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"slices"
	"sync"
	"time"

	"github.com/kanade-engine/presetstore/internal/observe"
)

// Store is the sole mutable authority over the preset collection. It
// mediates between the in-memory cache and the backing file.
//
// Every public operation runs the same sequence under one mutex: reconcile
// the cache with the file, apply the mutation in memory, persist the whole
// collection, and roll the mutation back if persisting fails. Callers never
// observe a cache state that was not also durably written.
//
// The context passed to operations propagates telemetry (spans, metric
// exemplars). Operations are synchronous local file I/O and run to
// completion; they do not observe cancellation mid-sequence, which keeps
// the rollback contract simple.
type Store struct {
	path    string
	fsys    FileSystem
	metrics *observe.Metrics

	mu        sync.Mutex
	cache     []Preset
	watermark time.Time // mtime of the file content the cache reflects
	lastCount int       // records reported to the preset-count gauge
}

// StoreOption configures a [Store].
type StoreOption func(*Store)

// WithFileSystem replaces the real filesystem. Tests use this to control
// modification times and to inject stat/read/write faults.
func WithFileSystem(fsys FileSystem) StoreOption {
	return func(s *Store) {
		if fsys != nil {
			s.fsys = fsys
		}
	}
}

// WithMetrics replaces the default instrument set. Tests pass one backed by
// a manual reader to assert on recorded values.
func WithMetrics(m *observe.Metrics) StoreOption {
	return func(s *Store) {
		if m != nil {
			s.metrics = m
		}
	}
}

// NewStore creates a store over the preset file at path. No I/O happens
// here: the file is first touched by the first operation, so a missing or
// broken file surfaces as [ErrStoreUnavailable] or [ErrStoreCorrupt] there,
// not at construction.
func NewStore(path string, opts ...StoreOption) *Store {
	s := &Store{
		path:    path,
		fsys:    osFS{},
		metrics: observe.DefaultMetrics(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Path returns the location of the backing file.
func (s *Store) Path() string {
	return s.path
}

// List returns a snapshot of all presets in file order. The returned slice
// is a copy; mutating it does not affect the store.
func (s *Store) List(ctx context.Context) (_ []Preset, err error) {
	ctx, span := observe.StartSpan(ctx, "store.list")
	defer span.End()
	defer s.measure(ctx, "list", time.Now(), &err)

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.reconcile(ctx); err != nil {
		return nil, err
	}
	return slices.Clone(s.cache), nil
}

// Add appends p to the collection and persists it, returning the id the
// record ended up with.
//
// When p.ID is negative, or collides with an existing record, a fresh id
// (max existing + 1, 0 for an empty store) is assigned. A colliding
// caller-supplied id is overridden silently rather than rejected; the
// returned id is authoritative. This is long-standing behaviour that client
// tooling depends on.
func (s *Store) Add(ctx context.Context, p Preset) (_ int, err error) {
	ctx, span := observe.StartSpan(ctx, "store.add")
	defer span.End()
	defer s.measure(ctx, "add", time.Now(), &err)

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.reconcile(ctx); err != nil {
		return 0, err
	}
	if verr := p.Validate(); verr != nil {
		return 0, fmt.Errorf("preset: %w: %w", ErrInvalidPreset, verr)
	}

	if p.ID < 0 || s.indexOf(p.ID) >= 0 {
		p.ID = nextID(s.cache)
	}
	s.cache = append(s.cache, p)

	if err := s.persist(ctx); err != nil {
		s.cache = s.cache[:len(s.cache)-1]
		s.metrics.RecordRollback(ctx, "add")
		return 0, err
	}
	s.updateGauge(ctx)
	return p.ID, nil
}

// Update replaces the record whose id equals p.ID, preserving its position
// in the collection, and persists the result. Returns [ErrNotFound] without
// mutating anything when the id is unknown.
func (s *Store) Update(ctx context.Context, p Preset) (_ int, err error) {
	ctx, span := observe.StartSpan(ctx, "store.update")
	defer span.End()
	defer s.measure(ctx, "update", time.Now(), &err)

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.reconcile(ctx); err != nil {
		return 0, err
	}
	if verr := p.Validate(); verr != nil {
		return 0, fmt.Errorf("preset: %w: %w", ErrInvalidPreset, verr)
	}

	idx := s.indexOf(p.ID)
	if idx < 0 {
		return 0, fmt.Errorf("preset: update preset id %d: %w", p.ID, ErrNotFound)
	}
	prev := s.cache[idx]
	s.cache[idx] = p

	if err := s.persist(ctx); err != nil {
		s.cache[idx] = prev
		s.metrics.RecordRollback(ctx, "update")
		return 0, err
	}
	return p.ID, nil
}

// Delete removes the record with the given id and persists the result.
// Returns [ErrNotFound] without mutating anything when the id is unknown.
func (s *Store) Delete(ctx context.Context, id int) (_ int, err error) {
	ctx, span := observe.StartSpan(ctx, "store.delete")
	defer span.End()
	defer s.measure(ctx, "delete", time.Now(), &err)

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.reconcile(ctx); err != nil {
		return 0, err
	}

	idx := s.indexOf(id)
	if idx < 0 {
		return 0, fmt.Errorf("preset: delete preset id %d: %w", id, ErrNotFound)
	}
	removed := s.cache[idx]
	s.cache = slices.Delete(s.cache, idx, idx+1)

	if err := s.persist(ctx); err != nil {
		// Reinsert at the original index so file order is restored exactly.
		s.cache = slices.Insert(s.cache, idx, removed)
		s.metrics.RecordRollback(ctx, "delete")
		return 0, err
	}
	s.updateGauge(ctx)
	return id, nil
}

// reconcile aligns the cache with the backing file. Callers must hold s.mu.
//
// The watermark check is an optimisation, not an isolation guarantee: an
// external writer racing within the filesystem's timestamp granularity can
// slip past it. Acceptable for the intended single-writer deployment.
func (s *Store) reconcile(ctx context.Context) error {
	info, err := s.fsys.Stat(s.path)
	if err != nil {
		return fmt.Errorf("preset: %w: %w", ErrStoreUnavailable, err)
	}
	if info.ModTime().Equal(s.watermark) {
		return nil
	}

	data, err := s.fsys.ReadFile(s.path)
	if err != nil {
		return fmt.Errorf("preset: %w: %w", ErrStoreUnavailable, err)
	}
	presets, err := decodePresets(data)
	if err != nil {
		return fmt.Errorf("preset: %w: file %q: %w", ErrStoreCorrupt, s.path, err)
	}

	// Swap cache and watermark only after every check passed. On any failure
	// above, the previous cache stays live (stale but consistent).
	s.cache = presets
	s.watermark = info.ModTime()
	s.metrics.RecordReload(ctx)
	s.updateGauge(ctx)
	observe.Logger(ctx).Info("preset file reloaded", "path", s.path, "presets", len(presets))
	return nil
}

// persist writes the whole cache to the backing file and refreshes the
// watermark. Callers must hold s.mu.
func (s *Store) persist(ctx context.Context) error {
	data, err := encodePresets(s.cache)
	if err != nil {
		return fmt.Errorf("preset: encode presets: %w", err)
	}
	if err := s.fsys.WriteFile(s.path, data, 0o644); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			// The file (or its directory) vanished between reconcile and here.
			return fmt.Errorf("preset: %w: %w", ErrStoreUnavailable, err)
		}
		return fmt.Errorf("preset: write preset file %q: %w", s.path, err)
	}

	// Best effort: observe our own write so the next reconcile skips the
	// re-read. If stat fails the next operation re-reads, which is correct,
	// just slower.
	if info, err := s.fsys.Stat(s.path); err == nil {
		s.watermark = info.ModTime()
	}
	return nil
}

// measure records the operation counter and duration histogram. The error
// pointer is read at defer time so the final outcome is captured.
func (s *Store) measure(ctx context.Context, op string, start time.Time, errp *error) {
	status := "ok"
	switch err := *errp; {
	case err == nil:
	case errors.Is(err, ErrNotFound):
		status = "not_found"
	case errors.Is(err, ErrInvalidPreset):
		status = "invalid_input"
	case errors.Is(err, ErrStoreCorrupt):
		status = "corrupt"
	case errors.Is(err, ErrStoreUnavailable):
		status = "unavailable"
	default:
		status = "error"
	}
	s.metrics.RecordOp(ctx, op, status, time.Since(start).Seconds())
}

// updateGauge reports the current record count as a delta against the last
// reported value. Callers must hold s.mu.
func (s *Store) updateGauge(ctx context.Context) {
	if n := len(s.cache); n != s.lastCount {
		s.metrics.AddPresetCount(ctx, int64(n-s.lastCount))
		s.lastCount = n
	}
}

// indexOf returns the cache position of the preset with the given id, or -1.
// Callers must hold s.mu.
func (s *Store) indexOf(id int) int {
	return slices.IndexFunc(s.cache, func(p Preset) bool { return p.ID == id })
}

// nextID picks the id for a new record: one past the highest id in use, 0
// for an empty collection.
func nextID(presets []Preset) int {
	next := 0
	for _, p := range presets {
		if p.ID >= next {
			next = p.ID + 1
		}
	}
	return next
}
