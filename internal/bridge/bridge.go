// Package bridge keeps the in-memory state container consistent with
// the durable store: one hydration at startup, then debounced
// persistence on every state change.
package bridge

import (
	"context"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"learning-planner/internal/domain"
	"learning-planner/internal/state"
	"learning-planner/internal/store"
)

// DefaultDebounce collapses a burst of edits into a single write. A
// policy knob, not a correctness requirement: a clean shutdown still
// flushes whatever is pending.
const DefaultDebounce = 500 * time.Millisecond

// Options tune the bridge.
type Options struct {
	// Debounce overrides DefaultDebounce when positive.
	Debounce time.Duration
}

// Bridge is the sync loop between a state container and the store.
type Bridge struct {
	store    store.Store
	state    *state.Container
	log      *zap.Logger
	debounce time.Duration
	errs     chan error
	ready    chan struct{}
	hydrated atomic.Bool
}

// New wires a bridge. Nothing is read or written until Run (or Hydrate)
// is called.
func New(s store.Store, c *state.Container, log *zap.Logger, opts Options) *Bridge {
	if log == nil {
		log = zap.NewNop()
	}
	debounce := opts.Debounce
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	return &Bridge{
		store:    s,
		state:    c,
		log:      log,
		debounce: debounce,
		errs:     make(chan error, 8),
		ready:    make(chan struct{}),
	}
}

// Ready is closed once Run has hydrated and subscribed: edits made after
// Ready fires are guaranteed to be observed by the persist loop.
func (b *Bridge) Ready() <-chan struct{} { return b.ready }

// Errors exposes background persistence failures. Sends are
// non-blocking: if nobody drains the channel the failure is still
// logged, never lost silently and never able to stall the loop.
func (b *Bridge) Errors() <-chan error { return b.errs }

// Hydrate populates the container from the store, once. Records that do
// not exist yet leave the container's defaults untouched. The bridge
// refuses to persist before hydration so durable state can never be
// clobbered by empty in-memory defaults.
func (b *Bridge) Hydrate(ctx context.Context) error {
	courses, err := store.All[domain.Course](ctx, b.store, store.Courses)
	if err != nil {
		return err
	}
	notes, err := store.All[domain.Note](ctx, b.store, store.Notes)
	if err != nil {
		return err
	}
	progress, haveProgress, err := store.One[domain.Progress](ctx, b.store, store.Progress, store.ProgressID)
	if err != nil {
		return err
	}
	roadmap, haveRoadmap, err := store.One[domain.Roadmap](ctx, b.store, store.Roadmaps, store.RoadmapID)
	if err != nil {
		return err
	}
	settings, haveSettings, err := store.One[domain.Settings](ctx, b.store, store.UserData, store.SettingsID)
	if err != nil {
		return err
	}

	b.state.Update(func(s *state.AppState) {
		if len(courses) > 0 {
			s.Courses = courses
		}
		if len(notes) > 0 {
			s.Notes = notes
		}
		if haveProgress {
			s.Progress = progress
		}
		if haveRoadmap {
			s.Roadmap = roadmap
		}
		if haveSettings {
			s.Settings = settings
		}
	})
	b.hydrated.Store(true)
	b.log.Info("state hydrated",
		zap.Int("courses", len(courses)),
		zap.Int("notes", len(notes)))
	return nil
}

// Persist writes the full state in fixed order: courses, progress,
// roadmap, settings, notes. Presentations are read-but-preserved and
// never written from in-memory state. A reader racing this writer may
// observe some collections updated before others; within one save the
// order above always holds.
func (b *Bridge) Persist(ctx context.Context) error {
	if !b.hydrated.Load() {
		return errNotHydrated
	}
	s := b.state.Snapshot()
	if err := store.ReplaceAll(ctx, b.store, store.Courses, s.Courses,
		func(c domain.Course) string { return c.ID }); err != nil {
		return err
	}
	if err := store.PutOne(ctx, b.store, store.Progress, store.ProgressID, s.Progress); err != nil {
		return err
	}
	if err := store.PutOne(ctx, b.store, store.Roadmaps, store.RoadmapID, s.Roadmap); err != nil {
		return err
	}
	if err := store.PutOne(ctx, b.store, store.UserData, store.SettingsID, s.Settings); err != nil {
		return err
	}
	return store.ReplaceAll(ctx, b.store, store.Notes, s.Notes,
		func(n domain.Note) string { return n.ID })
}

// Run hydrates once and then persists on changes, debounced. Each state
// change restarts the timer; only a timer that fires undisturbed writes.
// On context cancellation any pending dirty state is flushed before
// returning, so a clean shutdown drops no edits. Run returns nil on
// cancellation.
func (b *Bridge) Run(ctx context.Context) error {
	if err := b.Hydrate(ctx); err != nil {
		return err
	}
	changes, cancel := b.state.Subscribe()
	defer cancel()
	close(b.ready)

	timer := time.NewTimer(b.debounce)
	if !timer.Stop() {
		<-timer.C
	}
	var pending <-chan time.Time
	dirty := false

	for {
		select {
		case <-ctx.Done():
			if dirty {
				// detached context: the loop's context is already gone
				flushCtx, flushCancel := context.WithTimeout(context.Background(), 5*time.Second)
				err := b.Persist(flushCtx)
				flushCancel()
				if err != nil {
					b.report(err)
				} else {
					b.log.Info("flushed pending state on shutdown")
				}
			}
			return nil
		case <-changes:
			dirty = true
			if pending != nil && !timer.Stop() {
				<-timer.C
			}
			timer.Reset(b.debounce)
			pending = timer.C
		case <-pending:
			pending = nil
			dirty = false
			if err := b.Persist(ctx); err != nil {
				dirty = true
				b.report(err)
			} else {
				b.log.Debug("state persisted")
			}
		}
	}
}

func (b *Bridge) report(err error) {
	b.log.Error("persist failed", zap.Error(err))
	select {
	case b.errs <- err:
	default:
	}
}
