// Package state holds the planner's in-memory application state behind
// an explicit, constructor-injected container. Consumers depend on the
// Container value they are handed, never on a process-wide global.
package state

import (
	"sync"
	"time"

	"learning-planner/internal/domain"
)

// AppState is the full in-memory state tree.
type AppState struct {
	Courses  []domain.Course
	Notes    []domain.Note
	Progress domain.Progress
	Roadmap  domain.Roadmap
	Settings domain.Settings
}

// Container guards an AppState and notifies subscribers on every change.
// All mutation goes through Update (or the typed operations below), so a
// subscriber sees exactly one notification per logical change.
type Container struct {
	mu      sync.RWMutex
	state   AppState
	version uint64

	subMu   sync.Mutex
	subs    map[int]chan struct{}
	nextSub int
}

// New returns a container seeded with empty collections and zeroed
// rolling progress windows anchored at now.
func New(now time.Time) *Container {
	return &Container{
		state: AppState{Progress: domain.NewProgress(now)},
		subs:  map[int]chan struct{}{},
	}
}

// Snapshot returns a deep copy of the current state.
func (c *Container) Snapshot() AppState {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return copyState(c.state)
}

// Version returns a counter incremented by every Update.
func (c *Container) Version() uint64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.version
}

// Update applies fn to the state under the write lock and notifies
// subscribers once.
func (c *Container) Update(fn func(*AppState)) {
	c.mu.Lock()
	fn(&c.state)
	c.version++
	c.mu.Unlock()
	c.notify()
}

// Subscribe registers for change notifications. The channel is
// coalescing: sends never block, so a burst of updates may surface as a
// single wakeup. The returned cancel func releases the subscription.
func (c *Container) Subscribe() (<-chan struct{}, func()) {
	c.subMu.Lock()
	defer c.subMu.Unlock()
	id := c.nextSub
	c.nextSub++
	ch := make(chan struct{}, 1)
	c.subs[id] = ch
	return ch, func() {
		c.subMu.Lock()
		defer c.subMu.Unlock()
		delete(c.subs, id)
	}
}

func (c *Container) notify() {
	c.subMu.Lock()
	defer c.subMu.Unlock()
	for _, ch := range c.subs {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
}

func copyState(s AppState) AppState {
	out := s
	out.Courses = make([]domain.Course, len(s.Courses))
	copy(out.Courses, s.Courses)
	for i := range out.Courses {
		out.Courses[i].Tags = append([]string(nil), s.Courses[i].Tags...)
		out.Courses[i].Modules = copyModules(s.Courses[i].Modules)
	}
	out.Notes = make([]domain.Note, len(s.Notes))
	copy(out.Notes, s.Notes)
	for i := range out.Notes {
		out.Notes[i] = copyNote(s.Notes[i])
	}
	out.Progress.Last7Days = append([]domain.DayRecord(nil), s.Progress.Last7Days...)
	out.Progress.Last30Days = append([]domain.DayRecord(nil), s.Progress.Last30Days...)
	out.Roadmap.Modules = copyModules(s.Roadmap.Modules)
	return out
}

func copyModules(in []domain.CourseModule) []domain.CourseModule {
	out := append([]domain.CourseModule(nil), in...)
	for i := range out {
		out[i].Prerequisites = append([]string(nil), in[i].Prerequisites...)
	}
	return out
}

func copyNote(n domain.Note) domain.Note {
	out := n
	out.Tags = append([]string(nil), n.Tags...)
	if n.Position != nil {
		p := *n.Position
		out.Position = &p
	}
	if n.Size != nil {
		sz := *n.Size
		out.Size = &sz
	}
	if n.Reminder != nil {
		r := *n.Reminder
		out.Reminder = &r
	}
	if n.Checklist != nil {
		out.Checklist = &domain.NoteChecklistInfo{
			Items: append([]domain.ChecklistItem(nil), n.Checklist.Items...),
		}
	}
	return out
}
