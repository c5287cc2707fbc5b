package progress

import (
	"context"
	"sync"
	"time"
)

// Counters mirrors the process lifecycle distribution after a tick.
type Counters struct {
	Total     int
	Pending   int
	Ready     int
	Running   int
	Blocked   int
	Completed int
}

// Progress tracks one simulation run. It is safe for concurrent use.
type Progress struct {
	RunID     string
	Algorithm string
	StartedAt time.Time

	Tick int
	Counters

	sync.Mutex
	onChange func(Progress)
}

// Observe records the counters reached at tick. The onChange callback runs
// outside the lock with a copy of the tracker.
func (p *Progress) Observe(tick int, counters Counters) {
	if p == nil {
		return
	}
	p.Lock()
	p.Tick = tick
	p.Counters = counters
	snapshot := p.copy()
	cb := p.onChange
	p.Unlock()
	if cb != nil {
		cb(snapshot)
	}
}

// Done reports whether every registered process completed.
func (p *Progress) Done() bool {
	s := p.Snapshot()
	return s.Total > 0 && s.Completed == s.Total
}

// Snapshot returns a copy for read-only inspection.
func (p *Progress) Snapshot() Progress {
	if p == nil {
		return Progress{}
	}
	p.Lock()
	defer p.Unlock()
	return p.copy()
}

func (p *Progress) copy() Progress {
	return Progress{RunID: p.RunID, Algorithm: p.Algorithm, StartedAt: p.StartedAt, Tick: p.Tick, Counters: p.Counters}
}

// Restart clears counters for a new run of algorithm.
func (p *Progress) Restart(algorithm string) {
	if p == nil {
		return
	}
	p.Lock()
	p.Algorithm = algorithm
	p.StartedAt = time.Now()
	p.Tick = 0
	p.Counters = Counters{}
	p.Unlock()
}

// OnChange registers the callback invoked after every Observe; nil disables it.
func (p *Progress) OnChange(cb func(Progress)) {
	if p == nil {
		return
	}
	p.Lock()
	p.onChange = cb
	p.Unlock()
}

type trackerKeyT struct{}

var trackerKey trackerKeyT

// WithNewTracker embeds a new tracker in a derived context.
func WithNewTracker(ctx context.Context, runID, algorithm string, onChange func(Progress)) (context.Context, *Progress) {
	if ctx == nil {
		ctx = context.Background()
	}
	tr := &Progress{
		RunID:     runID,
		Algorithm: algorithm,
		StartedAt: time.Now(),
		onChange:  onChange,
	}
	return context.WithValue(ctx, trackerKey, tr), tr
}

// WithTracker embeds an existing tracker in ctx.
func WithTracker(ctx context.Context, tr *Progress) context.Context {
	if tr == nil {
		return ctx
	}
	return context.WithValue(ctx, trackerKey, tr)
}

// FromContext extracts the tracker from ctx.
func FromContext(ctx context.Context) (*Progress, bool) {
	if ctx == nil {
		return nil, false
	}
	tr, ok := ctx.Value(trackerKey).(*Progress)
	return tr, ok
}

// GetSnapshot combines FromContext and Snapshot.
func GetSnapshot(ctx context.Context) (Progress, bool) {
	if tr, ok := FromContext(ctx); ok {
		return tr.Snapshot(), true
	}
	return Progress{}, false
}

// ObserveCtx applies counters to the tracker carried by ctx, if any.
func ObserveCtx(ctx context.Context, tick int, counters Counters) {
	if tr, ok := FromContext(ctx); ok {
		tr.Observe(tick, counters)
	}
}
