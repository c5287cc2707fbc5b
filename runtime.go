package schedsim

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/viant/schedsim/progress"
	"github.com/viant/schedsim/report"
	"github.com/viant/schedsim/runtime/simulation"
	"github.com/viant/schedsim/service/dao"
	"github.com/viant/schedsim/service/scheduler"
	"github.com/viant/schedsim/tracing"
)

// Runtime serialises every simulation operation under one mutex and records
// per tick history, progress and spans.
type Runtime struct {
	mux     sync.Mutex
	runID   string
	config  *Config
	sim     *simulation.Simulation
	logger  *slog.Logger
	history dao.Service[int, simulation.Snapshot]
	tracker *progress.Progress
	tracing bool
}

// RunID identifies the runtime in events and progress.
func (r *Runtime) RunID() string { return r.runID }

// Register adds a process whose program at location arrives at tick arrival.
func (r *Runtime) Register(location string, arrival, priority int) (int, error) {
	r.mux.Lock()
	defer r.mux.Unlock()
	return r.sim.Register(location, arrival, priority)
}

// LoadWorkload registers every configured process.
func (r *Runtime) LoadWorkload(ctx context.Context) error {
	r.mux.Lock()
	defer r.mux.Unlock()
	for _, spec := range r.config.Processes {
		if err := ctx.Err(); err != nil {
			return err
		}
		if _, err := r.sim.Register(spec.Location, spec.Arrival, spec.Priority); err != nil {
			return fmt.Errorf("failed to register %s: %w", spec.Location, err)
		}
	}
	return nil
}

// Step advances one tick.
func (r *Runtime) Step(ctx context.Context) (simulation.Status, error) {
	r.mux.Lock()
	defer r.mux.Unlock()
	return r.sim.Step(r.context(ctx))
}

// Run advances until completion or an input request.
func (r *Runtime) Run(ctx context.Context) (status simulation.Status, err error) {
	r.mux.Lock()
	defer r.mux.Unlock()
	ctx = r.context(ctx)
	if r.tracing {
		var span *tracing.Span
		ctx, span = tracing.StartSpan(ctx, "run")
		span.WithAttributes(map[string]string{"runID": r.runID, "algorithm": r.sim.Config().Algorithm.String()})
		defer func() {
			span.WithAttributes(map[string]string{"status": status.String()})
			tracing.EndSpan(span, err)
		}()
	}
	return r.sim.Run(ctx)
}

// SupplyInput answers the pending input request.
func (r *Runtime) SupplyInput(ctx context.Context, value string) error {
	r.mux.Lock()
	defer r.mux.Unlock()
	return r.sim.SupplyInput(r.context(ctx), value)
}

// Suspension returns the pending input request.
func (r *Runtime) Suspension() (simulation.Suspension, bool) {
	r.mux.Lock()
	defer r.mux.Unlock()
	return r.sim.Suspension()
}

// SetAlgorithm switches to fcfs, rr or mlfq; an active run is reset.
func (r *Runtime) SetAlgorithm(ctx context.Context, name string) error {
	kind, err := scheduler.ParseKind(name)
	if err != nil {
		return err
	}
	r.mux.Lock()
	defer r.mux.Unlock()
	active := r.sim.Active()
	if err = r.sim.SetAlgorithm(kind); err != nil {
		return err
	}
	r.config.Algorithm = kind.String()
	if active {
		return r.restart(ctx)
	}
	r.tracker.Restart(kind.String())
	return nil
}

// SetQuantum changes the quantum; an active run is reset.
func (r *Runtime) SetQuantum(ctx context.Context, quantum int) error {
	r.mux.Lock()
	defer r.mux.Unlock()
	active := r.sim.Active()
	if err := r.sim.SetQuantum(quantum); err != nil {
		return err
	}
	r.config.Quantum = quantum
	if active {
		return r.restart(ctx)
	}
	return nil
}

// Reset clears the simulation, its history and progress.
func (r *Runtime) Reset(ctx context.Context) error {
	r.mux.Lock()
	defer r.mux.Unlock()
	r.sim.Reset()
	return r.restart(ctx)
}

// Snapshot returns the observable state.
func (r *Runtime) Snapshot() *simulation.Snapshot {
	r.mux.Lock()
	defer r.mux.Unlock()
	return r.sim.Snapshot()
}

// Timeline returns the executed instruction record.
func (r *Runtime) Timeline() []simulation.Slot {
	r.mux.Lock()
	defer r.mux.Unlock()
	return r.sim.Timeline()
}

// History lists saved snapshots; each is the state after a closed tick.
func (r *Runtime) History(ctx context.Context, parameters ...*dao.Parameter) ([]*simulation.Snapshot, error) {
	return r.history.List(ctx, parameters...)
}

// Progress returns the current counters without waiting for a running tick.
func (r *Runtime) Progress() progress.Progress {
	return r.tracker.Snapshot()
}

// OnProgress registers a callback invoked after every tick.
func (r *Runtime) OnProgress(cb func(progress.Progress)) {
	r.tracker.OnChange(cb)
}

// Report renders the process summary followed by the Gantt chart.
func (r *Runtime) Report() string {
	r.mux.Lock()
	defer r.mux.Unlock()
	builder := strings.Builder{}
	builder.WriteString(report.Summary(r.sim.Entries()))
	builder.WriteString("\n")
	builder.WriteString(report.Gantt(r.sim.Timeline()))
	return builder.String()
}

func (r *Runtime) context(ctx context.Context) context.Context {
	return progress.WithTracker(ctx, r.tracker)
}

// observe runs inside the simulation after every closed tick.
func (r *Runtime) observe(ctx context.Context, slot simulation.Slot) {
	snapshot := r.sim.Snapshot()
	if err := r.history.Save(ctx, snapshot); err != nil {
		r.logger.Warn("snapshot not saved", "tick", slot.Tick, "error", err)
	}
	stats := snapshot.Stats
	progress.ObserveCtx(ctx, snapshot.Tick, progress.Counters{
		Total:     stats.Total,
		Pending:   stats.Pending,
		Ready:     stats.Ready,
		Running:   stats.Running,
		Blocked:   stats.Blocked,
		Completed: stats.Completed,
	})
	if !r.tracing {
		return
	}
	_, span := tracing.StartSpan(ctx, "tick")
	span.WithInt("tick", slot.Tick).WithInt("pid", slot.ProcessID)
	if slot.Instruction != "" {
		span.WithAttributes(map[string]string{"instruction": slot.Instruction})
	}
	tracing.EndSpan(span, nil)
}

func (r *Runtime) restart(ctx context.Context) error {
	r.tracker.Restart(r.sim.Config().Algorithm.String())
	snapshots, err := r.history.List(ctx)
	if err != nil {
		return err
	}
	var errs []error
	for _, snapshot := range snapshots {
		if err = r.history.Delete(ctx, snapshot.Tick); err != nil && !errors.Is(err, dao.ErrNotFound) {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
