package simulation

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/viant/schedsim/model/memory"
	"github.com/viant/schedsim/model/process"
	"github.com/viant/schedsim/model/variable"
	"github.com/viant/schedsim/service/event"
	"github.com/viant/schedsim/service/interpreter"
)

// Step advances exactly one tick: admit arrivals, dispatch when the CPU is
// idle, execute one instruction and apply block, termination or quantum
// rules.
func (s *Simulation) Step(ctx context.Context) (Status, error) {
	if s.suspended != nil {
		return StatusSuspended, ErrSuspended
	}
	if s.table.AllComplete() {
		return StatusComplete, nil
	}
	s.admitArrivals(ctx)
	if s.running == nil {
		if err := s.dispatch(ctx); err != nil {
			return StatusPending, err
		}
	}
	if s.running == nil {
		s.idle(ctx)
		return StatusPending, nil
	}

	pcb := s.running.PCB
	instruction := s.instruction(pcb)
	outcome := s.interpreter.Execute(ctx, pcb, instruction)
	s.report(ctx, pcb.ID, outcome)
	if outcome.Input != "" {
		s.suspended = &Suspension{
			Variable:  outcome.Input,
			ProcessID: pcb.ID,
			Numeric:   variable.RequiresNumeric(outcome.Input),
			outcome:   outcome,
		}
		s.logger.Info("awaiting input", "pid", pcb.ID, "tick", s.time, "variable", outcome.Input)
		s.publish(ctx, event.TypeSuspended, pcb.ID, outcome.Input)
		return StatusSuspended, nil
	}
	if err := s.finish(ctx, instruction, outcome); err != nil {
		return StatusPending, err
	}
	return s.status(), nil
}

// Run steps until every process terminated or an input request suspends
// the tick. Calling it again after SupplyInput continues the run.
func (s *Simulation) Run(ctx context.Context) (Status, error) {
	for ticks := 0; ; ticks++ {
		if err := ctx.Err(); err != nil {
			return StatusPending, err
		}
		if ticks >= s.config.MaxTicks {
			return StatusPending, fmt.Errorf("%w: %d", ErrTickLimit, s.config.MaxTicks)
		}
		status, err := s.Step(ctx)
		if err != nil || status != StatusPending {
			return status, err
		}
		if s.deadlocked() {
			return StatusPending, fmt.Errorf("%w at tick %d", ErrDeadlock, s.time)
		}
	}
}

// SupplyInput completes the suspended tick with value. Variables whose name
// starts with a lowercase letter accept integers only; a rejected value
// leaves the suspension in place.
func (s *Simulation) SupplyInput(ctx context.Context, value string) error {
	if s.suspended == nil {
		return ErrNotSuspended
	}
	value = strings.TrimSpace(value)
	suspension := s.suspended
	if suspension.Numeric && !variable.IsNumeric(value) {
		s.logger.Warn("input rejected", "pid", suspension.ProcessID, "tick", s.time, "variable", suspension.Variable, "value", value)
		return fmt.Errorf("%w: %s requires an integer, got %q", ErrInvalidInput, suspension.Variable, value)
	}
	s.suspended = nil
	pcb := s.running.PCB
	if err := s.interpreter.Assign(pcb, suspension.Variable, value); err != nil {
		s.report(ctx, pcb.ID, &interpreter.Outcome{Err: err})
	}
	s.publish(ctx, event.TypeResumed, pcb.ID, suspension.Variable+"="+value)
	return s.finish(ctx, s.instruction(pcb), suspension.outcome)
}

func (s *Simulation) status() Status {
	if s.table.AllComplete() {
		return StatusComplete
	}
	return StatusPending
}

// admitArrivals materializes PCBs for reached arrivals, highest priority first.
// Entries whose program cannot be read or placed are retried next tick.
func (s *Simulation) admitArrivals(ctx context.Context) {
	for _, entry := range s.table.Pending(s.time) {
		if err := s.admit(ctx, entry); err != nil {
			s.logger.Warn("process creation deferred", "pid", entry.ID, "tick", s.time, "error", err)
			s.publish(ctx, event.TypeDeferred, entry.ID, err.Error())
			continue
		}
		s.logger.Debug("process arrived", "pid", entry.ID, "tick", s.time, "lower", entry.PCB.LowerBound, "upper", entry.PCB.UpperBound)
		s.publish(ctx, event.TypeArrived, entry.ID, entry.Filename)
	}
}

func (s *Simulation) admit(ctx context.Context, entry *process.Entry) error {
	prog, err := s.loader.Load(ctx, entry.Filename)
	if err != nil {
		return err
	}
	size := memory.BlockSize(len(prog.Instructions))
	offset, err := s.arena.Allocate(entry.ID, size)
	if err != nil {
		return err
	}
	if err = s.arena.Load(offset, prog.Instructions); err != nil {
		s.arena.Deallocate(entry.ID)
		return err
	}
	pcb := process.NewPCB(entry.ID, entry.Priority, offset, len(prog.Instructions))
	entry.PCB = pcb
	entry.BurstTime = pcb.BurstTime()
	entry.Arrived = true
	return s.scheduler.Admit(entry)
}

func (s *Simulation) dispatch(ctx context.Context) error {
	entry, err := s.scheduler.Next()
	if err != nil || entry == nil {
		return err
	}
	s.running = entry
	s.logger.Debug("process dispatched", "pid", entry.ID, "tick", s.time, "level", entry.QueueLevel, "quantum", entry.QuantumRemaining)
	s.publish(ctx, event.TypeDispatched, entry.ID, "")
	return nil
}

func (s *Simulation) instruction(pcb *process.PCB) string {
	word, err := s.arena.Read(pcb.ProgramCounter)
	if err != nil {
		return ""
	}
	return word.Value
}

// idle advances a tick in which nothing could run.
func (s *Simulation) idle(ctx context.Context) {
	for _, entry := range s.table.Entries() {
		if entry.Live() {
			entry.WaitingTime++
		}
	}
	s.close(ctx, Slot{Tick: s.time})
}

// close records slot and advances the clock.
func (s *Simulation) close(ctx context.Context, slot Slot) {
	s.timeline = append(s.timeline, slot)
	s.time++
	if s.observer != nil {
		s.observer(ctx, slot)
	}
}

// finish applies the bookkeeping of an executed instruction and closes the tick.
func (s *Simulation) finish(ctx context.Context, instruction string, outcome *interpreter.Outcome) error {
	entry := s.running
	pcb := entry.PCB
	if outcome.Woken != nil {
		if err := s.wake(ctx, outcome.Woken); err != nil {
			return err
		}
	}
	pcb.ProgramCounter++
	entry.ExecutedTime++
	s.scheduler.Charge(entry)
	for _, other := range s.table.Entries() {
		if other != entry && other.Live() {
			other.WaitingTime++
		}
	}
	slot := Slot{Tick: s.time, ProcessID: entry.ID, Instruction: instruction}

	switch {
	case outcome.Blocked:
		s.running = nil
		s.logger.Debug("process blocked", "pid", entry.ID, "tick", s.time, "resource", pcb.Location.Resource)
		s.publish(ctx, event.TypeBlocked, entry.ID, pcb.Location.Resource)
	case pcb.Done():
		if err := s.terminate(ctx, entry); err != nil {
			return err
		}
	default:
		released, err := s.scheduler.Preempt(entry)
		if err != nil {
			return err
		}
		if released {
			s.running = nil
			s.publish(ctx, event.TypePreempted, entry.ID, strconv.Itoa(entry.QueueLevel))
		}
	}
	s.close(ctx, slot)
	return nil
}

func (s *Simulation) wake(ctx context.Context, pcb *process.PCB) error {
	entry, ok := s.table.Entry(pcb.ID)
	if !ok {
		return fmt.Errorf("%w: woken pid %d not in table", ErrInconsistent, pcb.ID)
	}
	if err := s.scheduler.Resume(entry); err != nil {
		return err
	}
	s.logger.Debug("process woken", "pid", entry.ID, "tick", s.time, "level", entry.QueueLevel)
	s.publish(ctx, event.TypeWoken, entry.ID, "")
	return nil
}

// terminate releases held locks, the arena block and the PCB; the table
// entry is kept for statistics.
func (s *Simulation) terminate(ctx context.Context, entry *process.Entry) error {
	pcb := entry.PCB
	if err := pcb.MoveTo(process.None()); err != nil {
		return err
	}
	pcb.State = process.StateTerminated
	s.running = nil
	entry.Complete = true
	entry.CompletionTime = s.time + 1
	for _, woken := range s.locks.ReleaseAll(pcb) {
		if err := s.wake(ctx, woken); err != nil {
			return err
		}
	}
	s.arena.Deallocate(entry.ID)
	entry.PCB = nil
	s.logger.Info("process terminated", "pid", entry.ID, "tick", s.time, "waiting", entry.WaitingTime, "turnaround", entry.Turnaround())
	s.publish(ctx, event.TypeTerminated, entry.ID, "")
	return nil
}

// deadlocked reports whether every unfinished process is parked on a mutex
// and nothing else can arrive.
func (s *Simulation) deadlocked() bool {
	if s.running != nil || s.scheduler.Len() > 0 {
		return false
	}
	blocked := 0
	for _, entry := range s.table.Entries() {
		if entry.Complete {
			continue
		}
		if !entry.Live() || entry.PCB.State != process.StateBlocked {
			return false
		}
		blocked++
	}
	return blocked > 0
}

func (s *Simulation) report(ctx context.Context, pid int, outcome *interpreter.Outcome) {
	for _, message := range outcome.Output {
		s.output = append(s.output, message)
		s.publish(ctx, event.TypeOutput, pid, message)
	}
	if outcome.Err != nil {
		message := "Error: " + outcome.Err.Error()
		s.output = append(s.output, message)
		s.logger.Warn("instruction failed", "pid", pid, "tick", s.time, "error", outcome.Err)
		s.publish(ctx, event.TypeError, pid, outcome.Err.Error())
	}
}

func (s *Simulation) publish(ctx context.Context, eventType string, pid int, data string) {
	if s.publisher == nil {
		return
	}
	e := event.NewEvent(&event.Context{Tick: s.time, ProcessID: pid, EventType: eventType}, data)
	if err := s.publisher.Publish(ctx, e); err != nil {
		s.logger.Debug("event dropped", "type", eventType, "error", err)
	}
}
