package simulation

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/viant/schedsim/model/memory"
	"github.com/viant/schedsim/model/mutex"
	"github.com/viant/schedsim/model/process"
	"github.com/viant/schedsim/model/variable"
)

// EndOfProgram is reported as the current instruction when the CPU is idle.
const EndOfProgram = "End of program"

// Stats counts processes by lifecycle state.
type Stats struct {
	Total     int `json:"total"`
	Pending   int `json:"pending"`
	Ready     int `json:"ready"`
	Running   int `json:"running"`
	Blocked   int `json:"blocked"`
	Completed int `json:"completed"`
}

// Snapshot is a read-only view of the simulation after a tick.
type Snapshot struct {
	Tick               int                 `json:"tick"`
	Algorithm          string              `json:"algorithm"`
	Quantum            int                 `json:"quantum"`
	Running            int                 `json:"running,omitempty"`
	CurrentInstruction string              `json:"currentInstruction"`
	Suspension         *Suspension         `json:"suspension,omitempty"`
	Processes          []*process.Entry    `json:"processes"`
	Memory             []memory.Word       `json:"memory"`
	Mutexes            []mutex.Status      `json:"mutexes"`
	Queues             [][]int             `json:"queues"`
	Variables          []variable.Variable `json:"variables,omitempty"`
	Output             []string            `json:"output,omitempty"`
	Stats              Stats               `json:"stats"`
}

// Stats returns current process counters.
func (s *Simulation) Stats() Stats {
	ret := Stats{Total: s.table.Len()}
	for _, entry := range s.table.Entries() {
		switch {
		case entry.Complete:
			ret.Completed++
		case entry.PCB == nil:
			ret.Pending++
		default:
			switch entry.PCB.State {
			case process.StateRunning:
				ret.Running++
			case process.StateBlocked:
				ret.Blocked++
			default:
				ret.Ready++
			}
		}
	}
	return ret
}

// Snapshot returns a deep copy of the observable state. The PCB mirror words
// of the memory view are derived from live PCBs.
func (s *Simulation) Snapshot() *Snapshot {
	ret := &Snapshot{
		Tick:               s.time,
		Algorithm:          s.config.Algorithm.String(),
		Quantum:            s.config.Scheduler.Quantum,
		CurrentInstruction: EndOfProgram,
		Memory:             s.arena.Words(),
		Mutexes:            s.locks.Status(),
		Queues:             s.scheduler.Queues(),
		Variables:          s.variables.Variables(),
		Output:             s.Output(),
		Stats:              s.Stats(),
	}
	if s.running != nil {
		ret.Running = s.running.ID
		ret.CurrentInstruction = s.instruction(s.running.PCB)
	}
	if s.suspended != nil {
		suspension := *s.suspended
		ret.Suspension = &suspension
	}
	for _, entry := range s.table.Entries() {
		ret.Processes = append(ret.Processes, entry.Clone())
		if entry.PCB != nil {
			mirror(ret.Memory, entry.PCB)
		}
	}
	return ret
}

func mirror(words []memory.Word, pcb *process.PCB) {
	values := [memory.PCBSlots]string{
		strconv.Itoa(pcb.ID),
		string(pcb.State),
		strconv.Itoa(pcb.Priority),
		strconv.Itoa(pcb.ProgramCounter),
		strconv.Itoa(pcb.LowerBound),
		strconv.Itoa(pcb.UpperBound),
	}
	base := pcb.UpperBound - memory.PCBSlots + 1
	for i, value := range values {
		if index := base + i; index >= 0 && index < len(words) {
			words[index].Value = value
		}
	}
}

// Validate checks that every live PCB sits in exactly one structure and
// stays within its arena block.
func (s *Simulation) Validate() error {
	var errs []error
	members := map[int]int{}
	queues := s.scheduler.Queues()
	for level, ids := range queues {
		for _, id := range ids {
			members[id]++
			if entry, ok := s.table.Entry(id); !ok || entry.PCB == nil || entry.PCB.Location != process.Ready(level) {
				errs = append(errs, fmt.Errorf("pid %d queued at level %d with mismatched location", id, level))
			}
		}
	}
	for _, status := range s.locks.Status() {
		for _, id := range status.Blocked {
			members[id]++
			if entry, ok := s.table.Entry(id); !ok || entry.PCB == nil || entry.PCB.Location != process.BlockedOn(status.Name) {
				errs = append(errs, fmt.Errorf("pid %d blocked on %s with mismatched location", id, status.Name))
			}
		}
	}
	if s.running != nil {
		members[s.running.ID]++
		if s.running.PCB == nil || s.running.PCB.Location != process.Running() {
			errs = append(errs, fmt.Errorf("pid %d running with mismatched location", s.running.ID))
		}
	}
	words := s.arena.Words()
	for _, entry := range s.table.Entries() {
		if !entry.Live() {
			if members[entry.ID] != 0 {
				errs = append(errs, fmt.Errorf("pid %d without PCB is still scheduled", entry.ID))
			}
			continue
		}
		pcb := entry.PCB
		if members[entry.ID] != 1 {
			errs = append(errs, fmt.Errorf("pid %d is a member of %d structures", entry.ID, members[entry.ID]))
		}
		if entry.BurstTime != pcb.UpperBound-pcb.LowerBound-(memory.Reserved-1) {
			errs = append(errs, fmt.Errorf("pid %d burst %d does not match bounds [%d,%d]", entry.ID, entry.BurstTime, pcb.LowerBound, pcb.UpperBound))
		}
		if pcb.ProgramCounter < pcb.LowerBound || pcb.ProgramCounter > pcb.LastInstruction() {
			errs = append(errs, fmt.Errorf("pid %d program counter %d outside [%d,%d]", entry.ID, pcb.ProgramCounter, pcb.LowerBound, pcb.LastInstruction()))
		}
		for i := pcb.LowerBound; i <= pcb.UpperBound && i < len(words); i++ {
			if words[i].Owner != entry.ID {
				errs = append(errs, fmt.Errorf("pid %d block word %d owned by %d", entry.ID, i, words[i].Owner))
				break
			}
		}
	}
	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %w", ErrInconsistent, errors.Join(errs...))
}
