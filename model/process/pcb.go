package process

import "github.com/viant/schedsim/model/memory"

// PCB is the process control block of a process that holds an arena block.
type PCB struct {
	ID             int      `json:"id"`
	State          State    `json:"state"`
	Priority       int      `json:"priority"`
	ProgramCounter int      `json:"programCounter"`
	LowerBound     int      `json:"lowerBound"`
	UpperBound     int      `json:"upperBound"`
	Location       Location `json:"location"`
}

// LastInstruction returns the arena index of the final instruction.
func (p *PCB) LastInstruction() int {
	return p.UpperBound - memory.Reserved
}

// Done reports whether the program counter moved past the last instruction.
func (p *PCB) Done() bool {
	return p.ProgramCounter > p.LastInstruction()
}

// BurstTime returns the number of instructions in the block.
func (p *PCB) BurstTime() int {
	return p.UpperBound - p.LowerBound - (memory.Reserved - 1)
}

// NewPCB creates a PCB in state NEW for a block at lower holding instructions lines.
func NewPCB(id, priority, lower, instructions int) *PCB {
	return &PCB{
		ID:             id,
		State:          StateNew,
		Priority:       priority,
		ProgramCounter: lower,
		LowerBound:     lower,
		UpperBound:     lower + memory.BlockSize(instructions) - 1,
	}
}
