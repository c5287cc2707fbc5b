package process

// Entry is the persistent process table record. It outlives its PCB.
type Entry struct {
	ID               int    `json:"id"`
	Filename         string `json:"filename"`
	Priority         int    `json:"priority"`
	ArrivalTime      int    `json:"arrivalTime"`
	BurstTime        int    `json:"burstTime"`
	ExecutedTime     int    `json:"executedTime"`
	WaitingTime      int    `json:"waitingTime"`
	CompletionTime   int    `json:"completionTime"`
	Arrived          bool   `json:"arrived"`
	Complete         bool   `json:"complete"`
	QueueLevel       int    `json:"queueLevel"`
	QuantumRemaining int    `json:"quantumRemaining"`
	PCB              *PCB   `json:"pcb,omitempty"`
}

// Live reports whether the entry has an admitted, unfinished process.
func (e *Entry) Live() bool {
	return e.Arrived && !e.Complete && e.PCB != nil
}

// Turnaround returns completion minus arrival, or -1 while incomplete.
func (e *Entry) Turnaround() int {
	if !e.Complete {
		return -1
	}
	return e.CompletionTime - e.ArrivalTime
}

// State returns the PCB state, NEW before admission, TERMINATED after release.
func (e *Entry) State() State {
	switch {
	case e.PCB != nil:
		return e.PCB.State
	case e.Complete:
		return StateTerminated
	}
	return StateNew
}

// Clone returns a deep copy.
func (e *Entry) Clone() *Entry {
	ret := *e
	if e.PCB != nil {
		pcb := *e.PCB
		ret.PCB = &pcb
	}
	return &ret
}
