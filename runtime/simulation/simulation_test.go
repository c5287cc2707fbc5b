package simulation

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/viant/schedsim/model/memory"
	"github.com/viant/schedsim/model/mutex"
	"github.com/viant/schedsim/model/process"
	"github.com/viant/schedsim/service/fileio"
	"github.com/viant/schedsim/service/program"
	"github.com/viant/schedsim/service/scheduler"
)

type registration struct {
	location string
	arrival  int
	priority int
}

func repeat(line string, count int) string {
	return strings.Repeat(line+"\n", count)
}

func newSimulation(t *testing.T, config Config, programs map[string]string) *Simulation {
	dir := t.TempDir()
	for name, text := range programs {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(text), 0644); err != nil {
			t.Fatal(err)
		}
	}
	sim, err := New(config,
		WithFiles(fileio.New(nil, dir)),
		WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))))
	if err != nil {
		t.Fatal(err)
	}
	return sim
}

func register(t *testing.T, sim *Simulation, registrations []registration) {
	for _, r := range registrations {
		_, err := sim.Register(r.location, r.arrival, r.priority)
		assert.NoError(t, err)
	}
}

// drain steps until completion, validating state at every tick boundary.
func drain(t *testing.T, sim *Simulation, limit int) {
	ctx := context.Background()
	for i := 0; i < limit; i++ {
		status, err := sim.Step(ctx)
		if !assert.NoError(t, err) {
			return
		}
		if !assert.NoError(t, sim.Validate(), "tick %d", sim.Time()) {
			return
		}
		if status == StatusComplete {
			return
		}
	}
	t.Fatalf("simulation did not complete in %d ticks", limit)
}

func executed(sim *Simulation) []int {
	var ret []int
	for _, slot := range sim.Timeline() {
		ret = append(ret, slot.ProcessID)
	}
	return ret
}

func withAlgorithm(kind scheduler.Kind, quantum int) Config {
	config := DefaultConfig()
	config.Algorithm = kind
	config.Scheduler.Quantum = quantum
	return config
}

func TestSimulation_Schedules(t *testing.T) {
	var testCases = []struct {
		description   string
		config        Config
		programs      map[string]string
		registrations []registration
		expectOrder   []int
		expectDone    map[int]int
		expectWaiting map[int]int
	}{
		{
			description:   "fcfs single process",
			config:        withAlgorithm(scheduler.FCFS, 4),
			programs:      map[string]string{"p.txt": "assign a 1\nassign b 2\nprint a\nprint b\nprintFromTo a b\n"},
			registrations: []registration{{location: "p.txt"}},
			expectOrder:   []int{1, 1, 1, 1, 1},
			expectDone:    map[int]int{1: 5},
			expectWaiting: map[int]int{1: 0},
		},
		{
			description:   "fcfs runs in arrival order",
			config:        withAlgorithm(scheduler.FCFS, 4),
			programs:      map[string]string{"a.txt": repeat("assign x 1", 3), "b.txt": repeat("assign y 2", 2)},
			registrations: []registration{{location: "a.txt"}, {location: "b.txt", arrival: 1}},
			expectOrder:   []int{1, 1, 1, 2, 2},
			expectDone:    map[int]int{1: 3, 2: 5},
			expectWaiting: map[int]int{1: 0, 2: 2},
		},
		{
			description:   "round robin quantum 2",
			config:        withAlgorithm(scheduler.RoundRobin, 2),
			programs:      map[string]string{"a.txt": repeat("assign x 1", 4), "b.txt": repeat("assign y 1", 4)},
			registrations: []registration{{location: "a.txt"}, {location: "b.txt"}},
			expectOrder:   []int{1, 1, 2, 2, 1, 1, 2, 2},
			expectDone:    map[int]int{1: 6, 2: 8},
			expectWaiting: map[int]int{1: 2, 2: 4},
		},
		{
			description:   "simultaneous arrivals by priority",
			config:        withAlgorithm(scheduler.FCFS, 4),
			programs:      map[string]string{"a.txt": "assign x 1\n", "b.txt": "assign y 1\n"},
			registrations: []registration{{location: "a.txt", priority: 1}, {location: "b.txt", priority: 3}},
			expectOrder:   []int{2, 1},
			expectDone:    map[int]int{1: 2, 2: 1},
		},
		{
			description:   "idle ticks before first arrival",
			config:        withAlgorithm(scheduler.RoundRobin, 4),
			programs:      map[string]string{"a.txt": "assign x 1\n"},
			registrations: []registration{{location: "a.txt", arrival: 2}},
			expectOrder:   []int{0, 0, 1},
			expectDone:    map[int]int{1: 3},
		},
	}
	for _, testCase := range testCases {
		t.Run(testCase.description, func(t *testing.T) {
			sim := newSimulation(t, testCase.config, testCase.programs)
			register(t, sim, testCase.registrations)
			drain(t, sim, 100)
			assert.Equal(t, testCase.expectOrder, executed(sim))
			for id, done := range testCase.expectDone {
				entry, _ := sim.table.Entry(id)
				assert.True(t, entry.Complete)
				assert.Nil(t, entry.PCB)
				assert.Equal(t, done, entry.CompletionTime, "pid %d", id)
				assert.Equal(t, entry.BurstTime, entry.ExecutedTime)
			}
			for id, waiting := range testCase.expectWaiting {
				entry, _ := sim.table.Entry(id)
				assert.Equal(t, waiting, entry.WaitingTime, "pid %d", id)
			}
			assert.Equal(t, memory.DefaultSize, sim.arena.FreeWords())
		})
	}
}

func TestSimulation_MLFQDemotion(t *testing.T) {
	sim := newSimulation(t, withAlgorithm(scheduler.MLFQ, 4), map[string]string{"long.txt": repeat("assign x 1", 20)})
	register(t, sim, []registration{{location: "long.txt"}})
	ctx := context.Background()
	var levels []int
	for {
		status, err := sim.Step(ctx)
		if !assert.NoError(t, err) {
			return
		}
		assert.NoError(t, sim.Validate())
		entry, _ := sim.table.Entry(1)
		levels = append(levels, entry.QueueLevel)
		if status == StatusComplete {
			break
		}
	}
	assert.Equal(t, []int{1, 1, 2, 2, 2, 2, 3, 3, 3, 3}, levels[:10])
	for _, level := range levels[10:] {
		assert.Equal(t, 3, level)
	}
	assert.Len(t, levels, 20)
}

func TestSimulation_MutexFairness(t *testing.T) {
	programs := map[string]string{
		"owner.txt": "semWait file\nassign x 1\nassign y 2\nsemSignal file\n",
		"low.txt":   "semWait file\nprint x\n",
		"high.txt":  "semWait file\nprint y\n",
	}
	sim := newSimulation(t, withAlgorithm(scheduler.RoundRobin, 1), programs)
	register(t, sim, []registration{
		{location: "owner.txt"},
		{location: "low.txt", arrival: 1, priority: 1},
		{location: "high.txt", arrival: 2, priority: 5},
	})

	ctx := context.Background()
	for i := 0; i < 5; i++ {
		_, err := sim.Step(ctx)
		assert.NoError(t, err)
		assert.NoError(t, sim.Validate())
	}
	snapshot := sim.Snapshot()
	assert.Equal(t, mutex.Status{Name: mutex.File, Locked: true, Owner: 1, Blocked: []int{3, 2}}, snapshot.Mutexes[0])
	assert.Equal(t, snapshot.Stats, Stats{Total: 3, Ready: 1, Blocked: 2})

	drain(t, sim, 20)
	assert.Equal(t, []int{1, 1, 2, 1, 3, 1, 3, 2}, executed(sim))
	assert.Equal(t, []string{"2", "1"}, sim.Output())
	status := sim.Snapshot().Mutexes[0]
	assert.False(t, status.Locked)
}

func TestSimulation_TerminationReleasesLocks(t *testing.T) {
	programs := map[string]string{
		"holder.txt": "semWait userOutput\nassign x 5\n",
		"waiter.txt": "semWait userOutput\nprint x\nsemSignal userOutput\n",
	}
	sim := newSimulation(t, withAlgorithm(scheduler.RoundRobin, 1), programs)
	register(t, sim, []registration{{location: "holder.txt"}, {location: "waiter.txt"}})
	drain(t, sim, 20)
	assert.Equal(t, []int{1, 2, 1, 2, 2}, executed(sim))
	assert.Equal(t, []string{"5"}, sim.Output())
}

func TestSimulation_AllocationDeferred(t *testing.T) {
	programs := map[string]string{
		"big.txt":   repeat("assign x 1", 40),
		"small.txt": repeat("assign y 1", 5),
	}
	sim := newSimulation(t, withAlgorithm(scheduler.FCFS, 4), programs)
	register(t, sim, []registration{{location: "big.txt"}, {location: "small.txt", priority: 0}})

	ctx := context.Background()
	_, err := sim.Step(ctx)
	assert.NoError(t, err)
	small, _ := sim.table.Entry(2)
	assert.False(t, small.Arrived)
	assert.Nil(t, small.PCB)

	drain(t, sim, 100)
	big, _ := sim.table.Entry(1)
	assert.Equal(t, 40, big.CompletionTime)
	assert.Equal(t, 45, small.CompletionTime)
	assert.Equal(t, 5, small.BurstTime)
}

func TestSimulation_MissingProgram(t *testing.T) {
	config := withAlgorithm(scheduler.FCFS, 4)
	config.MaxTicks = 5
	sim := newSimulation(t, config, map[string]string{"ok.txt": "assign x 1\n"})
	register(t, sim, []registration{{location: "absent.txt"}, {location: "ok.txt"}})

	status, err := sim.Run(context.Background())
	assert.Equal(t, StatusPending, status)
	assert.True(t, errors.Is(err, ErrTickLimit))
	ok, _ := sim.table.Entry(2)
	assert.True(t, ok.Complete)
	absent, _ := sim.table.Entry(1)
	assert.False(t, absent.Arrived)
}

func TestSimulation_Input(t *testing.T) {
	programs := map[string]string{"in.txt": "assign a input\nassign Name input\nprint a\nprint Name\n"}
	sim := newSimulation(t, withAlgorithm(scheduler.FCFS, 4), programs)
	register(t, sim, []registration{{location: "in.txt"}})
	ctx := context.Background()

	assert.True(t, errors.Is(sim.SupplyInput(ctx, "1"), ErrNotSuspended))

	status, err := sim.Run(ctx)
	assert.NoError(t, err)
	assert.Equal(t, StatusSuspended, status)
	suspension, ok := sim.Suspension()
	assert.True(t, ok)
	assert.Equal(t, "a", suspension.Variable)
	assert.Equal(t, 1, suspension.ProcessID)
	assert.True(t, suspension.Numeric)
	assert.Equal(t, 0, sim.Time())
	assert.NoError(t, sim.Validate())

	status, err = sim.Step(ctx)
	assert.Equal(t, StatusSuspended, status)
	assert.True(t, errors.Is(err, ErrSuspended))

	assert.True(t, errors.Is(sim.SupplyInput(ctx, "abc"), ErrInvalidInput))
	_, ok = sim.Suspension()
	assert.True(t, ok)

	assert.NoError(t, sim.SupplyInput(ctx, " -12 "))
	assert.Equal(t, 1, sim.Time())

	status, err = sim.Run(ctx)
	assert.NoError(t, err)
	assert.Equal(t, StatusSuspended, status)
	assert.NoError(t, sim.SupplyInput(ctx, "Bob"))

	status, err = sim.Run(ctx)
	assert.NoError(t, err)
	assert.Equal(t, StatusComplete, status)
	assert.Equal(t, []string{"-12", "Bob"}, sim.Output())
	entry, _ := sim.table.Entry(1)
	assert.Equal(t, 4, entry.CompletionTime)
}

func TestSimulation_Deadlock(t *testing.T) {
	programs := map[string]string{
		"p1.txt": "semWait file\nsemWait userInput\nsemSignal userInput\nsemSignal file\n",
		"p2.txt": "semWait userInput\nsemWait file\nsemSignal file\nsemSignal userInput\n",
	}
	sim := newSimulation(t, withAlgorithm(scheduler.RoundRobin, 1), programs)
	register(t, sim, []registration{{location: "p1.txt"}, {location: "p2.txt"}})
	status, err := sim.Run(context.Background())
	assert.Equal(t, StatusPending, status)
	assert.True(t, errors.Is(err, ErrDeadlock))
	assert.Equal(t, 4, sim.Time())
	assert.NoError(t, sim.Validate())
}

func TestSimulation_ResetIsIdempotent(t *testing.T) {
	programs := map[string]string{
		"a.txt": "semWait file\nassign x 1\nsemSignal file\nprint x\n",
		"b.txt": "semWait file\nassign x 2\nsemSignal file\n",
		"c.txt": repeat("assign z 3", 6),
	}
	registrations := []registration{{location: "a.txt"}, {location: "b.txt", arrival: 1, priority: 2}, {location: "c.txt", arrival: 1}}
	sim := newSimulation(t, withAlgorithm(scheduler.MLFQ, 2), programs)

	completions := func() []int {
		register(t, sim, registrations)
		drain(t, sim, 100)
		var ret []int
		for _, entry := range sim.Entries() {
			ret = append(ret, entry.CompletionTime)
		}
		return ret
	}
	first := completions()
	firstTimeline := sim.Timeline()
	sim.Reset()
	assert.Equal(t, 0, sim.Time())
	assert.Empty(t, sim.Entries())
	assert.Equal(t, memory.DefaultSize, sim.arena.FreeWords())
	assert.Empty(t, sim.Snapshot().Variables)

	assert.Equal(t, first, completions())
	assert.Equal(t, firstTimeline, sim.Timeline())
}

func TestSimulation_Reconfigure(t *testing.T) {
	sim := newSimulation(t, DefaultConfig(), map[string]string{"a.txt": repeat("assign x 1", 3)})
	register(t, sim, []registration{{location: "a.txt"}})

	assert.NoError(t, sim.SetAlgorithm(scheduler.RoundRobin))
	assert.Len(t, sim.Entries(), 1)
	assert.True(t, errors.Is(sim.SetQuantum(0), ErrInvalidQuantum))

	_, err := sim.Step(context.Background())
	assert.NoError(t, err)
	assert.NoError(t, sim.SetQuantum(3))
	assert.Empty(t, sim.Entries())
	assert.Equal(t, 0, sim.Time())
	assert.Equal(t, 3, sim.Config().Scheduler.Quantum)
	assert.Equal(t, scheduler.RoundRobin, sim.Config().Algorithm)
}

func TestSimulation_Snapshot(t *testing.T) {
	text := "# counter\nassign a 1\n\nprintFromTo a 3\nprint a\n"
	sim := newSimulation(t, withAlgorithm(scheduler.FCFS, 4), map[string]string{"a.txt": text})
	register(t, sim, []registration{{location: "a.txt", priority: 2}})

	empty := sim.Snapshot()
	assert.Equal(t, EndOfProgram, empty.CurrentInstruction)
	assert.Equal(t, Stats{Total: 1, Pending: 1}, empty.Stats)

	_, err := sim.Step(context.Background())
	assert.NoError(t, err)
	snapshot := sim.Snapshot()
	assert.Equal(t, 1, snapshot.Running)
	assert.Equal(t, "printFromTo a 3", snapshot.CurrentInstruction)

	pcb := snapshot.Processes[0].PCB
	assert.Equal(t, 0, pcb.LowerBound)
	assert.Equal(t, 11, pcb.UpperBound)
	assert.Equal(t, snapshot.Processes[0].BurstTime, pcb.UpperBound-pcb.LowerBound-8)

	var mirrored []string
	for _, w := range snapshot.Memory[pcb.LowerBound : pcb.LowerBound+3] {
		mirrored = append(mirrored, w.Value)
	}
	assert.Equal(t, program.Parse([]byte(text)), mirrored)
	assert.Equal(t, memory.Word{Owner: 1, Label: "a", Value: "1"}, snapshot.Memory[3])
	assert.Equal(t, memory.Word{Owner: 1, Label: "PCB_ID", Value: "1"}, snapshot.Memory[6])
	assert.Equal(t, memory.Word{Owner: 1, Label: "processState", Value: string(process.StateRunning)}, snapshot.Memory[7])
	assert.Equal(t, memory.Word{Owner: 1, Label: "currentPriority", Value: "2"}, snapshot.Memory[8])
	assert.Equal(t, memory.Word{Owner: 1, Label: "programCounter", Value: "1"}, snapshot.Memory[9])
	assert.Equal(t, memory.Word{Owner: 1, Label: "upperMemoryBound", Value: "11"}, snapshot.Memory[11])
	assert.Equal(t, [][]int{{}}, snapshot.Queues)

	sim.Snapshot().Processes[0].ExecutedTime = 99
	entry, _ := sim.table.Entry(1)
	assert.Equal(t, 1, entry.ExecutedTime)
}

func TestSimulation_EmptyIsComplete(t *testing.T) {
	sim := newSimulation(t, DefaultConfig(), nil)
	status, err := sim.Step(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, StatusComplete, status)
}

func TestNew_InvalidConfig(t *testing.T) {
	config := DefaultConfig()
	config.MemorySize = 5
	_, err := New(config)
	assert.Error(t, err)
}

func TestSimulation_Observer(t *testing.T) {
	dir := t.TempDir()
	assert.NoError(t, os.WriteFile(filepath.Join(dir, "a.txt"), []byte("assign x 1\nprint x\n"), 0644))
	var observed []Slot
	sim, err := New(withAlgorithm(scheduler.FCFS, 4),
		WithFiles(fileio.New(nil, dir)),
		WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
		WithObserver(func(ctx context.Context, slot Slot) {
			observed = append(observed, slot)
		}))
	if !assert.NoError(t, err) {
		return
	}
	_, err = sim.Register("a.txt", 1, 0)
	assert.NoError(t, err)
	assert.False(t, sim.Active())
	drain(t, sim, 10)
	assert.Equal(t, sim.Timeline(), observed)
	assert.Equal(t, "print x", observed[2].Instruction)
	assert.False(t, sim.Active())
}
