// Command schedsim runs a process scheduling workload in the console.
//
//	schedsim -config testdata/workload.yaml -history /tmp/schedsim/history
//	schedsim -algorithm mlfq -quantum 3 -base ./programs program_1.txt:0 program_2.txt:1:2
//
// Positional arguments are location[:arrival[:priority]] and are appended to
// the configured workload. Input requests are answered interactively.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"strings"

	"github.com/viant/afs"
	"github.com/viant/schedsim"
	"github.com/viant/schedsim/internal/logger"
	"github.com/viant/schedsim/report"
	"github.com/viant/schedsim/runtime/simulation"
	snapshotfs "github.com/viant/schedsim/service/dao/snapshot/fs"
	"github.com/viant/schedsim/service/event"
	"github.com/viant/schedsim/service/input"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "schedsim:", err)
		os.Exit(1)
	}
}

func run() error {
	configURL := flag.String("config", "", "workload YAML location")
	algorithm := flag.String("algorithm", "", "fcfs, rr or mlfq")
	quantum := flag.Int("quantum", 0, "round robin and lowest MLFQ level quantum")
	baseURL := flag.String("base", "", "base location of program and data files")
	logLevel := flag.String("log", "", "debug, info, warn or error")
	trace := flag.String("trace", "", "write OpenTelemetry spans to this file")
	history := flag.String("history", "", "store per-tick snapshots as JSON under this location")
	compare := flag.String("compare", "", "rerun the workload with this algorithm and print the timeline diff")
	events := flag.Bool("events", false, "print lifecycle events to stderr")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	fs := afs.New()
	console := input.New()
	config := schedsim.DefaultConfig()
	if *configURL != "" {
		var err error
		if config, err = schedsim.LoadConfig(ctx, fs, *configURL); err != nil {
			return err
		}
	}
	switch {
	case *algorithm != "":
		config.Algorithm = *algorithm
	case *configURL == "":
		choice, err := chooseAlgorithm(ctx, console, config.Algorithm)
		if err != nil {
			return err
		}
		config.Algorithm = choice
	}
	if *quantum > 0 {
		config.Quantum = *quantum
	}
	if *baseURL != "" {
		config.BaseURL = *baseURL
	}
	if *logLevel != "" {
		config.LogLevel = *logLevel
	}
	if *trace != "" {
		config.Trace.Enabled = true
		config.Trace.Output = *trace
	}
	for _, arg := range flag.Args() {
		spec, err := parseSpec(arg)
		if err != nil {
			return err
		}
		config.Processes = append(config.Processes, spec)
	}

	options := []schedsim.Option{
		schedsim.WithConfig(config),
		schedsim.WithFileSystem(fs),
		schedsim.WithLogger(logger.New(os.Stderr, config.LogLevel, "schedsim")),
	}
	if *history != "" {
		store, err := snapshotfs.New(ctx, fs, *history)
		if err != nil {
			return err
		}
		options = append(options, schedsim.WithHistory(store))
	}
	srv, err := schedsim.New(options...)
	if err != nil {
		return err
	}
	if *events {
		listener := event.NewListener[string](srv.Events(), printEvent, nil)
		listener.Start(ctx)
		defer listener.Stop()
	}
	rt := srv.Runtime()
	answers := recorded{}
	err = execute(ctx, rt, true, func(suspension simulation.Suspension, invalid error) (string, error) {
		if invalid != nil {
			fmt.Println(invalid)
			answers.drop(suspension)
		}
		kind := "text"
		if suspension.Numeric {
			kind = "integer"
		}
		value, err := console.Ask(ctx, fmt.Sprintf("P%d: enter %s for %s:", suspension.ProcessID, kind, suspension.Variable), "")
		if err == nil {
			answers.add(suspension, value)
		}
		return value, err
	})
	if err != nil {
		return err
	}
	fmt.Println()
	fmt.Print(rt.Report())
	if *compare == "" {
		return nil
	}
	return compareWith(ctx, fs, config, *compare, rt.Timeline(), answers)
}

// chooseAlgorithm asks for the scheduling discipline, def on an empty answer.
func chooseAlgorithm(ctx context.Context, console *input.Service, def string) (string, error) {
	return console.Choose(ctx, "Scheduling algorithm:", []string{"fcfs", "rr", "mlfq"}, def)
}

// asker returns the value for a suspended input request; invalid carries the
// rejection of the previous value.
type asker func(suspension simulation.Suspension, invalid error) (string, error)

// execute loads the workload and runs it to completion, answering input
// requests with ask.
func execute(ctx context.Context, rt *schedsim.Runtime, echo bool, ask asker) error {
	if err := rt.LoadWorkload(ctx); err != nil {
		return err
	}
	printed := 0
	for {
		status, err := rt.Run(ctx)
		if echo {
			printed = flush(rt, printed)
		}
		if err != nil {
			return err
		}
		if status == simulation.StatusComplete {
			return nil
		}
		if err = answer(ctx, rt, ask); err != nil {
			return err
		}
	}
}

type answerKey struct {
	processID int
	variable  string
}

// recorded holds accepted input values per process and variable, in answer order.
type recorded map[answerKey][]string

func keyOf(suspension simulation.Suspension) answerKey {
	return answerKey{processID: suspension.ProcessID, variable: suspension.Variable}
}

func (r recorded) add(suspension simulation.Suspension, value string) {
	key := keyOf(suspension)
	r[key] = append(r[key], value)
}

func (r recorded) drop(suspension simulation.Suspension) {
	key := keyOf(suspension)
	if values := r[key]; len(values) > 0 {
		r[key] = values[:len(values)-1]
	}
}

// next removes and returns the oldest value recorded for suspension.
func (r recorded) next(suspension simulation.Suspension) (string, bool) {
	key := keyOf(suspension)
	values := r[key]
	if len(values) == 0 {
		return "", false
	}
	r[key] = values[1:]
	return values[0], true
}

// compareWith replays answers against the same workload under algorithm and
// prints how its timeline differs from base.
func compareWith(ctx context.Context, fs afs.Service, config *schedsim.Config, algorithm string, base []simulation.Slot, answers recorded) error {
	other := *config
	other.Algorithm = algorithm
	other.Trace.Enabled = false
	srv, err := schedsim.New(
		schedsim.WithConfig(&other),
		schedsim.WithFileSystem(fs),
		schedsim.WithLogger(logger.Discard()))
	if err != nil {
		return err
	}
	rt := srv.Runtime()
	err = execute(ctx, rt, false, func(suspension simulation.Suspension, invalid error) (string, error) {
		value, ok := answers.next(suspension)
		if invalid != nil || !ok {
			return "", fmt.Errorf("cannot replay input for P%d %s", suspension.ProcessID, suspension.Variable)
		}
		return value, nil
	})
	if err != nil {
		return fmt.Errorf("compare %s: %w", algorithm, err)
	}
	patch, stats, err := report.Diff(base, rt.Timeline(), config.Algorithm, algorithm)
	if err != nil {
		return err
	}
	fmt.Println()
	if patch == "" {
		fmt.Printf("%s and %s produce the same timeline\n", config.Algorithm, algorithm)
		return nil
	}
	fmt.Print(patch)
	fmt.Printf("%d ticks differ (+%d -%d)\n", max(stats.Added, stats.Removed), stats.Added, stats.Removed)
	fmt.Print(rt.Report())
	return nil
}

func printEvent(e *event.Event[string]) error {
	_, err := fmt.Fprintf(os.Stderr, "[%d] %s P%d %s\n", e.Context.Tick, e.Context.EventType, e.Context.ProcessID, e.Data)
	return err
}

// answer asks until the runtime accepts a value.
func answer(ctx context.Context, rt *schedsim.Runtime, ask asker) error {
	suspension, ok := rt.Suspension()
	if !ok {
		return nil
	}
	var invalid error
	for {
		value, err := ask(suspension, invalid)
		if err != nil {
			return err
		}
		err = rt.SupplyInput(ctx, value)
		if errors.Is(err, simulation.ErrInvalidInput) {
			invalid = err
			continue
		}
		return err
	}
}

// flush prints output log lines added since the last call.
func flush(rt *schedsim.Runtime, printed int) int {
	output := rt.Snapshot().Output
	for _, line := range output[printed:] {
		fmt.Println(line)
	}
	return len(output)
}

// parseSpec splits location[:arrival[:priority]]. Only numeric suffixes are
// taken, so scheme qualified locations like file:///tmp/p.txt stay intact.
func parseSpec(arg string) (*schedsim.ProcessSpec, error) {
	location, numbers := arg, []int{}
	for len(numbers) < 2 {
		index := strings.LastIndex(location, ":")
		if index == -1 {
			break
		}
		value, err := strconv.Atoi(location[index+1:])
		if err != nil {
			break
		}
		numbers = append([]int{value}, numbers...)
		location = location[:index]
	}
	if location == "" {
		return nil, fmt.Errorf("invalid process %q, expected location[:arrival[:priority]]", arg)
	}
	spec := &schedsim.ProcessSpec{Location: location}
	if len(numbers) > 0 {
		spec.Arrival = numbers[0]
	}
	if len(numbers) > 1 {
		spec.Priority = numbers[1]
	}
	return spec, nil
}
