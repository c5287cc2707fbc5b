package scheduler

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownAlgorithm is returned for an unrecognised algorithm name.
var ErrUnknownAlgorithm = errors.New("scheduler: unknown algorithm")

// Kind identifies a scheduling discipline.
type Kind int

const (
	FCFS Kind = iota
	RoundRobin
	MLFQ
)

func (k Kind) String() string {
	switch k {
	case RoundRobin:
		return "rr"
	case MLFQ:
		return "mlfq"
	}
	return "fcfs"
}

// ParseKind maps an algorithm name to Kind.
func ParseKind(name string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "fcfs":
		return FCFS, nil
	case "rr", "roundrobin", "round-robin":
		return RoundRobin, nil
	case "mlfq":
		return MLFQ, nil
	}
	return FCFS, fmt.Errorf("%w: %q", ErrUnknownAlgorithm, name)
}

// KindOf maps a selector index to Kind, unknown indexes select FCFS.
func KindOf(index int) Kind {
	switch Kind(index) {
	case RoundRobin, MLFQ:
		return Kind(index)
	}
	return FCFS
}
