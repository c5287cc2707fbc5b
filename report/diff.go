package report

import (
	"strings"

	"github.com/pmezard/go-difflib/difflib"
	"github.com/viant/schedsim/runtime/simulation"
)

// DiffStats counts changed timeline lines.
type DiffStats struct {
	Added   int
	Removed int
}

// Diff returns a unified diff between two timelines, empty when they match.
func Diff(from, to []simulation.Slot, fromName, toName string) (string, DiffStats, error) {
	a := strings.Join(Lines(from), "\n") + "\n"
	b := strings.Join(Lines(to), "\n") + "\n"
	if a == b {
		return "", DiffStats{}, nil
	}
	patch, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(a),
		B:        difflib.SplitLines(b),
		FromFile: fromName,
		ToFile:   toName,
		Context:  2,
	})
	if err != nil {
		return "", DiffStats{}, err
	}
	var stats DiffStats
	for _, line := range strings.Split(patch, "\n") {
		switch {
		case strings.HasPrefix(line, "+") && !strings.HasPrefix(line, "+++"):
			stats.Added++
		case strings.HasPrefix(line, "-") && !strings.HasPrefix(line, "---"):
			stats.Removed++
		}
	}
	return patch, stats, nil
}
