package report

import (
	"fmt"
	"strings"

	"github.com/viant/schedsim/model/process"
)

// Summary renders the process table with turnaround and waiting averages
// over completed processes.
func Summary(entries []*process.Entry) string {
	builder := strings.Builder{}
	builder.WriteString("pid  file                 prio arrival burst done turnaround waiting state\n")
	completed, turnaround, waiting := 0, 0, 0
	for _, entry := range entries {
		done, around := "-", "-"
		if entry.Complete {
			completed++
			turnaround += entry.Turnaround()
			waiting += entry.WaitingTime
			done = fmt.Sprint(entry.CompletionTime)
			around = fmt.Sprint(entry.Turnaround())
		}
		fmt.Fprintf(&builder, "%-4d %-20s %4d %7d %5d %4s %10s %7d %s\n",
			entry.ID, entry.Filename, entry.Priority, entry.ArrivalTime, entry.BurstTime,
			done, around, entry.WaitingTime, entry.State())
	}
	if completed > 0 {
		fmt.Fprintf(&builder, "average turnaround %.2f, average waiting %.2f\n",
			float64(turnaround)/float64(completed), float64(waiting)/float64(completed))
	}
	return builder.String()
}
