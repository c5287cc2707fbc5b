package report

import (
	"fmt"
	"sort"
	"strings"

	"github.com/viant/schedsim/runtime/simulation"
)

const (
	busy = '#'
	free = '.'
)

// Gantt renders one row per process with a mark in every tick the process
// held the CPU. Ticks with nothing to run appear in the idle row.
func Gantt(slots []simulation.Slot) string {
	if len(slots) == 0 {
		return ""
	}
	span := slots[len(slots)-1].Tick + 1
	rows := map[int][]byte{}
	for _, slot := range slots {
		row, ok := rows[slot.ProcessID]
		if !ok {
			row = []byte(strings.Repeat(string(free), span))
			rows[slot.ProcessID] = row
		}
		if slot.Tick >= 0 && slot.Tick < span {
			row[slot.Tick] = busy
		}
	}
	ids := make([]int, 0, len(rows))
	for id := range rows {
		ids = append(ids, id)
	}
	sort.Ints(ids)

	builder := strings.Builder{}
	builder.WriteString("tick ")
	for tick := 0; tick < span; tick++ {
		builder.WriteByte(byte('0' + tick%10))
	}
	builder.WriteByte('\n')
	for _, id := range ids {
		label := fmt.Sprintf("P%-3d ", id)
		if id == 0 {
			label = "idle "
		}
		builder.WriteString(label)
		builder.Write(rows[id])
		builder.WriteByte('\n')
	}
	return builder.String()
}

// Lines renders slots as "tick pid instruction" lines.
func Lines(slots []simulation.Slot) []string {
	ret := make([]string, 0, len(slots))
	for _, slot := range slots {
		if slot.ProcessID == 0 {
			ret = append(ret, fmt.Sprintf("%d idle", slot.Tick))
			continue
		}
		ret = append(ret, fmt.Sprintf("%d P%d %s", slot.Tick, slot.ProcessID, slot.Instruction))
	}
	return ret
}
