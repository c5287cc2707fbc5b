package memory

import "strconv"

const (
	// VariableSlots is the number of private variable words per process.
	VariableSlots = 3
	// PCBSlots is the number of PCB mirror words per process.
	PCBSlots = 6
	// Reserved is the number of trailing words following the instructions.
	Reserved = VariableSlots + PCBSlots

	// VariableLabel labels an unused variable slot.
	VariableLabel = "Variable"
	// EmptyValue is the value of an unused variable slot.
	EmptyValue = "NULL"
)

// PCBLabels are the mirror labels in block order.
var PCBLabels = [PCBSlots]string{
	"PCB_ID",
	"processState",
	"currentPriority",
	"programCounter",
	"lowerMemoryBound",
	"upperMemoryBound",
}

// BlockSize returns the number of words a program of instructions lines needs.
func BlockSize(instructions int) int {
	return instructions + Reserved
}

// InstructionLabel returns the label of the i-th instruction word.
func InstructionLabel(i int) string {
	return "Instruction " + strconv.Itoa(i)
}

// Load writes program text and empty variable and PCB slots into a block
// previously allocated at offset.
func (a *Arena) Load(offset int, instructions []string) error {
	for i, instruction := range instructions {
		if err := a.Write(offset+i, InstructionLabel(i), instruction); err != nil {
			return err
		}
	}
	base := offset + len(instructions)
	for i := 0; i < VariableSlots; i++ {
		if err := a.Write(base+i, VariableLabel, EmptyValue); err != nil {
			return err
		}
	}
	base += VariableSlots
	for i, label := range PCBLabels {
		if err := a.Write(base+i, label, ""); err != nil {
			return err
		}
	}
	return nil
}

// Instructions returns instruction text stored in [lower, lower+count).
func (a *Arena) Instructions(lower, count int) []string {
	ret := make([]string, 0, count)
	for i := lower; i < lower+count && i < len(a.words); i++ {
		ret = append(ret, a.words[i].Value)
	}
	return ret
}

// AssignVariable stores name=value in the first empty or same-named variable
// slot of the block ending at upper. It returns false when every slot holds
// another variable.
func (a *Arena) AssignVariable(upper int, name, value string) bool {
	start := upper - Reserved + 1
	for i := start; i < start+VariableSlots; i++ {
		if i < 0 || i >= len(a.words) {
			return false
		}
		w := &a.words[i]
		if (w.Label == VariableLabel && w.Value == EmptyValue) || w.Label == name {
			w.Label = name
			w.Value = value
			return true
		}
	}
	return false
}
