package interpreter

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/viant/schedsim/model/memory"
	"github.com/viant/schedsim/model/mutex"
	"github.com/viant/schedsim/model/process"
	"github.com/viant/schedsim/model/variable"
)

// Opcodes.
const (
	OpPrint       = "print"
	OpAssign      = "assign"
	OpPrintFromTo = "printFromTo"
	OpWriteFile   = "writeFile"
	OpReadFile    = "readFile"
	OpSemWait     = "semWait"
	OpSemSignal   = "semSignal"

	inputValue = "input"
)

// Files is the text file collaborator used by readFile and writeFile.
type Files interface {
	Read(ctx context.Context, location string) (string, error)
	Write(ctx context.Context, location, content string) error
}

// Outcome describes the effects of one instruction.
type Outcome struct {
	Output []string
	// Blocked is set when the process was parked on a mutex.
	Blocked bool
	// Woken is the waiter that received a signalled mutex.
	Woken *process.PCB
	// Input names the variable awaiting external input.
	Input string
	// Err is a reported, non-fatal error.
	Err error
}

func (o *Outcome) emit(message string) {
	o.Output = append(o.Output, message)
}

// Service executes program instructions against shared simulation state.
type Service struct {
	variables *variable.Table
	arena     *memory.Arena
	locks     *mutex.Set
	files     Files
}

// Execute runs a single instruction on behalf of pcb.
func (s *Service) Execute(ctx context.Context, pcb *process.PCB, line string) *Outcome {
	ret := &Outcome{}
	instruction, err := Tokenize(line)
	if err != nil {
		ret.Err = err
		return ret
	}
	args := instruction.Args()
	switch instruction.Command {
	case OpPrint:
		if args < 2 {
			break
		}
		s.print(instruction.Arg1, ret)
		return ret
	case OpAssign:
		if args != 3 {
			break
		}
		s.assign(ctx, pcb, instruction.Arg1, instruction.Rest, ret)
		return ret
	case OpPrintFromTo:
		if args != 3 {
			break
		}
		s.printFromTo(instruction.Arg1, instruction.Rest, ret)
		return ret
	case OpWriteFile:
		if args != 3 {
			break
		}
		s.writeFile(ctx, instruction.Arg1, instruction.Rest, ret)
		return ret
	case OpReadFile:
		if args != 2 {
			break
		}
		s.readFile(ctx, instruction.Arg1, ret)
		return ret
	case OpSemWait:
		if args != 2 {
			break
		}
		s.semWait(pcb, instruction.Arg1, ret)
		return ret
	case OpSemSignal:
		if args != 2 {
			break
		}
		s.semSignal(pcb, instruction.Arg1, ret)
		return ret
	default:
		ret.Err = fmt.Errorf("%w: %q", ErrUnknownOpcode, instruction.Command)
		return ret
	}
	ret.Err = fmt.Errorf("%w: %s expects different arguments in %q", ErrArgumentCount, instruction.Command, line)
	return ret
}

// Assign stores name=value in the variable table and the process variable
// slots. ErrNoVariableSlot is returned when the table update succeeded but
// the process block has no free slot.
func (s *Service) Assign(pcb *process.PCB, name, value string) error {
	if err := s.variables.Set(name, value); err != nil {
		return err
	}
	if pcb == nil {
		return nil
	}
	if !s.arena.AssignVariable(pcb.UpperBound, name, value) {
		return fmt.Errorf("%w: %s in process %d", ErrNoVariableSlot, name, pcb.ID)
	}
	return nil
}

func (s *Service) print(name string, out *Outcome) {
	v, ok := s.variables.Lookup(name)
	if !ok {
		out.Err = fmt.Errorf("%w: %q", ErrUndefinedVariable, name)
		return
	}
	out.emit(v.Value)
}

func (s *Service) assign(ctx context.Context, pcb *process.PCB, name, value string, out *Outcome) {
	if value == inputValue {
		out.Input = name
		return
	}
	if fields := strings.Fields(value); len(fields) > 0 && fields[0] == OpReadFile {
		if len(fields) != 2 {
			out.Err = fmt.Errorf("%w: assign %s %s", ErrArgumentCount, name, value)
			return
		}
		content, err := s.files.Read(ctx, s.resolve(fields[1]))
		if err != nil {
			out.Err = err
			return
		}
		out.Err = s.Assign(pcb, name, content)
		return
	}
	if variable.IsNumeric(value) {
		out.Err = s.Assign(pcb, name, value)
		return
	}
	source, ok := s.variables.Lookup(value)
	if !ok {
		out.Err = fmt.Errorf("%w: %q", ErrInvalidValue, value)
		return
	}
	out.Err = s.Assign(pcb, name, source.Value)
}

func (s *Service) printFromTo(startArg, endArg string, out *Outcome) {
	start, err := s.integer(startArg)
	if err != nil {
		out.Err = err
		return
	}
	end, err := s.integer(endArg)
	if err != nil {
		out.Err = err
		return
	}
	step := 1
	if start > end {
		step = -1
	}
	var builder strings.Builder
	for i := start; ; i += step {
		value := strconv.Itoa(i)
		size := len(value)
		if builder.Len() > 0 {
			size++
		}
		if builder.Len()+size > MaxOutputLength {
			break
		}
		if builder.Len() > 0 {
			builder.WriteByte(' ')
		}
		builder.WriteString(value)
		if i == end {
			break
		}
	}
	out.emit(builder.String())
}

func (s *Service) writeFile(ctx context.Context, nameArg, contentArg string, out *Outcome) {
	location := s.resolve(nameArg)
	var content string
	if v, ok := s.variables.Lookup(contentArg); ok {
		content = v.Value
	} else if strings.HasPrefix(contentArg, `"`) {
		content = strings.TrimSuffix(contentArg[1:], `"`)
	} else {
		out.Err = fmt.Errorf("%w: content must be a string or variable: %q", ErrInvalidValue, contentArg)
		return
	}
	if err := s.files.Write(ctx, location, content); err != nil {
		out.Err = err
		return
	}
	out.emit(fmt.Sprintf("Data written to '%s'", location))
}

func (s *Service) readFile(ctx context.Context, nameArg string, out *Outcome) {
	location := s.resolve(nameArg)
	content, err := s.files.Read(ctx, location)
	if err != nil {
		out.Err = err
		return
	}
	out.emit(fmt.Sprintf("Contents of '%s':", location))
	out.emit(content)
}

func (s *Service) semWait(pcb *process.PCB, resource string, out *Outcome) {
	m, err := s.locks.Get(resource)
	if err != nil {
		out.Err = err
		return
	}
	acquired, err := m.Wait(pcb)
	if err != nil {
		out.Err = err
		return
	}
	out.Blocked = !acquired
}

func (s *Service) semSignal(pcb *process.PCB, resource string, out *Outcome) {
	m, err := s.locks.Get(resource)
	if err != nil {
		out.Err = err
		return
	}
	out.Woken, out.Err = m.Signal(pcb)
}

// resolve returns the value of a variable named name, or name itself.
func (s *Service) resolve(name string) string {
	if v, ok := s.variables.Lookup(name); ok {
		return v.Value
	}
	return name
}

func (s *Service) integer(arg string) (int, error) {
	text := arg
	if v, ok := s.variables.Lookup(arg); ok && v.Numeric {
		text = v.Value
	} else if !variable.IsNumeric(arg) {
		return 0, fmt.Errorf("%w: %q", ErrInvalidValue, arg)
	}
	ret, err := strconv.Atoi(text)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidValue, arg)
	}
	return ret, nil
}

// New creates an interpreter bound to simulation state.
func New(variables *variable.Table, arena *memory.Arena, locks *mutex.Set, files Files) *Service {
	return &Service{variables: variables, arena: arena, locks: locks, files: files}
}
