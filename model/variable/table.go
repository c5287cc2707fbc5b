package variable

import (
	"errors"
	"fmt"
)

// DefaultCapacity is the number of variables a simulation may define.
const DefaultCapacity = 100

// ErrTableFull is returned when defining a variable beyond capacity.
var ErrTableFull = errors.New("variable: table full")

// Variable is a named program value shared by all processes.
type Variable struct {
	Name    string `json:"name"`
	Value   string `json:"value"`
	Numeric bool   `json:"numeric"`
}

// Table is the global variable table, in definition order.
type Table struct {
	variables []*Variable
	index     map[string]*Variable
	capacity  int
}

// Lookup returns the named variable.
func (t *Table) Lookup(name string) (*Variable, bool) {
	v, ok := t.index[name]
	return v, ok
}

// Set defines or updates a variable.
func (t *Table) Set(name, value string) error {
	v, ok := t.index[name]
	if !ok {
		if len(t.variables) >= t.capacity {
			return fmt.Errorf("%w: cannot define %q", ErrTableFull, name)
		}
		v = &Variable{Name: name}
		t.variables = append(t.variables, v)
		t.index[name] = v
	}
	v.Value = value
	v.Numeric = IsNumeric(value)
	return nil
}

// Variables returns copies in definition order.
func (t *Table) Variables() []Variable {
	ret := make([]Variable, 0, len(t.variables))
	for _, v := range t.variables {
		ret = append(ret, *v)
	}
	return ret
}

func (t *Table) Len() int { return len(t.variables) }

// Reset drops every variable.
func (t *Table) Reset() {
	t.variables = nil
	t.index = map[string]*Variable{}
}

// NewTable creates a table holding up to capacity variables.
func NewTable(capacity int) (*Table, error) {
	if capacity <= 0 {
		return nil, fmt.Errorf("variable: invalid capacity %d", capacity)
	}
	return &Table{index: map[string]*Variable{}, capacity: capacity}, nil
}
