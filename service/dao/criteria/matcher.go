package criteria

import (
	"strconv"

	"github.com/viant/schedsim/runtime/simulation"
	"github.com/viant/schedsim/service/dao"
)

// Parameter names understood by FilterSnapshot.
const (
	Running   = "Running"
	Algorithm = "Algorithm"
	Since     = "Since"
	Until     = "Until"
)

// FilterSnapshot reports whether s satisfies every parameter. Running and
// Algorithm accept one value or a list; Since and Until bound the tick.
// Unknown parameters match.
func FilterSnapshot(s *simulation.Snapshot, parameters []*dao.Parameter) bool {
	for _, parameter := range parameters {
		if parameter == nil {
			continue
		}
		switch parameter.Name {
		case Running:
			if !oneOf(strconv.Itoa(s.Running), parameter.Value) {
				return false
			}
		case Algorithm:
			if !oneOf(s.Algorithm, parameter.Value) {
				return false
			}
		case Since:
			if bound, ok := integer(parameter.Value); ok && s.Tick < bound {
				return false
			}
		case Until:
			if bound, ok := integer(parameter.Value); ok && s.Tick > bound {
				return false
			}
		}
	}
	return true
}

func oneOf(actual string, value interface{}) bool {
	switch expect := value.(type) {
	case string:
		return actual == expect
	case []string:
		for _, candidate := range expect {
			if actual == candidate {
				return true
			}
		}
		return false
	case int:
		return actual == strconv.Itoa(expect)
	}
	return true
}

func integer(value interface{}) (int, bool) {
	switch actual := value.(type) {
	case int:
		return actual, true
	case string:
		ret, err := strconv.Atoi(actual)
		return ret, err == nil
	}
	return 0, false
}
