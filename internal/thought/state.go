package thought

import "strings"

// State is one of the advisory cognitive states a caller may label a
// thought with. Nothing checks transitions between them.
type State int

const (
	StateNone State = iota
	StateDecompose
	StateExplore
	StateChallenge
	StateExpand
	StateSynthesize
	StateExecute
	StateReflect
)

// statePrefix is the convention for branch ids: "state: NAME" or
// "state: NAME(component)".
const statePrefix = "state:"

var stateNames = map[string]State{
	"DECOMPOSE":  StateDecompose,
	"EXPLORE":    StateExplore,
	"CHALLENGE":  StateChallenge,
	"EXPAND":     StateExpand,
	"SYNTHESIZE": StateSynthesize,
	"EXECUTE":    StateExecute,
	"REFLECT":    StateReflect,
}

// States lists every named state in workflow order.
func States() []State {
	return []State{
		StateDecompose,
		StateExplore,
		StateChallenge,
		StateExpand,
		StateSynthesize,
		StateExecute,
		StateReflect,
	}
}

// String returns the upper-case state name, or "" for StateNone.
func (s State) String() string {
	switch s {
	case StateDecompose:
		return "DECOMPOSE"
	case StateExplore:
		return "EXPLORE"
	case StateChallenge:
		return "CHALLENGE"
	case StateExpand:
		return "EXPAND"
	case StateSynthesize:
		return "SYNTHESIZE"
	case StateExecute:
		return "EXECUTE"
	case StateReflect:
		return "REFLECT"
	default:
		return ""
	}
}

// StateOf parses the state name out of a branch id. The name is the run of
// upper-case letters after "state:"; anything else yields StateNone.
func StateOf(branchID string) State {
	rest, ok := strings.CutPrefix(branchID, statePrefix)
	if !ok {
		return StateNone
	}
	rest = strings.TrimLeft(rest, " ")

	end := 0
	for end < len(rest) && rest[end] >= 'A' && rest[end] <= 'Z' {
		end++
	}
	if end == 0 {
		return StateNone
	}
	return stateNames[rest[:end]]
}

// Component returns the parenthesised component of a branch id such as
// "state: EXPLORE(cache)", or "" when there is none.
func Component(branchID string) string {
	open := strings.IndexByte(branchID, '(')
	if open < 0 {
		return ""
	}
	closing := strings.LastIndexByte(branchID, ')')
	if closing < open {
		return ""
	}
	return strings.TrimSpace(branchID[open+1 : closing])
}
