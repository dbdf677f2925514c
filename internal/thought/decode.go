package thought

import (
	"encoding/json"
	"fmt"
	"math"
)

// ValidationError reports an argument bag that could not be turned into a Record.
type ValidationError struct {
	Field string
	Want  string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("Invalid %s: must be %s", e.Field, e.Want)
}

func invalid(field, want string) *ValidationError {
	return &ValidationError{Field: field, Want: want}
}

// Decode converts an untyped argument bag into a Record. It is the only
// place external data crosses into the typed model. Optional fields are
// type-checked too; a JSON null counts as absent.
func Decode(args map[string]any) (Record, error) {
	var r Record
	if args == nil {
		return r, invalid("thought", "a string")
	}

	s, ok := args["thought"].(string)
	if !ok || s == "" {
		return r, invalid("thought", "a string")
	}
	r.Thought = s

	n, err := requiredInt(args, "thoughtNumber")
	if err != nil {
		return r, err
	}
	r.ThoughtNumber = n

	n, err = requiredInt(args, "totalThoughts")
	if err != nil {
		return r, err
	}
	r.TotalThoughts = n

	b, ok := args["nextThoughtNeeded"].(bool)
	if !ok {
		return r, invalid("nextThoughtNeeded", "a boolean")
	}
	r.NextThoughtNeeded = b

	if v, present := optional(args, "isRevision"); present {
		b, ok := v.(bool)
		if !ok {
			return r, invalid("isRevision", "a boolean")
		}
		r.IsRevision = b
	}

	if v, present := optional(args, "revisesThought"); present {
		n, err := positiveInt("revisesThought", v)
		if err != nil {
			return r, err
		}
		r.RevisesThought = &n
	}

	if v, present := optional(args, "branchFromThought"); present {
		n, err := positiveInt("branchFromThought", v)
		if err != nil {
			return r, err
		}
		r.BranchFromThought = &n
	}

	if v, present := optional(args, "branchId"); present {
		s, ok := v.(string)
		if !ok {
			return r, invalid("branchId", "a string")
		}
		r.BranchID = s
	}

	return r, nil
}

// DecodeJSON decodes raw tool arguments. Anything other than a JSON object
// is rejected as a whole.
func DecodeJSON(raw json.RawMessage) (Record, error) {
	var args map[string]any
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &args); err != nil {
			return Record{}, invalid("arguments", "an object")
		}
	}
	return Decode(args)
}

func optional(args map[string]any, key string) (any, bool) {
	v, ok := args[key]
	if !ok || v == nil {
		return nil, false
	}
	return v, true
}

func requiredInt(args map[string]any, key string) (int, error) {
	v, ok := args[key]
	if !ok {
		return 0, invalid(key, "a number")
	}
	return positiveInt(key, v)
}

// positiveInt accepts the numeric shapes a JSON decoder or a Go caller may
// produce and insists on a whole number of at least 1.
func positiveInt(key string, v any) (int, error) {
	var f float64
	switch n := v.(type) {
	case float64:
		f = n
	case float32:
		f = float64(n)
	case int:
		f = float64(n)
	case int64:
		f = float64(n)
	case int32:
		f = float64(n)
	case json.Number:
		parsed, err := n.Float64()
		if err != nil {
			return 0, invalid(key, "a number")
		}
		f = parsed
	default:
		return 0, invalid(key, "a number")
	}

	if math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) || f < 1 || f > math.MaxInt32 {
		return 0, invalid(key, "a positive integer")
	}
	return int(f), nil
}
