package thought

// Record is one reasoning step submitted by the caller.
type Record struct {
	Thought           string `json:"thought"`
	ThoughtNumber     int    `json:"thoughtNumber"`
	TotalThoughts     int    `json:"totalThoughts"`
	NextThoughtNeeded bool   `json:"nextThoughtNeeded"`
	IsRevision        bool   `json:"isRevision,omitempty"`
	RevisesThought    *int   `json:"revisesThought,omitempty"`
	BranchFromThought *int   `json:"branchFromThought,omitempty"`
	BranchID          string `json:"branchId,omitempty"`
}

// Normalize raises TotalThoughts to ThoughtNumber when the caller has
// overrun its own estimate. It only ever touches this record.
func (r Record) Normalize() Record {
	if r.ThoughtNumber > r.TotalThoughts {
		r.TotalThoughts = r.ThoughtNumber
	}
	return r
}

// Branched reports whether the record belongs in a branch: it must carry
// both a branch origin and a non-empty branch id.
func (r Record) Branched() bool {
	return r.BranchFromThought != nil && r.BranchID != ""
}

// State returns the cognitive state named in the record's branch id.
func (r Record) State() State {
	return StateOf(r.BranchID)
}
