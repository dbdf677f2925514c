// Package history holds the per-process thought log and its branch index.
package history

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/zoobzio/capitan"

	"github.com/kokistudios/thinkstate/internal/thought"
)

// Store is an append-only log of thought records plus a branch index.
// One Store lives for the whole server process; every mutation holds mu so
// append order stays deterministic even if requests arrive concurrently.
type Store struct {
	id string

	mu          sync.Mutex
	records     []thought.Record
	branches    map[string][]thought.Record
	branchOrder []string
}

// Snapshot is the bookkeeping a caller sees after a thought is recorded.
type Snapshot struct {
	Record        thought.Record
	Branches      []string
	HistoryLength int
	NewBranch     bool
}

// New creates an empty store tagged with a fresh session id.
func New() *Store {
	return &Store{
		id:       uuid.New().String(),
		branches: make(map[string][]thought.Record),
	}
}

// SessionID identifies this store in logs and signals.
func (s *Store) SessionID() string {
	return s.id
}

// Append adds rec to the end of the history and returns the new length.
func (s *Store) Append(rec thought.Record) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.appendLocked(rec)
}

// AppendToBranch adds rec to the named branch, creating it on first use.
// It reports whether the branch was created by this call.
func (s *Store) AppendToBranch(branchID string, rec thought.Record) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.appendBranchLocked(branchID, rec)
}

// Record stores rec and, when it qualifies, adds it to its branch. The
// returned snapshot is taken under the same lock as the writes.
func (s *Store) Record(ctx context.Context, rec thought.Record) Snapshot {
	s.mu.Lock()
	n := s.appendLocked(rec)
	created := false
	if rec.Branched() {
		created = s.appendBranchLocked(rec.BranchID, rec)
	}
	snap := Snapshot{
		Record:        rec,
		Branches:      s.branchNamesLocked(),
		HistoryLength: n,
		NewBranch:     created,
	}
	s.mu.Unlock()

	capitan.Emit(ctx, ThoughtRecorded,
		FieldSessionID.Field(s.id),
		FieldThoughtNumber.Field(rec.ThoughtNumber),
		FieldTotalThoughts.Field(rec.TotalThoughts),
		FieldHistoryLength.Field(n),
		FieldBranchID.Field(rec.BranchID),
		FieldState.Field(rec.State().String()),
	)
	if created {
		capitan.Emit(ctx, BranchCreated,
			FieldSessionID.Field(s.id),
			FieldBranchID.Field(rec.BranchID),
		)
	}

	return snap
}

// Reject announces a thought that failed validation. The store is not touched.
func (s *Store) Reject(ctx context.Context, err error) {
	capitan.Emit(ctx, ThoughtRejected,
		FieldSessionID.Field(s.id),
		FieldError.Field(err),
	)
}

// BranchNames returns known branch ids in the order they were first created.
// The result is never nil.
func (s *Store) BranchNames() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.branchNamesLocked()
}

// Len returns the number of stored records.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.records)
}

// Records returns a copy of the history in arrival order.
func (s *Store) Records() []thought.Record {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]thought.Record, len(s.records))
	copy(out, s.records)
	return out
}

// Branch returns a copy of the records filed under branchID.
func (s *Store) Branch(branchID string) []thought.Record {
	s.mu.Lock()
	defer s.mu.Unlock()
	recs := s.branches[branchID]
	out := make([]thought.Record, len(recs))
	copy(out, recs)
	return out
}

func (s *Store) appendLocked(rec thought.Record) int {
	s.records = append(s.records, rec)
	return len(s.records)
}

func (s *Store) appendBranchLocked(branchID string, rec thought.Record) bool {
	_, exists := s.branches[branchID]
	if !exists {
		s.branchOrder = append(s.branchOrder, branchID)
	}
	s.branches[branchID] = append(s.branches[branchID], rec)
	return !exists
}

func (s *Store) branchNamesLocked() []string {
	names := make([]string, len(s.branchOrder))
	copy(names, s.branchOrder)
	return names
}
