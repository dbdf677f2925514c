package history

import "github.com/zoobzio/capitan"

// Signals follow the pattern: thinkstate.<entity>.<event>.
var (
	ThoughtRecorded = capitan.NewSignal(
		"thinkstate.thought.recorded",
		"Thought appended to the session history",
	)
	ThoughtRejected = capitan.NewSignal(
		"thinkstate.thought.rejected",
		"Thought failed validation and was not stored",
	)
	BranchCreated = capitan.NewSignal(
		"thinkstate.branch.created",
		"First thought recorded under a new branch id",
	)
)

// Field keys for thinkstate event data.
var (
	FieldSessionID     = capitan.NewStringKey("session_id")
	FieldThoughtNumber = capitan.NewIntKey("thought_number")
	FieldTotalThoughts = capitan.NewIntKey("total_thoughts")
	FieldHistoryLength = capitan.NewIntKey("history_length")
	FieldBranchID      = capitan.NewStringKey("branch_id")
	FieldState         = capitan.NewStringKey("state")
	FieldError         = capitan.NewErrorKey("error")
)
