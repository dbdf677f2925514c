package history

import (
	"context"

	"github.com/charmbracelet/log"
	"github.com/zoobzio/capitan"
)

// LogSignals mirrors history signals onto logger at debug level. Call the
// returned func to stop listening.
func LogSignals(logger *log.Logger) func() {
	recorded := capitan.Hook(ThoughtRecorded, func(_ context.Context, e *capitan.Event) {
		session, _ := FieldSessionID.From(e)
		n, _ := FieldThoughtNumber.From(e)
		total, _ := FieldTotalThoughts.From(e)
		length, _ := FieldHistoryLength.From(e)
		state, _ := FieldState.From(e)
		logger.Debug("thought recorded", "session", session, "thought", n, "total", total, "history", length, "state", state)
	})
	branched := capitan.Hook(BranchCreated, func(_ context.Context, e *capitan.Event) {
		session, _ := FieldSessionID.From(e)
		branch, _ := FieldBranchID.From(e)
		logger.Debug("branch opened", "session", session, "branch", branch)
	})
	rejected := capitan.Hook(ThoughtRejected, func(_ context.Context, e *capitan.Event) {
		session, _ := FieldSessionID.From(e)
		err, _ := FieldError.From(e)
		logger.Debug("thought dropped", "session", session, "err", err)
	})

	return func() {
		recorded.Close()
		branched.Close()
		rejected.Close()
	}
}
