// Package thinking turns tool calls into history updates and summary responses.
package thinking

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/log"

	"github.com/kokistudios/thinkstate/internal/history"
	"github.com/kokistudios/thinkstate/internal/thought"
)

// StatusFailed is the status reported with every rejected call.
const StatusFailed = "failed"

// Response is the success body returned to the caller.
type Response struct {
	ThoughtNumber        int      `json:"thoughtNumber"`
	TotalThoughts        int      `json:"totalThoughts"`
	NextThoughtNeeded    bool     `json:"nextThoughtNeeded"`
	Branches             []string `json:"branches"`
	ThoughtHistoryLength int      `json:"thoughtHistoryLength"`
}

// Failure is the error body returned for a rejected call.
type Failure struct {
	Error  string `json:"error"`
	Status string `json:"status"`
}

// Result is a protocol-neutral tool result: one JSON body and an error flag.
type Result struct {
	Body    any
	IsError bool
}

// Text renders the body as indented JSON.
func (r Result) Text() string {
	data, err := json.MarshalIndent(r.Body, "", "  ")
	if err != nil {
		return fmt.Sprintf(`{"error": %q, "status": %q}`, err.Error(), StatusFailed)
	}
	return string(data)
}

// Formatter renders a record for the diagnostic channel.
type Formatter func(thought.Record) string

// Options configures a Handler.
type Options struct {
	// Diagnostics receives formatted thoughts. Nil disables them.
	Diagnostics io.Writer
	// Format renders each stored thought. Nil disables diagnostics.
	Format Formatter
	// DisableLogging suppresses diagnostics regardless of the two fields above.
	DisableLogging bool
	// Logger receives operational logs. Nil uses the charmbracelet default.
	Logger *log.Logger
}

// Handler validates, stores and reports thoughts. It is the only code path
// that mutates the history store.
type Handler struct {
	store  *history.Store
	diag   io.Writer
	format Formatter
	logger *log.Logger
}

// NewHandler creates a handler that records into st.
func NewHandler(st *history.Store, opts Options) *Handler {
	h := &Handler{
		store:  st,
		logger: opts.Logger,
	}
	if !opts.DisableLogging && opts.Diagnostics != nil && opts.Format != nil {
		h.diag = opts.Diagnostics
		h.format = opts.Format
	}
	if h.logger == nil {
		h.logger = log.Default()
	}
	return h
}

// Store returns the history the handler writes to.
func (h *Handler) Store() *history.Store {
	return h.store
}

// Handle processes one tool call's argument bag.
func (h *Handler) Handle(ctx context.Context, args map[string]any) Result {
	rec, err := thought.Decode(args)
	if err != nil {
		return h.reject(ctx, err)
	}
	return h.accept(ctx, rec)
}

// HandleJSON processes raw JSON arguments as delivered by the transport.
func (h *Handler) HandleJSON(ctx context.Context, raw json.RawMessage) Result {
	rec, err := thought.DecodeJSON(raw)
	if err != nil {
		return h.reject(ctx, err)
	}
	return h.accept(ctx, rec)
}

func (h *Handler) accept(ctx context.Context, rec thought.Record) Result {
	rec = rec.Normalize()
	snap := h.store.Record(ctx, rec)

	if snap.NewBranch {
		h.logger.Debug("branch created", "session", h.store.SessionID(), "branch", rec.BranchID)
	}
	h.writeDiagnostic(rec)

	return Result{Body: Response{
		ThoughtNumber:        rec.ThoughtNumber,
		TotalThoughts:        rec.TotalThoughts,
		NextThoughtNeeded:    rec.NextThoughtNeeded,
		Branches:             snap.Branches,
		ThoughtHistoryLength: snap.HistoryLength,
	}}
}

func (h *Handler) reject(ctx context.Context, err error) Result {
	var verr *thought.ValidationError
	if errors.As(err, &verr) {
		h.logger.Debug("thought rejected", "session", h.store.SessionID(), "field", verr.Field, "err", err)
	} else {
		h.logger.Warn("thought rejected", "session", h.store.SessionID(), "err", err)
	}
	h.store.Reject(ctx, err)

	return Result{
		IsError: true,
		Body:    Failure{Error: err.Error(), Status: StatusFailed},
	}
}

// writeDiagnostic never fails the request; write errors are only logged.
func (h *Handler) writeDiagnostic(rec thought.Record) {
	if h.diag == nil {
		return
	}
	if _, err := io.WriteString(h.diag, h.format(rec)+"\n"); err != nil {
		h.logger.Warn("diagnostic write failed", "session", h.store.SessionID(), "thought", rec.ThoughtNumber, "err", err)
	}
}
