// Package replay feeds recorded tool arguments back through a handler.
package replay

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/kokistudios/thinkstate/internal/thinking"
)

// maxLine bounds a single recorded call. Thoughts can run long.
const maxLine = 4 * 1024 * 1024

// Call is one recorded argument bag and the line it came from.
type Call struct {
	Line int
	Args json.RawMessage
}

// Step pairs a call with the handler's result for it.
type Step struct {
	Call   Call
	Result thinking.Result
}

// Summary counts the outcomes of a replay.
type Summary struct {
	Accepted int
	Rejected int
}

// ReadFile reads calls from a JSONL file (one JSON object per line).
func ReadFile(path string) ([]Call, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file %s: %w", path, err)
	}
	defer f.Close()

	calls, err := Read(f)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return calls, nil
}

// Read reads calls from r. Blank lines are skipped. Lines are passed through
// unparsed so malformed calls are rejected by the handler like any other.
func Read(r io.Reader) ([]Call, error) {
	var calls []Call
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLine)
	lineNum := 0

	for scanner.Scan() {
		lineNum++
		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			continue
		}
		args := make(json.RawMessage, len(line))
		copy(args, line)
		calls = append(calls, Call{Line: lineNum, Args: args})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("line %d: %w", lineNum+1, err)
	}
	return calls, nil
}

// Run sends each call through h in order. Every response body is written to
// out as one line of compact JSON. It stops early only if ctx is done or out
// fails.
func Run(ctx context.Context, h *thinking.Handler, calls []Call, out io.Writer) ([]Step, Summary, error) {
	var sum Summary
	steps := make([]Step, 0, len(calls))
	enc := json.NewEncoder(out)

	for _, c := range calls {
		if err := ctx.Err(); err != nil {
			return steps, sum, err
		}
		res := h.HandleJSON(ctx, c.Args)
		if res.IsError {
			sum.Rejected++
		} else {
			sum.Accepted++
		}
		steps = append(steps, Step{Call: c, Result: res})

		if out == nil {
			continue
		}
		if err := enc.Encode(res.Body); err != nil {
			return steps, sum, fmt.Errorf("line %d: failed to write response: %w", c.Line, err)
		}
	}
	return steps, sum, nil
}
