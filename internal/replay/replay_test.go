package replay

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/kokistudios/thinkstate/internal/history"
	"github.com/kokistudios/thinkstate/internal/thinking"
)

const session = `{"thought":"split it","thoughtNumber":1,"totalThoughts":3,"nextThoughtNeeded":true,"branchId":"state: DECOMPOSE"}

{"thought":"look at A","thoughtNumber":2,"totalThoughts":3,"nextThoughtNeeded":true,"branchFromThought":1,"branchId":"state: EXPLORE(A)"}
not json
{"thoughtNumber":3,"totalThoughts":3,"nextThoughtNeeded":false}
{"thought":"done","thoughtNumber":4,"totalThoughts":3,"nextThoughtNeeded":false}
`

func newHandler() *thinking.Handler {
	return thinking.NewHandler(history.New(), thinking.Options{Logger: log.New(io.Discard)})
}

func TestRead_SkipsBlankLines(t *testing.T) {
	calls, err := Read(strings.NewReader(session))
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	if len(calls) != 5 {
		t.Fatalf("expected 5 calls, got %d", len(calls))
	}
	wantLines := []int{1, 3, 4, 5, 6}
	for i, c := range calls {
		if c.Line != wantLines[i] {
			t.Errorf("call %d: expected line %d, got %d", i, wantLines[i], c.Line)
		}
	}
	if string(calls[2].Args) != "not json" {
		t.Errorf("expected raw line to be kept, got %q", calls[2].Args)
	}
}

func TestReadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.jsonl")
	if err := os.WriteFile(path, []byte(session), 0644); err != nil {
		t.Fatal(err)
	}
	calls, err := ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}
	if len(calls) != 5 {
		t.Errorf("expected 5 calls, got %d", len(calls))
	}
}

func TestReadFile_Missing(t *testing.T) {
	if _, err := ReadFile(filepath.Join(t.TempDir(), "nope.jsonl")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestRun(t *testing.T) {
	calls, err := Read(strings.NewReader(session))
	if err != nil {
		t.Fatal(err)
	}
	h := newHandler()
	var out bytes.Buffer

	steps, sum, err := Run(context.Background(), h, calls, &out)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if len(steps) != 5 {
		t.Fatalf("expected 5 steps, got %d", len(steps))
	}
	if sum.Accepted != 3 || sum.Rejected != 2 {
		t.Errorf("expected 3 accepted / 2 rejected, got %+v", sum)
	}
	if h.Store().Len() != 3 {
		t.Errorf("expected 3 stored thoughts, got %d", h.Store().Len())
	}

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	if len(lines) != 5 {
		t.Fatalf("expected 5 response lines, got %d:\n%s", len(lines), out.String())
	}

	var bad map[string]any
	json.Unmarshal([]byte(lines[2]), &bad)
	if bad["error"] != "Invalid arguments: must be an object" || bad["status"] != "failed" {
		t.Errorf("unexpected response for malformed line: %s", lines[2])
	}

	var missing map[string]any
	json.Unmarshal([]byte(lines[3]), &missing)
	if missing["error"] != "Invalid thought: must be a string" {
		t.Errorf("unexpected response for missing thought: %s", lines[3])
	}

	var last map[string]any
	json.Unmarshal([]byte(lines[4]), &last)
	if last["totalThoughts"] != 4.0 {
		t.Errorf("expected totalThoughts raised to 4, got %v", last["totalThoughts"])
	}
	if last["thoughtHistoryLength"] != 3.0 {
		t.Errorf("expected history length 3, got %v", last["thoughtHistoryLength"])
	}
	branches, _ := last["branches"].([]any)
	if len(branches) != 1 || branches[0] != "state: EXPLORE(A)" {
		t.Errorf("unexpected branches %v", last["branches"])
	}
}

func TestRun_NilOutput(t *testing.T) {
	calls, _ := Read(strings.NewReader(session))
	steps, sum, err := Run(context.Background(), newHandler(), calls, nil)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if len(steps) != 5 || sum.Accepted != 3 {
		t.Errorf("unexpected result: %d steps, %+v", len(steps), sum)
	}
}

func TestRun_CanceledContext(t *testing.T) {
	calls, _ := Read(strings.NewReader(session))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	h := newHandler()
	steps, _, err := Run(ctx, h, calls, io.Discard)
	if err == nil {
		t.Error("expected context error")
	}
	if len(steps) != 0 || h.Store().Len() != 0 {
		t.Errorf("expected nothing replayed, got %d steps", len(steps))
	}
}
