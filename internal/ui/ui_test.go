package ui

import (
	"bytes"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/kokistudios/thinkstate/internal/thought"
)

func intPtr(n int) *int { return &n }

func TestBold_ContainsText(t *testing.T) {
	Init(false)
	result := Bold("hello")
	if !strings.Contains(result, "hello") {
		t.Errorf("Bold output should contain 'hello', got %q", result)
	}
}

func TestColorDisabled_PlainText(t *testing.T) {
	Init(true) // no color
	defer Init(false)

	if Bold("hello") != "hello" {
		t.Errorf("expected plain text when color disabled, got %q", Bold("hello"))
	}
	if Red("error") != "error" {
		t.Errorf("expected plain text, got %q", Red("error"))
	}
	if Green("ok") != "ok" {
		t.Errorf("expected plain text, got %q", Green("ok"))
	}
	if Yellow("warn") != "warn" {
		t.Errorf("expected plain text, got %q", Yellow("warn"))
	}
	if Dim("dim") != "dim" {
		t.Errorf("expected plain text, got %q", Dim("dim"))
	}
}

func TestLoggerInitialized(t *testing.T) {
	Init(false)
	if Logger == nil {
		t.Error("Logger should be initialized after Init()")
	}
}

func TestSetLevel(t *testing.T) {
	Init(true)
	if err := SetLevel("debug"); err != nil {
		t.Errorf("expected debug to parse, got %v", err)
	}
	if err := SetLevel(""); err != nil {
		t.Errorf("expected empty level to be ignored, got %v", err)
	}
	if err := SetLevel("chatty"); err == nil {
		t.Error("expected error for unknown level")
	}
}

func TestThoughtHeader_Labels(t *testing.T) {
	Init(true)
	defer Init(false)

	cases := []struct {
		branchID string
		want     string
	}{
		{"", "💭 Thought 1/3"},
		{"main", "💭 Thought 1/3[main]"},
		{"state: DECOMPOSE", "🧩 Decompose 1/3[state: DECOMPOSE]"},
		{"state: EXPLORE(x)", "🔍 Explore 1/3[state: EXPLORE(x)]"},
		{"state: CHALLENGE", "🥊 Challenge 1/3[state: CHALLENGE]"},
		{"state: EXPAND", "🌱 Expand 1/3[state: EXPAND]"},
		{"state: SYNTHESIZE", "🔗 Synthesize 1/3[state: SYNTHESIZE]"},
		{"state: EXECUTE", "🚀 Execute 1/3[state: EXECUTE]"},
		{"state: REFLECT", "🪞 Reflect 1/3[state: REFLECT]"},
	}
	for _, tc := range cases {
		r := thought.Record{Thought: "x", ThoughtNumber: 1, TotalThoughts: 3, BranchID: tc.branchID}
		if got := ThoughtHeader(r); got != tc.want {
			t.Errorf("ThoughtHeader(%q) = %q, want %q", tc.branchID, got, tc.want)
		}
	}
}

func TestThoughtHeader_Context(t *testing.T) {
	Init(true)
	defer Init(false)

	revision := thought.Record{ThoughtNumber: 4, TotalThoughts: 5, IsRevision: true, RevisesThought: intPtr(2), BranchFromThought: intPtr(1)}
	if got := ThoughtHeader(revision); !strings.HasSuffix(got, "4/5 (revising 2)") {
		t.Errorf("expected revision context, got %q", got)
	}

	// revisesThought without isRevision falls through to the branch origin
	notRevision := thought.Record{ThoughtNumber: 4, TotalThoughts: 5, RevisesThought: intPtr(2), BranchFromThought: intPtr(1)}
	if got := ThoughtHeader(notRevision); !strings.HasSuffix(got, "4/5 (from 1)") {
		t.Errorf("expected branch context, got %q", got)
	}

	plain := thought.Record{ThoughtNumber: 4, TotalThoughts: 5, IsRevision: true}
	if got := ThoughtHeader(plain); !strings.HasSuffix(got, "4/5") {
		t.Errorf("expected no context, got %q", got)
	}
}

func TestThoughtBox_Layout(t *testing.T) {
	Init(true)
	defer Init(false)

	r := thought.Record{
		Thought:           "a considerably longer line of thought than the header",
		ThoughtNumber:     2,
		TotalThoughts:     3,
		BranchFromThought: intPtr(1),
		BranchID:          "state: EXPLORE(x)",
	}
	box := ThoughtBox(r)
	lines := strings.Split(box, "\n")
	if len(lines) != 5 {
		t.Fatalf("expected 5 lines, got %d:\n%s", len(lines), box)
	}

	width := lipgloss.Width(lines[0])
	for i, line := range lines {
		if w := lipgloss.Width(line); w != width {
			t.Errorf("line %d has width %d, want %d: %q", i, w, width, line)
		}
	}
	if want := lipgloss.Width(r.Thought) + 4; width != want {
		t.Errorf("expected box width %d, got %d", want, width)
	}
	if !strings.HasPrefix(lines[0], "┌") || !strings.HasPrefix(lines[2], "├") || !strings.HasPrefix(lines[4], "└") {
		t.Errorf("unexpected borders:\n%s", box)
	}
	if !strings.Contains(lines[1], "(from 1)[state: EXPLORE(x)]") {
		t.Errorf("expected header in line 1, got %q", lines[1])
	}
	if !strings.Contains(lines[3], r.Thought) {
		t.Errorf("expected thought in line 3, got %q", lines[3])
	}
}

func TestThoughtBox_HeaderWiderThanThought(t *testing.T) {
	Init(true)
	defer Init(false)

	r := thought.Record{Thought: "ok", ThoughtNumber: 10, TotalThoughts: 12, BranchID: "state: SYNTHESIZE"}
	lines := strings.Split(ThoughtBox(r), "\n")
	header := ThoughtHeader(r)
	if got, want := lipgloss.Width(lines[0]), lipgloss.Width(header)+4; got != want {
		t.Errorf("expected width %d from header, got %d", want, got)
	}
	if !strings.HasPrefix(lines[3], "│ ok ") {
		t.Errorf("expected padded thought line, got %q", lines[3])
	}
}

func TestThoughtBox_MultilineThought(t *testing.T) {
	Init(true)
	defer Init(false)

	r := thought.Record{Thought: "first\r\nsecond\tline", ThoughtNumber: 1, TotalThoughts: 1}
	lines := strings.Split(ThoughtBox(r), "\n")
	if len(lines) != 6 {
		t.Fatalf("expected 6 lines for a two-line thought, got %d", len(lines))
	}
	if !strings.Contains(lines[4], "second    line") {
		t.Errorf("expected tab expanded, got %q", lines[4])
	}
}

func TestRenderMarkdown_Plain(t *testing.T) {
	var buf bytes.Buffer
	if err := RenderMarkdown(&buf, "# Title\n\nSome *text*.", true); err != nil {
		t.Fatalf("RenderMarkdown failed: %v", err)
	}
	if !strings.Contains(buf.String(), "Title") {
		t.Errorf("expected rendered title, got %q", buf.String())
	}
}

func TestStepper_Navigation(t *testing.T) {
	Init(true)
	defer Init(false)

	var m tea.Model = stepperModel{pages: []string{"one", "two", "three"}}
	press := func(key tea.KeyType, runes ...rune) {
		m, _ = m.Update(tea.KeyMsg{Type: key, Runes: runes})
	}

	press(tea.KeyRight)
	press(tea.KeyRight)
	press(tea.KeyRight)
	if got := m.(stepperModel).cursor; got != 2 {
		t.Errorf("expected cursor clamped at 2, got %d", got)
	}
	if !strings.Contains(m.View(), "three") || !strings.Contains(m.View(), "3/3") {
		t.Errorf("expected last page in view, got %q", m.View())
	}

	press(tea.KeyLeft)
	if got := m.(stepperModel).cursor; got != 1 {
		t.Errorf("expected cursor 1, got %d", got)
	}

	press(tea.KeyRunes, 'g')
	if got := m.(stepperModel).cursor; got != 0 {
		t.Errorf("expected cursor 0 after g, got %d", got)
	}

	var cmd tea.Cmd
	m, cmd = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	if cmd == nil {
		t.Error("expected quit command")
	}
	if m.View() != "" {
		t.Errorf("expected empty view after quit, got %q", m.View())
	}
}

func TestStepThrough_NoPages(t *testing.T) {
	if err := StepThrough(nil); err != nil {
		t.Errorf("expected nil error for no pages, got %v", err)
	}
}
