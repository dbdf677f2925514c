package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/kokistudios/thinkstate/internal/thought"
)

// thoughtStyle is how one cognitive state is shown in the diagnostic box.
type thoughtStyle struct {
	icon  string
	label string
	color lipgloss.Color
}

func styleFor(s thought.State) thoughtStyle {
	switch s {
	case thought.StateDecompose:
		return thoughtStyle{"🧩", "Decompose", lipgloss.Color("12")}
	case thought.StateExplore:
		return thoughtStyle{"🔍", "Explore", lipgloss.Color("14")}
	case thought.StateChallenge:
		return thoughtStyle{"🥊", "Challenge", lipgloss.Color("9")}
	case thought.StateExpand:
		return thoughtStyle{"🌱", "Expand", lipgloss.Color("10")}
	case thought.StateSynthesize:
		return thoughtStyle{"🔗", "Synthesize", lipgloss.Color("13")}
	case thought.StateExecute:
		return thoughtStyle{"🚀", "Execute", lipgloss.Color("11")}
	case thought.StateReflect:
		return thoughtStyle{"🪞", "Reflect", lipgloss.Color("248")}
	default:
		return thoughtStyle{"💭", "Thought", lipgloss.Color("63")}
	}
}

// ThoughtHeader builds the one-line box header for a record.
func ThoughtHeader(r thought.Record) string {
	st := styleFor(r.State())
	label := lipgloss.NewStyle().Bold(true).Foreground(st.color).Render(st.icon + " " + st.label)

	var context string
	switch {
	case r.IsRevision && r.RevisesThought != nil:
		context = fmt.Sprintf(" (revising %d)", *r.RevisesThought)
	case r.BranchFromThought != nil:
		context = fmt.Sprintf(" (from %d)", *r.BranchFromThought)
	}

	var tag string
	if r.BranchID != "" {
		tag = "[" + r.BranchID + "]"
	}

	return fmt.Sprintf("%s %d/%d%s%s", label, r.ThoughtNumber, r.TotalThoughts, context, tag)
}

// ThoughtBox renders a record as a bordered block for the diagnostic channel.
// The box is as wide as the wider of the header and the longest thought line.
func ThoughtBox(r thought.Record) string {
	header := ThoughtHeader(r)
	body := bodyLines(r.Thought)

	width := lipgloss.Width(header)
	for _, line := range body {
		if w := lipgloss.Width(line); w > width {
			width = w
		}
	}

	border := lipgloss.NewStyle().Foreground(styleFor(r.State()).color)
	rule := strings.Repeat("─", width+2)
	side := border.Render("│")

	var b strings.Builder
	b.WriteString(border.Render("┌"+rule+"┐") + "\n")
	b.WriteString(side + " " + padRight(header, width) + " " + side + "\n")
	b.WriteString(border.Render("├"+rule+"┤") + "\n")
	for _, line := range body {
		b.WriteString(side + " " + padRight(line, width) + " " + side + "\n")
	}
	b.WriteString(border.Render("└" + rule + "┘"))
	return b.String()
}

func bodyLines(s string) []string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\t", "    ")
	return strings.Split(s, "\n")
}

func padRight(s string, width int) string {
	if gap := width - lipgloss.Width(s); gap > 0 {
		return s + strings.Repeat(" ", gap)
	}
	return s
}
