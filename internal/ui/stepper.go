package ui

import (
	"fmt"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

// stepperModel is a bubbletea model that pages through rendered thoughts.
type stepperModel struct {
	pages  []string
	cursor int
	quit   bool
}

func (m stepperModel) Init() tea.Cmd { return nil }

func (m stepperModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "right", "l", "n", "enter", " ":
			if m.cursor < len(m.pages)-1 {
				m.cursor++
			}
		case "left", "h", "p":
			if m.cursor > 0 {
				m.cursor--
			}
		case "home", "g":
			m.cursor = 0
		case "end", "G":
			m.cursor = len(m.pages) - 1
		case "q", "esc", "ctrl+c":
			m.quit = true
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m stepperModel) View() string {
	if m.quit || len(m.pages) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(m.pages[m.cursor])
	b.WriteString("\n\n")
	b.WriteString(dimStyle.Render(fmt.Sprintf("  %d/%d  ←/→ navigate • g/G first/last • q quit", m.cursor+1, len(m.pages))))
	b.WriteString("\n")
	return b.String()
}

// StepThrough shows pages one at a time until the user quits.
func StepThrough(pages []string) error {
	if len(pages) == 0 {
		return nil
	}
	p := tea.NewProgram(stepperModel{pages: pages}, tea.WithOutput(os.Stderr))
	_, err := p.Run()
	return err
}
