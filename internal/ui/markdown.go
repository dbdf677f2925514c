package ui

import (
	"fmt"
	"io"

	"github.com/charmbracelet/glamour"
)

// RenderMarkdown writes md to w as styled terminal output. With plain set it
// uses glamour's "notty" style; if rendering fails the raw markdown is written.
func RenderMarkdown(w io.Writer, md string, plain bool) error {
	style := glamour.WithAutoStyle()
	if plain {
		style = glamour.WithStandardStyle("notty")
	}

	renderer, err := glamour.NewTermRenderer(style, glamour.WithWordWrap(100))
	if err != nil {
		_, werr := fmt.Fprintln(w, md)
		return werr
	}

	out, err := renderer.Render(md)
	if err != nil {
		_, werr := fmt.Fprintln(w, md)
		return werr
	}

	_, err = fmt.Fprint(w, out)
	return err
}
