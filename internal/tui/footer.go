package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
)

// FooterModel renders the key help and the run status.
type FooterModel struct {
	bindings []key.Binding
	paused   bool
	done     bool
	failed   bool
	width    int
}

// NewFooterModel creates a footer advertising bindings.
func NewFooterModel(bindings []key.Binding) FooterModel {
	return FooterModel{bindings: bindings}
}

func (f *FooterModel) SetWidth(w int)       { f.width = w }
func (f *FooterModel) SetPaused(p bool)     { f.paused = p }
func (f *FooterModel) SetDone(d bool)       { f.done = d }
func (f *FooterModel) SetError(failed bool) { f.failed = failed }

func (f FooterModel) status() string {
	switch {
	case f.failed:
		return statusErrorStyle.Render("● Error")
	case f.done:
		return statusDoneStyle.Render("● Done")
	case f.paused:
		return statusPausedStyle.Render("● Paused")
	default:
		return statusRunningStyle.Render("● Running")
	}
}

// View renders the footer.
func (f FooterModel) View() string {
	parts := make([]string, 0, len(f.bindings)+1)
	parts = append(parts, f.status())
	for _, b := range f.bindings {
		h := b.Help()
		parts = append(parts, footerKeyStyle.Render(h.Key)+" "+dimStyle.Render(h.Desc))
	}
	return " " + strings.Join(parts, "  ")
}
