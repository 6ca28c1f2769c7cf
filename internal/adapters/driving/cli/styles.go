package cli

import (
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"
)

// palette is the colour palette used for terminal output.
var palette = struct {
	Primary lipgloss.Color
	Muted   lipgloss.Color
	Success lipgloss.Color
	Warning lipgloss.Color
	Error   lipgloss.Color
}{
	Primary: lipgloss.Color("#7C3AED"), // Purple
	Muted:   lipgloss.Color("#6C7086"), // Medium gray
	Success: lipgloss.Color("#A6E3A1"), // Green
	Warning: lipgloss.Color("#F9E2AF"), // Yellow
	Error:   lipgloss.Color("#F38BA8"), // Red
}

// styles contains the lipgloss styles for command output.
type styles struct {
	Title   lipgloss.Style
	Muted   lipgloss.Style
	Success lipgloss.Style
	Warning lipgloss.Style
	Error   lipgloss.Style
}

// newStyles returns coloured styles, or plain ones when colour is off.
func newStyles(colour bool) *styles {
	if !colour {
		plain := lipgloss.NewStyle()
		return &styles{Title: plain, Muted: plain, Success: plain, Warning: plain, Error: plain}
	}
	return &styles{
		Title:   lipgloss.NewStyle().Bold(true).Foreground(palette.Primary),
		Muted:   lipgloss.NewStyle().Foreground(palette.Muted),
		Success: lipgloss.NewStyle().Foreground(palette.Success),
		Warning: lipgloss.NewStyle().Foreground(palette.Warning),
		Error:   lipgloss.NewStyle().Bold(true).Foreground(palette.Error),
	}
}

// stylesFor picks styles for w. Only terminals get colour.
func stylesFor(w io.Writer) *styles {
	f, ok := w.(*os.File)
	return newStyles(ok && term.IsTerminal(int(f.Fd())))
}
