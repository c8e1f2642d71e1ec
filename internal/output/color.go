package output

import (
	"os"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/sys/unix"
)

// Styles holds the lipgloss styles applied to each output element.
type Styles struct {
	Source    lipgloss.Style
	LineNum   lipgloss.Style
	Separator lipgloss.Style
	Match     lipgloss.Style
}

// DefaultStyles returns the output styles. With colored false every
// style is a passthrough. Colors are adaptive so they stay readable on
// both light and dark backgrounds.
func DefaultStyles(colored bool) Styles {
	if !colored {
		plain := lipgloss.NewStyle()
		return Styles{Source: plain, LineNum: plain, Separator: plain, Match: plain}
	}
	return Styles{
		Source:    lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "91", Dark: "213"}),
		LineNum:   lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "28", Dark: "118"}),
		Separator: lipgloss.NewStyle().Faint(true),
		Match:     lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "124", Dark: "203"}).Bold(true),
	}
}

// IsTerminal checks if the given file descriptor is a terminal.
func IsTerminal(fd uintptr) bool {
	_, err := unix.IoctlGetTermios(int(fd), unix.TCGETS)
	return err == nil
}

// StdoutIsTerminal returns true if stdout is a terminal.
func StdoutIsTerminal() bool {
	return IsTerminal(os.Stdout.Fd())
}
