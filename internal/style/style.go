// Package style centralizes the lipgloss styles used by CLI output.
package style

import (
	"os"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"
)

var (
	Header  = lipgloss.NewStyle().Bold(true).Underline(true)
	Bold    = lipgloss.NewStyle().Bold(true)
	Subtle  = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	Overdue = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
	Date    = lipgloss.NewStyle().Foreground(lipgloss.Color("75"))
	Tag     = lipgloss.NewStyle().Foreground(lipgloss.Color("114"))
	Done    = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).Strikethrough(true)
)

// TermWidth returns the terminal width, or a sane default when output is
// not a terminal.
func TermWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return 80
	}
	return width
}
