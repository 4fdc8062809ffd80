package views

import (
	"github.com/charmbracelet/lipgloss"
)

// Styles contains all the style definitions for the UI
type Styles struct {
	Title         lipgloss.Style
	Dim           lipgloss.Style
	Label         lipgloss.Style
	FocusedLabel  lipgloss.Style
	SearchBox     lipgloss.Style
	SearchFocused lipgloss.Style
	Shortcut      lipgloss.Style
	TableHeader   lipgloss.Style
	TableCell     lipgloss.Style
	TableIndex    lipgloss.Style
	Message       lipgloss.Style
	PageButton    lipgloss.Style
	PageActive    lipgloss.Style
	PageCursor    lipgloss.Style
	Help          lipgloss.Style
	Main          lipgloss.Style
	StatusError   lipgloss.Style
	StatusWarning lipgloss.Style
	StatusLoading lipgloss.Style
}

// NewStyles creates a new Styles instance with default values
func NewStyles() *Styles {
	return &Styles{
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("99")).
			MarginBottom(1),
		Dim:          lipgloss.NewStyle().Faint(true),
		Label:        lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		FocusedLabel: lipgloss.NewStyle().Foreground(lipgloss.Color("220")).Bold(true),
		SearchBox: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("241")).
			Padding(0, 1),
		SearchFocused: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("99")).
			Padding(0, 1),
		Shortcut: lipgloss.NewStyle().
			Foreground(lipgloss.Color("252")).
			Background(lipgloss.Color("238")).
			Padding(0, 1),
		TableHeader: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("39")).
			BorderStyle(lipgloss.NormalBorder()).
			BorderBottom(true).
			BorderForeground(lipgloss.Color("241")),
		TableCell:     lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		TableIndex:    lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		Message:       lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Italic(true),
		PageButton:    lipgloss.NewStyle().Padding(0, 1),
		PageActive:    lipgloss.NewStyle().Padding(0, 1).Bold(true).Foreground(lipgloss.Color("0")).Background(lipgloss.Color("99")),
		PageCursor:    lipgloss.NewStyle().Padding(0, 1).Underline(true).Foreground(lipgloss.Color("220")),
		Help:          lipgloss.NewStyle().Faint(true),
		Main:          lipgloss.NewStyle().Padding(1, 2),
		StatusError:   lipgloss.NewStyle().Foreground(lipgloss.Color("203")), // red
		StatusWarning: lipgloss.NewStyle().Foreground(lipgloss.Color("214")), // yellow
		StatusLoading: lipgloss.NewStyle().Foreground(lipgloss.Color("241")), // gray
	}
}
