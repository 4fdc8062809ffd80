package ui

import (
	"io"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/noborus/ov/oviewer"
)

const helpKeyWidth = 14

// HelpRenderer handles help content rendering
type HelpRenderer struct{}

// NewHelpRenderer creates a new help renderer
func NewHelpRenderer() *HelpRenderer {
	return &HelpRenderer{}
}

// RenderHelpContent generates help content with colors for the pager
func (r *HelpRenderer) RenderHelpContent() string {
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("99")).
		MarginBottom(1)

	sectionStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("39")).
		MarginTop(1)

	keyStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("220"))

	descStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("252"))

	// pad by display width; arrows are multi-byte and styles add escapes
	entry := func(k, desc string) string {
		pad := strings.Repeat(" ", max(helpKeyWidth-lipgloss.Width(k), 0))
		return "  " + keyStyle.Render(k) + pad + " " + descStyle.Render(desc)
	}
	line := func(b *strings.Builder, k, desc string) {
		b.WriteString(entry(k, desc))
		b.WriteString("\n")
	}

	var help strings.Builder

	help.WriteString(titleStyle.Render("geosearch Help"))
	help.WriteString("\n")

	help.WriteString(sectionStyle.Render("Search"))
	help.WriteString("\n")
	line(&help, "Ctrl+/", "Focus the search box")
	line(&help, "Enter", "Search for places starting with the query")
	line(&help, "Esc", "Return to the search box")
	help.WriteString("\n")

	help.WriteString(sectionStyle.Render("Page size"))
	help.WriteString("\n")
	line(&help, "Tab/Shift+Tab", "Move between fields")
	line(&help, "↑/↓", "Increase/decrease the focused size")
	line(&help, "0-9", "Type a size between 1 and 10")
	help.WriteString(lipgloss.NewStyle().Italic(true).Foreground(lipgloss.Color("241")).
		Render("  Results per page is sent to the server, show per page trims the table"))
	help.WriteString("\n")

	help.WriteString(sectionStyle.Render("Pages"))
	help.WriteString("\n")
	line(&help, "←/→, h/l", "Move between page buttons")
	line(&help, "Home/End", "First/last page")
	line(&help, "Enter/Space", "Load the selected page")
	line(&help, "1-9", "Load that page directly")
	help.WriteString("\n")

	help.WriteString(sectionStyle.Render("Other"))
	help.WriteString("\n")
	line(&help, "?, F1", "Show this help")
	line(&help, "q", "Quit (from the page buttons)")
	help.WriteString(entry("Ctrl+C", "Quit"))

	return help.String()
}

// helpPager shows text in ov. It implements tea.ExecCommand so bubbletea
// releases the terminal for as long as the pager runs.
type helpPager struct {
	content string
	stdin   io.Reader
	stdout  io.Writer
	stderr  io.Writer
}

func newHelpPager(content string) *helpPager {
	return &helpPager{content: content}
}

func (p *helpPager) SetStdin(r io.Reader)  { p.stdin = r }
func (p *helpPager) SetStdout(w io.Writer) { p.stdout = w }
func (p *helpPager) SetStderr(w io.Writer) { p.stderr = w }

// Run blocks until the pager is closed
func (p *helpPager) Run() error {
	root, err := oviewer.NewRoot(strings.NewReader(p.content))
	if err != nil {
		return err
	}

	// Configure ov to not write on exit (to avoid messing with our screen)
	config := oviewer.NewConfig()
	config.IsWriteOnExit = false
	config.IsWriteOriginal = false
	root.SetConfig(config)

	return root.Run()
}

// showHelpPager returns a command that shows help using ov pager
func showHelpPager(content string) tea.Cmd {
	return tea.Exec(newHelpPager(content), func(err error) tea.Msg {
		return helpPagerMsg{err: err}
	})
}
