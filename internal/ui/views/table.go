package views

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// TableRenderer handles rendering of the results table
type TableRenderer struct {
	styles *Styles
}

// NewTableRenderer creates a new table renderer
func NewTableRenderer(styles *Styles) *TableRenderer {
	return &TableRenderer{styles: styles}
}

// Render draws the header and either the rows, the error message, or the
// empty-state text
func (t *TableRenderer) Render(rows []Row, message string) string {
	indexWidth := lipgloss.Width("#")
	nameWidth := lipgloss.Width("Place Name")
	countryWidth := lipgloss.Width("Country")

	indices := make([]string, len(rows))
	countries := make([]string, len(rows))
	for i, row := range rows {
		indices[i] = strconv.Itoa(row.Index)
		countries[i] = countryCell(row)
		indexWidth = max(indexWidth, lipgloss.Width(indices[i]))
		nameWidth = max(nameWidth, lipgloss.Width(row.Place.Name))
		countryWidth = max(countryWidth, lipgloss.Width(countries[i]))
	}

	cell := func(s string, w int) string {
		return s + strings.Repeat(" ", max(w-lipgloss.Width(s), 0))
	}

	var b strings.Builder
	header := cell("#", indexWidth) + "  " + cell("Place Name", nameWidth) + "  " + cell("Country", countryWidth)
	b.WriteString(t.styles.TableHeader.Render(header))
	b.WriteString("\n")

	switch {
	case message != "":
		b.WriteString(t.styles.StatusError.Render(message))
	case len(rows) == 0:
		b.WriteString(t.styles.Message.Render(EmptyStateText))
	default:
		for i, row := range rows {
			if i > 0 {
				b.WriteString("\n")
			}
			b.WriteString(t.styles.TableIndex.Render(cell(indices[i], indexWidth)))
			b.WriteString("  ")
			b.WriteString(t.styles.TableCell.Render(cell(row.Place.Name, nameWidth)))
			b.WriteString("  ")
			b.WriteString(t.styles.TableCell.Render(countries[i]))
		}
	}

	return b.String()
}

func countryCell(row Row) string {
	if flag := row.Place.Flag(); flag != "" {
		return flag + " " + row.Place.Country
	}
	return row.Place.Country
}
