package cli

import (
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/dmitrijs2005/passvault/internal/models"
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Underline(true)
	msgStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	errStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	dimStyle   = lipgloss.NewStyle().Faint(true)
	headStyle  = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle  = lipgloss.NewStyle().Padding(0, 1)
)

// renderRecords lays records out as a table. Passwords and notes are never
// printed.
func renderRecords(list []models.RecordView) string {
	rows := make([][]string, 0, len(list))
	for _, r := range list {
		rows = append(rows, []string{strconv.FormatInt(r.ID, 10), r.Name, r.Category, r.Username, r.URL})
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("ID", "NAME", "CATEGORY", "USERNAME", "URL").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headStyle
			}
			return cellStyle
		})

	return t.String()
}
