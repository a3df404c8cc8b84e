package report

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"eligibility/pkg/utils"
)

// maxFileWidth caps the file column so long input paths do not blow up the table.
const maxFileWidth = 40

var summaryHeader = []string{"Partner", "File", "Total", "Successful", "Failed", "Success rate"}

// numeric columns are right aligned
var numericColumn = []bool{false, false, true, true, true, true}

// SummaryTable renders the per-partner stats as a bordered table, one line
// per slice element, followed by a totals line.
func SummaryTable(rep *Report) []string {
	strs := utils.NewStringHelper()

	table := [][]string{summaryHeader}

	var total, successful, failed int

	for _, p := range rep.Partners {
		table = append(table, []string{
			p.ID,
			strs.TruncateString(filepath.Base(p.File), maxFileWidth),
			strconv.Itoa(p.TotalRows),
			strconv.Itoa(p.SuccessfulRows),
			strconv.Itoa(p.FailedRows),
			fmt.Sprintf("%.1f%%", p.SuccessRate),
		})

		total += p.TotalRows
		successful += p.SuccessfulRows
		failed += p.FailedRows
	}

	widths := make([]int, len(summaryHeader))

	for _, row := range table {
		for i, cell := range row {
			if w := strs.Width(cell); w > widths[i] {
				widths[i] = w
			}
		}
	}

	// Separator needs at least "---".
	for i := range widths {
		if widths[i] < 3 {
			widths[i] = 3
		}
	}

	lines := make([]string, 0, len(table)+2)

	for i, row := range table {
		lines = append(lines, renderRow(strs, row, widths))

		if i == 0 {
			lines = append(lines, renderSeparator(widths))
		}
	}

	lines = append(lines, fmt.Sprintf("Records written: %d (rows: %d total, %d successful, %d failed)",
		rep.RecordsWritten, total, successful, failed))

	return lines
}

func renderRow(strs *utils.StringHelper, row []string, widths []int) string {
	var sb strings.Builder

	sb.WriteString("|")

	for i, cell := range row {
		sb.WriteString(" ")

		if numericColumn[i] {
			sb.WriteString(strs.PadLeft(cell, widths[i]))
		} else {
			sb.WriteString(strs.PadRight(cell, widths[i]))
		}

		sb.WriteString(" |")
	}

	return sb.String()
}

func renderSeparator(widths []int) string {
	var sb strings.Builder

	sb.WriteString("|")

	for _, w := range widths {
		sb.WriteString(" ")
		sb.WriteString(strings.Repeat("-", w))
		sb.WriteString(" |")
	}

	return sb.String()
}
