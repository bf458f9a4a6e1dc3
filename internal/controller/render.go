package controller

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/olekukonko/tablewriter"
	"github.com/pmezard/go-difflib/difflib"

	m "fhirfuzz.dev/pkg/fhirfuzz/internal/model"
)

// maxCellWidth caps rendered log values; fuzzed strings can be huge.
const maxCellWidth = 48

const absent = "∅"

// truncate shortens s to at most width terminal columns.
func truncate(s string, width int) string {
	if runewidth.StringWidth(s) <= width {
		return s
	}

	return runewidth.Truncate(s, width, "…")
}

func cell(value string) string {
	if value == "" {
		return absent
	}

	return truncate(strings.ReplaceAll(value, "\n", `\n`), maxCellWidth)
}

func renderLogTable(records []m.LogRecord) string {
	var tableBuffer bytes.Buffer

	table := tablewriter.NewWriter(&tableBuffer)
	table.SetHeader([]string{"Field", "Edit", "Before", "After"})
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetAutoWrapText(false)

	for _, record := range records {
		table.Append([]string{record.Field, record.Description, cell(record.Before), cell(record.After)})
	}

	table.Render()

	return tableBuffer.String()
}

type fieldCount struct {
	field string
	count int
}

func sortedFieldCounts(fields map[string]int) []fieldCount {
	counts := make([]fieldCount, 0, len(fields))
	for field, count := range fields {
		counts = append(counts, fieldCount{field: field, count: count})
	}

	sort.Slice(counts, func(i, j int) bool {
		if counts[i].count != counts[j].count {
			return counts[i].count > counts[j].count
		}

		return counts[i].field < counts[j].field
	})

	return counts
}

func renderSummaryTable(summary m.Summary) string {
	var tableBuffer bytes.Buffer

	table := tablewriter.NewWriter(&tableBuffer)
	table.SetHeader([]string{"Field", "Edits"})
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetColumnAlignment([]int{tablewriter.ALIGN_LEFT, tablewriter.ALIGN_CENTER})

	for _, count := range sortedFieldCounts(summary.Fields) {
		table.Append([]string{count.field, fmt.Sprintf("%d", count.count)})
	}

	table.SetFooter([]string{
		fmt.Sprintf("Total Cases %d", summary.Cases),
		fmt.Sprintf("%d", summary.Mutations),
	})

	table.Render()

	return tableBuffer.String()
}

func indentJSON(document []byte) string {
	var out bytes.Buffer
	if err := json.Indent(&out, document, "", "  "); err != nil {
		return string(document)
	}

	out.WriteByte('\n')

	return out.String()
}

// renderDiff returns a unified diff between the indented input and result.
func renderDiff(original, resource []byte) (string, error) {
	diff := difflib.UnifiedDiff{
		A:        difflib.SplitLines(indentJSON(original)),
		B:        difflib.SplitLines(indentJSON(resource)),
		FromFile: "input",
		ToFile:   "fuzzed",
		Context:  2,
	}

	return difflib.GetUnifiedDiffString(diff)
}
