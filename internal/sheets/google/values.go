package google

import (
	"strings"

	gsheet "google.golang.org/api/sheets/v4"

	"financeiro/internal/export"
)

// tabRange quotes name so tab names with spaces are valid A1 notation.
func tabRange(name, cells string) string {
	return "'" + strings.ReplaceAll(name, "'", "''") + "'!" + cells
}

func valueRange(t export.Table) *gsheet.ValueRange {
	return &gsheet.ValueRange{
		Range:          tabRange(t.Name, "A1"),
		MajorDimension: "ROWS",
		Values:         t.Values(),
	}
}

// missingTabs returns the table names absent from existing, in table order.
func missingTabs(existing []string, tables []export.Table) []string {
	have := make(map[string]bool, len(existing))
	for _, name := range existing {
		have[strings.ToLower(strings.TrimSpace(name))] = true
	}
	var out []string
	for _, t := range tables {
		key := strings.ToLower(t.Name)
		if !have[key] {
			out = append(out, t.Name)
			have[key] = true
		}
	}
	return out
}
