// Package fmtutil renders small data structures for log output and
// generated documentation: path lists, aligned tables, sorted key/value
// maps, and YAML dumps.
package fmtutil

import (
	"fmt"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// Paths joins paths with sep, one entry per line by default.
func Paths(paths []string, sep string) string {
	if sep == "" {
		sep = "\n"
	}
	return strings.Join(paths, sep)
}

// Table renders rows as aligned columns indented by indent spaces.
// Cells longer than maxCellWidth wrap onto continuation lines within
// their column. maxCellWidth <= 0 disables wrapping. Rows may be
// ragged; missing cells render empty.
func Table(rows [][]string, indent, maxCellWidth int) string {
	if len(rows) == 0 {
		return ""
	}
	ncol := 0
	for _, row := range rows {
		if len(row) > ncol {
			ncol = len(row)
		}
	}
	widths := make([]int, ncol)
	for _, row := range rows {
		for i, cell := range row {
			w := len(cell)
			if maxCellWidth > 0 && w > maxCellWidth {
				w = maxCellWidth
			}
			if w > widths[i] {
				widths[i] = w
			}
		}
	}

	pad := strings.Repeat(" ", indent)
	var b strings.Builder
	for ri, row := range rows {
		cells := make([][]string, ncol)
		depth := 1
		for i := 0; i < ncol; i++ {
			var cell string
			if i < len(row) {
				cell = row[i]
			}
			cells[i] = wrapCell(cell, widths[i], maxCellWidth)
			if len(cells[i]) > depth {
				depth = len(cells[i])
			}
		}
		for line := 0; line < depth; line++ {
			if ri > 0 || line > 0 {
				b.WriteByte('\n')
			}
			b.WriteString(pad)
			parts := make([]string, ncol)
			for i := 0; i < ncol; i++ {
				s := ""
				if line < len(cells[i]) {
					s = cells[i][line]
				}
				parts[i] = fmt.Sprintf("%-*s", widths[i], s)
			}
			b.WriteString("| " + strings.Join(parts, " | ") + " |")
		}
	}
	return b.String()
}

func wrapCell(s string, width, maxCellWidth int) []string {
	if maxCellWidth <= 0 || len(s) <= width {
		return []string{s}
	}
	var lines []string
	for len(s) > width {
		lines = append(lines, s[:width])
		s = s[width:]
	}
	return append(lines, s)
}

// Dict renders m as sorted, aligned "key: value" lines indented by
// indent spaces.
func Dict(m map[string]any, indent int) string {
	if len(m) == 0 {
		return ""
	}
	keys := make([]string, 0, len(m))
	width := 0
	for k := range m {
		keys = append(keys, k)
		if len(k) > width {
			width = len(k)
		}
	}
	sort.Strings(keys)

	pad := strings.Repeat(" ", indent)
	lines := make([]string, 0, len(keys))
	for _, k := range keys {
		lines = append(lines, fmt.Sprintf("%s%-*s: %v", pad, width, k, m[k]))
	}
	return strings.Join(lines, "\n")
}

// YAML dumps v as YAML prefixed with a newline, so the value starts on
// its own line when embedded in a log message. Marshal failures render
// as an error string rather than propagating; this is display code.
func YAML(v any) string {
	out, err := yaml.Marshal(v)
	if err != nil {
		return fmt.Sprintf("\n<unserializable: %v>", err)
	}
	return "\n" + string(out)
}
