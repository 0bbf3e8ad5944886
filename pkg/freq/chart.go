package freq

import (
	"fmt"
	"io"
	"strings"
)

const chartBarWidth = 50

// RenderChart writes a horizontal bar chart of the top k entries to w.
// Bars are scaled so the most frequent symbol fills chartBarWidth columns.
// This is display-only and never affects control flow.
func RenderChart(w io.Writer, t Table, k int) {
	top := t.Top(k)
	if len(top.Entries) == 0 {
		_, _ = fmt.Fprintln(w, "(no data)")
		return
	}

	maxCount := top.Entries[0].Count
	labelWidth := 0
	for _, e := range top.Entries {
		if n := len(DisplaySymbol(e.Symbol)); n > labelWidth {
			labelWidth = n
		}
	}

	_, _ = fmt.Fprintf(w, "%s (total %d)\n", t.Name, t.Total)
	for _, e := range top.Entries {
		width := 0
		if maxCount > 0 {
			width = e.Count * chartBarWidth / maxCount
		}
		if width == 0 && e.Count > 0 {
			width = 1
		}
		_, _ = fmt.Fprintf(w, "%3d %-*s %s %d\n",
			e.Rank, labelWidth, DisplaySymbol(e.Symbol), strings.Repeat("#", width), e.Count)
	}
}
