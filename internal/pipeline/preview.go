package pipeline

import (
	"io"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/sells-group/eol-cli/internal/model"
)

// RenderPreview writes the first n records as a terminal table. n <= 0
// renders everything.
func RenderPreview(w io.Writer, records []model.Record, n int) {
	if n <= 0 || n > len(records) {
		n = len(records)
	}

	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)

	t.AppendHeader(table.Row{"Vendor", "Model", "EOL Date", "EOSL Date"})
	for _, r := range records[:n] {
		t.AppendRow(table.Row{r.Vendor, r.Model, stringOrEmpty(r.EOLDate), stringOrEmpty(r.EOSLDate)})
	}

	t.Render()
}
