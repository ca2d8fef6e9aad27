// Package scrape extracts lifecycle table rows from vendor section pages.
package scrape

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/rotisserie/eris"

	"github.com/sells-group/eol-cli/internal/model"
)

// lifecycleHeaders are the th labels that identify the lifecycle table.
var lifecycleHeaders = []string{"Model", "EOL Date", "EOSL Date"}

// ExtractRows parses page HTML and returns the rows of the lifecycle table.
// The first table whose headers include Model, EOL Date, and EOSL Date is
// used; pages without one yield no rows and no error.
func ExtractRows(html string) ([]model.Row, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, eris.Wrap(err, "scrape: parse html")
	}

	table := findLifecycleTable(doc)
	if table == nil {
		return []model.Row{}, nil
	}

	rows := []model.Row{}
	table.Find("tbody tr").Each(func(_ int, tr *goquery.Selection) {
		cells := tr.Find("td")
		// Data rows carry a trailing action cell after the three
		// lifecycle columns; narrower rows are spacers.
		if cells.Length() < 4 {
			return
		}
		rows = append(rows, model.Row{
			Model:    strings.TrimSpace(cells.Eq(0).Text()),
			EOLDate:  strings.TrimSpace(cells.Eq(1).Text()),
			EOSLDate: strings.TrimSpace(cells.Eq(2).Text()),
		})
	})

	return rows, nil
}

// findLifecycleTable returns the first table whose header cells include all
// lifecycle column labels, in document order.
func findLifecycleTable(doc *goquery.Document) *goquery.Selection {
	var match *goquery.Selection
	doc.Find("table").EachWithBreak(func(_ int, t *goquery.Selection) bool {
		headers := make(map[string]struct{})
		t.Find("th").Each(func(_ int, th *goquery.Selection) {
			headers[strings.TrimSpace(th.Text())] = struct{}{}
		})
		for _, want := range lifecycleHeaders {
			if _, ok := headers[want]; !ok {
				return true
			}
		}
		match = t
		return false
	})
	return match
}
