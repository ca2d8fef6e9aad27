package scrape

import (
	"fmt"
	"strings"
)

// pageHTML builds a page containing a lifecycle table with one data row per
// model name. Dates are derived from the model name for easy assertions.
func pageHTML(models ...string) string {
	var b strings.Builder
	b.WriteString(`<html><body><table><thead><tr>
<th>Model</th><th>EOL Date</th><th>EOSL Date</th><th>Quote</th>
</tr></thead><tbody>`)
	for _, m := range models {
		fmt.Fprintf(&b, `<tr><td><a href="#">%s</a></td><td>%s-eol</td><td>%s-eosl</td><td>Get Quote</td></tr>`, m, m, m)
	}
	b.WriteString(`</tbody></table></body></html>`)
	return b.String()
}

const emptyPage = `<html><body><p>Nothing to see here.</p></body></html>`
