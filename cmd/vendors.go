package main

import (
	"fmt"
	"io"
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/sells-group/eol-cli/internal/discovery"
)

var vendorsCmd = &cobra.Command{
	Use:   "vendors",
	Short: "List vendor sections discovered from the sitemap",
	Long: `Vendors fetches the sitemap and prints the lifecycle section slugs it
finds, without scraping anything. When the sitemap cannot be read the
configured fallback list is shown instead, with a note on stderr.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		if err := cfg.Validate("site"); err != nil {
			return err
		}

		f := newSiteFetcher()
		d := discovery.NewDiscoverer(f, cfg.Site.SitemapURL, cfg.Site.BasePath)
		vendors, fallbackUsed := discovery.DiscoverOrFallback(ctx, d, cfg.Harvest.FallbackVendors)

		if fallbackUsed {
			_, _ = fmt.Fprintln(os.Stderr, "Sitemap discovery failed; showing the fallback vendor list.")
		}

		formatVendorTable(os.Stdout, vendors, cfg.Site.BasePath)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(vendorsCmd)
}

// formatVendorTable renders vendor slugs with their section URLs.
func formatVendorTable(w io.Writer, vendors []string, basePath string) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)

	t.AppendHeader(table.Row{"Vendor", "Section URL"})
	for _, v := range vendors {
		t.AppendRow(table.Row{v, basePath + v})
	}

	t.Render()
}
