// Package pipeline turns scraped vendor rows into the consolidated
// lifecycle record set and writes it out.
package pipeline

import (
	"strings"
	"time"

	"github.com/araddon/dateparse"

	"github.com/sells-group/eol-cli/internal/model"
)

// isoLayout renders UTC with an explicit +00:00 offset rather than Z.
const isoLayout = "2006-01-02T15:04:05-07:00"

// dateLayouts are the site's display formats, tried before general parsing.
var dateLayouts = []string{
	"Jan 2, 2006",
	"January 2, 2006",
}

// NormalizeDate converts a raw date cell to a UTC ISO-8601 string. Empty or
// unparseable input yields nil, never an error and never a guessed date.
func NormalizeDate(raw string) *string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}

	parsed, ok := parseDate(raw)
	if !ok {
		return nil
	}

	// Zoneless values parse as UTC already; zoned ones are converted.
	s := parsed.UTC().Format(isoLayout)
	return &s
}

func parseDate(raw string) (time.Time, bool) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, true
		}
	}
	if t, err := dateparse.ParseStrict(raw); err == nil {
		return t, true
	}
	if t, err := dateparse.ParseAny(raw); err == nil {
		return t, true
	}
	return time.Time{}, false
}

// Normalize uppercases vendors and normalizes both date fields, producing
// one Record per input row in input order.
func Normalize(rows []model.VendorRow) []model.Record {
	records := make([]model.Record, 0, len(rows))
	for _, r := range rows {
		records = append(records, model.Record{
			Vendor:   strings.ToUpper(r.Vendor),
			Model:    r.Model,
			EOLDate:  NormalizeDate(r.EOLDate),
			EOSLDate: NormalizeDate(r.EOSLDate),
		})
	}
	return records
}
