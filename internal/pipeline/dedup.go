package pipeline

import (
	"sort"
	"strings"

	"github.com/sells-group/eol-cli/internal/model"
)

type groupKey struct {
	vendor string
	model  string
}

// Dedup collapses records onto one per (vendor, model). Each date field
// takes the first non-nil, non-blank value in member order; a field blank
// across the whole group stays nil. Output is sorted by vendor then model,
// and running Dedup on its own output is a no-op.
func Dedup(records []model.Record) []model.Record {
	merged := make(map[groupKey]*model.Record, len(records))
	keys := make([]groupKey, 0, len(records))

	for _, r := range records {
		key := groupKey{vendor: r.Vendor, model: r.Model}
		existing, ok := merged[key]
		if !ok {
			c := r
			merged[key] = &c
			keys = append(keys, key)
			continue
		}
		if isBlank(existing.EOLDate) && !isBlank(r.EOLDate) {
			existing.EOLDate = r.EOLDate
		}
		if isBlank(existing.EOSLDate) && !isBlank(r.EOSLDate) {
			existing.EOSLDate = r.EOSLDate
		}
	}

	sort.Slice(keys, func(i, j int) bool {
		if keys[i].vendor != keys[j].vendor {
			return keys[i].vendor < keys[j].vendor
		}
		return keys[i].model < keys[j].model
	})

	out := make([]model.Record, 0, len(keys))
	for _, k := range keys {
		r := *merged[k]
		if isBlank(r.EOLDate) {
			r.EOLDate = nil
		}
		if isBlank(r.EOSLDate) {
			r.EOSLDate = nil
		}
		out = append(out, r)
	}
	return out
}

func isBlank(s *string) bool {
	return s == nil || strings.TrimSpace(*s) == ""
}
