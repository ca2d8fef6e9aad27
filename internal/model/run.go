package model

import "time"

// RunStatus represents the current state of a harvest run.
type RunStatus string

const (
	RunStatusRunning  RunStatus = "running"
	RunStatusComplete RunStatus = "complete"
	RunStatusFailed   RunStatus = "failed"
)

// Run represents a single harvest run.
type Run struct {
	ID        string    `json:"id"`
	Status    RunStatus `json:"status"`
	Stats     *RunStats `json:"stats,omitempty"`
	Error     string    `json:"error,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// RunStats holds the outcome counters of a harvest run.
type RunStats struct {
	Vendors       []string `json:"vendors"`
	FailedVendors []string `json:"failed_vendors,omitempty"`
	EmptyVendors  []string `json:"empty_vendors,omitempty"`
	FallbackUsed  bool     `json:"fallback_used"`
	RowsScraped   int      `json:"rows_scraped"`
	Records       int      `json:"records"`
}
