package store

import (
	"context"

	"github.com/rotisserie/eris"

	"github.com/sells-group/eol-cli/internal/model"
)

// ErrRunNotFound is returned when a run lookup matches nothing, including
// LatestRun on an empty database.
var ErrRunNotFound = eris.New("store: run not found")

// RunFilter specifies criteria for listing runs.
type RunFilter struct {
	Status model.RunStatus `json:"status,omitempty"`
	Limit  int             `json:"limit,omitempty"`
	Offset int             `json:"offset,omitempty"`
}

// Store defines the persistence interface for harvest runs and the
// lifecycle records they produce.
type Store interface {
	// Runs
	SaveRun(ctx context.Context) (*model.Run, error)
	UpdateRun(ctx context.Context, run *model.Run) error
	GetRun(ctx context.Context, runID string) (*model.Run, error)
	LatestRun(ctx context.Context) (*model.Run, error)
	ListRuns(ctx context.Context, filter RunFilter) ([]model.Run, error)

	// Records
	ReplaceRecords(ctx context.Context, runID string, records []model.Record) error
	ListRecords(ctx context.Context, runID string) ([]model.Record, error)

	// Lifecycle
	Migrate(ctx context.Context) error
	Close() error
}
