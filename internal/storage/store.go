// Package storage provides abstractions for persisting simulation results.
package storage

import (
	"context"
	"errors"

	"github.com/mreece/fincast/internal/engine"
	"github.com/mreece/fincast/internal/model"
)

// ErrNotFound is returned when a run or user does not exist.
var ErrNotFound = errors.New("not found")

// Run is the persisted record of one simulation execution.
type Run struct {
	// ID is the unique identifier for the run (UUID format).
	ID string

	// Name is the scenario name the run was executed from.
	Name string

	// CreatedBy is the API user who submitted the run; empty for CLI runs.
	CreatedBy string

	StartYear int
	EndYear   int

	// Insolvent is true if any simulated year was flagged insolvent.
	Insolvent bool

	// CreatedAt is the Unix timestamp when the run was stored.
	CreatedAt int64
}

// Store defines the interface for run and user persistence. The
// abstraction allows swapping storage backends without changing the
// service layer.
type Store interface {
	// CreateRun persists a run together with its full snapshot sequence.
	// The run.ID field is populated by the store if empty.
	CreateRun(ctx context.Context, run *Run, snapshots []engine.Snapshot) error

	// GetRun retrieves a run by ID.
	GetRun(ctx context.Context, runID string) (*Run, error)

	// ListRuns returns all runs, newest first.
	ListRuns(ctx context.Context) ([]*Run, error)

	// ListSnapshots returns a run's snapshots in year order.
	ListSnapshots(ctx context.Context, runID string) ([]engine.Snapshot, error)

	// CreateUser persists a new API user.
	CreateUser(ctx context.Context, user *model.User) error

	// GetUserByEmail retrieves a user by email address.
	GetUserByEmail(ctx context.Context, email string) (*model.User, error)

	// GetUserByID retrieves a user by ID.
	GetUserByID(ctx context.Context, id string) (*model.User, error)

	// Close releases any resources held by the store.
	Close() error
}
