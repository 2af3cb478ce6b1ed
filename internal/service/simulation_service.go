// Package service implements the application services between the HTTP/CLI
// surfaces and the engine, storage, and auth layers.
package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/mreece/fincast/internal/config"
	"github.com/mreece/fincast/internal/engine"
	"github.com/mreece/fincast/internal/storage"
)

// SimulationService builds scenarios into engines, runs them to the
// horizon, and persists the results.
type SimulationService struct {
	store  storage.Store
	logger *slog.Logger
}

// NewSimulationService creates a simulation service. store may be nil, in
// which case results are returned but not persisted.
func NewSimulationService(store storage.Store, logger *slog.Logger) *SimulationService {
	return &SimulationService{
		store:  store,
		logger: logger,
	}
}

// Run executes a validated scenario over its full horizon and, when a
// store is configured, persists the run with its snapshot sequence.
// createdBy is the submitting user's ID; empty for CLI runs.
func (s *SimulationService) Run(ctx context.Context, scenario *config.Scenario, createdBy string) (*storage.Run, []engine.Snapshot, error) {
	built, err := scenario.Build()
	if err != nil {
		return nil, nil, err
	}

	runsStarted.Inc()
	start := time.Now()
	s.logger.Info("Simulation starting",
		"scenario", scenario.Name,
		"start_year", built.Options.StartYear,
		"end_year", built.Options.EndYear,
	)

	eng := engine.New(built.Family, built.Regime, built.Options)
	snapshots, err := eng.Run(ctx)
	runDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		runsFailed.Inc()
		s.logger.Error("Simulation failed",
			"scenario", scenario.Name,
			"year", eng.Year(),
			"error", err,
		)
		return nil, snapshots, fmt.Errorf("simulation failed in year %d: %w", eng.Year(), err)
	}

	insolvent := false
	for _, snap := range snapshots {
		yearsSimulated.Inc()
		if snap.Insolvent {
			insolventYears.Inc()
			insolvent = true
		}
	}

	run := &storage.Run{
		Name:      scenario.Name,
		CreatedBy: createdBy,
		StartYear: built.Options.StartYear,
		EndYear:   built.Options.EndYear,
		Insolvent: insolvent,
	}
	if s.store != nil {
		if err := s.store.CreateRun(ctx, run, snapshots); err != nil {
			return nil, snapshots, fmt.Errorf("failed to persist run: %w", err)
		}
	}

	s.logger.Info("Simulation complete",
		"scenario", scenario.Name,
		"run_id", run.ID,
		"years", len(snapshots),
		"insolvent", insolvent,
	)
	return run, snapshots, nil
}

// GetRun retrieves a persisted run by ID.
func (s *SimulationService) GetRun(ctx context.Context, runID string) (*storage.Run, error) {
	return s.store.GetRun(ctx, runID)
}

// ListRuns returns all persisted runs, newest first.
func (s *SimulationService) ListRuns(ctx context.Context) ([]*storage.Run, error) {
	return s.store.ListRuns(ctx)
}

// ListSnapshots returns a run's snapshots in year order.
func (s *SimulationService) ListSnapshots(ctx context.Context, runID string) ([]engine.Snapshot, error) {
	if _, err := s.store.GetRun(ctx, runID); err != nil {
		return nil, err
	}
	return s.store.ListSnapshots(ctx, runID)
}
