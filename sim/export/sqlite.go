// Package export persists brewery run reports for offline analysis.
package export

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
	_ "modernc.org/sqlite" // pure go sqlite driver

	"github.com/brewsim/brewsim/sim"
	"github.com/brewsim/brewsim/sim/brewery"
)

var schema = []string{
	`CREATE TABLE IF NOT EXISTS runs (
		run_id TEXT PRIMARY KEY,
		seed INTEGER NOT NULL,
		horizon REAL NOT NULL,
		tank_policy TEXT NOT NULL,
		units_sold INTEGER NOT NULL,
		profit TEXT NOT NULL,
		batches_started INTEGER NOT NULL,
		batches_packaged INTEGER NOT NULL,
		batches_abandoned INTEGER NOT NULL,
		tank_misses INTEGER NOT NULL,
		lost_sales INTEGER NOT NULL,
		config TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS profit_timeline (
		run_id TEXT NOT NULL,
		seq INTEGER NOT NULL,
		day REAL NOT NULL,
		units_sold INTEGER NOT NULL,
		profit TEXT NOT NULL,
		PRIMARY KEY (run_id, seq)
	)`,
	`CREATE TABLE IF NOT EXISTS store_samples (
		run_id TEXT NOT NULL,
		store TEXT NOT NULL,
		seq INTEGER NOT NULL,
		day REAL NOT NULL,
		level REAL NOT NULL,
		PRIMARY KEY (run_id, store, seq)
	)`,
	`CREATE TABLE IF NOT EXISTS stage_log (
		run_id TEXT NOT NULL,
		batch_id TEXT NOT NULL,
		recipe TEXT NOT NULL,
		seq INTEGER NOT NULL,
		stage TEXT NOT NULL,
		day REAL NOT NULL,
		PRIMARY KEY (run_id, batch_id, seq)
	)`,
	`CREATE TABLE IF NOT EXISTS tank_records (
		run_id TEXT NOT NULL,
		tank_id INTEGER NOT NULL,
		batch_id TEXT NOT NULL,
		start_day REAL NOT NULL,
		expected_end_day REAL NOT NULL
	)`,
}

// Store writes run reports into a SQLite database. Rows of every table are
// keyed by the run's UUID, so one file can hold many runs.
type Store struct {
	db   *sql.DB
	path string
}

// NewStore opens (creating if needed) the database at path.
func NewStore(path string) (*Store, error) {
	if path == "" {
		path = "brewsim.db"
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil && !errors.Is(err, os.ErrExist) {
		return nil, fmt.Errorf("create dirs: %w", err)
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	for _, stmt := range schema {
		if _, err := db.Exec(stmt); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("create schema: %w", err)
		}
	}
	return &Store{db: db, path: path}, nil
}

// Path returns the database file.
func (s *Store) Path() string { return s.path }

// Close releases the database handle.
func (s *Store) Close() error { return s.db.Close() }

// SaveReport writes rep in a single transaction.
func (s *Store) SaveReport(ctx context.Context, rep *brewery.Report) (retErr error) {
	if rep == nil {
		return errors.New("save report: nil report")
	}
	cfg, err := yaml.Marshal(rep.Config)
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer func() {
		if retErr != nil {
			_ = tx.Rollback()
		}
	}()

	runID := rep.RunID.String()
	m := rep.Metrics
	if _, err := tx.ExecContext(ctx,
		`INSERT INTO runs (run_id, seed, horizon, tank_policy, units_sold, profit, batches_started,
			batches_packaged, batches_abandoned, tank_misses, lost_sales, config)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		runID, rep.Seed, rep.Horizon, rep.Config.Brewhouse.TankPolicy, m.UnitsSold, m.Profit.String(),
		m.BatchesStarted, m.BatchesPackaged, m.BatchesAbandoned, m.TankMisses, m.LostSales, string(cfg),
	); err != nil {
		return fmt.Errorf("insert run: %w", err)
	}

	for i, rec := range rep.ProfitTimeline {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO profit_timeline (run_id, seq, day, units_sold, profit) VALUES (?, ?, ?, ?, ?)`,
			runID, i, rec.Time, rec.UnitsSold, rec.Profit.String(),
		); err != nil {
			return fmt.Errorf("insert profit record: %w", err)
		}
	}

	if err := insertSamples(ctx, tx, runID, "grain", rep.GrainSamples); err != nil {
		return err
	}
	if err := insertSamples(ctx, tx, runID, "production", rep.ProductionSamples); err != nil {
		return err
	}

	batches := append(append([]*brewery.Batch(nil), rep.Completed...), rep.Abandoned...)
	for _, b := range batches {
		for i, e := range b.Log {
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO stage_log (run_id, batch_id, recipe, seq, stage, day) VALUES (?, ?, ?, ?, ?, ?)`,
				runID, b.ID, b.Recipe.Name, i, string(e.Stage), e.Time,
			); err != nil {
				return fmt.Errorf("insert stage of %s: %w", b.ID, err)
			}
		}
	}

	for _, tr := range rep.TankRecords {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO tank_records (run_id, tank_id, batch_id, start_day, expected_end_day) VALUES (?, ?, ?, ?, ?)`,
			runID, tr.TankID, tr.Batch, tr.Start, tr.ExpectedEnd,
		); err != nil {
			return fmt.Errorf("insert tank record: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

func insertSamples(ctx context.Context, tx *sql.Tx, runID, store string, samples []sim.Sample) error {
	for i, smp := range samples {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO store_samples (run_id, store, seq, day, level) VALUES (?, ?, ?, ?, ?)`,
			runID, store, i, smp.Time, smp.Level,
		); err != nil {
			return fmt.Errorf("insert %s sample: %w", store, err)
		}
	}
	return nil
}

// WriteSQLite opens path, saves rep and closes the database.
func WriteSQLite(ctx context.Context, path string, rep *brewery.Report) error {
	s, err := NewStore(path)
	if err != nil {
		return err
	}
	if err := s.SaveReport(ctx, rep); err != nil {
		_ = s.Close()
		return err
	}
	return s.Close()
}
