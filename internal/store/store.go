// Package store persists run results in SQLite.
package store

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	_ "modernc.org/sqlite"

	"github.com/cwbudde/algo-eda/eda"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// ErrRunNotFound is returned when no recording carries the run id.
var ErrRunNotFound = errors.New("store: run not found")

// Store is a SQLite results database.
type Store struct {
	db *sql.DB
}

// RunRecord is one processed recording with its features. Whole-recording
// features use the label "0".
type RunRecord struct {
	RunID        string
	Path         string
	Samples      int
	SamplingRate float64
	Start        time.Time
	End          time.Time
	Features     []eda.Features
}

// Open opens or creates the database at path and applies pending migrations.
func Open(ctx context.Context, path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	db.SetMaxOpenConns(1)

	for _, pragma := range []string{"PRAGMA foreign_keys = ON", "PRAGMA busy_timeout = 5000"} {
		if _, err := db.ExecContext(ctx, pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("%s: %w", pragma, err)
		}
	}

	if err := migrateUp(db); err != nil {
		db.Close()
		return nil, err
	}

	return &Store{db: db}, nil
}

func migrateUp(db *sql.DB) error {
	src, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return fmt.Errorf("load migrations: %w", err)
	}
	driver, err := sqlite.WithInstance(db, &sqlite.Config{})
	if err != nil {
		return fmt.Errorf("create sqlite driver: %w", err)
	}
	m, err := migrate.NewWithInstance("iofs", src, "sqlite", driver)
	if err != nil {
		return fmt.Errorf("create migrate instance: %w", err)
	}
	// m is not closed: that would close db.

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("migration up failed: %w", err)
	}
	return nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// SaveRun inserts rec and its features in one transaction and returns the
// recording id.
func (s *Store) SaveRun(ctx context.Context, rec RunRecord) (id int64, err error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	res, err := tx.ExecContext(ctx,
		`INSERT INTO recordings (run_id, path, samples, sampling_rate, start_ms, end_ms)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		rec.RunID, rec.Path, rec.Samples, rec.SamplingRate, millis(rec.Start), millis(rec.End))
	if err != nil {
		return 0, fmt.Errorf("insert recording: %w", err)
	}
	if id, err = res.LastInsertId(); err != nil {
		return 0, fmt.Errorf("recording id: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO features (recording_id, label, name, value) VALUES (?, ?, ?, ?)`)
	if err != nil {
		return 0, fmt.Errorf("prepare features: %w", err)
	}
	defer stmt.Close()

	for i, f := range rec.Features {
		label := f.Label
		if label == "" {
			label = fmt.Sprint(i)
		}
		for j, v := range f.Values() {
			if _, err := stmt.ExecContext(ctx, id, label, eda.FeatureNames[j], nullable(v)); err != nil {
				return 0, fmt.Errorf("insert feature %s/%s: %w", label, eda.FeatureNames[j], err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit: %w", err)
	}
	return id, nil
}

// Features returns the stored features of runID in insertion order.
func (s *Store) Features(ctx context.Context, runID string) ([]eda.Features, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT f.label, f.name, f.value
		   FROM features f JOIN recordings r ON r.id = f.recording_id
		  WHERE r.run_id = ?
		  ORDER BY f.rowid`, runID)
	if err != nil {
		return nil, fmt.Errorf("query features: %w", err)
	}
	defer rows.Close()

	var (
		out   []eda.Features
		index = map[string]int{}
	)
	for rows.Next() {
		var (
			label, name string
			value       sql.NullFloat64
		)
		if err := rows.Scan(&label, &name, &value); err != nil {
			return nil, fmt.Errorf("scan feature: %w", err)
		}

		i, ok := index[label]
		if !ok {
			i = len(out)
			index[label] = i
			out = append(out, eda.Features{Label: label})
		}
		v := math.NaN()
		if value.Valid {
			v = value.Float64
		}
		setFeature(&out[i], name, v)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrRunNotFound, runID)
	}

	return out, nil
}

// RunIDs returns every stored run id, newest first.
func (s *Store) RunIDs(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT run_id FROM recordings GROUP BY run_id ORDER BY MAX(id) DESC`)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func setFeature(f *eda.Features, name string, v float64) {
	switch name {
	case "SCR_Peaks_N":
		if !math.IsNaN(v) {
			f.PeaksN = int(v)
		}
	case "SCR_Peaks_Amplitude_Mean":
		f.PeaksAmplitudeMean = v
	case "EDA_Tonic_SD":
		f.TonicSD = v
	case "EDA_Sympathetic":
		f.Sympathetic = v
	case "EDA_SympatheticN":
		f.SympatheticNormalized = v
	case "EDA_Autocorrelation":
		f.Autocorrelation = v
	}
}

func nullable(v float64) any {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return v
}

func millis(t time.Time) any {
	if t.IsZero() {
		return nil
	}
	return t.UnixMilli()
}
