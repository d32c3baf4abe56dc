// Package history keeps a sqlite record of training runs and their per
// iteration diagnostics, so that fits can be compared after the fact.
package history

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	_ "modernc.org/sqlite"

	"github.com/rcofre/generative-neural-models/learning"
	"github.com/rcofre/generative-neural-models/trainer"
)

// Store is an open history database.
type Store struct {
	db *sql.DB
}

// Open opens or creates the database at path.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, errors.Wrap(err, "open history")
	}
	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS runs(
			id TEXT PRIMARY KEY,
			started INTEGER NOT NULL,
			units INTEGER NOT NULL,
			lanes INTEGER NOT NULL,
			samples INTEGER NOT NULL,
			gibbs_steps INTEGER NOT NULL,
			iterations INTEGER NOT NULL,
			learning_rate REAL NOT NULL,
			seed INTEGER NOT NULL
		)`)
	if err == nil {
		_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS iterations(
			run TEXT NOT NULL REFERENCES runs(id),
			iteration INTEGER NOT NULL,
			grad_norm REAL,
			cov_distance REAL,
			pk_distance REAL,
			PRIMARY KEY(run, iteration)
		)`)
	}
	if err != nil {
		db.Close()
		return nil, errors.Wrap(err, "create history tables")
	}
	return &Store{db: db}, nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Run records the iterations of one training run. It implements trainer.Recorder.
type Run struct {
	ID    uuid.UUID
	store *Store
}

// Begin registers a new run.
func (s *Store) Begin(units int, hp *learning.HyperParameters) (*Run, error) {
	id := uuid.New()
	_, err := s.db.Exec(`INSERT INTO runs(id, started, units, lanes, samples, gibbs_steps, iterations, learning_rate, seed)
		VALUES(?,?,?,?,?,?,?,?,?)`,
		id.String(), time.Now().Unix(), units, hp.Lanes, hp.Samples, hp.GibbsSteps, hp.Iterations, hp.LearningRate, int64(hp.Seed))
	if err != nil {
		return nil, errors.Wrap(err, "begin run")
	}
	return &Run{ID: id, store: s}, nil
}

// Record stores one iteration.
func (r *Run) Record(it trainer.Iteration) error {
	_, err := r.store.db.Exec(`INSERT INTO iterations(run, iteration, grad_norm, cov_distance, pk_distance) VALUES(?,?,?,?,?)`,
		r.ID.String(), it.Iteration, nullable(it.GradNorm), nullable(it.CovDistance), nullable(it.PKDistance))
	return errors.Wrap(err, "record iteration")
}

// Iterations returns the recorded iterations of a run in order.
func (s *Store) Iterations(id uuid.UUID) ([]trainer.Iteration, error) {
	rows, err := s.db.Query(`SELECT iteration, grad_norm, cov_distance, pk_distance FROM iterations WHERE run = ? ORDER BY iteration`, id.String())
	if err != nil {
		return nil, errors.Wrap(err, "query iterations")
	}
	defer rows.Close()
	var out []trainer.Iteration
	for rows.Next() {
		var it trainer.Iteration
		var g, c, p sql.NullFloat64
		if err := rows.Scan(&it.Iteration, &g, &c, &p); err != nil {
			return nil, errors.Wrap(err, "scan iteration")
		}
		it.GradNorm, it.CovDistance, it.PKDistance = value(g), value(c), value(p)
		out = append(out, it)
	}
	return out, errors.Wrap(rows.Err(), "query iterations")
}

// Runs returns the ids of all runs, oldest first.
func (s *Store) Runs() ([]uuid.UUID, error) {
	rows, err := s.db.Query(`SELECT id FROM runs ORDER BY started, rowid`)
	if err != nil {
		return nil, errors.Wrap(err, "query runs")
	}
	defer rows.Close()
	var out []uuid.UUID
	for rows.Next() {
		var text string
		if err := rows.Scan(&text); err != nil {
			return nil, errors.Wrap(err, "scan run")
		}
		id, err := uuid.Parse(text)
		if err != nil {
			return nil, errors.Wrap(err, "parse run id")
		}
		out = append(out, id)
	}
	return out, errors.Wrap(rows.Err(), "query runs")
}
