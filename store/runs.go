package store

import (
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/sheikhrachel/tri-life/model"
)

// Run is one engine lifetime: from construction or reset until the next
// reset, resize or exit.
type Run struct {
	ID      string
	Rows    int
	Cols    int
	Seed    int64
	Started time.Time
	Samples int
}

// Sample is the census of one generation of a run.
type Sample struct {
	Generation int
	Census     model.Census
}

// StartRun registers a new run and returns its id.
func (db *DB) StartRun(rows, cols int, seed int64) (string, error) {
	id := uuid.New().String()

	_, err := db.Exec(`
		INSERT INTO runs (run_id, grid_rows, grid_cols, seed, started_unix_nano)
		VALUES (?, ?, ?, ?, ?)`,
		id, rows, cols, seed, time.Now().UnixNano(),
	)
	if err != nil {
		return "", errors.Wrapf(err, "[StartRun] failed to insert run %dx%d", rows, cols)
	}

	return id, nil
}

// RecordGeneration stores the census of a generation. Recording the same
// generation twice keeps the latest census.
func (db *DB) RecordGeneration(runID string, generation int, c model.Census) error {
	_, err := db.Exec(`
		INSERT OR REPLACE INTO generations (run_id, generation, alive, dead, never_lived)
		VALUES (?, ?, ?, ?, ?)`,
		runID, generation, c.Alive, c.Dead, c.NeverLived,
	)
	if err != nil {
		return errors.Wrapf(err, "[RecordGeneration] run %s generation %d", runID, generation)
	}
	return nil
}

// Samples returns the recorded generations of a run in order.
func (db *DB) Samples(runID string) ([]Sample, error) {
	rows, err := db.Query(`
		SELECT generation, alive, dead, never_lived
		FROM generations
		WHERE run_id = ?
		ORDER BY generation`,
		runID,
	)
	if err != nil {
		return nil, errors.Wrapf(err, "[Samples] failed to query run %s", runID)
	}
	defer rows.Close()

	var samples []Sample
	for rows.Next() {
		var s Sample
		if err := rows.Scan(&s.Generation, &s.Census.Alive, &s.Census.Dead, &s.Census.NeverLived); err != nil {
			return nil, errors.Wrapf(err, "[Samples] failed to scan run %s", runID)
		}
		samples = append(samples, s)
	}

	return samples, errors.Wrap(rows.Err(), "[Samples] row iteration")
}

// Runs lists every recorded run, oldest first.
func (db *DB) Runs() ([]Run, error) {
	rows, err := db.Query(`
		SELECT r.run_id, r.grid_rows, r.grid_cols, r.seed, r.started_unix_nano, COUNT(g.generation)
		FROM runs r
		LEFT JOIN generations g ON g.run_id = r.run_id
		GROUP BY r.run_id
		ORDER BY r.started_unix_nano, r.run_id`,
	)
	if err != nil {
		return nil, errors.Wrap(err, "[Runs] failed to query runs")
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var (
			r       Run
			started int64
		)
		if err := rows.Scan(&r.ID, &r.Rows, &r.Cols, &r.Seed, &started, &r.Samples); err != nil {
			return nil, errors.Wrap(err, "[Runs] failed to scan run")
		}
		r.Started = time.Unix(0, started)
		runs = append(runs, r)
	}

	return runs, errors.Wrap(rows.Err(), "[Runs] row iteration")
}
