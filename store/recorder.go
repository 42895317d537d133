package store

import (
	"log"

	"github.com/sheikhrachel/tri-life/model"
)

// Recorder feeds a DB from a running controller. Storage failures are
// logged and never interrupt the simulation.
type Recorder struct {
	db     *DB
	seed   int64
	runID  string
	runIDs []string
}

func NewRecorder(db *DB, seed int64) *Recorder {
	return &Recorder{db: db, seed: seed}
}

// StartRun opens a new run for a freshly built or reset engine.
func (r *Recorder) StartRun(rows, cols int) {
	id, err := r.db.StartRun(rows, cols, r.seed)
	if err != nil {
		log.Printf("[recorder] %v", err)
		r.runID = ""
		return
	}
	r.runID = id
	r.runIDs = append(r.runIDs, id)
}

// Record stores the census of the current generation of the active run.
func (r *Recorder) Record(generation int, c model.Census) {
	if r.runID == "" {
		return
	}
	if err := r.db.RecordGeneration(r.runID, generation, c); err != nil {
		log.Printf("[recorder] %v", err)
	}
}

// RunIDs returns the runs started through this recorder, oldest first.
func (r *Recorder) RunIDs() []string {
	return append([]string(nil), r.runIDs...)
}
