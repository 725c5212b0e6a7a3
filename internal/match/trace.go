package match

import "time"

// Stage names reported in traces and metrics.
const (
	StageTypeFilter  = "type_filter"
	StageSpaceFilter = "space_filter"
	StageNameMatch   = "name_match"
	StageScore       = "score"
)

// StageTrace records what one pipeline stage did to the candidate pool.
// Operators diagnose mismatches from these counts, so every stage reports
// them even when it passed the pool through unchanged.
type StageTrace struct {
	// Stage is one of the Stage* constants.
	Stage string `json:"stage"`

	// In and Out are the pool sizes before and after the stage.
	In  int `json:"in"`
	Out int `json:"out"`

	// Elapsed is the wall time the stage took.
	Elapsed time.Duration `json:"elapsed"`

	// Survivors lists the entity IDs remaining after the stage, in catalog
	// order. Populated for the filter stages (1.1, 1.2 and 2); the final
	// top-K with scores lives in the RankedOutcome itself.
	Survivors []string `json:"survivors,omitempty"`
}

// Trace is the per-invocation instrumentation record produced alongside a
// RankedOutcome by MatchWithTrace.
type Trace struct {
	CatalogSize int           `json:"catalog_size"`
	Stages      []StageTrace  `json:"stages"`
	Elapsed     time.Duration `json:"elapsed"`
}
