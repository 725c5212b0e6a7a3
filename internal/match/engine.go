package match

import (
	"sync/atomic"
	"time"
)

// Logger is the interface the engine needs for stage-level debug logging.
// Compatible with logging.Logger and slog.Logger.
type Logger interface {
	Debug(msg string, args ...any)
}

// noopLogger discards all log output. Used when no logger is configured.
type noopLogger struct{}

func (noopLogger) Debug(string, ...any) {}

// Engine resolves partially-specified device descriptions against an
// entity catalog.
//
// Matching is a pure, synchronous, CPU-bound computation: each call
// receives its own query and catalog snapshot, no inputs are mutated, and
// nothing is cached between invocations. The engine is safe for concurrent
// use — the only shared state is the alias table, held behind an atomic
// pointer so SetAliases swaps a complete snapshot and in-flight matches
// never observe a half-updated table.
type Engine struct {
	params  Params
	aliases atomic.Pointer[AliasTable]
	logger  Logger
}

// NewEngine creates an engine with the given alias table and parameters.
// A nil alias table is replaced by an empty one: every canonicalisation
// misses and matching falls back to raw-string comparison throughout.
//
// Returns:
//   - *Engine: Ready for concurrent use
//   - error: ErrInvalidParams if the parameters are out of range
func NewEngine(aliases *AliasTable, params Params) (*Engine, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	if aliases == nil {
		aliases = NewAliasTable(nil)
	}

	e := &Engine{
		params: params,
		logger: noopLogger{},
	}
	e.aliases.Store(aliases)
	return e, nil
}

// SetLogger attaches a logger for stage-level debug output.
// Call before the first Match; a nil logger is ignored.
func (e *Engine) SetLogger(l Logger) {
	if l != nil {
		e.logger = l
	}
}

// SetAliases atomically replaces the alias table snapshot.
// Matches already running keep the table they started with.
func (e *Engine) SetAliases(t *AliasTable) {
	if t != nil {
		e.aliases.Store(t)
	}
}

// Aliases returns the current alias table snapshot.
func (e *Engine) Aliases() *AliasTable {
	return e.aliases.Load()
}

// Params returns the engine's scoring parameters.
func (e *Engine) Params() Params {
	return e.params
}

// Match resolves a query against a catalog snapshot and returns the ranked
// candidate list. See MatchWithTrace for the instrumented variant.
func (e *Engine) Match(query Query, catalog []Entity) (RankedOutcome, error) {
	outcome, _, err := e.MatchWithTrace(query, catalog)
	return outcome, err
}

// MatchWithTrace runs the full pipeline and additionally returns the
// per-stage instrumentation record.
//
// Pipeline: validate catalog → type filter (1.1) → space filter (1.2) →
// name match (2) → score (3) → rank. Filters that would empty the pool
// leave it at the wider state; a catalog that genuinely matches nothing
// yields an empty outcome with ambiguous=false, never an error. The only
// error condition is a structurally invalid catalog (empty or duplicate
// entity IDs), rejected before any stage runs.
func (e *Engine) MatchWithTrace(query Query, catalog []Entity) (RankedOutcome, *Trace, error) {
	if err := ValidateCatalog(catalog); err != nil {
		return RankedOutcome{}, nil, err
	}

	start := time.Now()
	p := newPipeline(query, catalog, e.aliases.Load(), e.params)
	trace := &Trace{CatalogSize: len(catalog)}

	cur := p.initialPool()
	cur = e.runStage(trace, StageTypeFilter, cur, p.filterByType, catalog)
	cur = e.runStage(trace, StageSpaceFilter, cur, p.filterBySpace, catalog)
	cur = e.runStage(trace, StageNameMatch, cur, p.matchByName, catalog)

	scoreStart := time.Now()
	results := make([]MatchResult, 0, len(cur.idx))
	for _, i := range cur.idx {
		results = append(results, p.score(i))
	}
	outcome := rank(results, e.params.TopK, e.params.DisambigGap)

	trace.Stages = append(trace.Stages, StageTrace{
		Stage:   StageScore,
		In:      len(cur.idx),
		Out:     len(outcome.Results),
		Elapsed: time.Since(scoreStart),
	})
	trace.Elapsed = time.Since(start)

	e.logger.Debug("match complete",
		"catalog_size", len(catalog),
		"results", len(outcome.Results),
		"ambiguous", outcome.Ambiguous,
		"elapsed", trace.Elapsed,
	)

	return outcome, trace, nil
}

// runStage executes one filter stage and records its trace entry.
func (e *Engine) runStage(trace *Trace, name string, in pool, fn func(pool) pool, catalog []Entity) pool {
	began := time.Now()
	out := fn(in)

	entry := StageTrace{
		Stage:     name,
		In:        len(in.idx),
		Out:       len(out.idx),
		Elapsed:   time.Since(began),
		Survivors: survivorIDs(catalog, out.idx),
	}
	trace.Stages = append(trace.Stages, entry)

	e.logger.Debug("stage complete",
		"stage", name,
		"state", out.stage.String(),
		"in", entry.In,
		"out", entry.Out,
		"elapsed", entry.Elapsed,
	)
	return out
}

// survivorIDs maps pool indices back to entity IDs in catalog order.
func survivorIDs(catalog []Entity, idx []int) []string {
	ids := make([]string, len(idx))
	for n, i := range idx {
		ids[n] = catalog[i].ID
	}
	return ids
}
