// Package match implements the device best-match engine for Gray Logic
// Match.
//
// Given a partially-specified, possibly multilingual description of a
// device (floor, room, device type, device name — each optional) and a
// catalog snapshot of addressable entities, the engine returns a ranked,
// scored candidate list plus a disambiguation signal for the caller.
//
// # Architecture
//
//	┌──────────────────────────────────────────────────────────────────────┐
//	│                            Match Engine                              │
//	│                                                                      │
//	│   Query ──▶ TypeFilter ──▶ SpaceFilter ──▶ NameMatcher ──▶ Scorer    │
//	│              (1.1)          (1.2)           (2)            (3)       │
//	│                │              │               │              │       │
//	│                ▼              ▼               ▼              ▼       │
//	│          binary type     floor AND room   Jaro-Winkler   weighted    │
//	│          inclusion       ≥ 0.70           ≥ 0.45         composite   │
//	│                                                              │       │
//	│   AliasTable (atomic snapshot)                               ▼       │
//	│   rooms / floors / device types / generic names          Ranker      │
//	│                                                       top-K + gap    │
//	└──────────────────────────────────────────────────────────────────────┘
//
// Data flows strictly forward. Each filter stage advances the candidate
// pool only when its narrowed set is non-empty; a filter that would empty
// the pool carries the wider pool forward instead, so a noisy or
// unmatched field degrades the ranking rather than erasing the result.
//
// # Key Types
//
//   - Entity: one addressable device in a catalog snapshot
//   - Query: a match request; absent fields impose no constraint
//   - AliasTable: compiled multilingual alias lookup (variant → canonical)
//   - MatchResult / RankedOutcome: scored candidates with per-field
//     components for explainability, plus the ambiguity flag
//   - Trace: per-stage pool counts, survivors and timings
//
// # Usage
//
//	aliases := match.NewAliasTable(match.DefaultAliasConfig())
//	engine, err := match.NewEngine(aliases, match.DefaultParams())
//	if err != nil {
//	    return err
//	}
//
//	outcome, err := engine.Match(match.Query{
//	    Room:       "客厅",
//	    DeviceType: "灯",
//	}, catalog)
//	if err != nil {
//	    return err
//	}
//	if outcome.Ambiguous {
//	    // ask the user a clarifying question
//	}
//
// # Thread Safety
//
// Matching is pure and synchronous; any number of Match calls may run in
// parallel. SetAliases replaces the alias table as a whole snapshot via an
// atomic pointer, so concurrent matches never see a partially-updated
// table.
package match
