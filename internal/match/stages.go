package match

import "strings"

// stage identifies how far a candidate pool has been narrowed.
type stage int

// Pipeline states, in order. A pool only ever moves forward, and only when
// the narrower set is non-empty — a filter that would empty the pool leaves
// it at the wider state instead of eliminating every candidate.
const (
	stageUnfiltered stage = iota
	stageTypeFiltered
	stageSpaceFiltered
	stageNameFiltered
)

// String returns the state name for logging and traces.
func (s stage) String() string {
	switch s {
	case stageTypeFiltered:
		return "type_filtered"
	case stageSpaceFiltered:
		return "space_filtered"
	case stageNameFiltered:
		return "name_filtered"
	default:
		return "unfiltered"
	}
}

// pool is a candidate set: catalog indices in original catalog order, plus
// the narrowing state that produced them.
type pool struct {
	stage stage
	idx   []int
}

// advance transitions to the narrower pool, or stays put when the filter
// produced nothing. This is the single transition rule of the pipeline
// state machine.
func (p pool) advance(next stage, narrowed []int) pool {
	if len(narrowed) == 0 {
		return p
	}
	return pool{stage: next, idx: narrowed}
}

// pipeline carries the per-invocation matching state. It is created fresh
// for every Match call and never outlives it, so the engine itself stays
// free of mutable match state.
type pipeline struct {
	query   Query
	catalog []Entity
	aliases *AliasTable
	params  Params

	// nameScores holds the stage-2 maximum name similarity per catalog
	// index. It is only populated when the name stage actually constrained
	// the pool; a skipped name stage scores every entity 1.0 instead.
	nameScores      []float64
	nameConstrained bool
}

func newPipeline(query Query, catalog []Entity, aliases *AliasTable, params Params) *pipeline {
	return &pipeline{
		query:   query,
		catalog: catalog,
		aliases: aliases,
		params:  params,
	}
}

// initialPool returns the unfiltered candidate set: every catalog index.
func (p *pipeline) initialPool() pool {
	idx := make([]int, len(p.catalog))
	for i := range idx {
		idx[i] = i
	}
	return pool{stage: stageUnfiltered, idx: idx}
}

// filterByType is stage 1.1: binary inclusion on the device-type dimension.
//
// An entity passes when its device_type canonicalises to the same key as
// the query type, or — when canonicalisation misses on either side — its
// raw device_type equals the raw query type case-insensitively. No
// similarity scoring happens here.
func (p *pipeline) filterByType(in pool) pool {
	raw := strings.TrimSpace(p.query.DeviceType)
	if raw == "" {
		return in
	}

	key, hasKey := p.aliases.Canonicalize(AliasDomainDeviceType, raw)

	narrowed := make([]int, 0, len(in.idx))
	for _, i := range in.idx {
		if p.typeMatches(&p.catalog[i], raw, key, hasKey) {
			narrowed = append(narrowed, i)
		}
	}
	return in.advance(stageTypeFiltered, narrowed)
}

func (p *pipeline) typeMatches(e *Entity, raw, key string, hasKey bool) bool {
	if hasKey {
		if entityKey, ok := p.aliases.Canonicalize(AliasDomainDeviceType, e.DeviceType); ok && entityKey == key {
			return true
		}
	}
	return strings.EqualFold(strings.TrimSpace(e.DeviceType), raw)
}

// filterBySpace is stage 1.2: floor and room constraints combined with
// logical AND. Each dimension resolves the entity value by its field
// priority (see Entity.FloorValue / Entity.RoomValue) and accepts a
// canonical-key match or a similarity at or above the stage threshold.
func (p *pipeline) filterBySpace(in pool) pool {
	floorQ := strings.TrimSpace(p.query.Floor)
	roomQ := strings.TrimSpace(p.query.Room)
	if floorQ == "" && roomQ == "" {
		return in
	}

	narrowed := make([]int, 0, len(in.idx))
	for _, i := range in.idx {
		e := &p.catalog[i]
		if floorQ != "" && !p.dimensionMatches(AliasDomainFloor, floorQ, e.FloorValue(), p.params.Thresholds.Floor) {
			continue
		}
		if roomQ != "" && !p.dimensionMatches(AliasDomainRoom, roomQ, e.RoomValue(), p.params.Thresholds.Room) {
			continue
		}
		narrowed = append(narrowed, i)
	}
	return in.advance(stageSpaceFiltered, narrowed)
}

// dimensionMatches decides inclusion for one spatial dimension: exact
// canonical match, or the fuzzy fallback at the given threshold. An entity
// with no value on the dimension cannot satisfy a constraint on it.
func (p *pipeline) dimensionMatches(domain AliasDomain, queryVal, entityVal string, threshold float64) bool {
	if entityVal == "" {
		return false
	}

	if queryKey, ok := p.aliases.Canonicalize(domain, queryVal); ok {
		if entityKey, eok := p.aliases.Canonicalize(domain, entityVal); eok && entityKey == queryKey {
			return true
		}
	}

	return Similarity(queryVal, entityVal) >= threshold
}

// matchByName is stage 2: approximate matching on the device name.
//
// The stage is skipped entirely (pool passes through, name component
// scores 1.0) when the query has no name or the name is generic for the
// active device type — "turn on the light" constrains nothing by name.
// Otherwise every pool entity gets its maximum similarity across the name
// candidates; entities at or above the threshold survive. If none do, the
// wider pool carries forward: an unmatched name never eliminates an
// otherwise spatially-correct pool.
func (p *pipeline) matchByName(in pool) pool {
	name := strings.TrimSpace(p.query.DeviceName)
	if name == "" {
		return in
	}
	if p.aliases.IsGeneric(p.activeTypeKey(), name) {
		return in
	}

	p.nameConstrained = true
	p.nameScores = make([]float64, len(p.catalog))

	narrowed := make([]int, 0, len(in.idx))
	for _, i := range in.idx {
		score := nameSimilarity(&p.catalog[i], name)
		p.nameScores[i] = score
		if score >= p.params.Thresholds.Name {
			narrowed = append(narrowed, i)
		}
	}
	return in.advance(stageNameFiltered, narrowed)
}

// activeTypeKey resolves the device type governing the generic-name check:
// the canonical key of the query type when one exists, else the raw query
// type (IsGeneric falls back to the union set for unknown types).
func (p *pipeline) activeTypeKey() string {
	raw := strings.TrimSpace(p.query.DeviceType)
	if raw == "" {
		return ""
	}
	if key, ok := p.aliases.Canonicalize(AliasDomainDeviceType, raw); ok {
		return key
	}
	return raw
}

// nameSimilarity is the maximum similarity between the query name and the
// entity's name candidates, in preference order, short-circuiting on a
// perfect hit.
func nameSimilarity(e *Entity, name string) float64 {
	best := 0.0
	for _, candidate := range e.NameCandidates() {
		if candidate == "" {
			continue
		}
		if s := Similarity(name, candidate); s > best {
			best = s
			if best == 1.0 {
				break
			}
		}
	}
	return best
}
