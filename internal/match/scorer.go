package match

import "strings"

// score is stage 3: the weighted composite for one surviving entity.
//
// Per-dimension components: 1.0 when the query leaves the dimension
// unconstrained (a non-constraint must never penalise an entity), 1.0 on a
// canonical-key match, otherwise the raw similarity if it clears the stage
// threshold and 0 below it. The name component is whatever stage 2
// computed, or 1.0 when the name stage was skipped.
//
// With weights summing to 1.0 and every component in [0,1], the composite
// is guaranteed in [0,1].
func (p *pipeline) score(i int) MatchResult {
	e := &p.catalog[i]

	fields := FieldScores{
		Floor: p.component(AliasDomainFloor, p.query.Floor, e.FloorValue(), p.params.Thresholds.Floor),
		Room:  p.component(AliasDomainRoom, p.query.Room, e.RoomValue(), p.params.Thresholds.Room),
		Type:  p.component(AliasDomainDeviceType, p.query.DeviceType, e.DeviceType, p.params.Thresholds.Type),
		Name:  1.0,
	}
	if p.nameConstrained {
		fields.Name = p.nameScores[i]
	}

	w := p.params.Weights
	composite := w.Room*fields.Room + w.Name*fields.Name + w.Floor*fields.Floor + w.Type*fields.Type

	return MatchResult{
		EntityID: e.ID,
		Score:    composite,
		Fields:   fields,
	}
}

// component computes one per-dimension score.
func (p *pipeline) component(domain AliasDomain, queryVal, entityVal string, threshold float64) float64 {
	queryVal = strings.TrimSpace(queryVal)
	if queryVal == "" {
		return 1.0
	}

	if queryKey, ok := p.aliases.Canonicalize(domain, queryVal); ok {
		if entityKey, eok := p.aliases.Canonicalize(domain, entityVal); eok && entityKey == queryKey {
			return 1.0
		}
	}

	sim := Similarity(queryVal, entityVal)
	if sim < threshold {
		return 0
	}
	return sim
}
