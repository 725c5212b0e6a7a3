package match

import (
	"fmt"
	"math"
)

// Default scoring parameters. Room carries the most weight: within a home,
// "the light in the kitchen" is disambiguated by the room far more often
// than by the device name.
const (
	DefaultFloorWeight = 0.15
	DefaultRoomWeight  = 0.40
	DefaultNameWeight  = 0.30
	DefaultTypeWeight  = 0.15

	DefaultFloorThreshold = 0.70
	DefaultRoomThreshold  = 0.70
	DefaultTypeThreshold  = 0.65
	DefaultNameThreshold  = 0.45

	// DefaultTopK bounds the ranked result list.
	DefaultTopK = 100

	// DefaultDisambigGap is the minimum separation between the top two
	// scores below which the outcome is flagged ambiguous. The boundary is
	// inclusive on the unambiguous side: a gap of exactly this value is
	// not ambiguous.
	DefaultDisambigGap = 0.08
)

// weightSumTolerance absorbs float rounding when validating that the four
// weights form an affine combination.
const weightSumTolerance = 1e-9

// Weights are the per-dimension coefficients of the composite score.
// They must sum to 1.0 so the composite stays in [0,1].
type Weights struct {
	Floor float64 `yaml:"floor"`
	Room  float64 `yaml:"room"`
	Name  float64 `yaml:"name"`
	Type  float64 `yaml:"type"`
}

// Thresholds are the per-dimension inclusion gates used by the filter
// stages. They gate inclusion only; component scores report the raw
// similarity of included entities.
type Thresholds struct {
	Floor float64 `yaml:"floor"`
	Room  float64 `yaml:"room"`
	Type  float64 `yaml:"type"`
	Name  float64 `yaml:"name"`
}

// Params collects the tunable constants of the engine.
type Params struct {
	Weights     Weights    `yaml:"weights"`
	Thresholds  Thresholds `yaml:"thresholds"`
	TopK        int        `yaml:"top_k"`
	DisambigGap float64    `yaml:"disambiguation_gap"`
}

// DefaultParams returns the production defaults.
func DefaultParams() Params {
	return Params{
		Weights: Weights{
			Floor: DefaultFloorWeight,
			Room:  DefaultRoomWeight,
			Name:  DefaultNameWeight,
			Type:  DefaultTypeWeight,
		},
		Thresholds: Thresholds{
			Floor: DefaultFloorThreshold,
			Room:  DefaultRoomThreshold,
			Type:  DefaultTypeThreshold,
			Name:  DefaultNameThreshold,
		},
		TopK:        DefaultTopK,
		DisambigGap: DefaultDisambigGap,
	}
}

// Validate checks that the parameters keep the composite score in [0,1].
func (p Params) Validate() error {
	for _, w := range []struct {
		name  string
		value float64
	}{
		{"floor", p.Weights.Floor},
		{"room", p.Weights.Room},
		{"name", p.Weights.Name},
		{"type", p.Weights.Type},
	} {
		if w.value < 0 || w.value > 1 {
			return fmt.Errorf("%w: weight %s = %v, want [0,1]", ErrInvalidParams, w.name, w.value)
		}
	}

	sum := p.Weights.Floor + p.Weights.Room + p.Weights.Name + p.Weights.Type
	if math.Abs(sum-1.0) > weightSumTolerance {
		return fmt.Errorf("%w: weights sum to %v, want 1.0", ErrInvalidParams, sum)
	}

	for _, th := range []struct {
		name  string
		value float64
	}{
		{"floor", p.Thresholds.Floor},
		{"room", p.Thresholds.Room},
		{"type", p.Thresholds.Type},
		{"name", p.Thresholds.Name},
	} {
		if th.value < 0 || th.value > 1 {
			return fmt.Errorf("%w: threshold %s = %v, want [0,1]", ErrInvalidParams, th.name, th.value)
		}
	}

	if p.TopK <= 0 {
		return fmt.Errorf("%w: top_k = %d, want > 0", ErrInvalidParams, p.TopK)
	}
	if p.DisambigGap < 0 || p.DisambigGap > 1 {
		return fmt.Errorf("%w: disambiguation_gap = %v, want [0,1]", ErrInvalidParams, p.DisambigGap)
	}

	return nil
}
