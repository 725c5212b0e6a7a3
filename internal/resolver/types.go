package resolver

import (
	"github.com/nerrad567/gray-logic-match/internal/match"
)

// Request is the wire format of a match request, published by the intent
// pipeline on graymatch/match/request.
//
// RequestID is optional; when absent the resolver assigns a UUID so the
// result can still be published on a per-request topic. Devices carries one
// query per device description extracted from the user's utterance.
type Request struct {
	RequestID string        `json:"request_id,omitempty"`
	UserInput string        `json:"user_input,omitempty"`
	Devices   []match.Query `json:"devices"`
}

// StageSummary is the per-stage trace condensed for the wire: pool counts
// and elapsed microseconds, without the survivor ID lists.
type StageSummary struct {
	Stage     string `json:"stage"`
	In        int    `json:"in"`
	Out       int    `json:"out"`
	ElapsedUS int64  `json:"elapsed_us"`
}

// DeviceOutcome is the ranked result for a single device query.
type DeviceOutcome struct {
	Query     match.Query         `json:"query"`
	Results   []match.MatchResult `json:"results"`
	Ambiguous bool                `json:"ambiguous"`
	Stages    []StageSummary      `json:"stages,omitempty"`
}

// Response is the wire format published on graymatch/match/result/{id}.
// Error is set (and Outcomes empty) when the request could not be served.
type Response struct {
	RequestID string          `json:"request_id"`
	Outcomes  []DeviceOutcome `json:"outcomes,omitempty"`
	Error     string          `json:"error,omitempty"`
}

// Snapshot is the wire format of a catalog snapshot, published by the
// enrichment pipeline on graymatch/catalog/snapshot.
type Snapshot struct {
	Entities []match.Entity `json:"entities"`
}

// summarizeTrace condenses an engine trace for the wire.
func summarizeTrace(trace *match.Trace) []StageSummary {
	if trace == nil {
		return nil
	}
	stages := make([]StageSummary, 0, len(trace.Stages))
	for _, st := range trace.Stages {
		stages = append(stages, StageSummary{
			Stage:     st.Stage,
			In:        st.In,
			Out:       st.Out,
			ElapsedUS: st.Elapsed.Microseconds(),
		})
	}
	return stages
}
