package match

import "strconv"

// Entity is one addressable device in a catalog snapshot.
//
// All name and type fields are optional; an absent field is represented as
// the empty string. Level is a pointer so that "ground floor" (level 0) can
// be distinguished from "no level recorded".
//
// The English variants (DeviceNameEN, FloorNameEN, RoomNameEN) come from the
// enrichment pipeline that translates installer-supplied names; they take
// priority over the raw fields when resolving a dimension for comparison.
type Entity struct {
	ID string `json:"id"`

	// Classification
	DeviceType string `json:"device_type,omitempty"`

	// Naming
	DeviceName   string `json:"device_name,omitempty"`
	DeviceNameEN string `json:"device_name_en,omitempty"`
	FriendlyName string `json:"friendly_name,omitempty"`

	// Floor placement
	FloorName   string `json:"floor_name,omitempty"`
	FloorNameEN string `json:"floor_name_en,omitempty"`
	FloorType   string `json:"floor_type,omitempty"`
	Level       *int   `json:"level,omitempty"`

	// Room placement
	RoomName   string `json:"room_name,omitempty"`
	RoomNameEN string `json:"room_name_en,omitempty"`
	RoomType   string `json:"room_type,omitempty"`
}

// FloorValue resolves the floor dimension for comparison.
// Priority: floor_name_en > floor_type > floor_name > level.
func (e *Entity) FloorValue() string {
	switch {
	case e.FloorNameEN != "":
		return e.FloorNameEN
	case e.FloorType != "":
		return e.FloorType
	case e.FloorName != "":
		return e.FloorName
	case e.Level != nil:
		return strconv.Itoa(*e.Level)
	}
	return ""
}

// RoomValue resolves the room dimension for comparison.
// Priority: room_name_en > room_type > room_name.
func (e *Entity) RoomValue() string {
	switch {
	case e.RoomNameEN != "":
		return e.RoomNameEN
	case e.RoomType != "":
		return e.RoomType
	}
	return e.RoomName
}

// NameCandidates returns the entity's name fields in matching preference
// order: device_name_en, device_name, friendly_name. Empty fields are kept
// in place; callers skip them.
func (e *Entity) NameCandidates() [3]string {
	return [3]string{e.DeviceNameEN, e.DeviceName, e.FriendlyName}
}

// Query is a match request. Every field is optional; an absent field imposes
// no constraint on that dimension.
type Query struct {
	Floor      string `json:"floor,omitempty"`
	Room       string `json:"room,omitempty"`
	DeviceType string `json:"device_type,omitempty"`
	DeviceName string `json:"device_name,omitempty"`
}

// IsEmpty reports whether the query constrains nothing at all.
// Such a query is valid: every entity scores 1.0.
func (q Query) IsEmpty() bool {
	return q.Floor == "" && q.Room == "" && q.DeviceType == "" && q.DeviceName == ""
}

// FieldScores holds the per-dimension similarity components behind a
// composite score, for explainability. Each value is in [0,1]; a dimension
// the query did not constrain is reported as 1.0.
type FieldScores struct {
	Floor float64 `json:"floor"`
	Room  float64 `json:"room"`
	Type  float64 `json:"type"`
	Name  float64 `json:"name"`
}

// MatchResult is one scored candidate.
type MatchResult struct {
	EntityID string      `json:"entity_id"`
	Score    float64     `json:"score"`
	Fields   FieldScores `json:"fields"`
}

// RankedOutcome is the ordered result of a match: candidates sorted by
// score descending (ties broken by catalog order), truncated to the
// configured top-K. Ambiguous is set when the top two scores are too close
// for the caller to auto-select the first.
type RankedOutcome struct {
	Results   []MatchResult `json:"results"`
	Ambiguous bool          `json:"ambiguous"`
}
