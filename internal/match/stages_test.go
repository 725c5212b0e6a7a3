package match

import (
	"reflect"
	"testing"
)

func newTestPipeline(t *testing.T, query Query, catalog []Entity) *pipeline {
	t.Helper()
	return newPipeline(query, catalog, NewAliasTable(DefaultAliasConfig()), DefaultParams())
}

func TestPoolAdvance(t *testing.T) {
	in := pool{stage: stageTypeFiltered, idx: []int{0, 2, 4}}

	t.Run("non-empty narrowing moves forward", func(t *testing.T) {
		out := in.advance(stageSpaceFiltered, []int{2})
		if out.stage != stageSpaceFiltered {
			t.Errorf("stage = %v, want stageSpaceFiltered", out.stage)
		}
		if !reflect.DeepEqual(out.idx, []int{2}) {
			t.Errorf("idx = %v, want [2]", out.idx)
		}
	})

	t.Run("empty narrowing stays put", func(t *testing.T) {
		out := in.advance(stageSpaceFiltered, nil)
		if out.stage != stageTypeFiltered {
			t.Errorf("stage = %v, want stageTypeFiltered", out.stage)
		}
		if !reflect.DeepEqual(out.idx, []int{0, 2, 4}) {
			t.Errorf("idx = %v, want the wider pool", out.idx)
		}
	})
}

func TestFilterByTypeRawFallback(t *testing.T) {
	// A device type unknown to the alias tables still filters by
	// case-insensitive raw comparison.
	catalog := []Entity{
		{ID: "a", DeviceType: "KNX_Actuator"},
		{ID: "b", DeviceType: "light"},
	}
	p := newTestPipeline(t, Query{DeviceType: "knx_actuator"}, catalog)

	out := p.filterByType(p.initialPool())
	if !reflect.DeepEqual(out.idx, []int{0}) {
		t.Errorf("survivors = %v, want [0]", out.idx)
	}
	if out.stage != stageTypeFiltered {
		t.Errorf("stage = %v, want stageTypeFiltered", out.stage)
	}
}

func TestFilterByTypeAliasBeatsRawMismatch(t *testing.T) {
	// Query and entity spell the type differently but share a canonical key.
	catalog := []Entity{
		{ID: "a", DeviceType: "空调"},
		{ID: "b", DeviceType: "light"},
	}
	p := newTestPipeline(t, Query{DeviceType: "ac"}, catalog)

	out := p.filterByType(p.initialPool())
	if !reflect.DeepEqual(out.idx, []int{0}) {
		t.Errorf("survivors = %v, want [0]", out.idx)
	}
}

func TestFilterBySpaceRequiresBothDimensions(t *testing.T) {
	catalog := []Entity{
		{ID: "right-floor-right-room", FloorNameEN: "1", RoomNameEN: "living_room"},
		{ID: "right-floor-wrong-room", FloorNameEN: "1", RoomNameEN: "bedroom"},
		{ID: "wrong-floor-right-room", FloorNameEN: "2", RoomNameEN: "living_room"},
		{ID: "no-placement"},
	}
	p := newTestPipeline(t, Query{Floor: "1", Room: "living_room"}, catalog)

	out := p.filterBySpace(p.initialPool())
	if !reflect.DeepEqual(out.idx, []int{0}) {
		t.Errorf("survivors = %v, want only the entity matching floor AND room", out.idx)
	}
}

func TestDimensionMatches(t *testing.T) {
	p := newTestPipeline(t, Query{}, nil)

	tests := []struct {
		name      string
		domain    AliasDomain
		queryVal  string
		entityVal string
		threshold float64
		want      bool
	}{
		{"canonical equality", AliasDomainRoom, "客厅", "living_room", 0.70, true},
		{"entity missing value", AliasDomainRoom, "living_room", "", 0.70, false},
		{"fuzzy above threshold", AliasDomainRoom, "kitchen", "kitchenette", 0.70, true},
		{"fuzzy below threshold", AliasDomainRoom, "pantry", "garage", 0.70, false},
		{"level as floor value", AliasDomainFloor, "二楼", "2", 0.70, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := p.dimensionMatches(tt.domain, tt.queryVal, tt.entityVal, tt.threshold)
			if got != tt.want {
				t.Errorf("dimensionMatches(%q, %q) = %v, want %v", tt.queryVal, tt.entityVal, got, tt.want)
			}
		})
	}
}

func TestMatchByNameSkipsWithoutConstraint(t *testing.T) {
	catalog := []Entity{
		{ID: "a", DeviceNameEN: "ceiling light"},
		{ID: "b", DeviceNameEN: "desk lamp"},
	}

	tests := []struct {
		name  string
		query Query
	}{
		{"no name", Query{DeviceType: "light"}},
		{"generic english name", Query{DeviceType: "light", DeviceName: "lamp"}},
		{"generic chinese name", Query{DeviceType: "灯", DeviceName: "灯"}},
		{"generic name without type", Query{DeviceName: "light"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := newTestPipeline(t, tt.query, catalog)
			in := p.initialPool()

			out := p.matchByName(in)
			if p.nameConstrained {
				t.Error("nameConstrained = true, want skipped stage")
			}
			if !reflect.DeepEqual(out.idx, in.idx) {
				t.Errorf("pool changed: %v, want unchanged %v", out.idx, in.idx)
			}
		})
	}
}

func TestMatchByNameUsesBestCandidate(t *testing.T) {
	// device_name misses but friendly_name is exact: the maximum across
	// candidates decides.
	catalog := []Entity{
		{ID: "a", DeviceName: "relay_07", FriendlyName: "porch light"},
	}
	p := newTestPipeline(t, Query{DeviceName: "porch light"}, catalog)

	out := p.matchByName(p.initialPool())
	if !p.nameConstrained {
		t.Fatal("nameConstrained = false, want constrained stage")
	}
	if !reflect.DeepEqual(out.idx, []int{0}) {
		t.Errorf("survivors = %v, want [0]", out.idx)
	}
	if p.nameScores[0] != 1.0 {
		t.Errorf("name score = %v, want 1.0 via friendly_name", p.nameScores[0])
	}
}

func TestEntityFieldPriority(t *testing.T) {
	level := 3

	t.Run("floor prefers english name", func(t *testing.T) {
		e := Entity{FloorNameEN: "2", FloorType: "attic", FloorName: "顶楼", Level: &level}
		if got := e.FloorValue(); got != "2" {
			t.Errorf("FloorValue() = %q, want %q", got, "2")
		}
	})

	t.Run("floor falls through to level", func(t *testing.T) {
		e := Entity{Level: &level}
		if got := e.FloorValue(); got != "3" {
			t.Errorf("FloorValue() = %q, want %q", got, "3")
		}
	})

	t.Run("level zero is a value", func(t *testing.T) {
		zero := 0
		e := Entity{Level: &zero}
		if got := e.FloorValue(); got != "0" {
			t.Errorf("FloorValue() = %q, want %q", got, "0")
		}
	})

	t.Run("room prefers english name over type", func(t *testing.T) {
		e := Entity{RoomNameEN: "study", RoomType: "office", RoomName: "书房"}
		if got := e.RoomValue(); got != "study" {
			t.Errorf("RoomValue() = %q, want %q", got, "study")
		}
	})

	t.Run("room falls through to raw name", func(t *testing.T) {
		e := Entity{RoomName: "书房"}
		if got := e.RoomValue(); got != "书房" {
			t.Errorf("RoomValue() = %q, want %q", got, "书房")
		}
	})

	t.Run("no placement resolves empty", func(t *testing.T) {
		e := Entity{}
		if got := e.FloorValue(); got != "" {
			t.Errorf("FloorValue() = %q, want empty", got)
		}
		if got := e.RoomValue(); got != "" {
			t.Errorf("RoomValue() = %q, want empty", got)
		}
	})
}
