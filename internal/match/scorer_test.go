package match

import (
	"math"
	"testing"
)

func TestComponent(t *testing.T) {
	p := newTestPipeline(t, Query{}, nil)

	tests := []struct {
		name      string
		domain    AliasDomain
		queryVal  string
		entityVal string
		threshold float64
		want      float64
	}{
		{"absent query value", AliasDomainRoom, "", "living_room", 0.70, 1.0},
		{"whitespace query value", AliasDomainRoom, "   ", "living_room", 0.70, 1.0},
		{"canonical match", AliasDomainRoom, "客厅", "living_room", 0.70, 1.0},
		{"below threshold scores zero", AliasDomainRoom, "pantry", "garage", 0.70, 0},
		{"miss against empty entity", AliasDomainFloor, "1", "", 0.70, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := p.component(tt.domain, tt.queryVal, tt.entityVal, tt.threshold)
			if got != tt.want {
				t.Errorf("component(%q, %q) = %v, want %v", tt.queryVal, tt.entityVal, got, tt.want)
			}
		})
	}

	t.Run("above threshold reports raw similarity", func(t *testing.T) {
		queryVal, entityVal := "nursery", "nurserie"
		want := Similarity(queryVal, entityVal)
		if want < 0.70 || want >= 1.0 {
			t.Fatalf("fixture similarity = %v, want in [0.70, 1.0)", want)
		}
		got := p.component(AliasDomainRoom, queryVal, entityVal, 0.70)
		if got != want {
			t.Errorf("component(%q, %q) = %v, want raw similarity %v", queryVal, entityVal, got, want)
		}
	})
}

func TestScoreCompositeWeighting(t *testing.T) {
	catalog := []Entity{{
		ID:           "a",
		DeviceType:   "light",
		DeviceNameEN: "ceiling light",
		FloorNameEN:  "1",
		RoomNameEN:   "living_room",
	}}
	p := newTestPipeline(t, Query{
		Floor:      "2", // wrong floor: component 0
		Room:       "living_room",
		DeviceType: "light",
	}, catalog)

	r := p.score(0)

	if r.Fields.Floor != 0 {
		t.Errorf("floor component = %v, want 0", r.Fields.Floor)
	}
	if r.Fields.Room != 1.0 || r.Fields.Type != 1.0 || r.Fields.Name != 1.0 {
		t.Errorf("components = %+v, want room/type/name all 1.0", r.Fields)
	}

	want := DefaultRoomWeight + DefaultNameWeight + DefaultTypeWeight
	if math.Abs(r.Score-want) > scoreTolerance {
		t.Errorf("composite = %v, want %v", r.Score, want)
	}
}

func TestScoreUsesStageNameScores(t *testing.T) {
	catalog := []Entity{
		{ID: "a", DeviceNameEN: "ceiling light"},
		{ID: "b", DeviceNameEN: "ceiling lamp"},
	}
	p := newTestPipeline(t, Query{DeviceName: "ceiling light"}, catalog)
	p.matchByName(p.initialPool())

	exact := p.score(0)
	if exact.Fields.Name != 1.0 {
		t.Errorf("exact name component = %v, want 1.0", exact.Fields.Name)
	}

	near := p.score(1)
	wantSim := Similarity("ceiling light", "ceiling lamp")
	if near.Fields.Name != wantSim {
		t.Errorf("near name component = %v, want stage-2 similarity %v", near.Fields.Name, wantSim)
	}
	if exact.Score <= near.Score {
		t.Errorf("exact score %v not above near score %v", exact.Score, near.Score)
	}
}
