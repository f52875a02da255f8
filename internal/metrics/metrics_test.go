package metrics

import (
	"math"
	"testing"

	"github.com/san-kum/discwalk/internal/walk"
)

func TestPathLength(t *testing.T) {
	m := NewPathLength()

	m.OnTick(1, walk.Snapshot{X: 0, Y: 0})
	m.OnTick(2, walk.Snapshot{X: 3, Y: 4})
	m.OnTick(3, walk.Snapshot{X: 3, Y: 0})

	if math.Abs(m.Value()-9) > 1e-9 {
		t.Errorf("expected path length 9, got %f", m.Value())
	}

	m.Reset()
	if m.Value() != 0 {
		t.Error("expected zero length after reset")
	}
	m.OnTick(1, walk.Snapshot{X: 100, Y: 100})
	if m.Value() != 0 {
		t.Error("first tick after reset should not add distance")
	}
}

func TestColorDrift(t *testing.T) {
	m := NewColorDrift()

	m.OnTick(1, walk.Snapshot{Color: walk.RGB{R: 100, G: 100, B: 100}})
	if m.Value() != 0 {
		t.Error("expected zero drift from one sample")
	}
	m.OnTick(2, walk.Snapshot{Color: walk.RGB{R: 110, G: 90, B: 100}})
	m.OnTick(3, walk.Snapshot{Color: walk.RGB{R: 110, G: 90, B: 130}})

	if math.Abs(m.Value()-25) > 1e-9 {
		t.Errorf("expected drift 25, got %f", m.Value())
	}
}

func TestCoverage(t *testing.T) {
	region := walk.Region{Min: 0, MaxX: 100, MaxY: 100}
	m := NewCoverage(region, 10, 10)

	m.OnTick(1, walk.Snapshot{X: 5, Y: 5})
	m.OnTick(2, walk.Snapshot{X: 6, Y: 6})
	m.OnTick(3, walk.Snapshot{X: 55, Y: 95})
	m.OnTick(4, walk.Snapshot{X: 150, Y: 5})

	if math.Abs(m.Value()-0.02) > 1e-9 {
		t.Errorf("expected coverage 0.02, got %f", m.Value())
	}

	m.Reset()
	if m.Value() != 0 {
		t.Error("expected zero coverage after reset")
	}
}

func TestSet(t *testing.T) {
	s := Default(walk.DefaultRegion)
	s.OnTick(1, walk.Snapshot{X: 10, Y: 10})
	s.OnTick(2, walk.Snapshot{X: 13, Y: 14})

	values := s.Values()
	if len(values) != 3 {
		t.Fatalf("expected 3 values, got %d", len(values))
	}
	if math.Abs(values["path_length"]-5) > 1e-9 {
		t.Errorf("expected path length 5, got %f", values["path_length"])
	}
	if values["coverage"] <= 0 {
		t.Error("expected positive coverage")
	}

	s.Reset()
	if s.Values()["path_length"] != 0 {
		t.Error("expected reset to clear metrics")
	}
}
