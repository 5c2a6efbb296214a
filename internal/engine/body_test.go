package engine

import (
	"math"
	"testing"
)

func TestTrailFIFO(t *testing.T) {
	var tr Trail
	for i := 0; i < 8; i++ {
		tr.Push(Vec2{float64(i), 0}, 5)
	}

	if tr.Len() != 5 {
		t.Fatalf("length %d, want 5", tr.Len())
	}
	pts := tr.Points()
	for i, p := range pts {
		if want := float64(i + 3); p.X != want {
			t.Errorf("point %d: x=%f, want %f (oldest-first order)", i, p.X, want)
		}
	}
}

func TestTrailShrinkOnSmallerMax(t *testing.T) {
	var tr Trail
	for i := 0; i < 10; i++ {
		tr.Push(Vec2{float64(i), 0}, 10)
	}

	tr.Push(Vec2{10, 0}, 4)
	if tr.Len() != 4 {
		t.Fatalf("length %d after max shrank to 4", tr.Len())
	}
	if pts := tr.Points(); pts[3].X != 10 {
		t.Errorf("newest point x=%f, want 10", pts[3].X)
	}
}

func TestTrailZeroMax(t *testing.T) {
	var tr Trail
	tr.Push(Vec2{1, 1}, 3)
	tr.Push(Vec2{2, 2}, 0)
	if tr.Len() != 0 {
		t.Errorf("length %d with max 0, want 0", tr.Len())
	}
}

func TestVec2(t *testing.T) {
	a := Vec2{3, 4}
	b := Vec2{1, -2}

	if a.Len() != 5 {
		t.Errorf("Len = %f, want 5", a.Len())
	}
	if got := a.Add(b); got != (Vec2{4, 2}) {
		t.Errorf("Add = %v", got)
	}
	if got := a.Sub(b); got != (Vec2{2, 6}) {
		t.Errorf("Sub = %v", got)
	}
	if got := a.Scale(2); got != (Vec2{6, 8}) {
		t.Errorf("Scale = %v", got)
	}
}

func TestVec2IsValid(t *testing.T) {
	tests := []struct {
		v     Vec2
		valid bool
	}{
		{Vec2{0, 0}, true},
		{Vec2{1e300, -1e300}, true},
		{Vec2{math.NaN(), 0}, false},
		{Vec2{0, math.Inf(1)}, false},
		{Vec2{math.Inf(-1), 0}, false},
	}
	for _, tt := range tests {
		if got := tt.v.IsValid(); got != tt.valid {
			t.Errorf("IsValid(%v) = %v, want %v", tt.v, got, tt.valid)
		}
	}
}
