package vmath

import "testing"

func TestDeltaToroidalShorterWrap(t *testing.T) {
	a := Vec2{5, 100}
	b := Vec2{195, 100}
	d := Delta(a, b, 200, 200, Toroidal)
	if d.X != -10 {
		t.Fatalf("expected wrap-around dx=-10, got %v", d.X)
	}
	if dist := Distance(a, b, 200, 200, Toroidal); dist != 10 {
		t.Fatalf("expected distance 10, got %v", dist)
	}
}

func TestDeltaEuclideanDirect(t *testing.T) {
	a := Vec2{5, 100}
	b := Vec2{195, 100}
	d := Delta(a, b, 200, 200, Euclidean)
	if d.X != 190 {
		t.Fatalf("expected direct dx=190, got %v", d.X)
	}
}

func TestWrapToroidalNegative(t *testing.T) {
	p := Wrap(Vec2{-1, -1}, 200, 200, Toroidal)
	if p.X != 199 || p.Y != 199 {
		t.Fatalf("expected wrap to (199,199), got %+v", p)
	}
}

func TestWrapEuclideanClamps(t *testing.T) {
	p := Wrap(Vec2{-1, -1}, 200, 200, Euclidean)
	if p.X != 0 || p.Y != 0 {
		t.Fatalf("expected clamp to (0,0), got %+v", p)
	}
}

func TestNormalizeZero(t *testing.T) {
	if n := (Vec2{}).Normalize(); n != (Vec2{}) {
		t.Fatalf("expected zero vector, got %+v", n)
	}
}

func TestClampMagnitude(t *testing.T) {
	v := Vec2{3, 4}
	c := v.ClampMagnitude(2)
	if got := c.Magnitude(); got < 1.999 || got > 2.001 {
		t.Fatalf("expected magnitude ~2, got %v", got)
	}
}

func TestDistanceSymmetric(t *testing.T) {
	a, b := Vec2{10, 20}, Vec2{190, 180}
	if Distance(a, b, 200, 200, Toroidal) != Distance(b, a, 200, 200, Toroidal) {
		t.Fatal("distance must be symmetric")
	}
}
