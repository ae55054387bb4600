// Package vmath provides 2D vector arithmetic for the simulation and
// perception layers. Unlike the fixed-point Q16.16 vector math used by a
// frame-rate-bound renderer, a headless batch simulator has no rendering
// budget to protect, so values are plain float32 throughout.
package vmath

import "math"

// Vec2 is a pair of 32-bit floats.
type Vec2 struct {
	X, Y float32
}

// Add returns the component-wise sum.
func (v Vec2) Add(o Vec2) Vec2 {
	return Vec2{v.X + o.X, v.Y + o.Y}
}

// Sub returns the component-wise difference.
func (v Vec2) Sub(o Vec2) Vec2 {
	return Vec2{v.X - o.X, v.Y - o.Y}
}

// Scale returns the vector multiplied by a scalar factor.
func (v Vec2) Scale(factor float32) Vec2 {
	return Vec2{v.X * factor, v.Y * factor}
}

// Dot returns the dot product of v and o.
func (v Vec2) Dot(o Vec2) float32 {
	return v.X*o.X + v.Y*o.Y
}

// MagnitudeSq returns the squared length, avoiding a sqrt in hot paths.
func (v Vec2) MagnitudeSq() float32 {
	return v.X*v.X + v.Y*v.Y
}

// Magnitude returns the vector length.
func (v Vec2) Magnitude() float32 {
	return float32(math.Sqrt(float64(v.MagnitudeSq())))
}

// Normalize returns a unit vector in the same direction, or the zero
// vector if v is zero.
func (v Vec2) Normalize() Vec2 {
	mag := v.Magnitude()
	if mag == 0 {
		return Vec2{}
	}
	return Vec2{v.X / mag, v.Y / mag}
}

// ClampMagnitude limits v to maxMag while preserving direction. Returns v
// unchanged if its magnitude is already within bounds.
func (v Vec2) ClampMagnitude(maxMag float32) Vec2 {
	mag := v.Magnitude()
	if mag <= maxMag || mag == 0 {
		return v
	}
	return v.Scale(maxMag / mag)
}

// DistanceMode selects the metric used for deltas and distances.
type DistanceMode int

const (
	// Euclidean uses direct displacement, no wraparound.
	Euclidean DistanceMode = iota
	// Toroidal treats opposite edges as adjacent; the metric returns the
	// shorter of direct and wrap-around displacement per axis.
	Toroidal
)

// Delta returns the metric-aware displacement from a to b in a world of
// size (w, h). In Toroidal mode each axis independently picks whichever of
// the direct or wrap-around offset is shorter.
func Delta(a, b Vec2, w, h float32, mode DistanceMode) Vec2 {
	dx := b.X - a.X
	dy := b.Y - a.Y
	if mode == Toroidal {
		dx = wrapAxis(dx, w)
		dy = wrapAxis(dy, h)
	}
	return Vec2{dx, dy}
}

func wrapAxis(d, size float32) float32 {
	if size <= 0 {
		return d
	}
	half := size / 2
	for d > half {
		d -= size
	}
	for d < -half {
		d += size
	}
	return d
}

// DistanceSq returns the squared metric-aware distance between a and b.
func DistanceSq(a, b Vec2, w, h float32, mode DistanceMode) float32 {
	return Delta(a, b, w, h, mode).MagnitudeSq()
}

// Distance returns the metric-aware distance between a and b.
func Distance(a, b Vec2, w, h float32, mode DistanceMode) float32 {
	return float32(math.Sqrt(float64(DistanceSq(a, b, w, h, mode))))
}

// Wrap folds p into [0,w)x[0,h) for Toroidal worlds, or clamps to the
// bounds for Euclidean worlds.
func Wrap(p Vec2, w, h float32, mode DistanceMode) Vec2 {
	if mode == Toroidal {
		return Vec2{wrapCoord(p.X, w), wrapCoord(p.Y, h)}
	}
	return Vec2{clampCoord(p.X, w), clampCoord(p.Y, h)}
}

func wrapCoord(c, size float32) float32 {
	if size <= 0 {
		return c
	}
	c = float32(math.Mod(float64(c), float64(size)))
	if c < 0 {
		c += size
	}
	return c
}

func clampCoord(c, size float32) float32 {
	if c < 0 {
		return 0
	}
	if c > size {
		return size
	}
	return c
}
