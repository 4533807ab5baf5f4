// SPDX-License-Identifier: MIT

package geometry

import "math"

// SO2 is a planar rotation stored as a unit complex number (Cos, Sin).
type SO2 struct {
	Cos, Sin float64
}

// SO2Identity returns the zero rotation.
func SO2Identity() SO2 { return SO2{Cos: 1} }

// SO2FromAngle returns the rotation by theta radians.
func SO2FromAngle(theta float64) SO2 {
	s, c := math.Sincos(theta)

	return SO2{Cos: c, Sin: s}
}

// SO2Exp is the exponential map; identical to SO2FromAngle.
func SO2Exp(omega float64) SO2 { return SO2FromAngle(omega) }

// Log returns the rotation angle in (−π, π].
func (r SO2) Log() float64 { return math.Atan2(r.Sin, r.Cos) }

// Compose returns r ∘ o.
func (r SO2) Compose(o SO2) SO2 {
	return SO2{
		Cos: r.Cos*o.Cos - r.Sin*o.Sin,
		Sin: r.Sin*o.Cos + r.Cos*o.Sin,
	}
}

// Inverse returns r⁻¹.
func (r SO2) Inverse() SO2 { return SO2{Cos: r.Cos, Sin: -r.Sin} }

// Apply rotates the point (x, y).
func (r SO2) Apply(x, y float64) (float64, float64) {
	return r.Cos*x - r.Sin*y, r.Sin*x + r.Cos*y
}

// Normalize projects r back onto the unit circle.
func (r SO2) Normalize() SO2 {
	n := math.Hypot(r.Cos, r.Sin)
	if n == 0 {
		return SO2Identity()
	}

	return SO2{Cos: r.Cos / n, Sin: r.Sin / n}
}

// Parameters returns the storage (cos, sin).
func (r SO2) Parameters() []float64 { return []float64{r.Cos, r.Sin} }

// SO2FromParameters reads (cos, sin) storage.
func SO2FromParameters(p []float64) SO2 { return SO2{Cos: p[0], Sin: p[1]} }
