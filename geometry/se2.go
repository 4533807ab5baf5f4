// SPDX-License-Identifier: MIT

package geometry

import "math"

// smallAngle is the threshold below which exp/log use Taylor series.
const smallAngle = 1e-6

// SE2 is a planar rigid transform: rotation R and translation (X, Y).
// Storage order is (x, y, cos, sin).
type SE2 struct {
	Rotation SO2
	X, Y     float64
}

// SE2Identity returns the identity transform.
func SE2Identity() SE2 { return SE2{Rotation: SO2Identity()} }

// SE2FromXYTheta builds a transform from a translation and heading.
func SE2FromXYTheta(x, y, theta float64) SE2 {
	return SE2{Rotation: SO2FromAngle(theta), X: x, Y: y}
}

// se2VCoefficients returns (a, b) of V = [[a, −b], [b, a]],
// a = sinθ/θ and b = (1−cosθ)/θ.
func se2VCoefficients(theta float64) (a, b float64) {
	if math.Abs(theta) < smallAngle {
		t2 := theta * theta

		return 1 - t2/6, theta/2 - theta*t2/24
	}
	s, c := math.Sincos(theta)

	return s / theta, (1 - c) / theta
}

// SE2Exp maps a tangent vector (vx, vy, ω) to the group.
func SE2Exp(tangent [3]float64) SE2 {
	theta := tangent[2]
	a, b := se2VCoefficients(theta)

	return SE2{
		Rotation: SO2FromAngle(theta),
		X:        a*tangent[0] - b*tangent[1],
		Y:        b*tangent[0] + a*tangent[1],
	}
}

// Log maps the transform to its tangent vector (vx, vy, ω).
func (T SE2) Log() [3]float64 {
	theta := T.Rotation.Log()
	a, b := se2VCoefficients(theta)
	det := a*a + b*b

	return [3]float64{
		(a*T.X + b*T.Y) / det,
		(-b*T.X + a*T.Y) / det,
		theta,
	}
}

// Compose returns T ∘ o.
func (T SE2) Compose(o SE2) SE2 {
	x, y := T.Rotation.Apply(o.X, o.Y)

	return SE2{Rotation: T.Rotation.Compose(o.Rotation), X: T.X + x, Y: T.Y + y}
}

// Inverse returns T⁻¹.
func (T SE2) Inverse() SE2 {
	inv := T.Rotation.Inverse()
	x, y := inv.Apply(T.X, T.Y)

	return SE2{Rotation: inv, X: -x, Y: -y}
}

// Apply transforms the point (x, y).
func (T SE2) Apply(x, y float64) (float64, float64) {
	rx, ry := T.Rotation.Apply(x, y)

	return rx + T.X, ry + T.Y
}

// Translation returns (X, Y).
func (T SE2) Translation() [2]float64 { return [2]float64{T.X, T.Y} }

// Parameters returns the storage (x, y, cos, sin).
func (T SE2) Parameters() []float64 {
	return []float64{T.X, T.Y, T.Rotation.Cos, T.Rotation.Sin}
}

// SE2FromParameters reads (x, y, cos, sin) storage.
func SE2FromParameters(p []float64) SE2 {
	return SE2{Rotation: SO2{Cos: p[2], Sin: p[3]}, X: p[0], Y: p[1]}
}
