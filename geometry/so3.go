// SPDX-License-Identifier: MIT

package geometry

import "math"

// SO3 is a 3D rotation stored as a unit quaternion (W, X, Y, Z).
type SO3 struct {
	W, X, Y, Z float64
}

// SO3Identity returns the zero rotation.
func SO3Identity() SO3 { return SO3{W: 1} }

// SO3Exp maps a rotation vector ω (axis·angle) to the group.
func SO3Exp(omega [3]float64) SO3 {
	theta2 := omega[0]*omega[0] + omega[1]*omega[1] + omega[2]*omega[2]

	var real, imag float64
	if theta2 < smallAngle*smallAngle {
		real = 1 - theta2/8
		imag = 0.5 - theta2/48
	} else {
		theta := math.Sqrt(theta2)
		s, c := math.Sincos(theta / 2)
		real = c
		imag = s / theta
	}

	return SO3{W: real, X: imag * omega[0], Y: imag * omega[1], Z: imag * omega[2]}
}

// SO3FromAxisAngle returns the rotation by angle radians around axis.
// A zero axis yields the identity.
func SO3FromAxisAngle(axis [3]float64, angle float64) SO3 {
	n := norm3(axis)
	if n == 0 {
		return SO3Identity()
	}
	k := angle / n

	return SO3Exp([3]float64{axis[0] * k, axis[1] * k, axis[2] * k})
}

// SO3FromRPY composes yaw(Z) ∘ pitch(Y) ∘ roll(X).
func SO3FromRPY(roll, pitch, yaw float64) SO3 {
	return SO3FromAxisAngle([3]float64{0, 0, 1}, yaw).
		Compose(SO3FromAxisAngle([3]float64{0, 1, 0}, pitch)).
		Compose(SO3FromAxisAngle([3]float64{1, 0, 0}, roll))
}

// Log returns the rotation vector with angle in [0, π].
func (q SO3) Log() [3]float64 {
	w, x, y, z := q.W, q.X, q.Y, q.Z
	if w < 0 {
		w, x, y, z = -w, -x, -y, -z
	}
	n2 := x*x + y*y + z*z

	var k float64
	if n2 < smallAngle*smallAngle {
		k = 2/w - 2*n2/(3*w*w*w)
	} else {
		n := math.Sqrt(n2)
		k = 2 * math.Atan2(n, w) / n
	}

	return [3]float64{k * x, k * y, k * z}
}

// Compose returns q ∘ o (Hamilton product).
func (q SO3) Compose(o SO3) SO3 {
	return SO3{
		W: q.W*o.W - q.X*o.X - q.Y*o.Y - q.Z*o.Z,
		X: q.W*o.X + q.X*o.W + q.Y*o.Z - q.Z*o.Y,
		Y: q.W*o.Y - q.X*o.Z + q.Y*o.W + q.Z*o.X,
		Z: q.W*o.Z + q.X*o.Y - q.Y*o.X + q.Z*o.W,
	}
}

// Inverse returns the conjugate.
func (q SO3) Inverse() SO3 { return SO3{W: q.W, X: -q.X, Y: -q.Y, Z: -q.Z} }

// Apply rotates p.
func (q SO3) Apply(p [3]float64) [3]float64 {
	u := [3]float64{q.X, q.Y, q.Z}
	t := cross3(u, p)
	t[0], t[1], t[2] = 2*t[0], 2*t[1], 2*t[2]
	c := cross3(u, t)

	return [3]float64{
		p[0] + q.W*t[0] + c[0],
		p[1] + q.W*t[1] + c[1],
		p[2] + q.W*t[2] + c[2],
	}
}

// Normalize projects q back onto the unit sphere.
func (q SO3) Normalize() SO3 {
	n := math.Sqrt(q.W*q.W + q.X*q.X + q.Y*q.Y + q.Z*q.Z)
	if n == 0 {
		return SO3Identity()
	}

	return SO3{W: q.W / n, X: q.X / n, Y: q.Y / n, Z: q.Z / n}
}

// Parameters returns the storage (w, x, y, z).
func (q SO3) Parameters() []float64 { return []float64{q.W, q.X, q.Y, q.Z} }

// SO3FromParameters reads (w, x, y, z) storage.
func SO3FromParameters(p []float64) SO3 { return SO3{W: p[0], X: p[1], Y: p[2], Z: p[3]} }

func cross3(a, b [3]float64) [3]float64 {
	return [3]float64{
		a[1]*b[2] - a[2]*b[1],
		a[2]*b[0] - a[0]*b[2],
		a[0]*b[1] - a[1]*b[0],
	}
}

func norm3(a [3]float64) float64 { return math.Sqrt(a[0]*a[0] + a[1]*a[1] + a[2]*a[2]) }
