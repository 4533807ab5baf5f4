// SPDX-License-Identifier: MIT

package geometry

import "math"

// SE3 is a 3D rigid transform. Storage order is (qw, qx, qy, qz, x, y, z);
// tangent order is (vx, vy, vz, ωx, ωy, ωz).
type SE3 struct {
	Rotation    SO3
	Translation [3]float64
}

// SE3Identity returns the identity transform.
func SE3Identity() SE3 { return SE3{Rotation: SO3Identity()} }

// SE3FromRotationTranslation builds a transform from its parts.
func SE3FromRotationTranslation(r SO3, t [3]float64) SE3 {
	return SE3{Rotation: r, Translation: t}
}

// se3Coefficients returns B = (1−cosθ)/θ² and C = (θ−sinθ)/θ³ of the left
// Jacobian V = I + B·[ω]× + C·[ω]×², and D of V⁻¹ = I − ½[ω]× + D·[ω]×².
func se3Coefficients(theta float64) (b, c, d float64) {
	if theta < smallAngle {
		t2 := theta * theta

		return 0.5 - t2/24, 1.0/6 - t2/120, 1.0/12 + t2/720
	}
	s, co := math.Sincos(theta)
	t2 := theta * theta
	b = (1 - co) / t2
	c = (theta - s) / (t2 * theta)
	d = (1 - theta*s/(2*(1-co))) / t2

	return b, c, d
}

// SE3Exp maps a tangent vector (v, ω) to the group.
func SE3Exp(tangent [6]float64) SE3 {
	v := [3]float64{tangent[0], tangent[1], tangent[2]}
	w := [3]float64{tangent[3], tangent[4], tangent[5]}
	b, c, _ := se3Coefficients(norm3(w))
	wv := cross3(w, v)
	wwv := cross3(w, wv)

	var t [3]float64
	for i := range t {
		t[i] = v[i] + b*wv[i] + c*wwv[i]
	}

	return SE3{Rotation: SO3Exp(w), Translation: t}
}

// Log maps the transform to its tangent vector (v, ω).
func (T SE3) Log() [6]float64 {
	w := T.Rotation.Log()
	_, _, d := se3Coefficients(norm3(w))
	t := T.Translation
	wt := cross3(w, t)
	wwt := cross3(w, wt)

	var out [6]float64
	for i := 0; i < 3; i++ {
		out[i] = t[i] - 0.5*wt[i] + d*wwt[i]
		out[3+i] = w[i]
	}

	return out
}

// Compose returns T ∘ o.
func (T SE3) Compose(o SE3) SE3 {
	rt := T.Rotation.Apply(o.Translation)

	return SE3{
		Rotation: T.Rotation.Compose(o.Rotation),
		Translation: [3]float64{
			T.Translation[0] + rt[0],
			T.Translation[1] + rt[1],
			T.Translation[2] + rt[2],
		},
	}
}

// Inverse returns T⁻¹.
func (T SE3) Inverse() SE3 {
	inv := T.Rotation.Inverse()
	t := inv.Apply(T.Translation)

	return SE3{Rotation: inv, Translation: [3]float64{-t[0], -t[1], -t[2]}}
}

// Apply transforms p.
func (T SE3) Apply(p [3]float64) [3]float64 {
	r := T.Rotation.Apply(p)

	return [3]float64{r[0] + T.Translation[0], r[1] + T.Translation[1], r[2] + T.Translation[2]}
}

// Parameters returns the storage (qw, qx, qy, qz, x, y, z).
func (T SE3) Parameters() []float64 {
	q := T.Rotation

	return []float64{q.W, q.X, q.Y, q.Z, T.Translation[0], T.Translation[1], T.Translation[2]}
}

// SE3FromParameters reads (qw, qx, qy, qz, x, y, z) storage.
func SE3FromParameters(p []float64) SE3 {
	return SE3{
		Rotation:    SO3{W: p[0], X: p[1], Y: p[2], Z: p[3]},
		Translation: [3]float64{p[4], p[5], p[6]},
	}
}
