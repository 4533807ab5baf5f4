// SPDX-License-Identifier: MIT

package geometry

import "github.com/katalvlaran/factorgraph/core"

// Type names, used as group keys and registry keys.
const (
	NameSO2 = "SO2"
	NameSE2 = "SE2"
	NameSO3 = "SO3"
	NameSE3 = "SE3"
)

// SO2Type is the variable type of planar rotations.
type SO2Type struct{}

// SE2Type is the variable type of planar poses.
type SE2Type struct{}

// SO3Type is the variable type of 3D rotations.
type SO3Type struct{}

// SE3Type is the variable type of 3D poses.
type SE3Type struct{}

// Compile-time interface checks.
var (
	_ core.VariableType = SO2Type{}
	_ core.VariableType = SE2Type{}
	_ core.VariableType = SO3Type{}
	_ core.VariableType = SE3Type{}
)

// ---- SO2 ----

// Name returns "SO2".
func (SO2Type) Name() string { return NameSO2 }

// StorageDim returns 2.
func (SO2Type) StorageDim() int { return 2 }

// LocalDim returns 1.
func (SO2Type) LocalDim() int { return 1 }

// Default writes the identity rotation.
func (SO2Type) Default(dst []float64) { copy(dst, SO2Identity().Parameters()) }

// Retract writes x ∘ exp(δ).
func (SO2Type) Retract(dst, x, delta []float64) {
	if core.IsZero(delta) {
		copy(dst, x[:2])
		return
	}
	r := SO2FromParameters(x).Compose(SO2Exp(delta[0])).Normalize()
	dst[0], dst[1] = r.Cos, r.Sin
}

// LocalSubtract writes log(b⁻¹ ∘ a).
func (SO2Type) LocalSubtract(dst, a, b []float64) {
	dst[0] = SO2FromParameters(b).Inverse().Compose(SO2FromParameters(a)).Log()
}

// ---- SE2 ----

// Name returns "SE2".
func (SE2Type) Name() string { return NameSE2 }

// StorageDim returns 4.
func (SE2Type) StorageDim() int { return 4 }

// LocalDim returns 3.
func (SE2Type) LocalDim() int { return 3 }

// Default writes the identity pose.
func (SE2Type) Default(dst []float64) { copy(dst, SE2Identity().Parameters()) }

// Retract writes x ∘ exp(δ).
func (SE2Type) Retract(dst, x, delta []float64) {
	if core.IsZero(delta) {
		copy(dst, x[:4])
		return
	}
	T := SE2FromParameters(x).Compose(SE2Exp([3]float64{delta[0], delta[1], delta[2]}))
	T.Rotation = T.Rotation.Normalize()
	copy(dst, T.Parameters())
}

// LocalSubtract writes log(b⁻¹ ∘ a).
func (SE2Type) LocalSubtract(dst, a, b []float64) {
	d := SE2FromParameters(b).Inverse().Compose(SE2FromParameters(a)).Log()
	copy(dst, d[:])
}

// ---- SO3 ----

// Name returns "SO3".
func (SO3Type) Name() string { return NameSO3 }

// StorageDim returns 4.
func (SO3Type) StorageDim() int { return 4 }

// LocalDim returns 3.
func (SO3Type) LocalDim() int { return 3 }

// Default writes the identity rotation.
func (SO3Type) Default(dst []float64) { copy(dst, SO3Identity().Parameters()) }

// Retract writes x ∘ exp(δ).
func (SO3Type) Retract(dst, x, delta []float64) {
	if core.IsZero(delta) {
		copy(dst, x[:4])
		return
	}
	q := SO3FromParameters(x).Compose(SO3Exp([3]float64{delta[0], delta[1], delta[2]})).Normalize()
	copy(dst, q.Parameters())
}

// LocalSubtract writes log(b⁻¹ ∘ a).
func (SO3Type) LocalSubtract(dst, a, b []float64) {
	d := SO3FromParameters(b).Inverse().Compose(SO3FromParameters(a)).Log()
	copy(dst, d[:])
}

// ---- SE3 ----

// Name returns "SE3".
func (SE3Type) Name() string { return NameSE3 }

// StorageDim returns 7.
func (SE3Type) StorageDim() int { return 7 }

// LocalDim returns 6.
func (SE3Type) LocalDim() int { return 6 }

// Default writes the identity pose.
func (SE3Type) Default(dst []float64) { copy(dst, SE3Identity().Parameters()) }

// Retract writes x ∘ exp(δ).
func (SE3Type) Retract(dst, x, delta []float64) {
	if core.IsZero(delta) {
		copy(dst, x[:7])
		return
	}
	var d [6]float64
	copy(d[:], delta)
	T := SE3FromParameters(x).Compose(SE3Exp(d))
	T.Rotation = T.Rotation.Normalize()
	copy(dst, T.Parameters())
}

// LocalSubtract writes log(b⁻¹ ∘ a).
func (SE3Type) LocalSubtract(dst, a, b []float64) {
	d := SE3FromParameters(b).Inverse().Compose(SE3FromParameters(a)).Log()
	copy(dst, d[:])
}
