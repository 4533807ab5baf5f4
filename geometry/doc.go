// Package geometry provides rigid-body Lie groups and the matching manifold
// variable types for factor graphs.
//
// Groups and their representations:
//
//	Group  Storage (StorageDim)          Tangent (LocalDim)
//	SO2    cos, sin              (2)     ω                  (1)
//	SE2    x, y, cos, sin        (4)     vx, vy, ω          (3)
//	SO3    qw, qx, qy, qz        (4)     ωx, ωy, ωz         (3)
//	SE3    qw, qx, qy, qz, x,y,z (7)     vx, vy, vz, ωx,ωy,ωz (6)
//
// Every variable type retracts on the right,
//
//	Retract(x, Δ)       = x ∘ exp(Δ)
//	LocalSubtract(a, b) = log(b⁻¹ ∘ a)
//
// so LocalSubtract(Retract(x, Δ), x) = Δ and a zero Δ returns x bit-for-bit.
// Exponential and logarithm maps switch to Taylor series near the identity.
//
// Register installs flatten/unflatten codecs for SO2, SE2, SO3 and SE3 into a
// core.Registry so assignments can be built from, and read back as, typed values.
package geometry
