package geometry_test

import (
	"fmt"

	"github.com/katalvlaran/factorgraph/geometry"
)

// ExampleSE2Type_Retract moves a pose one unit forward in its own frame.
func ExampleSE2Type_Retract() {
	var typ geometry.SE2Type
	x := geometry.SE2FromXYTheta(0, 0, 0).Parameters()
	dst := make([]float64, typ.StorageDim())
	typ.Retract(dst, x, []float64{1, 0, 0})
	fmt.Printf("%.1f\n", dst)
	// Output: [1.0 0.0 1.0 0.0]
}
