package linear_test

import (
	"math/rand"
	"testing"

	"github.com/katalvlaran/factorgraph/linear"
)

func BenchmarkBlockJacobian_ApplyTranspose(b *testing.B) {
	rng := rand.New(rand.NewSource(1*100 + 1))
	j := randomJacobian(b, rng, 1000, 3)
	x := randomVec(rng, j.Cols())
	y := make([]float64, j.Rows())
	out := make([]float64, j.Cols())
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		j.Apply(y, x)
		j.ApplyTranspose(out, y)
	}
}

func BenchmarkSolveNormal(b *testing.B) {
	rng := rand.New(rand.NewSource(2*100 + 2))
	j := randomJacobian(b, rng, 500, 3)
	rhs := randomVec(rng, j.Rows())
	opts := linear.DefaultCGOptions()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := linear.SolveNormal(j, rhs, 1e-4, opts); err != nil {
			b.Fatal(err)
		}
	}
}
