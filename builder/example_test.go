package builder_test

import (
	"fmt"

	"github.com/katalvlaran/factorgraph/builder"
)

func ExampleBuild() {
	ds, err := builder.Build(nil, builder.Grid(2, 3), builder.Cycle(4))
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Println(len(ds.Variables), len(ds.Factors))

	// Output:
	// 10 13
}
