package smooth_test

import (
	"errors"
	"fmt"

	"github.com/cwbudde/algo-spatial/spatial/grid"
	"github.com/cwbudde/algo-spatial/spatial/smooth"
)

func ExampleRun() {
	g, _ := grid.FromRows([][]float64{
		{1, 1, 1},
		{1, 0, 1},
		{1, 1, 1},
	}, 2000, 2000)
	m, _ := grid.MaskFromRows([][]bool{
		{true, true, true},
		{true, false, true},
		{true, true, true},
	})

	cfg := smooth.DefaultConfig()
	cfg.Radius = 2000
	cfg.ReMask = true

	out, err := smooth.Run(cfg, g, m)
	if err != nil {
		panic(err)
	}
	for i := 0; i < out.Rows; i++ {
		fmt.Println(out.Row(i))
	}

	// Output:
	// [1 1 1]
	// [1 NaN 1]
	// [1 1 1]
}

func ExampleConfig_Validate() {
	cfg := smooth.DefaultConfig()
	cfg.Radius = 20000
	cfg.ApplyRecursiveFilter = true
	cfg.AlphaX = 1.2

	err := cfg.Validate()
	fmt.Println(errors.Is(err, smooth.ErrConfiguration))

	// Output:
	// true
}
