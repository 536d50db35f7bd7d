package nbhood_test

import (
	"fmt"

	"github.com/cwbudde/algo-spatial/spatial/grid"
	"github.com/cwbudde/algo-spatial/spatial/nbhood"
)

func ExampleProcessor_Process() {
	g, _ := grid.FromRows([][]float64{
		{0, 0, 0, 0},
		{0, 1, 1, 0},
		{0, 1, 1, 0},
		{0, 0, 0, 0},
	}, 2000, 2000)

	p, err := nbhood.New(2000)
	if err != nil {
		panic(err)
	}

	out, err := p.Process(g, nil)
	if err != nil {
		panic(err)
	}

	for i := 0; i < out.Rows; i++ {
		fmt.Printf("%.3f\n", out.Row(i))
	}

	// Output:
	// [0.250 0.333 0.333 0.250]
	// [0.333 0.444 0.444 0.333]
	// [0.333 0.444 0.444 0.333]
	// [0.250 0.333 0.333 0.250]
}

func ExampleCellRadius() {
	for _, radius := range []float64{0, 500, 2000, 5000} {
		cells, _ := nbhood.CellRadius(radius, 2000)
		fmt.Println(radius, cells)
	}

	// Output:
	// 0 0
	// 500 1
	// 2000 1
	// 5000 3
}
