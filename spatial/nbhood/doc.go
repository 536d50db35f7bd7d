// Package nbhood computes neighbourhood means (or sums) of gridded fields.
//
// A physical radius in metres is converted to a cell radius per axis
// (round(radius/spacing), at least 1 for any positive radius). Two kernel
// shapes are supported:
//
//   - ShapeSquare: the window [i-ry, i+ry] x [j-rx, j+rx] clipped to the grid,
//     evaluated in O(1) per cell from a summed-area table.
//   - ShapeCircular: a disc in physical space (an ellipse in cell space when
//     DX != DY), evaluated as a normalised FFT convolution. WithWeighted
//     replaces the binary disc by a linear taper.
//
// Only valid cells contribute. A cell whose window holds no valid value is
// grid.Missing in the output; invalid cells are Missing unless
// WithFillMasked(true) is set.
//
// Usage:
//
//	p, err := nbhood.New(20000, nbhood.WithShape(nbhood.ShapeSquare))
//	out, err := p.Process(field, mask)
package nbhood
