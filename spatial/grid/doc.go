// Package grid provides the regular 2-D field and validity mask shared by the
// spatial smoothing packages.
//
// A Grid stores values row-major with uniform cell spacing (DX along columns,
// DY along rows, both in metres). Invalid cells carry the Missing marker
// (NaN). A Mask marks usable cells; a nil *Mask means every cell is valid.
//
// All operations return new values and never alias caller memory:
//
//	masked, err := grid.ApplyMask(g, m)
//	padded := grid.Pad(masked, 4)
//	inner := grid.Crop(padded, 4)
package grid
