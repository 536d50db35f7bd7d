// Package recursive implements an anisotropic first-order recursive (IIR)
// smoothing filter for gridded fields.
//
// Along one lane (a row or a column) the forward pass computes
//
//	out[0] = in[0]
//	out[k] = alpha*in[k] + (1-alpha)*out[k-1]
//
// and the backward pass runs the same recurrence from the last cell to the
// first. Running both passes cancels the phase lag of either one alone.
// One iteration filters every row (alpha_x) and then every column
// (alpha_y); iterations repeat on the previous result. Every output is a
// convex combination of inputs, so the filter is stable for any alpha in
// (0, 1).
//
// Invalid cells are handled by a MaskStrategy:
//
//   - StrategyFillNeighbourhood: cells that carry a value act as anchors even
//     when the mask marks them invalid. Pair it with a neighbourhood mean
//     computed with nbhood.WithFillMasked(true). Missing cells hold state.
//   - StrategyHoldState: only valid cells are anchors; the rest carry the
//     running state through.
//   - StrategyNormalised: zero-filled values and validity weights are
//     filtered separately and divided.
package recursive
