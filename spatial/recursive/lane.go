package recursive

// Forward runs the forward recurrence over src and writes it to dst.
// dst and src must have the same length and may alias. anchor marks the
// cells that feed the recurrence; a nil anchor marks every cell. Other cells
// receive the running state unchanged. Cells ahead of the first anchor take
// its value. A lane without anchors is copied through.
func Forward(dst, src []float64, anchor []bool, alpha float64) {
	first := -1
	for k := range src {
		if isAnchor(anchor, k) {
			first = k
			break
		}
	}
	if first < 0 {
		copy(dst, src)
		return
	}

	state := src[first]
	for k := 0; k <= first; k++ {
		dst[k] = state
	}
	for k := first + 1; k < len(src); k++ {
		if isAnchor(anchor, k) {
			// alpha*x + (1-alpha)*state, written so a constant lane stays exact.
			state += alpha * (src[k] - state)
		}
		dst[k] = state
	}
}

// Backward is Forward run from the last cell to the first.
func Backward(dst, src []float64, anchor []bool, alpha float64) {
	last := -1
	for k := len(src) - 1; k >= 0; k-- {
		if isAnchor(anchor, k) {
			last = k
			break
		}
	}
	if last < 0 {
		copy(dst, src)
		return
	}

	state := src[last]
	for k := len(src) - 1; k >= last; k-- {
		dst[k] = state
	}
	for k := last - 1; k >= 0; k-- {
		if isAnchor(anchor, k) {
			state += alpha * (src[k] - state)
		}
		dst[k] = state
	}
}

// Apply filters lane in place: iterations times a forward pass followed by a
// backward pass.
func Apply(lane []float64, anchor []bool, alpha float64, iterations int) {
	for range iterations {
		Forward(lane, lane, anchor, alpha)
		Backward(lane, lane, anchor, alpha)
	}
}

func isAnchor(anchor []bool, k int) bool {
	return anchor == nil || anchor[k]
}
