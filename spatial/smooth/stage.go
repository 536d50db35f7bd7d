package smooth

import (
	"fmt"

	"github.com/cwbudde/algo-spatial/spatial/grid"
)

// Stage identifies a step of the pipeline.
type Stage int

const (
	StageStart Stage = iota
	StageNeighbourhoodAveraged
	StageRecursiveFiltered
	StageReMasked
	StageDone
)

func (s Stage) String() string {
	switch s {
	case StageStart:
		return "start"
	case StageNeighbourhoodAveraged:
		return "neighbourhood-averaged"
	case StageRecursiveFiltered:
		return "recursive-filtered"
	case StageReMasked:
		return "re-masked"
	case StageDone:
		return "done"
	default:
		return fmt.Sprintf("Stage(%d)", int(s))
	}
}

// Observer is called with the field produced by each stage. It must not
// modify or retain the grid.
type Observer func(Stage, *grid.Grid)
