package game

import (
	"github.com/vovakirdan/brick-breaker/internal/config"
	"github.com/vovakirdan/brick-breaker/internal/registry"
)

// ClassicRows is the default row layout: a descending staircase.
var ClassicRows = []int{13, 11, 9, 7, 6, 5, 3, 1}

func init() {
	registry.Register("classic", "Classic", func() config.Level {
		return config.Level{
			Name:      "classic",
			RowCounts: append([]int(nil), ClassicRows...),
		}
	})

	registry.Register("pyramid", "Pyramid", func() config.Level {
		return config.Level{
			Name:      "pyramid",
			RowCounts: []int{1, 3, 5, 7, 9, 11, 13},
		}
	})

	// Solid wall with one color per row and power-ups only in the lower half.
	registry.Register("wall", "Wall", func() config.Level {
		return config.Level{
			Name:        "wall",
			RowCounts:   []int{13, 13, 13, 13, 13, 13},
			Colors:      []string{"#ff6ec7", "#ffa500", "#ffff66", "#66ff66", "#66ccff", "#b266ff"},
			SpecialRows: []bool{false, false, false, true, true, true},
		}
	})

	registry.Register("tiny", "Tiny", func() config.Level {
		return config.Level{
			Name:      "tiny",
			RowCounts: []int{3, 1},
		}
	})
}
