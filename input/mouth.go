package input

import (
	"math"

	"github.com/lixenwraith/princess-guard/perception"
)

// MouthOpen reports whether the vertical lip gap exceeds threshold. A missing
// or truncated face is closed.
func MouthOpen(face *perception.Face, threshold float64) bool {
	upper, lower, ok := face.Lips()
	if !ok {
		return false
	}
	return math.Abs(upper.Y-lower.Y) > threshold
}
