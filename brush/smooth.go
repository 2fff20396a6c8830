package brush

import "github.com/gogpu/paint"

// smoothingHistory caps how many recent samples the moving average sees.
const smoothingHistory = 20

// smoother keeps the recent pointer samples of the current stroke.
type smoother struct {
	points []paint.Point
}

// smooth records current, computes a linearly weighted moving average of
// the recorded samples (newest weighted most) and moves from previous
// toward that average by factor. A factor of 0 returns current unchanged.
func (s *smoother) smooth(current, previous paint.Point, factor float64) paint.Point {
	if factor <= 0 {
		return current
	}
	if factor > 1 {
		factor = 1
	}

	if len(s.points) == smoothingHistory {
		n := copy(s.points, s.points[1:])
		s.points = s.points[:n]
	}
	s.points = append(s.points, current)

	var avg paint.Point
	var total float64
	for i, p := range s.points {
		w := float64(i + 1)
		avg = avg.Add(p.Mul(w))
		total += w
	}
	avg = avg.Mul(1 / total)

	return previous.Lerp(avg, factor)
}

func (s *smoother) reset() {
	s.points = s.points[:0]
}

// SmoothingLen reports how many samples the smoothing history holds.
func (e *Engine) SmoothingLen() int {
	return len(e.smoother.points)
}
