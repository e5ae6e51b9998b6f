package sat

import "math"

// levelInfo is the transient per-decision-level bookkeeping used by one
// conflict analysis pass: the number of literals analyzed at that level and
// the smallest trail position among them. The number of levels with a
// non-zero count is the glue of the learned clause; the minimum positions
// feed clause minimization.
type levelInfo struct {
	seen     int
	minTrail int
}

func newLevelInfo() levelInfo {
	return levelInfo{minTrail: math.MaxInt}
}

func (l *levelInfo) reset() {
	l.seen = 0
	l.minTrail = math.MaxInt
}
