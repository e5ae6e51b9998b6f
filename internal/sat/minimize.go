package sat

// minimizeClause removes literals of the first UIP clause that are implied
// by the remaining ones through their reason chains (self-subsuming
// resolution). It relies on the per-level counts and minimum trail positions
// gathered during analysis, so it must run before clearLevels.
func (s *Solver) minimizeClause() {
	j := 0
	for _, lit := range s.clause {
		if s.minimizeLiteral(lit.Opposite(), 0) {
			s.Stats.Minimized++
		} else {
			s.clause[j] = lit
			j++
		}
	}
	s.clause = s.clause[:j]
	s.clearMinimized()
}

// minimizeLiteral reports whether the given assigned literal is redundant,
// i.e. whether every path from it to a decision goes through literals that
// are already in the learned clause or fixed at the root. Results are cached
// on the variable through the removable and poison flags.
func (s *Solver) minimizeLiteral(lit Literal, depth int) bool {
	x := lit.VarID()
	v := &s.vars[x]
	if v.level == 0 || v.removable || (depth > 0 && v.seen) {
		return true
	}
	if v.reason == nil || v.poison || v.level == s.decisionLevel() {
		return false
	}
	l := s.control[v.level]
	if depth == 0 && l.seen < 2 {
		// Sole analyzed literal of its level, removing it would lose the
		// level entirely.
		return false
	}
	if v.trailPos <= l.minTrail {
		// Assigned before every analyzed literal of its level: its reason
		// chain cannot stay within seen literals.
		return false
	}
	if depth > s.opts.MinimizeDepth {
		return false
	}

	res := true
	for _, other := range v.reason.literals {
		if other == lit {
			continue
		}
		if !s.minimizeLiteral(other.Opposite(), depth+1) {
			res = false
			break
		}
	}
	if res {
		v.removable = true
	} else {
		v.poison = true
	}
	s.minimized = append(s.minimized, x)
	return res
}

// clearMinimized resets the removable and poison caches left by one
// minimization pass.
func (s *Solver) clearMinimized() {
	for _, x := range s.minimized {
		v := &s.vars[x]
		v.poison = false
		v.removable = false
	}
	s.minimized = s.minimized[:0]
}
