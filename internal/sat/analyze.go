package sat

import (
	"slices"
	"sort"
)

// scoreLimit is the ceiling above which variable scores and the score
// increment are rescaled to stay inside float64 range.
const scoreLimit = 1e100

// analyzeEvent is the outcome of one conflict analysis, consumed by the
// search loop.
type analyzeEvent uint8

const (
	// eventNone: a clause was learned, search continues normally.
	eventNone analyzeEvent = iota

	// eventLearnedUnit: a unit clause was learned. The search loop owes a
	// progress report once propagation of that unit has completed.
	eventLearnedUnit

	// eventUnsat: the conflict was at the root level, the formula is
	// unsatisfiable and no further analysis may take place.
	eventUnsat
)

// BumpOrder selects the order in which the group of variables seen during
// one conflict is bumped. Each individual bump moves its variable to the
// front of the queue, so the last variable processed ends up frontmost.
type BumpOrder uint8

const (
	// BumpOrderNone bumps in discovery order.
	BumpOrderNone BumpOrder = iota

	// BumpOrderBumped bumps in ascending stamp order, which preserves the
	// current relative order of the bumped variables.
	BumpOrderBumped

	// BumpOrderTrail bumps in ascending trail position order.
	BumpOrderTrail

	// BumpOrderBumpedPlusTrail orders by the sum of the stamp and the trail
	// position. The stamp keeps growing while the trail position is bounded
	// by the number of variables, so this behaves like BumpOrderBumped with
	// a bias towards recently assigned variables.
	BumpOrderBumpedPlusTrail

	// BumpOrderScore bumps in ascending activity score order.
	BumpOrderScore

	// BumpOrderReverse bumps in reverse discovery order.
	BumpOrderReverse
)

func (s *Solver) learnEmptyClause() {
	if s.proof != nil {
		s.proof.TraceEmptyClause()
	}
	s.unsat = true
}

func (s *Solver) learnUnitClause(l Literal) {
	if s.proof != nil {
		s.proof.TraceUnitClause(l)
	}
	s.Stats.Fixed++
}

// rescore divides every score by the current increment and resets the
// increment to one. The rescaling is uniform and linear, so the relative
// order of all scores is preserved.
func (s *Solver) rescore() {
	s.Stats.Rescored++
	for x := range s.vars {
		s.vars[x].score /= s.scoreInc
	}
	s.scoreInc = 1
	if s.order != nil {
		for x := range s.vars {
			s.order.Bump(x)
		}
	}
}

// bumpVariable moves the variable to the front of the VMTF queue, records
// its new stamp, and adds the current increment to its score. Detached
// variables (fixed at the root level) are never bumped.
func (s *Solver) bumpVariable(x int) {
	v := &s.vars[x]
	if s.queue.detached(s.vars, x) {
		return
	}
	if s.queue.assigned == x {
		if p := v.prev; p != noVar {
			s.queue.assigned = p
		} else {
			s.queue.assigned = v.next
		}
	}
	s.queue.dequeue(s.vars, x)
	s.queue.enqueue(s.vars, x)
	s.Stats.Bumped++
	v.bumped = s.Stats.Bumped
	v.score += s.scoreInc
	if v.score > scoreLimit {
		s.rescore()
	}
	if s.order != nil {
		s.order.Bump(x)
	}
	if s.VarValue(x) == Unknown {
		// The variable is now the most recently bumped, hence the preferred
		// next decision.
		s.queue.assigned = x
	}
}

// sortSeen reorders the batch of variables to bump according to the
// configured policy.
func (s *Solver) sortSeen() {
	vars := s.vars
	switch s.opts.BumpOrder {
	case BumpOrderNone:
	case BumpOrderBumped:
		sort.Slice(s.seen, func(i, j int) bool {
			return vars[s.seen[i]].bumped < vars[s.seen[j]].bumped
		})
	case BumpOrderTrail:
		sort.Slice(s.seen, func(i, j int) bool {
			return vars[s.seen[i]].trailPos < vars[s.seen[j]].trailPos
		})
	case BumpOrderBumpedPlusTrail:
		sort.Slice(s.seen, func(i, j int) bool {
			u, v := &vars[s.seen[i]], &vars[s.seen[j]]
			return u.bumped+int64(u.trailPos) < v.bumped+int64(v.trailPos)
		})
	case BumpOrderScore:
		sort.Slice(s.seen, func(i, j int) bool {
			return vars[s.seen[i]].score < vars[s.seen[j]].score
		})
	case BumpOrderReverse:
		slices.Reverse(s.seen)
	}
}

// bumpAndClearSeen bumps every variable marked during this analysis, clears
// the marks, and applies the per-conflict increment decay.
func (s *Solver) bumpAndClearSeen() {
	s.sortSeen()
	for _, x := range s.seen {
		s.vars[x].seen = false
		s.bumpVariable(x)
	}
	s.seen = s.seen[:0]
	s.scoreInc /= s.opts.ScoreDecay
	if s.scoreInc > scoreLimit {
		s.rescore()
	}
}

// resolveClause registers a clause consumed during resolution for recency
// stamping. Clause activity is a move-to-front scheme with the resolved
// stamp: only extended (long) high-glue learnt clauses are stamped since the
// others are kept unconditionally and carry no stamp.
func (s *Solver) resolveClause(c *Clause) {
	if !c.learnt || !c.extended {
		return
	}
	if c.glue <= s.opts.KeepGlue {
		return
	}
	s.resolved = append(s.resolved, c)
}

// bumpResolvedClauses stamps the clauses collected during this analysis.
// Sorting by the previous stamp first keeps the relative order of clauses
// that are bumped together.
func (s *Solver) bumpResolvedClauses() {
	sort.Slice(s.resolved, func(i, j int) bool {
		return s.resolved[i].resolved < s.resolved[j].resolved
	})
	for _, c := range s.resolved {
		s.Stats.Resolved++
		c.resolved = s.Stats.Resolved
	}
	s.resolved = s.resolved[:0]
}

// analyzeLiteral processes one literal of the clause being resolved.
// Literals already seen or assigned at the root level contribute nothing.
// Literals below the conflict level become part of the learned clause.
// The return value tells whether the literal is at the conflict level and
// thus still has to be resolved away.
func (s *Solver) analyzeLiteral(lit Literal) bool {
	x := lit.VarID()
	v := &s.vars[x]
	if v.seen || v.level == 0 {
		return false
	}
	if v.level < s.decisionLevel() {
		s.clause = append(s.clause, lit)
	}
	l := &s.control[v.level]
	l.seen++
	if l.seen == 1 {
		s.levels = append(s.levels, v.level)
	}
	if v.trailPos < l.minTrail {
		l.minTrail = v.trailPos
	}
	v.seen = true
	s.seen = append(s.seen, x)
	return v.level == s.decisionLevel()
}

// clearLevels resets the control record of every level touched during this
// analysis. It must run only after the learned clause and its glue are
// final: minimization reads these records. Levels popped by the backjump are
// skipped, they get a fresh record when the level is opened again.
func (s *Solver) clearLevels() {
	for _, lvl := range s.levels {
		if lvl < len(s.control) {
			s.control[lvl].reset()
		}
	}
	s.levels = s.levels[:0]
}

// analyze derives the first UIP clause from the given conflict, backtracks
// to the backjump level, assigns the flipped UIP, and updates the decision
// heuristics. All transient bookkeeping is drained before it returns.
func (s *Solver) analyze(confl *Clause) analyzeEvent {
	if s.decisionLevel() == 0 {
		// The conflict does not depend on any decision: the formula is
		// unsatisfiable.
		s.learnEmptyClause()
		return eventUnsat
	}

	// Derive the first UIP clause. open counts the literals at the conflict
	// level that still have to be resolved away; the loop stops when a
	// single one remains.
	reason := confl
	s.resolveClause(reason)
	open := 0
	var uip Literal
	i := len(s.trail)
	for {
		for _, lit := range reason.literals {
			if s.analyzeLiteral(lit) {
				open++
			}
		}
		for {
			i--
			uip = s.trail[i]
			if s.vars[uip.VarID()].seen {
				break
			}
		}
		open--
		if open == 0 {
			break
		}
		reason = s.vars[uip.VarID()].reason
		s.resolveClause(reason)
	}
	s.clause = append(s.clause, uip.Opposite())

	s.bumpResolvedClauses()

	// The glue is the number of distinct non-root levels contributing to the
	// conflict, counted before minimization.
	glue := len(s.levels)
	s.fastGlueAvg.Add(float64(glue))
	s.slowGlueAvg.Add(float64(glue))

	if s.opts.Minimize {
		s.minimizeClause()
	}

	event := eventNone
	if len(s.clause) == 1 {
		s.Stats.Units++
	}
	if len(s.clause) == 2 {
		s.Stats.Binaries++
	}

	// Determine the backjump level, backtrack, and assign the flipped UIP
	// with the learned clause as its reason. Sorting by descending trail
	// position puts the UIP first and the backjump-level literal second,
	// which is exactly the watched pair the clause needs.
	var driving *Clause
	jump := 0
	if len(s.clause) > 1 {
		vars := s.vars
		sort.Slice(s.clause, func(i, j int) bool {
			return vars[s.clause[i].VarID()].trailPos > vars[s.clause[j].VarID()].trailPos
		})
		driving = s.newLearnedClause(glue)
		jump = s.vars[s.clause[1].VarID()].level
	} else {
		s.learnUnitClause(s.clause[0])
		event = eventLearnedUnit
	}
	s.jumpAvg.Add(float64(jump))
	s.cancelUntil(jump)
	s.enqueue(uip.Opposite(), driving)

	// Update the decision heuristics and drain all transient state.
	s.bumpAndClearSeen()
	s.clause = s.clause[:0]
	s.clearLevels()
	return event
}
