package sat

import "strings"

// Clause is a disjunction of literals. The literals at positions 0 and 1 are
// the watched pair and must be kept there by all operations.
type Clause struct {
	// Whether the clause was learned by conflict analysis.
	learnt bool

	// Whether the clause carries a meaningful resolved stamp. Short and
	// low-glue learnt clauses are kept unconditionally and are never
	// stamped.
	extended bool

	// The literal block distance of the clause when it was learned.
	glue int

	// Recency stamp assigned by the analysis kernel when the clause takes
	// part in a resolution. Clause deletion keeps the most recently stamped
	// clauses.
	resolved int64

	// prevPos caches the position at which the previous search for a new
	// watched literal stopped. Restarting from there avoids rescanning the
	// false prefix of long clauses. The value is always in [2, len-1] for
	// clauses that went through Propagate at least once.
	prevPos int

	// The clause's literals. The slice contains at least two literals if the
	// clause is active, it is nil if the clause has been deleted.
	literals []Literal

	// Reference to the pooled backing slice (clausepool builds only).
	sliceRef *[]Literal
}

// NewClause creates a problem clause. It simplifies the given literals with
// respect to the root-level assignment: duplicated literals are dropped,
// clauses containing a literal and its opposite (or a true literal) are
// discarded, false literals are removed. The second return value is false if
// the clause makes the formula trivially unsatisfiable.
func NewClause(s *Solver, tmpLiterals []Literal) (*Clause, bool) {
	size := len(tmpLiterals)
	seen := map[Literal]struct{}{}

	for i := size - 1; i >= 0; i-- {
		// If the opposite literal is in the clause, then the clause is
		// always true.
		if _, ok := seen[tmpLiterals[i].Opposite()]; ok {
			return nil, true
		}

		// Remove the literal if it is already present.
		if _, ok := seen[tmpLiterals[i]]; ok {
			size--
			tmpLiterals[i], tmpLiterals[size] = tmpLiterals[size], tmpLiterals[i]
		}

		seen[tmpLiterals[i]] = struct{}{}

		switch s.LitValue(tmpLiterals[i]) {
		case True:
			return nil, true // clause is always true
		case False:
			size--
			tmpLiterals[i], tmpLiterals[size] = tmpLiterals[size], tmpLiterals[i]
		}
	}
	tmpLiterals = tmpLiterals[:size]

	switch size {
	case 0:
		// Empty clauses cannot be valid.
		return nil, false
	case 1:
		// Directly enqueue unit facts.
		return nil, s.enqueue(tmpLiterals[0], nil)
	default:
		c := newClause(tmpLiterals, false)
		c.prevPos = 2
		s.Watch(c, c.literals[0].Opposite(), c.literals[1])
		s.Watch(c, c.literals[1].Opposite(), c.literals[0])
		return c, true
	}
}

// newLearnedClause registers the clause currently held in the analysis
// buffer. The buffer must already be sorted by descending trail position so
// that the two first literals are the correct watched pair and the literal at
// index 1 determines the backjump level.
func (s *Solver) newLearnedClause(glue int) *Clause {
	c := newClause(s.clause, true)
	c.glue = glue
	c.extended = len(c.literals) > s.opts.KeepSize
	c.prevPos = 2
	s.Watch(c, c.literals[0].Opposite(), c.literals[1])
	s.Watch(c, c.literals[1].Opposite(), c.literals[0])
	s.learnts = append(s.learnts, c)
	s.Stats.Learned++
	return c
}

func (c *Clause) locked(s *Solver) bool {
	return s.vars[c.literals[0].VarID()].reason == c
}

// Delete unwatches the clause and releases its literals. The clause header
// itself may still be referenced (e.g. by iteration in progress) but behaves
// as an empty clause.
func (c *Clause) Delete(s *Solver) {
	s.Unwatch(c, c.literals[0].Opposite())
	s.Unwatch(c, c.literals[1].Opposite())
	freeClause(c)
}

// Simplify returns true if the clause is satisfied at the root level. False
// literals beyond the watched pair are removed. The watched literals
// themselves cannot be false at the root: they would have been propagated.
func (c *Clause) Simplify(s *Solver) bool {
	for _, lit := range c.literals {
		if s.LitValue(lit) == True {
			return true
		}
	}
	k := 2
	for _, lit := range c.literals[2:] {
		if s.LitValue(lit) != False {
			c.literals[k] = lit
			k++
		}
	}
	c.literals = c.literals[:k]
	return false
}

// Propagate is called when watched literal l was set to true. It returns
// false if the clause became conflicting.
func (c *Clause) Propagate(s *Solver, l Literal) bool {
	// Make sure that the triggering literal is c.literals[1]. This
	// simplifies the rest of this function as c.literals[0] is always the
	// literal to be potentially enqueued (if all other literals are false).
	opp := l.Opposite()
	if c.literals[0] == opp {
		c.literals[0] = c.literals[1]
		c.literals[1] = opp
	}

	// If c.literals[0] is True, then the clause is already true.
	if s.LitValue(c.literals[0]) == True {
		s.Watch(c, l, c.literals[0])
		return true
	}

	// Look for a new literal to watch, starting from the position at which
	// the previous search stopped. Reset that position if it is not valid
	// anymore, which can happen if the literal it refers to was removed by a
	// clause simplification.
	if c.prevPos >= len(c.literals) {
		c.prevPos = 2
	}
	for i, lit := range c.literals[c.prevPos:] {
		if s.LitValue(lit) != False {
			c.prevPos += i
			c.literals[1] = lit
			c.literals[c.prevPos] = opp
			s.Watch(c, lit.Opposite(), c.literals[0])
			return true
		}
	}
	for i, lit := range c.literals[2:c.prevPos] {
		if s.LitValue(lit) != False {
			c.prevPos = i + 2
			c.literals[1] = lit
			c.literals[c.prevPos] = opp
			s.Watch(c, lit.Opposite(), c.literals[0])
			return true
		}
	}

	// Attempt to assign the first literal to true to satisfy the clause as
	// all other literals are false.
	s.Watch(c, l, c.literals[0])
	return s.enqueue(c.literals[0], c)
}

func (c *Clause) String() string {
	if len(c.literals) == 0 {
		return "Clause[]"
	}
	sb := strings.Builder{}
	sb.WriteString("Clause[")
	sb.WriteString(c.literals[0].String())
	for _, l := range c.literals[1:] {
		sb.WriteByte(' ')
		sb.WriteString(l.String())
	}
	sb.WriteByte(']')
	return sb.String()
}
