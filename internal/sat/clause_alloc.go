//go:build !clausepool

package sat

func newClause(literals []Literal, learnt bool) *Clause {
	c := &Clause{learnt: learnt}
	c.literals = make([]Literal, 0, len(literals))
	c.literals = append(c.literals, literals...)
	return c
}

func freeClause(c *Clause) {
	// Cut the reference to the slice of literals so that it can be garbage
	// collected even if the clause itself is still referenced.
	c.literals = nil
}
