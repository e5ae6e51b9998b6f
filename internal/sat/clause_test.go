package sat

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewClauseDropsRootFalseLiterals(t *testing.T) {
	s := newTestSolver(t, 3, DefaultOptions)
	require.NoError(t, s.AddClause([]Literal{NegativeLiteral(0)})) // fixes ¬x0

	lits := []Literal{PositiveLiteral(0), PositiveLiteral(1), PositiveLiteral(2)}
	require.NoError(t, s.AddClause(lits))

	require.Equal(t, 1, s.NumConstraints())
	require.ElementsMatch(t,
		[]Literal{PositiveLiteral(1), PositiveLiteral(2)},
		s.constraints[0].literals,
	)
}

func TestNewClauseDiscardsTautology(t *testing.T) {
	s := newTestSolver(t, 2, DefaultOptions)

	lits := []Literal{PositiveLiteral(0), NegativeLiteral(0), PositiveLiteral(1)}
	require.NoError(t, s.AddClause(lits))

	require.Equal(t, 0, s.NumConstraints())
	require.False(t, s.Unsat())
}

func TestNewClauseDeduplicatesLiterals(t *testing.T) {
	s := newTestSolver(t, 2, DefaultOptions)

	lits := []Literal{PositiveLiteral(0), PositiveLiteral(0), PositiveLiteral(1)}
	require.NoError(t, s.AddClause(lits))

	require.Equal(t, 1, s.NumConstraints())
	require.ElementsMatch(t,
		[]Literal{PositiveLiteral(0), PositiveLiteral(1)},
		s.constraints[0].literals,
	)
}

func TestNewClauseEnqueuesUnit(t *testing.T) {
	s := newTestSolver(t, 1, DefaultOptions)
	require.NoError(t, s.AddClause([]Literal{PositiveLiteral(0)}))

	require.Equal(t, 0, s.NumConstraints())
	require.Equal(t, True, s.LitValue(PositiveLiteral(0)))
	require.Equal(t, 0, s.vars[0].level)
}

func TestNewClauseEmptyIsUnsat(t *testing.T) {
	s := newTestSolver(t, 1, DefaultOptions)
	require.NoError(t, s.AddClause([]Literal{NegativeLiteral(0)}))
	require.NoError(t, s.AddClause([]Literal{PositiveLiteral(0)}))
	require.True(t, s.Unsat())
}

func TestClausePropagateForcesLastLiteral(t *testing.T) {
	s := newTestSolver(t, 3, DefaultOptions)
	lits := []Literal{PositiveLiteral(0), PositiveLiteral(1), PositiveLiteral(2)}
	require.NoError(t, s.AddClause(lits))
	c := s.constraints[0]

	require.True(t, s.assume(NegativeLiteral(0)))
	require.Nil(t, s.Propagate())
	require.Equal(t, Unknown, s.LitValue(PositiveLiteral(1)))

	require.True(t, s.assume(NegativeLiteral(2)))
	require.Nil(t, s.Propagate())

	require.Equal(t, True, s.LitValue(PositiveLiteral(1)))
	require.Same(t, c, s.vars[1].reason)
	require.True(t, c.locked(s))
}

func TestClausePropagateReportsConflict(t *testing.T) {
	s := newTestSolver(t, 2, DefaultOptions)
	require.NoError(t, s.AddClause([]Literal{PositiveLiteral(0), PositiveLiteral(1)}))
	c := s.constraints[0]

	require.True(t, s.assume(NegativeLiteral(0)))
	require.True(t, s.assume(NegativeLiteral(1)))

	require.Same(t, c, s.Propagate())
	require.Equal(t, 0, s.propQueue.Size())
}

func TestSimplifyRemovesSatisfiedClauses(t *testing.T) {
	s := newTestSolver(t, 3, DefaultOptions)
	require.NoError(t, s.AddClause([]Literal{PositiveLiteral(0), PositiveLiteral(1)}))
	require.NoError(t, s.AddClause([]Literal{PositiveLiteral(1), PositiveLiteral(2)}))
	require.NoError(t, s.AddClause([]Literal{PositiveLiteral(1)})) // fixes x1

	require.Nil(t, s.Propagate())
	require.True(t, s.Simplify())
	require.Equal(t, 0, s.NumConstraints())
}

func TestReduceDBKeepsRecentShortAndLowGlue(t *testing.T) {
	s := newTestSolver(t, 8, DefaultOptions)

	long := []Literal{
		PositiveLiteral(0), PositiveLiteral(1),
		PositiveLiteral(2), PositiveLiteral(3),
	}
	mkLearnt := func(lits []Literal, glue int, stamp int64) *Clause {
		c := newClause(lits, true)
		c.glue = glue
		c.extended = len(lits) > s.opts.KeepSize
		c.resolved = stamp
		c.prevPos = 2
		s.Watch(c, c.literals[0].Opposite(), c.literals[1])
		s.Watch(c, c.literals[1].Opposite(), c.literals[0])
		s.learnts = append(s.learnts, c)
		return c
	}

	old := mkLearnt(long, 5, 1)
	stale := mkLearnt(long, 5, 2)
	short := mkLearnt(long[:2], 5, 3)
	lowGlue := mkLearnt(long, 2, 4)
	recent := mkLearnt(long, 5, 5)

	s.ReduceDB()

	require.EqualValues(t, 1, s.Stats.Reductions)
	require.ElementsMatch(t, []*Clause{short, lowGlue, recent}, s.learnts)
	require.Nil(t, old.literals)
	require.Nil(t, stale.literals)
}
