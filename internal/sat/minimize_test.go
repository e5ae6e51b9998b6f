package sat

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// TestMinimizeRemovesChainedLiteral forces two literals through a reason
// chain rooted in the decision: both are redundant and must be removed
// through recursion.
func TestMinimizeRemovesChainedLiteral(t *testing.T) {
	s := newTestSolver(t, 4, DefaultOptions)

	require.True(t, s.assume(PositiveLiteral(0))) // decision x0 at level 1
	r1 := conflictClause(PositiveLiteral(1), NegativeLiteral(0))
	require.True(t, s.enqueue(PositiveLiteral(1), r1))
	r2 := conflictClause(PositiveLiteral(2), NegativeLiteral(1))
	require.True(t, s.enqueue(PositiveLiteral(2), r2))
	require.True(t, s.assume(PositiveLiteral(3))) // level 2

	confl := conflictClause(
		NegativeLiteral(0), NegativeLiteral(2), NegativeLiteral(3),
	)
	require.Equal(t, eventNone, s.analyze(confl))

	require.Len(t, s.learnts, 1)
	require.Equal(t,
		[]Literal{NegativeLiteral(3), NegativeLiteral(0)},
		s.learnts[0].literals,
	)
	require.EqualValues(t, 1, s.Stats.Minimized)
	requireCleanBookkeeping(t, s)
}

// TestMinimizeDepthLimit reruns the chained scenario with a zero recursion
// budget: the chained literal cannot be proven redundant and stays.
func TestMinimizeDepthLimit(t *testing.T) {
	opts := DefaultOptions
	opts.MinimizeDepth = 0
	s := newTestSolver(t, 4, opts)

	require.True(t, s.assume(PositiveLiteral(0)))
	r1 := conflictClause(PositiveLiteral(1), NegativeLiteral(0))
	require.True(t, s.enqueue(PositiveLiteral(1), r1))
	r2 := conflictClause(PositiveLiteral(2), NegativeLiteral(1))
	require.True(t, s.enqueue(PositiveLiteral(2), r2))
	require.True(t, s.assume(PositiveLiteral(3)))

	confl := conflictClause(
		NegativeLiteral(0), NegativeLiteral(2), NegativeLiteral(3),
	)
	require.Equal(t, eventNone, s.analyze(confl))

	require.Len(t, s.learnts, 1)
	require.Len(t, s.learnts[0].literals, 3)
	require.EqualValues(t, 0, s.Stats.Minimized)
	requireCleanBookkeeping(t, s)
}

// TestMinimizeKeepsDecisionLiteral: literals assigned by a decision have no
// reason chain and can never be removed.
func TestMinimizeKeepsDecisionLiteral(t *testing.T) {
	s := newTestSolver(t, 3, DefaultOptions)

	require.True(t, s.assume(PositiveLiteral(0)))
	require.True(t, s.assume(PositiveLiteral(1)))

	confl := conflictClause(NegativeLiteral(0), NegativeLiteral(1))
	require.Equal(t, eventNone, s.analyze(confl))

	require.Len(t, s.learnts, 1)
	require.Equal(t,
		[]Literal{NegativeLiteral(1), NegativeLiteral(0)},
		s.learnts[0].literals,
	)
	require.EqualValues(t, 0, s.Stats.Minimized)
	requireCleanBookkeeping(t, s)
}

// TestMinimizeKeepsSoleLevelLiteral: a literal that is the only analyzed one
// of its level is kept even when its reason chain bottoms out at the root,
// since removing it would not shorten the reason chain of the clause.
func TestMinimizeKeepsSoleLevelLiteral(t *testing.T) {
	s := newTestSolver(t, 3, DefaultOptions)

	require.True(t, s.enqueue(PositiveLiteral(0), nil)) // fixed at root
	require.True(t, s.assume(PositiveLiteral(1)))
	r1 := conflictClause(PositiveLiteral(1), NegativeLiteral(0))
	s.vars[1].reason = r1 // forced by the root literal
	require.True(t, s.assume(PositiveLiteral(2)))

	confl := conflictClause(NegativeLiteral(1), NegativeLiteral(2))
	require.Equal(t, eventNone, s.analyze(confl))

	require.Len(t, s.learnts, 1)
	require.Equal(t,
		[]Literal{NegativeLiteral(2), NegativeLiteral(1)},
		s.learnts[0].literals,
	)
	require.EqualValues(t, 0, s.Stats.Minimized)
	requireCleanBookkeeping(t, s)
}
