package sat

import (
	"fmt"
	"sort"
	"time"
)

// Solver is a CDCL SAT solver. It owns all mutable solving state: the clause
// database, the trail, the variable records with their VMTF decision queue,
// and the transient conflict-analysis buffers. A Solver must only be used
// from a single goroutine.
type Solver struct {
	// Clause database.
	constraints []*Clause
	learnts     []*Clause

	// Variable records, indexed by variable ID, with the VMTF queue linked
	// through them. scoreInc is the current activity increment.
	vars       []variable
	queue      vmtfQueue
	order      *VarOrder // score-heap decision mode, nil otherwise
	scoreInc   float64
	savedPhase []LBool

	// Propagation and watchers.
	watchers  [][]watcher
	propQueue *propagationQueue

	// Value assigned to each literal.
	assigns []LBool

	// Trail.
	trail    []Literal
	trailLim []int

	// Per-level analysis bookkeeping, indexed by decision level. Grows and
	// shrinks with the trail limits; control[0] exists but is never touched
	// since root literals are dropped during analysis.
	control []levelInfo

	// Transient analysis buffers. Hard invariant: all of them are empty
	// between conflicts, and every variable mark they refer to is cleared
	// before analyze returns.
	seen      []int     // variables marked seen this pass
	levels    []int     // distinct non-root levels touched this pass
	clause    []Literal // learned clause under construction
	resolved  []*Clause // clauses eligible for recency stamping
	minimized []int     // variables with cached minimization results

	// Moving averages of the learned glue and backjump levels, consumed by
	// the restart policy.
	fastGlueAvg EMA
	slowGlueAvg EMA
	jumpAvg     EMA

	// Whether the problem has reached a top level conflict.
	unsat bool

	// Optional proof tracer.
	proof ProofTracer

	opts Options

	// Search statistics.
	Stats     Statistics
	startTime time.Time

	// Stop conditions.
	hasStopCond bool
	maxConflict int64
	timeout     time.Duration

	// Models.
	Models [][]bool

	// Temporary slice used in the Propagate function. The slice is re-used
	// by all Propagate calls to avoid unnecessarily allocating new slices.
	tmpWatchers []watcher
}

// watcher represents a clause attached to the watch list of a literal.
type watcher struct {
	// The watching clause to be propagated when the watched literal becomes
	// true.
	clause *Clause

	// Guard is one of the clause's literals. If it is true, then there is
	// no need to propagate the clause. Note that the guard literal must be
	// different from the watcher literal.
	guard Literal
}

type Options struct {
	// ScoreDecay divides the score increment once per conflict. It must be
	// in (0, 1): later increments are worth more, so recently conflicting
	// variables dominate.
	ScoreDecay float64

	// KeepSize and KeepGlue exempt short or low-glue learnt clauses from
	// recency stamping and deletion: they are kept unconditionally.
	KeepSize int
	KeepGlue int

	// Minimize enables learned clause minimization, bounded by
	// MinimizeDepth.
	Minimize      bool
	MinimizeDepth int

	// BumpOrder is the tie-break policy for the per-conflict group bump.
	BumpOrder BumpOrder

	// ScoreHeap replaces the VMTF queue walk with a score-ordered heap in
	// the decision procedure.
	ScoreHeap bool

	// PhaseSaving reuses the last assigned polarity for decisions.
	PhaseSaving bool

	// RestartMargin triggers a restart when the fast glue average exceeds
	// the slow one by this factor.
	RestartMargin float64

	MaxConflicts int64
	Timeout      time.Duration
}

var DefaultOptions = Options{
	ScoreDecay:    0.95,
	KeepSize:      3,
	KeepGlue:      2,
	Minimize:      true,
	MinimizeDepth: 1000,
	BumpOrder:     BumpOrderBumpedPlusTrail,
	ScoreHeap:     false,
	PhaseSaving:   false,
	RestartMargin: 1.25,
	MaxConflicts:  -1,
	Timeout:       -1,
}

// NewDefaultSolver returns a solver configured with default options. This is
// equivalent to calling NewSolver with DefaultOptions.
func NewDefaultSolver() *Solver {
	return NewSolver(DefaultOptions)
}

func NewSolver(opts Options) *Solver {
	s := &Solver{
		opts:        opts,
		scoreInc:    1,
		queue:       newVMTFQueue(),
		propQueue:   newPropagationQueue(128),
		control:     []levelInfo{newLevelInfo()},
		fastGlueAvg: NewEMA(fastGlueDecay),
		slowGlueAvg: NewEMA(slowGlueDecay),
		jumpAvg:     NewEMA(jumpAvgDecay),
		maxConflict: -1,
		timeout:     -1,
	}

	if opts.MaxConflicts >= 0 {
		s.hasStopCond = true
		s.maxConflict = opts.MaxConflicts
	}
	if opts.Timeout >= 0 {
		s.hasStopCond = true
		s.timeout = opts.Timeout
	}

	return s
}

// SetProofTracer installs the tracer receiving learned empty and unit
// clauses. It must be called before solving starts.
func (s *Solver) SetProofTracer(t ProofTracer) {
	s.proof = t
}

func (s *Solver) shouldStop() bool {
	if !s.hasStopCond {
		return false
	}
	if s.maxConflict >= 0 && s.maxConflict <= s.Stats.Conflicts {
		return true
	}
	if s.timeout >= 0 && s.timeout <= time.Since(s.startTime) {
		return true
	}

	return false
}

func (s *Solver) NumVariables() int {
	return len(s.vars)
}

func (s *Solver) NumAssigns() int {
	return len(s.trail)
}

func (s *Solver) NumConstraints() int {
	return len(s.constraints)
}

func (s *Solver) NumLearnts() int {
	return len(s.learnts)
}

// Unsat reports whether the solver reached the terminal unsatisfiable state.
// Once set, no further search or analysis takes place.
func (s *Solver) Unsat() bool {
	return s.unsat
}

func (s *Solver) VarValue(x int) LBool {
	return s.assigns[PositiveLiteral(x)]
}

func (s *Solver) LitValue(l Literal) LBool {
	return s.assigns[l]
}

func (s *Solver) AddVariable() int {
	x := s.NumVariables()
	s.watchers = append(s.watchers, nil, nil)
	s.assigns = append(s.assigns, Unknown, Unknown)
	s.savedPhase = append(s.savedPhase, Unknown)
	s.vars = append(s.vars, variable{level: -1, prev: noVar, next: noVar})

	// New variables enter the queue at the front with a fresh stamp so that
	// queue position and stamp order agree.
	s.queue.enqueue(s.vars, x)
	s.Stats.Bumped++
	s.vars[x].bumped = s.Stats.Bumped
	s.queue.assigned = x

	return x
}

// Watch registers clause c to be awaken when Literal watch is assigned to
// true.
func (s *Solver) Watch(c *Clause, watch Literal, guard Literal) {
	s.watchers[watch] = append(s.watchers[watch], watcher{
		clause: c,
		guard:  guard,
	})
}

// Unwatch removes clause c from the list of watchers.
func (s *Solver) Unwatch(c *Clause, watch Literal) {
	j := 0
	for i := 0; i < len(s.watchers[watch]); i++ {
		if s.watchers[watch][i].clause != c {
			s.watchers[watch][j] = s.watchers[watch][i]
			j++
		}
	}
	s.watchers[watch] = s.watchers[watch][:j]
}

func (s *Solver) AddClause(clause []Literal) error {
	if s.decisionLevel() != 0 {
		return fmt.Errorf("can only add clauses at the root level")
	}
	c, ok := NewClause(s, clause)
	if c != nil {
		s.constraints = append(s.constraints, c)
	}
	if !ok {
		s.unsat = true
	}

	return nil
}

// Simplify simplifies the clause DB as well as the problem clauses according
// to the root-level assignments. Clauses that are satisfied at the root
// level are removed.
func (s *Solver) Simplify() bool {
	if l := s.decisionLevel(); l != 0 {
		panic(fmt.Sprintf("Simplify called on non root-level: %d", l))
	}
	if s.propQueue.Size() != 0 {
		panic("propagation queue should be empty when calling Simplify")
	}

	if s.unsat || s.Propagate() != nil {
		s.unsat = true
		return false
	}

	s.simplifyPtr(&s.learnts)
	s.simplifyPtr(&s.constraints) // could be turned off

	return true
}

// simplifyPtr simplifies the clauses in the given slice and remove clauses
// that are already satisfied.
func (s *Solver) simplifyPtr(clausesPtr *[]*Clause) {
	clauses := *clausesPtr
	j := 0
	for i := 0; i < len(clauses); i++ {
		if clauses[i].Simplify(s) {
			clauses[i].Delete(s)
		} else {
			clauses[j] = clauses[i]
			j++
		}
	}
	*clausesPtr = clauses[:j]
}

// ReduceDB deletes roughly half of the learnt clauses, least recently
// resolved first. Clauses that are short, have a low glue, or are the reason
// of a trail assignment are kept.
func (s *Solver) ReduceDB() {
	s.Stats.Reductions++

	sort.Slice(s.learnts, func(i, j int) bool {
		return s.learnts[i].resolved < s.learnts[j].resolved
	})

	target := len(s.learnts) / 2
	removed := 0
	j := 0
	for _, c := range s.learnts {
		if removed < target && !c.locked(s) &&
			len(c.literals) > s.opts.KeepSize && c.glue > s.opts.KeepGlue {
			c.Delete(s)
			removed++
		} else {
			s.learnts[j] = c
			j++
		}
	}
	s.learnts = s.learnts[:j]
}

func (s *Solver) decisionLevel() int {
	return len(s.trailLim)
}

func (s *Solver) Solve() LBool {
	numConflicts := 100
	numLearnts := s.NumConstraints() / 3
	status := Unknown
	if s.opts.ScoreHeap {
		s.order = NewVarOrder(s, s.NumVariables())
	}
	s.startTime = time.Now()

	s.printSeparator()
	s.printSearchHeader()
	s.printSeparator()

	for status == Unknown {
		status = s.Search(numConflicts, numLearnts)
		numConflicts += numConflicts / 10
		numLearnts += numLearnts / 20

		if s.shouldStop() {
			break
		}
	}

	s.printSearchStats()
	s.printSeparator()

	s.cancelUntil(0)
	return status
}

func (s *Solver) Propagate() *Clause {
	for s.propQueue.Size() > 0 {
		l := s.propQueue.Pop()
		s.Stats.Propagations++

		s.tmpWatchers = s.tmpWatchers[:0]
		s.tmpWatchers = append(s.tmpWatchers, s.watchers[l]...)
		s.watchers[l] = s.watchers[l][:0]

		for i, w := range s.tmpWatchers {
			// No need to propagate the clause if its guard is true. This
			// block is not necessary for propagation to behave properly.
			// However, it helps to significantly speed-up computation by
			// avoiding loading clauses (in memory) that do not need to be
			// propagated. Note that this alters the order in which clauses
			// are propagated and can thus yield different conflicts and
			// learnt clauses.
			if s.LitValue(w.guard) == True {
				s.watchers[l] = append(s.watchers[l], w)
				continue
			}

			if w.clause.Propagate(s, l) {
				continue
			}

			// The clause is conflicting: copy the remaining watchers and
			// report it.
			s.watchers[l] = append(s.watchers[l], s.tmpWatchers[i+1:]...)
			s.propQueue.Clear()
			return s.tmpWatchers[i].clause
		}
	}

	return nil
}

func (s *Solver) enqueue(l Literal, from *Clause) bool {
	switch s.LitValue(l) {
	case False:
		return false // conflicting assignment
	case True:
		return true // already assigned
	default:
		// New fact, store it.
		x := l.VarID()
		v := &s.vars[x]
		s.assigns[l] = True
		s.assigns[l.Opposite()] = False
		v.level = s.decisionLevel()
		v.reason = from
		v.trailPos = len(s.trail)
		s.trail = append(s.trail, l)
		if v.level == 0 && !s.queue.detached(s.vars, x) {
			// Root assignments are permanent: detach the variable from the
			// decision queue for good.
			s.queue.detach(s.vars, x)
		}
		s.propQueue.Push(l)
		return true
	}
}

func (s *Solver) undoOne() {
	l := s.trail[len(s.trail)-1]
	x := l.VarID()
	v := &s.vars[x]

	if s.opts.PhaseSaving {
		s.savedPhase[x] = s.VarValue(x)
	}
	s.assigns[l] = Unknown
	s.assigns[l.Opposite()] = Unknown
	v.reason = nil
	v.level = -1

	// An unassigned variable that was bumped more recently than the cached
	// frontier sits closer to the front and becomes the new frontier.
	if !s.queue.detached(s.vars, x) {
		if a := s.queue.assigned; a == noVar || v.bumped > s.vars[a].bumped {
			s.queue.assigned = x
		}
	}
	if s.order != nil {
		s.order.Unassign(x)
	}

	s.trail = s.trail[:len(s.trail)-1]
}

func (s *Solver) assume(l Literal) bool {
	s.trailLim = append(s.trailLim, len(s.trail))
	s.control = append(s.control, newLevelInfo())
	return s.enqueue(l, nil)
}

func (s *Solver) cancel() {
	c := len(s.trail) - s.trailLim[len(s.trailLim)-1]
	for ; c != 0; c-- {
		s.undoOne()
	}
	s.trailLim = s.trailLim[:len(s.trailLim)-1]
	s.control = s.control[:len(s.control)-1]
}

func (s *Solver) cancelUntil(level int) {
	for s.decisionLevel() > level {
		s.cancel()
	}
}

// nextQueueVar walks the VMTF queue from the cached frontier towards the
// back and returns the frontmost unassigned variable, updating the cache.
func (s *Solver) nextQueueVar() int {
	x := s.queue.assigned
	for x != noVar && s.VarValue(x) != Unknown {
		x = s.vars[x].prev
	}
	if x == noVar {
		panic("no unassigned variable in the decision queue")
	}
	s.queue.assigned = x
	return x
}

func (s *Solver) decisionLiteral(x int) Literal {
	if s.savedPhase[x] == True {
		return PositiveLiteral(x)
	}
	return NegativeLiteral(x)
}

func (s *Solver) decide() {
	s.Stats.Decisions++
	var x int
	if s.opts.ScoreHeap {
		x = s.order.Select()
	} else {
		x = s.nextQueueVar()
	}
	s.assume(s.decisionLiteral(x))
}

// glueRestart reports whether the recent learned clauses are of noticeably
// worse quality than the long-run average, in which case restarting is
// likely to pay off.
func (s *Solver) glueRestart(conflictCount int) bool {
	if conflictCount < 50 {
		return false
	}
	return s.fastGlueAvg.Val() > s.opts.RestartMargin*s.slowGlueAvg.Val()
}

func (s *Solver) Search(nConflicts int, nLearnts int) LBool {
	if s.unsat {
		return False
	}

	s.Stats.Restarts++
	conflictCount := 0
	pendingReport := false

	for !s.shouldStop() {
		if s.Stats.Iterations%10000 == 0 {
			s.printSearchStats()
		}
		s.Stats.Iterations++

		if conflict := s.Propagate(); conflict != nil {
			conflictCount++
			s.Stats.Conflicts++

			switch s.analyze(conflict) {
			case eventUnsat:
				return False
			case eventLearnedUnit:
				pendingReport = true
			}
			continue
		}

		// No conflict: propagation reached a fixpoint.
		// ---------------------------------------------

		if pendingReport {
			// Learned units are reported only once their propagation has
			// completed, so that the remaining-variable count is final.
			pendingReport = false
			s.report('i')
		}

		if s.decisionLevel() == 0 {
			s.Simplify()
			if s.unsat {
				return False
			}
		}

		if len(s.learnts)-s.NumAssigns() >= nLearnts {
			s.ReduceDB()
		}

		if s.NumAssigns() == s.NumVariables() { // solution found
			s.saveModel()
			s.cancelUntil(0)
			return True
		}

		if conflictCount > nConflicts || s.glueRestart(conflictCount) {
			s.cancelUntil(0)
			return Unknown
		}

		s.decide()
	}

	return Unknown
}

func (s *Solver) saveModel() {
	model := make([]bool, s.NumVariables())
	for i := range model {
		lb := s.VarValue(i)
		if lb == Unknown {
			panic("not a model")
		}
		model[i] = lb == True
	}
	s.Models = append(s.Models, model)
}

func (s *Solver) printSeparator() {
	fmt.Println("c ---------------------------------------------------------------------------")
}

func (s *Solver) printSearchHeader() {
	fmt.Println("c key        time      conflicts     restarts      learnts  glue  remaining")
}

func (s *Solver) printSearchStats() {
	s.report(' ')
}

// report prints one progress line. Key 'i' marks a learned unit clause whose
// propagation just completed.
func (s *Solver) report(key byte) {
	fmt.Printf(
		"c %c %10.3fs %14d %12d %12d %5.1f %10d\n",
		key,
		time.Since(s.startTime).Seconds(),
		s.Stats.Conflicts,
		s.Stats.Restarts,
		len(s.learnts),
		s.fastGlueAvg.Val(),
		s.NumVariables()-s.NumAssigns(),
	)
}
