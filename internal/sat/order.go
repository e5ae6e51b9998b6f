package sat

import "github.com/rhartert/yagh"

// VarOrder is the score-heap decision order used when Options.ScoreHeap is
// set. It ranks unassigned variables by activity score and replaces the VMTF
// queue walk in the decision procedure. The VMTF queue itself is still
// maintained so the two modes can be compared on identical bump sequences.
type VarOrder struct {
	solver *Solver
	heap   *yagh.IntMap[float64]
}

func NewVarOrder(s *Solver, nVars int) *VarOrder {
	vo := &VarOrder{
		solver: s,
		heap:   yagh.New[float64](nVars),
	}
	for x := 0; x < nVars; x++ {
		if s.VarValue(x) == Unknown {
			vo.Unassign(x)
		}
	}
	return vo
}

// Bump re-keys the variable after its score changed.
func (vo *VarOrder) Bump(x int) {
	if vo.heap.Contains(x) {
		vo.heap.Put(x, -vo.solver.vars[x].score)
	}
}

// Unassign makes the variable selectable again.
func (vo *VarOrder) Unassign(x int) {
	vo.heap.Put(x, -vo.solver.vars[x].score)
}

// Select pops variables until it finds an unassigned one.
func (vo *VarOrder) Select() int {
	for {
		next, ok := vo.heap.Pop()
		if !ok {
			panic("select on an empty variable order")
		}
		if vo.solver.VarValue(next.Elem) == Unknown {
			return next.Elem
		}
	}
}
