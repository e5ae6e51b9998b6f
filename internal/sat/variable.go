package sat

// noVar is the sentinel for queue links and the frontier cache.
const noVar = -1

// variable is the per-variable record. Records live in a dense slice indexed
// by variable ID; the VMTF queue links below are indices into that slice, not
// pointers.
type variable struct {
	// Decision level at which the variable was assigned, -1 while unassigned.
	level int

	// Position in the trail at assignment time. Only meaningful while the
	// variable is assigned, but deliberately kept stale after unassignment:
	// the bump-order comparators read it for variables that were just
	// unassigned by the backjump.
	trailPos int

	// The clause that forced the assignment, nil for decisions. The clause
	// database owns the clause; this is a non-owning reference.
	reason *Clause

	// Transient marks used during conflict analysis and minimization. All
	// three are false between conflicts.
	seen      bool
	poison    bool
	removable bool

	// Activity score and move-to-front stamp.
	score  float64
	bumped int64

	// VMTF queue links. prev points towards the back (least recently
	// bumped), next towards the front. A variable with no next link that is
	// not the queue front has been detached and must never be bumped.
	prev, next int
}

// vmtfQueue is the variable-move-to-front decision order: a doubly linked
// list over the variable slice, most recently bumped first. It caches the
// frontmost unassigned variable so the decision procedure does not rescan the
// queue from the front.
type vmtfQueue struct {
	front    int // most recently bumped
	back     int // least recently bumped
	assigned int // frontmost unassigned variable, the next decision candidate
}

func newVMTFQueue() vmtfQueue {
	return vmtfQueue{front: noVar, back: noVar, assigned: noVar}
}

// detached reports whether x has been removed from the queue. Only the front
// element legitimately has no next link.
func (q *vmtfQueue) detached(vars []variable, x int) bool {
	return vars[x].next == noVar && q.front != x
}

// enqueue links x at the front of the queue.
func (q *vmtfQueue) enqueue(vars []variable, x int) {
	v := &vars[x]
	v.next = noVar
	v.prev = q.front
	if q.front != noVar {
		vars[q.front].next = x
	} else {
		q.back = x
	}
	q.front = x
}

// dequeue unlinks x from the queue.
func (q *vmtfQueue) dequeue(vars []variable, x int) {
	v := &vars[x]
	if v.prev != noVar {
		vars[v.prev].next = v.next
	} else {
		q.back = v.next
	}
	if v.next != noVar {
		vars[v.next].prev = v.prev
	} else {
		q.front = v.prev
	}
	v.prev, v.next = noVar, noVar
}

// detach permanently removes x from the queue, e.g. when it gets fixed at the
// root level. The frontier is moved off x first so it keeps pointing at a
// linked variable.
func (q *vmtfQueue) detach(vars []variable, x int) {
	if q.assigned == x {
		if p := vars[x].prev; p != noVar {
			q.assigned = p
		} else {
			q.assigned = vars[x].next
		}
	}
	q.dequeue(vars, x)
}
