package sat

// propagationQueue is the FIFO of literals waiting to be propagated. It is a
// ring buffer whose capacity is always a power of two so that wrap-around is
// a single mask operation.
type propagationQueue struct {
	ring  []Literal
	mask  int
	start int
	end   int
	size  int
}

// newPropagationQueue returns a queue with at least the given capacity.
func newPropagationQueue(capa int) *propagationQueue {
	capa = nextPower2(capa)
	return &propagationQueue{
		ring: make([]Literal, capa),
		mask: capa - 1,
	}
}

func nextPower2(i int) int {
	i |= i >> 1
	i |= i >> 2
	i |= i >> 4
	i |= i >> 8
	i |= i >> 16
	i |= i >> 32
	return i + 1
}

func (q *propagationQueue) Size() int {
	return q.size
}

func (q *propagationQueue) Clear() {
	q.start = 0
	q.end = 0
	q.size = 0
}

func (q *propagationQueue) Push(l Literal) {
	if q.size == len(q.ring) {
		q.resize()
	}
	q.ring[q.end] = l
	q.end = (q.end + 1) & q.mask
	q.size++
}

func (q *propagationQueue) resize() {
	newRing := make([]Literal, len(q.ring)*2)
	if q.start == 0 {
		copy(newRing, q.ring)
	} else {
		n := len(q.ring) - q.start
		copy(newRing[:n], q.ring[q.start:])
		copy(newRing[n:], q.ring[:q.end])
		q.start = 0
	}
	q.end = q.size
	q.ring = newRing
	q.mask = len(newRing) - 1
}

func (q *propagationQueue) Pop() Literal {
	if q.size == 0 {
		panic("pop on an empty propagation queue")
	}
	l := q.ring[q.start]
	q.start = (q.start + 1) & q.mask
	q.size--
	return l
}
