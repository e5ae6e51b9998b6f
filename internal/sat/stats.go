package sat

// Statistics groups the solver's search counters. They are informational
// except for Bumped and Resolved which double as the monotonically increasing
// stamp sources of the VMTF queue and of clause recency.
type Statistics struct {
	Conflicts    int64
	Decisions    int64
	Propagations int64
	Restarts     int64
	Iterations   int64

	// Variables fixed by learned unit clauses.
	Fixed int64

	// Learned clause counters by size class.
	Units    int64
	Binaries int64
	Learned  int64

	// Literals removed by clause minimization.
	Minimized int64

	// Number of activity rescales and clause database reductions.
	Rescored   int64
	Reductions int64

	// Stamp counters. Bumped is incremented for every variable moved to the
	// front of the queue, Resolved for every clause recency stamp.
	Bumped   int64
	Resolved int64
}
