package sat

// ProofTracer receives the learned artifacts that matter for proof
// certificates. A nil tracer disables tracing.
type ProofTracer interface {
	// TraceEmptyClause is invoked exactly once, when a root-level conflict
	// proves the formula unsatisfiable.
	TraceEmptyClause()

	// TraceUnitClause is invoked whenever conflict analysis learns a unit
	// clause.
	TraceUnitClause(l Literal)
}
