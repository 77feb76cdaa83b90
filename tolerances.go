package pathbool

// Tolerances bundles the numerical thresholds used by the intersection and
// boolean operations. Pass nil to any top-level operation to use
// DefaultTolerances.
type Tolerances struct {
	// Root is the minimum parameter distance between two accepted polynomial
	// roots, and the maximum distance a tangential root may move away from
	// its Newton seed.
	Root float64

	// Residual is the maximum polynomial value at an accepted tangential
	// root, and the Newton step size below which iteration stops.
	Residual float64

	// Convergence is the parameter interval size below which the
	// curve-curve subdivision reports an intersection.
	Convergence float64

	// ReduceStep is the smallest parameter step used when bisecting for the
	// boundary between simple and non-simple subcurves.
	ReduceStep float64

	// Offset is the distance an edge midpoint is offset along its normal
	// when classifying edges against the operand paths.
	Offset float64

	// Coincidence is the maximum distance between two edges that are
	// considered to run along the same boundary.
	Coincidence float64
}

// DefaultTolerances are suitable for paths with coordinates of order 1-1000.
var DefaultTolerances = &Tolerances{
	Root:        1e-5,
	Residual:    1e-10,
	Convergence: 1e-4,
	ReduceStep:  0.01,
	Offset:      1e-6,
	Coincidence: 1e-6,
}

func (tol *Tolerances) orDefault() *Tolerances {
	if tol == nil {
		return DefaultTolerances
	}
	return tol
}
