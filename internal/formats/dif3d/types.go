package dif3d

import (
	"fmt"
	"strings"
)

// Convergence is the outer-iteration return state stored in IRETRN.
type Convergence int

const (
	// NoIterations means the outer iterations never started
	NoIterations Convergence = iota
	// Converged means all convergence criteria were met
	Converged
	// OutersLimitReached means the outer iteration limit stopped the run
	OutersLimitReached
	// TimeLimitReached means the time limit stopped the run
	TimeLimitReached
)

func (c Convergence) String() string {
	switch c {
	case NoIterations:
		return "NO_ITERATIONS"
	case Converged:
		return "CONVERGED"
	case OutersLimitReached:
		return "OUTERS_LIMIT_REACHED"
	case TimeLimitReached:
		return "TIME_LIMIT_REACHED"
	default:
		return fmt.Sprintf("Convergence(%d)", int(c))
	}
}

// ParseConvergence classifies an IRETRN word.
func ParseConvergence(v int) (Convergence, error) {
	c := Convergence(v)
	if c < NoIterations || c > TimeLimitReached {
		return 0, fmt.Errorf("unknown convergence state %d", v)
	}
	return c, nil
}

// ProblemType is the IPROBT control word.
type ProblemType int

const (
	// Eigenvalue is a keff search
	Eigenvalue ProblemType = iota
	// FixedSource is an inhomogeneous source problem
	FixedSource
)

func (p ProblemType) String() string {
	switch p {
	case Eigenvalue:
		return "KEFF"
	case FixedSource:
		return "FIXED_SOURCE"
	default:
		return fmt.Sprintf("ProblemType(%d)", int(p))
	}
}

// SolutionType is the ISOLNT control word and the run's flux selection.
type SolutionType int

const (
	// Real computes the forward flux only
	Real SolutionType = iota
	// Adjoint computes the adjoint flux only
	Adjoint
	// RealAndAdjoint computes both
	RealAndAdjoint
)

func (s SolutionType) String() string {
	switch s {
	case Real:
		return "REAL"
	case Adjoint:
		return "ADJOINT"
	case RealAndAdjoint:
		return "REAL_AND_ADJOINT"
	default:
		return fmt.Sprintf("SolutionType(%d)", int(s))
	}
}

// HasReal reports whether the forward flux is computed.
func (s SolutionType) HasReal() bool { return s == Real || s == RealAndAdjoint }

// HasAdjoint reports whether the adjoint flux is computed.
func (s SolutionType) HasAdjoint() bool { return s == Adjoint || s == RealAndAdjoint }

// SolutionTypeFromOptions derives the solution type from real/adjoint switches.
// With neither switch set the run is treated as adjoint.
func SolutionTypeFromOptions(forward, adjoint bool) SolutionType {
	switch {
	case forward && adjoint:
		return RealAndAdjoint
	case forward:
		return Real
	default:
		return Adjoint
	}
}

// ParseSolutionType accepts "real", "adjoint" and "real_and_adjoint" in any case.
func ParseSolutionType(s string) (SolutionType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "real", "":
		return Real, nil
	case "adjoint":
		return Adjoint, nil
	case "real_and_adjoint", "real-and-adjoint", "both":
		return RealAndAdjoint, nil
	default:
		return 0, fmt.Errorf("unknown solution type %q", s)
	}
}
