package joints

import (
	"github.com/charmbracelet/log"

	"github.com/alexiusacademia/gotruss/internal/truss"
)

// Outcome is how a resolution run ended without error
type Outcome int

const (
	// Converged means every bar force is known
	Converged Outcome = iota
	// BoundedExit means the pass limit was exceeded while progress was
	// still being made; some bars remain unresolved
	BoundedExit
)

func (o Outcome) String() string {
	switch o {
	case Converged:
		return "converged"
	case BoundedExit:
		return "bounded exit"
	}
	return "unknown"
}

// passSlack is added to the bar count to form the default pass limit
const passSlack = 5

// Options configures Resolve
type Options struct {
	// Logger receives per-bar debug records and the bounded-exit warning.
	// Nil discards output.
	Logger *log.Logger

	// MaxPasses overrides the pass limit of len(bars) + 5
	MaxPasses int
}

// Result is the state of a resolution run
type Result struct {
	Outcome  Outcome
	Passes   int
	Forces   []float64 // Axial force per bar ID, positive in tension
	Resolved []bool    // Resolution flag per bar ID
	Steps    []Step    // Bars in the order they were resolved
}

// Complete reports whether every bar was resolved
func (res *Result) Complete() bool {
	for _, ok := range res.Resolved {
		if !ok {
			return false
		}
	}
	return true
}

// Unresolved returns the IDs of bars without a force
func (res *Result) Unresolved() []int {
	var ids []int
	for b, ok := range res.Resolved {
		if !ok {
			ids = append(ids, b)
		}
	}
	return ids
}

// Resolve runs the method of joints over t until every bar is resolved.
//
// Each pass scans the nodes in index order and solves every node that has
// one or two unknown bars at the moment it is visited, so a node made
// solvable earlier in the same pass is picked up immediately. With two
// unknowns the second bar is found from the equation perpendicular to the
// first, then the first from the equation along its own axis.
//
// A pass that resolves nothing returns a *StabilityError. Exceeding the pass
// limit logs a warning and returns a BoundedExit result with no error. A
// collinear pair of unknowns returns a *GeometryError.
//
// Support reactions must already be stored on t.
func Resolve(t *truss.Truss, opts Options) (*Result, error) {
	r := NewResolver(t, opts.Logger)

	limit := opts.MaxPasses
	if limit <= 0 {
		limit = len(t.Bars) + passSlack
	}

	passes := 0
	for r.Remaining() > 0 {
		r.pass = passes + 1
		progress := false

		for n := range t.Nodes {
			unknowns := r.UnresolvedBars(n)

			switch len(unknowns) {
			case 2:
				if _, err := r.SolvePerpendicular(n, unknowns[0], unknowns[1]); err != nil {
					return nil, err
				}
				if _, err := r.SolveAlongBar(n, unknowns[0]); err != nil {
					return nil, err
				}
				progress = true
			case 1:
				if _, err := r.SolveAlongBar(n, unknowns[0]); err != nil {
					return nil, err
				}
				progress = true
			}
		}

		if !progress {
			return nil, r.stall(r.pass)
		}

		passes++
		if r.Remaining() > 0 && passes > limit {
			r.logger.Warn("too many iterations; returning with unresolved bars",
				"passes", passes, "limit", limit, "unresolved", r.Remaining())
			return r.result(BoundedExit, passes), nil
		}
	}

	r.logger.Debug("all bars resolved", "passes", passes, "bars", len(t.Bars))
	return r.result(Converged, passes), nil
}

// IterateUsingMethodOfJoints resolves every bar of t with the default pass
// limit
func IterateUsingMethodOfJoints(t *truss.Truss, logger *log.Logger) (*Result, error) {
	return Resolve(t, Options{Logger: logger})
}

func (r *Resolver) result(outcome Outcome, passes int) *Result {
	res := &Result{
		Outcome:  outcome,
		Passes:   passes,
		Forces:   r.Forces(),
		Resolved: make([]bool, len(r.bars)),
		Steps:    r.Steps(),
	}
	for i, s := range r.bars {
		res.Resolved[i] = s.resolved
	}
	return res
}
