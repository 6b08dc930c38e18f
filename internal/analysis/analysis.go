// Package analysis runs the full solution pipeline for a truss:
// validation, determinacy, support reactions, the method of joints,
// equilibrium closure and member capacity checks.
package analysis

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/alexiusacademia/gotruss/internal/geometry"
	"github.com/alexiusacademia/gotruss/internal/joints"
	"github.com/alexiusacademia/gotruss/internal/nscp"
	"github.com/alexiusacademia/gotruss/internal/truss"
)

// DefaultTolerance is used when Options.Tolerance is zero
const DefaultTolerance = 1e-6

// Options configures Run and Envelope
type Options struct {
	Logger    *log.Logger
	Tolerance float64 // Closure and zero-force tolerance
	MaxPasses int     // Passed to joints.Resolve; 0 uses the default

	// Combination factors the case loads of every node. Nil solves the
	// direct nodal loads.
	Combination *nscp.LoadCombination
}

func (o Options) logger() *log.Logger {
	if o.Logger == nil {
		return log.New(io.Discard)
	}
	return o.Logger
}

func (o Options) tolerance() float64 {
	if o.Tolerance <= 0 {
		return DefaultTolerance
	}
	return o.Tolerance
}

// Reaction is the support force at one node
type Reaction struct {
	Node    int
	Label   string
	Support truss.Support
	Force   geometry.Vector
}

// Report is the outcome of one analysis run
type Report struct {
	ID          string
	Truss       *truss.Truss // Solved copy carrying loads and reactions
	Combination *nscp.LoadCombination
	Determinacy truss.Determinacy
	Result      *joints.Result
	Reactions   []Reaction
	Members     []Member
	Residuals   []joints.Residual
	MaxResidual float64
	WorstNode   int
	Tolerance   float64
	Started     time.Time
	Elapsed     time.Duration
}

// Complete reports whether every bar force was found
func (r *Report) Complete() bool {
	return r.Result != nil && r.Result.Complete()
}

// Balanced reports whether every node closes within tolerance
func (r *Report) Balanced() bool {
	return r.Complete() && r.MaxResidual <= r.Tolerance
}

// CombinationID returns the ID of the applied combination, or "" for
// direct loads
func (r *Report) CombinationID() string {
	if r.Combination == nil {
		return ""
	}
	return r.Combination.ID
}

// Prepare validates t, applies the load combination and computes support
// reactions without solving bar forces. The input truss is not modified.
func Prepare(t *truss.Truss, opts Options) (*truss.Truss, truss.Determinacy, error) {
	work := t.Clone()
	if err := work.Validate(); err != nil {
		return nil, truss.Determinacy{}, err
	}

	if opts.Combination != nil {
		var err error
		work, err = truss.ApplyCombination(work, *opts.Combination)
		if err != nil {
			return nil, truss.Determinacy{}, fmt.Errorf("combination %s: %w", opts.Combination.ID, err)
		}
	}

	det, err := truss.CheckDeterminacy(work)
	if err != nil {
		return nil, det, err
	}
	if err := truss.ComputeReactions(work); err != nil {
		return nil, det, err
	}
	return work, det, nil
}

// Run solves t and checks the result. Errors from validation, the
// determinacy count, reactions and the joints driver are returned as is,
// so callers can match them with errors.Is. A bounded exit is not an
// error; inspect Report.Complete.
func Run(t *truss.Truss, opts Options) (*Report, error) {
	logger := opts.logger()
	rep := &Report{
		ID:          uuid.NewString(),
		Combination: opts.Combination,
		Tolerance:   opts.tolerance(),
		Started:     time.Now(),
	}

	work, det, err := Prepare(t, opts)
	if err != nil {
		return nil, err
	}
	rep.Truss = work
	rep.Determinacy = det
	logger.Debug("truss is statically determinate", "check", det.String())

	for _, n := range work.Supports() {
		node := &work.Nodes[n]
		rep.Reactions = append(rep.Reactions, Reaction{
			Node:    n,
			Label:   node.Label(),
			Support: node.Support,
			Force:   node.Reaction,
		})
	}

	res, err := joints.Resolve(work, joints.Options{Logger: logger, MaxPasses: opts.MaxPasses})
	if err != nil {
		return nil, err
	}
	rep.Result = res

	rep.Residuals = joints.Closure(work, res.Forces)
	rep.MaxResidual, rep.WorstNode = joints.MaxResidual(rep.Residuals)
	if res.Complete() && rep.MaxResidual > rep.Tolerance {
		logger.Warn("equilibrium closure exceeds tolerance",
			"node", rep.WorstNode, "residual", rep.MaxResidual, "tolerance", rep.Tolerance)
	}

	rep.Members = members(work, res, rep.Tolerance)
	rep.Elapsed = time.Since(rep.Started)

	logger.Debug("analysis finished", "id", rep.ID, "passes", res.Passes,
		"outcome", res.Outcome, "elapsed", rep.Elapsed)
	return rep, nil
}
