package analysis

import (
	"errors"
	"fmt"
	"math"

	"github.com/google/uuid"

	"github.com/alexiusacademia/gotruss/internal/nscp"
	"github.com/alexiusacademia/gotruss/internal/truss"
)

// ErrNoActiveCombinations is returned when every combination factors the
// case loads to zero
var ErrNoActiveCombinations = errors.New("no load combination produces a non-zero load")

// EnvelopeRow holds the extreme forces of one bar over all combinations
type EnvelopeRow struct {
	Bar   int
	Label string

	MaxTension   float64 // Largest positive force, 0 if never in tension
	TensionCombo string

	MaxCompression   float64 // Most negative force, 0 if never in compression
	CompressionCombo string

	Governing      float64 // Force with the largest magnitude
	GoverningCombo string
}

// EnvelopeReport collects one Report per active combination
type EnvelopeReport struct {
	ID      string
	Runs    []*Report
	Skipped []string // Combinations whose factored loads are all zero
	Rows    []EnvelopeRow
}

// Envelope runs every combination with non-zero factored loads and keeps
// the extreme forces of each bar. The first error aborts the envelope.
func Envelope(t *truss.Truss, combos []nscp.LoadCombination, opts Options) (*EnvelopeReport, error) {
	if !t.HasLoadCases() {
		return nil, truss.ErrNoLoadCases
	}
	logger := opts.logger()
	env := &EnvelopeReport{ID: uuid.NewString()}

	for i := range combos {
		combo := combos[i]

		active, err := hasLoad(t, combo)
		if err != nil {
			return nil, err
		}
		if !active {
			logger.Debug("skipping combination with no load", "combo", combo.ID)
			env.Skipped = append(env.Skipped, combo.ID)
			continue
		}

		o := opts
		o.Combination = &combo
		rep, err := Run(t, o)
		if err != nil {
			return nil, fmt.Errorf("combination %s: %w", combo.ID, err)
		}
		env.Runs = append(env.Runs, rep)
	}

	if len(env.Runs) == 0 {
		return nil, ErrNoActiveCombinations
	}

	env.Rows = make([]EnvelopeRow, len(t.Bars))
	for b := range t.Bars {
		row := EnvelopeRow{Bar: b, Label: env.Runs[0].Members[b].Label}
		for _, rep := range env.Runs {
			m := rep.Members[b]
			if m.State == Unresolved {
				continue
			}
			id := rep.CombinationID()
			if m.Force > row.MaxTension {
				row.MaxTension, row.TensionCombo = m.Force, id
			}
			if m.Force < row.MaxCompression {
				row.MaxCompression, row.CompressionCombo = m.Force, id
			}
			if math.Abs(m.Force) > math.Abs(row.Governing) || row.GoverningCombo == "" {
				row.Governing, row.GoverningCombo = m.Force, id
			}
		}
		env.Rows[b] = row
	}
	return env, nil
}

// hasLoad reports whether combo leaves any node with a non-zero load
func hasLoad(t *truss.Truss, combo nscp.LoadCombination) (bool, error) {
	for n := range t.Nodes {
		x, y, err := t.CaseLoads(n)
		if err != nil {
			return false, err
		}
		if combo.Apply(x) != 0 || combo.Apply(y) != 0 {
			return true, nil
		}
	}
	return false, nil
}
