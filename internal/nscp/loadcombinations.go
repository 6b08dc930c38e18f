package nscp

import (
	"fmt"
	"math"
	"strings"
)

// Case names a load case
type Case string

const (
	Dead       Case = "dead"
	Live       Case = "live"
	Roof       Case = "roof"
	Wind       Case = "wind"
	Earthquake Case = "earthquake"
	Rain       Case = "rain"
)

// Cases lists every load case in display order
var Cases = []Case{Dead, Live, Roof, Wind, Earthquake, Rain}

// ParseCase resolves a case name (case-insensitive, short symbols accepted)
func ParseCase(s string) (Case, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "dead", "d":
		return Dead, nil
	case "live", "l":
		return Live, nil
	case "roof", "lr":
		return Roof, nil
	case "wind", "w":
		return Wind, nil
	case "earthquake", "e":
		return Earthquake, nil
	case "rain", "r":
		return Rain, nil
	}
	return "", fmt.Errorf("unknown load case %q", s)
}

// LoadCombination represents an NSCP load combination
// Based on NSCP 2015 Section 203.3 - Load Combinations Using Strength Design
type LoadCombination struct {
	ID          string
	Description string
	// Load factors for each load type
	Dead       float64 // D - Dead load
	Live       float64 // L - Live load
	Roof       float64 // Lr - Roof live load
	Wind       float64 // W - Wind load
	Earthquake float64 // E - Earthquake load
	Rain       float64 // R - Rain load
}

// NSCP 2015 Section 203.3.1 - Basic Load Combinations
var LoadCombinations = []LoadCombination{
	{
		ID:          "1",
		Description: "1.4D",
		Dead:        1.4,
	},
	{
		ID:          "2",
		Description: "1.2D + 1.6L + 0.5(Lr or R)",
		Dead:        1.2,
		Live:        1.6,
		Roof:        0.5,
		Rain:        0.5,
	},
	{
		ID:          "3",
		Description: "1.2D + 1.6(Lr or R) + (1.0L or 0.5W)",
		Dead:        1.2,
		Live:        1.0,
		Roof:        1.6,
		Rain:        1.6,
		Wind:        0.5,
	},
	{
		ID:          "4",
		Description: "1.2D + 1.0W + 1.0L + 0.5(Lr or R)",
		Dead:        1.2,
		Live:        1.0,
		Wind:        1.0,
		Roof:        0.5,
		Rain:        0.5,
	},
	{
		ID:          "5",
		Description: "1.2D + 1.0E + 1.0L",
		Dead:        1.2,
		Live:        1.0,
		Earthquake:  1.0,
	},
	{
		ID:          "6",
		Description: "0.9D + 1.0W",
		Dead:        0.9,
		Wind:        1.0,
	},
	{
		ID:          "7",
		Description: "0.9D + 1.0E",
		Dead:        0.9,
		Earthquake:  1.0,
	},
}

// SimplifiedCombinations covers gravity loading only
var SimplifiedCombinations = []LoadCombination{
	{
		ID:          "1",
		Description: "1.4D",
		Dead:        1.4,
	},
	{
		ID:          "2",
		Description: "1.2D + 1.6L",
		Dead:        1.2,
		Live:        1.6,
	},
}

// Unfactored wraps a single unfactored load as its own combination, used
// when a truss is solved without a combination
var Unfactored = LoadCombination{
	ID:          "U",
	Description: "D + L + Lr + W + E + R (unfactored)",
	Dead:        1, Live: 1, Roof: 1, Wind: 1, Earthquake: 1, Rain: 1,
}

// Factor returns the load factor applied to case c
func (lc LoadCombination) Factor(c Case) float64 {
	switch c {
	case Dead:
		return lc.Dead
	case Live:
		return lc.Live
	case Roof:
		return lc.Roof
	case Wind:
		return lc.Wind
	case Earthquake:
		return lc.Earthquake
	case Rain:
		return lc.Rain
	}
	return 0
}

// Apply returns the factored value of a set of unfactored loads
func (lc LoadCombination) Apply(loads LoadSet) float64 {
	var sum float64
	for _, c := range Cases {
		sum += lc.Factor(c) * loads.Get(c)
	}
	return sum
}

// LoadSet holds unfactored values (a moment, or one component of a nodal
// load) for each load type
type LoadSet struct {
	Dead       float64
	Live       float64
	Roof       float64
	Wind       float64
	Earthquake float64
	Rain       float64
}

// Add accumulates v into case c
func (s *LoadSet) Add(c Case, v float64) {
	switch c {
	case Dead:
		s.Dead += v
	case Live:
		s.Live += v
	case Roof:
		s.Roof += v
	case Wind:
		s.Wind += v
	case Earthquake:
		s.Earthquake += v
	case Rain:
		s.Rain += v
	}
}

// Get returns the value stored for case c
func (s LoadSet) Get(c Case) float64 {
	switch c {
	case Dead:
		return s.Dead
	case Live:
		return s.Live
	case Roof:
		return s.Roof
	case Wind:
		return s.Wind
	case Earthquake:
		return s.Earthquake
	case Rain:
		return s.Rain
	}
	return 0
}

// IsZero reports whether every case is zero
func (s LoadSet) IsZero() bool {
	return s == LoadSet{}
}

// Find returns the combination with the given ID
func Find(combinations []LoadCombination, id string) (LoadCombination, error) {
	for _, combo := range combinations {
		if combo.ID == id {
			return combo, nil
		}
	}
	return LoadCombination{}, fmt.Errorf("no load combination with ID %q", id)
}

// Governing finds the combination that gives the largest factored magnitude
func Governing(loads LoadSet, combinations []LoadCombination) (float64, LoadCombination) {
	var maxValue float64
	var governingCombo LoadCombination

	for _, combo := range combinations {
		v := combo.Apply(loads)
		if math.Abs(v) > math.Abs(maxValue) || governingCombo.ID == "" {
			maxValue = v
			governingCombo = combo
		}
	}

	return maxValue, governingCombo
}
