package analysis

import (
	"math"
	"strings"

	"github.com/alexiusacademia/gotruss/internal/joints"
	"github.com/alexiusacademia/gotruss/internal/nscp"
	"github.com/alexiusacademia/gotruss/internal/truss"
)

// State classifies a bar force
type State int

const (
	Unresolved State = iota
	ZeroForce
	Tension
	Compression
)

func (s State) String() string {
	switch s {
	case ZeroForce:
		return "Zero-force"
	case Tension:
		return "Tension"
	case Compression:
		return "Compression"
	}
	return "Unresolved"
}

// Classify returns the state of a resolved force. Forces within tol of
// zero are zero-force members.
func Classify(force, tol float64) State {
	switch {
	case math.Abs(force) <= tol:
		return ZeroForce
	case force > 0:
		return Tension
	default:
		return Compression
	}
}

// Member is one row of the member force table
type Member struct {
	Bar    int
	Label  string
	Start  int
	End    int
	Length float64
	Force  float64
	State  State
	Check  *nscp.AxialCheck // Nil when the bar has no section data
}

func members(t *truss.Truss, res *joints.Result, tol float64) []Member {
	scale, checkable := toMillimetres(t.LengthUnit())
	if !strings.EqualFold(t.ForceUnit(), "kN") {
		checkable = false
	}

	rows := make([]Member, len(t.Bars))
	for b := range t.Bars {
		bar := &t.Bars[b]
		m := Member{
			Bar:    b,
			Label:  bar.Label(),
			Start:  bar.Start,
			End:    bar.End,
			Length: t.Length(b),
			Force:  res.Forces[b],
		}
		if res.Resolved[b] {
			m.State = Classify(m.Force, tol)
			if checkable && bar.HasSection() {
				check := nscp.CheckAxial(m.Force, nscp.Member{
					Area:   bar.Area,
					Radius: bar.Radius,
					Fy:     bar.Fy,
					E:      bar.E,
					K:      bar.K,
					Length: m.Length * scale,
				})
				m.Check = &check
			}
		}
		rows[b] = m
	}
	return rows
}

// toMillimetres returns the factor from a length unit to mm. Member checks
// are skipped for units it does not know.
func toMillimetres(unit string) (float64, bool) {
	switch strings.ToLower(unit) {
	case "m":
		return 1000, true
	case "cm":
		return 10, true
	case "mm":
		return 1, true
	}
	return 0, false
}

// Count returns the number of members in each state
func Count(ms []Member) map[State]int {
	out := make(map[State]int)
	for _, m := range ms {
		out[m.State]++
	}
	return out
}

// Overstressed returns the members whose capacity check fails
func Overstressed(ms []Member) []Member {
	var out []Member
	for _, m := range ms {
		if m.Check != nil && !m.Check.IsAdequate {
			out = append(out, m)
		}
	}
	return out
}
