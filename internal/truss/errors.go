package truss

import "errors"

var (
	// ErrUnstable is returned when b + r < 2j
	ErrUnstable = errors.New("truss is unstable")

	// ErrIndeterminate is returned when b + r > 2j
	ErrIndeterminate = errors.New("truss is statically indeterminate")

	// ErrMomentSupport is returned when a node declares a fixed support
	ErrMomentSupport = errors.New("truss cannot support a moment reaction")

	// ErrUnsupportedSupports is returned when the supports are not exactly
	// one pin and one roller
	ErrUnsupportedSupports = errors.New("reactions require exactly one pin and one roller")

	// ErrSingularSupports is returned when the roller has no lever arm about
	// the pin in its reaction direction
	ErrSingularSupports = errors.New("roller reaction has no lever arm about the pin")

	// ErrNoLoadCases is returned when a combination is applied to a truss
	// without case loads
	ErrNoLoadCases = errors.New("truss defines no load cases")
)
