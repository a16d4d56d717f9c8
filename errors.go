package elevroute

import (
	"errors"
	"fmt"
)

// Sentinel errors per spec.md §7. Lower layers return these (optionally
// wrapped with %w for context); LaracPlanner and the Query boundary decide
// whether to translate or propagate them.
var (
	// ErrInputMissing: the PBF or artifact file does not exist. Fatal at
	// startup.
	ErrInputMissing = errors.New("elevroute: input file missing")

	// ErrMalformedInput: PBF decoding failed or the artifact failed to
	// deserialize. Fatal.
	ErrMalformedInput = errors.New("elevroute: malformed input")

	// ErrTileUnavailable: an SRTM fetch failed or the tile has no data for
	// a coordinate. Locally recovered via carry-forward; only fatal when
	// the very first node in an ingest has no resolvable elevation.
	ErrTileUnavailable = errors.New("elevroute: srtm tile unavailable")

	// ErrInfeasible: LARAC determined no path fits within the elevation
	// budget. Wrapped by *InfeasibleError, which carries the minimum
	// achievable rise.
	ErrInfeasible = errors.New("elevroute: no path fits the elevation budget")

	// ErrUnreachable: no admissible node exists near a query endpoint under
	// the chosen travel mode. Returned by SpatialLocator.Locate, and
	// propagated (wrapped) by Query. When both endpoints are located but no
	// path joins them, LaracPlanner and Query return an empty result list
	// instead of this error.
	ErrUnreachable = errors.New("elevroute: no path between start and end")
)

// InfeasibleError wraps ErrInfeasible with the minimum achievable
// elevation rise, so callers can report it to the user.
type InfeasibleError struct {
	MinRise float64
}

func (e *InfeasibleError) Error() string {
	return fmt.Sprintf("elevroute: no path fits the elevation budget, minimum achievable rise is %.1fm", e.MinRise)
}

func (e *InfeasibleError) Unwrap() error {
	return ErrInfeasible
}

func errMalformedf(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{ErrMalformedInput}, args...)...)
}

// IsMalformed reports whether err (or something it wraps) is
// ErrMalformedInput, the distinction a CLI's exit code depends on (spec.md
// §6: exit 1 on missing input, 2 on malformed input).
func IsMalformed(err error) bool {
	return errors.Is(err, ErrMalformedInput)
}

// IsInputMissing reports whether err (or something it wraps) is
// ErrInputMissing.
func IsInputMissing(err error) bool {
	return errors.Is(err, ErrInputMissing)
}
