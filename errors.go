package roboarm

import (
	"fmt"

	"github.com/pkg/errors"
)

var (
	// ErrUnreachablePose is returned when the wrist target lies outside the shell the
	// upper arm and forearm can span.
	ErrUnreachablePose = errors.New("pose is unreachable")
	// ErrDegenerateOrientation is returned for a zero-length orientation vector.
	ErrDegenerateOrientation = errors.New("orientation has zero length")
	// ErrNonFiniteInput is returned when a pose or grip contains NaN or Inf.
	ErrNonFiniteInput = errors.New("input is not finite")
)

// UnreachableError reports a law-of-cosines argument that fell outside [-1, 1]. The
// solver clamps the argument and still returns its best-effort joints alongside it.
type UnreachableError struct {
	// Distance from the shoulder pivot to the rectified wrist target.
	Distance float64
	MinReach float64
	MaxReach float64
	// Argument is the first out-of-domain arccosine argument encountered.
	Argument float64
}

func (e *UnreachableError) Error() string {
	return fmt.Sprintf("%v: wrist distance %.3f outside reach [%.3f, %.3f] (acos argument %.4f)",
		ErrUnreachablePose, e.Distance, e.MinReach, e.MaxReach, e.Argument)
}

// Unwrap lets errors.Is match ErrUnreachablePose.
func (e *UnreachableError) Unwrap() error {
	return ErrUnreachablePose
}
