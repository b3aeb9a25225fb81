package marley

import "errors"

// Error taxonomy for event generation. Physics violations are never
// recovered. Kinematic infeasibilities abort the requested event but may be
// retried by the caller with a different reaction or energy. Configuration
// mismatches abort event creation; cross-section queries handle them by
// returning zero instead. Numerical degeneracies (NaN partial cross
// sections) are not errors at all: they are floored to zero with a logged
// diagnostic.
var (
	ErrPhysics    = errors.New("marley: physics violation")
	ErrKinematics = errors.New("marley: kinematically infeasible")
	ErrConfig     = errors.New("marley: configuration mismatch")
)
