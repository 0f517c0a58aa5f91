package kinematics

import "errors"

// Sentinel kinds for kinematics errors.
var (
	ErrUnknownVariable = errors.New("unknown kinematic variable")
)
