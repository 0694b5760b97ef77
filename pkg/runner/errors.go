package runner

import "errors"

// ErrInvalidPlan is returned when the requested inputs and outputs cannot
// form a safe render plan.
var ErrInvalidPlan = errors.New("invalid render plan")
