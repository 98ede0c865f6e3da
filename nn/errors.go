package nn

import "github.com/pkg/errors"

// Construction-time failures. Both abort network creation; nothing is retried.
// Numeric divergence during training is never raised as an error, it shows up
// as NaN/Inf values in the loss history.
var (
	ErrInvalidTopology   = errors.New("invalid network topology")
	ErrUnknownActivation = errors.New("unknown activation")
)
