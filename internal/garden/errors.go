package garden

import "errors"

// Errors returned by Economy operations. Callers match them with errors.Is;
// returned errors usually wrap one of these with detail.
var (
	ErrInsufficientFunds    = errors.New("insufficient funds")
	ErrLockedByPrerequisite = errors.New("locked by prerequisite")
	ErrNotFound             = errors.New("not found")
	ErrInvalidFusion        = errors.New("invalid fusion")
	ErrNoUpgradePath        = errors.New("no upgrade path")
	ErrValidation           = errors.New("validation error")
	ErrPlotLimitReached     = errors.New("plot limit reached")
)
