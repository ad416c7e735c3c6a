package practice

import "errors"

// Sentinel errors returned by the Manager. Callers match them with errors.Is.
var (
	ErrEmptyBank         = errors.New("no questions in the bank")
	ErrEmptyCategory     = errors.New("no questions available in category")
	ErrInvalidIndex      = errors.New("invalid index")
	ErrNoActiveQuestion  = errors.New("no question has been asked")
	ErrOracleUnavailable = errors.New("semantic comparison unavailable: no similarity oracle configured")
	ErrUnsupportedMethod = errors.New("unsupported comparison method")
)
