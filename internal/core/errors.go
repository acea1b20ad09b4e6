package core

import "errors"

var (
	ErrNotFound   = errors.New("not found")
	ErrConflict   = errors.New("conflict")
	ErrValidation = errors.New("validation error")
)

// Rule codes carried over from the host's ERRUTIL error table. Business-rule
// outcomes are returned as data (RuleViolation), never as Go errors.
const (
	CodeNotCovered     = "BUS001"
	CodeWaitingPeriod  = "BUS002"
	CodeExceedsLimit   = "BUS003"
	CodeBelowThreshold = "BUS006"
)

// RuleViolation is one itemized business-rule failure or warning.
type RuleViolation struct {
	Code    string `json:"code"`
	Field   string `json:"field"`
	Message string `json:"message"`
}
