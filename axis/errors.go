package axis

import "errors"

// Sentinel errors for axis parsing and validation. All of these are
// configuration errors: they surface before any cell is rendered.
var (
	ErrUnknownOption = errors.New("axis: unknown axis option")
	ErrBadValue      = errors.New("axis: cannot parse axis value")
	ErrZeroStep      = errors.New("axis: range step cannot be zero")
	ErrUnknownChoice = errors.New("axis: value is not one of the allowed choices")
	ErrOutOfRange    = errors.New("axis: value out of range")
	ErrPromptSearch  = errors.New("axis: prompt S/R token not found in prompt or negative prompt")
	ErrBadSize       = errors.New("axis: size must be WIDTHxHEIGHT")
)
