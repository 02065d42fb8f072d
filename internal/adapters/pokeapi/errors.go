package pokeapi

import "errors"

// Sentinel kinds for upstream errors.
var (
	ErrFetch          = errors.New("upstream fetch failed")
	ErrStatus         = errors.New("upstream returned non-success status")
	ErrDecode         = errors.New("upstream body is not valid JSON")
	ErrInvalidPayload = errors.New("invalid upstream payload")
)
