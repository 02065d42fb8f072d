package snapshot

import "errors"

// Sentinel kinds for snapshot errors.
var (
	ErrLoad = errors.New("snapshot load failed")
	ErrSave = errors.New("snapshot save failed")
)
