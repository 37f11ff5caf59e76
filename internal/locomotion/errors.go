package locomotion

import "errors"

// Spawn errors. They are fatal: a character is never built without its
// collaborators or with out-of-range tuning.
var (
	ErrMissingBody   = errors.New("locomotion: body is required")
	ErrMissingWorld  = errors.New("locomotion: world is required")
	ErrMissingCamera = errors.New("locomotion: camera is required")
	ErrInvalidParams = errors.New("locomotion: invalid params")
)
