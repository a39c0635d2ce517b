package progress

import "errors"

// Error kinds returned by the progress core. Controllers map these to
// HTTP statuses; nothing here is fatal to the process.
var (
	ErrNotFound     = errors.New("not found")
	ErrInvalidInput = errors.New("invalid input")
	ErrConflict     = errors.New("conflict")
)
