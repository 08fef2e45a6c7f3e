package apperrors

import "errors"

var (
	ErrInvalidInput       = errors.New("invalid input")
	ErrNotFound           = errors.New("not found")
	ErrCatalogUnavailable = errors.New("catalog unavailable")
	ErrLevelOutOfRange    = errors.New("level out of schedule range")
	ErrMastered           = errors.New("problem already mastered")
	ErrSyncInProgress     = errors.New("sync already in progress")
)
