package usecase

import (
	"errors"
)

// Domain error taxonomy. Services wrap these with fmt.Errorf("...: %w") and
// handlers translate them with errors.Is; storage constraint violations are
// re-mapped here and never reach a client raw.
var (
	ErrValidation         = errors.New("validation failed")
	ErrNotFound           = errors.New("not found")
	ErrForbidden          = errors.New("forbidden")
	ErrConflict           = errors.New("already taken")
	ErrDuplicateReview    = errors.New("title already reviewed by this author")
	ErrInvalidCredentials = errors.New("invalid credentials")
)
