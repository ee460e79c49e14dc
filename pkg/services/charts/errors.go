package charts

import "errors"

var (
	ErrNotFound     = errors.New("not found")
	ErrForbidden    = errors.New("owned by another user")
	ErrFolderInUse  = errors.New("referenced by saved charts")
	ErrInvalidInput = errors.New("invalid input")
)
