package services

import "errors"

var (
	ErrNotFound     = errors.New("not found")
	ErrForbidden    = errors.New("forbidden")
	ErrSelfFavorite = errors.New("cannot favorite yourself")
	ErrInvalidKind  = errors.New("invalid favorite type")
)
