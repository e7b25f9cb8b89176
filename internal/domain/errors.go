package domain

import "errors"

var (
	ErrStorageUnavailable = errors.New("record storage unavailable")
	ErrMalformedRecord    = errors.New("malformed match record")
	ErrInvalidRecord      = errors.New("invalid match record")
	ErrPlayerNotFound     = errors.New("player not found")
	ErrPlayerExists       = errors.New("player already exists")
)
