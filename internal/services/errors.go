package services

import "errors"

// Sentinel errors handlers map onto HTTP statuses.
var (
	ErrNotFound      = errors.New("record not found")
	ErrAlreadyExists = errors.New("record already exists")
	ErrNoFields      = errors.New("no fields to update")
)
