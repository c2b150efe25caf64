package utils

import (
	"github.com/google/uuid"
)

// NewTokenID generates the unique id (jti) stamped into each access token.
func NewTokenID() string {
	return uuid.NewString()
}

// NewRequestID generates a correlation id for requests that arrive without one.
func NewRequestID() string {
	return uuid.NewString()
}
