package utils

import "github.com/google/uuid"

// NewID returns a random identifier for records, request ids and tokens.
func NewID() string {
	return uuid.NewString()
}
