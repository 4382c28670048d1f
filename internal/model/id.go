package model

import "github.com/google/uuid"

// IDFunc generates entity identifiers
type IDFunc func() string

// NewID returns a random UUID string
func NewID() string {
	return uuid.New().String()
}

// ShortID returns the first 8 characters of an id for display
func ShortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
