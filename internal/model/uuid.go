package model

import "github.com/google/uuid"

// GenerateID creates a new time-ordered UUID (v7) string.
func GenerateID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}
