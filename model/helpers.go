package model

import (
	"time"

	"github.com/google/uuid"
)

// Timestamp returns the current time in milliseconds since the epoch.
func Timestamp() int64 {
	return time.Now().UnixNano() / int64(time.Millisecond)
}

// NewID produces a new unique identifier.
func NewID() string {
	return uuid.NewString()
}
