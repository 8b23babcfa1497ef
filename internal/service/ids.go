package service

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

type uuidGenerator struct{}

// NewUUIDGenerator returns random 128-bit identifiers as upper-case hex
func NewUUIDGenerator() IDGenerator {
	return uuidGenerator{}
}

func (uuidGenerator) NewID() string {
	return strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", ""))
}

// UTCClock is the default Clock.
func UTCClock() time.Time {
	return time.Now().UTC()
}
