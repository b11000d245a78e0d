package services

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

const (
	IDStrategyClock = "clock"
	IDStrategyUUID  = "uuid"

	idPrefix = "TX-"
)

// IDGenerator supplies ids for expenses recorded without one. Ids are not
// checked for uniqueness on append.
type IDGenerator interface {
	NewID() string
}

// ClockIDs derives ids from the wall clock as TX-HHMMSS. Two calls within the
// same second return the same id.
type ClockIDs struct {
	Now func() time.Time
}

func (g ClockIDs) NewID() string {
	now := time.Now
	if g.Now != nil {
		now = g.Now
	}
	return idPrefix + now().Format("150405")
}

// UUIDIDs returns TX- followed by a random UUID.
type UUIDIDs struct{}

func (UUIDIDs) NewID() string {
	return idPrefix + uuid.NewString()
}

// NewIDGenerator maps a configured strategy name to a generator.
func NewIDGenerator(strategy string, now func() time.Time) (IDGenerator, error) {
	switch strategy {
	case "", IDStrategyClock:
		return ClockIDs{Now: now}, nil
	case IDStrategyUUID:
		return UUIDIDs{}, nil
	default:
		return nil, fmt.Errorf("unknown id strategy %q", strategy)
	}
}
