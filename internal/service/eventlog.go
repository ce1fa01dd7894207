package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"prusa_thermal/internal/models"
	"prusa_thermal/internal/repository"
)

var (
	ErrInvalidTimeRange = errors.New("invalid time range: from must not be after to")
	ErrInvalidEventType = fmt.Errorf("event type must be one of %s, %s, %s", EventActive, EventInactive, EventFailure)
)

// EventLogService answers queries over the accessory transition log.
type EventLogService struct {
	events repository.EventRepo
}

func NewEventLogService(events repository.EventRepo) *EventLogService {
	return &EventLogService{events: events}
}

// ValidEventType reports whether t (case-insensitive) names a transition the sensor records.
// The empty string means "any type".
func ValidEventType(t string) bool {
	switch strings.ToUpper(strings.TrimSpace(t)) {
	case "", EventActive, EventInactive, EventFailure:
		return true
	}
	return false
}

// List returns the transitions matching f, oldest first. Bounds are compared in UTC.
func (s *EventLogService) List(ctx context.Context, f LogFilter) ([]models.AccessoryEvent, error) {
	if !ValidEventType(f.Type) {
		return nil, fmt.Errorf("%w: got %q", ErrInvalidEventType, f.Type)
	}
	from, to := toUTC(f.From), toUTC(f.To)
	if !from.IsZero() && !to.IsZero() && from.After(to) {
		return nil, ErrInvalidTimeRange
	}
	return s.events.List(ctx, from, to, strings.ToUpper(strings.TrimSpace(f.Type)))
}
