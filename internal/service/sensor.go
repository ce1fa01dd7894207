package service

import (
	"context"
	"sync"
	"time"

	"prusa_thermal/internal/logger"
	"prusa_thermal/internal/models"
	"prusa_thermal/internal/repository"

	"github.com/google/uuid"
)

// Accessory information reported to the host.
const (
	accessoryManufacturer = "Prusa Research"
	accessoryModel        = "Prusa MK4"
	accessoryName         = "Temperature Sensor"

	accessoryStateRowID = 1
)

// Event types written to the accessory log.
const (
	EventActive   = "ACTIVE"
	EventInactive = "INACTIVE"
	EventFailure  = "FAILURE"
)

// InfoFetcher returns static printer information.
type InfoFetcher interface {
	GetInfo(ctx context.Context) (models.PrinterInfo, error)
}

// SensorService is the host-facing temperature sensor.
type SensorService struct {
	// mu serializes polls so each one loads the snapshot the previous one saved.
	mu sync.Mutex

	evaluator *StateEvaluator
	info      InfoFetcher
	stateRepo repository.StateRepo
	eventRepo repository.EventRepo
	log       *logger.Logger
	now       func() time.Time
}

func NewSensorService(
	evaluator *StateEvaluator,
	info InfoFetcher,
	stateRepo repository.StateRepo,
	eventRepo repository.EventRepo,
	log *logger.Logger,
) *SensorService {
	return &SensorService{
		evaluator: evaluator,
		info:      info,
		stateRepo: stateRepo,
		eventRepo: eventRepo,
		log:       log,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// CurrentTemperature runs one poll and publishes the resulting flags.
// The returned error wraps one of the models sentinel errors.
func (s *SensorService) CurrentTemperature(ctx context.Context) (float64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	prev, err := s.GetState(ctx)
	if err != nil {
		s.warn("accessory_state_load_failed", "err", err)
		prev = s.baselineState()
	}

	rec := &stateRecorder{state: prev}
	value, readErr := s.evaluator.Read(ctx, rec)

	next := rec.state
	next.ID = accessoryStateRowID
	next.UpdatedAt = s.now()

	// Storage trouble is logged; it must never change what the host is told.
	if err := s.stateRepo.Save(ctx, next); err != nil {
		s.warn("accessory_state_save_failed", "err", err)
	}
	s.recordTransitions(ctx, prev, next)

	return value, readErr
}

// GetState returns the last published snapshot, or a baseline before the first poll.
func (s *SensorService) GetState(ctx context.Context) (models.AccessoryState, error) {
	st, err := s.stateRepo.Load(ctx)
	if err != nil {
		return models.AccessoryState{}, err
	}
	if st.ID == 0 {
		return s.baselineState(), nil
	}
	st.UpdatedAt = toUTC(st.UpdatedAt)
	return st, nil
}

// Information returns the accessory-information service contents.
// The serial number is best-effort; the base fields are returned alongside any error.
func (s *SensorService) Information(ctx context.Context) (models.AccessoryInformation, error) {
	out := models.AccessoryInformation{
		Manufacturer: accessoryManufacturer,
		Model:        accessoryModel,
		Name:         accessoryName,
	}
	info, err := s.info.GetInfo(ctx)
	if err != nil {
		return out, err
	}
	out.SerialNumber = info.Serial
	return out, nil
}

func (s *SensorService) recordTransitions(ctx context.Context, prev, next models.AccessoryState) {
	var events []models.AccessoryEvent

	if prev.Active != next.Active {
		ev := models.AccessoryEvent{Type: EventInactive, Description: "Sensor became inactive"}
		if next.Active {
			ev = models.AccessoryEvent{Type: EventActive, Description: "Sensor became active"}
		}
		events = append(events, ev)
	}

	if next.Failure != prev.Failure && next.Failure != models.KindNone &&
		next.Failure != models.KindResourceUnavailable {
		events = append(events, models.AccessoryEvent{
			Type:        EventFailure,
			Description: "Printer read failed: " + string(next.Failure),
			Metadata: map[string]any{
				"kind":       next.Failure,
				"hap_status": next.Failure.HAPStatus(),
			},
		})
	}

	for _, ev := range events {
		ev.EventID = uuid.NewString()
		ev.OccurredAt = next.UpdatedAt
		if err := s.eventRepo.Append(ctx, ev); err != nil {
			s.warn("accessory_event_append_failed", "err", err, "type", ev.Type)
		}
	}
}

// baselineState is what the host sees before any poll completed.
func (s *SensorService) baselineState() models.AccessoryState {
	return models.AccessoryState{
		ID:        accessoryStateRowID,
		Active:    false,
		Tampered:  false,
		UpdatedAt: s.now(),
	}
}

func (s *SensorService) warn(msg string, kv ...interface{}) {
	if s.log != nil {
		s.log.Warnw(msg, kv...)
	}
}

// stateRecorder applies characteristic writes to a snapshot.
// The last reported temperature is kept across failures, like a cached characteristic.
type stateRecorder struct {
	state models.AccessoryState
}

func (r *stateRecorder) SetActive(active bool)     { r.state.Active = active }
func (r *stateRecorder) SetTampered(tampered bool) { r.state.Tampered = tampered }

func (r *stateRecorder) ReportValue(value float64) {
	v := value
	r.state.Temperature = &v
	r.state.Failure = models.KindNone
}

func (r *stateRecorder) ReportFailure(kind models.ErrorKind) {
	r.state.Failure = kind
}

// toUTC normalizes non-zero time to UTC, preserving zero values.
func toUTC(t time.Time) time.Time {
	if t.IsZero() {
		return t
	}
	return t.UTC()
}
