package service

import (
	"context"
	"time"

	"prusa_thermal/internal/logger"
	"prusa_thermal/internal/models"
	"prusa_thermal/internal/repository"
)

// Authorization manages operator accounts and bearer tokens for the API.
type Authorization interface {
	SignUp(ctx context.Context, username, password string) (int, error)
	GenerateToken(ctx context.Context, username, password string) (string, error)
	ParseToken(accessToken string) (int, error)
}

// Sensor is the temperature sensor as the host sees it.
type Sensor interface {
	// CurrentTemperature is the host's zero-argument read. Errors wrap
	// models.ErrCommunicationFailure, models.ErrUnauthorized or models.ErrResourceUnavailable.
	CurrentTemperature(ctx context.Context) (float64, error)
	GetState(ctx context.Context) (models.AccessoryState, error)
	Information(ctx context.Context) (models.AccessoryInformation, error)
}

// EventLog exposes the accessory transition log with filtering.
type EventLog interface {
	List(ctx context.Context, f LogFilter) ([]models.AccessoryEvent, error)
}

// Poller drives the sensor on the host's schedule.
// Stop via context cancellation in main() for graceful shutdown.
type Poller interface {
	Run(ctx context.Context, interval time.Duration)
}

// Device is the printer API the services talk to.
type Device interface {
	StatusFetcher
	InfoFetcher
}

// Service aggregates all sub-services.
type Service struct {
	Sensor
	EventLog
	Poller
	Authorization
}

// NewService wires the repository layer and the printer client into concrete services.
func NewService(repos *repository.Repository, device Device, cfg models.DeviceConfig, signingKey string, log *logger.Logger) *Service {
	sensor := NewSensorService(NewStateEvaluator(device, cfg), device, repos.StateRepo, repos.EventRepo, log)
	return &Service{
		Sensor:        sensor,
		EventLog:      NewEventLogService(repos.EventRepo),
		Poller:        NewPollerService(sensor, log),
		Authorization: NewOperatorAuth(repos.Operators, signingKey),
	}
}
