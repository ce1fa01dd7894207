package service

import (
	"context"
	"errors"
	"fmt"
	"math"

	"prusa_thermal/internal/models"
)

// StatusFetcher returns the current printer status or a classified failure.
type StatusFetcher interface {
	GetStatus(ctx context.Context) (models.PrinterStatus, error)
}

// Characteristics receives the outcome of a read. Implementations belong to the
// host side; the evaluator only ever writes to them.
type Characteristics interface {
	SetActive(active bool)
	SetTampered(tampered bool)
	ReportValue(value float64)
	ReportFailure(kind models.ErrorKind)
}

// StateEvaluator turns a printer status into a single equilibrium temperature.
type StateEvaluator struct {
	client StatusFetcher
	cfg    models.DeviceConfig
}

func NewStateEvaluator(client StatusFetcher, cfg models.DeviceConfig) *StateEvaluator {
	return &StateEvaluator{client: client, cfg: cfg}
}

var errIncompleteTemps = fmt.Errorf("%w: status is missing nozzle or bed temperature", models.ErrCommunicationFailure)

// Read performs one poll.
//
// Every failure leaves active=false on ch before it is returned. Tampered is
// only written once the status could be evaluated.
func (e *StateEvaluator) Read(ctx context.Context, ch Characteristics) (float64, error) {
	status, err := e.client.GetStatus(ctx)
	if err != nil {
		return 0, fail(ch, err)
	}

	reading, err := Derive(status, e.cfg.MaxDelta)
	if err != nil {
		return 0, fail(ch, err)
	}

	ch.SetActive(reading.Active)
	ch.SetTampered(reading.Tampered)

	if !reading.Active {
		return 0, fail(ch, fmt.Errorf("%w: printer is heating or nozzle/bed not settled", models.ErrResourceUnavailable))
	}

	ch.ReportValue(reading.Value)
	return reading.Value, nil
}

// Derive validates status and computes the reading. It has no side effects.
//
// A zero or missing temperature is treated as absent data. A zero target means
// "not heating", same as a missing one.
func Derive(status models.PrinterStatus, maxDelta float64) (models.DerivedReading, error) {
	if !truthy(status.TempNozzle) || !truthy(status.TempBed) {
		return models.DerivedReading{}, errIncompleteTemps
	}
	nozzle, bed := *status.TempNozzle, *status.TempBed

	heating := truthy(status.TargetNozzle) || truthy(status.TargetBed)
	settled := math.Abs(nozzle-bed) < maxDelta
	active := !heating && settled

	return models.DerivedReading{
		Value:    (nozzle + bed) / 2,
		Active:   active,
		Tampered: !active,
	}, nil
}

// fail forces active=false, reports the failure kind and returns err wrapped
// in its sentinel.
func fail(ch Characteristics, err error) error {
	kind := models.KindOf(err)
	ch.SetActive(false)
	ch.ReportFailure(kind)
	if sentinel := kind.Err(); !errors.Is(err, sentinel) {
		return fmt.Errorf("%w: %v", sentinel, err)
	}
	return err
}

func truthy(v *float64) bool {
	return v != nil && *v != 0 && !math.IsNaN(*v)
}
