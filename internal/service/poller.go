package service

import (
	"context"
	"time"

	"prusa_thermal/internal/logger"
	"prusa_thermal/internal/models"
)

// DefaultPollInterval matches the PrusaLink poll cadence used by the bridge.
const DefaultPollInterval = 30 * time.Second

// PollerService reads the sensor on a fixed schedule, one poll at a time.
type PollerService struct {
	sensor Sensor
	log    *logger.Logger
}

// NewPollerService returns a poller reading from sensor.
func NewPollerService(sensor Sensor, log *logger.Logger) *PollerService {
	return &PollerService{sensor: sensor, log: log}
}

// Run polls immediately and then on every tick until ctx is canceled.
// Polls run on this goroutine, so a slow printer delays the next tick instead of overlapping it.
func (p *PollerService) Run(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = DefaultPollInterval
	}

	last := p.poll(ctx, models.KindNone, true)

	t := time.NewTicker(interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			last = p.poll(ctx, last, false)
		}
	}
}

// poll performs one read and logs outcome changes. It returns the failure kind of this poll.
func (p *PollerService) poll(ctx context.Context, prev models.ErrorKind, first bool) models.ErrorKind {
	value, err := p.sensor.CurrentTemperature(ctx)
	kind := models.KindOf(err)
	if p.log == nil {
		return kind
	}

	switch {
	case err == nil:
		p.log.Debugw("sensor_poll_ok", "temperature_c", value)
		if prev != models.KindNone {
			p.log.Infow("sensor_recovered", "previous", prev)
		}
	case kind != prev || first:
		p.log.Infow("sensor_poll_failed", "kind", kind, "err", err)
	default:
		p.log.Debugw("sensor_poll_failed", "kind", kind, "err", err)
	}
	return kind
}
