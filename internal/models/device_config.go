package models

import "time"

// DeviceConfig is loaded once at startup and passed by value afterwards.
type DeviceConfig struct {
	Address  string        // host, host:port or base URL of the printer
	APIKey   string        // sent as X-Api-Key
	MaxDelta float64       // °C; nozzle/bed spread below which the printer counts as settled
	Timeout  time.Duration // per-request bound for the status call
}
