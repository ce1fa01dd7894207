package models

import "time"

// DerivedReading is computed fresh on every poll.
type DerivedReading struct {
	Value    float64 // mean of nozzle and bed temperature
	Active   bool
	Tampered bool
}

// AccessoryState is the last-write-wins snapshot of what the host sees.
type AccessoryState struct {
	ID          int       `json:"id"`
	Active      bool      `json:"active"`
	Tampered    bool      `json:"tampered"`
	Temperature *float64  `json:"temperature,omitempty"` // °C, last reported value
	Failure     ErrorKind `json:"failure,omitempty"`     // kind of the last failed poll
	UpdatedAt   time.Time `json:"updated_at"`
}

// AccessoryEvent is a single entry of the accessory event log.
type AccessoryEvent struct {
	EventID     string    `json:"event_id"`
	OccurredAt  time.Time `json:"occurred_at"`
	Type        string    `json:"type"`        // ACTIVE | INACTIVE | FAILURE
	Description string    `json:"description"` // human-readable
	Metadata    any       `json:"metadata,omitempty"`
}

// AccessoryInformation mirrors the host's accessory-information service.
type AccessoryInformation struct {
	Manufacturer string `json:"manufacturer"`
	Model        string `json:"model"`
	Name         string `json:"name"`
	SerialNumber string `json:"serial_number,omitempty"`
}
