package models

// PrinterState is the coarse state reported by PrusaLink.
type PrinterState string

const (
	StateIdle      PrinterState = "IDLE"
	StateBusy      PrinterState = "BUSY"
	StatePrinting  PrinterState = "PRINTING"
	StatePaused    PrinterState = "PAUSED"
	StateFinished  PrinterState = "FINISHED"
	StateStopped   PrinterState = "STOPPED"
	StateError     PrinterState = "ERROR"
	StateAttention PrinterState = "ATTENTION"
	StateReady     PrinterState = "READY"

	// stateAttentionLegacy is how older PrusaLink API descriptions spell ATTENTION.
	stateAttentionLegacy PrinterState = "ATTTENTION"
)

// Known reports whether s is one of the states PrusaLink documents.
func (s PrinterState) Known() bool {
	switch s {
	case StateIdle, StateBusy, StatePrinting, StatePaused, StateFinished,
		StateStopped, StateError, StateAttention, StateReady, stateAttentionLegacy:
		return true
	}
	return false
}

// ComponentStatus is the {ok, message} pair PrusaLink attaches to the printer and Connect links.
type ComponentStatus struct {
	OK      *bool  `json:"ok,omitempty"`
	Message string `json:"message,omitempty"`
}

// PrinterStatus is the "printer" object of GET /api/v1/status.
// Temperatures are pointers because PrusaLink omits them when unknown.
type PrinterStatus struct {
	State        PrinterState `json:"state"`
	TempNozzle   *float64     `json:"temp_nozzle,omitempty"`   // °C
	TargetNozzle *float64     `json:"target_nozzle,omitempty"` // °C
	TempBed      *float64     `json:"temp_bed,omitempty"`      // °C
	TargetBed    *float64     `json:"target_bed,omitempty"`    // °C

	// Axis positions are only reported while the printer is not moving.
	AxisX         *float64         `json:"axis_x,omitempty"`
	AxisY         *float64         `json:"axis_y,omitempty"`
	AxisZ         *float64         `json:"axis_z,omitempty"`
	Flow          *float64         `json:"flow,omitempty"`
	Speed         *float64         `json:"speed,omitempty"`
	FanHotend     *float64         `json:"fan_hotend,omitempty"`
	FanPrint      *float64         `json:"fan_print,omitempty"`
	StatusPrinter *ComponentStatus `json:"status_printer,omitempty"`
	StatusConnect *ComponentStatus `json:"status_connect,omitempty"`
}

// StatusResponse is the envelope returned by GET /api/v1/status.
type StatusResponse struct {
	Printer PrinterStatus `json:"printer"`
}

// PrinterInfo is the subset of GET /api/v1/info the bridge cares about.
type PrinterInfo struct {
	Name             string   `json:"name,omitempty"`
	Location         string   `json:"location,omitempty"`
	Serial           string   `json:"serial,omitempty"`
	Hostname         string   `json:"hostname,omitempty"`
	Port             string   `json:"port,omitempty"`
	MMU              *bool    `json:"mmu,omitempty"`
	FarmMode         *bool    `json:"farm_mode,omitempty"`
	NozzleDiameter   *float64 `json:"nozzle_diameter,omitempty"`
	MinExtrusionTemp *float64 `json:"min_extrusion_temp,omitempty"`
	SDReady          *bool    `json:"sd_ready,omitempty"`
}
