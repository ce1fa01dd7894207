package handlers

import (
	"errors"
	"net/http"

	"prusa_thermal/internal/models"

	"github.com/gin-gonic/gin"
)

const (
	statusOK = "ok"

	errGetState = "failed to load state"
)

// TemperatureResponse is the body of a successful temperature read.
type TemperatureResponse struct {
	// Mean of nozzle and bed temperature in °C
	Value float64 `json:"value" example:"61.5"`
}

// ReadErrorResponse describes why a temperature read produced no value.
type ReadErrorResponse struct {
	Error     string `json:"error" example:"resource unavailable"`
	Kind      string `json:"kind" example:"RESOURCE_UNAVAILABLE"`
	HAPStatus int    `json:"hap_status" example:"-70403"`
}

// Centralized error logging and response.
func (h *Handler) logAndJSONError(c *gin.Context, httpCode int, userMsg, logKey string, err error, kv ...interface{}) {
	if h.log != nil && err != nil {
		fields := append([]interface{}{"err", err}, kv...)
		h.log.Errorw(logKey, fields...)
	}
	c.JSON(httpCode, gin.H{"error": userMsg})
}

// readErrorStatus maps a failed read to an HTTP status.
// A device-side 401 is reported as 424 so clients can tell it from their own expired token.
func readErrorStatus(kind models.ErrorKind) int {
	switch kind {
	case models.KindUnauthorized:
		return http.StatusFailedDependency
	case models.KindResourceUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusBadGateway
	}
}

// @Summary      Health check
// @Tags         system
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /health [get]
func (h *Handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": statusOK,
	})
}

// @Summary      Read temperature
// @Description  Polls the printer once. 503 while the printer is idle or heating, 424 when the printer rejects the API key, 502 on any other failure.
// @Tags         accessory
// @Produce      json
// @Success      200  {object}  TemperatureResponse
// @Failure      401  {object}  map[string]string
// @Failure      424  {object}  ReadErrorResponse
// @Failure      502  {object}  ReadErrorResponse
// @Failure      503  {object}  ReadErrorResponse
// @Router       /api/v1/accessory/temperature [get]
// @Security     BearerAuth
func (h *Handler) getTemperature(c *gin.Context) {
	value, err := h.services.Sensor.CurrentTemperature(c.Request.Context())
	if err == nil {
		c.JSON(http.StatusOK, TemperatureResponse{Value: value})
		return
	}

	kind := models.KindOf(err)
	if h.log != nil {
		if kind == models.KindResourceUnavailable {
			h.log.Debugw("accessory_read_unavailable", "err", err)
		} else {
			h.log.Warnw("accessory_read_failed", "err", err, "kind", kind)
		}
	}
	if kind == models.KindResourceUnavailable {
		c.Header("Retry-After", h.retryAfter)
	}
	c.JSON(readErrorStatus(kind), ReadErrorResponse{
		Error:     kindMessage(kind, err),
		Kind:      string(kind),
		HAPStatus: kind.HAPStatus(),
	})
}

// kindMessage returns the sentinel text, keeping printer response bodies out of API replies.
func kindMessage(kind models.ErrorKind, err error) string {
	if sentinel := kind.Err(); sentinel != nil && errors.Is(err, sentinel) {
		return sentinel.Error()
	}
	return models.ErrCommunicationFailure.Error()
}

// @Summary      Get accessory state
// @Description  Last published snapshot. Does not contact the printer.
// @Tags         accessory
// @Produce      json
// @Success      200  {object}  models.AccessoryState
// @Failure      401  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /api/v1/accessory/state [get]
// @Security     BearerAuth
func (h *Handler) getState(c *gin.Context) {
	st, err := h.services.Sensor.GetState(c.Request.Context())
	if err != nil {
		h.logAndJSONError(c, http.StatusInternalServerError, errGetState, "accessory_get_state_failed", err)
		return
	}
	c.JSON(http.StatusOK, st)
}

// @Summary      Get accessory information
// @Description  Serial number is omitted when the printer cannot be reached.
// @Tags         accessory
// @Produce      json
// @Success      200  {object}  models.AccessoryInformation
// @Failure      401  {object}  map[string]string
// @Router       /api/v1/accessory/info [get]
// @Security     BearerAuth
func (h *Handler) getInfo(c *gin.Context) {
	info, err := h.services.Sensor.Information(c.Request.Context())
	if err != nil && h.log != nil {
		h.log.Infow("accessory_info_partial", "err", err)
	}
	c.JSON(http.StatusOK, info)
}
