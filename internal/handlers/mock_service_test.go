package handlers

import (
	"context"
	"net/http"
	"time"

	"prusa_thermal/internal/logger"
	"prusa_thermal/internal/models"
	"prusa_thermal/internal/service"

	"github.com/gin-gonic/gin"
)

// ---- Service Mocks ----

type mockAuth struct {
	signUpID      int
	signUpErr     error
	genTokenToken string
	genTokenErr   error
	parseID       int
	parseErr      error

	lastSignUpUsername string
	lastSignUpPassword string
	lastGenUsername    string
	lastGenPassword    string
	lastParseToken     string
}

func (m *mockAuth) SignUp(ctx context.Context, username, password string) (int, error) {
	m.lastSignUpUsername = username
	m.lastSignUpPassword = password
	return m.signUpID, m.signUpErr
}
func (m *mockAuth) GenerateToken(ctx context.Context, username, password string) (string, error) {
	m.lastGenUsername = username
	m.lastGenPassword = password
	return m.genTokenToken, m.genTokenErr
}
func (m *mockAuth) ParseToken(token string) (int, error) {
	m.lastParseToken = token
	return m.parseID, m.parseErr
}

type mockSensor struct {
	value    float64
	readErr  error
	readCall int

	state    models.AccessoryState
	stateErr error

	info    models.AccessoryInformation
	infoErr error
}

func (m *mockSensor) CurrentTemperature(ctx context.Context) (float64, error) {
	m.readCall++
	return m.value, m.readErr
}

func (m *mockSensor) GetState(ctx context.Context) (models.AccessoryState, error) {
	return m.state, m.stateErr
}

func (m *mockSensor) Information(ctx context.Context) (models.AccessoryInformation, error) {
	return m.info, m.infoErr
}

type mockEventLog struct {
	resp     []models.AccessoryEvent
	err      error
	calls    int
	lastFrom time.Time
	lastTo   time.Time
	lastType string
}

func (m *mockEventLog) List(ctx context.Context, f service.LogFilter) ([]models.AccessoryEvent, error) {
	m.calls++
	m.lastFrom = f.From
	m.lastTo = f.To
	m.lastType = f.Type
	return m.resp, m.err
}

// ---- Shared Test Helpers ----

func newTestRouter(s *service.Service) *gin.Engine {
	h := NewHandler(s, logger.Nop())
	gin.SetMode(gin.TestMode)
	return h.InitRoutes()
}

func authHeader(token string) http.Header {
	h := http.Header{}
	if token != "" {
		h.Set("Authorization", "Bearer "+token)
	}
	return h
}

func withAuth(req *http.Request, token string) *http.Request {
	for k, vv := range authHeader(token) {
		for _, v := range vv {
			req.Header.Add(k, v)
		}
	}
	return req
}
