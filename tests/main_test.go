package tests

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/Sapatchanon-Kh/CarTentManagement/internal/app"
	"github.com/Sapatchanon-Kh/CarTentManagement/internal/auth"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

type testServer struct {
	router *gin.Engine
	jwt    *auth.JWTManager
}

// newTestServer builds a fully wired application on in-memory repositories,
// so every test starts from an empty tent.
func newTestServer(t *testing.T) *testServer {
	t.Helper()

	container, err := app.NewContainer(app.Config{
		JWTSecret:       "test-secret",
		JWTTTL:          30 * time.Minute,
		LockWaitTimeout: 2 * time.Second,
		AvailabilityTTL: time.Minute,
		SlipDir:         t.TempDir(),
		BookingRPS:      1000,
		BookingBurst:    1000,
		Logger:          zerolog.Nop(),
	})
	require.NoError(t, err, "failed to build application container")

	return &testServer{
		router: container.Router,
		jwt:    container.JWTManager,
	}
}

func (s *testServer) token(t *testing.T, subjectID, role string) string {
	t.Helper()
	token, err := s.jwt.GenerateAccessToken(subjectID, role)
	require.NoError(t, err, "failed to generate token")
	return token
}

func (s *testServer) customerToken(t *testing.T, id string) string {
	return s.token(t, id, auth.RoleCustomer)
}

func (s *testServer) employeeToken(t *testing.T, id string) string {
	return s.token(t, id, auth.RoleEmployee)
}

func (s *testServer) execute(method, path string, body any, token string) *httptest.ResponseRecorder {
	var reqBody []byte
	if body != nil {
		reqBody, _ = json.Marshal(body)
	}

	req, _ := http.NewRequest(method, path, bytes.NewBuffer(reqBody))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func (s *testServer) executeMultipart(t *testing.T, method, path string, fields map[string]string, fileField, fileName string, file io.Reader, token string) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(t, writer.WriteField(k, v))
	}
	part, err := writer.CreateFormFile(fileField, fileName)
	require.NoError(t, err)
	_, err = io.Copy(part, file)
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req, _ := http.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder, out any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), out), "failed to decode response: %s", w.Body.String())
}

// createVehicle seeds one vehicle through the API and returns its id.
func (s *testServer) createVehicle(t *testing.T) string {
	t.Helper()

	w := s.execute(http.MethodPost, "/v1/vehicles", gin.H{
		"name":  "Civic FE",
		"brand": "Honda",
		"model": "Civic",
		"year":  2023,
	}, s.employeeToken(t, "employee-seed"))
	require.Equal(t, http.StatusCreated, w.Code, "create vehicle failed: %s", w.Body.String())

	var resp struct {
		ID string `json:"id"`
	}
	decode(t, w, &resp)
	return resp.ID
}

type periodBody struct {
	ID          string  `json:"id,omitempty"`
	OpenDate    string  `json:"open_date"`
	CloseDate   string  `json:"close_date"`
	RentPrice   float64 `json:"rent_price"`
	Description string  `json:"description,omitempty"`
}

// openRentPeriods replaces the vehicle's rent periods through the API.
func (s *testServer) openRentPeriods(t *testing.T, vehicleID string, periods ...periodBody) []periodBody {
	t.Helper()

	w := s.execute(http.MethodPut, fmt.Sprintf("/v1/vehicles/%s/rent-periods", vehicleID),
		gin.H{"periods": periods}, s.employeeToken(t, "employee-seed"))
	require.Equal(t, http.StatusOK, w.Code, "put rent periods failed: %s", w.Body.String())

	var resp struct {
		Periods []periodBody `json:"periods"`
	}
	decode(t, w, &resp)
	return resp.Periods
}
