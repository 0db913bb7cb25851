package routes

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/barber-booking/internal/audit"
	"github.com/BruksfildServices01/barber-booking/internal/auth"
	"github.com/BruksfildServices01/barber-booking/internal/config"
	"github.com/BruksfildServices01/barber-booking/internal/infra/lock"
	"github.com/BruksfildServices01/barber-booking/internal/infra/memory"
	"github.com/BruksfildServices01/barber-booking/internal/middleware"
	"github.com/BruksfildServices01/barber-booking/internal/seed"
)

const adminToken = "admin-secret"

func init() {
	gin.SetMode(gin.TestMode)
}

type testApp struct {
	r     *gin.Engine
	store *memory.Store
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()

	st := memory.New()
	_, err := seed.EnsureCatalog(context.Background(), st)
	require.NoError(t, err)

	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	dispatcher := audit.NewDispatcher(audit.NewSlogSink(log), log)
	t.Cleanup(dispatcher.Close)

	cfg := &config.Config{
		AdminToken:     adminToken,
		Timezone:       "UTC",
		RateLimitRPS:   1000,
		RateLimitBurst: 1000,
	}

	r := gin.New()
	RegisterRoutes(r, cfg, Deps{
		Barbershops:  st,
		Appointments: st,
		Users:        st,
		Snapshots:    st,
		Locker:       lock.NewLocalLocker(),
		Audit:        dispatcher,
		Tokens:       auth.NewTokens("test-secret", time.Hour),
		Log:          log,
	})

	return &testApp{r: r, store: st}
}

func (a *testApp) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	a.r.ServeHTTP(w, req)
	return w
}

func (a *testApp) admin(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(middleware.AdminTokenHeader, adminToken)

	w := httptest.NewRecorder()
	a.r.ServeHTTP(w, req)
	return w
}

// signUp registers and logs in, returning the bearer token.
func (a *testApp) signUp(t *testing.T, email string) string {
	t.Helper()

	w := a.do(t, http.MethodPost, "/api/auth/register", "", map[string]string{
		"name":     "Ana",
		"email":    email,
		"password": "secret1",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = a.do(t, http.MethodPost, "/api/auth/login", "", map[string]string{
		"email":    email,
		"password": "secret1",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var out struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	require.NotEmpty(t, out.Token)
	return out.Token
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}

type errorBody struct {
	Code string `json:"error_code"`
}

type appointmentBody struct {
	ID           uint    `json:"id"`
	BarbershopID uint    `json:"barbershop_id"`
	ServiceName  string  `json:"service_name"`
	Price        float64 `json:"price"`
	Status       string  `json:"status"`
}

// ======================================================
// AUTH
// ======================================================

func TestRegisterAndLogin(t *testing.T) {
	app := newTestApp(t)
	app.signUp(t, "ana@example.com")

	w := app.do(t, http.MethodPost, "/api/auth/register", "", map[string]string{
		"name":     "Other",
		"email":    "ANA@example.com",
		"password": "secret1",
	})
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "duplicate_email", decode[errorBody](t, w).Code)

	w = app.do(t, http.MethodPost, "/api/auth/login", "", map[string]string{
		"email":    "ana@example.com",
		"password": "wrong-password",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = app.do(t, http.MethodPost, "/api/auth/register", "", map[string]string{"name": "x"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "invalid_request", decode[errorBody](t, w).Code)
}

func TestMe(t *testing.T) {
	app := newTestApp(t)
	token := app.signUp(t, "me@example.com")

	assert.Equal(t, http.StatusUnauthorized, app.do(t, http.MethodGet, "/api/me", "", nil).Code)

	w := app.do(t, http.MethodGet, "/api/me", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.NotContains(t, w.Body.String(), "password")
	assert.Contains(t, w.Body.String(), "me@example.com")

	w = app.do(t, http.MethodPatch, "/api/me", token, map[string]string{"phone": "11 99999-0000"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "11 99999-0000")

	w = app.do(t, http.MethodPut, "/api/me/password", token, map[string]string{
		"current_password": "bad-one",
		"new_password":     "another1",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = app.do(t, http.MethodPut, "/api/me/password", token, map[string]string{
		"current_password": "secret1",
		"new_password":     "another1",
	})
	assert.Equal(t, http.StatusOK, w.Code)

	w = app.do(t, http.MethodPost, "/api/auth/login", "", map[string]string{
		"email":    "me@example.com",
		"password": "another1",
	})
	assert.Equal(t, http.StatusOK, w.Code)
}

// ======================================================
// CATALOG
// ======================================================

func TestCatalog(t *testing.T) {
	app := newTestApp(t)

	w := app.do(t, http.MethodGet, "/api/barbershops", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 3, decode[struct {
		Total int `json:"total"`
	}](t, w).Total)

	w = app.do(t, http.MethodGet, "/api/barbershops?query=jo%C3%A3o", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1, decode[struct {
		Total int `json:"total"`
	}](t, w).Total)

	w = app.do(t, http.MethodGet, "/api/barbershops/2", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Bairro Alto")

	w = app.do(t, http.MethodGet, "/api/barbershops/99", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "barbershop_not_found", decode[errorBody](t, w).Code)

	w = app.do(t, http.MethodGet, "/api/barbershops/abc", "", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "invalid_id", decode[errorBody](t, w).Code)
}

// ======================================================
// BOOKING FLOW
// ======================================================

func TestBookingFlow(t *testing.T) {
	app := newTestApp(t)
	ana := app.signUp(t, "ana@example.com")
	bia := app.signUp(t, "bia@example.com")

	booking := map[string]any{
		"barbershop_id": 1,
		"service_id":    3,
		"date":          "2030-05-10",
		"time":          "10:00",
	}

	w := app.do(t, http.MethodPost, "/api/me/appointments", ana, booking)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	created := decode[struct {
		Data appointmentBody `json:"data"`
	}](t, w).Data
	assert.Equal(t, "Corte + Barba", created.ServiceName)
	assert.Equal(t, 70.0, created.Price)
	assert.Equal(t, "confirmed", created.Status)

	// the slot is taken for everybody
	w = app.do(t, http.MethodPost, "/api/me/appointments", bia, booking)
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "slot_unavailable", decode[errorBody](t, w).Code)

	w = app.do(t, http.MethodGet, "/api/barbershops/1/slots/check?date=2030-05-10&time=10:00", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"date":"2030-05-10","time":"10:00","available":false}`, w.Body.String())

	w = app.do(t, http.MethodGet, "/api/barbershops/1/slots?date=2030-05-10", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	slots := decode[struct {
		Data []struct {
			Time        string `json:"time"`
			IsAvailable bool   `json:"is_available"`
		} `json:"data"`
	}](t, w).Data
	require.Len(t, slots, 10)
	assert.Equal(t, "09:00", slots[0].Time)
	assert.True(t, slots[0].IsAvailable)
	assert.Equal(t, "10:00", slots[1].Time)
	assert.False(t, slots[1].IsAvailable)

	// another user cannot cancel it
	cancelPath := "/api/me/appointments/" + itoa(created.ID) + "/cancel"
	w = app.do(t, http.MethodPatch, cancelPath, bia, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = app.do(t, http.MethodPatch, cancelPath, ana, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"cancelled"`)

	// a cancelled slot is free again
	w = app.do(t, http.MethodPost, "/api/me/appointments", bia, booking)
	assert.Equal(t, http.StatusCreated, w.Code)

	w = app.do(t, http.MethodGet, "/api/me/appointments", ana, nil)
	require.Equal(t, http.StatusOK, w.Code)
	list := decode[struct {
		Data []struct {
			BarbershopName string `json:"barbershop_name"`
			Status         string `json:"status"`
		} `json:"data"`
	}](t, w).Data
	require.Len(t, list, 1)
	assert.Equal(t, "Barber Shop Premium", list[0].BarbershopName)
	assert.Equal(t, "cancelled", list[0].Status)

	w = app.do(t, http.MethodGet, "/api/me/stats", bia, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"confirmed":1`)
	assert.Contains(t, w.Body.String(), `"total_spent":0`)
}

func TestCreateAppointment_Rejections(t *testing.T) {
	app := newTestApp(t)
	token := app.signUp(t, "ana@example.com")

	cases := []struct {
		name   string
		body   map[string]any
		status int
		code   string
	}{
		{
			name:   "unknown barbershop",
			body:   map[string]any{"barbershop_id": 42, "service_id": 1, "date": "2030-05-10", "time": "10:00"},
			status: http.StatusNotFound,
			code:   "barbershop_not_found",
		},
		{
			name:   "unknown service",
			body:   map[string]any{"barbershop_id": 1, "service_id": 42, "date": "2030-05-10", "time": "10:00"},
			status: http.StatusNotFound,
			code:   "service_not_found",
		},
		{
			name:   "off grid",
			body:   map[string]any{"barbershop_id": 1, "service_id": 1, "date": "2030-05-10", "time": "10:30"},
			status: http.StatusBadRequest,
			code:   "outside_working_hours",
		},
		{
			name:   "missing fields",
			body:   map[string]any{"barbershop_id": 1},
			status: http.StatusBadRequest,
			code:   "invalid_request",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := app.do(t, http.MethodPost, "/api/me/appointments", token, tc.body)
			assert.Equal(t, tc.status, w.Code, w.Body.String())
			assert.Equal(t, tc.code, decode[errorBody](t, w).Code)
		})
	}
}

func TestUpcomingAndHistory(t *testing.T) {
	app := newTestApp(t)
	token := app.signUp(t, "ana@example.com")

	for _, date := range []string{"2030-05-12", "2020-01-01", "2030-05-10"} {
		w := app.do(t, http.MethodPost, "/api/me/appointments", token, map[string]any{
			"barbershop_id": 2, "service_id": 1, "date": date, "time": "09:00",
		})
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	}

	type listBody struct {
		Data []struct {
			Date string `json:"date"`
		} `json:"data"`
	}

	w := app.do(t, http.MethodGet, "/api/me/appointments/upcoming?as_of=2025-01-01", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	up := decode[listBody](t, w).Data
	require.Len(t, up, 2)
	assert.Equal(t, "2030-05-10", up[0].Date)
	assert.Equal(t, "2030-05-12", up[1].Date)

	w = app.do(t, http.MethodGet, "/api/me/appointments/history?as_of=2025-01-01", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	hist := decode[listBody](t, w).Data
	require.Len(t, hist, 1)
	assert.Equal(t, "2020-01-01", hist[0].Date)
}

// ======================================================
// ADMIN
// ======================================================

func TestAdmin_RequiresToken(t *testing.T) {
	app := newTestApp(t)

	w := app.do(t, http.MethodGet, "/api/admin/export", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAdmin_StatusAndDelete(t *testing.T) {
	app := newTestApp(t)
	token := app.signUp(t, "ana@example.com")

	w := app.do(t, http.MethodPost, "/api/me/appointments", token, map[string]any{
		"barbershop_id": 3, "service_id": 4, "date": "2030-06-01", "time": "15:00",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	id := decode[struct {
		Data appointmentBody `json:"data"`
	}](t, w).Data.ID

	w = app.admin(t, http.MethodGet, "/api/admin/appointments?barbershop_id=3&date=2030-06-01", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"total":1`)

	w = app.admin(t, http.MethodGet, "/api/admin/appointments?barbershop_id=x", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	statusPath := "/api/admin/appointments/" + itoa(id) + "/status"
	w = app.admin(t, http.MethodPatch, statusPath, map[string]string{"status": "bogus"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = app.admin(t, http.MethodPatch, statusPath, map[string]string{"status": "completed"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"completed"`)

	w = app.do(t, http.MethodGet, "/api/me/stats", token, nil)
	assert.Contains(t, w.Body.String(), `"total_spent":65`)

	w = app.admin(t, http.MethodPatch, statusPath, map[string]string{"status": "cancelled"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "invalid_transition", decode[errorBody](t, w).Code)

	w = app.admin(t, http.MethodDelete, "/api/admin/appointments/"+itoa(id), nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = app.admin(t, http.MethodDelete, "/api/admin/appointments/"+itoa(id), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestAdmin_Barbershops(t *testing.T) {
	app := newTestApp(t)

	w := app.admin(t, http.MethodPost, "/api/admin/barbershops", map[string]any{
		"name":     "Navalha",
		"location": "Centro",
		"price":    30,
		"services": []map[string]any{
			{"id": 1, "name": "Corte", "price": 30, "duration_min": 30},
		},
		"working_hours": map[string]any{"start": "10:00", "end": "12:00", "interval": 30},
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.Contains(t, w.Body.String(), `"id":4`)

	w = app.do(t, http.MethodGet, "/api/barbershops/4/slots?date=2030-01-01", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"total":4`)

	w = app.admin(t, http.MethodPatch, "/api/admin/barbershops/4", map[string]any{"name": "Navalha de Ouro"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Navalha de Ouro")
	assert.Contains(t, w.Body.String(), `"Corte"`)

	w = app.admin(t, http.MethodPost, "/api/admin/barbershops", map[string]any{
		"name":          "Broken",
		"working_hours": map[string]any{"start": "18:00", "end": "09:00", "interval": 30},
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAdmin_ExportImportReset(t *testing.T) {
	app := newTestApp(t)
	token := app.signUp(t, "ana@example.com")

	w := app.do(t, http.MethodPost, "/api/me/appointments", token, map[string]any{
		"barbershop_id": 1, "service_id": 1, "date": "2030-05-10", "time": "11:00",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	w = app.admin(t, http.MethodGet, "/api/admin/export", nil)
	require.Equal(t, http.StatusOK, w.Code)
	exported := w.Body.Bytes()
	assert.Contains(t, string(exported), `"password_hash":"$2`)

	login := map[string]string{"email": "ana@example.com", "password": "secret1"}

	w = app.admin(t, http.MethodPost, "/api/admin/reset", nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = app.do(t, http.MethodPost, "/api/auth/login", "", login)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = app.do(t, http.MethodGet, "/api/barbershops", "", nil)
	assert.Contains(t, w.Body.String(), `"total":3`)
	w = app.admin(t, http.MethodGet, "/api/admin/appointments", nil)
	assert.Contains(t, w.Body.String(), `"total":0`)

	var snapshot map[string]any
	require.NoError(t, json.Unmarshal(exported, &snapshot))
	w = app.admin(t, http.MethodPost, "/api/admin/import", snapshot)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = app.admin(t, http.MethodGet, "/api/admin/appointments", nil)
	assert.Contains(t, w.Body.String(), `"total":1`)

	// the old token still resolves to the restored user
	w = app.do(t, http.MethodGet, "/api/me", token, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	// restored hashes keep the original password working
	w = app.do(t, http.MethodPost, "/api/auth/login", "", login)
	assert.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = app.admin(t, http.MethodPost, "/api/admin/export/s3", nil)
	assert.Equal(t, http.StatusNotImplemented, w.Code)
	assert.Equal(t, "s3_disabled", decode[errorBody](t, w).Code)
}

func itoa(n uint) string {
	return strconv.FormatUint(uint64(n), 10)
}
