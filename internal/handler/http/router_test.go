package http

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/cmlabs-hris/wage-tracker/internal/app"
	"github.com/cmlabs-hris/wage-tracker/internal/domain/attendance"
	"github.com/cmlabs-hris/wage-tracker/internal/domain/employee"
	"github.com/cmlabs-hris/wage-tracker/internal/domain/payment"
	"github.com/cmlabs-hris/wage-tracker/internal/domain/wage"
	"github.com/cmlabs-hris/wage-tracker/internal/handler/http/response"
	"github.com/cmlabs-hris/wage-tracker/internal/pkg/jwt"
	"github.com/cmlabs-hris/wage-tracker/internal/repository/memory"
	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const handlerTestSecret = "test-secret-key-for-jwt"

type envelope struct {
	Success bool                  `json:"success"`
	Message string                `json:"message"`
	Data    json.RawMessage       `json:"data"`
	Error   *response.ErrorDetail `json:"error"`
	Meta    *response.Meta        `json:"meta"`
}

func newTestRouter(cfg RouterConfig) http.Handler {
	services := app.NewServices(app.MemoryRepositories(memory.NewStore()), "$")
	return NewRouter(cfg, Handlers{
		Employee:   NewEmployeeHandler(services.Employee),
		Attendance: NewAttendanceHandler(services.Attendance),
		Wage:       NewWageHandler(services.Wage, services.Payment),
		Payment:    NewPaymentHandler(services.Payment),
		Report:     NewReportHandler(services.Report),
	})
}

func doRequest(t *testing.T, h http.Handler, method, path, body string, header ...string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	for i := 0; i+1 < len(header); i += 2 {
		req.Header.Set(header[i], header[i+1])
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder, data interface{}) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env), rec.Body.String())
	if data != nil {
		require.NoError(t, json.Unmarshal(env.Data, data))
	}
	return env
}

func createEmployee(t *testing.T, h http.Handler, name, email string) employee.EmployeeResponse {
	t.Helper()
	rec := doRequest(t, h, http.MethodPost, "/api/v1/employees",
		`{"name":"`+name+`","email":"`+email+`","daily_wage":"100","overtime_rate":"20","half_day_rate":"50"}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var emp employee.EmployeeResponse
	decodeEnvelope(t, rec, &emp)
	return emp
}

func TestRouter_Heartbeat(t *testing.T) {
	rec := doRequest(t, newTestRouter(RouterConfig{}), http.MethodGet, "/", "")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRouter_Employees(t *testing.T) {
	h := newTestRouter(RouterConfig{})

	emp := createEmployee(t, h, "Ana Putri", "ana@example.com")
	assert.Equal(t, "Ana Putri", emp.Name)
	assert.True(t, emp.IsActive)

	t.Run("duplicate email", func(t *testing.T) {
		rec := doRequest(t, h, http.MethodPost, "/api/v1/employees",
			`{"name":"Ana Dua","email":"ANA@example.com","daily_wage":100,"overtime_rate":20,"half_day_rate":50}`)
		assert.Equal(t, http.StatusConflict, rec.Code)
		env := decodeEnvelope(t, rec, nil)
		assert.Equal(t, "CONFLICT", env.Error.Code)
	})

	t.Run("validation", func(t *testing.T) {
		rec := doRequest(t, h, http.MethodPost, "/api/v1/employees", `{"name":"","email":"bad","daily_wage":"-1"}`)
		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
		env := decodeEnvelope(t, rec, nil)
		assert.Equal(t, "VALIDATION_ERROR", env.Error.Code)
		assert.Contains(t, env.Error.Details, "name")
		assert.Contains(t, env.Error.Details, "email")
		assert.Contains(t, env.Error.Details, "daily_wage")
	})

	t.Run("unknown field", func(t *testing.T) {
		rec := doRequest(t, h, http.MethodPost, "/api/v1/employees", `{"name":"X","email":"x@example.com","salary":1}`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("get and list", func(t *testing.T) {
		rec := doRequest(t, h, http.MethodGet, "/api/v1/employees/"+emp.ID, "")
		require.Equal(t, http.StatusOK, rec.Code)

		rec = doRequest(t, h, http.MethodGet, "/api/v1/employees?limit=10", "")
		require.Equal(t, http.StatusOK, rec.Code)
		var list []employee.EmployeeResponse
		env := decodeEnvelope(t, rec, &list)
		assert.Len(t, list, 1)
		require.NotNil(t, env.Meta)
		assert.Equal(t, int64(1), env.Meta.TotalItems)
	})

	t.Run("update", func(t *testing.T) {
		rec := doRequest(t, h, http.MethodPut, "/api/v1/employees/"+emp.ID, `{"daily_wage":"110.50"}`)
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		var updated employee.EmployeeResponse
		decodeEnvelope(t, rec, &updated)
		assert.Equal(t, "110.5", updated.DailyWage.String())
	})

	t.Run("not found", func(t *testing.T) {
		rec := doRequest(t, h, http.MethodGet, "/api/v1/employees/does-not-exist", "")
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("deactivate twice", func(t *testing.T) {
		other := createEmployee(t, h, "Budi", "budi@example.com")
		rec := doRequest(t, h, http.MethodPost, "/api/v1/employees/"+other.ID+"/deactivate", "")
		require.Equal(t, http.StatusOK, rec.Code)
		rec = doRequest(t, h, http.MethodPost, "/api/v1/employees/"+other.ID+"/deactivate", "")
		assert.Equal(t, http.StatusConflict, rec.Code)

		rec = doRequest(t, h, http.MethodPut, "/api/v1/attendance",
			`{"employee_id":"`+other.ID+`","date":"2024-01-01","status":"present"}`)
		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	})

	t.Run("delete without history", func(t *testing.T) {
		other := createEmployee(t, h, "Cici", "cici@example.com")
		rec := doRequest(t, h, http.MethodDelete, "/api/v1/employees/"+other.ID, "")
		require.Equal(t, http.StatusOK, rec.Code)
		var result employee.DeleteEmployeeResponse
		decodeEnvelope(t, rec, &result)
		assert.True(t, result.Deleted)
	})
}

func TestRouter_PayrollFlow(t *testing.T) {
	h := newTestRouter(RouterConfig{})
	emp := createEmployee(t, h, "Dewi", "dewi@example.com")

	for _, day := range []string{"2024-01-01", "2024-01-02", "2024-01-03"} {
		rec := doRequest(t, h, http.MethodPut, "/api/v1/attendance",
			`{"employee_id":"`+emp.ID+`","date":"`+day+`","status":"present"}`)
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	}
	rec := doRequest(t, h, http.MethodPut, "/api/v1/attendance",
		`{"employee_id":"`+emp.ID+`","date":"2024-01-03","status":"half-day","overtime_hours":"1.5"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = doRequest(t, h, http.MethodGet, "/api/v1/attendance?start_date=2024-01-01&end_date=2024-01-07&employee_id="+emp.ID, "")
	require.Equal(t, http.StatusOK, rec.Code)
	var records []attendance.AttendanceResponse
	decodeEnvelope(t, rec, &records)
	require.Len(t, records, 3)
	assert.Equal(t, "half-day", records[2].Status)

	period := `{"employee_id":"` + emp.ID + `","period_start":"2024-01-01","period_end":"2024-01-07","period_type":"weekly"}`

	rec = doRequest(t, h, http.MethodPost, "/api/v1/wages/preview", period)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var preview wage.PreviewResponse
	decodeEnvelope(t, rec, &preview)
	assert.Equal(t, "280", preview.Breakdown.NetAmount.String())

	rec = doRequest(t, h, http.MethodPost, "/api/v1/wages", period)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var calc wage.CalculationResponse
	decodeEnvelope(t, rec, &calc)
	assert.False(t, calc.IsPaid)
	assert.Equal(t, "280", calc.Breakdown.NetAmount.String())

	rec = doRequest(t, h, http.MethodPost, "/api/v1/wages/"+calc.ID+"/pay", `{"payment_date":"2024-01-08","payment_method":"bank"}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var paid payment.MarkPaidResponse
	decodeEnvelope(t, rec, &paid)
	assert.True(t, paid.Calculation.IsPaid)
	assert.Equal(t, "280", paid.Payment.Amount.String())
	assert.Equal(t, "2024-01-08", paid.Payment.PaymentDate)

	rec = doRequest(t, h, http.MethodPost, "/api/v1/wages/"+calc.ID+"/pay", "")
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = doRequest(t, h, http.MethodGet, "/api/v1/payments/"+paid.Payment.ID, "")
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = doRequest(t, h, http.MethodGet, "/api/v1/wages?is_paid=true", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var calcs []wage.CalculationResponse
	decodeEnvelope(t, rec, &calcs)
	assert.Len(t, calcs, 1)

	t.Run("report list and summary", func(t *testing.T) {
		rec := doRequest(t, h, http.MethodGet, "/api/v1/reports/payments?start_date=2024-01-01&end_date=2024-01-31", "")
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

		rec = doRequest(t, h, http.MethodGet, "/api/v1/reports/payments/summary?start_date=2024-01-01&end_date=2024-01-31", "")
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	})

	t.Run("csv export", func(t *testing.T) {
		rec := doRequest(t, h, http.MethodGet, "/api/v1/reports/payments/export?start_date=2024-01-01&end_date=2024-01-31", "")
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		assert.Equal(t, "text/csv; charset=utf-8", rec.Header().Get("Content-Type"))
		assert.Equal(t, `attachment; filename="payments_2024-01-01_2024-01-31.csv"`, rec.Header().Get("Content-Disposition"))
		assert.True(t, strings.HasPrefix(rec.Body.String(), "Payment Report\n"))
		assert.Contains(t, rec.Body.String(), "Total Amount,$280.00\n")
	})

	t.Run("report without range", func(t *testing.T) {
		rec := doRequest(t, h, http.MethodGet, "/api/v1/reports/payments", "")
		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	})

	t.Run("delete with history deactivates", func(t *testing.T) {
		rec := doRequest(t, h, http.MethodDelete, "/api/v1/employees/"+emp.ID, "")
		require.Equal(t, http.StatusOK, rec.Code)
		var result employee.DeleteEmployeeResponse
		decodeEnvelope(t, rec, &result)
		assert.False(t, result.Deleted)
		assert.True(t, result.Deactivated)
	})
}

func TestRouter_NotFoundIDs(t *testing.T) {
	h := newTestRouter(RouterConfig{})

	for _, path := range []string{
		"/api/v1/wages/missing",
		"/api/v1/payments/missing",
	} {
		rec := doRequest(t, h, http.MethodGet, path, "")
		assert.Equal(t, http.StatusNotFound, rec.Code, path)
	}

	rec := doRequest(t, h, http.MethodPost, "/api/v1/wages/missing/pay", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRouter_RequiresAccessToken(t *testing.T) {
	jwtService := jwt.NewJWTService(handlerTestSecret, "1h")
	h := newTestRouter(RouterConfig{JWTAuth: jwtService.JWTAuth()})

	rec := doRequest(t, h, http.MethodGet, "/api/v1/employees", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = doRequest(t, h, http.MethodGet, "/api/v1/employees", "", "Authorization", "Bearer not-a-token")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	token, _, err := jwtService.GenerateAccessToken("admin", "admin")
	require.NoError(t, err)
	rec = doRequest(t, h, http.MethodGet, "/api/v1/employees", "", "Authorization", "Bearer "+token)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = doRequest(t, h, http.MethodGet, "/", "")
	assert.Equal(t, http.StatusOK, rec.Code, "heartbeat stays public")
}
