package http

import (
	"log/slog"

	"github.com/cmlabs-hris/wage-tracker/internal/handler/http/middleware"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
)

type RouterConfig struct {
	Logger         *slog.Logger
	LogLevel       slog.Level
	AllowedOrigins []string

	// JWTAuth enables bearer verification on /api/v1 when set.
	JWTAuth *jwtauth.JWTAuth
}

type Handlers struct {
	Employee   EmployeeHandler
	Attendance AttendanceHandler
	Wage       WageHandler
	Payment    PaymentHandler
	Report     ReportHandler
}

func NewRouter(cfg RouterConfig, h Handlers) *chi.Mux {
	r := chi.NewRouter()

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link", "Content-Disposition"},
		MaxAge:           300,
	}))

	if cfg.Logger != nil {
		r.Use(httplog.RequestLogger(cfg.Logger, &httplog.Options{
			Level:  cfg.LogLevel,
			Schema: httplog.SchemaECS,
		}))
	}

	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	r.Route("/api/v1", func(r chi.Router) {
		if cfg.JWTAuth != nil {
			r.Use(jwtauth.Verifier(cfg.JWTAuth))
			r.Use(middleware.AuthRequired)
		}

		r.Route("/employees", func(r chi.Router) {
			r.Get("/", h.Employee.ListEmployees)
			r.Post("/", h.Employee.CreateEmployee)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", h.Employee.GetEmployee)
				r.Put("/", h.Employee.UpdateEmployee)
				r.Delete("/", h.Employee.DeleteEmployee)
				r.Post("/deactivate", h.Employee.DeactivateEmployee)
				r.Post("/reactivate", h.Employee.ReactivateEmployee)
			})
		})

		r.Route("/attendance", func(r chi.Router) {
			r.Get("/", h.Attendance.ListAttendance)
			r.Put("/", h.Attendance.MarkAttendance)
			r.Put("/bulk", h.Attendance.MarkBulkAttendance)
		})

		r.Route("/wages", func(r chi.Router) {
			r.Get("/", h.Wage.List)
			r.Post("/", h.Wage.Calculate)
			r.Post("/preview", h.Wage.Preview)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", h.Wage.Get)
				r.Post("/pay", h.Wage.MarkPaid)
			})
		})

		r.Get("/payments/{id}", h.Payment.GetPayment)

		r.Route("/reports/payments", func(r chi.Router) {
			r.Get("/", h.Report.ListPayments)
			r.Get("/summary", h.Report.SummarizePayments)
			r.Get("/export", h.Report.ExportPayments)
		})
	})

	return r
}
