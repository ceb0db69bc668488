// Package app wires repositories and services for the configured store driver.
package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/cmlabs-hris/wage-tracker/internal/config"
	"github.com/cmlabs-hris/wage-tracker/internal/domain/attendance"
	"github.com/cmlabs-hris/wage-tracker/internal/domain/employee"
	"github.com/cmlabs-hris/wage-tracker/internal/domain/payment"
	"github.com/cmlabs-hris/wage-tracker/internal/domain/report"
	"github.com/cmlabs-hris/wage-tracker/internal/domain/wage"
	"github.com/cmlabs-hris/wage-tracker/internal/pkg/database"
	"github.com/cmlabs-hris/wage-tracker/internal/repository/memory"
	"github.com/cmlabs-hris/wage-tracker/internal/repository/postgresql"
	attendanceService "github.com/cmlabs-hris/wage-tracker/internal/service/attendance"
	employeeService "github.com/cmlabs-hris/wage-tracker/internal/service/employee"
	paymentService "github.com/cmlabs-hris/wage-tracker/internal/service/payment"
	reportService "github.com/cmlabs-hris/wage-tracker/internal/service/report"
	wageService "github.com/cmlabs-hris/wage-tracker/internal/service/wage"
)

type Repositories struct {
	Tx          database.Transactor
	Employee    employee.EmployeeRepository
	Attendance  attendance.AttendanceRepository
	Calculation wage.CalculationRepository
	Payment     payment.PaymentRepository
	Report      report.ReportRepository
}

func PostgresRepositories(db *database.DB) Repositories {
	return Repositories{
		Tx:          postgresql.NewTxManager(db),
		Employee:    postgresql.NewEmployeeRepository(db),
		Attendance:  postgresql.NewAttendanceRepository(db),
		Calculation: postgresql.NewCalculationRepository(db),
		Payment:     postgresql.NewPaymentRepository(db),
		Report:      postgresql.NewReportRepository(db),
	}
}

func MemoryRepositories(s *memory.Store) Repositories {
	return Repositories{
		Tx:          s,
		Employee:    memory.NewEmployeeRepository(s),
		Attendance:  memory.NewAttendanceRepository(s),
		Calculation: memory.NewCalculationRepository(s),
		Payment:     memory.NewPaymentRepository(s),
		Report:      memory.NewReportRepository(s),
	}
}

// Open connects the configured store. The returned close func is never nil.
func Open(ctx context.Context, cfg *config.Config) (Repositories, func(), error) {
	switch cfg.Database.Driver {
	case config.StoreDriverMemory:
		slog.WarnContext(ctx, "using in-memory store; data is lost on exit")
		return MemoryRepositories(memory.NewStore()), func() {}, nil
	case config.StoreDriverPostgres:
		db, err := database.NewPostgreSQLDB(ctx, cfg.DatabaseURL(), database.PoolOptions{
			MaxConns: cfg.Database.MaxConns,
			MinConns: cfg.Database.MinConns,
		})
		if err != nil {
			return Repositories{}, func() {}, fmt.Errorf("failed to connect to database: %w", err)
		}
		if cfg.Database.AutoSchema {
			if err := postgresql.EnsureSchema(ctx, db); err != nil {
				db.Close()
				return Repositories{}, func() {}, err
			}
			slog.InfoContext(ctx, "database schema ensured")
		}
		return PostgresRepositories(db), db.Close, nil
	}
	return Repositories{}, func() {}, fmt.Errorf("unsupported store driver %q", cfg.Database.Driver)
}

type Services struct {
	Employee   employee.EmployeeService
	Attendance attendance.AttendanceService
	Wage       wage.WageService
	Payment    payment.PaymentService
	Report     report.ReportService
}

func NewServices(repos Repositories, currencySymbol string) Services {
	return Services{
		Employee:   employeeService.NewEmployeeService(repos.Tx, repos.Employee),
		Attendance: attendanceService.NewAttendanceService(repos.Tx, repos.Attendance, repos.Employee),
		Wage:       wageService.NewWageService(repos.Employee, repos.Attendance, repos.Calculation),
		Payment:    paymentService.NewPaymentService(repos.Tx, repos.Calculation, repos.Payment),
		Report:     reportService.NewReportService(repos.Report, currencySymbol),
	}
}
