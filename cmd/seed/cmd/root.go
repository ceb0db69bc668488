package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"sync/atomic"
	"time"

	"github.com/brianvoe/gofakeit"
	"github.com/cmlabs-hris/wage-tracker/internal/app"
	"github.com/cmlabs-hris/wage-tracker/internal/config"
	"github.com/cmlabs-hris/wage-tracker/internal/domain/attendance"
	"github.com/cmlabs-hris/wage-tracker/internal/domain/employee"
	"github.com/cmlabs-hris/wage-tracker/internal/domain/wage"
	"github.com/cmlabs-hris/wage-tracker/internal/pkg/logger"
	"github.com/cmlabs-hris/wage-tracker/internal/pkg/validator"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

type RootOptions struct {
	Employees   int
	Days        int
	Start       string
	Calculate   bool
	Concurrency int
}

var ropts RootOptions

var rootCmd = &cobra.Command{
	Use:   "seed [flags]",
	Short: "Populate the wage tracker with fake employees and attendance.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return Run(cmd.Context(), ropts)
	},
}

func init() {
	rootCmd.Flags().IntVarP(&ropts.Employees, "employees", "e", 10, "Number of employees to register")
	rootCmd.Flags().IntVarP(&ropts.Days, "days", "d", 7, "Number of consecutive days of attendance per employee")
	rootCmd.Flags().StringVarP(&ropts.Start, "start", "s", time.Now().UTC().AddDate(0, 0, -7).Format(validator.DateLayout), "First attendance date (YYYY-MM-DD)")
	rootCmd.Flags().BoolVarP(&ropts.Calculate, "calculate", "c", false, "Store a wage calculation per employee over the seeded days")
	rootCmd.Flags().IntVarP(&ropts.Concurrency, "concurrency", "n", 8, "Employees seeded in parallel")
}

func Execute() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "Error executing command: %s\n", err)
		os.Exit(1)
	}
}

func Run(ctx context.Context, opts RootOptions) error {
	if opts.Employees < 1 || opts.Days < 1 {
		return fmt.Errorf("--employees and --days must be positive")
	}
	if opts.Concurrency < 1 {
		return fmt.Errorf("--concurrency must be at least 1")
	}
	start, ok := validator.IsValidDate(opts.Start)
	if !ok {
		return fmt.Errorf("--start must be in YYYY-MM-DD format")
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	log := logger.New(os.Stdout, cfg.SlogLevel(), cfg.App.Env)
	slog.SetDefault(log)

	repos, closeStore, err := app.Open(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeStore()
	services := app.NewServices(repos, cfg.Report.CurrencySymbol)

	gofakeit.Seed(time.Now().UnixNano())
	begin := time.Now()

	var marked, calculated atomic.Int64
	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(opts.Concurrency)

	for i := 0; i < opts.Employees; i++ {
		i := i // per-iteration copy (go 1.21 loop semantics)
		g.Go(func() error {
			emp, err := services.Employee.CreateEmployee(gCtx, fakeEmployee(i))
			if err != nil {
				return fmt.Errorf("employee %d: %w", i, err)
			}

			for d := 0; d < opts.Days; d++ {
				date := start.AddDate(0, 0, d).Format(validator.DateLayout)
				if _, err := services.Attendance.MarkAttendance(gCtx, fakeAttendance(emp.ID, date)); err != nil {
					return fmt.Errorf("attendance for %s on %s: %w", emp.ID, date, err)
				}
				marked.Add(1)
			}

			if !opts.Calculate {
				return nil
			}
			_, err = services.Wage.CalculateAndStore(gCtx, wage.CalculateWageRequest{
				EmployeeID:  emp.ID,
				PeriodStart: start.Format(validator.DateLayout),
				PeriodEnd:   start.AddDate(0, 0, opts.Days-1).Format(validator.DateLayout),
				PeriodType:  periodType(opts.Days),
			})
			if err != nil {
				return fmt.Errorf("wage calculation for %s: %w", emp.ID, err)
			}
			calculated.Add(1)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}

	log.Info("seed complete",
		"employees", opts.Employees,
		"attendance_records", marked.Load(),
		"calculations", calculated.Load(),
		"elapsed", time.Since(begin).String(),
	)
	return nil
}

func fakeEmployee(i int) employee.CreateEmployeeRequest {
	first, last := gofakeit.FirstName(), gofakeit.LastName()
	name := first + " " + last
	// The index keeps emails unique across a run.
	local := strings.ToLower(lettersOnly(first) + "." + lettersOnly(last))
	phone := gofakeit.Phone()
	position := gofakeit.JobTitle()
	daily := decimal.NewFromInt(int64(gofakeit.Number(60, 200)))

	return employee.CreateEmployeeRequest{
		Name:         name,
		Email:        fmt.Sprintf("%s.%d@example.com", local, i),
		Phone:        &phone,
		Position:     &position,
		DailyWage:    daily,
		OvertimeRate: daily.Div(decimal.NewFromInt(8)).Round(2),
		HalfDayRate:  daily.Div(decimal.NewFromInt(2)).Round(2),
	}
}

func fakeAttendance(employeeID, date string) attendance.MarkAttendanceRequest {
	req := attendance.MarkAttendanceRequest{
		EmployeeID: employeeID,
		Date:       date,
		Status:     string(attendance.StatusPresent),
	}

	switch roll := gofakeit.Number(1, 10); {
	case roll == 1:
		req.Status = string(attendance.StatusAbsent)
	case roll <= 3:
		req.Status = string(attendance.StatusHalfDay)
	}
	if req.Status == string(attendance.StatusPresent) && gofakeit.Number(1, 4) == 1 {
		req.OvertimeHours = decimal.NewFromInt(int64(gofakeit.Number(1, 4)))
	}
	if gofakeit.Number(1, 10) == 1 {
		req.AdvanceTaken = decimal.NewFromInt(int64(gofakeit.Number(5, 50)))
		note := gofakeit.Sentence(5)
		req.Notes = &note
	}
	return req
}

func lettersOnly(s string) string {
	return strings.Map(func(r rune) rune {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') {
			return r
		}
		return -1
	}, s)
}

func periodType(days int) string {
	switch {
	case days == 1:
		return string(wage.PeriodTypeDaily)
	case days <= 7:
		return string(wage.PeriodTypeWeekly)
	}
	return string(wage.PeriodTypeMonthly)
}
