package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cmlabs-hris/wage-tracker/internal/app"
	"github.com/cmlabs-hris/wage-tracker/internal/config"
	appHTTP "github.com/cmlabs-hris/wage-tracker/internal/handler/http"
	"github.com/cmlabs-hris/wage-tracker/internal/pkg/jwt"
	"github.com/cmlabs-hris/wage-tracker/internal/pkg/logger"
	"github.com/go-chi/jwtauth/v5"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		os.Exit(1)
	}

	log := logger.New(os.Stdout, cfg.SlogLevel(), cfg.App.Env)
	slog.SetDefault(log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	repos, closeStore, err := app.Open(ctx, cfg)
	if err != nil {
		log.Error("failed to open store", "driver", cfg.Database.Driver, "error", err)
		os.Exit(1)
	}
	defer closeStore()

	services := app.NewServices(repos, cfg.Report.CurrencySymbol)

	var tokenAuth *jwtauth.JWTAuth
	if cfg.JWT.Secret != "" {
		tokenAuth = jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration).JWTAuth()
	} else {
		log.Warn("JWT_SECRET_KEY not set; API is served without bearer verification")
	}

	router := appHTTP.NewRouter(appHTTP.RouterConfig{
		Logger:         log,
		LogLevel:       cfg.SlogLevel(),
		AllowedOrigins: cfg.App.CORSAllowedOrigins,
		JWTAuth:        tokenAuth,
	}, appHTTP.Handlers{
		Employee:   appHTTP.NewEmployeeHandler(services.Employee),
		Attendance: appHTTP.NewAttendanceHandler(services.Attendance),
		Wage:       appHTTP.NewWageHandler(services.Wage, services.Payment),
		Payment:    appHTTP.NewPaymentHandler(services.Payment),
		Report:     appHTTP.NewReportHandler(services.Report),
	})

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info("server running", "addr", srv.Addr, "driver", cfg.Database.Driver)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server error", "error", err)
			stop()
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("graceful shutdown failed", "error", err)
	}
	log.Info("server stopped")
}
