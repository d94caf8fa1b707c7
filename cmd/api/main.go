package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/cmlabs-hris/vacation-backend-go/internal/config"
	appHTTP "github.com/cmlabs-hris/vacation-backend-go/internal/handler/http"
	"github.com/cmlabs-hris/vacation-backend-go/internal/pkg/cron"
	"github.com/cmlabs-hris/vacation-backend-go/internal/pkg/database"
	"github.com/cmlabs-hris/vacation-backend-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/vacation-backend-go/internal/pkg/sse"
	"github.com/cmlabs-hris/vacation-backend-go/internal/repository/postgresql"
	serviceAuth "github.com/cmlabs-hris/vacation-backend-go/internal/service/auth"
	serviceVacation "github.com/cmlabs-hris/vacation-backend-go/internal/service/vacation"
	"github.com/go-chi/httplog/v3"
)

func main() {
	if err := run(); err != nil {
		slog.Error("Server exited with error", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("error loading config: %w", err)
	}

	logger := newLogger(cfg)
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.NewPostgreSQLDB(ctx, cfg.DatabaseURL(), database.PoolOptions{
		MaxConns: cfg.Database.MaxConns,
		MinConns: cfg.Database.MinConns,
	})
	if err != nil {
		return fmt.Errorf("error connecting to database: %w", err)
	}
	defer db.Close()

	txManager := postgresql.NewTxManager(db)
	userRepo := postgresql.NewUserRepository(db)
	refreshTokenRepo := postgresql.NewRefreshTokenRepository(db)
	vacationRequestRepo := postgresql.NewVacationRequestRepository(db)
	holidayRepo := postgresql.NewHolidayRepository(db)

	JWTService, err := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration, cfg.JWT.RefreshExpiration)
	if err != nil {
		return fmt.Errorf("error creating jwt service: %w", err)
	}

	hub := sse.NewHub()
	engine := serviceVacation.NewEngine(cfg.Location(), serviceVacation.WithAnnualDays(cfg.Vacation.AnnualDays))

	authService := serviceAuth.NewAuthService(txManager, userRepo, refreshTokenRepo, JWTService)
	vacationService := serviceVacation.NewVacationService(txManager, engine, vacationRequestRepo, holidayRepo, userRepo, hub)

	scheduler := cron.NewScheduler()
	if cfg.Cron.Enabled {
		cron.NewVacationJobs(vacationService, hub).RegisterJobs(scheduler, cfg.Cron.PendingReminderInterval)
		scheduler.Start(ctx)
		defer scheduler.Stop()
	}

	router := appHTTP.NewRouter(appHTTP.RouterOptions{
		Logger:         logger,
		AllowedOrigins: cfg.App.AllowedOrigins,
		LoginPerSecond: cfg.RateLimit.LoginPerSecond,
		LoginBurst:     cfg.RateLimit.LoginBurst,
	}, JWTService, appHTTP.Handlers{
		Auth:     appHTTP.NewAuthHandler(authService, cfg.App.Env == "production"),
		Vacation: appHTTP.NewVacationHandler(vacationService),
		Holiday:  appHTTP.NewHolidayHandler(vacationService),
		Event:    appHTTP.NewEventHandler(authService, JWTService, hub),
	})

	server := appHTTP.NewServer(fmt.Sprintf(":%d", cfg.App.Port), router)

	serverErr := make(chan error, 1)
	go func() {
		slog.Info("Server running", "addr", server.Addr, "env", cfg.App.Env, "timezone", cfg.Vacation.Timezone)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	select {
	case err := <-serverErr:
		return err
	case <-ctx.Done():
	}

	slog.Info("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}
	slog.Info("Server stopped")
	return nil
}

func newLogger(cfg *config.Config) *slog.Logger {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.ToUpper(cfg.App.LogLevel))); err != nil {
		level = slog.LevelInfo
	}

	logFormat := httplog.SchemaECS.Concise(cfg.App.Env != "production")
	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level:       level,
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "vacation-backend"),
		slog.String("env", cfg.App.Env),
	)
}
