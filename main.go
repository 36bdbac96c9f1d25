package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/DhavalSuthar-24/rosterhub/config"
	_ "github.com/DhavalSuthar-24/rosterhub/docs"
	"github.com/DhavalSuthar-24/rosterhub/internal/formation"
	"github.com/DhavalSuthar-24/rosterhub/internal/jobs"
	"github.com/DhavalSuthar-24/rosterhub/internal/match"
	"github.com/DhavalSuthar-24/rosterhub/internal/middleware"
	"github.com/DhavalSuthar-24/rosterhub/internal/notification"
	"github.com/DhavalSuthar-24/rosterhub/internal/team"
	"github.com/DhavalSuthar-24/rosterhub/internal/user"
	"github.com/DhavalSuthar-24/rosterhub/pkg/logger"
	"github.com/DhavalSuthar-24/rosterhub/routes"
)

// @title RosterHub REST API
// @version 1.0
// @description Team rosters, invitations and match scheduling for amateur sports teams.
// @host localhost:8088
// @BasePath /api
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name Authorization
func main() {
	if err := config.Initialize(); err != nil {
		logger.Fatal().Err(err).Msg("Failed to initialize application")
	}

	cfg := config.GetConfig()
	db := config.DB
	ctx := context.Background()

	if err := db.AutoMigrate(&user.User{}, &user.Role{}, &notification.Notification{}); err != nil {
		logger.Fatal().Err(err).Msg("AutoMigrate failed")
	}
	if err := team.Migrate(db); err != nil {
		logger.Fatal().Err(err).Msg("roster migration failed")
	}
	if err := db.AutoMigrate(&match.Match{}); err != nil {
		logger.Fatal().Err(err).Msg("match migration failed")
	}
	logger.Info().Msg("AutoMigrate successful")

	userRepo := user.NewUserRepository(db)
	if err := user.SeedRoles(ctx, userRepo, cfg.App.AdminUsername); err != nil {
		logger.Fatal().Err(err).Msg("seeding roles failed")
	}

	// Notifications: Redis-backed when enabled, in-process otherwise.
	processor := notification.NewProcessor(notification.NewNotificationRepository(db))
	queue := notification.NewQueue(&cfg.Redis)
	var worker *notification.Worker
	if queue.IsAsync() {
		worker = notification.NewWorker(&cfg.Redis, processor.Process)
		if err := worker.Start(); err != nil {
			logger.Fatal().Err(err).Msg("failed to start notification worker")
		}
	} else if sq, ok := queue.(*notification.SyncQueue); ok {
		sq.SetProcessor(processor.Process)
	}
	emitter := notification.NewQueueEmitter(queue)

	rosterRepo := team.NewTeamRepository(db)
	catalog := formation.Default()
	teams := team.NewTeamService(rosterRepo, catalog, emitter)
	invitations := team.NewInvitationService(rosterRepo, userRepo, emitter, cfg.Roster.InvitationTTL)
	matches := match.NewMatchService(match.NewMatchRepository(db), rosterRepo)

	scheduler := jobs.NewScheduler(invitations, cfg.Roster.ExpirySchedule)
	if err := scheduler.Start(); err != nil {
		logger.Fatal().Err(err).Msg("failed to start scheduler")
	}

	limiter := middleware.NewRateLimiter(cfg.RateLimit.RPS, cfg.RateLimit.Burst)
	stopSweep := make(chan struct{})
	go limiter.Run(time.Minute, stopSweep)

	r := routes.SetupRoutes(cfg, db, routes.Services{
		Teams:       teams,
		Invitations: invitations,
		Matches:     matches,
		Users:       userRepo,
		Formations:  catalog,
		Limiter:     limiter,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.App.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info().Str("port", cfg.App.Port).Str("env", cfg.App.Env).Msg("Starting server")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("Failed to run server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info().Msg("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("Server forced to shutdown")
	}
	close(stopSweep)
	scheduler.Stop(shutdownCtx)
	if worker != nil {
		worker.Stop()
	}
	if err := queue.Close(); err != nil {
		logger.Error().Err(err).Msg("failed to close notification queue")
	}
	logger.Info().Msg("Server exited")
}
