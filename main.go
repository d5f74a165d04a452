package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/DhavalSuthar-24/cricketclub/config"
	"github.com/DhavalSuthar-24/cricketclub/internal/innings"
	"github.com/DhavalSuthar-24/cricketclub/internal/match"
	"github.com/DhavalSuthar-24/cricketclub/internal/team"
	"github.com/DhavalSuthar-24/cricketclub/routes"
	"github.com/go-co-op/gocron/v2"
)

// shutdownTimeout bounds draining requests and the final write of queued deliveries.
const shutdownTimeout = 10 * time.Second

// @title Cricket Club Live Scoring API
// @version 1.0
// @description Match setup, ball-by-ball scoring and the live matches feed.
// @host localhost:8088
// @BasePath /api
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	if err := config.Initialize(); err != nil {
		log.Fatalf("Failed to initialize application: %v", err)
	}

	cfg := config.GetConfig()

	err := config.DB.AutoMigrate(
		&team.Team{}, &team.Player{},
		&match.Match{}, &match.InningsSetup{},
		&innings.Innings{}, &innings.BallRecord{},
	)
	if err != nil {
		log.Fatalf("AutoMigrate failed: %v", err)
	}
	log.Println("AutoMigrate successful")

	teamRepo := team.NewTeamRepository(config.DB)
	matchService := match.NewService(
		match.NewGormMatchRepository(config.DB), teamRepo,
		cfg.Scoring.StrictPlayingXI, cfg.Scoring.LiveFeedFilter,
	)

	inningsRepo := innings.NewGormInningsRepository(config.DB)
	recorder := innings.NewRecorder(inningsRepo)
	inningsService := innings.NewService(inningsRepo, matchService, recorder)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	go func() {
		<-ctx.Done()
		// A second signal terminates immediately.
		stop()
	}()
	go recorder.Run(ctx)

	retry := time.Duration(cfg.Scoring.PersistRetrySeconds) * time.Second
	sched, err := innings.StartRetryScheduler(recorder, retry)
	if err != nil {
		log.Fatalf("Failed to start retry scheduler: %v", err)
	}

	srv := &http.Server{
		Addr:    ":" + cfg.App.Port,
		Handler: routes.SetupRoutes(cfg, matchService, inningsService),
	}

	// Use port from loaded configuration
	log.Printf("Starting server on port %s in %s mode\n", cfg.App.Port, cfg.App.Env)
	if err := serve(ctx, srv, recorder, sched); err != nil {
		log.Fatalf("Server stopped with error: %v", err)
	}
	log.Println("Server stopped")
}

// serve runs srv until ctx is done, then drains in-flight requests, writes
// out the queued deliveries and stops the retry scheduler.
func serve(ctx context.Context, srv *http.Server, recorder *innings.Recorder, sched gocron.Scheduler) error {
	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			_ = sched.Shutdown()
			return err
		}
	case <-ctx.Done():
	}
	log.Println("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	var errs []error
	if err := srv.Shutdown(shutdownCtx); err != nil {
		errs = append(errs, fmt.Errorf("http shutdown: %w", err))
	}
	if err := recorder.Flush(shutdownCtx); err != nil {
		errs = append(errs, fmt.Errorf("final flush: %w", err))
	}
	if err := sched.Shutdown(); err != nil {
		errs = append(errs, fmt.Errorf("scheduler shutdown: %w", err))
	}
	return errors.Join(errs...)
}
