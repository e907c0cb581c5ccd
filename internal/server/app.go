// Package server wires configuration, storage, services and transports
// together and runs the meal planner until it receives a shutdown signal.
package server

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/dmitrijs2005/mealplanner/internal/cryptox"
	"github.com/dmitrijs2005/mealplanner/internal/logging"
	"github.com/dmitrijs2005/mealplanner/internal/server/config"
	"github.com/dmitrijs2005/mealplanner/internal/server/httpapi"
	"github.com/dmitrijs2005/mealplanner/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/mealplanner/internal/server/services"

	gs "github.com/dmitrijs2005/mealplanner/internal/server/grpc"
)

const (
	sealerSalt       = "mealplanner/oauth-credentials"
	upstreamTimeout  = 30 * time.Second
	shutdownTimeout  = 10 * time.Second
	cleanupInterval  = 10 * time.Minute
	healthProbeEvery = 15 * time.Second
)

type App struct {
	config      *config.Config
	logger      logging.Logger
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	userService *services.UserService
	oauth       *services.OAuthService
	httpServer  *http.Server
	grpcServer  *gs.GRPCServer
}

func NewApp(c *config.Config) (*App, error) {
	logger := logging.NewJSON(os.Stdout, c.LogLevel)

	db, err := sql.Open("pgx", c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	sealer, err := cryptox.NewSealer([]byte(c.SecretKey), []byte(sealerSalt))
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("sealer init error: %w", err)
	}
	rm := repomanager.NewPostgresRepositoryManager(sealer)

	httpClient := &http.Client{Timeout: upstreamTimeout}
	oauthCfg := services.NewOAuthConfig(c)

	us := services.NewUserService(db, rm, c)
	rs := services.NewRecipeService(db, rm, c)
	cs := services.NewCredentialService(db, rm, oauthCfg, httpClient, logger)
	oa := services.NewOAuthService(db, rm, oauthCfg, httpClient, c.OAuthStateTTL, logger)
	composer := services.NewEventComposer(db, rm, rs, c.DefaultCookTime, c.DefaultTimeZone)
	publisher := services.NewCalendarPublisher(cs, httpClient, c.CalendarEndpoint, c.CalendarID, logger)
	scheduler := services.NewScheduler(composer, publisher, logger)

	h := httpapi.NewHandler(httpapi.Deps{
		Users:         us,
		Recipes:       rs,
		Links:         cs,
		Authorization: oa,
		Scheduler:     scheduler,
		DB:            db,
		JWTSecret:     []byte(c.SecretKey),
		Logger:        logger,
	})

	return &App{
		config:      c,
		logger:      logger,
		db:          db,
		repomanager: rm,
		userService: us,
		oauth:       oa,
		httpServer: &http.Server{
			Addr:              c.HTTPAddr,
			Handler:           h.Routes(),
			ReadHeaderTimeout: 10 * time.Second,
		},
		grpcServer: gs.NewGRPCServer(c.GRPCAddr, db, healthProbeEvery, logger),
	}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) startGRPCServer(ctx context.Context, cancelFunc context.CancelFunc) {
	if err := app.grpcServer.Run(ctx); err != nil {
		app.logger.Error(ctx, "grpc server failed", "error", err)
		cancelFunc()
	}
}

func (app *App) startHTTPServer(ctx context.Context, cancelFunc context.CancelFunc) {
	go func() {
		<-ctx.Done()
		app.logger.Info(ctx, "Stopping HTTP server...")
		sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := app.httpServer.Shutdown(sctx); err != nil {
			app.logger.Error(ctx, "http shutdown", "error", err)
		}
	}()

	app.logger.Info(ctx, "Starting HTTP server", "address", app.httpServer.Addr)
	if err := app.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		app.logger.Error(ctx, "http server failed", "error", err)
		cancelFunc()
	}
}

// cleanupTasks are the periodic purges of expired server-side records.
func (app *App) cleanupTasks() []cleanupTask {
	return []cleanupTask{
		{name: "oauth_states", run: app.oauth.PurgeExpiredStates},
		{name: "refresh_tokens", run: app.userService.PurgeExpiredSessions},
	}
}

// Run applies migrations and serves until a signal arrives or a server
// fails. It blocks until every component has stopped.
func (app *App) Run(ctx context.Context) error {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")

	if err := app.repomanager.RunMigrations(ctx, app.db); err != nil {
		_ = app.db.Close()
		return fmt.Errorf("migrations: %w", err)
	}

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(3)
	go func() {
		defer wg.Done()
		app.startGRPCServer(ctx, cancelFunc)
	}()
	go func() {
		defer wg.Done()
		app.startHTTPServer(ctx, cancelFunc)
	}()
	go func() {
		defer wg.Done()
		runCleanup(ctx, cleanupInterval, app.logger, app.cleanupTasks())
	}()

	wg.Wait()

	app.logger.Info(context.Background(), "App stopped")
	return app.db.Close()
}
