// Package bootstrap wires the application: configuration, logging, the
// session store, the navigation guard and the HTTP transport, with
// graceful shutdown on SIGINT/SIGTERM.
package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"

	"shopwise-server/internal/domain/access"
	"shopwise-server/internal/domain/activity"
	"shopwise-server/internal/domain/catalog"
	"shopwise-server/internal/domain/directory"
	"shopwise-server/internal/domain/eventbus"
	"shopwise-server/internal/domain/lists"
	"shopwise-server/internal/domain/session"
	sessionstore "shopwise-server/internal/domain/session/store"
	platformconfig "shopwise-server/internal/platform/config"
	platformerrors "shopwise-server/internal/platform/errors"
	platformlogging "shopwise-server/internal/platform/logging"
	platformstorage "shopwise-server/internal/platform/storage"
	httptransport "shopwise-server/internal/transport/http"
	httpwebapi "shopwise-server/internal/transport/http/webapi"

	"gorm.io/gorm"
)

type stepFn func(context.Context, *appState) error

type initStep struct {
	ID        string
	Title     string
	DependsOn []string
	Kind      platformerrors.Kind
	Execute   stepFn
}

type appState struct {
	config     *platformconfig.Config
	configPath string
	logger     *platformlogging.Logger
	db         *gorm.DB
	directory  *directory.Directory
	catalog    *catalog.Catalog
	lists      *lists.Service
	sessions   *session.Manager
	guard      *access.Guard
	activity   *activity.Recorder
}

// Run starts the whole service lifecycle: configuration, dependency
// initialisation, the HTTP server and graceful shutdown.
func Run(ctx context.Context) error {
	state := &appState{}

	steps := InitGraph()
	if err := executeInitSteps(ctx, steps, state); err != nil {
		return err
	}

	config := state.config
	logger := state.logger
	if config == nil || logger == nil {
		return platformerrors.New(
			platformerrors.KindBootstrap,
			"bootstrap state validation",
			"config/logger not initialised",
		)
	}
	if state.sessions == nil || state.guard == nil {
		return platformerrors.New(
			platformerrors.KindBootstrap,
			"bootstrap state validation",
			"session manager not initialised",
		)
	}

	logBootstrapGraph(steps, logger)

	defer func() {
		if state.activity != nil {
			state.activity.Detach()
		}
		eventbus.Shutdown()
		if closeErr := state.sessions.Close(); closeErr != nil {
			logger.ErrorTag("SESSION", "session manager did not close cleanly: %v", closeErr)
		}
	}()

	rootCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	signalCtx, stop := signal.NotifyContext(rootCtx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	group, groupCtx := errgroup.WithContext(rootCtx)

	if _, err := startHTTPServer(state, group, groupCtx); err != nil {
		cancel()
		return fmt.Errorf("failed to start HTTP server: %w", err)
	}

	if err := waitForShutdown(signalCtx, cancel, logger, group); err != nil {
		return err
	}

	logger.InfoTag("BOOT", "service stopped")
	logger.Close()
	return nil
}

func logBootstrapGraph(steps []initStep, logger *platformlogging.Logger) {
	if logger == nil {
		return
	}
	logger.InfoTag("BOOT", "initialisation order")
	for _, step := range steps {
		logger.InfoTag("BOOT", "  %s", step.Title)
	}
}

func executeInitSteps(ctx context.Context, steps []initStep, state *appState) error {
	if state == nil {
		return platformerrors.New(
			platformerrors.KindBootstrap,
			"execute init steps",
			"nil bootstrap state",
		)
	}

	completed := make(map[string]struct{}, len(steps))
	for _, step := range steps {
		for _, dep := range step.DependsOn {
			if _, ok := completed[dep]; !ok {
				return platformerrors.New(
					platformerrors.KindBootstrap,
					step.ID,
					fmt.Sprintf("dependency %s not satisfied", dep),
				)
			}
		}
		if step.Execute == nil {
			return platformerrors.New(
				platformerrors.KindBootstrap,
				step.ID,
				"missing execute function",
			)
		}
		if err := step.Execute(ctx, state); err != nil {
			var typed *platformerrors.Error
			if errors.As(err, &typed) {
				return err
			}

			kind := step.Kind
			if kind == "" {
				kind = platformerrors.KindBootstrap
			}
			return platformerrors.Wrap(kind, step.ID, "bootstrap step failed", err)
		}
		completed[step.ID] = struct{}{}
	}
	return nil
}

// InitGraph declares the initialisation steps and their ordering.
func InitGraph() []initStep {
	return []initStep{
		{
			ID:      "config:load",
			Title:   "Load configuration",
			Kind:    platformerrors.KindConfig,
			Execute: loadConfigStep,
		},
		{
			ID:        "logging:init-provider",
			Title:     "Initialise logging provider",
			DependsOn: []string{"config:load"},
			Kind:      platformerrors.KindBootstrap,
			Execute:   initLoggingStep,
		},
		{
			ID:        "storage:init-database",
			Title:     "Initialise database",
			DependsOn: []string{"logging:init-provider"},
			Kind:      platformerrors.KindStorage,
			Execute:   initDatabaseStep,
		},
		{
			ID:        "domain:init-data",
			Title:     "Initialise directory, catalog and lists",
			DependsOn: []string{"logging:init-provider"},
			Kind:      platformerrors.KindBootstrap,
			Execute:   initDomainDataStep,
		},
		{
			ID:        "session:init-manager",
			Title:     "Initialise session manager",
			DependsOn: []string{"storage:init-database", "domain:init-data"},
			Kind:      platformerrors.KindSession,
			Execute:   initSessionStep,
		},
		{
			ID:        "access:init-guard",
			Title:     "Initialise navigation guard",
			DependsOn: []string{"session:init-manager"},
			Kind:      platformerrors.KindAccess,
			Execute:   initGuardStep,
		},
		{
			ID:        "activity:init-recorder",
			Title:     "Initialise activity recorder",
			DependsOn: []string{"session:init-manager"},
			Kind:      platformerrors.KindBootstrap,
			Execute:   initActivityStep,
		},
	}
}

func loadConfigStep(_ context.Context, state *appState) error {
	result, err := platformconfig.NewLoader().WithDotEnv(true).Load()
	if err != nil {
		return platformerrors.Wrap(platformerrors.KindConfig, "config:load", "failed to load configuration", err)
	}
	state.config = result.Config
	state.configPath = result.Path
	return nil
}

func initLoggingStep(_ context.Context, state *appState) error {
	if state == nil || state.config == nil {
		return platformerrors.New(
			platformerrors.KindBootstrap,
			"logging:init-provider",
			"config not loaded",
		)
	}

	logger, err := platformlogging.New(platformlogging.Config{
		Level:    state.config.Log.Level,
		Dir:      state.config.Log.Dir,
		Filename: state.config.Log.File,
	})
	if err != nil {
		return platformerrors.Wrap(platformerrors.KindBootstrap, "logging:init-provider", "failed to initialise logging provider", err)
	}

	state.logger = logger
	logger.InfoTag("BOOT", "logging ready [%s] %s", state.config.Log.Level, state.configPath)
	return nil
}

// initDatabaseStep opens the sqlite database only when the session
// store actually uses it.
func initDatabaseStep(_ context.Context, state *appState) error {
	driver := strings.ToLower(strings.TrimSpace(state.config.Session.Store.Type))
	if driver != sessionstore.DriverSQLite {
		return nil
	}

	db, err := platformstorage.Open(state.config.Session.Store.SQLite.DSN)
	if err != nil {
		return platformerrors.Wrap(platformerrors.KindStorage, "storage:init-database", "failed to open database", err)
	}
	state.db = db
	state.logger.InfoTag("STORE", "sqlite database ready")
	return nil
}

func initDomainDataStep(_ context.Context, state *appState) error {
	state.directory = directory.NewSeeded()
	state.catalog = catalog.NewSeeded()
	state.lists = lists.NewSeeded(state.catalog)
	return nil
}

func initSessionStep(_ context.Context, state *appState) error {
	cfg := state.config

	storeCfg := sessionstore.Config{
		Driver: strings.ToLower(strings.TrimSpace(cfg.Session.Store.Type)),
		TTL:    cfg.Session.Store.Expiry.Std(),
	}

	cleanupInterval := cfg.Session.Store.Cleanup.Std()
	if cleanupInterval <= 0 {
		cleanupInterval = 10 * time.Minute
	}

	switch storeCfg.Driver {
	case "", sessionstore.DriverMemory:
		storeCfg.Driver = sessionstore.DriverMemory
		storeCfg.Memory = &sessionstore.MemoryConfig{GCInterval: cleanupInterval}
	case sessionstore.DriverSQLite:
		storeCfg.SQLite = &sessionstore.SQLiteConfig{DSN: cfg.Session.Store.SQLite.DSN}
	case sessionstore.DriverRedis:
		storeCfg.Redis = &sessionstore.RedisConfig{
			Addr:     cfg.Session.Store.Redis.Addr,
			Username: cfg.Session.Store.Redis.Username,
			Password: cfg.Session.Store.Redis.Password,
			DB:       cfg.Session.Store.Redis.DB,
			Prefix:   cfg.Session.Store.Redis.Prefix,
		}
		if storeCfg.Redis.Addr == "" {
			return platformerrors.New(
				platformerrors.KindSession,
				"session:init-manager",
				"redis store addr is required",
			)
		}
	default:
		state.logger.WarnTag("SESSION", "unsupported store type %s, falling back to memory", storeCfg.Driver)
		storeCfg.Driver = sessionstore.DriverMemory
		storeCfg.Memory = &sessionstore.MemoryConfig{GCInterval: cleanupInterval}
	}

	st, err := sessionstore.New(storeCfg, sessionstore.Dependencies{SQLiteDB: state.db})
	if err != nil {
		return platformerrors.Wrap(platformerrors.KindSession, "session:init-manager", "failed to create session store", err)
	}

	token := session.NewToken(cfg.Session.Secret).WithTTL(cfg.Session.TokenTTL.Std())
	manager, err := session.NewManager(session.Options{
		Store:           st,
		Directory:       state.directory,
		Logger:          state.logger,
		Token:           token,
		SessionTTL:      storeCfg.TTL,
		CleanupInterval: cleanupInterval,
	})
	if err != nil {
		return platformerrors.Wrap(platformerrors.KindSession, "session:init-manager", "failed to create session manager", err)
	}

	state.sessions = manager
	state.logger.InfoTag("SESSION", "session manager ready (%s store)", storeCfg.Driver)
	return nil
}

func initGuardStep(_ context.Context, state *appState) error {
	policy := access.DefaultPolicy()
	if p := state.config.Web.LoginPath; p != "" {
		policy.LoginPath = p
	}
	if p := state.config.Web.LandingPath; p != "" {
		policy.LandingPath = p
	}
	state.guard = access.NewGuard(state.sessions, policy)
	return nil
}

func initActivityStep(_ context.Context, state *appState) error {
	recorder := activity.NewRecorder(256)
	if err := recorder.Attach(eventbus.GetAsync()); err != nil {
		return platformerrors.Wrap(platformerrors.KindBootstrap, "activity:init-recorder", "failed to attach recorder", err)
	}
	state.activity = recorder
	return nil
}

func startHTTPServer(
	state *appState,
	g *errgroup.Group,
	groupCtx context.Context,
) (*http.Server, error) {
	config := state.config
	logger := state.logger

	httpRouter, err := httptransport.Build(httptransport.Options{
		Config: config,
		Logger: logger,
	})
	if err != nil {
		return nil, err
	}
	router := httpRouter.Engine
	apiGroup := httpRouter.API

	staticDir := config.Web.StaticDir
	router.NoRoute(func(c *gin.Context) {
		path := c.Request.URL.Path
		if strings.HasPrefix(path, "/api") {
			c.JSON(http.StatusNotFound, httpwebapi.APIResponse{
				Success: false,
				Data:    gin.H{},
				Message: "api not found",
				Code:    http.StatusNotFound,
			})
			return
		}
		// SPA fallback: client-side routes resolve to the bundle entry
		if staticDir != "" {
			c.File(filepath.Join(staticDir, "index.html"))
			return
		}
		c.Status(http.StatusNotFound)
	})

	webapiService := httpwebapi.NewService(httpwebapi.Options{
		Config:    config,
		Logger:    logger,
		Sessions:  state.sessions,
		Guard:     state.guard,
		Directory: state.directory,
		Catalog:   state.catalog,
		Lists:     state.lists,
		Activity:  state.activity,
	})
	if err := webapiService.Start(groupCtx, router, apiGroup); err != nil {
		return nil, platformerrors.Wrap(platformerrors.KindTransport, "webapi:start", "failed to start webapi service", err)
	}

	httpServer := &http.Server{
		Addr:    config.Server.IP + ":" + strconv.Itoa(config.Server.Port),
		Handler: router,
	}

	g.Go(func() error {
		logger.InfoTag("HTTP", "server listening on http://%s", httpServer.Addr)

		go func() {
			<-groupCtx.Done()
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()

			if err := httpServer.Shutdown(shutdownCtx); err != nil {
				logger.ErrorTag("HTTP", "server shutdown failed: %v", err)
			} else {
				logger.InfoTag("HTTP", "server shut down cleanly")
			}
		}()

		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.ErrorTag("HTTP", "server failed: %v", err)
			return err
		}
		return nil
	})

	return httpServer, nil
}

func waitForShutdown(
	ctx context.Context,
	cancel context.CancelFunc,
	logger *platformlogging.Logger,
	g *errgroup.Group,
) error {
	<-ctx.Done()
	logger.InfoTag("BOOT", "received shutdown signal %v, cleaning up", context.Cause(ctx))

	cancel()

	done := make(chan error, 1)
	go func() {
		done <- g.Wait()
	}()

	select {
	case err := <-done:
		if err != nil {
			logger.ErrorTag("BOOT", "error during shutdown: %v", err)
			return err
		}
		logger.InfoTag("BOOT", "all services stopped")
	case <-time.After(15 * time.Second):
		timeoutErr := errors.New("shutdown timed out")
		logger.ErrorTag("BOOT", "shutdown timed out, forcing exit")
		return timeoutErr
	}
	return nil
}
