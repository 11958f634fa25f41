package main

import (
	"context"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"time"

	"github.com/alexedwards/scs/sqlite3store"
	"github.com/alexedwards/scs/v2"
	"github.com/gorilla/websocket"
	"github.com/mark3labs/mcp-go/server"
	"github.com/myrjola/fitcoach/internal/coach"
	"github.com/myrjola/fitcoach/internal/envstruct"
	"github.com/myrjola/fitcoach/internal/errors"
	"github.com/myrjola/fitcoach/internal/flightrecorder"
	"github.com/myrjola/fitcoach/internal/logging"
	"github.com/myrjola/fitcoach/internal/mcp"
	"github.com/myrjola/fitcoach/internal/plan"
	"github.com/myrjola/fitcoach/internal/sqlite"
	"github.com/yuin/goldmark"
)

// version is overridden at build time with -ldflags "-X main.version=...".
var version = "dev" //nolint:gochecknoglobals // set by the linker.

type application struct {
	logger         *slog.Logger
	sessionManager *scs.SessionManager
	templateFS     fs.FS
	coachService   *coach.Service
	plans          *plan.Cache
	mcpHandler     http.Handler
	flightRecorder *flightrecorder.Service
	markdown       goldmark.Markdown
	upgrader       websocket.Upgrader
	corsOrigins    []string
	exportDir      string
	// streams tracks open pose websockets so that shutdown can wait for their summaries.
	streams sync.WaitGroup
}

type config struct {
	// Addr is the address to listen on. It's possible to choose the address dynamically with localhost:0.
	Addr string `env:"FITCOACH_ADDR" envDefault:"localhost:8081"`
	// SqliteURL is the URL to the SQLite database. The default ":memory:" keeps everything in the process only.
	SqliteURL string `env:"FITCOACH_SQLITE_URL" envDefault:":memory:"`
	// TemplatePath is the path to the directory containing the HTML templates.
	TemplatePath string `env:"FITCOACH_TEMPLATE_PATH" envDefault:""`
	// SecureCookies marks the session cookie Secure. Disable only when serving plain HTTP outside localhost.
	SecureCookies bool `env:"FITCOACH_SECURE_COOKIES" envDefault:"true"`
	// SessionLifetime is how long an anonymous visitor keeps their profile and plan.
	SessionLifetime time.Duration `env:"FITCOACH_SESSION_LIFETIME" envDefault:"12h"`
	// TracesDirectory enables the flight recorder. Timeout traces are written there.
	TracesDirectory string `env:"FITCOACH_TRACES_DIRECTORY" envDefault:""`
	// CORSOrigins lists the origins allowed to call the JSON API.
	CORSOrigins []string `env:"FITCOACH_CORS_ORIGINS" envDefault:"*"`
	// PlanCacheSize bounds the number of memoized plans.
	PlanCacheSize int `env:"FITCOACH_PLAN_CACHE_SIZE" envDefault:"1024"`
}

func run(ctx context.Context, logger *slog.Logger, lookupEnv func(string) (string, bool)) error {
	var (
		cancel context.CancelFunc
		err    error
	)

	ctx, cancel = signal.NotifyContext(ctx, os.Interrupt)
	defer cancel()

	var cfg config
	if err = envstruct.Populate(&cfg, lookupEnv); err != nil {
		return errors.Wrap(err, "populate config")
	}

	var htmlTemplatePath string
	if htmlTemplatePath, err = resolveAndVerifyTemplatePath(cfg.TemplatePath); err != nil {
		return errors.Wrap(err, "resolve template path")
	}

	db, err := sqlite.NewDatabase(ctx, cfg.SqliteURL, logger)
	if err != nil {
		return errors.Wrap(err, "open db", slog.String("url", cfg.SqliteURL))
	}
	defer func() {
		if closeErr := db.Close(); closeErr != nil {
			logger.LogAttrs(context.WithoutCancel(ctx), slog.LevelError, "close db", errors.SlogError(closeErr))
		}
	}()
	logger.LogAttrs(ctx, slog.LevelInfo, "connected to db")

	var recorder *flightrecorder.Service
	if cfg.TracesDirectory != "" {
		if recorder, err = flightrecorder.New(flightrecorder.Config{
			Logger:          logger,
			TracesDirectory: cfg.TracesDirectory,
			MinAge:          0,
			MaxBytes:        0,
			Cooldown:        0,
			Now:             nil,
		}); err != nil {
			return errors.Wrap(err, "new flight recorder")
		}
		if err = recorder.Start(ctx); err != nil {
			return errors.Wrap(err, "start flight recorder")
		}
		defer recorder.Stop(context.WithoutCancel(ctx))
	}

	exportDir, err := os.MkdirTemp("", "fitcoach-export-*")
	if err != nil {
		return errors.Wrap(err, "create export directory")
	}
	defer func() {
		_ = os.RemoveAll(exportDir)
	}()

	sessionStore := sqlite3store.NewWithCleanupInterval(db.ReadWrite, time.Hour)
	defer sessionStore.StopCleanup()

	plans := plan.NewCache(cfg.PlanCacheSize)
	mcpServer := mcp.New(plans, version, logger)

	app := application{
		logger:         logger,
		sessionManager: initializeSessionManager(sessionStore, cfg),
		templateFS:     os.DirFS(htmlTemplatePath),
		coachService:   coach.NewService(db, logger, plans, nil),
		plans:          plans,
		mcpHandler:     server.NewStreamableHTTPServer(mcpServer, server.WithStateLess(true)),
		flightRecorder: recorder,
		markdown:       goldmark.New(),
		upgrader: websocket.Upgrader{ //nolint:exhaustruct // defaults check the origin against the host.
			ReadBufferSize:  poseReadBufferSize,
			WriteBufferSize: poseWriteBufferSize,
		},
		corsOrigins: cfg.CORSOrigins,
		exportDir:   exportDir,
	}

	var handler http.Handler
	if handler, err = app.routes(); err != nil {
		return errors.Wrap(err, "setup routes")
	}
	if err = app.configureAndStartServer(ctx, cfg.Addr, handler); err != nil {
		return errors.Wrap(err, "start server")
	}
	return nil
}

func initializeSessionManager(store scs.Store, cfg config) *scs.SessionManager {
	sessionManager := scs.New()
	sessionManager.Store = store
	sessionManager.Lifetime = cfg.SessionLifetime
	sessionManager.Cookie.Name = "fitcoach_session"
	sessionManager.Cookie.Persist = true
	sessionManager.Cookie.Secure = cfg.SecureCookies
	sessionManager.Cookie.HttpOnly = true
	sessionManager.Cookie.SameSite = http.SameSiteLaxMode
	return sessionManager
}

func main() {
	ctx := context.Background()
	loggerHandler := logging.NewContextHandler(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		AddSource:   false,
		Level:       slog.LevelDebug,
		ReplaceAttr: nil,
	}))
	logger := slog.New(loggerHandler)
	if err := run(ctx, logger, os.LookupEnv); err != nil {
		logger.LogAttrs(ctx, slog.LevelError, "failure starting application", errors.SlogError(err))
		os.Exit(1)
	}
}
