package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	"github.com/yungbote/automate-backend/internal/data/db"
	httpapi "github.com/yungbote/automate-backend/internal/http"
	"github.com/yungbote/automate-backend/internal/modules/faq"
	"github.com/yungbote/automate-backend/internal/modules/maintenance"
	"github.com/yungbote/automate-backend/internal/observability"
	"github.com/yungbote/automate-backend/internal/platform/logger"
	"github.com/yungbote/automate-backend/internal/realtime"
	"github.com/yungbote/automate-backend/internal/realtime/bus"
	"github.com/yungbote/automate-backend/internal/services"
)

type App struct {
	Log      *logger.Logger
	DB       *gorm.DB
	Router   *gin.Engine
	Cfg      *Config
	Repos    Repos
	Services Services
	SSEHub   *realtime.SSEHub
	Metrics  *observability.Metrics

	bus          bus.Bus
	otelShutdown func(context.Context) error
	cancel       context.CancelFunc
}

func New() (*App, error) {
	cfg, err := LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	log, err := logger.New(cfg.Server.LogMode)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}
	a, err := build(context.Background(), log, cfg)
	if err != nil {
		log.Sync()
		return nil, err
	}
	return a, nil
}

func build(ctx context.Context, log *logger.Logger, cfg *Config) (*App, error) {
	metrics := observability.NewMetrics()
	otelShutdown := observability.InitOTel(ctx, log, observability.OtelConfig{
		Enabled:     cfg.Telemetry.Enabled,
		ServiceName: cfg.Telemetry.ServiceName,
		Environment: cfg.Server.Environment,
		Version:     cfg.Telemetry.Version,
		Endpoint:    cfg.Telemetry.Endpoint,
		Headers:     cfg.Telemetry.Headers,
		Insecure:    cfg.Telemetry.Insecure,
		SampleRatio: cfg.Telemetry.SampleRatio,
	})

	log.Info("Opening database...", "driver", cfg.Database.Driver)
	theDB, err := db.Open(db.Config{
		Driver:        cfg.Database.Driver,
		Path:          cfg.Database.Path,
		DSN:           cfg.Database.DSN,
		SlowThreshold: cfg.Database.SlowThreshold,
	}, log)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if err := db.AutoMigrateAll(theDB); err != nil {
		_ = db.Close(theDB)
		return nil, fmt.Errorf("automigrate: %w", err)
	}

	model, corpus, err := loadKnowledge(ctx, log, cfg.Data, metrics)
	if err != nil {
		_ = db.Close(theDB)
		return nil, err
	}

	lifeCtx, cancel := context.WithCancel(context.Background())
	hub := realtime.NewSSEHub(log)
	eventBus, err := bus.New(log, bus.Config{
		RedisAddr:     cfg.Redis.Addr,
		RedisPassword: cfg.Redis.Password,
		RedisDB:       cfg.Redis.DB,
		Channel:       cfg.Redis.Channel,
	})
	if err != nil {
		cancel()
		_ = db.Close(theDB)
		return nil, fmt.Errorf("init notification bus: %w", err)
	}
	if err := eventBus.StartForwarder(lifeCtx, hub.Broadcast); err != nil {
		cancel()
		_ = eventBus.Close()
		_ = db.Close(theDB)
		return nil, fmt.Errorf("start bus forwarder: %w", err)
	}

	clients, err := wireClients(log, cfg, metrics)
	if err != nil {
		cancel()
		_ = eventBus.Close()
		_ = db.Close(theDB)
		return nil, err
	}

	reposet := wireRepos(theDB, log)
	serviceset := wireServices(theDB, log, cfg, reposet, clients, eventBus, model, corpus, metrics)

	seed := services.AdminSeed{
		Name:     cfg.Admin.Name,
		Email:    cfg.Admin.Email,
		Password: cfg.Admin.Password,
		AdminKey: cfg.Admin.AdminKey,
	}
	if err := serviceset.Auth.EnsureDefaultAdmin(ctx, seed); err != nil {
		cancel()
		_ = eventBus.Close()
		_ = db.Close(theDB)
		return nil, fmt.Errorf("seed admin: %w", err)
	}

	handlerset := wireHandlers(log, serviceset, hub)
	router := httpapi.NewRouter(httpapi.RouterConfig{
		Log:                 log,
		Metrics:             metrics,
		CORSOrigins:         cfg.Server.CORSOrigins,
		TracingService:      tracingService(cfg.Telemetry),
		AuthMiddleware:      handlerset.Auth,
		HealthHandler:       handlerset.Health,
		AuthHandler:         handlerset.AuthHandler,
		UserHandler:         handlerset.User,
		CarHandler:          handlerset.Car,
		BookingHandler:      handlerset.Booking,
		NotificationHandler: handlerset.Notification,
		ChatHandler:         handlerset.Chat,
		AdminHandler:        handlerset.Admin,
	})

	return &App{
		Log:          log,
		DB:           theDB,
		Router:       router,
		Cfg:          cfg,
		Repos:        reposet,
		Services:     serviceset,
		SSEHub:       hub,
		Metrics:      metrics,
		bus:          eventBus,
		otelShutdown: otelShutdown,
		cancel:       cancel,
	}, nil
}

// loadKnowledge trains the maintenance model and reads the FAQ corpus in
// parallel. A missing FAQ file is not fatal; chat falls back to the default
// answer.
func loadKnowledge(ctx context.Context, log *logger.Logger, cfg DataConfig, metrics *observability.Metrics) (*maintenance.ModelBundle, []faq.Entry, error) {
	var (
		model  *maintenance.ModelBundle
		corpus []faq.Entry
	)
	g, _ := errgroup.WithContext(ctx)
	g.Go(func() error {
		m, err := maintenance.LoadModel(cfg.ModelDatasetPath)
		if err != nil {
			return fmt.Errorf("train maintenance model: %w", err)
		}
		st := m.Stats()
		metrics.ObserveModelTraining(st.Rows, st.Duration)
		log.Info("Maintenance model trained", "rows", st.Rows, "classes", st.Classes, "depth", st.Depth, "leaves", st.Leaves, "duration", st.Duration)
		model = m
		return nil
	})
	g.Go(func() error {
		entries, err := faq.LoadCorpus(cfg.FAQPath)
		if errors.Is(err, faq.ErrCorpusNotFound) {
			log.Warn("FAQ corpus not found; chat will use the fallback answer", "path", cfg.FAQPath)
			return nil
		}
		if err != nil {
			return fmt.Errorf("load faq corpus: %w", err)
		}
		log.Info("FAQ corpus loaded", "entries", len(entries))
		corpus = entries
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	return model, corpus, nil
}

func tracingService(cfg TelemetryConfig) string {
	if !cfg.Enabled {
		return ""
	}
	return cfg.ServiceName
}

// Run starts the reminder scheduler and serves HTTP until ctx is cancelled.
func (a *App) Run(ctx context.Context) error {
	if a == nil {
		return errors.New("app not initialized")
	}
	defer a.Close()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return a.Services.Reminder.Start(gctx, a.Cfg.Reminders.Schedule)
	})
	g.Go(func() error {
		srv := httpapi.NewServer(httpapi.ServerConfig{
			Addr:            a.Cfg.Addr(),
			ShutdownTimeout: a.Cfg.Server.ShutdownTimeout,
		}, a.Router)
		a.Log.Info("HTTP server listening", "addr", a.Cfg.Addr())
		return srv.Run(gctx)
	})
	return g.Wait()
}

func (a *App) Close() {
	if a == nil {
		return
	}
	if a.cancel != nil {
		a.cancel()
		a.cancel = nil
	}
	if a.bus != nil {
		if err := a.bus.Close(); err != nil {
			a.Log.Warn("notification bus close failed", "error", err)
		}
		a.bus = nil
	}
	if a.otelShutdown != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := a.otelShutdown(ctx); err != nil {
			a.Log.Warn("otel shutdown failed", "error", err)
		}
		cancel()
		a.otelShutdown = nil
	}
	if a.DB != nil {
		if err := db.Close(a.DB); err != nil {
			a.Log.Warn("database close failed", "error", err)
		}
		a.DB = nil
	}
	a.Log.Sync()
}
