// Package container provides dependency injection using Uber FX
package container

import (
	"fmt"

	"go.uber.org/fx"
	"go.uber.org/zap"

	appai "github.com/jpavlov47-ux/Jardova-online-kucha-ka/internal/application/ai"
	appcooking "github.com/jpavlov47-ux/Jardova-online-kucha-ka/internal/application/cooking"
	appgeneration "github.com/jpavlov47-ux/Jardova-online-kucha-ka/internal/application/generation"
	appimporter "github.com/jpavlov47-ux/Jardova-online-kucha-ka/internal/application/importer"
	apppreferences "github.com/jpavlov47-ux/Jardova-online-kucha-ka/internal/application/preferences"
	apprecipe "github.com/jpavlov47-ux/Jardova-online-kucha-ka/internal/application/recipe"
	appsearch "github.com/jpavlov47-ux/Jardova-online-kucha-ka/internal/application/search"
	"github.com/jpavlov47-ux/Jardova-online-kucha-ka/internal/domain/recipe"
	"github.com/jpavlov47-ux/Jardova-online-kucha-ka/internal/domain/shared"
	aiinfra "github.com/jpavlov47-ux/Jardova-online-kucha-ka/internal/infrastructure/ai"
	"github.com/jpavlov47-ux/Jardova-online-kucha-ka/internal/infrastructure/ai/transport"
	"github.com/jpavlov47-ux/Jardova-online-kucha-ka/internal/infrastructure/config"
	"github.com/jpavlov47-ux/Jardova-online-kucha-ka/internal/infrastructure/http/admin"
	"github.com/jpavlov47-ux/Jardova-online-kucha-ka/internal/infrastructure/http/handlers"
	"github.com/jpavlov47-ux/Jardova-online-kucha-ka/internal/infrastructure/http/middleware"
	"github.com/jpavlov47-ux/Jardova-online-kucha-ka/internal/infrastructure/http/server"
	"github.com/jpavlov47-ux/Jardova-online-kucha-ka/internal/infrastructure/language"
	"github.com/jpavlov47-ux/Jardova-online-kucha-ka/internal/infrastructure/monitoring"
	gormstore "github.com/jpavlov47-ux/Jardova-online-kucha-ka/internal/infrastructure/persistence/gorm"
	"github.com/jpavlov47-ux/Jardova-online-kucha-ka/internal/infrastructure/persistence/memory"
	"github.com/jpavlov47-ux/Jardova-online-kucha-ka/internal/infrastructure/persistence/postgres"
	"github.com/jpavlov47-ux/Jardova-online-kucha-ka/internal/infrastructure/persistence/recipestore"
	redisstore "github.com/jpavlov47-ux/Jardova-online-kucha-ka/internal/infrastructure/persistence/redis"
	"github.com/jpavlov47-ux/Jardova-online-kucha-ka/internal/infrastructure/persistence/sqlite"
	"github.com/jpavlov47-ux/Jardova-online-kucha-ka/internal/infrastructure/security"
	"github.com/jpavlov47-ux/Jardova-online-kucha-ka/internal/infrastructure/wakelock"
	"github.com/jpavlov47-ux/Jardova-online-kucha-ka/internal/infrastructure/web"
	"github.com/jpavlov47-ux/Jardova-online-kucha-ka/internal/ports/outbound"
	"github.com/jpavlov47-ux/Jardova-online-kucha-ka/pkg/healthcheck"
	"github.com/jpavlov47-ux/Jardova-online-kucha-ka/pkg/logger"
)

// Module provides the full API server. configPath may be empty to use the
// default search locations.
func Module(configPath string) fx.Option {
	return fx.Options(
		CoreModule(configPath),

		// Service modules
		ServiceModule,

		// HTTP modules
		HTTPModule,

		// Lifecycle hooks
		LifecycleModule,
	)
}

// CoreModule provides configuration, logging, storage and the AI gateway.
// Command line tools use it without the HTTP layer.
func CoreModule(configPath string) fx.Option {
	return fx.Options(
		ConfigModule(configPath),
		LoggerModule,
		MonitoringModule,
		StorageModule,
		AIModule,
	)
}

// ConfigModule provides the watched configuration
func ConfigModule(configPath string) fx.Option {
	return fx.Provide(
		func() (*config.Watcher, error) {
			return config.LoadWatched(configPath, zap.NewNop())
		},
		func(w *config.Watcher) *config.Config {
			return w.Config()
		},
	)
}

// LoggerModule provides logging
var LoggerModule = fx.Provide(
	func(cfg *config.Config, w *config.Watcher) (*logger.Logger, error) {
		lg, err := logger.New(logger.Config{
			Level:       cfg.App.LogLevel,
			Format:      cfg.App.LogFormat,
			Development: cfg.App.Debug,
		})
		if err != nil {
			return nil, err
		}
		w.UseLogger(lg.Logger)
		return lg, nil
	},
	func(lg *logger.Logger) *zap.Logger {
		return lg.Logger
	},
)

// MonitoringModule provides metrics and tracing
var MonitoringModule = fx.Provide(
	monitoring.NewMetricsCollector,
	func(cfg *config.Config, log *zap.Logger) (*monitoring.TracingProvider, error) {
		return monitoring.NewTracingProvider(monitoring.TracingConfig{
			ServiceName:    cfg.App.Name,
			ServiceVersion: cfg.App.Version,
			Environment:    cfg.App.Environment,
			Endpoint:       cfg.Monitoring.OTLPEndpoint,
			Insecure:       cfg.Monitoring.OTLPInsecure,
			SamplingRate:   cfg.Monitoring.SamplingRate,
			Enabled:        cfg.Monitoring.EnableTracing,
		}, log)
	},
)

// StorageModule provides the key-value backend and the recipe store on top of it
var StorageModule = fx.Provide(
	NewKeyValueStore,
	func(kv outbound.KeyValueStore, cfg *config.Config, metrics *monitoring.MetricsCollector, log *zap.Logger) *recipestore.Store {
		return recipestore.New(kv, cfg.Storage.RecipesKey, recipe.DefaultCategory(DefaultLanguage(cfg)), log,
			recipestore.WithFallbackHook(func(reason recipestore.FallbackReason) {
				metrics.StorageFallback(string(reason))
			}),
		)
	},
	func(s *recipestore.Store) outbound.RecipeStore {
		return s
	},
)

// AIModule provides the configured AI provider behind the gateway
var AIModule = fx.Provide(
	aiinfra.NewProvider,
	func(
		provider outbound.AIProvider,
		cfg *config.Config,
		metrics *monitoring.MetricsCollector,
		tracing *monitoring.TracingProvider,
		log *zap.Logger,
	) outbound.AIGateway {
		opts := []appai.Option{
			appai.WithMetrics(metrics),
			appai.WithTracer(tracing.Tracer()),
			appai.WithDefaultLanguage(DefaultLanguage(cfg)),
			appai.WithTimeouts(cfg.AI.Timeout, cfg.AI.ImageTimeout),
		}
		if cfg.AI.DetectLang {
			opts = append(opts, appai.WithLanguageDetector(language.NewDetector()))
		}
		return appai.NewGateway(provider, log, opts...)
	},
	security.NewValidationService,
)

// ServiceModule provides application services
var ServiceModule = fx.Provide(
	// Recipe service
	NewRecipeService,

	// Generation service
	func(gateway outbound.AIGateway, recipes *apprecipe.RecipeService, cfg *config.Config, log *zap.Logger) *appgeneration.Service {
		return appgeneration.NewService(gateway, recipes, DefaultLanguage(cfg), cfg.AI.ImageTimeout, log)
	},

	// Search service
	func(gateway outbound.AIGateway, cfg *config.Config, log *zap.Logger) *appsearch.Service {
		return appsearch.NewService(gateway, DefaultLanguage(cfg), log)
	},

	// Preferences service
	func(kv outbound.KeyValueStore, cfg *config.Config, log *zap.Logger) *apppreferences.Service {
		keys := apppreferences.Keys{Theme: cfg.Storage.ThemeKey, Language: cfg.Storage.LanguageKey}
		return apppreferences.NewService(kv, keys, DefaultLanguage(cfg), log)
	},

	// Cooking mode
	NewWakeLockProvider,
	func(
		recipes *apprecipe.RecipeService,
		wakeLocks outbound.WakeLockProvider,
		metrics *monitoring.MetricsCollector,
		cfg *config.Config,
		log *zap.Logger,
	) *appcooking.Service {
		return appcooking.NewService(recipes, wakeLocks, metrics, appcooking.Config{
			IdleTimeout:  cfg.Cooking.IdleTimeout,
			ReapInterval: cfg.Cooking.ReapInterval,
		}, log)
	},

	// Import from URL
	func(cfg *config.Config, log *zap.Logger) outbound.RecipePageReader {
		return web.NewReader(web.Config{
			MaxPageBytes: cfg.Import.MaxPageBytes,
			MaxTextChars: cfg.Import.MaxTextChars,
			UserAgent:    cfg.Import.UserAgent,
		}, transport.NewHTTPClient(cfg.Import.Timeout), log)
	},
	func(
		reader outbound.RecipePageReader,
		gateway outbound.AIGateway,
		validator *security.ValidationService,
		recipes *apprecipe.RecipeService,
		metrics *monitoring.MetricsCollector,
		cfg *config.Config,
		log *zap.Logger,
	) *appimporter.Service {
		return appimporter.NewService(reader, gateway, validator, recipes, metrics, DefaultLanguage(cfg), log)
	},
)

// HTTPModule provides the API server, the admin server and their handlers
var HTTPModule = fx.Provide(
	NewHealthCheck,
	middleware.New,
	handlers.NewPrinter,
	NewHandlers,
	server.NewServer,
	func(cfg *config.Config, metrics *monitoring.MetricsCollector, health *healthcheck.HealthCheck, log *zap.Logger) *admin.Server {
		return admin.NewServer(cfg.Monitoring.MetricsPort, metrics.Handler(), health, log)
	},
)

// LifecycleModule provides lifecycle hooks
var LifecycleModule = fx.Invoke(
	RegisterLifecycleHooks,
)

// DefaultLanguage returns the configured fallback language
func DefaultLanguage(cfg *config.Config) shared.Language {
	return shared.Language(cfg.App.DefaultLanguage).OrDefault()
}

// NewRecipeService builds the recipe service with the configured fallback language
func NewRecipeService(
	store outbound.RecipeStore,
	gateway outbound.AIGateway,
	validator *security.ValidationService,
	metrics *monitoring.MetricsCollector,
	cfg *config.Config,
	log *zap.Logger,
) *apprecipe.RecipeService {
	return apprecipe.NewRecipeService(store, gateway, validator, metrics, DefaultLanguage(cfg), log)
}

// NewKeyValueStore opens the backend named by storage.driver and closes it
// when the application stops
func NewKeyValueStore(lc fx.Lifecycle, cfg *config.Config, log *zap.Logger) (outbound.KeyValueStore, error) {
	var kv outbound.KeyValueStore

	switch cfg.Storage.Driver {
	case "sqlite":
		db, err := sqlite.SetupDatabase(cfg.Database.Path, sqlite.ParseLogLevel(cfg.Database.LogLevel))
		if err != nil {
			return nil, fmt.Errorf("failed to setup SQLite database: %w", err)
		}
		log.Info("Connected to SQLite database", zap.String("path", cfg.Database.Path))
		kv = gormstore.NewKVRepository(db, log)
	case "postgres":
		db, err := postgres.Connect(cfg, sqlite.ParseLogLevel(cfg.Database.LogLevel), log)
		if err != nil {
			return nil, err
		}
		kv = gormstore.NewKVRepository(db, log)
	case "redis":
		kv = redisstore.NewKVRepository(redisstore.NewClient(cfg), cfg.Redis.KeyPrefix, log)
		log.Info("Using redis storage", zap.String("addr", cfg.RedisAddr()))
	case "memory":
		log.Warn("Using in-memory storage; recipes are lost on restart")
		kv = memory.NewKVRepository()
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Storage.Driver)
	}

	lc.Append(fx.StopHook(kv.Close))
	return kv, nil
}

// NewWakeLockProvider returns the lease registry, or a provider without the
// capability when cooking.wake_lock is off
func NewWakeLockProvider(cfg *config.Config, metrics *monitoring.MetricsCollector, log *zap.Logger) outbound.WakeLockProvider {
	if !cfg.Cooking.WakeLock {
		log.Info("Wake locks disabled")
		return wakelock.Disabled{}
	}
	return wakelock.NewRegistry(metrics.WakeLocks(), log)
}

// NewHealthCheck registers the storage and AI provider checks
func NewHealthCheck(cfg *config.Config, kv outbound.KeyValueStore, provider outbound.AIProvider, log *zap.Logger) *healthcheck.HealthCheck {
	health := healthcheck.New(cfg.App.Version, log)
	health.Register("storage", healthcheck.NewPingChecker(kv.Ping, true))
	health.Register("ai", aiinfra.NewHealthChecker(provider))
	return health
}

// HandlerParams groups the services the handlers are built from
type HandlerParams struct {
	fx.In

	Config      *config.Config
	Recipes     *apprecipe.RecipeService
	Importer    *appimporter.Service
	Preferences *apppreferences.Service
	Generation  *appgeneration.Service
	Search      *appsearch.Service
	Cooking     *appcooking.Service
	Printer     *handlers.Printer
	Logger      *zap.Logger
}

// NewHandlers builds the route handlers
func NewHandlers(p HandlerParams) server.Handlers {
	return server.Handlers{
		Recipes:     handlers.NewRecipeHandlers(p.Recipes, p.Importer, p.Preferences, p.Printer, p.Logger),
		Generation:  handlers.NewGenerationHandlers(p.Generation, p.Printer, p.Config.Server.AllowedOrigins, p.Logger),
		Search:      handlers.NewSearchHandlers(p.Search, p.Logger),
		Cooking:     handlers.NewCookingHandlers(p.Cooking, p.Logger),
		Preferences: handlers.NewPreferencesHandlers(p.Preferences, p.Logger),
	}
}
