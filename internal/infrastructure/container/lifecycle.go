package container

import (
	"context"

	"go.uber.org/fx"
	"go.uber.org/zap"

	appcooking "github.com/jpavlov47-ux/Jardova-online-kucha-ka/internal/application/cooking"
	appgeneration "github.com/jpavlov47-ux/Jardova-online-kucha-ka/internal/application/generation"
	"github.com/jpavlov47-ux/Jardova-online-kucha-ka/internal/infrastructure/config"
	"github.com/jpavlov47-ux/Jardova-online-kucha-ka/internal/infrastructure/http/admin"
	"github.com/jpavlov47-ux/Jardova-online-kucha-ka/internal/infrastructure/http/middleware"
	"github.com/jpavlov47-ux/Jardova-online-kucha-ka/internal/infrastructure/http/server"
	"github.com/jpavlov47-ux/Jardova-online-kucha-ka/internal/infrastructure/monitoring"
	"github.com/jpavlov47-ux/Jardova-online-kucha-ka/internal/infrastructure/persistence/recipestore"
	"github.com/jpavlov47-ux/Jardova-online-kucha-ka/pkg/logger"
)

// LifecycleParams groups what the lifecycle hooks start and stop
type LifecycleParams struct {
	fx.In

	Lifecycle  fx.Lifecycle
	Shutdowner fx.Shutdowner
	Watcher    *config.Watcher
	Config     *config.Config
	Logger     *logger.Logger
	Middleware *middleware.Middleware
	Store      *recipestore.Store
	Server     *server.Server
	Admin      *admin.Server
	Generation *appgeneration.Service
	Cooking    *appcooking.Service
	Tracing    *monitoring.TracingProvider
}

// RegisterLifecycleHooks registers application lifecycle hooks
func RegisterLifecycleHooks(p LifecycleParams) {
	log := p.Logger.Logger
	cfg := p.Config

	p.Lifecycle.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Info("Starting recipe assistant",
				zap.String("version", cfg.App.Version),
				zap.String("environment", cfg.App.Environment),
				zap.String("storage", cfg.Storage.Driver),
				zap.String("ai_provider", cfg.AI.Provider),
			)

			p.Watcher.OnChange(func(c *config.Config) {
				p.Logger.SetLevel(c.App.LogLevel)
				p.Middleware.SetRateLimit(c.RateLimit)
			})
			p.Watcher.Start()

			if cfg.Storage.SeedWhenAbsent {
				if err := seedIfAbsent(ctx, p.Store, log); err != nil {
					return err
				}
			}

			p.Cooking.StartReaper()

			go func() {
				if err := p.Server.Start(); err != nil {
					log.Error("HTTP server failed", zap.Error(err))
					_ = p.Shutdowner.Shutdown(fx.ExitCode(1))
				}
			}()

			if cfg.Monitoring.EnableMetrics {
				go func() {
					if err := p.Admin.Start(); err != nil {
						log.Error("Admin server failed", zap.Error(err))
					}
				}()
			}

			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info("Shutting down recipe assistant")

			if err := p.Server.Shutdown(ctx); err != nil {
				log.Error("Failed to shutdown HTTP server", zap.Error(err))
			}
			if cfg.Monitoring.EnableMetrics {
				if err := p.Admin.Shutdown(ctx); err != nil {
					log.Error("Failed to shutdown admin server", zap.Error(err))
				}
			}

			if err := p.Generation.Shutdown(ctx); err != nil {
				log.Warn("Image generation still running at shutdown", zap.Error(err))
			}
			if err := p.Cooking.Shutdown(ctx); err != nil {
				log.Warn("Cooking sessions not closed", zap.Error(err))
			}

			if err := p.Tracing.Shutdown(ctx); err != nil {
				log.Error("Failed to flush traces", zap.Error(err))
			}

			_ = log.Sync()
			return nil
		},
	})
}

// seedIfAbsent stores the bundled recipes when the collection has never been
// saved, so the backend holds real data instead of serving the fallback
func seedIfAbsent(ctx context.Context, store *recipestore.Store, log *zap.Logger) error {
	exists, err := store.Exists(ctx)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}
	seeded, err := store.Reset(ctx)
	if err != nil {
		return err
	}
	log.Info("Seeded recipe collection", zap.Int("recipes", len(seeded)))
	return nil
}
