package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/charlesng35/pitwall/internal/api"
	"github.com/charlesng35/pitwall/internal/app"
	"github.com/charlesng35/pitwall/internal/app/maintenance"
	"github.com/charlesng35/pitwall/internal/cache"
	"github.com/charlesng35/pitwall/internal/database"
	"github.com/charlesng35/pitwall/internal/monitoring"
	"github.com/charlesng35/pitwall/internal/monitoring/checks"
	"github.com/charlesng35/pitwall/internal/repository/gormrepo"
	"github.com/charlesng35/pitwall/internal/services"
	"github.com/charlesng35/pitwall/pkg/logger"
)

const fallbackRefreshMaxAge = 2 * time.Hour

// runtimeStack bundles long-lived services used by the ops server.
type runtimeStack struct {
	DB        *gorm.DB
	Cache     cache.Store
	Teams     *services.TeamService
	Refresher *maintenance.Refresher
	Health    *monitoring.HealthManager
	Router    *gin.Engine
}

// bootstrapRuntime initialises the database, view cache, team service,
// performance refresher and the ops router.
func bootstrapRuntime(ctx context.Context, cfg *app.Config, log *zap.Logger) (*runtimeStack, error) {
	stack := &runtimeStack{}
	var err error
	success := false

	defer func() {
		if !success {
			stack.Shutdown(log)
		}
	}()

	if debug, _ := os.LookupEnv("GIN_DEBUG"); debug != "true" {
		gin.SetMode(gin.ReleaseMode)
	}

	stack.DB, err = initialiseDatabase(cfg)
	if err != nil {
		return nil, err
	}

	stack.Cache, err = cfg.Cache.NewStore()
	if err != nil {
		log.Warn("redis unavailable; falling back to in-process view cache", zap.Error(err))
		stack.Cache = cache.NewMemoryStore(cfg.Cache.Memory.CleanupInterval)
	} else if cfg.Cache.Redis.Enabled {
		log.Info("redis connected", zap.String("addr", cfg.Cache.Redis.Address))
	}

	repo, err := gormrepo.New(stack.DB)
	if err != nil {
		return nil, fmt.Errorf("initialise repository: %w", err)
	}

	stack.Teams, err = services.NewTeamService(repo, stack.Cache,
		services.WithViewTTL(cfg.Ratings.ViewTTL),
	)
	if err != nil {
		return nil, fmt.Errorf("initialise team service: %w", err)
	}

	stack.Refresher = maintenance.NewRefresher(stack.Teams,
		maintenance.WithSchedule(cfg.Ratings.RefreshSchedule),
	)
	if cfg.Ratings.RefreshOnStart {
		if stats, err := stack.Refresher.RunOnce(ctx); err != nil {
			log.Warn("startup performance refresh finished with errors",
				zap.Int("failed", stats.Failed),
				zap.Error(err),
			)
		}
	}
	if err := stack.Refresher.Start(); err != nil {
		return nil, fmt.Errorf("start performance refresher: %w", err)
	}

	stack.Health = monitoring.NewHealthManager()
	stack.Health.RegisterReadiness(checks.Database(stack.DB, 0))
	stack.Health.RegisterReadiness(checks.Cache(stack.Cache, 0))
	stack.Health.RegisterReadiness(checks.Refresher(stack.Refresher, refreshMaxAge(cfg.Ratings.RefreshSchedule), nil))

	stack.Router, err = api.NewRouter(cfg, stack.Health)
	if err != nil {
		return nil, fmt.Errorf("build ops router: %w", err)
	}

	success = true
	return stack, nil
}

// Shutdown stops background jobs and releases resources.
func (s *runtimeStack) Shutdown(log *zap.Logger) {
	if s == nil {
		return
	}

	if s.Refresher != nil {
		<-s.Refresher.Stop().Done()
	}

	if rs, ok := s.Cache.(*cache.RedisStore); ok && rs != nil {
		if err := rs.Close(); err != nil {
			log.Warn("redis shutdown", zap.Error(err))
		}
	}

	if s.DB != nil {
		closeDatabase(s.DB, log)
	}
}

// refreshMaxAge allows two missed refresh runs before readiness reports the
// job as stale.
func refreshMaxAge(schedule string) time.Duration {
	spec := strings.TrimSpace(schedule)
	if spec == "" {
		spec = "@hourly"
	}

	parsed, err := cron.ParseStandard(spec)
	if err != nil {
		return fallbackRefreshMaxAge
	}

	first := parsed.Next(time.Now())
	interval := parsed.Next(first).Sub(first)
	if interval <= 0 {
		return fallbackRefreshMaxAge
	}
	return 2 * interval
}

func initialiseDatabase(cfg *app.Config) (*gorm.DB, error) {
	dbCfg := convertDatabaseConfig(cfg)
	db, err := database.Open(dbCfg)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if err := database.AutoMigrate(db); err != nil {
		return nil, fmt.Errorf("auto-migrate database: %w", err)
	}

	log := logger.WithModule("database")
	log.Info("database connected", zap.String("driver", dbCfg.Driver))

	return db, nil
}

func convertDatabaseConfig(cfg *app.Config) database.Config {
	dbCfg := database.Config{
		Driver:          strings.ToLower(strings.TrimSpace(cfg.Database.Driver)),
		Path:            strings.TrimSpace(cfg.Database.Path),
		DSN:             strings.TrimSpace(cfg.Database.DSN),
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
	}

	var auth *app.DBAuthConfig
	switch dbCfg.Driver {
	case "", "sqlite":
		dbCfg.Driver = "sqlite"
	case "postgres", "postgresql":
		dbCfg.Driver = "postgres"
		auth = &cfg.Database.Postgres
	case "mysql":
		auth = &cfg.Database.MySQL
	default:
		// Leave driver as-is to surface unsupported driver error during open.
	}

	if auth != nil {
		dbCfg.Host = strings.TrimSpace(auth.Host)
		dbCfg.Port = auth.Port
		dbCfg.Name = strings.TrimSpace(auth.Database)
		dbCfg.User = strings.TrimSpace(auth.Username)
		dbCfg.Password = strings.TrimSpace(auth.Password)
		dbCfg.Options = parseOptions(auth.Options)
	}

	return dbCfg
}

// parseOptions splits "key=value" pairs separated by spaces or '&'.
func parseOptions(raw string) map[string]string {
	fields := strings.FieldsFunc(raw, func(r rune) bool {
		return r == '&' || r == ' '
	})
	if len(fields) == 0 {
		return nil
	}

	opts := make(map[string]string, len(fields))
	for _, field := range fields {
		key, value, ok := strings.Cut(field, "=")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			continue
		}
		opts[key] = strings.TrimSpace(value)
	}
	return opts
}

func closeDatabase(db *gorm.DB, log *zap.Logger) {
	if err := database.Close(db); err != nil {
		log.Warn("failed to close database", zap.Error(err))
	}
}
