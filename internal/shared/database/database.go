package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	"venuelayout/internal/shared/config"
	applogger "venuelayout/pkg/logger"

	"github.com/redis/go-redis/v9"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const connectTimeout = 5 * time.Second

// DB holds the layout store connections. Redis is nil when disabled.
type DB struct {
	PostgreSQL *gorm.DB
	Redis      *redis.Client
}

// ComponentStatus is the health of one backing store
type ComponentStatus struct {
	Status  string `json:"status"`
	Latency string `json:"latency,omitempty"`
	Error   string `json:"error,omitempty"`
}

// InitDB connects to PostgreSQL, migrates the layout tables and connects to
// Redis when enabled.
func InitDB(cfg *config.Config) (*DB, error) {
	pg, err := initPostgreSQL(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize PostgreSQL: %w", err)
	}
	if err := Migrate(pg); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	db := &DB{PostgreSQL: pg}
	if cfg.Redis.Enabled {
		db.Redis, err = initRedis(cfg)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize Redis: %w", err)
		}
	}
	return db, nil
}

func initPostgreSQL(cfg *config.Config) (*gorm.DB, error) {
	level := logger.Warn
	if cfg.IsDevelopment() {
		level = logger.Info
	}

	db, err := gorm.Open(postgres.Open(cfg.Database.DSN), &gorm.Config{
		Logger: NewQueryLogger(applogger.GetDefault(), cfg.Database.SlowQueryThreshold, level),
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
		PrepareStmt:                              true,
		DisableForeignKeyConstraintWhenMigrating: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}
	sqlDB.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	sqlDB.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	sqlDB.SetConnMaxLifetime(cfg.Database.ConnMaxLifetime)

	ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
	defer cancel()
	if err := sqlDB.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	applogger.GetDefault().InfoWithContext(ctx, "✅ PostgreSQL connected", map[string]interface{}{
		"host":           cfg.Database.Host,
		"database":       cfg.Database.Name,
		"max_open_conns": cfg.Database.MaxOpenConns,
	})
	return db, nil
}

func initRedis(cfg *config.Config) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:         cfg.Redis.Addr,
		Password:     cfg.Redis.Password,
		DB:           cfg.Redis.DB,
		PoolSize:     cfg.Redis.PoolSize,
		MinIdleConns: cfg.Redis.PoolSize / 2,
		DialTimeout:  connectTimeout,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	applogger.GetDefault().InfoWithContext(ctx, "✅ Redis connected", map[string]interface{}{
		"addr": cfg.Redis.Addr,
		"db":   cfg.Redis.DB,
	})
	return rdb, nil
}

// Close closes all connections and joins their errors
func (db *DB) Close() error {
	var errs []error
	if db.PostgreSQL != nil {
		if sqlDB, err := db.PostgreSQL.DB(); err == nil {
			if err := sqlDB.Close(); err != nil {
				errs = append(errs, fmt.Errorf("failed to close PostgreSQL: %w", err))
			}
		}
	}
	if db.Redis != nil {
		if err := db.Redis.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close Redis: %w", err))
		}
	}
	return errors.Join(errs...)
}

// Health pings every configured store. Disabled stores report "disabled".
func (db *DB) Health(ctx context.Context) map[string]ComponentStatus {
	status := map[string]ComponentStatus{
		"postgres": {Status: "disabled"},
		"redis":    {Status: "disabled"},
	}

	if db.PostgreSQL != nil {
		status["postgres"] = probe(func() error {
			sqlDB, err := db.PostgreSQL.DB()
			if err != nil {
				return err
			}
			return sqlDB.PingContext(ctx)
		})
	}
	if db.Redis != nil {
		status["redis"] = probe(func() error {
			return db.Redis.Ping(ctx).Err()
		})
	}
	return status
}

// HealthCheck returns the first failing store
func (db *DB) HealthCheck(ctx context.Context) error {
	health := db.Health(ctx)
	for _, name := range []string{"postgres", "redis"} {
		if s := health[name]; s.Status == "down" {
			return fmt.Errorf("%s ping failed: %s", name, s.Error)
		}
	}
	return nil
}

func probe(ping func() error) ComponentStatus {
	start := time.Now()
	if err := ping(); err != nil {
		return ComponentStatus{Status: "down", Error: err.Error()}
	}
	return ComponentStatus{Status: "up", Latency: time.Since(start).String()}
}

// GetRedisClient returns the Redis client, nil when Redis is disabled
func (db *DB) GetRedisClient() *redis.Client {
	return db.Redis
}

// GetPostgreSQL returns the PostgreSQL GORM instance
func (db *DB) GetPostgreSQL() *gorm.DB {
	return db.PostgreSQL
}
