package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all configuration for our application
type Config struct {
	// Server configuration
	Port           string
	GinMode        string
	APIVersion     string
	APIPrefix      string
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
	IdleTimeout    time.Duration
	MaxHeaderBytes int
	AllowedOrigins []string

	// Database configuration
	Database DatabaseConfig

	// Redis configuration
	Redis RedisConfig

	// JWT configuration
	JWT JWTConfig

	// Rate limiting
	RateLimit RateLimitConfig

	// Layout events
	Kafka KafkaConfig

	// Layout editing
	Editor EditorConfig

	// Tier classification
	Tiers TiersConfig

	// Layout templates
	Templates TemplatesConfig

	// Logging
	LogLevel string
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Host               string
	Port               string
	Name               string
	User               string
	Password           string
	SSLMode            string
	DSN                string
	SlowQueryThreshold time.Duration
	MaxIdleConns       int
	MaxOpenConns       int
	ConnMaxLifetime    time.Duration
}

// RedisConfig holds Redis configuration
type RedisConfig struct {
	Enabled  bool
	Host     string
	Port     string
	Password string
	DB       int
	Addr     string
	PoolSize int
}

// JWTConfig holds JWT configuration
type JWTConfig struct {
	Secret       string
	JWTExpiresIn time.Duration
}

// RateLimitConfig holds rate limiting configuration
type RateLimitConfig struct {
	Enabled        bool          `json:"enabled"`
	WindowDuration time.Duration `json:"window_duration"`
	PublicRequests int           `json:"public_requests"`
	AdminRequests  int           `json:"admin_requests"`
	SaveRequests   int           `json:"save_requests"`
	HealthRequests int           `json:"health_requests"`
	WhitelistedIPs []string      `json:"whitelisted_ips"`
}

// KafkaConfig holds the layout event producer configuration
type KafkaConfig struct {
	Enabled     bool
	Brokers     []string
	LayoutTopic string
	ClientID    string
}

// EditorConfig holds the interactive editor defaults
type EditorConfig struct {
	HistoryLimit     int
	AutosaveInterval time.Duration
	DefaultGridSize  float64
}

// TiersConfig holds tier boundary validation settings
type TiersConfig struct {
	MinGap float64
}

// TemplatesConfig holds the template catalog settings
type TemplatesConfig struct {
	Dir            string
	Watch          bool
	ReloadDebounce time.Duration
}

// Load loads configuration from environment variables
func Load() *Config {
	cfg := &Config{
		// Server configuration
		Port:           getEnv("PORT", "8080"),
		GinMode:        getEnv("GIN_MODE", "debug"),
		APIVersion:     getEnv("API_VERSION", "v1"),
		APIPrefix:      getEnv("API_PREFIX", "/api"),
		ReadTimeout:    getDurationEnv("READ_TIMEOUT", 15*time.Second),
		WriteTimeout:   getDurationEnv("WRITE_TIMEOUT", 15*time.Second),
		IdleTimeout:    getDurationEnv("IDLE_TIMEOUT", 60*time.Second),
		MaxHeaderBytes: getIntEnv("MAX_HEADER_BYTES", 1<<20), // 1 MB
		AllowedOrigins: getStringSliceEnv("CORS_ALLOWED_ORIGINS", []string{"http://localhost:3000"}),

		// Database configuration
		Database: DatabaseConfig{
			Host:               getEnv("DB_HOST", "localhost"),
			Port:               getEnv("DB_PORT", "5432"),
			Name:               getEnv("DB_NAME", "venuelayout_db"),
			User:               getEnv("DB_USER", "venuelayout_user"),
			Password:           getEnv("DB_PASSWORD", "venuelayout_password"),
			SSLMode:            getEnv("DB_SSLMODE", "disable"),
			SlowQueryThreshold: getDurationEnv("DB_SLOW_QUERY_THRESHOLD", 200*time.Millisecond),
			MaxIdleConns:       getIntEnv("DB_MAX_IDLE_CONNS", 10),
			MaxOpenConns:       getIntEnv("DB_MAX_OPEN_CONNS", 50),
			ConnMaxLifetime:    getDurationEnv("DB_CONN_MAX_LIFETIME", time.Hour),
		},

		// Redis configuration
		Redis: RedisConfig{
			Enabled:  getBoolEnv("REDIS_ENABLED", true),
			Host:     getEnv("REDIS_HOST", "localhost"),
			Port:     getEnv("REDIS_PORT", "6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getIntEnv("REDIS_DB", 0),
			PoolSize: getIntEnv("REDIS_POOL_SIZE", 10),
		},

		// JWT configuration
		JWT: JWTConfig{
			Secret:       getEnv("JWT_SECRET", "your-super-secret-jwt-key"),
			JWTExpiresIn: getDurationEnvSeconds("JWT_EXPIRES_IN", 15*time.Minute),
		},

		// Rate limiting
		RateLimit: RateLimitConfig{
			Enabled:        getBoolEnv("RATE_LIMIT_ENABLED", true),
			WindowDuration: getDurationEnv("RATE_LIMIT_WINDOW_DURATION", 60*time.Second),
			PublicRequests: getIntEnv("RATE_LIMIT_PUBLIC_REQUESTS", 100),
			AdminRequests:  getIntEnv("RATE_LIMIT_ADMIN_REQUESTS", 200),
			SaveRequests:   getIntEnv("RATE_LIMIT_SAVE_REQUESTS", 60),
			HealthRequests: getIntEnv("RATE_LIMIT_HEALTH_REQUESTS", 300),
			WhitelistedIPs: getStringSliceEnv("RATE_LIMIT_WHITELISTED_IPS", []string{}),
		},

		// Kafka configuration
		Kafka: KafkaConfig{
			Enabled:     getBoolEnv("KAFKA_ENABLED", false),
			Brokers:     getStringSliceEnv("KAFKA_BROKERS", []string{"localhost:9092"}),
			LayoutTopic: getEnv("KAFKA_LAYOUT_TOPIC", "venue-layout-events"),
			ClientID:    getEnv("KAFKA_CLIENT_ID", "venuelayout"),
		},

		// Editor configuration
		Editor: EditorConfig{
			HistoryLimit:     getIntEnv("EDITOR_HISTORY_LIMIT", 50),
			AutosaveInterval: getDurationEnv("EDITOR_AUTOSAVE_INTERVAL", 30*time.Second),
			DefaultGridSize:  getFloatEnv("EDITOR_DEFAULT_GRID_SIZE", 20),
		},

		// Tier configuration
		Tiers: TiersConfig{
			MinGap: getFloatEnv("TIER_MIN_GAP", 10),
		},

		// Template configuration
		Templates: TemplatesConfig{
			Dir:            getEnv("TEMPLATES_DIR", "./templates"),
			Watch:          getBoolEnv("TEMPLATES_WATCH", false),
			ReloadDebounce: getDurationEnv("TEMPLATES_RELOAD_DEBOUNCE", 500*time.Millisecond),
		},

		// Logging
		LogLevel: getEnv("LOG_LEVEL", "debug"),
	}

	// Build composite values
	cfg.Database.DSN = buildDatabaseDSN(cfg.Database)
	cfg.Redis.Addr = cfg.Redis.Host + ":" + cfg.Redis.Port

	return cfg
}

// buildDatabaseDSN builds the database connection string
func buildDatabaseDSN(db DatabaseConfig) string {
	return "host=" + db.Host +
		" port=" + db.Port +
		" user=" + db.User +
		" password=" + db.Password +
		" dbname=" + db.Name +
		" sslmode=" + db.SSLMode
}

// getEnv gets an environment variable with a fallback value
func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

// getIntEnv gets an integer environment variable with a fallback value
func getIntEnv(key string, fallback int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return fallback
}

// getFloatEnv gets a float environment variable with a fallback value
func getFloatEnv(key string, fallback float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return fallback
}

// getDurationEnv gets a duration environment variable with a fallback value
func getDurationEnv(key string, fallback time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return fallback
}

// getDurationEnvSeconds gets an environment variable as seconds (int) and converts to time.Duration
func getDurationEnvSeconds(key string, fallback time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if seconds, err := strconv.Atoi(value); err == nil {
			return time.Duration(seconds) * time.Second
		}
	}
	return fallback
}

// getBoolEnv gets a boolean environment variable with a fallback value
func getBoolEnv(key string, fallback bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return fallback
}

// getStringSliceEnv gets a comma-separated string environment variable as a slice
func getStringSliceEnv(key string, fallback []string) []string {
	if value := os.Getenv(key); value != "" {
		parts := strings.Split(value, ",")
		var result []string
		for _, part := range parts {
			if trimmed := strings.TrimSpace(part); trimmed != "" {
				result = append(result, trimmed)
			}
		}
		if len(result) > 0 {
			return result
		}
	}
	return fallback
}

// IsProduction returns true if the application is running in production mode
func (c *Config) IsProduction() bool {
	return c.GinMode == "release"
}

// IsDevelopment returns true if the application is running in development mode
func (c *Config) IsDevelopment() bool {
	return c.GinMode == "debug"
}

// GetServerAddress returns the full server address
func (c *Config) GetServerAddress() string {
	return ":" + c.Port
}

// GetAPIBasePath returns the API base path
func (c *Config) GetAPIBasePath() string {
	return c.APIPrefix + "/" + c.APIVersion
}
