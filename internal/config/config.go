package config

import (
	"fmt"
	"time"

	config "github.com/0xsj/overwatch-pkg/config"
)

// Config holds all configuration for the mastermind service.
type Config struct {
	Server    ServerConfig
	Ops       OpsConfig
	Database  DatabaseConfig
	Redis     RedisConfig
	NATS      NATSConfig
	Generator GeneratorConfig
	Pool      PoolConfig
	Game      GameConfig
	Retry     RetryConfig
	Telemetry TelemetryConfig
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Host            string        `env:"SERVER_HOST" default:"0.0.0.0"`
	Port            int           `env:"SERVER_PORT" default:"8080"`
	ReadTimeout     time.Duration `env:"SERVER_READ_TIMEOUT" default:"10s"`
	WriteTimeout    time.Duration `env:"SERVER_WRITE_TIMEOUT" default:"15s"`
	RequestTimeout  time.Duration `env:"SERVER_REQUEST_TIMEOUT" default:"10s"`
	ShutdownTimeout time.Duration `env:"SERVER_SHUTDOWN_TIMEOUT" default:"30s"`
}

// OpsConfig holds the operational gRPC server configuration.
type OpsConfig struct {
	Host             string `env:"OPS_HOST" default:"0.0.0.0"`
	Port             int    `env:"OPS_PORT" default:"50051"`
	EnableReflection bool   `env:"OPS_ENABLE_REFLECTION" default:"true"`
}

// DatabaseConfig holds PostgreSQL configuration for the results archive.
type DatabaseConfig struct {
	Host              string        `env:"DATABASE_HOST" default:"localhost"`
	Port              int           `env:"DATABASE_PORT" default:"5450"`
	User              string        `env:"DATABASE_USER" default:"overwatch"`
	Password          string        `env:"DATABASE_PASSWORD" default:"overwatch" sensitive:"true"`
	Database          string        `env:"DATABASE_NAME" default:"overwatch_mastermind"`
	SSLMode           string        `env:"DATABASE_SSL_MODE" default:"disable"`
	MaxConns          int           `env:"DATABASE_MAX_CONNS" default:"10"`
	MinConns          int           `env:"DATABASE_MIN_CONNS" default:"2"`
	MaxConnLifetime   time.Duration `env:"DATABASE_MAX_CONN_LIFETIME" default:"1h"`
	MaxConnIdleTime   time.Duration `env:"DATABASE_MAX_CONN_IDLE_TIME" default:"30m"`
	HealthCheckPeriod time.Duration `env:"DATABASE_HEALTH_CHECK_PERIOD" default:"1m"`
}

// RedisConfig holds Redis configuration for the supply pool and game store.
type RedisConfig struct {
	Host         string        `env:"REDIS_HOST" default:"localhost"`
	Port         int           `env:"REDIS_PORT" default:"6390"`
	Password     string        `env:"REDIS_PASSWORD" default:"" sensitive:"true"`
	DB           int           `env:"REDIS_DB" default:"0"`
	PoolSize     int           `env:"REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `env:"REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `env:"REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `env:"REDIS_READ_TIMEOUT" default:"3s"`
	WriteTimeout time.Duration `env:"REDIS_WRITE_TIMEOUT" default:"3s"`
}

// NATSConfig holds NATS configuration for domain events.
type NATSConfig struct {
	URL           string        `env:"NATS_URL" default:"nats://localhost:4230"`
	SubjectPrefix string        `env:"NATS_SUBJECT_PREFIX" default:"overwatch"`
	MaxReconnects int           `env:"NATS_MAX_RECONNECTS" default:"10"`
	ReconnectWait time.Duration `env:"NATS_RECONNECT_WAIT" default:"2s"`
}

// GeneratorConfig holds the random.org client configuration.
type GeneratorConfig struct {
	BaseURL string        `env:"GENERATOR_BASE_URL" default:"https://www.random.org"`
	Timeout time.Duration `env:"GENERATOR_TIMEOUT" default:"10s"`
}

// PoolConfig holds supply pool replenishment settings.
type PoolConfig struct {
	Interval           time.Duration `env:"POOL_INTERVAL" default:"60s"`
	LowWatermark       int64         `env:"POOL_LOW_WATERMARK" default:"10"`
	AutoRegenWatermark int64         `env:"POOL_AUTO_REGEN_WATERMARK" default:"5"`
	ResupplyQuantity   int           `env:"POOL_RESUPPLY_QUANTITY" default:"15"`
	GenerateTimeout    time.Duration `env:"POOL_GENERATE_TIMEOUT" default:"10s"`
}

// GameConfig holds game session settings.
type GameConfig struct {
	DigitBase        int           `env:"GAME_DIGIT_BASE" default:"8"`
	MaxCodeLength    int           `env:"GAME_MAX_CODE_LENGTH" default:"1000"`
	MaxAttemptsLimit int           `env:"GAME_MAX_ATTEMPTS" default:"100"`
	SessionTTL       time.Duration `env:"GAME_SESSION_TTL" default:"5m"`
}

// RetryConfig holds the optimistic concurrency retry policy for guesses.
type RetryConfig struct {
	MaxTries        int           `env:"RETRY_MAX_TRIES" default:"5"`
	InitialInterval time.Duration `env:"RETRY_INITIAL_INTERVAL" default:"10ms"`
	MaxInterval     time.Duration `env:"RETRY_MAX_INTERVAL" default:"200ms"`
}

// TelemetryConfig holds tracing configuration. Tracing is off without an endpoint.
type TelemetryConfig struct {
	OTLPEndpoint string  `env:"TELEMETRY_OTLP_ENDPOINT" default:""`
	ServiceName  string  `env:"TELEMETRY_SERVICE_NAME" default:"overwatch-mastermind"`
	SampleRatio  float64 `env:"TELEMETRY_SAMPLE_RATIO" default:"1"`
}

// Load loads configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := config.Load(cfg, config.WithPrefix("MASTERMIND_")); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ConnectionString returns the PostgreSQL connection string.
func (c *DatabaseConfig) ConnectionString() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Database, c.SSLMode,
	)
}

// Address returns the Redis address.
func (c *RedisConfig) Address() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}
