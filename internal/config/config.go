package config

import (
	"fmt"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config represents the application configuration structure.
// It contains settings for the environment, the calculator and fitter, the
// HTTP server, database connection, job worker and graceful shutdown behavior.
type Config struct {
	// Environment specifies the current running environment (development, production, etc.)
	Environment string `env:"ENVIRONMENT" env-default:"development" yaml:"environment"`
	// LogLevel overrides the level implied by Environment when set
	LogLevel string `env:"LOG_LEVEL" yaml:"logLevel"`

	// Calculator configures how reflectivity curves are computed
	Calculator struct {
		// Engine is the default calculation backend: abeles or parratt
		Engine string `env:"CALCULATOR_ENGINE" env-default:"abeles" yaml:"engine"`
		// Smearing selects who applies resolution smearing: interface or engine
		Smearing string `env:"CALCULATOR_SMEARING" env-default:"interface" yaml:"smearing"`
		// CacheSize bounds the number of curves memoized per calculator, 0 disables the cache
		CacheSize int `env:"CALCULATOR_CACHE_SIZE" env-default:"64" yaml:"cacheSize"`
	} `yaml:"calculator"`

	// Fitting contains the default minimizer settings
	Fitting struct {
		// MaxIterations bounds the Levenberg-Marquardt iterations of one fit
		MaxIterations int `env:"FITTING_MAX_ITERATIONS" env-default:"200" yaml:"maxIterations"`
		// Tolerance is the relative chi-squared decrease that ends a fit
		Tolerance float64 `env:"FITTING_TOLERANCE" env-default:"1e-8" yaml:"tolerance"`
		// MaxAttempts is the number of runs of a fit job before it is marked failed
		MaxAttempts int `env:"FITTING_MAX_ATTEMPTS" env-default:"3" yaml:"maxAttempts"`
		// Timeout bounds a single fit run
		Timeout time.Duration `env:"FITTING_TIMEOUT" env-default:"10m" yaml:"timeout"`
	} `yaml:"fitting"`

	// Worker configures the background job queue
	Worker struct {
		// MaxWorkers is the number of fits run concurrently
		MaxWorkers int `env:"WORKER_MAX_WORKERS" env-default:"4" yaml:"maxWorkers"`
	} `yaml:"worker"`

	// HTTP contains all HTTP server related configurations
	HTTP struct {
		// Addr is the address and port the HTTP server will listen on
		Addr string `env:"HTTP_ADDR" env-default:":8080" yaml:"addr"`
		// ReadTimeout is the maximum duration for reading the entire request, including the body
		ReadTimeout time.Duration `env:"HTTP_READ_TIMEOUT" env-default:"1m" yaml:"readTimeout"`
		// ReadHeaderTimeout is the amount of time allowed to read request headers
		ReadHeaderTimeout time.Duration `env:"HTTP_READ_HEADER_TIMEOUT" env-default:"10s" yaml:"readHeaderTimeout"`
		// WriteTimeout is the maximum duration before timing out writes of the response
		WriteTimeout time.Duration `env:"HTTP_WRITE_TIMEOUT" env-default:"2m" yaml:"writeTimeout"`
		// IdleTimeout is the maximum amount of time to wait for the next request when keep-alives are enabled
		IdleTimeout time.Duration `env:"HTTP_IDLE_TIMEOUT" env-default:"2m" yaml:"idleTimeout"`
		// RequestTimeout is the maximum time allowed for processing a single request
		RequestTimeout time.Duration `env:"HTTP_REQUEST_TIMEOUT" env-default:"30s" yaml:"requestTimeout"`
		// MaxHeaderBytes controls the maximum number of bytes the server will read parsing the request header
		MaxHeaderBytes int `env:"HTTP_MAX_HEADER_BYTES" env-default:"0" yaml:"maxHeaderBytes"`
		// MaxBodyBytes limits the size of request bodies such as project documents
		MaxBodyBytes int64 `env:"HTTP_MAX_BODY_BYTES" env-default:"4194304" yaml:"maxBodyBytes"`
		// MetricsPath defines the URL path where metrics are exposed
		MetricsPath string `env:"HTTP_METRICS_PATH" env-default:"/metrics" yaml:"metricsPath"`
		// AllowedOrigins lists the CORS origins of browser clients, empty allows any origin
		AllowedOrigins []string `env:"HTTP_ALLOWED_ORIGINS" env-separator:"," yaml:"allowedOrigins"`
		// Pprof exposes the profiling endpoints under /debug/pprof/
		Pprof bool `env:"HTTP_PPROF" env-default:"true" yaml:"pprof"`
	} `yaml:"http"`

	// JWT configures bearer authentication of the API
	JWT struct {
		// PublicKey is the PEM encoded RSA key verifying RS256 tokens
		PublicKey string `env:"JWT_PUBLIC_KEY" yaml:"publicKey"`
		// PrivateKey is the PEM encoded RSA key used by the jwt command to sign tokens
		PrivateKey string `env:"JWT_PRIVATE_KEY" yaml:"privateKey"`
	} `yaml:"jwt"`

	// Database contains all database connection related configurations
	Database struct {
		// Username for database authentication
		Username string `env:"DATABASE_USERNAME" env-default:"myuser" yaml:"username"`
		// Password for database authentication
		Password string `env:"DATABASE_PASSWORD" env-default:"mypassword" yaml:"password"`
		// Host is the database server hostname or IP address
		Host string `env:"DATABASE_HOST" env-default:"localhost" yaml:"host"`
		// Port is the database server port number
		Port int `env:"DATABASE_PORT" env-default:"5432" yaml:"port"`
		// SslMode defines the SSL mode for the database connection
		SslMode string `env:"DATABASE_SSL_MODE" env-default:"disable" yaml:"sslMode"`
		// DatabaseName is the name of the database to connect to
		DatabaseName string `env:"DATABASE_NAME" env-default:"reflectometry" yaml:"name"`
		// MaxOpenConnections limits the number of open connections to the database
		MaxOpenConnections int `env:"DATABASE_MAX_OPEN_CONNECTIONS" env-default:"10" yaml:"maxOpenConnections"`
		// MaxIdleConnections limits the number of connections in the idle connection pool
		MaxIdleConnections int `env:"DATABASE_MAX_IDLE_CONNECTIONS" env-default:"8" yaml:"maxIdleConnections"`
		// ConnMaxLifetime is the maximum amount of time a connection may be reused
		ConnMaxLifetime time.Duration `env:"DATABASE_CONNECTION_MAX_LIFETIME" env-default:"3m" yaml:"connMaxLifetime"`
		// ConnMaxIdleTime is the maximum amount of time a connection may be idle
		ConnMaxIdleTime time.Duration `env:"DATABASE_CONNECTION_MAX_IDLE_TIME" env-default:"3m" yaml:"connMaxIdleTime"`
		// StatementTimeout bounds every statement on the server, 0 keeps the server default
		StatementTimeout time.Duration `env:"DATABASE_STATEMENT_TIMEOUT" env-default:"0s" yaml:"statementTimeout"`
	} `yaml:"database"`

	// GracefulShutdownTimeout is the maximum duration to wait for ongoing requests to complete during shutdown
	GracefulShutdownTimeout time.Duration `env:"GRACEFUL_SHUTDOWN_TIMEOUT" env-default:"10s" yaml:"gracefulShutdownTimeout"` //nolint: lll
}

// Load receives the path for yaml config file and returns a filled Config struct.
func Load(configPath string) (*Config, error) {
	var cfg Config
	err := cleanenv.ReadConfig(configPath, &cfg)
	if err != nil {
		return nil, fmt.Errorf("could not read config: %w", err)
	}

	return &cfg, nil
}

// Defaults returns a Config filled from the environment and the default
// values only, for commands that run without a config file.
func Defaults() (*Config, error) {
	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("could not read environment: %w", err)
	}

	return &cfg, nil
}
