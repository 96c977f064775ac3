package config

import (
	"fmt"
	"os"
	"regexp"
	"strconv"
	"time"

	"datacleaner/pkg/client"
	"datacleaner/pkg/logger"
	"datacleaner/pkg/sanitizer"
)

type Config struct {
	AgeMin             int
	AgeMax             int
	QuantityMin        int
	QuantityMax        int
	OrderDateFixedYear int

	Workers         int
	ChunkSize       int
	MaxBatchRecords int

	MongoURI          string
	MongoDatabaseName string
	MongoConnTimeout  time.Duration

	Port string

	RequestTimeout time.Duration
	MaxRequestSize int

	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration

	Log    *logger.Logger
	Client *client.Client
}

// Load reads the configuration from the environment and exits the process
// when it does not validate.
func Load(serviceName string) *Config {
	cfg := FromEnv(serviceName)

	err := cfg.Validate()
	if err != nil {
		cfg.Log.Fatal(err.Error())
	}
	cfg.LogConfiguration()
	return cfg
}

// FromEnv reads the configuration from the environment without validating
// it, for callers that apply overrides first.
func FromEnv(serviceName string) *Config {
	return &Config{
		AgeMin:             getEnvNum(EnvAgeMin, DefaultAgeMin),
		AgeMax:             getEnvNum(EnvAgeMax, DefaultAgeMax),
		QuantityMin:        getEnvNum(EnvQuantityMin, DefaultQuantityMin),
		QuantityMax:        getEnvNum(EnvQuantityMax, DefaultQuantityMax),
		OrderDateFixedYear: getEnvNum(EnvOrderDateFixedYear, DefaultOrderDateFixedYear),

		Workers:         getEnvNum(EnvWorkers, DefaultWorkers),
		ChunkSize:       getEnvNum(EnvChunkSize, DefaultChunkSize),
		MaxBatchRecords: getEnvNum(EnvMaxBatchRecords, DefaultMaxBatchRecords),

		MongoURI:          getEnvStr(EnvMongoURI, DefaultMongoURI),
		MongoDatabaseName: getEnvStr(EnvMongoDatabaseName, DefaultMongoDatabaseName),
		MongoConnTimeout:  getEnvDuration(EnvMongoConnTimeout, DefaultMongoConnTimeout),

		Port: getEnvStr(EnvPort, DefaultPort),

		RequestTimeout: getEnvDuration(EnvRequestTimeout, DefaultRequestTimeout),
		MaxRequestSize: getEnvNum(EnvMaxRequestSize, DefaultMaxRequestSize),

		ReadTimeout:     getEnvDuration(EnvReadTimeout, DefaultReadTimeout),
		WriteTimeout:    getEnvDuration(EnvWriteTimeout, DefaultWriteTimeout),
		IdleTimeout:     getEnvDuration(EnvIdleTimeout, DefaultIdleTimeout),
		ShutdownTimeout: getEnvDuration(EnvShutdownTimeout, DefaultShutdownTimeout),

		Log: logger.New(logger.Config{
			Level:     getEnvStr(EnvLogLevel, DefaultLogLevel),
			Format:    getEnvStr(EnvLogFormat, logger.JSON),
			Output:    os.Stderr,
			AddSource: true,
			Service:   serviceName,
		}),
		Client: client.NewClient(),
	}
}

func (cfg *Config) SetMongo() {
	cfg.Client.SetMongo(cfg.Log, cfg.MongoURI, cfg.MongoConnTimeout)
}

func (cfg *Config) AgeRange() sanitizer.Range {
	return sanitizer.Range{Min: cfg.AgeMin, Max: cfg.AgeMax}
}

func (cfg *Config) QuantityRange() sanitizer.Range {
	return sanitizer.Range{Min: cfg.QuantityMin, Max: cfg.QuantityMax}
}

func (cfg *Config) Validate() error {
	var errors []string

	if cfg.AgeMax < cfg.AgeMin {
		errors = append(errors, fmt.Sprintf("AgeMax (%d) must be >= AgeMin (%d)", cfg.AgeMax, cfg.AgeMin))
	}
	if cfg.QuantityMax < cfg.QuantityMin {
		errors = append(errors, fmt.Sprintf("QuantityMax (%d) must be >= QuantityMin (%d)", cfg.QuantityMax, cfg.QuantityMin))
	}
	if !sanitizer.IsValidCalendarDate(cfg.OrderDateFixedYear, 1, 1) {
		errors = append(errors, fmt.Sprintf("OrderDateFixedYear must be between 1 and 9999, got: %d", cfg.OrderDateFixedYear))
	}

	if cfg.Workers <= 0 {
		errors = append(errors, fmt.Sprintf("Workers must be positive, got: %d", cfg.Workers))
	}
	if cfg.ChunkSize <= 0 {
		errors = append(errors, fmt.Sprintf("ChunkSize must be positive, got: %d", cfg.ChunkSize))
	}
	if cfg.MaxBatchRecords <= 0 {
		errors = append(errors, fmt.Sprintf("MaxBatchRecords must be positive, got: %d", cfg.MaxBatchRecords))
	}

	if port, err := strconv.Atoi(cfg.Port); err != nil || port < 1 || port > 65535 {
		errors = append(errors, fmt.Sprintf("Port must be between 1 and 65535, got: %s", cfg.Port))
	}

	if cfg.MongoURI == "" {
		errors = append(errors, "MongoURI cannot be empty")
	} else if len(cfg.MongoURI) < 10 || !regexp.MustCompile(`^mongodb(\+srv)?://`).MatchString(cfg.MongoURI) {
		errors = append(errors, fmt.Sprintf("MongoURI must start with 'mongodb://' or 'mongodb+srv://', got: %s", redactMongoURI(cfg.MongoURI)))
	}
	if cfg.MongoDatabaseName == "" {
		errors = append(errors, "MongoDatabaseName cannot be empty")
	}
	if cfg.MongoConnTimeout <= 0 {
		errors = append(errors, fmt.Sprintf("MongoConnTimeout must be positive, got: %s", cfg.MongoConnTimeout))
	}

	if cfg.RequestTimeout <= 0 {
		errors = append(errors, fmt.Sprintf("RequestTimeout must be positive, got: %s", cfg.RequestTimeout))
	}
	if cfg.ReadTimeout <= 0 {
		errors = append(errors, fmt.Sprintf("ReadTimeout must be positive, got: %s", cfg.ReadTimeout))
	}
	if cfg.WriteTimeout <= 0 {
		errors = append(errors, fmt.Sprintf("WriteTimeout must be positive, got: %s", cfg.WriteTimeout))
	}
	if cfg.IdleTimeout <= 0 {
		errors = append(errors, fmt.Sprintf("IdleTimeout must be positive, got: %s", cfg.IdleTimeout))
	}
	if cfg.ShutdownTimeout <= 0 {
		errors = append(errors, fmt.Sprintf("ShutdownTimeout must be positive, got: %s", cfg.ShutdownTimeout))
	}
	if cfg.MaxRequestSize <= 0 {
		errors = append(errors, fmt.Sprintf("MaxRequestSize must be positive, got: %d", cfg.MaxRequestSize))
	}

	if len(errors) > 0 {
		errMsg := "Configuration validation failed:\n"
		for i, err := range errors {
			errMsg += fmt.Sprintf("  %d. %s\n", i+1, err)
		}
		return fmt.Errorf("%s", errMsg)
	}

	return nil
}

func (cfg *Config) LogConfiguration() {
	cfg.Log.Info("Configuration loaded successfully",
		"age_range", cfg.AgeRange().String(),
		"quantity_range", cfg.QuantityRange().String(),
		"order_date_fixed_year", cfg.OrderDateFixedYear,
		"workers", cfg.Workers,
		"chunk_size", cfg.ChunkSize,
		"max_batch_records", cfg.MaxBatchRecords,
		"mongo_uri", redactMongoURI(cfg.MongoURI),
		"mongo_database", cfg.MongoDatabaseName,
		"mongo_conn_timeout", cfg.MongoConnTimeout,
		"port", cfg.Port,
		"request_timeout", cfg.RequestTimeout,
		"max_request_size", cfg.MaxRequestSize,
		"read_timeout", cfg.ReadTimeout,
		"write_timeout", cfg.WriteTimeout,
		"idle_timeout", cfg.IdleTimeout,
		"shutdown_timeout", cfg.ShutdownTimeout,
	)
}

func redactMongoURI(uri string) string {
	credentialRegex := regexp.MustCompile(`(mongodb(\+srv)?://)[^:]+:[^@]+@`)
	return credentialRegex.ReplaceAllString(uri, "${1}***:***@")
}

func getEnvStr(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvNum(key string, fallback int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return fallback
}

func (cfg *Config) GracefulShutdown() {
	cfg.Client.GracefulShutdown(cfg.Log, cfg.ShutdownTimeout)
}

func NormalizePaginationLimit(limit int) int {
	if limit <= 0 {
		limit = 10
	} else if limit > DefaultPaginationLimit {
		limit = DefaultPaginationLimit
	}
	return limit
}

func NormalizeOffset(offset int64) int64 {
	return max(0, offset)
}
