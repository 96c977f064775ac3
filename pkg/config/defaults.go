package config

import "time"

const (
	DefaultAgeMin             = 0
	DefaultAgeMax             = 100
	DefaultQuantityMin        = 0
	DefaultQuantityMax        = 100
	DefaultOrderDateFixedYear = 2025

	DefaultWorkers         = 4
	DefaultChunkSize       = 500
	DefaultMaxBatchRecords = 1000

	DefaultMongoURI          = "mongodb://localhost:27017"
	DefaultMongoDatabaseName = "datacleaner"
	DefaultMongoConnTimeout  = 10 * time.Second

	DefaultPort     = "8080"
	DefaultLogLevel = "info"

	DefaultRequestTimeout = 30 * time.Second
	DefaultMaxRequestSize = 10 * 1024 * 1024 // 10MB

	DefaultReadTimeout     = 15 * time.Second
	DefaultWriteTimeout    = 15 * time.Second
	DefaultIdleTimeout     = 60 * time.Second
	DefaultShutdownTimeout = 30 * time.Second

	DefaultPaginationLimit = 100

	DefaultAPIURL     = "http://localhost:8080"
	DefaultAPITimeout = 60 * time.Second
)
