package config

const (
	EnvAgeMin             = "AGE_MIN"
	EnvAgeMax             = "AGE_MAX"
	EnvQuantityMin        = "QUANTITY_MIN"
	EnvQuantityMax        = "QUANTITY_MAX"
	EnvOrderDateFixedYear = "ORDER_DATE_FIXED_YEAR"

	EnvWorkers         = "CLEANER_WORKERS"
	EnvChunkSize       = "CLEANER_CHUNK_SIZE"
	EnvMaxBatchRecords = "MAX_BATCH_RECORDS"

	EnvMongoURI          = "MONGO_URI"
	EnvMongoDatabaseName = "MONGO_DATABASE_NAME"
	EnvMongoConnTimeout  = "MONGO_CONN_TIMEOUT"

	EnvPort      = "PORT"
	EnvLogLevel  = "LOG_LEVEL"
	EnvLogFormat = "LOG_FORMAT"

	EnvRequestTimeout = "REQUEST_TIMEOUT"
	EnvMaxRequestSize = "MAX_REQUEST_SIZE"

	EnvReadTimeout     = "READ_TIMEOUT"
	EnvWriteTimeout    = "WRITE_TIMEOUT"
	EnvIdleTimeout     = "IDLE_TIMEOUT"
	EnvShutdownTimeout = "SHUTDOWN_TIMEOUT"

	EnvAPIURL = "CLEANER_API_URL"
)
