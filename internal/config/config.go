package config

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server    ServerConfig    `mapstructure:"server" validate:"required"`
	Database  DatabaseConfig  `mapstructure:"database" validate:"required"`
	Processor ProcessorConfig `mapstructure:"processor" validate:"required"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port     int    `mapstructure:"port" validate:"required,gt=0,lt=65536"`
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
}

// DatabaseConfig contains all database-related configuration settings.
type DatabaseConfig struct {
	URL string `mapstructure:"url" validate:"required,url"`
}

// ProcessorConfig contains settings for the batch item processor and its
// shared worker pool.
type ProcessorConfig struct {
	// WorkerCount is the number of workers in the shared pool.
	// Zero means one worker per available CPU.
	WorkerCount int `mapstructure:"worker_count" validate:"gte=0"`

	// QueueSize is the buffer size of the pool's job queue.
	QueueSize int `mapstructure:"queue_size" validate:"required,gt=0"`

	// TimeoutSeconds is the aggregate deadline for a process-all batch,
	// measured from submission of the last task.
	TimeoutSeconds int `mapstructure:"timeout_seconds" validate:"required,gt=0"`

	// ItemDelayMillis is the fixed per-item delay applied before each unit
	// of work acts, modeling real processing cost.
	ItemDelayMillis int `mapstructure:"item_delay_millis" validate:"gte=0"`
}
