package config

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server    ServerConfig    `mapstructure:"server" validate:"required"`
	Database  DatabaseConfig  `mapstructure:"database" validate:"required"`
	Scheduler SchedulerConfig `mapstructure:"scheduler" validate:"required"`
	Rollover  RolloverConfig  `mapstructure:"rollover"`
	LLM       LLMConfig       `mapstructure:"llm"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port     int    `mapstructure:"port" validate:"required,gt=0,lt=65536"`
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
	// ShutdownTimeoutSeconds bounds graceful shutdown of the HTTP server.
	ShutdownTimeoutSeconds int `mapstructure:"shutdown_timeout_seconds" validate:"gte=0"`
}

// DatabaseConfig contains all database-related configuration settings.
type DatabaseConfig struct {
	URL string `mapstructure:"url" validate:"required,url"`
}

// SchedulerConfig controls the recurrence engine and the weekly balancer.
type SchedulerConfig struct {
	// AvailableDays are the weekdays (0=Sunday) the balancer may assign.
	AvailableDays []int `mapstructure:"available_days" validate:"required,min=1,max=7,dive,min=0,max=6"`
	// SearchHorizonDays bounds the next-occurrence search.
	SearchHorizonDays int `mapstructure:"search_horizon_days" validate:"required,gt=0,lte=3660"`
	// Timezone is the IANA zone used to decide what "today" is.
	Timezone string `mapstructure:"timezone" validate:"required"`
}

// RolloverConfig controls the daily job that advances stale due dates.
type RolloverConfig struct {
	Enabled bool `mapstructure:"enabled"`
	// Schedule is a standard five-field cron expression.
	Schedule string `mapstructure:"schedule" validate:"required_if=Enabled true"`
}

// LLMConfig contains all LLM integration related settings.
// Suggestions are disabled when GeminiAPIKey is empty.
type LLMConfig struct {
	GeminiAPIKey       string `mapstructure:"gemini_api_key"`
	ModelName          string `mapstructure:"model_name" validate:"required_with=GeminiAPIKey"`
	PromptTemplatePath string `mapstructure:"prompt_template_path"`
	MaxRetries         int    `mapstructure:"max_retries" validate:"gte=0,lte=10"`
	RetryDelaySeconds  int    `mapstructure:"retry_delay_seconds" validate:"gte=0,lte=60"`
}

// SuggestionsEnabled reports whether an LLM provider is configured.
func (c LLMConfig) SuggestionsEnabled() bool {
	return c.GeminiAPIKey != ""
}
