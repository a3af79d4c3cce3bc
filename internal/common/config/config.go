// internal/common/config/config.go
package config

// Config is the main application configuration struct.
type Config struct {
	App       AppConfig                 `mapstructure:"app"`
	APIs      APIsConfig                `mapstructure:"apis"`
	Cache     CacheConfig               `mapstructure:"cache"`
	Discovery DiscoveryConfig           `mapstructure:"discovery"`
	Platforms map[string]PlatformConfig `mapstructure:"platforms"`
	Logging   LoggingConfig             `mapstructure:"logging"`
	Metrics   MetricsConfig             `mapstructure:"metrics"`
}

// --- Core App/Infrastructure Config ---
type AppConfig struct {
	Name        string `mapstructure:"name"`
	Version     string `mapstructure:"version"`
	Environment string `mapstructure:"environment"`
}

// APIsConfig holds settings for the external boundary services.
type APIsConfig struct {
	Personas   ServiceConfig `mapstructure:"personas"`
	Strategy   ServiceConfig `mapstructure:"strategy"`
	Monitoring ServiceConfig `mapstructure:"monitoring"`
}

// ServiceConfig describes one remote HTTP service.
type ServiceConfig struct {
	BaseURL string `mapstructure:"base_url"`
	APIKey  string `mapstructure:"api_key"`
	Timeout int    `mapstructure:"timeout"` // milliseconds
}

// CacheConfig holds the strategy-response cache settings.
type CacheConfig struct {
	Enabled bool        `mapstructure:"enabled"`
	TTL     int         `mapstructure:"ttl"` // seconds
	Redis   RedisConfig `mapstructure:"redis"`
}

type RedisConfig struct {
	Address  string `mapstructure:"address"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// DiscoveryConfig holds defaults for monitoring activation requests.
type DiscoveryConfig struct {
	TimeFilter         string  `mapstructure:"time_filter"`
	MaxItemsPerSource  int     `mapstructure:"max_items_per_source"`
	RelevanceThreshold float64 `mapstructure:"relevance_threshold"`
}

// PlatformConfig overrides a registered platform's availability.
type PlatformConfig struct {
	Status string `mapstructure:"status"` // "active" | "coming_soon"
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	Output string `mapstructure:"output"`
}

// MetricsConfig holds the /metrics listener settings.
type MetricsConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Address string `mapstructure:"address"`
}
