package extension

// Config holds the gatehouse extension configuration.
// Fields can be set programmatically via ExtOption functions or loaded from
// YAML configuration files (under "extensions.gatehouse" or "gatehouse"
// keys).
type Config struct {
	// BaseURL is the root URL of the platform backend. When set, the
	// extension builds the REST backend itself.
	BaseURL string `json:"base_url" mapstructure:"base_url" yaml:"base_url"`

	// DisableMigrate prevents token store auto-migration on start.
	DisableMigrate bool `json:"disable_migrate" mapstructure:"disable_migrate" yaml:"disable_migrate"`

	// DisableRestore prevents the stored session from being restored on
	// start.
	DisableRestore bool `json:"disable_restore" mapstructure:"disable_restore" yaml:"disable_restore"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{}
}
