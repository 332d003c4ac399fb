package gatehouse

import "time"

// Config holds configuration for the Console.
type Config struct {
	// PermissionFetchTimeout bounds a single permission fetch.
	// Defaults to 10s.
	PermissionFetchTimeout time.Duration `json:"permission_fetch_timeout,omitempty"`

	// DecisionLogSize is the capacity of the in-memory decision log.
	// Defaults to 256.
	DecisionLogSize int `json:"decision_log_size,omitempty"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		PermissionFetchTimeout: 10 * time.Second,
		DecisionLogSize:        256,
	}
}

func (c Config) fetchTimeout() time.Duration {
	if c.PermissionFetchTimeout <= 0 {
		return 10 * time.Second
	}
	return c.PermissionFetchTimeout
}
