package backend

import "time"

// Config points the client at the recruiting REST service.
type Config struct {
	BaseURL string `yaml:"base_url" envconfig:"BACKEND_BASE_URL" validate:"required,url"`
	// Timeout bounds a single HTTP exchange.
	Timeout time.Duration `yaml:"timeout" envconfig:"BACKEND_TIMEOUT" validate:"gte=0"`
	// CallTimeout bounds one conversation-level backend call.
	CallTimeout time.Duration `yaml:"call_timeout" envconfig:"BACKEND_CALL_TIMEOUT" validate:"gte=0"`
}

const (
	defaultTimeout     = 10 * time.Second
	defaultCallTimeout = 15 * time.Second
)

// WithDefaults fills zero durations.
func (c Config) WithDefaults() Config {
	if c.Timeout <= 0 {
		c.Timeout = defaultTimeout
	}
	if c.CallTimeout <= 0 {
		c.CallTimeout = defaultCallTimeout
	}
	return c
}
