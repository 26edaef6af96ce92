package app

import (
	"fmt"

	"github.com/go-playground/validator/v10"

	coreconfig "github.com/m3rciful/recruitbot/core/config"
	coredatabase "github.com/m3rciful/recruitbot/core/database"
	tgsender "github.com/m3rciful/recruitbot/core/telegram/sender"
	"github.com/m3rciful/recruitbot/internal/backend"
)

var validate = validator.New()

// Config is the full recruitbot configuration: the core bot sections plus
// the backend, the optional audit database and the outbound sender.
type Config struct {
	coreconfig.Config `yaml:",inline"`

	Backend  backend.Config      `yaml:"backend"`
	Database coredatabase.Config `yaml:"database"`
	Sender   tgsender.Options    `yaml:"sender"`
}

// Load reads path and the environment into a validated Config.
func Load(path string) (*Config, error) {
	var cfg Config
	if err := coreconfig.Decode(path, &cfg); err != nil {
		return nil, err
	}
	if err := coreconfig.Normalize(&cfg.Config); err != nil {
		return nil, err
	}
	cfg.Backend = cfg.Backend.WithDefaults()
	if err := validate.Struct(&cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return &cfg, nil
}
