package skin

import (
	"strings"

	"github.com/goliatone/go-skin/pkg/activity"
	"github.com/google/uuid"
)

// TableOption configures a Table on construction.
type TableOption func(*tableConfig)

type tableConfig struct {
	id      string
	actorID string
	logger  Logger
	hooks   activity.Hooks
	channel string
}

func applyTableOptions(opts []TableOption) tableConfig {
	cfg := tableConfig{}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	if cfg.id == "" {
		cfg.id = uuid.NewString()
	}
	if cfg.logger == nil {
		cfg.logger = noopLogger{}
	}
	return cfg
}

// WithTableID sets the identifier reported in traces, logs and activity
// events. Tables get a random UUID otherwise.
func WithTableID(id string) TableOption {
	return func(cfg *tableConfig) {
		cfg.id = strings.TrimSpace(id)
	}
}

// WithLogger attaches a mutation logger. A nil logger disables logging.
func WithLogger(logger Logger) TableOption {
	return func(cfg *tableConfig) {
		if logger == nil {
			cfg.logger = noopLogger{}
			return
		}
		cfg.logger = logger
	}
}

// WithActorID sets the actor reported on activity events, usually the id
// of the user editing the skin.
func WithActorID(id string) TableOption {
	return func(cfg *tableConfig) {
		cfg.actorID = strings.TrimSpace(id)
	}
}
