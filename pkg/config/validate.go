package config

import (
	"github.com/arthur-debert/cmdcorrect/pkg/errors"
)

// Validate checks value ranges that the decoder cannot enforce
func (c *Config) Validate() error {
	switch {
	case c.Engine.Workers < 0:
		return invalid("engine.workers", c.Engine.Workers, "must not be negative")
	case c.Engine.MatchTimeout < 0:
		return invalid("engine.match_timeout", c.Engine.MatchTimeout, "must not be negative")
	case c.Notify.ContextWidth < 0:
		return invalid("notify.context_width", c.Notify.ContextWidth, "must not be negative")
	case c.Notify.Caret == "":
		return invalid("notify.caret", c.Notify.Caret, "must not be empty")
	}

	for _, f := range Formats {
		if c.Output.Format == f {
			return nil
		}
	}
	return invalid("output.format", c.Output.Format, "must be one of auto, text, plain, json, yaml")
}

func invalid(key string, value interface{}, reason string) error {
	return errors.Newf(errors.ErrConfigValid, "%s %s", key, reason).
		WithDetail("key", key).
		WithDetail("value", value)
}
