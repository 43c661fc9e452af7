package quotarate

import (
	"fmt"

	"github.com/austinerwin/quotarate/backends"
)

// Config holds the assembled limiter configuration.
type Config struct {
	BaseKey string
	Storage backends.Backend
	Params  BucketParams

	paramsSet bool
}

// Validate checks that the configuration can drive a limiter.
func (c Config) Validate() error {
	if err := validateKey(c.BaseKey, "base key"); err != nil {
		return err
	}
	if c.Storage == nil {
		return fmt.Errorf("storage backend cannot be nil")
	}
	if !c.paramsSet {
		return fmt.Errorf("quota not configured; use WithPhrase or WithParams")
	}
	if !c.Params.Unlimited {
		if c.Params.Capacity <= 0 {
			return fmt.Errorf("capacity must be positive, got %d", c.Params.Capacity)
		}
		if c.Params.RatePerSec <= 0 {
			return fmt.Errorf("rate per second must be positive, got %g", c.Params.RatePerSec)
		}
	}
	return nil
}
