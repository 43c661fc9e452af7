package memory

import (
	"github.com/austinerwin/quotarate/backends"
)

func init() {
	backends.Register("memory", func(config any) (backends.Backend, error) {
		// Memory backend takes no configuration.
		return New(), nil
	})
}
