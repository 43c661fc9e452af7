package memory

import (
	"testing"

	"github.com/austinerwin/quotarate/backends"
	"github.com/stretchr/testify/require"
)

func TestRegister(t *testing.T) {
	backend, err := backends.Create("memory", nil)
	require.NoError(t, err)
	require.NotNil(t, backend)
	require.NoError(t, backend.Close())
}
