package quotarate

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateKey(t *testing.T) {
	testCases := []struct {
		name        string
		key         string
		expectError bool
	}{
		{name: "simple key", key: "user123", expectError: false},
		{name: "allowed punctuation", key: "svc:user_1-a.b@c", expectError: false},
		{name: "empty key", key: "", expectError: true},
		{name: "too long", key: strings.Repeat("a", 65), expectError: true},
		{name: "64 bytes is fine", key: strings.Repeat("a", 64), expectError: false},
		{name: "space", key: "user 1", expectError: true},
		{name: "non-ascii", key: "usér", expectError: true},
		{name: "slash", key: "a/b", expectError: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := validateKey(tc.key, "test key")
			if tc.expectError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
