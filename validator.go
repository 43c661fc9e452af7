package quotarate

import (
	"fmt"
)

// allowedKeyChars is a precomputed boolean array for O(1) character checks.
var allowedKeyChars [128]bool

func init() {
	for _, c := range "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789_-:.@" {
		allowedKeyChars[c] = true
	}
}

// validateKey validates that a limiter key meets the requirements:
// - Maximum 64 bytes length
// - Contains only alphanumeric ASCII, underscore, hyphen, colon, period, at
func validateKey(key, keyType string) error {
	if len(key) == 0 {
		return fmt.Errorf("%s cannot be empty", keyType)
	}

	if len(key) > 64 {
		return fmt.Errorf("%s cannot exceed 64 bytes, got %d bytes", keyType, len(key))
	}

	const hint = "Only alphanumeric ASCII, underscore (_), hyphen (-), colon (:), period (.), and at (@) are allowed"

	for i, r := range key {
		if r >= 128 || !allowedKeyChars[r] {
			return fmt.Errorf("%s contains invalid character '%c' at position %d. %s", keyType, r, i, hint)
		}
	}

	return nil
}
