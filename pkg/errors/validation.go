package errors

import (
	"strings"
	"unicode"
)

// MaxIDLength is the longest element identifier accepted by [ValidateID].
const MaxIDLength = 256

// ValidateID validates an element identifier read from a layout document.
//
// The rules are intentionally conservative because identifiers end up in
// DOT output, cache keys, and HTTP responses:
//   - No empty identifiers
//   - No control characters or null bytes
//   - No surrounding whitespace
//   - Maximum length of [MaxIDLength] characters
func ValidateID(id string) error {
	if id == "" {
		return New(ErrCodeInvalidID, "element ID cannot be empty")
	}

	if len(id) > MaxIDLength {
		return New(ErrCodeInvalidID, "element ID too long (max %d characters)", MaxIDLength)
	}

	for _, r := range id {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidID, "element ID %q contains control characters", id)
		}
	}

	if strings.TrimSpace(id) != id {
		return New(ErrCodeInvalidID, "element ID %q has surrounding whitespace", id)
	}

	return nil
}
