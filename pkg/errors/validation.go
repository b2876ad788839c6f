package errors

import (
	"strings"
	"unicode/utf8"
)

// ValidateFragment checks that s can be handed to the fragment parser.
//
// Validation rules:
//   - Must be valid UTF-8
//   - No null bytes
//   - At most maxBytes bytes when maxBytes > 0
//
// An empty fragment is valid and cleans to an empty fragment.
func ValidateFragment(s string, maxBytes int) error {
	if maxBytes > 0 && len(s) > maxBytes {
		return New(ErrCodeTooLarge, "fragment too large (%d bytes, max %d)", len(s), maxBytes)
	}
	if !utf8.ValidString(s) {
		return New(ErrCodeParseFailure, "fragment is not valid UTF-8")
	}
	if strings.IndexByte(s, 0) >= 0 {
		return New(ErrCodeParseFailure, "fragment contains null bytes")
	}
	return nil
}

// ValidateFormat checks that format is one of the allowed output formats.
func ValidateFormat(format string, allowed ...string) error {
	for _, a := range allowed {
		if format == a {
			return nil
		}
	}
	return New(ErrCodeInvalidFormat, "invalid format: %q (must be one of: %s)", format, strings.Join(allowed, ", "))
}
