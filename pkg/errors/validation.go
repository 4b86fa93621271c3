package errors

import (
	"strings"
	"unicode"
)

// ValidateItemID validates an item identifier for safety and correctness.
// Item IDs travel through JSON documents, URL paths and SVG element IDs,
// so the rules are intentionally conservative:
//   - No empty IDs
//   - No leading or trailing whitespace
//   - No control characters or embedded whitespace
//   - No path separators (IDs appear in REST routes)
//   - Maximum length of 256 characters
func ValidateItemID(id string) error {
	if id == "" {
		return New(ErrCodeInvalidItem, "item id cannot be empty")
	}

	if len(id) > 256 {
		return New(ErrCodeInvalidItem, "item id too long (max 256 characters)")
	}

	for _, r := range id {
		if unicode.IsControl(r) || unicode.IsSpace(r) {
			return New(ErrCodeInvalidItem, "item id contains whitespace or control characters")
		}
	}

	if strings.ContainsAny(id, "/\\") {
		return New(ErrCodeInvalidItem, "item id cannot contain path separators")
	}

	return nil
}

// ValidateOutputPath validates a file path for writing rendered output.
// It prevents path traversal and rejects obviously broken paths.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 500 characters
//   - No null bytes or control characters
//   - No path traversal sequences (..)
func ValidateOutputPath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "path cannot be empty")
	}

	const maxPathLength = 500
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "path contains invalid characters")
		}
	}

	if strings.Contains(path, "..") {
		return New(ErrCodeInvalidPath, "path cannot contain path traversal sequences (..)")
	}

	return nil
}
