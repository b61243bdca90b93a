package errors

import (
	"regexp"
	"strings"
	"unicode"
)

// ValidateModID validates a mod identifier for safety and correctness.
// The mod id becomes the document's identity key and is embedded in file
// names and generated game identifiers, so the rules are conservative:
//   - No empty ids
//   - No control characters or null bytes
//   - No path separators or traversal sequences
//   - Maximum length of 128 characters
func ValidateModID(id string) error {
	if id == "" {
		return New(ErrCodeInvalidModID, "mod id cannot be empty")
	}

	if len(id) > 128 {
		return New(ErrCodeInvalidModID, "mod id too long (max 128 characters)")
	}

	for _, r := range id {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidModID, "mod id contains invalid control characters")
		}
	}

	dangerousPatterns := []string{
		"..",   // Parent directory
		"/",    // Path separator
		"\\",   // Backslash (Windows path)
		"\x00", // Null byte
	}

	for _, pattern := range dangerousPatterns {
		if strings.Contains(id, pattern) {
			return New(ErrCodeInvalidModID, "mod id contains invalid characters: %q", pattern)
		}
	}

	return nil
}

// gameTypeRegex matches uppercase game-style type identifiers such as
// CIVILIZATION_GONDOR or UNIT_GONDOR_WARRIOR.
var gameTypeRegex = regexp.MustCompile(`^[A-Z][A-Z0-9_]*$`)

// ValidateGameType validates an uppercase game type identifier.
// An empty value is rejected; required-ness is enforced separately by the
// document validator.
func ValidateGameType(value string) error {
	if value == "" {
		return New(ErrCodeInvalidEntity, "type identifier cannot be empty")
	}
	if !gameTypeRegex.MatchString(value) {
		return New(ErrCodeInvalidEntity, "invalid type identifier: %q (expected UPPER_SNAKE_CASE)", value)
	}
	return nil
}

// ValidateOutputDir validates a build output directory path for safety.
// It prevents path traversal and ensures a reasonable length.
func ValidateOutputDir(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "output directory cannot be empty")
	}

	const maxPathLength = 500
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "output directory too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "output directory contains invalid characters")
		}
	}

	if strings.Contains(path, "..") {
		return New(ErrCodeInvalidPath, "output directory cannot contain path traversal sequences (..)")
	}

	return nil
}

// ValidateURL validates a backend URL string for safety.
// It ensures the URL has a safe scheme (http or https).
func ValidateURL(rawURL string) error {
	if rawURL == "" {
		return New(ErrCodeInvalidInput, "URL cannot be empty")
	}

	// Simple scheme validation without full URL parsing
	if !strings.HasPrefix(rawURL, "http://") && !strings.HasPrefix(rawURL, "https://") {
		return New(ErrCodeInvalidInput, "URL must use http or https scheme")
	}

	return nil
}
