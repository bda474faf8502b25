package errors

import (
	"strings"
	"unicode"
)

// ValidateWord validates a word input for safety and correctness.
// It rejects inputs that could be used for path traversal or injection attacks
// when the word is later embedded in cache keys or URLs.
//
// The validation rules are intentionally conservative:
//   - No empty words
//   - No control characters
//   - No path traversal sequences (.., //)
//   - No null bytes
//   - Maximum length of 256 characters
//
// Normalization (lowercasing, trimming) is done separately by the lexicon.
func ValidateWord(word string) error {
	if strings.TrimSpace(word) == "" {
		return New(ErrCodeInvalidWord, "word cannot be empty")
	}

	if len(word) > 256 {
		return New(ErrCodeInvalidWord, "word too long (max 256 characters)")
	}

	// Check for control characters and null bytes
	for _, r := range word {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidWord, "word contains invalid control characters")
		}
	}

	// Check for path traversal patterns
	dangerousPatterns := []string{
		"..",   // Parent directory
		"//",   // Double slash
		"\x00", // Null byte
		"\\",   // Backslash (Windows path)
	}

	for _, pattern := range dangerousPatterns {
		if strings.Contains(word, pattern) {
			return New(ErrCodeInvalidWord, "word contains invalid characters: %q", pattern)
		}
	}

	return nil
}

// ValidateDepth validates a traversal depth against the allowed range.
// Depths outside [1, max] are rejected rather than clamped so that the
// caller can surface the mistake instead of silently serving a different
// graph than requested.
func ValidateDepth(depth, max int) error {
	if depth < 1 || depth > max {
		return New(ErrCodeInvalidDepth, "depth must be between 1 and %d, got %d", max, depth)
	}
	return nil
}

// ValidateURL validates a URL string for safety.
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
