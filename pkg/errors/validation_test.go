package errors

import (
	"testing"
)

func TestValidateWord(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"valid simple", "water", false},
		{"valid with hyphen", "mother-in-law", false},
		{"valid with apostrophe", "o'clock", false},
		{"valid with space", "status quo", false},
		{"valid uppercase", "Water", false},
		{"valid accented", "café", false},

		{"empty", "", true},
		{"whitespace only", "   ", true},
		{"too long", string(make([]byte, 300)), true},
		{"path traversal ..", "foo/../bar", true},
		{"path traversal //", "foo//bar", true},
		{"null byte", "foo\x00bar", true},
		{"backslash", "foo\\bar", true},
		{"control char", "foo\x01bar", true},
		{"newline", "foo\nbar", true},
		{"carriage return", "foo\rbar", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateWord(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateWord(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidWord) {
				t.Errorf("ValidateWord(%q) returned wrong error code: %v", tt.input, err)
			}
		})
	}
}

func TestValidateDepth(t *testing.T) {
	tests := []struct {
		name    string
		depth   int
		max     int
		wantErr bool
	}{
		{"minimum", 1, 3, false},
		{"middle", 2, 3, false},
		{"maximum", 3, 3, false},

		{"zero", 0, 3, true},
		{"negative", -1, 3, true},
		{"above max", 4, 3, true},
		{"far above max", 100, 3, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateDepth(tt.depth, tt.max)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateDepth(%d, %d) error = %v, wantErr %v", tt.depth, tt.max, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidDepth) {
				t.Errorf("ValidateDepth(%d, %d) returned wrong error code: %v", tt.depth, tt.max, err)
			}
		})
	}
}

func TestValidateURL(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"https", "https://example.com/path", false},
		{"http", "http://example.com/path", false},

		{"empty", "", true},
		{"ftp", "ftp://example.com", true},
		{"file", "file:///etc/passwd", true},
		{"javascript", "javascript:alert(1)", true},
		{"no scheme", "example.com", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateURL(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateURL(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestErrorCodesAreUnique(t *testing.T) {
	codes := []Code{
		ErrCodeInvalidInput,
		ErrCodeInvalidWord,
		ErrCodeInvalidDepth,
		ErrCodeInvalidConfig,
		ErrCodeDataUnavailable,
		ErrCodeDataFormat,
		ErrCodeNotFound,
		ErrCodeWordNotFound,
		ErrCodeNetwork,
		ErrCodeTimeout,
		ErrCodeInternal,
		ErrCodeUnsupported,
	}

	seen := make(map[Code]bool)
	for _, code := range codes {
		if seen[code] {
			t.Errorf("Duplicate error code: %s", code)
		}
		seen[code] = true
	}
}
