package errors

import (
	"strings"
	"testing"
)

func TestValidateModID(t *testing.T) {
	tests := []struct {
		name    string
		id      string
		wantErr bool
	}{
		{"valid simple", "gondor-mod", false},
		{"valid with dots", "com.example.gondor", false},
		{"empty", "", true},
		{"path traversal", "../etc/passwd", true},
		{"forward slash", "mods/gondor", true},
		{"backslash", "mods\\gondor", true},
		{"null byte", "mod\x00id", true},
		{"control char", "mod\nid", true},
		{"too long", strings.Repeat("a", 129), true},
		{"max length ok", strings.Repeat("a", 128), false},
	}

	for _, tt := range tests {
		err := ValidateModID(tt.id)
		if (err != nil) != tt.wantErr {
			t.Errorf("%s: ValidateModID(%q) error = %v, wantErr %v", tt.name, tt.id, err, tt.wantErr)
		}
	}
}

func TestValidateGameType(t *testing.T) {
	tests := []struct {
		value   string
		wantErr bool
	}{
		{"CIVILIZATION_GONDOR", false},
		{"UNIT_GONDOR_WARRIOR", false},
		{"TRAIT_ATTRIBUTE_CULTURAL", false},
		{"", true},
		{"civilization_gondor", true}, // lowercase
		{"_LEADING", true},
		{"HAS SPACE", true},
	}

	for _, tt := range tests {
		err := ValidateGameType(tt.value)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateGameType(%q) error = %v, wantErr %v", tt.value, err, tt.wantErr)
		}
	}
}

func TestValidateOutputDir(t *testing.T) {
	tests := []struct {
		path    string
		wantErr bool
	}{
		{"out/build", false},
		{"/tmp/civmod-out", false},
		{"", true},
		{"out/../../etc", true},
		{strings.Repeat("a", 501), true},
	}

	for _, tt := range tests {
		err := ValidateOutputDir(tt.path)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateOutputDir(%q) error = %v, wantErr %v", tt.path, err, tt.wantErr)
		}
	}
}

func TestValidateURL(t *testing.T) {
	tests := []struct {
		url     string
		wantErr bool
	}{
		{"http://localhost:8080", false},
		{"https://api.example.com", false},
		{"", true},
		{"ftp://example.com", true},
		{"file:///etc/passwd", true},
	}

	for _, tt := range tests {
		err := ValidateURL(tt.url)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateURL(%q) error = %v, wantErr %v", tt.url, err, tt.wantErr)
		}
	}
}
