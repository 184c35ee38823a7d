package httputil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateStatusCode(t *testing.T) {
	tests := []struct {
		code     string
		expected bool
	}{
		{"200", true},
		{"404", true},
		{"100", true},
		{"599", true},
		{"default", true},
		{"x-custom", true},
		{"2XX", true},
		{"5XX", true},
		{"099", false},
		{"600", false},
		{"6XX", false},
		{"0XX", false},
		{"2X0", false},
		{"20", false},
		{"2000", false},
		{"abc", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			assert.Equal(t, tt.expected, ValidateStatusCode(tt.code))
		})
	}
}

// TestHTTPMethodConstants verifies that method constants have expected lowercase values.
func TestHTTPMethodConstants(t *testing.T) {
	for _, m := range []string{MethodGet, MethodPut, MethodPost, MethodDelete, MethodOptions, MethodHead, MethodPatch, MethodTrace} {
		assert.True(t, IsMethod(m), m)
	}
	assert.False(t, IsMethod("GET"), "methods are matched lowercase")
	assert.False(t, IsMethod("connect"))
	assert.False(t, IsMethod(""))
}

func TestIsJSONMediaType(t *testing.T) {
	tests := []struct {
		mediaType string
		expected  bool
	}{
		{"application/json", true},
		{"application/json; charset=utf-8", true},
		{"application/problem+json", true},
		{"application/vnd.api+json", true},
		{"application/xml", false},
		{"text/plain", false},
		{"not a media type", false},
	}

	for _, tt := range tests {
		t.Run(tt.mediaType, func(t *testing.T) {
			assert.Equal(t, tt.expected, IsJSONMediaType(tt.mediaType))
		})
	}
}
