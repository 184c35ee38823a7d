package options

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExactlyOne(t *testing.T) {
	tests := []struct {
		name    string
		sources []Source
		wantErr string
	}{
		{"one of three", []Source{Named("file", true), Named("url", false), Named("content", false)}, ""},
		{"none", []Source{Named("file", false), Named("url", false), Named("content", false)},
			"exactly one of file, url, or content must be provided (got 0)"},
		{"two", []Source{Named("file", true), Named("url", false), Named("content", true)},
			"exactly one of file, url, or content must be provided (got 2)"},
		{"pair", []Source{Named("a", false), Named("b", false)}, "exactly one of a or b must be provided (got 0)"},
		{"single missing", []Source{Named("a", false)}, "exactly one of a must be provided (got 0)"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ExactlyOne(tt.sources...)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.EqualError(t, err, tt.wantErr)
		})
	}
}
