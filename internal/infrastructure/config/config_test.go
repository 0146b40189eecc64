package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplyDefaults(t *testing.T) {
	cfg := &Config{}
	applyDefaults(cfg)

	assert.Equal(t, "leadbridge-backend", cfg.App.Name)
	assert.Equal(t, "development", cfg.App.Env)
	assert.Equal(t, "8080", cfg.App.Port)
	assert.Equal(t, "data/campaigns.db", cfg.Database.Path)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, 10*time.Second, cfg.Media.FetchTimeout)
	assert.Equal(t, int64(10<<20), cfg.Media.MaxBytes)
}

func TestValidate_RejectsWildcardOrigin(t *testing.T) {
	cfg := &Config{}
	applyDefaults(cfg)
	cfg.HTTP.ExtensionOrigins = []string{"*"}

	assert.Error(t, cfg.validate())
}

func TestAllowedOrigins_IncludesLinkedInFirst(t *testing.T) {
	cfg := &Config{}
	applyDefaults(cfg)
	cfg.HTTP.ExtensionOrigins = []string{"chrome-extension://abc"}

	origins := cfg.AllowedOrigins()
	require.Len(t, origins, 2)
	assert.Equal(t, LinkedInOrigin, origins[0])
	assert.Equal(t, "chrome-extension://abc", origins[1])
}

func TestSplitOrigins(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{name: "empty", input: "", want: nil},
		{name: "single", input: "chrome-extension://abc", want: []string{"chrome-extension://abc"}},
		{
			name:  "multiple with whitespace",
			input: " chrome-extension://abc , chrome-extension://def ",
			want:  []string{"chrome-extension://abc", "chrome-extension://def"},
		},
		{name: "trailing comma", input: "chrome-extension://abc,", want: []string{"chrome-extension://abc"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, splitOrigins(tt.input))
		})
	}
}
