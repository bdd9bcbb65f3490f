package main

import (
	"bytes"
	"errors"
	"flag"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFlags(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		args    []string
		want    options
		wantErr string
	}{
		{name: "defaults", args: nil, want: options{}},
		{
			name: "config and migrate",
			args: []string{"-config", "/etc/chorely.yaml", "-migrate", "status"},
			want: options{configPath: "/etc/chorely.yaml", migrate: "status"},
		},
		{name: "legacy migration", args: []string{"-migrate-legacy"}, want: options{migrateLegacy: true}},
		{name: "unknown migration command", args: []string{"-migrate", "sideways"}, wantErr: `unknown migration command "sideways"`},
		{name: "unknown flag", args: []string{"-verbose"}, wantErr: "flag provided but not defined"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			var stderr bytes.Buffer
			got, err := parseFlags(tc.args, &stderr)
			if tc.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tc.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestParseFlagsHelp(t *testing.T) {
	t.Parallel()

	var stderr bytes.Buffer
	_, err := parseFlags([]string{"-h"}, &stderr)
	assert.True(t, errors.Is(err, flag.ErrHelp))
	assert.Contains(t, stderr.String(), "-migrate-legacy")
}

func TestShutdownTimeout(t *testing.T) {
	t.Parallel()

	assert.Equal(t, defaultShutdownTimeout, shutdownTimeout(0))
	assert.Equal(t, defaultShutdownTimeout, shutdownTimeout(-3))
	assert.Equal(t, 30*time.Second, shutdownTimeout(30))
}
