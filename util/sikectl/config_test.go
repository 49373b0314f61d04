// Copyright (c) 2026, The sike Authors.
//
// Permission to use, copy, modify, and/or distribute this software for any
// purpose with or without fee is hereby granted, provided that the above
// copyright notice and this permission notice appear in all copies.
//
// THE SOFTWARE IS PROVIDED "AS IS" AND THE AUTHOR DISCLAIMS ALL WARRANTIES
// WITH REGARD TO THIS SOFTWARE INCLUDING ALL IMPLIED WARRANTIES OF
// MERCHANTABILITY AND FITNESS. IN NO EVENT SHALL THE AUTHOR BE LIABLE FOR ANY
// SPECIAL, DIRECT, INDIRECT, OR CONSEQUENTIAL DAMAGES OR ANY DAMAGES
// WHATSOEVER RESULTING FROM LOSS OF USE, DATA OR PROFITS, WHETHER IN AN ACTION
// OF CONTRACT, NEGLIGENCE OR OTHER TORTIOUS ACTION, ARISING OUT OF OR IN
// CONNECTION WITH THE USE OR PERFORMANCE OF THIS SOFTWARE.

package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/isogeny/sike/hybrid"
	"github.com/isogeny/sike/sike"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "sikectl.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := loadConfig("")
	require.NoError(t, err)
	assert.Equal(t, "p434", cfg.Params)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.False(t, cfg.Compressed)
	assert.False(t, cfg.Hybrid)
	assert.Positive(t, cfg.Bench.Workers)
	assert.Positive(t, cfg.Bench.Iterations)
	assert.Empty(t, cfg.Metrics.Listen)
}

func TestLoadConfigFile(t *testing.T) {
	path := writeConfig(t, `
params: p751
compressed: true
hybrid: true
log-level: debug
bench:
  workers: 3
  iterations: 7
metrics:
  listen: 127.0.0.1:9090
`)
	cfg, err := loadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, &Config{
		Params:     "p751",
		Compressed: true,
		Hybrid:     true,
		LogLevel:   "debug",
		Bench:      BenchConfig{Workers: 3, Iterations: 7},
		Metrics:    MetricsConfig{Listen: "127.0.0.1:9090"},
	}, cfg)

	s, err := cfg.Scheme()
	require.NoError(t, err)
	require.IsType(t, &hybrid.Scheme{}, s)
	assert.Equal(t, "SIKEp751-compressed-Ed25519", s.Name())
}

func TestLoadConfigPartial(t *testing.T) {
	cfg, err := loadConfig(writeConfig(t, "params: P503\n"))
	require.NoError(t, err)
	assert.Equal(t, "P503", cfg.Params)
	assert.Equal(t, defaultConfig().Bench, cfg.Bench)

	s, err := cfg.Scheme()
	require.NoError(t, err)
	require.IsType(t, &sike.Scheme{}, s)
	assert.Equal(t, "SIKEp503", s.Name())
}

func TestLoadConfigErrors(t *testing.T) {
	for name, content := range map[string]string{
		"unknown field":  "param: p434\n",
		"unknown params": "params: p512\n",
		"no workers":     "bench:\n  workers: 0\n",
		"bad iterations": "bench:\n  iterations: -1\n",
		"not yaml":       "params: [p434\n",
	} {
		content := content
		t.Run(name, func(t *testing.T) {
			_, err := loadConfig(writeConfig(t, content))
			assert.Error(t, err)
		})
	}

	_, err := loadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
