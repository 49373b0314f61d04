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
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// run executes sikectl with args and returns its standard output.
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	err := newApp(&stdout, &stderr).Run(append([]string{"sikectl"}, args...))
	return stdout.String(), err
}

func mustRun(t *testing.T, args ...string) string {
	t.Helper()
	out, err := run(t, args...)
	require.NoError(t, err, "sikectl %s", strings.Join(args, " "))
	return out
}

func readTrimmed(t *testing.T, path string) string {
	t.Helper()
	b, err := os.ReadFile(path)
	require.NoError(t, err)
	return strings.TrimSpace(string(b))
}

func TestKeygenEncapsDecaps(t *testing.T) {
	for _, mode := range [][]string{
		nil,
		{"--compressed"},
		{"--hybrid"},
	} {
		mode := mode
		t.Run(strings.Join(append([]string{"sike"}, mode...), " "), func(t *testing.T) {
			dir := t.TempDir()
			prefix := filepath.Join(dir, "alice")
			ctPath := filepath.Join(dir, "ct")

			mustRun(t, append(mode, "keygen", "--out", prefix)...)
			encOut := mustRun(t, append(mode, "encaps", "--out", ctPath, prefix+".pub")...)
			decOut := mustRun(t, append(mode, "decaps", prefix+".key", ctPath)...)

			require.NotEmpty(t, strings.TrimSpace(encOut))
			assert.Equal(t, encOut, decOut)
		})
	}
}

func TestKeygenSeed(t *testing.T) {
	dir := t.TempDir()
	seed := strings.Repeat("ab", 32)

	mustRun(t, "keygen", "--seed", seed, "--out", filepath.Join(dir, "a"))
	mustRun(t, "keygen", "--seed", seed, "--out", filepath.Join(dir, "b"))
	assert.Equal(t, readTrimmed(t, filepath.Join(dir, "a.pub")), readTrimmed(t, filepath.Join(dir, "b.pub")))
	assert.Equal(t, readTrimmed(t, filepath.Join(dir, "a.key")), readTrimmed(t, filepath.Join(dir, "b.key")))

	_, err := run(t, "keygen", "--seed", "abcd", "--out", filepath.Join(dir, "c"))
	assert.Error(t, err)
	_, err = run(t, "keygen", "--seed", "zz", "--out", filepath.Join(dir, "c"))
	assert.Error(t, err)
}

func TestFlagsOverrideConfig(t *testing.T) {
	dir := t.TempDir()
	config := writeConfig(t, "params: p503\n")

	mustRun(t, "--config", config, "keygen", "--out", filepath.Join(dir, "file"))
	mustRun(t, "--config", config, "--params", "p434", "keygen", "--out", filepath.Join(dir, "flag"))

	assert.Len(t, readTrimmed(t, filepath.Join(dir, "file.pub")), 2*378)
	assert.Len(t, readTrimmed(t, filepath.Join(dir, "flag.pub")), 2*330)
}

func TestBadInvocations(t *testing.T) {
	dir := t.TempDir()
	prefix := filepath.Join(dir, "k")
	mustRun(t, "keygen", "--out", prefix)

	for name, args := range map[string][]string{
		"unknown params":   {"--params", "p999", "keygen", "--out", prefix},
		"bad log level":    {"--log-level", "verbose", "keygen", "--out", prefix},
		"encaps no args":   {"encaps", "--out", filepath.Join(dir, "ct")},
		"encaps no out":    {"encaps", prefix + ".pub"},
		"decaps one arg":   {"decaps", prefix + ".key"},
		"key as public":    {"encaps", "--out", filepath.Join(dir, "ct"), prefix + ".key"},
		"missing file":     {"encaps", "--out", filepath.Join(dir, "ct"), filepath.Join(dir, "nope")},
		"wrong parameters": {"--params", "p503", "encaps", "--out", filepath.Join(dir, "ct"), prefix + ".pub"},
	} {
		args := args
		t.Run(name, func(t *testing.T) {
			_, err := run(t, args...)
			assert.Error(t, err)
		})
	}
}

func TestBenchCommand(t *testing.T) {
	out := mustRun(t, "--log-level", "error", "bench", "--workers", "2", "--iterations", "1")
	assert.Contains(t, out, "SIKEp434: 2 rounds")

	_, err := run(t, "bench", "--workers", "0")
	assert.Error(t, err)
}
