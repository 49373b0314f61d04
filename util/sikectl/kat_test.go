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
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/isogeny/sike/sidh"
	"github.com/isogeny/sike/sike"
)

const (
	rspFile  = "testdata/SIKEp434.rsp"
	acvpFile = "testdata/SIKEp434.json"
)

// NIST PQC response files, first records of each level.
var rspFiles = map[string]string{
	"p434": rspFile,
	"p503": "testdata/SIKEp503.rsp",
	"p751": "testdata/SIKEp751.rsp",
}

func TestParseRSP(t *testing.T) {
	vectors, err := parseRSP(strings.NewReader(`# header

count = 0
sk = 00
ss = 01

# trailing comment
count = 1
ct=02
`))
	require.NoError(t, err)
	require.Len(t, vectors, 2)
	assert.Equal(t, 3, vectors[0].line)
	assert.Equal(t, map[string]string{"count": "0", "sk": "00", "ss": "01"}, vectors[0].fields)
	assert.Equal(t, 8, vectors[1].line)
	assert.Equal(t, "02", vectors[1].fields["ct"])

	_, err = vectors[1].bytes("sk")
	assert.Error(t, err)

	_, err = parseRSP(strings.NewReader("count = 0\nnot a field\n"))
	assert.Error(t, err)
	_, err = parseRSP(strings.NewReader("count = 0\ncount = 1\n"))
	assert.Error(t, err)
}

func TestRunKATFiles(t *testing.T) {
	log := zerolog.Nop()
	for name, path := range rspFiles {
		if testing.Short() && name == "p751" {
			continue
		}
		cfg := defaultConfig()
		cfg.Params = name
		res, err := runKATFile(cfg, path, &log)
		require.NoError(t, err, path)
		assert.Equal(t, katResult{passed: 2}, res, path)
	}

	res, err := runKATFile(defaultConfig(), acvpFile, &log)
	require.NoError(t, err)
	assert.Equal(t, katResult{passed: 1}, res)
}

func TestRunRSPMismatch(t *testing.T) {
	b, err := os.ReadFile(rspFile)
	require.NoError(t, err)
	lines := strings.Split(string(b), "\n")
	var tampered []string
	for _, l := range lines {
		if strings.HasPrefix(l, "ss = ") {
			l = "ss = " + strings.Repeat("00", 16)
		}
		tampered = append(tampered, l)
	}

	var logged strings.Builder
	log := zerolog.New(&logged)
	res, err := runRSP(sike.New(sidh.Fp434), strings.NewReader(strings.Join(tampered, "\n")), &log)
	require.NoError(t, err)
	assert.Equal(t, katResult{failed: 2}, res)
	assert.Contains(t, logged.String(), "shared key mismatch")
}

func TestKATCommand(t *testing.T) {
	out := mustRun(t, "kat", rspFile, acvpFile)
	assert.Contains(t, out, rspFile+": 2 passed, 0 failed")
	assert.Contains(t, out, acvpFile+": 1 passed, 0 failed")

	out = mustRun(t, "--params", "p503", "kat", rspFiles["p503"])
	assert.Contains(t, out, rspFiles["p503"]+": 2 passed, 0 failed")

	// Wrong parameter set for the response file
	_, err := run(t, "--params", "p503", "kat", rspFile)
	assert.Error(t, err)

	_, err = run(t, "kat")
	assert.Error(t, err)

	bad := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte(`{"testGroups":[{"tgId":1,"testType":"MCT"}]}`), 0600))
	_, err = run(t, "kat", bad)
	assert.Error(t, err)
}
