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
	"bufio"
	"bytes"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/urfave/cli/v2"

	"github.com/isogeny/sike/sike"
)

// rspVector is one record of a NIST PQC response file, i.e.
//
//	count = 0
//	seed = ...
//	pk = ...
//	sk = ...
//	ct = ...
//	ss = ...
type rspVector struct {
	// line is the line number of the first field.
	line   int
	fields map[string]string
}

func (v *rspVector) bytes(key string) ([]byte, error) {
	h, ok := v.fields[key]
	if !ok {
		return nil, errors.Errorf("record at line %d has no %q field", v.line, key)
	}
	b, err := hex.DecodeString(h)
	if err != nil {
		return nil, errors.Wrapf(err, "record at line %d: field %q", v.line, key)
	}
	return b, nil
}

// parseRSP splits r into records. Records are separated by blank lines and
// lines starting with '#' are ignored.
func parseRSP(r io.Reader) ([]*rspVector, error) {
	var out []*rspVector
	var cur *rspVector

	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if len(line) != 0 && line[0] == '#' {
			continue
		}
		if len(line) == 0 {
			cur = nil
			continue
		}

		i := strings.IndexByte(line, '=')
		if i < 0 {
			return nil, errors.Errorf("line %d: expected \"key = value\", got %q", lineNo, line)
		}
		key := strings.TrimSpace(line[:i])
		value := strings.TrimSpace(line[i+1:])

		if cur == nil {
			cur = &rspVector{line: lineNo, fields: make(map[string]string)}
			out = append(out, cur)
		}
		if _, dup := cur.fields[key]; dup {
			return nil, errors.Errorf("line %d: duplicate field %q", lineNo, key)
		}
		cur.fields[key] = value
	}
	return out, scanner.Err()
}

// The following structures are the JSON layout of KEM decapsulation vector
// sets, in the style of ACVP.

type kemTestVectorSet struct {
	Groups []kemTestGroup `json:"testGroups"`
}

type kemTestGroup struct {
	ID           uint64 `json:"tgId"`
	Type         string `json:"testType"`
	ParameterSet string `json:"parameterSet"`
	Compressed   bool   `json:"compressed"`
	Tests        []struct {
		ID    uint64 `json:"tcId"`
		SkHex string `json:"sk"`
		CtHex string `json:"ct"`
		SsHex string `json:"ss"`
	} `json:"tests"`
}

// katResult counts the vectors of one file.
type katResult struct {
	passed, failed int
}

// checkDecaps decapsulates ct with sk and compares the result with ss.
func checkDecaps(s *sike.Scheme, sk, ct, ss []byte) error {
	prv, err := s.UnmarshalBinaryPrivateKey(sk)
	if err != nil {
		return errors.Wrap(err, "loading private key")
	}
	got, err := s.Decapsulate(prv, ct)
	if err != nil {
		return err
	}
	if !bytes.Equal(got, ss) {
		return errors.Errorf("shared key mismatch: got %X, want %X", got, ss)
	}
	return nil
}

func runRSP(s *sike.Scheme, r io.Reader, log *zerolog.Logger) (katResult, error) {
	var res katResult
	vectors, err := parseRSP(r)
	if err != nil {
		return res, err
	}
	for _, v := range vectors {
		err := func() error {
			sk, err := v.bytes("sk")
			if err != nil {
				return err
			}
			ct, err := v.bytes("ct")
			if err != nil {
				return err
			}
			ss, err := v.bytes("ss")
			if err != nil {
				return err
			}
			// The public key is the tail of the private key.
			if pk, err := v.bytes("pk"); err == nil && !bytes.HasSuffix(sk, pk) {
				return errors.New("pk is not the public part of sk")
			}
			return checkDecaps(s, sk, ct, ss)
		}()
		if err != nil {
			res.failed++
			log.Warn().Err(err).Int("line", v.line).Str("count", v.fields["count"]).Msg("Vector failed")
			continue
		}
		res.passed++
	}
	return res, nil
}

func runACVP(cfg *Config, r io.Reader, log *zerolog.Logger) (katResult, error) {
	var res katResult
	var parsed kemTestVectorSet
	if err := json.NewDecoder(r).Decode(&parsed); err != nil {
		return res, err
	}

	for _, group := range parsed.Groups {
		if group.Type != "AFT" {
			return res, errors.Errorf("test group %d has unknown type %q", group.ID, group.Type)
		}
		gcfg := *cfg
		if group.ParameterSet != "" {
			gcfg.Params = group.ParameterSet
		}
		gcfg.Compressed = group.Compressed
		s, err := gcfg.sikeScheme()
		if err != nil {
			return res, errors.Wrapf(err, "test group %d", group.ID)
		}

		for _, test := range group.Tests {
			err := func() error {
				var raw [3][]byte
				for i, h := range []string{test.SkHex, test.CtHex, test.SsHex} {
					b, err := hex.DecodeString(h)
					if err != nil {
						return errors.Wrap(err, "decoding hex")
					}
					raw[i] = b
				}
				return checkDecaps(s, raw[0], raw[1], raw[2])
			}()
			if err != nil {
				res.failed++
				log.Warn().Err(err).Uint64("tgId", group.ID).Uint64("tcId", test.ID).Msg("Vector failed")
				continue
			}
			res.passed++
		}
	}
	return res, nil
}

// runKATFile dispatches on the file extension: .json files are vector sets,
// anything else is read as a response file.
func runKATFile(cfg *Config, path string, log *zerolog.Logger) (katResult, error) {
	f, err := os.Open(path)
	if err != nil {
		return katResult{}, err
	}
	defer f.Close()

	if filepath.Ext(path) == ".json" {
		return runACVP(cfg, f, log)
	}
	s, err := cfg.sikeScheme()
	if err != nil {
		return katResult{}, err
	}
	return runRSP(s, f, log)
}

func katCommand(e *env) *cli.Command {
	return &cli.Command{
		Name:      "kat",
		Usage:     "Check known answer test files",
		ArgsUsage: "FILE...",
		Description: "Decapsulates every vector of NIST .rsp files or JSON vector sets\n" +
			"and compares the shared keys. The parameter set of .rsp files is\n" +
			"taken from --params, JSON groups name their own.",
		Action: func(c *cli.Context) error {
			if c.NArg() == 0 {
				return errors.New("kat needs at least one file")
			}
			failed := 0
			for _, path := range c.Args().Slice() {
				res, err := runKATFile(e.cfg, path, &e.log)
				if err != nil {
					return errors.Wrapf(err, "processing %s", path)
				}
				fmt.Fprintf(c.App.Writer, "%s: %d passed, %d failed\n", path, res.passed, res.failed)
				failed += res.failed
			}
			if failed != 0 {
				return errors.Errorf("%d vectors failed", failed)
			}
			return nil
		},
	}
}
