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
	"encoding/hex"
	"fmt"
	"os"
	"strings"

	"github.com/cloudflare/circl/kem"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"
)

// Keys, ciphertexts and shared keys are exchanged as hex text files.

func readHexFile(path string) ([]byte, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	out, err := hex.DecodeString(strings.TrimSpace(string(b)))
	if err != nil {
		return nil, errors.Wrapf(err, "decoding %s", path)
	}
	return out, nil
}

func writeHexFile(path string, b []byte, perm os.FileMode) error {
	return os.WriteFile(path, []byte(hex.EncodeToString(b)+"\n"), perm)
}

func keygenCommand(e *env) *cli.Command {
	return &cli.Command{
		Name:  "keygen",
		Usage: "Generate a key pair",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "out",
				Usage: "prefix of the .pub and .key files",
				Value: "sike",
			},
			&cli.StringFlag{
				Name:  "seed",
				Usage: "hex seed for deterministic key generation",
			},
		},
		Action: func(c *cli.Context) error {
			s, err := e.cfg.Scheme()
			if err != nil {
				return err
			}

			var pk kem.PublicKey
			var sk kem.PrivateKey
			if c.IsSet("seed") {
				seed, err := hex.DecodeString(c.String("seed"))
				if err != nil {
					return errors.Wrap(err, "decoding seed")
				}
				if len(seed) != s.SeedSize() {
					return errors.Errorf("seed must be %d bytes, got %d", s.SeedSize(), len(seed))
				}
				pk, sk = s.DeriveKeyPair(seed)
			} else if pk, sk, err = s.GenerateKeyPair(); err != nil {
				return err
			}

			pkb, err := pk.MarshalBinary()
			if err != nil {
				return err
			}
			skb, err := sk.MarshalBinary()
			if err != nil {
				return err
			}
			out := c.String("out")
			if err := writeHexFile(out+".pub", pkb, 0644); err != nil {
				return err
			}
			if err := writeHexFile(out+".key", skb, 0600); err != nil {
				return err
			}
			e.log.Info().Str("scheme", s.Name()).Str("out", out).Msg("Generated key pair")
			return nil
		},
	}
}

func encapsCommand(e *env) *cli.Command {
	return &cli.Command{
		Name:      "encaps",
		Usage:     "Encapsulate a fresh shared key for a public key",
		ArgsUsage: "PUBLIC_KEY_FILE",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "out",
				Usage:    "ciphertext file",
				Required: true,
			},
		},
		Action: func(c *cli.Context) error {
			if c.NArg() != 1 {
				return errors.New("encaps takes exactly one public key file")
			}
			s, err := e.cfg.Scheme()
			if err != nil {
				return err
			}
			pkb, err := readHexFile(c.Args().First())
			if err != nil {
				return err
			}
			pk, err := s.UnmarshalBinaryPublicKey(pkb)
			if err != nil {
				return errors.Wrap(err, "loading public key")
			}
			ct, ss, err := s.Encapsulate(pk)
			if err != nil {
				return err
			}
			if err := writeHexFile(c.String("out"), ct, 0644); err != nil {
				return err
			}
			fmt.Fprintln(c.App.Writer, hex.EncodeToString(ss))
			return nil
		},
	}
}

func decapsCommand(e *env) *cli.Command {
	return &cli.Command{
		Name:      "decaps",
		Usage:     "Recover the shared key from a ciphertext",
		ArgsUsage: "PRIVATE_KEY_FILE CIPHERTEXT_FILE",
		Action: func(c *cli.Context) error {
			if c.NArg() != 2 {
				return errors.New("decaps takes a private key file and a ciphertext file")
			}
			s, err := e.cfg.Scheme()
			if err != nil {
				return err
			}
			skb, err := readHexFile(c.Args().Get(0))
			if err != nil {
				return err
			}
			sk, err := s.UnmarshalBinaryPrivateKey(skb)
			if err != nil {
				return errors.Wrap(err, "loading private key")
			}
			ct, err := readHexFile(c.Args().Get(1))
			if err != nil {
				return err
			}
			ss, err := s.Decapsulate(sk, ct)
			if err != nil {
				return err
			}
			fmt.Fprintln(c.App.Writer, hex.EncodeToString(ss))
			return nil
		},
	}
}
