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

// sikectl generates SIKE keys, encapsulates and decapsulates shared keys,
// checks known answer test files and benchmarks the parameter sets.
package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/urfave/cli/v2"
	"golang.org/x/term"
)

const (
	configFlag        = "config"
	paramsFlag        = "params"
	compressedFlag    = "compressed"
	hybridFlag        = "hybrid"
	logLevelFlag      = "log-level"
	workersFlag       = "workers"
	iterationsFlag    = "iterations"
	metricsListenFlag = "metrics-listen"

	consoleTimeFormat = time.RFC3339
)

// env is the state shared by the commands once the global flags are
// parsed.
type env struct {
	cfg *Config
	log zerolog.Logger
}

func newLogger(w io.Writer, level string) (zerolog.Logger, error) {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		return zerolog.Nop(), err
	}
	if f, ok := w.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		w = zerolog.ConsoleWriter{Out: f, TimeFormat: consoleTimeFormat}
	}
	return zerolog.New(w).Level(lvl).With().Timestamp().Logger(), nil
}

func newApp(stdout, stderr io.Writer) *cli.App {
	e := &env{log: zerolog.Nop()}
	app := &cli.App{
		Name:      "sikectl",
		Usage:     "SIKE key encapsulation tool",
		Writer:    stdout,
		ErrWriter: stderr,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    configFlag,
				Usage:   "YAML configuration file",
				EnvVars: []string{"SIKECTL_CONFIG"},
			},
			&cli.StringFlag{
				Name:  paramsFlag,
				Usage: "parameter set: p434, p503, p610 or p751",
			},
			&cli.BoolFlag{
				Name:  compressedFlag,
				Usage: "use compressed public keys and ciphertexts",
			},
			&cli.BoolFlag{
				Name:  hybridFlag,
				Usage: "combine SIKE with an edwards25519 key exchange",
			},
			&cli.StringFlag{
				Name:  logLevelFlag,
				Usage: "log level: debug, info, warn or error",
			},
		},
		Before: func(c *cli.Context) error {
			cfg, err := loadConfig(c.String(configFlag))
			if err != nil {
				return err
			}
			if err := cfg.applyFlags(c); err != nil {
				return err
			}
			log, err := newLogger(stderr, cfg.LogLevel)
			if err != nil {
				return err
			}
			e.cfg, e.log = cfg, log
			return nil
		},
		Commands: []*cli.Command{
			keygenCommand(e),
			encapsCommand(e),
			decapsCommand(e),
			katCommand(e),
			benchCommand(e),
		},
	}
	return app
}

func main() {
	if err := newApp(os.Stdout, os.Stderr).Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "sikectl: %v\n", err)
		os.Exit(1)
	}
}
