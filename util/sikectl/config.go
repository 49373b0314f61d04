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
	"runtime"

	"github.com/cloudflare/circl/kem"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"
	"gopkg.in/yaml.v3"

	"github.com/isogeny/sike/hybrid"
	"github.com/isogeny/sike/internal/params"
	"github.com/isogeny/sike/sike"
)

// Config is the content of the YAML file given with --config. Command line
// flags take precedence over it.
type Config struct {
	Params     string        `yaml:"params"`
	Compressed bool          `yaml:"compressed"`
	Hybrid     bool          `yaml:"hybrid"`
	LogLevel   string        `yaml:"log-level"`
	Bench      BenchConfig   `yaml:"bench"`
	Metrics    MetricsConfig `yaml:"metrics"`
}

type BenchConfig struct {
	Workers    int `yaml:"workers"`
	Iterations int `yaml:"iterations"`
}

type MetricsConfig struct {
	// Address the bench command serves /metrics on. Empty disables it.
	Listen string `yaml:"listen"`
}

func defaultConfig() *Config {
	return &Config{
		Params:   "p434",
		LogLevel: "info",
		Bench: BenchConfig{
			Workers:    runtime.NumCPU(),
			Iterations: 10,
		},
	}
}

// loadConfig reads the file at path over the defaults. An empty path
// returns the defaults.
func loadConfig(path string) (*Config, error) {
	cfg := defaultConfig()
	if path == "" {
		return cfg, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "opening config")
	}
	defer f.Close()

	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil {
		return nil, errors.Wrapf(err, "parsing config %s", path)
	}
	return cfg, cfg.validate()
}

func (cfg *Config) validate() error {
	if _, err := params.Parse(cfg.Params); err != nil {
		return err
	}
	if cfg.Bench.Workers < 1 {
		return errors.Errorf("bench.workers must be positive, got %d", cfg.Bench.Workers)
	}
	if cfg.Bench.Iterations < 1 {
		return errors.Errorf("bench.iterations must be positive, got %d", cfg.Bench.Iterations)
	}
	return nil
}

// applyFlags overrides the file values with the flags set on the command
// line.
func (cfg *Config) applyFlags(c *cli.Context) error {
	if c.IsSet(paramsFlag) {
		cfg.Params = c.String(paramsFlag)
	}
	if c.IsSet(compressedFlag) {
		cfg.Compressed = c.Bool(compressedFlag)
	}
	if c.IsSet(hybridFlag) {
		cfg.Hybrid = c.Bool(hybridFlag)
	}
	if c.IsSet(logLevelFlag) {
		cfg.LogLevel = c.String(logLevelFlag)
	}
	if c.IsSet(workersFlag) {
		cfg.Bench.Workers = c.Int(workersFlag)
	}
	if c.IsSet(iterationsFlag) {
		cfg.Bench.Iterations = c.Int(iterationsFlag)
	}
	if c.IsSet(metricsListenFlag) {
		cfg.Metrics.Listen = c.String(metricsListenFlag)
	}
	return cfg.validate()
}

// sikeScheme returns the SIKE scheme the configuration selects, without the
// hybrid layer.
func (cfg *Config) sikeScheme(opts ...sike.Option) (*sike.Scheme, error) {
	id, err := params.Parse(cfg.Params)
	if err != nil {
		return nil, err
	}
	if cfg.Compressed {
		return sike.NewCompressed(id, opts...), nil
	}
	return sike.New(id, opts...), nil
}

// Scheme returns the KEM the configuration selects.
func (cfg *Config) Scheme(opts ...sike.Option) (kem.Scheme, error) {
	s, err := cfg.sikeScheme(opts...)
	if err != nil {
		return nil, err
	}
	if cfg.Hybrid {
		return hybrid.New(s), nil
	}
	return s, nil
}
