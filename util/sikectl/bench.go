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
	"context"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/cloudflare/circl/kem"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"github.com/urfave/cli/v2"
	"golang.org/x/sync/errgroup"

	"github.com/isogeny/sike/metrics"
)

const shutdownTimeout = 5 * time.Second

// runBench starts workers that each generate a key pair and run iterations
// rounds of encapsulation and decapsulation with it.
func runBench(ctx context.Context, s kem.Scheme, workers, iterations int) error {
	g, ctx := errgroup.WithContext(ctx)
	for w := 0; w < workers; w++ {
		g.Go(func() error {
			pk, sk, err := s.GenerateKeyPair()
			if err != nil {
				return err
			}
			for i := 0; i < iterations; i++ {
				if err := ctx.Err(); err != nil {
					return err
				}
				ct, ss, err := s.Encapsulate(pk)
				if err != nil {
					return err
				}
				got, err := s.Decapsulate(sk, ct)
				if err != nil {
					return err
				}
				if !bytes.Equal(ss, got) {
					return errors.New("decapsulated key differs from encapsulated key")
				}
			}
			return nil
		})
	}
	return g.Wait()
}

// serveMetrics serves the registry on l until ctx is done.
func serveMetrics(ctx context.Context, l net.Listener, reg *prometheus.Registry, log *zerolog.Logger) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	server := &http.Server{
		Handler:      mux,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	errC := make(chan error, 1)
	go func() {
		errC <- server.Serve(l)
	}()
	log.Info().Str("addr", l.Addr().String()).Msg("Starting metrics server")

	select {
	case err := <-errC:
		return err
	case <-ctx.Done():
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	_ = server.Shutdown(shutdownCtx)
	if err := <-errC; err != http.ErrServerClosed {
		return err
	}
	log.Info().Msg("Metrics server stopped")
	return nil
}

func benchCommand(e *env) *cli.Command {
	return &cli.Command{
		Name:  "bench",
		Usage: "Run concurrent encapsulation and decapsulation rounds",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:  workersFlag,
				Usage: "number of concurrent workers",
			},
			&cli.IntFlag{
				Name:  iterationsFlag,
				Usage: "rounds per worker",
			},
			&cli.StringFlag{
				Name:  metricsListenFlag,
				Usage: "address to serve Prometheus metrics on while running",
			},
		},
		Action: func(c *cli.Context) error {
			cfg := e.cfg
			if err := cfg.applyFlags(c); err != nil {
				return err
			}
			inner, err := cfg.Scheme()
			if err != nil {
				return err
			}
			reg := prometheus.NewRegistry()
			s, err := metrics.Instrument(inner, reg, &e.log)
			if err != nil {
				return err
			}

			ctx, cancel := context.WithCancel(c.Context)
			defer cancel()
			serveErr := make(chan error, 1)
			if cfg.Metrics.Listen != "" {
				l, err := net.Listen("tcp", cfg.Metrics.Listen)
				if err != nil {
					return errors.Wrap(err, "listening for metrics")
				}
				go func() { serveErr <- serveMetrics(ctx, l, reg, &e.log) }()
			} else {
				serveErr <- nil
			}

			e.log.Info().
				Str("scheme", s.Name()).
				Int("workers", cfg.Bench.Workers).
				Int("iterations", cfg.Bench.Iterations).
				Msg("Starting benchmark")
			start := time.Now()
			err = runBench(ctx, s, cfg.Bench.Workers, cfg.Bench.Iterations)
			elapsed := time.Since(start)
			cancel()
			if srvErr := <-serveErr; srvErr != nil {
				e.log.Error().Err(srvErr).Msg("Metrics server quit with error")
			}
			if err != nil {
				return err
			}

			rounds := cfg.Bench.Workers * cfg.Bench.Iterations
			fmt.Fprintf(c.App.Writer, "%s: %d rounds in %v (%.1f rounds/s)\n",
				s.Name(), rounds, elapsed.Round(time.Millisecond), float64(rounds)/elapsed.Seconds())
			return nil
		},
	}
}
