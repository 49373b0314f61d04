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

// Package metrics wraps KEM schemes with Prometheus instrumentation.
package metrics

import (
	"github.com/cloudflare/circl/kem"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
)

const (
	metricsNamespace = "sike"
	kemSubsystem     = "kem"
)

// Operation labels
const (
	OperationKeygen = "keygen"
	OperationEncaps = "encapsulate"
	OperationDecaps = "decapsulate"
)

type collectors struct {
	operations *prometheus.CounterVec
	failures   *prometheus.CounterVec
	latency    *prometheus.HistogramVec
}

func newCollectors() *collectors {
	return &collectors{
		operations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: metricsNamespace,
				Subsystem: kemSubsystem,
				Name:      "operations_total",
				Help:      "Number of KEM operations by scheme",
			},
			[]string{"scheme", "operation"},
		),
		failures: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: metricsNamespace,
				Subsystem: kemSubsystem,
				Name:      "failures_total",
				Help:      "Number of KEM operations returning an error by scheme",
			},
			[]string{"scheme", "operation"},
		),
		latency: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: metricsNamespace,
				Subsystem: kemSubsystem,
				Name:      "latency_secs",
				Help:      "Latency of KEM operations by scheme",
				// 1ms, 2ms, 4ms, ... 8192ms
				Buckets: prometheus.ExponentialBuckets(0.001, 2, 14),
			},
			[]string{"scheme", "operation"},
		),
	}
}

// register registers the collectors with r, reusing collectors another
// instrumented scheme already registered there.
func (c *collectors) register(r prometheus.Registerer) error {
	if err := r.Register(c.operations); err != nil {
		are, ok := err.(prometheus.AlreadyRegisteredError)
		if !ok {
			return errors.Wrap(err, "registering operations counter")
		}
		c.operations = are.ExistingCollector.(*prometheus.CounterVec)
	}
	if err := r.Register(c.failures); err != nil {
		are, ok := err.(prometheus.AlreadyRegisteredError)
		if !ok {
			return errors.Wrap(err, "registering failures counter")
		}
		c.failures = are.ExistingCollector.(*prometheus.CounterVec)
	}
	if err := r.Register(c.latency); err != nil {
		are, ok := err.(prometheus.AlreadyRegisteredError)
		if !ok {
			return errors.Wrap(err, "registering latency histogram")
		}
		c.latency = are.ExistingCollector.(*prometheus.HistogramVec)
	}
	return nil
}

// Scheme is an instrumented kem.Scheme. Keys it returns belong to the
// wrapped scheme.
type Scheme struct {
	kem.Scheme
	c   *collectors
	log *zerolog.Logger
}

// Instrument wraps s so that key generation, encapsulation and
// decapsulation are counted and timed in r. Failures are logged at debug
// level when log is not nil.
func Instrument(s kem.Scheme, r prometheus.Registerer, log *zerolog.Logger) (*Scheme, error) {
	c := newCollectors()
	if err := c.register(r); err != nil {
		return nil, err
	}
	if log == nil {
		nop := zerolog.Nop()
		log = &nop
	}
	return &Scheme{Scheme: s, c: c, log: log}, nil
}

func (s *Scheme) observe(operation string, inner func() error) {
	name := s.Name()
	defer s.c.operations.WithLabelValues(name, operation).Inc()
	timer := prometheus.NewTimer(prometheus.ObserverFunc(func(v float64) {
		s.c.latency.WithLabelValues(name, operation).Observe(v)
	}))
	defer timer.ObserveDuration()

	if err := inner(); err != nil {
		s.c.failures.WithLabelValues(name, operation).Inc()
		s.log.Debug().Err(err).Str("scheme", name).Str("operation", operation).Msg("KEM operation failed")
	}
}

func (s *Scheme) GenerateKeyPair() (pk kem.PublicKey, sk kem.PrivateKey, err error) {
	s.observe(OperationKeygen, func() error {
		pk, sk, err = s.Scheme.GenerateKeyPair()
		return err
	})
	return
}

func (s *Scheme) DeriveKeyPair(seed []byte) (pk kem.PublicKey, sk kem.PrivateKey) {
	s.observe(OperationKeygen, func() error {
		pk, sk = s.Scheme.DeriveKeyPair(seed)
		return nil
	})
	return
}

func (s *Scheme) Encapsulate(pk kem.PublicKey) (ct, ss []byte, err error) {
	s.observe(OperationEncaps, func() error {
		ct, ss, err = s.Scheme.Encapsulate(pk)
		return err
	})
	return
}

func (s *Scheme) EncapsulateDeterministically(pk kem.PublicKey, seed []byte) (ct, ss []byte, err error) {
	s.observe(OperationEncaps, func() error {
		ct, ss, err = s.Scheme.EncapsulateDeterministically(pk, seed)
		return err
	})
	return
}

func (s *Scheme) Decapsulate(sk kem.PrivateKey, ct []byte) (ss []byte, err error) {
	s.observe(OperationDecaps, func() error {
		ss, err = s.Scheme.Decapsulate(sk, ct)
		return err
	})
	return
}
