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

// Package hybrid combines a post-quantum KEM with an ephemeral-static
// Diffie-Hellman exchange in the edwards25519 group. The shared key stays
// secret as long as either of the two parts is secure.
//
// Keys and ciphertexts are the concatenation of the post-quantum part and
// a 32 byte edwards25519 element. The shared key is
//
//	SHAKE256(ss_pq || ss_dh || ct)
//
// truncated to 32 bytes.
package hybrid

import (
	"crypto/rand"
	"crypto/subtle"
	"io"

	"filippo.io/edwards25519"
	"github.com/cloudflare/circl/kem"
	"github.com/pkg/errors"
	"golang.org/x/crypto/sha3"
)

const (
	// Size of an encoded edwards25519 element or scalar.
	dhSize = 32
	// Size of the derived shared key.
	SharedKeySize = 32
	// Size of the seed consumed by DeriveKeyPair.
	SeedSize = 32
)

// Domain separation of the seed expansions.
var (
	labelKeyPair = []byte("hybrid keypair")
	labelEphem   = []byte("hybrid ephemeral")
)

// ErrScalar is returned when a private key holds a non-canonical scalar.
var ErrScalar = errors.New("hybrid: invalid private scalar")

// Option configures a Scheme.
type Option func(*Scheme)

// WithRandom sets the source of randomness. Defaults to crypto/rand.
func WithRandom(r io.Reader) Option {
	return func(s *Scheme) { s.rng = r }
}

// Scheme is a hybrid of a post-quantum kem.Scheme and edwards25519.
type Scheme struct {
	pq  kem.Scheme
	rng io.Reader
}

var _ kem.Scheme = (*Scheme)(nil)

// New returns the hybrid of pq and edwards25519.
func New(pq kem.Scheme, opts ...Option) *Scheme {
	s := &Scheme{pq: pq, rng: rand.Reader}
	for _, o := range opts {
		o(s)
	}
	return s
}

func (s *Scheme) Name() string               { return s.pq.Name() + "-Ed25519" }
func (s *Scheme) PublicKeySize() int         { return s.pq.PublicKeySize() + dhSize }
func (s *Scheme) PrivateKeySize() int        { return s.pq.PrivateKeySize() + dhSize }
func (s *Scheme) CiphertextSize() int        { return s.pq.CiphertextSize() + dhSize }
func (s *Scheme) SharedKeySize() int         { return SharedKeySize }
func (s *Scheme) SeedSize() int              { return SeedSize }
func (s *Scheme) EncapsulationSeedSize() int { return s.pq.EncapsulationSeedSize() + dhSize }

// PQ returns the post-quantum part of the scheme.
func (s *Scheme) PQ() kem.Scheme { return s.pq }

// PublicKey is a hybrid public key.
type PublicKey struct {
	scheme *Scheme
	pq     kem.PublicKey
	point  *edwards25519.Point
}

// PrivateKey is a hybrid private key.
type PrivateKey struct {
	scheme *Scheme
	pq     kem.PrivateKey
	scalar *edwards25519.Scalar
	pub    *PublicKey
}

func (pk *PublicKey) Scheme() kem.Scheme { return pk.scheme }

func (pk *PublicKey) MarshalBinary() ([]byte, error) {
	b, err := pk.pq.MarshalBinary()
	if err != nil {
		return nil, err
	}
	return append(b, pk.point.Bytes()...), nil
}

func (pk *PublicKey) Equal(other kem.PublicKey) bool {
	oth, ok := other.(*PublicKey)
	if !ok || oth.scheme.Name() != pk.scheme.Name() {
		return false
	}
	return pk.pq.Equal(oth.pq) && pk.point.Equal(oth.point) == 1
}

func (sk *PrivateKey) Scheme() kem.Scheme    { return sk.scheme }
func (sk *PrivateKey) Public() kem.PublicKey { return sk.pub }

func (sk *PrivateKey) MarshalBinary() ([]byte, error) {
	b, err := sk.pq.MarshalBinary()
	if err != nil {
		return nil, err
	}
	return append(b, sk.scalar.Bytes()...), nil
}

func (sk *PrivateKey) Equal(other kem.PrivateKey) bool {
	oth, ok := other.(*PrivateKey)
	if !ok || oth.scheme.Name() != sk.scheme.Name() {
		return false
	}
	return sk.pq.Equal(oth.pq) &&
		subtle.ConstantTimeCompare(sk.scalar.Bytes(), oth.scalar.Bytes()) == 1
}

// expand derives a uniformly distributed scalar and n further bytes from
// seed.
func expand(label, seed []byte, n int) (*edwards25519.Scalar, []byte) {
	h := sha3.NewShake256()
	_, _ = h.Write(label)
	_, _ = h.Write(seed)
	wide := make([]byte, 64)
	_, _ = h.Read(wide)
	sc, err := edwards25519.NewScalar().SetUniformBytes(wide)
	if err != nil {
		panic(err)
	}
	rest := make([]byte, n)
	_, _ = h.Read(rest)
	return sc, rest
}

func (s *Scheme) newPrivateKey(pq kem.PrivateKey, sc *edwards25519.Scalar) *PrivateKey {
	pub := &PublicKey{
		scheme: s,
		pq:     pq.Public(),
		point:  new(edwards25519.Point).ScalarBaseMult(sc),
	}
	return &PrivateKey{scheme: s, pq: pq, scalar: sc, pub: pub}
}

// GenerateKeyPair generates a key pair from the scheme's randomness.
func (s *Scheme) GenerateKeyPair() (kem.PublicKey, kem.PrivateKey, error) {
	seed := make([]byte, SeedSize)
	if _, err := io.ReadFull(s.rng, seed); err != nil {
		return nil, nil, errors.Wrap(err, "hybrid: reading seed")
	}
	pk, sk := s.DeriveKeyPair(seed)
	return pk, sk, nil
}

// DeriveKeyPair derives both parts of a key pair from seed. Panics if seed
// is not SeedSize bytes long.
func (s *Scheme) DeriveKeyPair(seed []byte) (kem.PublicKey, kem.PrivateKey) {
	if len(seed) != SeedSize {
		panic(kem.ErrSeedSize)
	}
	sc, pqSeed := expand(labelKeyPair, seed, s.pq.SeedSize())
	_, pqSk := s.pq.DeriveKeyPair(pqSeed)
	sk := s.newPrivateKey(pqSk, sc)
	return sk.pub, sk
}

// dh returns the encoding of [8*k]P. The cofactor is cleared so that small
// order components of P do not leak bits of k. Returns false when the
// result is the identity.
func dh(k *edwards25519.Scalar, P *edwards25519.Point) ([]byte, bool) {
	Q := new(edwards25519.Point).MultByCofactor(P)
	Q.ScalarMult(k, Q)
	return Q.Bytes(), Q.Equal(edwards25519.NewIdentityPoint()) == 0
}

func (s *Scheme) combine(ssPQ, ssDH, ct []byte) []byte {
	ss := make([]byte, SharedKeySize)
	h := sha3.NewShake256()
	_, _ = h.Write(ssPQ)
	_, _ = h.Write(ssDH)
	_, _ = h.Write(ct)
	_, _ = h.Read(ss)
	return ss
}

// Encapsulate encapsulates a fresh key for pk.
func (s *Scheme) Encapsulate(pk kem.PublicKey) (ct, ss []byte, err error) {
	seed := make([]byte, s.EncapsulationSeedSize())
	if _, err := io.ReadFull(s.rng, seed); err != nil {
		return nil, nil, errors.Wrap(err, "hybrid: reading seed")
	}
	return s.EncapsulateDeterministically(pk, seed)
}

// EncapsulateDeterministically encapsulates for pk. The first part of seed
// goes to the post-quantum KEM, the last 32 bytes derive the ephemeral
// edwards25519 scalar.
func (s *Scheme) EncapsulateDeterministically(pk kem.PublicKey, seed []byte) (ct, ss []byte, err error) {
	if len(seed) != s.EncapsulationSeedSize() {
		return nil, nil, kem.ErrSeedSize
	}
	pub, ok := pk.(*PublicKey)
	if !ok || pub.scheme.Name() != s.Name() {
		return nil, nil, kem.ErrTypeMismatch
	}
	n := s.pq.EncapsulationSeedSize()
	ctPQ, ssPQ, err := s.pq.EncapsulateDeterministically(pub.pq, seed[:n])
	if err != nil {
		return nil, nil, err
	}
	e, _ := expand(labelEphem, seed[n:], 0)
	ssDH, ok := dh(e, pub.point)
	if !ok {
		return nil, nil, kem.ErrPubKey
	}
	E := new(edwards25519.Point).ScalarBaseMult(e)
	ct = append(ctPQ, E.Bytes()...)
	return ct, s.combine(ssPQ, ssDH, ct), nil
}

// Decapsulate returns the key encapsulated in ct. Malformed edwards25519
// elements are reported as kem.ErrCipherText.
func (s *Scheme) Decapsulate(sk kem.PrivateKey, ct []byte) ([]byte, error) {
	if len(ct) != s.CiphertextSize() {
		return nil, kem.ErrCiphertextSize
	}
	prv, ok := sk.(*PrivateKey)
	if !ok || prv.scheme.Name() != s.Name() {
		return nil, kem.ErrTypeMismatch
	}
	n := s.pq.CiphertextSize()
	ssPQ, err := s.pq.Decapsulate(prv.pq, ct[:n])
	if err != nil {
		return nil, err
	}
	E, err := new(edwards25519.Point).SetBytes(ct[n:])
	if err != nil {
		return nil, kem.ErrCipherText
	}
	ssDH, ok := dh(prv.scalar, E)
	if !ok {
		return nil, kem.ErrCipherText
	}
	return s.combine(ssPQ, ssDH, ct), nil
}

// UnmarshalBinaryPublicKey decodes pk_pq || point.
func (s *Scheme) UnmarshalBinaryPublicKey(buf []byte) (kem.PublicKey, error) {
	if len(buf) != s.PublicKeySize() {
		return nil, kem.ErrPubKeySize
	}
	n := s.pq.PublicKeySize()
	pq, err := s.pq.UnmarshalBinaryPublicKey(buf[:n])
	if err != nil {
		return nil, err
	}
	P, err := new(edwards25519.Point).SetBytes(buf[n:])
	if err != nil {
		return nil, kem.ErrPubKey
	}
	return &PublicKey{scheme: s, pq: pq, point: P}, nil
}

// UnmarshalBinaryPrivateKey decodes sk_pq || scalar.
func (s *Scheme) UnmarshalBinaryPrivateKey(buf []byte) (kem.PrivateKey, error) {
	if len(buf) != s.PrivateKeySize() {
		return nil, kem.ErrPrivKeySize
	}
	n := s.pq.PrivateKeySize()
	pq, err := s.pq.UnmarshalBinaryPrivateKey(buf[:n])
	if err != nil {
		return nil, err
	}
	sc, err := edwards25519.NewScalar().SetCanonicalBytes(buf[n:])
	if err != nil {
		return nil, ErrScalar
	}
	return s.newPrivateKey(pq, sc), nil
}
