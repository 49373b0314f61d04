// Copyright (c) 2019, Cloudflare Inc.
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

// Package sike implements the SIKE key encapsulation mechanism on top of
// SIDH, with implicit rejection of invalid ciphertexts.
//
// Schemes satisfy the kem.Scheme interface of github.com/cloudflare/circl.
// NewCompressed returns a variant which transmits public keys and
// ciphertexts in compressed form.
package sike

import (
	"crypto/rand"
	"crypto/subtle"
	"io"

	"github.com/cloudflare/circl/kem"
	"github.com/cloudflare/circl/xof"
	"github.com/pkg/errors"

	"github.com/isogeny/sike/internal/params"
	"github.com/isogeny/sike/sidh"
)

// Size of the seed consumed by DeriveKeyPair.
const SeedSize = 32

// Option configures a Scheme.
type Option func(*Scheme)

// WithRandom sets the source of randomness used by GenerateKeyPair and
// Encapsulate. Defaults to crypto/rand.
func WithRandom(r io.Reader) Option {
	return func(s *Scheme) { s.rng = r }
}

// WithXOF sets the function instantiating the hash used for G, H and F.
// Defaults to SHAKE256.
func WithXOF(newXOF func() xof.XOF) Option {
	return func(s *Scheme) { s.newXOF = newXOF }
}

// Scheme is an instance of SIKE for one parameter set.
type Scheme struct {
	id         sidh.ID
	params     *params.Params
	compressed bool
	rng        io.Reader
	newXOF     func() xof.XOF
}

// New returns SIKE over the given parameter set.
func New(id sidh.ID, opts ...Option) *Scheme {
	return newScheme(id, false, opts)
}

// NewCompressed returns SIKE over the given parameter set with compressed
// public keys and ciphertexts.
func NewCompressed(id sidh.ID, opts ...Option) *Scheme {
	return newScheme(id, true, opts)
}

func newScheme(id sidh.ID, compressed bool, opts []Option) *Scheme {
	s := &Scheme{
		id:         id,
		params:     params.Must(id),
		compressed: compressed,
		rng:        rand.Reader,
		newXOF:     xof.SHAKE256.New,
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

var _ kem.Scheme = (*Scheme)(nil)

// Name returns the scheme name, for instance "SIKEp434" or
// "SIKEp434-compressed".
func (s *Scheme) Name() string {
	name := "SIKE" + s.params.Name
	if s.compressed {
		name += "-compressed"
	}
	return name
}

// ID returns the parameter set of the scheme.
func (s *Scheme) ID() sidh.ID { return s.id }

// Compressed tells whether keys and ciphertexts are compressed.
func (s *Scheme) Compressed() bool { return s.compressed }

// PublicKeySize returns the size of a packed public key.
func (s *Scheme) PublicKeySize() int {
	if s.compressed {
		return s.params.B.CompressedPublicKeySize
	}
	return s.params.PublicKeySize
}

// PrivateKeySize returns the size of a packed private key s || scalar || pk.
func (s *Scheme) PrivateKeySize() int {
	return s.params.MsgLen + s.params.B.SecretByteLen + s.PublicKeySize()
}

// CiphertextSize returns the size of c0 || c1.
func (s *Scheme) CiphertextSize() int {
	return s.c0Size() + s.params.MsgLen
}

// SharedKeySize returns the size of an established key.
func (s *Scheme) SharedKeySize() int { return s.params.KemSize }

// SeedSize returns the size of the seed consumed by DeriveKeyPair.
func (s *Scheme) SeedSize() int { return SeedSize }

// EncapsulationSeedSize returns the size of the seed consumed by
// EncapsulateDeterministically. The seed is the message m.
func (s *Scheme) EncapsulationSeedSize() int { return s.params.MsgLen }

func (s *Scheme) c0Size() int {
	if s.compressed {
		return s.params.A.CompressedPublicKeySize
	}
	return s.params.PublicKeySize
}

// GenerateKeyPair generates a key pair using the scheme's randomness.
func (s *Scheme) GenerateKeyPair() (kem.PublicKey, kem.PrivateKey, error) {
	sk, err := s.generate(s.rng)
	if err != nil {
		return nil, nil, err
	}
	return sk.pk, sk, nil
}

// DeriveKeyPair derives a key pair from seed, expanded with the scheme's
// XOF. Panics if seed is not SeedSize bytes long.
func (s *Scheme) DeriveKeyPair(seed []byte) (kem.PublicKey, kem.PrivateKey) {
	if len(seed) != SeedSize {
		panic(kem.ErrSeedSize)
	}
	h := s.newXOF()
	_, _ = h.Write(seed)
	sk, err := s.generate(h)
	if err != nil {
		panic(err)
	}
	return sk.pk, sk
}

func (s *Scheme) generate(r io.Reader) (*PrivateKey, error) {
	prv := sidh.NewPrivateKey(s.id, sidh.KeyVariantSike)
	var err error
	if s.compressed {
		err = prv.GenerateCompressible(r)
	} else {
		err = prv.Generate(r)
	}
	if err != nil {
		return nil, errors.Wrap(err, "sike: key generation")
	}
	pk, err := s.publicKeyOf(prv)
	if err != nil {
		return nil, err
	}
	return &PrivateKey{scheme: s, sk: prv, pk: pk}, nil
}

// publicKeyOf computes and encodes the public key of prv.
func (s *Scheme) publicKeyOf(prv *sidh.PrivateKey) (*PublicKey, error) {
	pk := &PublicKey{scheme: s, raw: make([]byte, s.PublicKeySize())}
	if err := s.exportPublic(pk.raw, prv); err != nil {
		return nil, err
	}
	if err := pk.decode(); err != nil {
		return nil, err
	}
	return pk, nil
}

// exportPublic writes the encoded public key of prv, of either side, to out.
func (s *Scheme) exportPublic(out []byte, prv *sidh.PrivateKey) error {
	if s.compressed {
		cpk := sidh.NewCompressedPublicKey(s.id, prv.Variant())
		if err := prv.GenerateCompressedPublicKey(cpk); err != nil {
			return errors.Wrap(err, "sike: compressing public key")
		}
		return cpk.Export(out)
	}
	pub := sidh.NewPublicKey(s.id, prv.Variant())
	prv.GeneratePublicKey(pub)
	return pub.Export(out)
}

// hash absorbs parts into a fresh XOF instance and fills out.
func (s *Scheme) hash(out []byte, parts ...[]byte) {
	h := s.newXOF()
	for _, p := range parts {
		_, _ = h.Write(p)
	}
	if _, err := io.ReadFull(h, out); err != nil {
		panic(errors.Wrap(err, "sike: XOF output too short"))
	}
}

// ephemeral derives Alice's ephemeral key r = G(m || pk), truncated to her
// secret bit length. Compressed keys need r even.
func (s *Scheme) ephemeral(m []byte, pk *PublicKey) *sidh.PrivateKey {
	d := &s.params.A
	r := make([]byte, d.SecretByteLen)
	s.hash(r, m, pk.raw)
	if rem := d.SecretBitLen % 8; rem != 0 {
		r[len(r)-1] &= byte(1<<rem) - 1
	}
	if s.compressed {
		r[0] &^= 1
	}
	prv := sidh.NewPrivateKey(s.id, sidh.KeyVariantSidhA)
	if err := prv.Import(r); err != nil {
		panic(err)
	}
	for i := range r {
		r[i] = 0
	}
	return prv
}

// sharedSecret runs the SIDH derivation of prv against an encoded public
// key of the other side, which has been validated by size.
func (s *Scheme) sharedSecret(j []byte, prv *sidh.PrivateKey, pk *PublicKey) error {
	if s.compressed {
		return prv.DeriveSecretCompressed(j, pk.cpk)
	}
	return prv.DeriveSecret(j, pk.pk)
}

// Encapsulate generates a random message and encapsulates it for pk.
func (s *Scheme) Encapsulate(pk kem.PublicKey) (ct, ss []byte, err error) {
	m := make([]byte, s.params.MsgLen)
	if _, err := io.ReadFull(s.rng, m); err != nil {
		return nil, nil, errors.Wrap(err, "sike: reading message")
	}
	return s.EncapsulateDeterministically(pk, m)
}

// EncapsulateDeterministically encapsulates the message seed for pk.
func (s *Scheme) EncapsulateDeterministically(pk kem.PublicKey, seed []byte) (ct, ss []byte, err error) {
	if len(seed) != s.EncapsulationSeedSize() {
		return nil, nil, kem.ErrSeedSize
	}
	pub, ok := pk.(*PublicKey)
	if !ok || pub.scheme.Name() != s.Name() {
		return nil, nil, kem.ErrTypeMismatch
	}
	p := s.params

	// (c0 || c1) = Enc(pk, m; r), r = G(m || pk)
	skA := s.ephemeral(seed, pub)
	defer skA.Zeroize()
	ct = make([]byte, s.CiphertextSize())
	c0Len := s.c0Size()
	if err := s.exportPublic(ct[:c0Len], skA); err != nil {
		return nil, nil, err
	}
	j := make([]byte, p.SharedSecretSize)
	if err := s.sharedSecret(j, skA, pub); err != nil {
		return nil, nil, errors.Wrap(err, "sike: encapsulation")
	}
	c1 := ct[c0Len:]
	s.hash(c1, j)
	for i := range c1 {
		c1[i] ^= seed[i]
	}

	// K = H(m || c0 || c1)
	ss = make([]byte, p.KemSize)
	s.hash(ss, seed, ct)
	return ct, ss, nil
}

// Decapsulate returns the key encapsulated in ct. A well-sized ciphertext
// that fails the re-encryption check yields H(s || ct), never an error.
func (s *Scheme) Decapsulate(sk kem.PrivateKey, ct []byte) ([]byte, error) {
	if len(ct) != s.CiphertextSize() {
		return nil, kem.ErrCiphertextSize
	}
	prv, ok := sk.(*PrivateKey)
	if !ok || prv.scheme.Name() != s.Name() {
		return nil, kem.ErrTypeMismatch
	}
	p := s.params
	c0Len := s.c0Size()

	c0 := &PublicKey{scheme: s, raw: ct[:c0Len], owner: sidh.KeyVariantSidhA}
	if err := c0.decode(); err != nil {
		return nil, err
	}
	j := make([]byte, p.SharedSecretSize)
	if err := s.sharedSecret(j, prv.sk, c0); err != nil {
		return nil, errors.Wrap(err, "sike: decapsulation")
	}

	// m' = c1 xor F(j)
	m := make([]byte, p.MsgLen)
	s.hash(m, j)
	for i := range m {
		m[i] ^= ct[c0Len+i]
	}

	// r' = G(m' || pk), c0' = pkA(r')
	skA := s.ephemeral(m, prv.pk)
	defer skA.Zeroize()
	c0p := make([]byte, c0Len)
	valid := 0
	if err := s.exportPublic(c0p, skA); err == nil {
		valid = subtle.ConstantTimeCompare(c0p, ct[:c0Len])
	}

	// m' if c0' == c0, s otherwise
	msg := make([]byte, p.MsgLen)
	copy(msg, prv.sk.S)
	subtle.ConstantTimeCopy(valid, msg, m)

	ss := make([]byte, p.KemSize)
	s.hash(ss, msg, ct)
	return ss, nil
}

// UnmarshalBinaryPublicKey decodes a packed public key.
func (s *Scheme) UnmarshalBinaryPublicKey(buf []byte) (kem.PublicKey, error) {
	if len(buf) != s.PublicKeySize() {
		return nil, kem.ErrPubKeySize
	}
	pk := &PublicKey{scheme: s, raw: append([]byte(nil), buf...)}
	if err := pk.decode(); err != nil {
		return nil, err
	}
	return pk, nil
}

// UnmarshalBinaryPrivateKey decodes a packed private key s || scalar || pk.
func (s *Scheme) UnmarshalBinaryPrivateKey(buf []byte) (kem.PrivateKey, error) {
	if len(buf) != s.PrivateKeySize() {
		return nil, kem.ErrPrivKeySize
	}
	prv := sidh.NewPrivateKey(s.id, sidh.KeyVariantSike)
	n := prv.Size()
	if err := prv.Import(buf[:n]); err != nil {
		return nil, err
	}
	pk, err := s.UnmarshalBinaryPublicKey(buf[n:])
	if err != nil {
		return nil, err
	}
	return &PrivateKey{scheme: s, sk: prv, pk: pk.(*PublicKey)}, nil
}
