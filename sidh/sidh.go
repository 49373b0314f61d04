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

// Package sidh implements supersingular isogeny Diffie-Hellman key agreement
// (SIDH) over the primes p434, p503, p610 and p751, together with public
// key compression.
//
// Alice works with the 2^eA torsion and Bob with the 3^eB torsion. Each
// key pair must be used for a single key agreement only, SIDH does not
// resist adaptive attacks. Use the sike package for a CCA secure KEM.
package sidh

import (
	"io"

	"github.com/pkg/errors"

	"github.com/isogeny/sike/internal/field"
	"github.com/isogeny/sike/internal/params"
)

// ID selects a parameter set.
type ID = params.ID

const (
	Fp434 = params.P434
	Fp503 = params.P503
	Fp610 = params.P610
	Fp751 = params.P751
)

// KeyVariant tells whether a key belongs to Alice (2-torsion) or Bob
// (3-torsion). SIKE keys are Bob's keys carrying the rejection secret S.
type KeyVariant uint

const (
	KeyVariantSidhA KeyVariant = 1 << 0
	KeyVariantSidhB KeyVariant = 1 << 1
	KeyVariantSike  KeyVariant = 1<<2 | KeyVariantSidhB
)

var (
	// ErrKeyVariant is returned when both keys belong to the same side.
	ErrKeyVariant = errors.New("sidh: incompatible key variants")
	// ErrParamsMismatch is returned when keys use different primes.
	ErrParamsMismatch = errors.New("sidh: keys use different parameters")
	// ErrInputSize is returned when an encoded key has the wrong length.
	ErrInputSize = errors.New("sidh: wrong input size")
	// ErrBasis is returned when no canonical torsion basis is found within
	// the counter range of a compressed key.
	ErrBasis = errors.New("sidh: torsion basis not found")
	// ErrCompress is returned when a public key does not describe a basis
	// of full order and cannot be compressed.
	ErrCompress = errors.New("sidh: public key cannot be compressed")
)

// Base type for public and private key. Used mainly to carry domain
// parameters.
type key struct {
	params     *params.Params
	keyVariant KeyVariant
}

// Defines operations on private key
type PrivateKey struct {
	key
	// Secret key
	Scalar []byte
	// Used only by KEM
	S []byte
}

// Defines operations on public key
type PublicKey struct {
	key
	affineXP   field.Fp2
	affineXQ   field.Fp2
	affineXQmP field.Fp2
}

// Variant returns the key variant.
func (k *key) Variant() KeyVariant { return k.keyVariant }

// Params returns the parameter set of the key.
func (k *key) Params() ID { return k.params.ID }

func (k *key) isA() bool {
	return k.keyVariant&KeyVariantSidhA == KeyVariantSidhA
}

// domain returns the parameters of the torsion the key owner works in.
func (k *key) domain() *params.DomainParams {
	return k.params.Side(k.isA())
}

// other returns the parameters of the opposite torsion.
func (k *key) other() *params.DomainParams {
	return k.params.Side(!k.isA())
}

// NewPrivateKey initializes private key.
// Usage of this function guarantees that the object is correctly initialized.
func NewPrivateKey(id ID, v KeyVariant) *PrivateKey {
	prv := &PrivateKey{key: key{params: params.Must(id), keyVariant: v}}
	prv.Scalar = make([]byte, prv.domain().SecretByteLen)
	if v == KeyVariantSike {
		prv.S = make([]byte, prv.params.MsgLen)
	}
	return prv
}

// NewPublicKey initializes public key.
// Usage of this function guarantees that the object is correctly initialized.
func NewPublicKey(id ID, v KeyVariant) *PublicKey {
	return &PublicKey{key: key{params: params.Must(id), keyVariant: v}}
}

// Import clears content of the public key currently stored in the structure
// and imports key stored in the byte string. Returns error in case byte string
// size is wrong. Doesn't perform any validation.
func (pub *PublicKey) Import(input []byte) error {
	if len(input) != pub.Size() {
		return errors.Wrapf(ErrInputSize, "public key: got %d bytes, want %d", len(input), pub.Size())
	}
	f := pub.params.Field
	ssSz := pub.params.SharedSecretSize
	f.FromBytes(&pub.affineXP, input[0:ssSz])
	f.FromBytes(&pub.affineXQ, input[ssSz:2*ssSz])
	f.FromBytes(&pub.affineXQmP, input[2*ssSz:3*ssSz])
	return nil
}

// Exports currently stored key. In case structure hasn't been filled with key data
// returned byte string is filled with zeros. Returns error if out is shorter
// than Size().
func (pub *PublicKey) Export(out []byte) error {
	if len(out) < pub.Size() {
		return errors.Wrapf(ErrInputSize, "public key buffer: got %d bytes, want %d", len(out), pub.Size())
	}
	f := pub.params.Field
	ssSz := pub.params.SharedSecretSize
	f.ToBytes(out[0:ssSz], &pub.affineXP)
	f.ToBytes(out[ssSz:2*ssSz], &pub.affineXQ)
	f.ToBytes(out[2*ssSz:3*ssSz], &pub.affineXQmP)
	return nil
}

// Size returns size of the public key in bytes
func (pub *PublicKey) Size() int {
	return pub.params.PublicKeySize
}

// SharedSecretSize returns the size of a shared secret computed with this key.
func (pub *PublicKey) SharedSecretSize() int {
	return pub.params.SharedSecretSize
}

// Exports currently stored key. In case structure hasn't been filled with key data
// returned byte string is filled with zeros. The layout is S || Scalar.
// Returns error if out is shorter than Size().
func (prv *PrivateKey) Export(out []byte) error {
	if len(out) < prv.Size() {
		return errors.Wrapf(ErrInputSize, "private key buffer: got %d bytes, want %d", len(out), prv.Size())
	}
	copy(out, prv.S)
	copy(out[len(prv.S):], prv.Scalar)
	return nil
}

// Size returns size of the private key in bytes
func (prv *PrivateKey) Size() int {
	tmp := len(prv.Scalar)
	if prv.keyVariant == KeyVariantSike {
		tmp += prv.params.MsgLen
	}
	return tmp
}

// SharedSecretSize returns the size of a shared secret computed with this key.
func (prv *PrivateKey) SharedSecretSize() int {
	return prv.params.SharedSecretSize
}

// Import clears content of the private key currently stored in the structure
// and imports key from octet string. In case of SIKE, the random value 'S'
// must be prepended to the value of actual private key (see the SIKE submission for details).
// Function doesn't import public key value to PrivateKey object.
func (prv *PrivateKey) Import(input []byte) error {
	if len(input) != prv.Size() {
		return errors.Wrapf(ErrInputSize, "private key: got %d bytes, want %d", len(input), prv.Size())
	}
	copy(prv.S, input[:len(prv.S)])
	copy(prv.Scalar, input[len(prv.S):])
	return nil
}

// Zeroize overwrites the secret material held by the key.
func (prv *PrivateKey) Zeroize() {
	for i := range prv.Scalar {
		prv.Scalar[i] = 0
	}
	for i := range prv.S {
		prv.S[i] = 0
	}
}

// Generates random private key for SIDH or SIKE. Generated value is
// formed as little-endian integer from key-space <0..2^eA - 1>
// for KeyVariantSidhA or <0..2^s - 1>, where s = floor(log_2(3^eB)),
// for KeyVariantSidhB.
//
// Returns error in case user provided RNG fails.
func (prv *PrivateKey) Generate(rand io.Reader) error {
	if prv.keyVariant == KeyVariantSike {
		if _, err := io.ReadFull(rand, prv.S); err != nil {
			return errors.Wrap(err, "sidh: reading S")
		}
	}

	// Private key generation takes advantage of the fact that keyspace for secret
	// key is (0, 2^x - 1), for some positive value of 'x' (see SIKE, 1.3.8).
	// It means that all bytes in the secret key, but the last one, can take any
	// value between <0x00,0xFF>. Similarly for the last byte, but generation
	// needs to chop off some bits, to make sure generated value is an element of
	// a key-space.
	if _, err := io.ReadFull(rand, prv.Scalar); err != nil {
		return errors.Wrap(err, "sidh: reading scalar")
	}
	maskScalar(prv.Scalar, prv.domain().SecretBitLen)
	return nil
}

// GenerateCompressible generates a private key usable with compressed
// public keys: Alice's scalar is even and Bob's scalar is a multiple of 3.
// Such scalars keep the decompression denominator invertible.
func (prv *PrivateKey) GenerateCompressible(rand io.Reader) error {
	if err := prv.Generate(rand); err != nil {
		return err
	}
	makeCompressible(prv.Scalar, prv.isA(), prv.domain().SecretBitLen)
	return nil
}

// maskScalar clears the bits of s at positions bits and above.
func maskScalar(s []byte, bits uint) {
	for i := range s {
		keep := int(bits) - 8*i
		switch {
		case keep <= 0:
			s[i] = 0
		case keep < 8:
			s[i] &= byte(1<<uint(keep)) - 1
		}
	}
}

// makeCompressible turns a scalar of bits bits into an even one (side A) or
// into 3*(s mod 2^(bits-2)) (side B), in constant time.
func makeCompressible(s []byte, a bool, bits uint) {
	if a {
		s[0] &= 0xFE
		return
	}
	maskScalar(s, bits-2)
	var carry uint
	for i := range s {
		v := uint(s[i])*3 + carry
		s[i] = byte(v)
		carry = v >> 8
	}
}

// GeneratePublicKey computes the public key of prv and stores it in pub.
// pub must have been created with the same parameters and key variant.
//
// Constant time.
func (prv *PrivateKey) GeneratePublicKey(pub *PublicKey) {
	if pub.params != prv.params || pub.isA() != prv.isA() {
		panic("sidh: public key does not match the private key")
	}
	pub.keyVariant = prv.keyVariant
	publicKeyGen(prv, pub)
}

// DeriveSecret computes a shared secret which is a j-invariant and writes
// it to ss, which must be SharedSecretSize bytes long. Function requires
// that pub has different KeyVariant than prv.
//
// It's important to notice that each keypair must not be used more than once
// to calculate shared secret.
//
// Constant time for properly initialized private and public key.
func (prv *PrivateKey) DeriveSecret(ss []byte, pub *PublicKey) error {
	if pub == nil || prv == nil {
		return errors.New("sidh: invalid arguments")
	}
	if pub.isA() == prv.isA() {
		return ErrKeyVariant
	}
	if pub.params.ID != prv.params.ID {
		return ErrParamsMismatch
	}
	if len(ss) < prv.params.SharedSecretSize {
		return errors.Wrapf(ErrInputSize, "shared secret buffer: %d bytes", len(ss))
	}
	deriveSecret(ss, prv, pub)
	return nil
}
