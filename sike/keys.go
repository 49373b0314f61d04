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

package sike

import (
	"bytes"
	"crypto/subtle"

	"github.com/cloudflare/circl/kem"

	"github.com/isogeny/sike/sidh"
)

// PublicKey is a SIKE public key. The encoding is kept next to the decoded
// key since it is hashed by every encapsulation.
type PublicKey struct {
	scheme *Scheme
	raw    []byte
	// KeyVariantSike unless the key is the c0 part of a ciphertext
	owner sidh.KeyVariant

	pk  *sidh.PublicKey
	cpk *sidh.CompressedPublicKey
}

func (pk *PublicKey) decode() error {
	if pk.owner == 0 {
		pk.owner = sidh.KeyVariantSike
	}
	s := pk.scheme
	if s.compressed {
		pk.cpk = sidh.NewCompressedPublicKey(s.id, pk.owner)
		return pk.cpk.Import(pk.raw)
	}
	pk.pk = sidh.NewPublicKey(s.id, pk.owner)
	return pk.pk.Import(pk.raw)
}

// Scheme returns the scheme of the key.
func (pk *PublicKey) Scheme() kem.Scheme { return pk.scheme }

// MarshalBinary returns the encoded key.
func (pk *PublicKey) MarshalBinary() ([]byte, error) {
	return append([]byte(nil), pk.raw...), nil
}

// Equal reports whether other is the same key of the same scheme.
func (pk *PublicKey) Equal(other kem.PublicKey) bool {
	oth, ok := other.(*PublicKey)
	if !ok || oth.scheme.Name() != pk.scheme.Name() {
		return false
	}
	return bytes.Equal(oth.raw, pk.raw)
}

// PrivateKey is a SIKE private key: the rejection secret s, Bob's scalar
// and the matching public key.
type PrivateKey struct {
	scheme *Scheme
	sk     *sidh.PrivateKey
	pk     *PublicKey
}

// Scheme returns the scheme of the key.
func (sk *PrivateKey) Scheme() kem.Scheme { return sk.scheme }

// Public returns the public key.
func (sk *PrivateKey) Public() kem.PublicKey { return sk.pk }

// MarshalBinary returns s || scalar || pk.
func (sk *PrivateKey) MarshalBinary() ([]byte, error) {
	n := sk.sk.Size()
	out := make([]byte, n+len(sk.pk.raw))
	if err := sk.sk.Export(out[:n]); err != nil {
		return nil, err
	}
	copy(out[n:], sk.pk.raw)
	return out, nil
}

// Equal reports whether other holds the same key. The comparison runs in
// constant time.
func (sk *PrivateKey) Equal(other kem.PrivateKey) bool {
	oth, ok := other.(*PrivateKey)
	if !ok || oth.scheme.Name() != sk.scheme.Name() {
		return false
	}
	a, _ := sk.MarshalBinary()
	b, _ := oth.MarshalBinary()
	return subtle.ConstantTimeCompare(a, b) == 1
}

// Zeroize overwrites the secret part of the key.
func (sk *PrivateKey) Zeroize() {
	sk.sk.Zeroize()
}
