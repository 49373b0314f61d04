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

// Package field implements arithmetic in F_p and F_{p^2} = F_p(i), i^2 = -1,
// for primes of the form p = 2^eA*3^eB - 1. Elements are kept in Montgomery
// form with R = 2^(64*N), where N is the number of words used by the prime.
//
// The same Montgomery machinery also serves arithmetic modulo any odd
// modulus (see NewRing), which is used for scalars modulo 3^eB.
package field

import (
	"encoding/binary"
	"math/big"

	"github.com/pkg/errors"
)

// MaxWords is the largest number of 64-bit words any supported modulus uses.
const MaxWords = 12

// Representation of an element of the base field F_p.
//
// Only the first N words are meaningful, the remaining ones are zero. No
// particular meaning is assigned to the representation: it could represent
// an element in Montgomery form, or not.
type Fp [MaxWords]uint64

// Represents an intermediate product of two elements of the base field F_p.
type FpX2 [2 * MaxWords]uint64

// Represents an element of the extended field Fp^2 = Fp(x+i)
type Fp2 struct {
	A Fp
	B Fp
}

var (
	// ErrModulus is returned when a modulus cannot be used for Montgomery
	// arithmetic.
	ErrModulus = errors.New("field: unsupported modulus")
)

// Field holds the constants needed for Montgomery arithmetic modulo an odd
// integer. A Field is immutable after construction and safe for concurrent
// use.
type Field struct {
	// Number of 64-bit words used by elements.
	N int
	// Number of bytes needed to encode an element.
	Bytelen int
	// Bit length of the modulus.
	Bits int

	p     Fp     // modulus
	pX2   Fp     // 2*modulus
	pInv  uint64 // -p^-1 mod 2^64
	r2    Fp     // R^2 mod p
	r3    Fp     // R^3 mod p
	one   Fp     // R mod p
	half  Fp     // R/2 mod p
	prime bool   // p is a prime congruent to 3 mod 4

	expInv  []uint64 // exponent used for inversion
	expSqrt []uint64 // (p+1)/4
	expP34  []uint64 // (p-3)/4
	expLeg  []uint64 // (p-1)/2

	modulus *big.Int
}

// New returns a Field for the prime p. p must be congruent to 3 mod 4.
func New(p *big.Int) (*Field, error) {
	if p.Bit(0) == 0 || p.Bit(1) == 0 {
		return nil, errors.Wrapf(ErrModulus, "prime %s is not 3 mod 4", p.Text(16))
	}
	f, err := newField(p, wordsFor(p))
	if err != nil {
		return nil, err
	}
	f.prime = true
	pm2 := new(big.Int).Sub(p, big.NewInt(2))
	f.expInv = toWords(pm2)
	f.expSqrt = toWords(new(big.Int).Rsh(new(big.Int).Add(p, big.NewInt(1)), 2))
	f.expP34 = toWords(new(big.Int).Rsh(new(big.Int).Sub(p, big.NewInt(3)), 2))
	f.expLeg = toWords(new(big.Int).Rsh(p, 1))
	return f, nil
}

// NewRing returns a Field for Montgomery arithmetic modulo an odd m whose
// unit group has the given order. Inversion is then computed as
// x^(order-1), which is only meaningful for units.
func NewRing(m, order *big.Int) (*Field, error) {
	if m.Bit(0) == 0 {
		return nil, errors.Wrapf(ErrModulus, "modulus %s is even", m.Text(16))
	}
	f, err := newField(m, wordsFor(m))
	if err != nil {
		return nil, err
	}
	f.expInv = toWords(new(big.Int).Sub(order, big.NewInt(1)))
	return f, nil
}

// Smallest word count N with 4*m < 2^(64*N).
func wordsFor(m *big.Int) int {
	return (m.BitLen() + 2 + 63) / 64
}

func newField(m *big.Int, n int) (*Field, error) {
	if n > MaxWords {
		return nil, errors.Wrapf(ErrModulus, "modulus needs %d words", n)
	}
	if m.Cmp(big.NewInt(3)) < 0 {
		return nil, errors.Wrap(ErrModulus, "modulus too small")
	}

	f := &Field{
		N:       n,
		Bits:    m.BitLen(),
		Bytelen: (m.BitLen() + 7) / 8,
		modulus: new(big.Int).Set(m),
	}
	R := new(big.Int).Lsh(big.NewInt(1), uint(64*n))
	bigToFp(&f.p, m)
	bigToFp(&f.pX2, new(big.Int).Lsh(m, 1))
	bigToFp(&f.one, new(big.Int).Mod(R, m))
	bigToFp(&f.r2, new(big.Int).Exp(R, big.NewInt(2), m))
	bigToFp(&f.r3, new(big.Int).Exp(R, big.NewInt(3), m))
	inv2 := new(big.Int).ModInverse(big.NewInt(2), m)
	bigToFp(&f.half, new(big.Int).Mod(new(big.Int).Mul(inv2, R), m))

	// Newton iteration for p^-1 mod 2^64.
	p0 := f.p[0]
	inv := p0
	for i := 0; i < 5; i++ {
		inv *= 2 - p0*inv
	}
	f.pInv = -inv
	return f, nil
}

// Modulus returns a copy of the modulus.
func (f *Field) Modulus() *big.Int {
	return new(big.Int).Set(f.modulus)
}

// One returns 1 in Montgomery form.
func (f *Field) One() Fp2 {
	return Fp2{A: f.one}
}

// FpOne returns 1 in Montgomery form.
func (f *Field) FpOne() Fp {
	return f.one
}

func bigToFp(z *Fp, x *big.Int) {
	var buf [8 * MaxWords]byte
	x.FillBytes(buf[:])
	for i := range z {
		z[i] = binary.BigEndian.Uint64(buf[8*(MaxWords-1-i):])
	}
}

// Little-endian words of a non-negative integer.
func toWords(x *big.Int) []uint64 {
	var w Fp
	bigToFp(&w, x)
	n := (x.BitLen() + 63) / 64
	return append([]uint64(nil), w[:n]...)
}
