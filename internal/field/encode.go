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

package field

import (
	"math/big"
)

// FpToBytes writes x, converted out of Montgomery form, as Bytelen
// little-endian bytes.
func (f *Field) FpToBytes(out []byte, x *Fp) {
	if len(out) < f.Bytelen {
		panic("output byte slice too short")
	}
	var a Fp
	f.FpFromMont(&a, x)
	for i := 0; i < f.Bytelen; i++ {
		j := i / 8
		k := uint64(i % 8)
		out[i] = byte(a[j] >> (8 * k))
	}
}

// FpFromBytes reads Bytelen little-endian bytes into z and converts the
// value to Montgomery form. Values above the modulus are reduced.
func (f *Field) FpFromBytes(z *Fp, in []byte) {
	if len(in) < f.Bytelen {
		panic("input byte slice too short")
	}
	var a Fp
	for i := 0; i < f.Bytelen; i++ {
		j := i / 8
		k := uint64(i % 8)
		a[j] |= uint64(in[i]) << (8 * k)
	}
	f.FpToMont(z, &a)
}

// ToBytes encodes x as 2*Bytelen bytes, real part first. Each part is
// normalized to [0, p) before encoding.
func (f *Field) ToBytes(out []byte, x *Fp2) {
	if len(out) < 2*f.Bytelen {
		panic("output byte slice too short")
	}
	f.FpToBytes(out[:f.Bytelen], &x.A)
	f.FpToBytes(out[f.Bytelen:2*f.Bytelen], &x.B)
}

// FromBytes decodes 2*Bytelen bytes written by ToBytes.
func (f *Field) FromBytes(z *Fp2, in []byte) {
	if len(in) < 2*f.Bytelen {
		panic("input byte slice too short")
	}
	f.FpFromBytes(&z.A, in[:f.Bytelen])
	f.FpFromBytes(&z.B, in[f.Bytelen:2*f.Bytelen])
}

// FpToBig returns the canonical integer value of x.
func (f *Field) FpToBig(x *Fp) *big.Int {
	buf := make([]byte, f.Bytelen)
	f.FpToBytes(buf, x)
	for i, j := 0, len(buf)-1; i < j; i, j = i+1, j-1 {
		buf[i], buf[j] = buf[j], buf[i]
	}
	return new(big.Int).SetBytes(buf)
}

// FpFromBig sets z to x mod p in Montgomery form.
func (f *Field) FpFromBig(z *Fp, x *big.Int) {
	var a Fp
	bigToFp(&a, new(big.Int).Mod(x, f.modulus))
	f.FpToMont(z, &a)
}

// FromMontWords converts a constant already in Montgomery form (for
// instance a parameter table entry) into an Fp2, checking nothing.
func FromMontWords(a, b []uint64) Fp2 {
	var z Fp2
	copy(z.A[:], a)
	copy(z.B[:], b)
	return z
}
