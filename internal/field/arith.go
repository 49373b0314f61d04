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
	"math/bits"
)

// Multiprecision helpers working on the low n words. None of them branch on
// the values of their operands.

// z = x + y, returns the carry.
func mpAdd(z, x, y *Fp, n int) uint64 {
	var c uint64
	for i := 0; i < n; i++ {
		z[i], c = bits.Add64(x[i], y[i], c)
	}
	return c
}

// z = x - y, returns the borrow.
func mpSub(z, x, y *Fp, n int) uint64 {
	var b uint64
	for i := 0; i < n; i++ {
		z[i], b = bits.Sub64(x[i], y[i], b)
	}
	return b
}

// z = x >> 1
func mpShr1(z *Fp, n int) {
	for i := 0; i < n-1; i++ {
		z[i] = (z[i] >> 1) | (z[i+1] << 63)
	}
	z[n-1] >>= 1
}

// Returns -1, 0 or 1 as x is less than, equal to or greater than y. Variable
// time.
func mpCmp(x, y *Fp, n int) int {
	for i := n - 1; i >= 0; i-- {
		if x[i] != y[i] {
			if x[i] < y[i] {
				return -1
			}
			return 1
		}
	}
	return 0
}

func mpIsEven(x *Fp) bool {
	return x[0]&1 == 0
}

func mpIsZero(x *Fp, n int) bool {
	var acc uint64
	for i := 0; i < n; i++ {
		acc |= x[i]
	}
	return acc == 0
}

// z = x * y (schoolbook, operand scanning)
func mpMul(z *FpX2, x, y *Fp, n int) {
	*z = FpX2{}
	for i := 0; i < n; i++ {
		var carry uint64
		for j := 0; j < n; j++ {
			hi, lo := bits.Mul64(x[i], y[j])
			var c uint64
			lo, c = bits.Add64(lo, z[i+j], 0)
			hi += c
			lo, c = bits.Add64(lo, carry, 0)
			hi += c
			z[i+j] = lo
			carry = hi
		}
		z[i+n] = carry
	}
}

// Montgomery reduction: z = x * R^-1 mod p with z in [0, 2p), provided
// x < p*R.
func (f *Field) montRdc(z *Fp, x *FpX2) {
	n := f.N
	var t [2*MaxWords + 1]uint64
	copy(t[:], x[:2*n])
	for i := 0; i < n; i++ {
		m := t[i] * f.pInv
		var carry uint64
		for j := 0; j < n; j++ {
			hi, lo := bits.Mul64(m, f.p[j])
			var c uint64
			lo, c = bits.Add64(lo, t[i+j], 0)
			hi += c
			lo, c = bits.Add64(lo, carry, 0)
			hi += c
			t[i+j] = lo
			carry = hi
		}
		// propagate the carry through the upper half
		var c uint64
		t[i+n], c = bits.Add64(t[i+n], carry, 0)
		for k := i + n + 1; k <= 2*n; k++ {
			t[k], c = bits.Add64(t[k], 0, c)
		}
	}
	*z = Fp{}
	copy(z[:n], t[n:2*n])
}

// Returns 0xFF..FF if b is 1 and 0 if b is 0.
func mask64(b uint64) uint64 {
	return -b
}

// Conditionally subtracts m from x (x in [0, 2m)) so that x ends up in
// [0, m).
func (f *Field) condSubtract(x, m *Fp) {
	var t Fp
	borrow := mpSub(&t, x, m, f.N)
	keep := mask64(borrow)
	for i := 0; i < f.N; i++ {
		x[i] = (x[i] & keep) | (t[i] &^ keep)
	}
}

// If choice = 1 swap x and y, leave both untouched if choice = 0.
func (f *Field) fpCondSwap(x, y *Fp, choice uint8) {
	m := mask64(uint64(choice & 1))
	for i := 0; i < f.N; i++ {
		t := m & (x[i] ^ y[i])
		x[i] ^= t
		y[i] ^= t
	}
}

// z = x if choice = 0, z = y if choice = 1.
func (f *Field) fpSelect(z, x, y *Fp, choice uint8) {
	m := mask64(uint64(choice & 1))
	for i := 0; i < f.N; i++ {
		z[i] = (x[i] &^ m) | (y[i] & m)
	}
}
