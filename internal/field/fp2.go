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

// Operations on F_{p^2}. Allowed to overlap the destination with any of the
// operands.

// z = x + y
func (f *Field) Add(z, x, y *Fp2) {
	f.FpAdd(&z.A, &x.A, &y.A)
	f.FpAdd(&z.B, &x.B, &y.B)
}

// z = x - y
func (f *Field) Sub(z, x, y *Fp2) {
	f.FpSub(&z.A, &x.A, &y.A)
	f.FpSub(&z.B, &x.B, &y.B)
}

// z = -x
func (f *Field) Neg(z, x *Fp2) {
	f.FpNeg(&z.A, &x.A)
	f.FpNeg(&z.B, &x.B)
}

// z = x * y
func (f *Field) Mul(z, x, y *Fp2) {
	// Let (a,b,c,d) = (x.A,x.B,y.A,y.B).
	//
	// (a + bi)*(c + di) = (a*c - b*d) + ((a+b)*(c+d) - a*c - b*d)i
	var ac, bd, apb, cpd, s Fp
	f.FpMul(&ac, &x.A, &y.A)
	f.FpMul(&bd, &x.B, &y.B)
	f.FpAdd(&apb, &x.A, &x.B)
	f.FpAdd(&cpd, &y.A, &y.B)
	f.FpMul(&s, &apb, &cpd)
	f.FpSub(&s, &s, &ac)
	f.FpSub(&z.B, &s, &bd)
	f.FpSub(&z.A, &ac, &bd)
}

// z = x^2
func (f *Field) Sqr(z, x *Fp2) {
	// (a + bi)^2 = (a+b)(a-b) + 2abi
	var apb, amb, a2 Fp
	f.FpAdd(&apb, &x.A, &x.B)
	f.FpSub(&amb, &x.A, &x.B)
	f.FpAdd(&a2, &x.A, &x.A)
	f.FpMul(&z.B, &a2, &x.B)
	f.FpMul(&z.A, &apb, &amb)
}

// z = x/2
func (f *Field) Half(z, x *Fp2) {
	f.FpHalf(&z.A, &x.A)
	f.FpHalf(&z.B, &x.B)
}

// z = conjugate of x. For elements of norm one this is the inverse.
func (f *Field) Conj(z, x *Fp2) {
	z.A = x.A
	f.FpNeg(&z.B, &x.B)
}

// Norm of x, that is a^2 + b^2.
func (f *Field) norm(n *Fp, x *Fp2) {
	var t Fp
	f.FpSqr(n, &x.A)
	f.FpSqr(&t, &x.B)
	f.FpAdd(n, n, &t)
}

// z = 1/x, constant time.
//
//	   1          1     (a - bi)      (a - bi)
//	-------- = -------- -------- = -----------
//	(a + bi)   (a + bi) (a - bi)   (a^2 + b^2)
func (f *Field) Inv(z, x *Fp2) {
	var n Fp
	f.norm(&n, x)
	f.FpInv(&n, &n)
	f.invFinish(z, x, &n)
}

// VartimeInv sets z = 1/x using the binary GCD for the norm inversion. For
// public values only.
func (f *Field) VartimeInv(z, x *Fp2) {
	var n Fp
	f.norm(&n, x)
	f.FpVartimeInv(&n, &n)
	f.invFinish(z, x, &n)
}

func (f *Field) invFinish(z, x *Fp2, ninv *Fp) {
	var b Fp
	f.FpNeg(&b, &x.B)
	f.FpMul(&z.A, &x.A, ninv)
	f.FpMul(&z.B, &b, ninv)
}

// Batch3Inv computes y1 = 1/x1, y2 = 1/x2 and y3 = 1/x3 with a single
// inversion.
func (f *Field) Batch3Inv(x1, x2, x3, y1, y2, y3 *Fp2) {
	var x1x2, t Fp2
	f.Mul(&x1x2, x1, x2) // x1*x2
	f.Mul(&t, &x1x2, x3) // 1/(x1*x2*x3)
	f.Inv(&t, &t)
	f.Mul(y1, &t, x2) // 1/x1
	f.Mul(y1, y1, x3)
	f.Mul(y2, &t, x1) // 1/x2
	f.Mul(y2, y2, x3)
	f.Mul(y3, &t, &x1x2) // 1/x3
}

// z = x^e with a public exponent given as little-endian words.
func (f *Field) Exp(z, x *Fp2, e []uint64) {
	var table [16]Fp2
	table[0] = f.One()
	table[1] = *x
	for i := 2; i < 16; i++ {
		f.Mul(&table[i], &table[i-1], x)
	}
	acc := f.One()
	for i := len(e) - 1; i >= 0; i-- {
		for j := 60; j >= 0; j -= 4 {
			for k := 0; k < 4; k++ {
				f.Sqr(&acc, &acc)
			}
			f.Mul(&acc, &acc, &table[(e[i]>>uint(j))&0xF])
		}
	}
	*z = acc
}

// ExpBig sets z = x^e for a public, non-negative exponent e.
func (f *Field) ExpBig(z, x *Fp2, e *big.Int) {
	f.Exp(z, x, Words(e))
}

// Words returns the little-endian 64-bit words of a non-negative integer.
func Words(e *big.Int) []uint64 {
	return toWords(e)
}

// Sqrt sets z to a square root of x and reports whether x is a square. The
// computation does not branch on x, so it can be used on secret values.
// When x is not a square the value left in z is unspecified.
//
// Uses the algorithm for p = 3 mod 4 by Adj and Rodriguez-Henriquez:
//
//	a1 = x^((p-3)/4), alpha = a1^2*x, x0 = a1*x
//	alpha = -1:  z = i*x0
//	otherwise:   z = (1+alpha)^((p-1)/2) * x0
func (f *Field) Sqrt(z, x *Fp2) bool {
	var a1, alpha, x0, r1, r2, t Fp2
	f.Exp(&a1, x, f.expP34)
	f.Mul(&x0, &a1, x)
	f.Mul(&alpha, &a1, &x0)

	// r1 = i*x0 = -b + ai
	f.FpNeg(&r1.A, &x0.B)
	r1.B = x0.A

	one := f.One()
	f.Add(&t, &one, &alpha)
	f.Exp(&t, &t, f.expLeg)
	f.Mul(&r2, &t, &x0)

	var minusOne Fp2
	f.Neg(&minusOne, &one)
	f.Select(z, &r2, &r1, f.ctEqual(&alpha, &minusOne))

	f.Sqr(&t, z)
	return f.Equal(&t, x)
}

// IsSquare reports whether x is a square in F_{p^2}. x is a square exactly
// when its norm is a square in F_p.
func (f *Field) IsSquare(x *Fp2) bool {
	var n Fp
	f.norm(&n, x)
	return f.FpIsSquare(&n)
}

// Equal reports whether x and y represent the same element.
func (f *Field) Equal(x, y *Fp2) bool {
	return f.ctEqual(x, y) == 1
}

// ctEqual returns 1 if x and y represent the same element and 0 otherwise,
// in constant time.
func (f *Field) ctEqual(x, y *Fp2) uint8 {
	a, b := *x, *y
	f.FpRdcP(&a.A)
	f.FpRdcP(&a.B)
	f.FpRdcP(&b.A)
	f.FpRdcP(&b.B)
	var acc uint64
	for i := 0; i < f.N; i++ {
		acc |= (a.A[i] ^ b.A[i]) | (a.B[i] ^ b.B[i])
	}
	return uint8(1 ^ (acc|-acc)>>63)
}

// IsZero reports whether x is zero.
func (f *Field) IsZero(x *Fp2) bool {
	a := f.FpIsZero(&x.A)
	b := f.FpIsZero(&x.B)
	return a && b
}

// CondSwap swaps x and y if choice = 1 and leaves them untouched if
// choice = 0.
func (f *Field) CondSwap(x, y *Fp2, choice uint8) {
	f.fpCondSwap(&x.A, &y.A, choice)
	f.fpCondSwap(&x.B, &y.B, choice)
}

// Select sets z = x if choice = 0 and z = y if choice = 1.
func (f *Field) Select(z, x, y *Fp2, choice uint8) {
	f.fpSelect(&z.A, &x.A, &y.A, choice)
	f.fpSelect(&z.B, &x.B, &y.B, choice)
}

// Normalize reduces both coordinates of x to [0, p).
func (f *Field) Normalize(x *Fp2) {
	f.FpRdcP(&x.A)
	f.FpRdcP(&x.B)
}

// SetUint64 sets z = a + b*i.
func (f *Field) SetUint64(z *Fp2, a, b uint64) {
	f.FpSetUint64(&z.A, a)
	f.FpSetUint64(&z.B, b)
}
