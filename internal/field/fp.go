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

// Operations on F_p. Inputs and outputs are in Montgomery form and lie in
// [0, 2p) unless stated otherwise. All operations run in constant time,
// except the ones prefixed with Vartime.

// z = x + y mod 2p
func (f *Field) FpAdd(z, x, y *Fp) {
	// x+y < 4p < R, no carry out of the top word.
	mpAdd(z, x, y, f.N)
	f.condSubtract(z, &f.pX2)
}

// z = x - y mod 2p
func (f *Field) FpSub(z, x, y *Fp) {
	var t Fp
	borrow := mpSub(z, x, y, f.N)
	m := mask64(borrow)
	for i := 0; i < f.N; i++ {
		t[i] = f.pX2[i] & m
	}
	mpAdd(z, z, &t, f.N)
}

// z = -x mod 2p
func (f *Field) FpNeg(z, x *Fp) {
	var zero Fp
	f.FpSub(z, &zero, x)
}

// z = x * y * R^-1 mod 2p
func (f *Field) FpMul(z, x, y *Fp) {
	var t FpX2
	mpMul(&t, x, y, f.N)
	f.montRdc(z, &t)
}

// z = x^2 * R^-1 mod 2p
func (f *Field) FpSqr(z, x *Fp) {
	f.FpMul(z, x, x)
}

// z = x/2 mod p
func (f *Field) FpHalf(z, x *Fp) {
	f.FpMul(z, x, &f.half)
}

// Reduces x from [0, 2p) to [0, p).
func (f *Field) FpRdcP(x *Fp) {
	f.condSubtract(x, &f.p)
}

// FpToMont converts x (an integer below R) to Montgomery form.
func (f *Field) FpToMont(z, x *Fp) {
	f.FpMul(z, x, &f.r2)
}

// FpFromMont converts x out of Montgomery form, the result is in [0, p).
func (f *Field) FpFromMont(z, x *Fp) {
	var t FpX2
	copy(t[:], x[:f.N])
	f.montRdc(z, &t)
	f.FpRdcP(z)
}

// FpSetUint64 sets z to v in Montgomery form.
func (f *Field) FpSetUint64(z *Fp, v uint64) {
	var t Fp
	t[0] = v
	f.FpToMont(z, &t)
}

// z = x^e where e is given as little-endian words. The exponent is public,
// the running time depends on it but not on x. A fixed 4-bit window is used.
func (f *Field) FpExp(z, x *Fp, e []uint64) {
	var table [16]Fp
	table[0] = f.one
	table[1] = *x
	for i := 2; i < 16; i++ {
		f.FpMul(&table[i], &table[i-1], x)
	}

	acc := f.one
	for i := len(e) - 1; i >= 0; i-- {
		for j := 60; j >= 0; j -= 4 {
			for k := 0; k < 4; k++ {
				f.FpSqr(&acc, &acc)
			}
			f.FpMul(&acc, &acc, &table[(e[i]>>uint(j))&0xF])
		}
	}
	*z = acc
}

// z = 1/x mod p, using Fermat's little theorem (Euler's theorem for rings).
// Returns 0 for x = 0.
func (f *Field) FpInv(z, x *Fp) {
	f.FpExp(z, x, f.expInv)
}

// FpVartimeInv computes z = 1/x mod p with the binary extended Euclidean
// algorithm. The running time depends on x, so it must only be used on
// public values. Returns 0 for x = 0.
func (f *Field) FpVartimeInv(z, x *Fp) {
	n := f.N
	// Work on the plain integer a = x*R mod p.
	u := *x
	f.FpRdcP(&u)
	if mpIsZero(&u, n) {
		*z = Fp{}
		return
	}
	v := f.p
	var x1, x2 Fp
	x1[0] = 1

	var one Fp
	one[0] = 1
	for mpCmp(&u, &one, n) != 0 && mpCmp(&v, &one, n) != 0 {
		for mpIsEven(&u) {
			mpShr1(&u, n)
			if !mpIsEven(&x1) {
				mpAdd(&x1, &x1, &f.p, n)
			}
			mpShr1(&x1, n)
		}
		for mpIsEven(&v) {
			mpShr1(&v, n)
			if !mpIsEven(&x2) {
				mpAdd(&x2, &x2, &f.p, n)
			}
			mpShr1(&x2, n)
		}
		if mpCmp(&u, &v, n) >= 0 {
			mpSub(&u, &u, &v, n)
			if mpSub(&x1, &x1, &x2, n) != 0 {
				mpAdd(&x1, &x1, &f.p, n)
			}
		} else {
			mpSub(&v, &v, &u, n)
			if mpSub(&x2, &x2, &x1, n) != 0 {
				mpAdd(&x2, &x2, &f.p, n)
			}
		}
	}
	if mpCmp(&u, &one, n) == 0 {
		*z = x1
	} else {
		*z = x2
	}
	// z = (aR)^-1; multiply by R^3 to get a^-1 * R.
	f.FpMul(z, z, &f.r3)
}

// FpSqrt sets z to a square root of x and reports whether x is a square.
// Defined for primes congruent to 3 mod 4 only. When x is not a square z is
// a square root of -x.
func (f *Field) FpSqrt(z, x *Fp) bool {
	var t Fp
	f.FpExp(&t, x, f.expSqrt)
	var chk Fp
	f.FpSqr(&chk, &t)
	ok := f.FpEqual(&chk, x)
	*z = t
	return ok
}

// FpIsSquare reports whether x is a square in F_p (zero counts as a square).
func (f *Field) FpIsSquare(x *Fp) bool {
	var t Fp
	f.FpExp(&t, x, f.expLeg)
	isOne := f.FpEqual(&t, &f.one)
	isZero := f.FpIsZero(x)
	return isOne || isZero
}

// FpEqual reports whether x and y represent the same element. Runs in
// constant time.
func (f *Field) FpEqual(x, y *Fp) bool {
	a, b := *x, *y
	f.FpRdcP(&a)
	f.FpRdcP(&b)
	var acc uint64
	for i := 0; i < f.N; i++ {
		acc |= a[i] ^ b[i]
	}
	return acc == 0
}

// FpIsZero reports whether x is zero modulo p.
func (f *Field) FpIsZero(x *Fp) bool {
	a := *x
	f.FpRdcP(&a)
	return mpIsZero(&a, f.N)
}

// FpIsOdd reports whether the canonical (non-Montgomery) value of x is odd.
func (f *Field) FpIsOdd(x *Fp) bool {
	var t Fp
	f.FpFromMont(&t, x)
	return t[0]&1 == 1
}
