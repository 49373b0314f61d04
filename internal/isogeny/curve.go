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

// Package isogeny implements x-only arithmetic on Montgomery curves
// By^2 = x^3 + (A/C)x^2 + x over F_{p^2} and the 2-, 3- and 4-isogenies used
// by SIDH. Every function takes the field explicitly, none keeps state.
package isogeny

import (
	"github.com/isogeny/sike/internal/field"
)

// A point on the projective line P^1(F_{p^2}).
//
// This represents a point on the Kummer line of a Montgomery curve. Z = 0
// encodes the point at infinity.
type ProjectivePoint struct {
	X field.Fp2
	Z field.Fp2
}

// A point on the projective line P^1(F_{p^2}).
//
// This is used to work projectively with the curve coefficients.
type ProjectiveCurveParameters struct {
	A field.Fp2
	C field.Fp2
}

// Stores curve projective parameters equivalent to A/C. Meaning of the
// values depends on the context. When working with isogenies over
// subgroup that are powers of:
//   - three then  (A:C) ~ (A+2C:A-2C)
//   - four then   (A:C) ~ (A+2C:  4C)
//   - two then    (A:C) ~ (A+2C:  4C) as well
type CurveCoefficientsEquiv struct {
	A field.Fp2
	C field.Fp2
}

// NewProjectivePoint returns (x:1).
func NewProjectivePoint(f *field.Field, x *field.Fp2) ProjectivePoint {
	return ProjectivePoint{X: *x, Z: f.One()}
}

// IsInfinity reports whether p is the point at infinity.
func IsInfinity(f *field.Field, p *ProjectivePoint) bool {
	return f.IsZero(&p.Z)
}

// ToAffine returns X/Z. Variable time, public points only.
func ToAffine(f *field.Field, p *ProjectivePoint) field.Fp2 {
	var x field.Fp2
	f.VartimeInv(&x, &p.Z)
	f.Mul(&x, &x, &p.X)
	return x
}

// CalcAplus2Over4 returns (A+2C)/4C.
func CalcAplus2Over4(f *field.Field, cparams *ProjectiveCurveParameters) (ret field.Fp2) {
	var tmp field.Fp2

	// 2C
	f.Add(&tmp, &cparams.C, &cparams.C)
	// A+2C
	f.Add(&ret, &cparams.A, &tmp)
	// 1/4C
	f.Add(&tmp, &tmp, &tmp)
	f.Inv(&tmp, &tmp)
	// A+2C/4C
	f.Mul(&ret, &ret, &tmp)
	return
}

// Jinvariant computes the j-invariant of the curve y^2 = x^3 + A/C x^2 + x.
func Jinvariant(f *field.Field, cparams *ProjectiveCurveParameters, j *field.Fp2) {
	var t0, t1 field.Fp2

	f.Sqr(j, &cparams.A)   // j  = A^2
	f.Sqr(&t1, &cparams.C) // t1 = C^2
	f.Add(&t0, &t1, &t1)   // t0 = t1 + t1
	f.Sub(&t0, j, &t0)     // t0 = j - t0
	f.Sub(&t0, &t0, &t1)   // t0 = t0 - t1
	f.Sub(j, &t0, &t1)     // t0 = t0 - t1
	f.Sqr(&t1, &t1)        // t1 = t1^2
	f.Mul(j, j, &t1)       // j = j * t1
	f.Add(&t0, &t0, &t0)   // t0 = t0 + t0
	f.Add(&t0, &t0, &t0)   // t0 = t0 + t0
	f.Sqr(&t1, &t0)        // t1 = t0^2
	f.Mul(&t0, &t0, &t1)   // t0 = t0 * t1
	f.Add(&t0, &t0, &t0)   // t0 = t0 + t0
	f.Add(&t0, &t0, &t0)   // t0 = t0 + t0
	f.Inv(j, j)            // j  = 1/j
	f.Mul(j, &t0, j)       // j  = t0 * j
}

// RecoverCoordinateA recovers the affine coefficient A (with C = 1) of the
// curve containing points with affine x-coordinates xp, xq and xr = x(Q-P).
func RecoverCoordinateA(f *field.Field, curve *ProjectiveCurveParameters, xp, xq, xr *field.Fp2) {
	var t0, t1 field.Fp2
	one := f.One()

	f.Add(&t1, xp, xq)              // t1 = Xp + Xq
	f.Mul(&t0, xp, xq)              // t0 = Xp * Xq
	f.Mul(&curve.A, xr, &t1)        // A  = X(q-p) * t1
	f.Add(&curve.A, &curve.A, &t0)  // A  = A + t0
	f.Mul(&t0, &t0, xr)             // t0 = t0 * X(q-p)
	f.Sub(&curve.A, &curve.A, &one) // A  = A - 1
	f.Add(&t0, &t0, &t0)            // t0 = t0 + t0
	f.Add(&t1, &t1, xr)             // t1 = t1 + X(q-p)
	f.Add(&t0, &t0, &t0)            // t0 = t0 + t0
	f.Sqr(&curve.A, &curve.A)       // A  = A^2
	f.Inv(&t0, &t0)                 // t0 = 1/t0
	f.Mul(&curve.A, &curve.A, &t0)  // A  = A * t0
	f.Sub(&curve.A, &curve.A, &t1)  // A  = A - t1
	curve.C = one
}

// Computes equivalence (A:C) ~ (A+2C : A-2C)
func CalcCurveParamsEquiv3(f *field.Field, cparams *ProjectiveCurveParameters) CurveCoefficientsEquiv {
	var coef CurveCoefficientsEquiv
	var c2 field.Fp2

	f.Add(&c2, &cparams.C, &cparams.C)
	// A24p = A+2*C
	f.Add(&coef.A, &cparams.A, &c2)
	// A24m = A-2*C
	f.Sub(&coef.C, &cparams.A, &c2)
	return coef
}

// Computes equivalence (A:C) ~ (A+2C : 4C)
func CalcCurveParamsEquiv4(f *field.Field, cparams *ProjectiveCurveParameters) CurveCoefficientsEquiv {
	var coefEq CurveCoefficientsEquiv

	f.Add(&coefEq.C, &cparams.C, &cparams.C)
	// A24p = A+2C
	f.Add(&coefEq.A, &cparams.A, &coefEq.C)
	// C24 = 4*C
	f.Add(&coefEq.C, &coefEq.C, &coefEq.C)
	return coefEq
}

// Recovers (A:C) curve parameters from projectively equivalent (A+2C:A-2C).
func RecoverCurveCoefficients3(f *field.Field, cparams *ProjectiveCurveParameters, coefEq *CurveCoefficientsEquiv) {
	f.Add(&cparams.A, &coefEq.A, &coefEq.C)
	// cparams.A = 2*(A+2C+A-2C) = 4A
	f.Add(&cparams.A, &cparams.A, &cparams.A)
	// cparams.C = (A+2C-A+2C) = 4C
	f.Sub(&cparams.C, &coefEq.A, &coefEq.C)
}

// Recovers (A:C) curve parameters from projectively equivalent (A+2C:4C).
func RecoverCurveCoefficients4(f *field.Field, cparams *ProjectiveCurveParameters, coefEq *CurveCoefficientsEquiv) {
	// cparams.C = (4C)*1/2=2C
	f.Half(&cparams.C, &coefEq.C)
	// cparams.A = A+2C - 2C = A
	f.Sub(&cparams.A, &coefEq.A, &cparams.C)
	// cparams.C = 2C * 1/2 = C
	f.Half(&cparams.C, &cparams.C)
}

// Combined coordinate doubling and differential addition. Takes projective points
// P,Q,Q-P and (A+2C)/4C curve E coefficient. Returns 2*P and P+Q calculated on E.
func XDbladd(f *field.Field, P, Q, QmP *ProjectivePoint, a24 *field.Fp2) (dblP, PaQ ProjectivePoint) {
	var t0, t1, t2 field.Fp2
	xQmP, zQmP := &QmP.X, &QmP.Z
	xPaQ, zPaQ := &PaQ.X, &PaQ.Z
	x2P, z2P := &dblP.X, &dblP.Z
	xP, zP := &P.X, &P.Z
	xQ, zQ := &Q.X, &Q.Z

	f.Add(&t0, xP, zP)      // t0   = Xp+Zp
	f.Sub(&t1, xP, zP)      // t1   = Xp-Zp
	f.Sqr(x2P, &t0)         // 2P.X = t0^2
	f.Sub(&t2, xQ, zQ)      // t2   = Xq-Zq
	f.Add(xPaQ, xQ, zQ)     // Xp+q = Xq+Zq
	f.Mul(&t0, &t0, &t2)    // t0   = t0 * t2
	f.Mul(z2P, &t1, &t1)    // 2P.Z = t1 * t1
	f.Mul(&t1, &t1, xPaQ)   // t1   = t1 * Xp+q
	f.Sub(&t2, x2P, z2P)    // t2   = 2P.X - 2P.Z
	f.Mul(x2P, x2P, z2P)    // 2P.X = 2P.X * 2P.Z
	f.Mul(xPaQ, a24, &t2)   // Xp+q = A24 * t2
	f.Sub(zPaQ, &t0, &t1)   // Zp+q = t0 - t1
	f.Add(z2P, xPaQ, z2P)   // 2P.Z = Xp+q + 2P.Z
	f.Add(xPaQ, &t0, &t1)   // Xp+q = t0 + t1
	f.Mul(z2P, z2P, &t2)    // 2P.Z = 2P.Z * t2
	f.Sqr(zPaQ, zPaQ)       // Zp+q = Zp+q ^ 2
	f.Sqr(xPaQ, xPaQ)       // Xp+q = Xp+q ^ 2
	f.Mul(zPaQ, xQmP, zPaQ) // Zp+q = Xq-p * Zp+q
	f.Mul(xPaQ, zQmP, xPaQ) // Xp+q = Zq-p * Xp+q
	return
}

// Pow2k sets xP = x([2^k]P), given the curve in (A+2C:4C) form.
func Pow2k(f *field.Field, xP *ProjectivePoint, params *CurveCoefficientsEquiv, k uint32) {
	var t0, t1 field.Fp2

	x, z := &xP.X, &xP.Z
	for i := uint32(0); i < k; i++ {
		f.Sub(&t0, x, z)           // t0  = Xp - Zp
		f.Add(&t1, x, z)           // t1  = Xp + Zp
		f.Sqr(&t0, &t0)            // t0  = t0 ^ 2
		f.Sqr(&t1, &t1)            // t1  = t1 ^ 2
		f.Mul(z, &params.C, &t0)   // Z2p = C24 * t0
		f.Mul(x, z, &t1)           // X2p = Z2p * t1
		f.Sub(&t1, &t1, &t0)       // t1  = t1 - t0
		f.Mul(&t0, &params.A, &t1) // t0  = A24+ * t1
		f.Add(z, z, &t0)           // Z2p = Z2p + t0
		f.Mul(z, z, &t1)           // Zp  = Z2p * t1
	}
}

// Pow3k sets xP = x([3^k]P), given the curve in (A+2C:A-2C) form.
func Pow3k(f *field.Field, xP *ProjectivePoint, params *CurveCoefficientsEquiv, k uint32) {
	var t0, t1, t2, t3, t4, t5, t6 field.Fp2

	x, z := &xP.X, &xP.Z
	for i := uint32(0); i < k; i++ {
		f.Sub(&t0, x, z)           // t0  = Xp - Zp
		f.Sqr(&t2, &t0)            // t2  = t0^2
		f.Add(&t1, x, z)           // t1  = Xp + Zp
		f.Sqr(&t3, &t1)            // t3  = t1^2
		f.Add(&t4, &t1, &t0)       // t4  = t1 + t0
		f.Sub(&t0, &t1, &t0)       // t0  = t1 - t0
		f.Sqr(&t1, &t4)            // t1  = t4^2
		f.Sub(&t1, &t1, &t3)       // t1  = t1 - t3
		f.Sub(&t1, &t1, &t2)       // t1  = t1 - t2
		f.Mul(&t5, &t3, &params.A) // t5  = t3 * A24+
		f.Mul(&t3, &t3, &t5)       // t3  = t5 * t3
		f.Mul(&t6, &t2, &params.C) // t6  = t2 * A24-
		f.Mul(&t2, &t2, &t6)       // t2  = t2 * t6
		f.Sub(&t3, &t2, &t3)       // t3  = t2 - t3
		f.Sub(&t2, &t5, &t6)       // t2  = t5 - t6
		f.Mul(&t1, &t2, &t1)       // t1  = t2 * t1
		f.Add(&t2, &t3, &t1)       // t2  = t3 + t1
		f.Sqr(&t2, &t2)            // t2  = t2^2
		f.Mul(x, &t2, &t4)         // X3p = t2 * t4
		f.Sub(&t1, &t3, &t1)       // t1  = t3 - t1
		f.Sqr(&t1, &t1)            // t1  = t1^2
		f.Mul(z, &t1, &t0)         // Z3p = t1 * t0
	}
}

func condSwap(f *field.Field, p, q *ProjectivePoint, choice uint8) {
	f.CondSwap(&p.X, &q.X, choice)
	f.CondSwap(&p.Z, &q.Z, choice)
}

// ScalarMul3Pt is a right-to-left point multiplication that, given the
// x-coordinates of P, Q and P-Q, calculates the x-coordinate of
// R = P+[scalar]Q. The scalar is little endian, nbits must not exceed
// 8*len(scalar). The running time depends on nbits only.
func ScalarMul3Pt(f *field.Field, cparams *ProjectiveCurveParameters, P, Q, PmQ *ProjectivePoint, nbits uint, scalar []uint8) ProjectivePoint {
	var R0, R2, R1 ProjectivePoint
	aPlus2Over4 := CalcAplus2Over4(f, cparams)
	R1 = *P
	R2 = *PmQ
	R0 = *Q

	// Iterate over the bits of the scalar, bottom to top
	prevBit := uint8(0)
	for i := uint(0); i < nbits; i++ {
		bit := (scalar[i>>3] >> (i & 7) & 1)
		swap := prevBit ^ bit
		prevBit = bit
		condSwap(f, &R1, &R2, swap)
		R0, R2 = XDbladd(f, &R0, &R2, &R1, &aPlus2Over4)
	}
	condSwap(f, &R1, &R2, prevBit)
	return R1
}
