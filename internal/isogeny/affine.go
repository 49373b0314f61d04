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

package isogeny

import (
	"math/big"

	"github.com/isogeny/sike/internal/field"
)

// Affine arithmetic on y^2 = x^3 + Ax^2 + x. Used on public points only
// (compression, pairings and tests), all functions run in variable time.

// Point is an affine point. Inf marks the point at infinity, X and Y are
// then meaningless.
type Point struct {
	X, Y field.Fp2
	Inf  bool
}

// Rhs returns x^3 + Ax^2 + x.
func Rhs(f *field.Field, A, x *field.Fp2) field.Fp2 {
	var t field.Fp2
	f.Add(&t, x, A)  // t = x + A
	f.Mul(&t, &t, x) // t = x^2 + Ax
	one := f.One()
	f.Add(&t, &t, &one)
	f.Mul(&t, &t, x)
	return t
}

// Canonicalize replaces y by -y unless its real part (or, when the real
// part is zero, its imaginary part) is even.
func Canonicalize(f *field.Field, y *field.Fp2) {
	odd := f.FpIsOdd(&y.A)
	if f.FpIsZero(&y.A) {
		odd = f.FpIsOdd(&y.B)
	}
	if odd {
		f.Neg(y, y)
	}
	f.Normalize(y)
}

// RecoverY returns the point with x-coordinate x and canonical
// y-coordinate. It reports false if x is not on the curve.
func RecoverY(f *field.Field, A, x *field.Fp2) (Point, bool) {
	P := Point{X: *x}
	rhs := Rhs(f, A, x)
	if !f.Sqrt(&P.Y, &rhs) {
		return Point{}, false
	}
	Canonicalize(f, &P.Y)
	return P, true
}

// RecoverYFromDifference returns Q given P, x(Q) and x(P-Q):
//
//	y(Q) = ((x(P-Q) + A + xP + xQ)*(xP - xQ)^2 - f(xP) - f(xQ)) / 2yP
func RecoverYFromDifference(f *field.Field, A *field.Fp2, P *Point, xQ, xPmQ *field.Fp2) Point {
	var t, d, den field.Fp2
	Q := Point{X: *xQ}

	f.Sub(&d, &P.X, xQ)
	f.Sqr(&d, &d) // d = (xP - xQ)^2
	f.Add(&t, xPmQ, A)
	f.Add(&t, &t, &P.X)
	f.Add(&t, &t, xQ)
	f.Mul(&t, &t, &d)
	rP, rQ := Rhs(f, A, &P.X), Rhs(f, A, xQ)
	f.Sub(&t, &t, &rP)
	f.Sub(&t, &t, &rQ)
	f.Add(&den, &P.Y, &P.Y)
	f.VartimeInv(&den, &den)
	f.Mul(&Q.Y, &t, &den)
	return Q
}

// AffineNeg returns -P.
func AffineNeg(f *field.Field, P *Point) Point {
	R := *P
	f.Neg(&R.Y, &P.Y)
	return R
}

// AffineDouble returns [2]P.
func AffineDouble(f *field.Field, A *field.Fp2, P *Point) Point {
	if P.Inf || f.IsZero(&P.Y) {
		return Point{Inf: true}
	}
	var lambda field.Fp2
	tangent(f, A, P, &lambda)
	return chord(f, A, &lambda, &P.X, &P.X, P)
}

// AffineAdd returns P + Q.
func AffineAdd(f *field.Field, A *field.Fp2, P, Q *Point) Point {
	switch {
	case P.Inf:
		return *Q
	case Q.Inf:
		return *P
	}
	if f.Equal(&P.X, &Q.X) {
		var s field.Fp2
		f.Add(&s, &P.Y, &Q.Y)
		if f.IsZero(&s) {
			return Point{Inf: true}
		}
		return AffineDouble(f, A, P)
	}
	var lambda, t field.Fp2
	f.Sub(&lambda, &Q.Y, &P.Y)
	f.Sub(&t, &Q.X, &P.X)
	f.VartimeInv(&t, &t)
	f.Mul(&lambda, &lambda, &t)
	return chord(f, A, &lambda, &P.X, &Q.X, P)
}

// tangent sets lambda to the slope of the tangent at P,
// (3x^2 + 2Ax + 1) / 2y.
func tangent(f *field.Field, A *field.Fp2, P *Point, lambda *field.Fp2) {
	var t, u field.Fp2
	one := f.One()
	f.Sqr(&t, &P.X)
	f.Add(&u, &t, &t)
	f.Add(&t, &u, &t) // 3x^2
	f.Add(&u, A, A)
	f.Mul(&u, &u, &P.X)
	f.Add(&t, &t, &u)
	f.Add(&t, &t, &one)
	f.Add(&u, &P.Y, &P.Y)
	f.VartimeInv(&u, &u)
	f.Mul(lambda, &t, &u)
}

// chord returns the third intersection of the line of slope lambda through
// P (with x-coordinates x1, x2 of the two summands), negated.
func chord(f *field.Field, A, lambda, x1, x2 *field.Fp2, P *Point) Point {
	var R Point
	f.Sqr(&R.X, lambda)
	f.Sub(&R.X, &R.X, A)
	f.Sub(&R.X, &R.X, x1)
	f.Sub(&R.X, &R.X, x2)
	f.Sub(&R.Y, &P.X, &R.X)
	f.Mul(&R.Y, &R.Y, lambda)
	f.Sub(&R.Y, &R.Y, &P.Y)
	return R
}

// VartimeScalarMul returns [k]P using double-and-add. k must be
// non-negative.
func VartimeScalarMul(f *field.Field, A *field.Fp2, P *Point, k *big.Int) Point {
	R := Point{Inf: true}
	for i := k.BitLen() - 1; i >= 0; i-- {
		R = AffineDouble(f, A, &R)
		if k.Bit(i) == 1 {
			R = AffineAdd(f, A, &R, P)
		}
	}
	return R
}

// Projective returns (x:1), or (1:0) for the point at infinity.
func (P *Point) Projective(f *field.Field) ProjectivePoint {
	if P.Inf {
		return ProjectivePoint{X: f.One()}
	}
	return NewProjectivePoint(f, &P.X)
}
