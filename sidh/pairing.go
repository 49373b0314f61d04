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

package sidh

import (
	"math/big"

	"github.com/isogeny/sike/internal/field"
	. "github.com/isogeny/sike/internal/isogeny"
)

// miller evaluates the Miller function f_{n,P} at Q and returns it as a
// fraction num/den. P must have order n. Variable time.
func miller(f *field.Field, A *field.Fp2, P, Q *Point, n *big.Int) (num, den field.Fp2) {
	var lambda, l, t field.Fp2
	num, den = f.One(), f.One()
	T := *P

	// line multiplies num by the line through T with slope lambda evaluated
	// at Q, den by the vertical line through the sum, and updates T.
	line := func(x2 *field.Fp2) {
		R := chordPoint(f, A, &lambda, &T, x2)
		f.Sub(&l, &Q.Y, &T.Y)
		f.Sub(&t, &Q.X, &T.X)
		f.Mul(&t, &t, &lambda)
		f.Sub(&l, &l, &t)
		f.Mul(&num, &num, &l)
		f.Sub(&t, &Q.X, &R.X)
		f.Mul(&den, &den, &t)
		T = R
	}
	// vertical handles T + S = O.
	vertical := func() {
		f.Sub(&t, &Q.X, &T.X)
		f.Mul(&num, &num, &t)
		T = Point{Inf: true}
	}

	for i := n.BitLen() - 2; i >= 0; i-- {
		f.Sqr(&num, &num)
		f.Sqr(&den, &den)
		if !T.Inf {
			if f.IsZero(&T.Y) {
				vertical()
			} else {
				slope(f, A, &T, nil, &lambda)
				line(&T.X)
			}
		}
		if n.Bit(i) == 1 && !T.Inf {
			if f.Equal(&T.X, &P.X) {
				vertical()
			} else {
				slope(f, A, &T, P, &lambda)
				line(&P.X)
			}
		}
	}
	return num, den
}

// slope sets lambda to the slope of the line through T and S, or of the
// tangent at T when S is nil.
func slope(f *field.Field, A *field.Fp2, T, S *Point, lambda *field.Fp2) {
	var n, d field.Fp2
	if S == nil {
		one := f.One()
		f.Sqr(&d, &T.X)
		f.Add(&n, &d, &d)
		f.Add(&n, &n, &d) // 3x^2
		f.Add(&d, A, A)
		f.Mul(&d, &d, &T.X)
		f.Add(&n, &n, &d)
		f.Add(&n, &n, &one)
		f.Add(&d, &T.Y, &T.Y)
	} else {
		f.Sub(&n, &S.Y, &T.Y)
		f.Sub(&d, &S.X, &T.X)
	}
	f.VartimeInv(&d, &d)
	f.Mul(lambda, &n, &d)
}

// chordPoint returns T + S where x2 = x(S) and lambda is the slope of the
// line through them.
func chordPoint(f *field.Field, A, lambda *field.Fp2, T *Point, x2 *field.Fp2) Point {
	var R Point
	f.Sqr(&R.X, lambda)
	f.Sub(&R.X, &R.X, A)
	f.Sub(&R.X, &R.X, &T.X)
	f.Sub(&R.X, &R.X, x2)
	f.Sub(&R.Y, &T.X, &R.X)
	f.Mul(&R.Y, &R.Y, lambda)
	f.Sub(&R.Y, &R.Y, &T.Y)
	return R
}

// weil returns the Weil pairing of P and Q, two points of order n on E_A,
// computed as f_{n,P}(Q)/f_{n,Q}(P). For odd n the result carries a sign,
// it is squared away.
func weil(f *field.Field, A *field.Fp2, P, Q *Point, n *big.Int) field.Fp2 {
	var w, t field.Fp2
	a, b := miller(f, A, P, Q, n)
	c, d := miller(f, A, Q, P, n)
	f.Mul(&w, &a, &d)
	f.Mul(&t, &b, &c)
	f.VartimeInv(&t, &t)
	f.Mul(&w, &w, &t)
	if n.Bit(0) == 1 {
		f.Sqr(&w, &w)
	}
	f.Normalize(&w)
	return w
}
