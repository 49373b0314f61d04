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
	"github.com/isogeny/sike/internal/field"
	. "github.com/isogeny/sike/internal/isogeny"
	"github.com/isogeny/sike/internal/params"
)

// Deterministic torsion bases. Both parties must derive the same basis of
// E_A[ell^e] from A alone, so points are sampled with Elligator 2 from a
// counter r = 1, 2, ... and the first usable counters are recorded in the
// compressed key. All of it runs on public data in variable time.

// maxCounter bounds the Elligator counters, they are encoded on one byte.
const maxCounter = 255

// elligator returns the x-coordinate of a point on E_A derived from r:
//
//	x = -A/(1 + u*r^2), replaced by -x - A when x^3 + Ax^2 + x is not a square
//
// For A = 0 the map degenerates and x = r + i is used instead.
func elligator(p *params.Params, A *field.Fp2, r uint64) field.Fp2 {
	var x, t field.Fp2
	f := p.Field
	if f.IsZero(A) {
		f.SetUint64(&x, r, 1)
		return x
	}
	one := f.One()
	f.SetUint64(&t, r*r, 0)
	f.Mul(&t, &t, &p.ElligatorU)
	f.Add(&t, &t, &one)
	f.VartimeInv(&t, &t)
	f.Mul(&x, A, &t)
	f.Neg(&x, &x)

	rhs := Rhs(f, A, &x)
	if !f.IsSquare(&rhs) {
		f.Neg(&x, &x)
		f.Sub(&x, &x, A)
	}
	return x
}

// torsionPoint maps x into the ell^e torsion of side a by clearing the
// cofactor. It also returns the multiple of the result of order ell.
func torsionPoint(p *params.Params, a bool, A, x *field.Fp2) (xP, low ProjectivePoint) {
	f := p.Field
	curve := ProjectiveCurveParameters{A: *A, C: f.One()}
	eq3 := CalcCurveParamsEquiv3(f, &curve)
	eq4 := CalcCurveParamsEquiv4(f, &curve)

	xP = NewProjectivePoint(f, x)
	if a {
		Pow3k(f, &xP, &eq3, uint32(p.B.E))
		low = xP
		Pow2k(f, &low, &eq4, uint32(p.A.E-1))
	} else {
		Pow2k(f, &xP, &eq4, uint32(p.A.E))
		low = xP
		Pow3k(f, &low, &eq3, uint32(p.B.E-1))
	}
	return xP, low
}

// canonicalBasis returns the canonical basis (R1, R2) of E_A[ell^e] for side
// a, with canonical y-coordinates, and the counters which produced it.
func canonicalBasis(p *params.Params, a bool, A *field.Fp2) (R1, R2 Point, r1, r2 uint8, err error) {
	f := p.Field
	var found int
	var low1 field.Fp2
	for r := uint64(1); r <= maxCounter; r++ {
		x := elligator(p, A, r)
		xP, low := torsionPoint(p, a, A, &x)
		if IsInfinity(f, &xP) || IsInfinity(f, &low) {
			continue
		}
		xLow := ToAffine(f, &low)
		if found == 1 && f.Equal(&xLow, &low1) {
			continue
		}
		ax := ToAffine(f, &xP)
		R, ok := RecoverY(f, A, &ax)
		if !ok {
			continue
		}
		if found == 0 {
			R1, r1, low1 = R, uint8(r), xLow
			found++
			continue
		}
		return R1, R, r1, uint8(r), nil
	}
	return R1, R2, 0, 0, ErrBasis
}

// basisFromCounters rebuilds the basis recorded in a compressed key. It
// does not validate the counters.
func basisFromCounters(p *params.Params, a bool, A *field.Fp2, r1, r2 uint8) (R1, R2 Point) {
	f := p.Field
	var pts [2]Point
	for i, r := range []uint8{r1, r2} {
		x := elligator(p, A, uint64(r))
		xP, _ := torsionPoint(p, a, A, &x)
		ax := ToAffine(f, &xP)
		pts[i], _ = RecoverY(f, A, &ax)
		pts[i].X = ax
	}
	return pts[0], pts[1]
}
