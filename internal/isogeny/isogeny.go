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

package isogeny

import (
	"github.com/isogeny/sike/internal/field"
)

// Isogeny is a small-degree isogeny phi : E -> E'. GenerateCurve must be
// called with a kernel generator before EvaluatePoint.
type Isogeny interface {
	// Given a point of exact order k on E, computes the codomain E' in
	// the equivalent form used by the isogeny degree and stores the
	// constants needed to evaluate phi.
	GenerateCurve(*ProjectivePoint) CurveCoefficientsEquiv
	// Computes x(phi(P)) on E'.
	EvaluatePoint(*ProjectivePoint) ProjectivePoint
}

// Stores isogeny 2 curve constants
type isogeny2 struct {
	f      *field.Field
	X2, Z2 field.Fp2
}

// Stores isogeny 3 curve constants
type isogeny3 struct {
	f  *field.Field
	K1 field.Fp2
	K2 field.Fp2
}

// Stores isogeny 4 curve constants
type isogeny4 struct {
	isogeny3
	K3 field.Fp2
}

// Constructs isogeny2 objects
func NewIsogeny2(f *field.Field) Isogeny {
	return &isogeny2{f: f}
}

// Constructs isogeny3 objects
func NewIsogeny3(f *field.Field) Isogeny {
	return &isogeny3{f: f}
}

// Constructs isogeny4 objects
func NewIsogeny4(f *field.Field) Isogeny {
	return &isogeny4{isogeny3: isogeny3{f: f}}
}

// Given a point p = x(P_2) of exact order 2, different from (0,0), constructs
// phi : E_(A:C) -> E_(A:C)/<P_2>. The codomain is returned as (A'+2C' : 4C').
func (phi *isogeny2) GenerateCurve(p *ProjectivePoint) CurveCoefficientsEquiv {
	var coefEq CurveCoefficientsEquiv
	f := phi.f

	phi.X2, phi.Z2 = p.X, p.Z
	f.Sqr(&coefEq.A, &p.X)                 // A24p = X2^2
	f.Sqr(&coefEq.C, &p.Z)                 // C24  = Z2^2
	f.Sub(&coefEq.A, &coefEq.C, &coefEq.A) // A24p = C24 - A24p
	return coefEq
}

// Given a 2-isogeny phi and a point p = x(P), computes x(phi(P)).
func (phi *isogeny2) EvaluatePoint(p *ProjectivePoint) ProjectivePoint {
	var t0, t1, t2, t3 field.Fp2
	var q ProjectivePoint
	f := phi.f

	f.Add(&t0, &phi.X2, &phi.Z2) // t0 = X2 + Z2
	f.Sub(&t1, &phi.X2, &phi.Z2) // t1 = X2 - Z2
	f.Add(&t2, &p.X, &p.Z)       // t2 = XQ + ZQ
	f.Sub(&t3, &p.X, &p.Z)       // t3 = XQ - ZQ
	f.Mul(&t0, &t0, &t3)         // t0 = t0 * t3
	f.Mul(&t1, &t1, &t2)         // t1 = t1 * t2
	f.Add(&t2, &t0, &t1)         // t2 = t0 + t1
	f.Sub(&t3, &t0, &t1)         // t3 = t0 - t1
	f.Mul(&q.X, &p.X, &t2)       // XQ'= XQ * t2
	f.Mul(&q.Z, &p.Z, &t3)       // ZQ'= ZQ * t3
	return q
}

// Given a three-torsion point p = x(PB) on the curve E_(A:C), construct the
// three-isogeny phi : E_(A:C) -> E_(A:C)/<P_3> = E_(A':C').
//
// Input: (XP_3: ZP_3), where P_3 has exact order 3 on E_A/C
// Output: * Curve coordinates (A' + 2C', A' - 2C') corresponding to E_A'/C' = A_E/C/<P3>
//   - isogeny phi with constants in F_p^2
func (phi *isogeny3) GenerateCurve(p *ProjectivePoint) CurveCoefficientsEquiv {
	var t0, t1, t2, t3, t4 field.Fp2
	var coefEq CurveCoefficientsEquiv
	var K1, K2 = &phi.K1, &phi.K2
	f := phi.f

	f.Sub(K1, &p.X, &p.Z)            // K1 = XP3 - ZP3
	f.Sqr(&t0, K1)                   // t0 = K1^2
	f.Add(K2, &p.X, &p.Z)            // K2 = XP3 + ZP3
	f.Sqr(&t1, K2)                   // t1 = K2^2
	f.Add(&t2, &t0, &t1)             // t2 = t0 + t1
	f.Add(&t3, K1, K2)               // t3 = K1 + K2
	f.Sqr(&t3, &t3)                  // t3 = t3^2
	f.Sub(&t3, &t3, &t2)             // t3 = t3 - t2
	f.Add(&t2, &t1, &t3)             // t2 = t1 + t3
	f.Add(&t3, &t3, &t0)             // t3 = t3 + t0
	f.Add(&t4, &t3, &t0)             // t4 = t3 + t0
	f.Add(&t4, &t4, &t4)             // t4 = t4 + t4
	f.Add(&t4, &t1, &t4)             // t4 = t1 + t4
	f.Mul(&coefEq.C, &t2, &t4)       // A24m = t2 * t4
	f.Add(&t4, &t1, &t2)             // t4 = t1 + t2
	f.Add(&t4, &t4, &t4)             // t4 = t4 + t4
	f.Add(&t4, &t0, &t4)             // t4 = t0 + t4
	f.Mul(&t4, &t3, &t4)             // t4 = t3 * t4
	f.Sub(&t0, &t4, &coefEq.C)       // t0 = t4 - A24m
	f.Add(&coefEq.A, &coefEq.C, &t0) // A24p = A24m + t0
	return coefEq
}

// Given a 3-isogeny phi and a point pB = x(PB), compute x(QB), the x-coordinate
// of the image QB = phi(PB) of PB under phi : E_(A:C) -> E_(A':C').
func (phi *isogeny3) EvaluatePoint(p *ProjectivePoint) ProjectivePoint {
	var t0, t1, t2 field.Fp2
	var q ProjectivePoint
	var K1, K2 = &phi.K1, &phi.K2
	var px, pz = &p.X, &p.Z
	f := phi.f

	f.Add(&t0, px, pz)   // t0 = XQ + ZQ
	f.Sub(&t1, px, pz)   // t1 = XQ - ZQ
	f.Mul(&t0, K1, &t0)  // t2 = K1 * t0
	f.Mul(&t1, K2, &t1)  // t1 = K2 * t1
	f.Add(&t2, &t0, &t1) // t2 = t0 + t1
	f.Sub(&t0, &t1, &t0) // t0 = t1 - t0
	f.Sqr(&t2, &t2)      // t2 = t2 ^ 2
	f.Sqr(&t0, &t0)      // t0 = t0 ^ 2
	f.Mul(&q.X, px, &t2) // XQ'= XQ * t2
	f.Mul(&q.Z, pz, &t0) // ZQ'= ZQ * t0
	return q
}

// Given a four-torsion point p = x(PB) on the curve E_(A:C), construct the
// four-isogeny phi : E_(A:C) -> E_(A:C)/<P_4> = E_(A':C').
//
// Input: (XP_4: ZP_4), where P_4 has exact order 4 on E_A/C
// Output: * Curve coordinates (A' + 2C', 4C') corresponding to E_A'/C' = A_E/C/<P4>
//   - isogeny phi with constants in F_p^2
func (phi *isogeny4) GenerateCurve(p *ProjectivePoint) CurveCoefficientsEquiv {
	var coefEq CurveCoefficientsEquiv
	var xp4, zp4 = &p.X, &p.Z
	var K1, K2, K3 = &phi.K1, &phi.K2, &phi.K3
	f := phi.f

	f.Sub(K2, xp4, zp4)
	f.Add(K3, xp4, zp4)
	f.Sqr(K1, zp4)
	f.Add(K1, K1, K1)
	f.Sqr(&coefEq.C, K1)
	f.Add(K1, K1, K1)
	f.Sqr(&coefEq.A, xp4)
	f.Add(&coefEq.A, &coefEq.A, &coefEq.A)
	f.Sqr(&coefEq.A, &coefEq.A)
	return coefEq
}

// Given a 4-isogeny phi and a point xP = x(P), compute x(Q), the x-coordinate
// of the image Q = phi(P) of P under phi : E_(A:C) -> E_(A':C').
func (phi *isogeny4) EvaluatePoint(p *ProjectivePoint) ProjectivePoint {
	var t0, t1 field.Fp2
	var q = *p
	var xq, zq = &q.X, &q.Z
	var K1, K2, K3 = &phi.K1, &phi.K2, &phi.K3
	f := phi.f

	f.Add(&t0, xq, zq)
	f.Sub(&t1, xq, zq)
	f.Mul(xq, &t0, K2)
	f.Mul(zq, &t1, K3)
	f.Mul(&t0, &t0, &t1)
	f.Mul(&t0, &t0, K1)
	f.Add(&t1, xq, zq)
	f.Sub(zq, xq, zq)
	f.Sqr(&t1, &t1)
	f.Sqr(zq, zq)
	f.Add(xq, &t0, &t1)
	f.Sub(&t0, zq, &t0)
	f.Mul(xq, xq, &t1)
	f.Mul(zq, zq, &t0)
	return q
}
