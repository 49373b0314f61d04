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

package sidh

import (
	"github.com/isogeny/sike/internal/field"
	. "github.com/isogeny/sike/internal/isogeny"
	"github.com/isogeny/sike/internal/params"
)

// -----------------------------------------------------------------------------
// Secret isogeny walks
//

// walk computes the isogeny of degree ell^e with kernel <xK> on curve, where
// ell^e is the torsion of side a (A: 2^eA, B: 3^eB), and pushes pts through
// it. Returns the codomain.
//
// For odd eA the walk starts with a 2-isogeny and continues with 4-isogenies.
// Running time does not depend on xK.
func walk(p *params.Params, a bool, curve *ProjectiveCurveParameters, xK ProjectivePoint, pts []ProjectivePoint) ProjectiveCurveParameters {
	var cparam CurveCoefficientsEquiv
	var phi Isogeny
	var mul func(x *ProjectivePoint, k uint32)
	f := p.Field
	d := p.Side(a)

	if a {
		cparam = CalcCurveParamsEquiv4(f, curve)
		if d.E%2 == 1 {
			k2 := xK
			Pow2k(f, &k2, &cparam, uint32(d.E-1))
			phi2 := NewIsogeny2(f)
			cparam = phi2.GenerateCurve(&k2)
			xK = phi2.EvaluatePoint(&xK)
			for i := range pts {
				pts[i] = phi2.EvaluatePoint(&pts[i])
			}
		}
		phi = NewIsogeny4(f)
		mul = func(x *ProjectivePoint, k uint32) { Pow2k(f, x, &cparam, 2*k) }
	} else {
		cparam = CalcCurveParamsEquiv3(f, curve)
		phi = NewIsogeny3(f)
		mul = func(x *ProjectivePoint, k uint32) { Pow3k(f, x, &cparam, k) }
	}

	Traverse(d.IsogenyStrategy, xK,
		func(x ProjectivePoint, k uint32) ProjectivePoint {
			mul(&x, k)
			return x
		},
		func(xR ProjectivePoint, _ int, points []ProjectivePoint, _ []int) {
			cparam = phi.GenerateCurve(&xR)
			for k := range points {
				points[k] = phi.EvaluatePoint(&points[k])
			}
			for k := range pts {
				pts[k] = phi.EvaluatePoint(&pts[k])
			}
		})

	var out ProjectiveCurveParameters
	if a {
		RecoverCurveCoefficients4(f, &out, &cparam)
	} else {
		RecoverCurveCoefficients3(f, &out, &cparam)
	}
	return out
}

// Generate a public key in the torsion of the other side.
func publicKeyGen(prv *PrivateKey, pub *PublicKey) {
	var invZP, invZQ, invZR field.Fp2
	p := prv.params
	f := p.Field
	own, other := prv.domain(), prv.other()

	xP := NewProjectivePoint(f, &own.AffineP)
	xQ := NewProjectivePoint(f, &own.AffineQ)
	xR := NewProjectivePoint(f, &own.AffineR)
	pts := []ProjectivePoint{
		NewProjectivePoint(f, &other.AffineP),
		NewProjectivePoint(f, &other.AffineQ),
		NewProjectivePoint(f, &other.AffineR),
	}

	// Find isogeny kernel
	xK := ScalarMul3Pt(f, &p.InitCurve, &xP, &xQ, &xR, own.SecretBitLen, prv.Scalar)
	walk(p, prv.isA(), &p.InitCurve, xK, pts)

	f.Batch3Inv(&pts[0].Z, &pts[1].Z, &pts[2].Z, &invZP, &invZQ, &invZR)
	f.Mul(&pub.affineXP, &pts[0].X, &invZP)
	f.Mul(&pub.affineXQ, &pts[1].X, &invZQ)
	f.Mul(&pub.affineXQmP, &pts[2].X, &invZR)
	f.Normalize(&pub.affineXP)
	f.Normalize(&pub.affineXQ)
	f.Normalize(&pub.affineXQmP)
}

// Establishing shared keys in the torsion of prv.
func deriveSecret(ss []byte, prv *PrivateKey, pub *PublicKey) {
	var cparam ProjectiveCurveParameters
	var jInv field.Fp2
	p := prv.params
	f := p.Field
	own := prv.domain()

	// Recover curve coefficients, C=1
	RecoverCoordinateA(f, &cparam, &pub.affineXP, &pub.affineXQ, &pub.affineXQmP)

	// Find kernel of the morphism
	xP := NewProjectivePoint(f, &pub.affineXP)
	xQ := NewProjectivePoint(f, &pub.affineXQ)
	xQmP := NewProjectivePoint(f, &pub.affineXQmP)
	xK := ScalarMul3Pt(f, &cparam, &xP, &xQ, &xQmP, own.SecretBitLen, prv.Scalar)

	// Traverse isogeny tree and compute the j-invariant of the codomain
	cparam = walk(p, prv.isA(), &cparam, xK, nil)
	Jinvariant(f, &cparam, &jInv)
	f.ToBytes(ss, &jInv)
}
