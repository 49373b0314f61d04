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

	"github.com/pkg/errors"

	"github.com/isogeny/sike/internal/field"
	. "github.com/isogeny/sike/internal/isogeny"
	"github.com/isogeny/sike/internal/params"
)

// Public key compression.
//
// A public key (x(P), x(Q), x(P-Q)) on E_A is replaced by A and the
// coordinates of <P + sQ> in a canonical basis (R1, R2) of E_A[ell^e]:
//
//	P = aP*R1 + bP*R2,  Q = aQ*R1 + bQ*R2
//
// If aP is a unit, P + sQ generates the same group as R1 + t*R2 with
//
//	t = (bP/aP + s*bQ/aP) / (1 + s*aQ/aP)
//
// and otherwise bP is a unit and the roles of R1 and R2 are swapped. Only
// the three ratios are stored. The receiver's scalar must be a multiple of
// ell so that the denominator is a unit (see GenerateCompressible).
//
// Encoding: x0 || x1 || x2 || A || flags || r1 || r2, with x_i little-endian
// integers modulo ell^e, A an encoded F_{p^2} element, bit 0 of flags set
// when R1 and R2 are swapped and r1, r2 the Elligator counters of the basis.

const flagSwap = 1

// CompressedPublicKey is a public key in compressed form.
type CompressedPublicKey struct {
	key
	x          [3][]byte
	a          field.Fp2
	flags      uint8
	r1, r2     uint8
	orderBytes int
}

// NewCompressedPublicKey initializes a compressed public key owned by side v.
func NewCompressedPublicKey(id ID, v KeyVariant) *CompressedPublicKey {
	pub := &CompressedPublicKey{key: key{params: params.Must(id), keyVariant: v}}
	pub.orderBytes = pub.other().OrderByteLen
	for i := range pub.x {
		pub.x[i] = make([]byte, pub.orderBytes)
	}
	return pub
}

// Size returns the size of the encoded key in bytes.
func (pub *CompressedPublicKey) Size() int {
	return pub.domain().CompressedPublicKeySize
}

// SharedSecretSize returns the size of a shared secret computed with this key.
func (pub *CompressedPublicKey) SharedSecretSize() int {
	return pub.params.SharedSecretSize
}

// Export writes the encoded key to out, which must hold Size() bytes.
func (pub *CompressedPublicKey) Export(out []byte) error {
	if len(out) < pub.Size() {
		return errors.Wrapf(ErrInputSize, "compressed public key buffer: got %d bytes, want %d", len(out), pub.Size())
	}
	ob := pub.orderBytes
	for i := range pub.x {
		copy(out[i*ob:(i+1)*ob], pub.x[i])
	}
	off := 3 * ob
	pub.params.Field.ToBytes(out[off:], &pub.a)
	off += pub.params.SharedSecretSize
	out[off] = pub.flags
	out[off+1] = pub.r1
	out[off+2] = pub.r2
	return nil
}

// Import decodes a compressed key. Only the length is validated, any
// content decodes to some curve and basis.
func (pub *CompressedPublicKey) Import(input []byte) error {
	if len(input) != pub.Size() {
		return errors.Wrapf(ErrInputSize, "compressed public key: got %d bytes, want %d", len(input), pub.Size())
	}
	ob := pub.orderBytes
	for i := range pub.x {
		copy(pub.x[i], input[i*ob:(i+1)*ob])
	}
	off := 3 * ob
	pub.params.Field.FromBytes(&pub.a, input[off:])
	off += pub.params.SharedSecretSize
	pub.flags = input[off] & flagSwap
	pub.r1 = input[off+1]
	pub.r2 = input[off+2]
	return nil
}

// Compress writes the compressed form of pub to out. out must use the same
// parameters and key variant. Runs in variable time, public keys are
// public.
func (pub *PublicKey) Compress(out *CompressedPublicKey) error {
	if out.params != pub.params || out.isA() != pub.isA() {
		return ErrParamsMismatch
	}
	p := pub.params
	f := p.Field
	side := !pub.isA()
	n := p.Side(side).Order
	ell := big.NewInt(int64(p.Side(side).Ell))

	var curve ProjectiveCurveParameters
	RecoverCoordinateA(f, &curve, &pub.affineXP, &pub.affineXQ, &pub.affineXQmP)
	A := curve.A
	f.Normalize(&A)

	P, ok := RecoverY(f, &A, &pub.affineXP)
	if !ok {
		return errors.Wrap(ErrCompress, "x(P) is not on the curve")
	}
	Q := RecoverYFromDifference(f, &A, &P, &pub.affineXQ, &pub.affineXQmP)
	R1, R2, r1, r2, err := canonicalBasis(p, side, &A)
	if err != nil {
		return err
	}

	tbl := tableFor(p, side)
	var logs [4]*big.Int
	for i, pair := range [4][2]*Point{{&R1, &Q}, {&P, &R1}, {&R2, &Q}, {&P, &R2}} {
		w := weil(f, &A, pair[0], pair[1], n)
		if logs[i], ok = tbl.dlog(&w); !ok {
			return errors.Wrap(ErrCompress, "pairing outside the torsion group")
		}
	}
	a1, b1, a2, b2 := logs[0], logs[1], logs[2], logs[3]

	aP := new(big.Int).Set(b2)
	bP := new(big.Int).Neg(b1)
	aQ := new(big.Int).Neg(a2)
	bQ := new(big.Int).Set(a1)

	coeffs, unit := [3]*big.Int{bP, bQ, aQ}, aP
	var flags uint8
	if new(big.Int).Mod(aP, ell).Sign() == 0 {
		coeffs, unit = [3]*big.Int{aP, aQ, bQ}, bP
		flags = flagSwap
	}
	inv := new(big.Int).ModInverse(new(big.Int).Mod(unit, n), n)
	if inv == nil {
		return errors.Wrap(ErrCompress, "basis coefficients are not units")
	}
	for i, c := range coeffs {
		c.Mul(c, inv)
		c.Mod(c, n)
		putLE(out.x[i], c)
	}
	out.keyVariant = pub.keyVariant
	out.a = A
	out.flags = flags
	out.r1, out.r2 = r1, r2
	return nil
}

// putLE writes x as a little-endian integer filling out.
func putLE(out []byte, x *big.Int) {
	be := x.FillBytes(make([]byte, len(out)))
	for i := range out {
		out[i] = be[len(be)-1-i]
	}
}

// GenerateCompressedPublicKey computes the public key of prv and stores it
// in compressed form in pub.
func (prv *PrivateKey) GenerateCompressedPublicKey(pub *CompressedPublicKey) error {
	if pub.params != prv.params || pub.isA() != prv.isA() {
		return ErrParamsMismatch
	}
	full := &PublicKey{key: prv.key}
	publicKeyGen(prv, full)
	return full.Compress(pub)
}

// DeriveSecretCompressed computes the shared secret with a compressed public
// key of the other side and writes it to ss. The private scalar must come
// from GenerateCompressible, otherwise the result is meaningless.
//
// The running time depends on public data only.
func (prv *PrivateKey) DeriveSecretCompressed(ss []byte, pub *CompressedPublicKey) error {
	if pub == nil || prv == nil {
		return errors.New("sidh: invalid arguments")
	}
	if pub.isA() == prv.isA() {
		return ErrKeyVariant
	}
	if pub.params.ID != prv.params.ID {
		return ErrParamsMismatch
	}
	if len(ss) < prv.params.SharedSecretSize {
		return errors.Wrapf(ErrInputSize, "shared secret buffer: %d bytes", len(ss))
	}
	deriveSecretCompressed(ss, prv, pub)
	return nil
}

func deriveSecretCompressed(ss []byte, prv *PrivateKey, pub *CompressedPublicKey) {
	var jInv field.Fp2
	p := prv.params
	f := p.Field
	a := prv.isA()
	own := prv.domain()

	R1, R2 := basisFromCounters(p, a, &pub.a, pub.r1, pub.r2)
	t := make([]byte, own.OrderByteLen)
	kernelScalar(t, p, a, prv.Scalar, pub.x[0], pub.x[1], pub.x[2])
	if pub.flags&flagSwap != 0 {
		R1, R2 = R2, R1
	}
	mR2 := AffineNeg(f, &R2)
	D := AffineAdd(f, &pub.a, &R1, &mR2)

	curve := ProjectiveCurveParameters{A: pub.a, C: f.One()}
	xP := R1.Projective(f)
	xQ := R2.Projective(f)
	xD := D.Projective(f)
	nbits := own.E
	if !a {
		nbits = uint(own.Order.BitLen())
	}
	xK := ScalarMul3Pt(f, &curve, &xP, &xQ, &xD, nbits, t)
	for i := range t {
		t[i] = 0
	}

	cparam := walk(p, a, &curve, xK, nil)
	Jinvariant(f, &cparam, &jInv)
	f.ToBytes(ss, &jInv)
}
