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
	"math/bits"
	"sync"

	"github.com/isogeny/sike/internal/field"
	"github.com/isogeny/sike/internal/params"
)

// Constant time arithmetic on secret scalars modulo ell^e. Used to turn the
// coefficients of a compressed key and a private scalar s into the kernel
// scalar t = (x0 + s*x1) / (1 + s*x2).

const maxScalarWords = 6

// Integers modulo 2^bits, little-endian words.
type pow2Scalar [maxScalarWords]uint64

type pow2Ring struct {
	n    int    // number of words
	mask uint64 // mask of the top word
	bits uint
}

func newPow2Ring(nbits uint) pow2Ring {
	r := pow2Ring{n: int((nbits + 63) / 64), bits: nbits, mask: ^uint64(0)}
	if nbits%64 != 0 {
		r.mask = 1<<(nbits%64) - 1
	}
	return r
}

func (r *pow2Ring) fromBytes(z *pow2Scalar, in []byte) {
	*z = pow2Scalar{}
	for i, b := range in {
		if i/8 < r.n {
			z[i/8] |= uint64(b) << (8 * uint(i%8))
		}
	}
	z[r.n-1] &= r.mask
}

func (r *pow2Ring) toBytes(out []byte, x *pow2Scalar) {
	for i := range out {
		out[i] = byte(x[i/8] >> (8 * uint(i%8)))
	}
}

func (r *pow2Ring) add(z, x, y *pow2Scalar) {
	var c uint64
	for i := 0; i < r.n; i++ {
		z[i], c = bits.Add64(x[i], y[i], c)
	}
	z[r.n-1] &= r.mask
}

func (r *pow2Ring) sub(z, x, y *pow2Scalar) {
	var b uint64
	for i := 0; i < r.n; i++ {
		z[i], b = bits.Sub64(x[i], y[i], b)
	}
	z[r.n-1] &= r.mask
}

// Truncated schoolbook product.
func (r *pow2Ring) mul(z, x, y *pow2Scalar) {
	var t pow2Scalar
	for i := 0; i < r.n; i++ {
		var c uint64
		for j := 0; i+j < r.n; j++ {
			hi, lo := bits.Mul64(x[i], y[j])
			var cc uint64
			t[i+j], cc = bits.Add64(t[i+j], lo, 0)
			hi += cc
			t[i+j], cc = bits.Add64(t[i+j], c, 0)
			c = hi + cc
		}
	}
	t[r.n-1] &= r.mask
	*z = t
}

// inv sets z = 1/x for odd x. Newton iteration y = y(2 - xy) doubles the
// number of correct low bits, starting from 3 bits with y = x. The number of
// iterations depends on the ring only.
func (r *pow2Ring) inv(z, x *pow2Scalar) {
	var y, t, two pow2Scalar
	two[0] = 2
	y = *x
	for prec := uint(3); prec < r.bits; prec *= 2 {
		r.mul(&t, x, &y)
		r.sub(&t, &two, &t)
		r.mul(&y, &y, &t)
	}
	*z = y
}

var (
	pow3Once  sync.Once
	pow3Rings map[params.ID]*field.Field
)

// pow3Ring returns Montgomery arithmetic modulo 3^eB. The unit group has
// order 2*3^(eB-1).
func pow3Ring(p *params.Params) *field.Field {
	pow3Once.Do(func() {
		pow3Rings = make(map[params.ID]*field.Field, len(params.All))
		for _, id := range params.All {
			q := params.Must(id)
			order := new(big.Int).Div(q.B.Order, big.NewInt(3))
			order.Lsh(order, 1)
			ring, err := field.NewRing(q.B.Order, order)
			if err != nil {
				panic(err)
			}
			pow3Rings[id] = ring
		}
	})
	return pow3Rings[p.ID]
}

// kernelScalar writes t = (x0 + s*x1) / (1 + s*x2) mod ell^e for the torsion
// of side a to out, which must hold OrderByteLen bytes. The running time
// does not depend on s or on the coefficients. The denominator must be a
// unit, which holds for scalars produced by GenerateCompressible.
func kernelScalar(out []byte, p *params.Params, a bool, s []byte, x0, x1, x2 []byte) {
	if a {
		var vs, v0, v1, v2, num, den, one pow2Scalar
		r := newPow2Ring(p.A.E)
		r.fromBytes(&vs, s)
		r.fromBytes(&v0, x0)
		r.fromBytes(&v1, x1)
		r.fromBytes(&v2, x2)
		one[0] = 1

		r.mul(&num, &vs, &v1)
		r.add(&num, &num, &v0)
		r.mul(&den, &vs, &v2)
		r.add(&den, &den, &one)
		r.inv(&den, &den)
		r.mul(&num, &num, &den)
		r.toBytes(out, &num)
		return
	}

	var vs, v0, v1, v2, num, den field.Fp
	f := pow3Ring(p)
	buf := make([]byte, f.Bytelen)
	load := func(z *field.Fp, in []byte) {
		for i := range buf {
			buf[i] = 0
		}
		copy(buf, in)
		f.FpFromBytes(z, buf)
	}
	load(&vs, s)
	load(&v0, x0)
	load(&v1, x1)
	load(&v2, x2)
	one := f.FpOne()

	f.FpMul(&num, &vs, &v1)
	f.FpAdd(&num, &num, &v0)
	f.FpMul(&den, &vs, &v2)
	f.FpAdd(&den, &den, &one)
	f.FpInv(&den, &den)
	f.FpMul(&num, &num, &den)
	f.FpToBytes(out, &num)
}
