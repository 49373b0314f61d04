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
	"sync"

	"github.com/isogeny/sike/internal/field"
	. "github.com/isogeny/sike/internal/isogeny"
	"github.com/isogeny/sike/internal/params"
)

// Pohlig-Hellman in the group of ell^e-th roots of unity of F_{p^2}.
//
// The exponent is split into K digits in base L = ell^w. When w does not
// divide e the least significant digit is shorter, it has r = e - w(K-1)
// base-ell digits, and
//
//	x = d_0 + sum_{j>=1} d_j * ell^r * L^(j-1)
//
// Digits are found by walking the same kind of tree as the isogeny walk:
// moving down one level raises to the power L, and once a digit is known
// its contribution is divided out of every pending node.
type dlogTable struct {
	f     *field.Field
	ell   uint
	w     uint
	k     int // number of digits
	r     uint
	order *big.Int

	// Generator of the group.
	g field.Fp2
	// G[t] = g^(L^t), H[t] = g^(ell^r * L^t)
	G, H []field.Fp2
	// Digit of gamma^d, gamma = H[K-2] of order L, keyed by encoding.
	leaf  map[string]int
	strat []uint32
}

type lazyTable struct {
	once sync.Once
	t    *dlogTable
}

// Tables for sides A and B of each parameter set.
var dlogTables [params.P751 + 1][2]lazyTable

// tableFor returns the discrete logarithm table for the ell^e torsion of
// side a, building it on first use.
func tableFor(p *params.Params, a bool) *dlogTable {
	i := 1
	if a {
		i = 0
	}
	lt := &dlogTables[p.ID][i]
	lt.once.Do(func() { lt.t = newDlogTable(p, a) })
	return lt.t
}

// powEll sets x = x^(ell^n).
func (t *dlogTable) powEll(x *field.Fp2, n uint) {
	var s field.Fp2
	for i := uint(0); i < n; i++ {
		if t.ell == 2 {
			t.f.Sqr(x, x)
		} else {
			t.f.Sqr(&s, x)
			t.f.Mul(x, &s, x)
		}
	}
}

func (t *dlogTable) key(x *field.Fp2) string {
	var buf [2 * 12 * 8]byte
	out := buf[:2*t.f.Bytelen]
	t.f.ToBytes(out, x)
	return string(out)
}

// pairingBase returns the generator of mu_{ell^e}: the Weil pairing of the
// side's basis on the starting curve, raised to the degree of the other
// side's isogenies. Pairings of images under such an isogeny are then
// powers of the same generator.
func pairingBase(p *params.Params, a bool) field.Fp2 {
	f := p.Field
	d := p.Side(a)
	A := &p.InitCurve.A
	P, ok := RecoverY(f, A, &d.AffineP)
	if !ok {
		panic("sidh: basis point is not on the starting curve")
	}
	Q := RecoverYFromDifference(f, A, &P, &d.AffineQ, &d.AffineR)
	g := weil(f, A, &P, &Q, d.Order)
	f.ExpBig(&g, &g, p.Side(!a).Order)
	f.Normalize(&g)
	return g
}

func newDlogTable(p *params.Params, a bool) *dlogTable {
	d := p.Side(a)
	t := &dlogTable{
		f:     p.Field,
		ell:   d.Ell,
		w:     d.DlogWindow,
		k:     int((d.E + d.DlogWindow - 1) / d.DlogWindow),
		order: d.Order,
		strat: d.DlogStrategy,
		g:     pairingBase(p, a),
	}
	t.r = d.E - t.w*uint(t.k-1)

	t.G = make([]field.Fp2, t.k)
	t.G[0] = t.g
	for i := 1; i < t.k; i++ {
		t.G[i] = t.G[i-1]
		t.powEll(&t.G[i], t.w)
	}
	t.H = make([]field.Fp2, t.k-1)
	t.H[0] = t.g
	t.powEll(&t.H[0], t.r)
	for i := 1; i < t.k-1; i++ {
		t.H[i] = t.H[i-1]
		t.powEll(&t.H[i], t.w)
	}

	L := 1
	for i := uint(0); i < t.w; i++ {
		L *= int(t.ell)
	}
	gamma := t.H[t.k-2]
	t.leaf = make(map[string]int, L)
	acc := t.f.One()
	for i := 0; i < L; i++ {
		t.leaf[t.key(&acc)] = i
		t.f.Mul(&acc, &acc, &gamma)
	}
	return t
}

// dlog returns x in [0, ell^e) such that h = g^x, or false if h is not in
// the group generated by g.
func (t *dlogTable) dlog(h *field.Fp2) (*big.Int, bool) {
	f := t.f
	digits := make([]int, t.k)
	ok := true

	shift := 1
	for i := t.r; i < t.w; i++ {
		shift *= int(t.ell)
	}

	Traverse(t.strat, *h,
		func(x field.Fp2, k uint32) field.Fp2 {
			t.powEll(&x, t.w*uint(k))
			return x
		},
		func(leaf field.Fp2, j int, stack []field.Fp2, depth []int) {
			d, found := t.leaf[t.key(&leaf)]
			if !found {
				ok = false
			}
			if j == 0 {
				if d%shift != 0 {
					ok = false
				}
				d /= shift
			}
			digits[j] = d
			if d == 0 {
				return
			}
			var c field.Fp2
			e := []uint64{uint64(d)}
			for i := range stack {
				if j == 0 {
					f.Exp(&c, &t.G[depth[i]], e)
				} else {
					f.Exp(&c, &t.H[j-1+depth[i]], e)
				}
				f.Conj(&c, &c)
				f.Mul(&stack[i], &stack[i], &c)
			}
		})

	x := new(big.Int).SetInt64(int64(digits[0]))
	base := new(big.Int).Exp(big.NewInt(int64(t.ell)), big.NewInt(int64(t.r)), nil)
	L := new(big.Int).Exp(big.NewInt(int64(t.ell)), big.NewInt(int64(t.w)), nil)
	for j := 1; j < t.k; j++ {
		x.Add(x, new(big.Int).Mul(big.NewInt(int64(digits[j])), base))
		base.Mul(base, L)
	}
	return x, ok
}
