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

import (
	"math/big"
	"math/rand"
	"testing"
)

const testIterations = 64

// 2^eA*3^eB - 1
func sidhPrime(eA, eB uint) *big.Int {
	p := new(big.Int).Exp(big.NewInt(3), big.NewInt(int64(eB)), nil)
	p.Lsh(p, eA)
	return p.Sub(p, big.NewInt(1))
}

var testPrimes = []struct {
	name   string
	eA, eB uint
	words  int
}{
	{"p434", 216, 137, 7},
	{"p503", 250, 159, 8},
	{"p610", 305, 192, 10},
	{"p751", 372, 239, 12},
}

func mustField(t testing.TB, p *big.Int) *Field {
	f, err := New(p)
	if err != nil {
		t.Fatal(err)
	}
	return f
}

func randFp(f *Field, rng *rand.Rand) (Fp, *big.Int) {
	v := new(big.Int).Rand(rng, f.modulus)
	var x Fp
	f.FpFromBig(&x, v)
	return x, v
}

func randFp2(f *Field, rng *rand.Rand) (Fp2, *big.Int, *big.Int) {
	a, va := randFp(f, rng)
	b, vb := randFp(f, rng)
	return Fp2{A: a, B: b}, va, vb
}

func checkFp(t *testing.T, f *Field, what string, got *Fp, want *big.Int) {
	t.Helper()
	w := new(big.Int).Mod(want, f.modulus)
	if g := f.FpToBig(got); g.Cmp(w) != 0 {
		t.Fatalf("%s: got %x, want %x", what, g, w)
	}
}

func TestWordCounts(t *testing.T) {
	for _, tc := range testPrimes {
		f := mustField(t, sidhPrime(tc.eA, tc.eB))
		if f.N != tc.words {
			t.Errorf("%s: got %d words, want %d", tc.name, f.N, tc.words)
		}
	}
}

func TestNewRejectsBadModulus(t *testing.T) {
	if _, err := New(big.NewInt(13)); err == nil {
		t.Error("13 = 1 mod 4 accepted")
	}
	if _, err := NewRing(big.NewInt(16), big.NewInt(8)); err == nil {
		t.Error("even ring modulus accepted")
	}
	huge := new(big.Int).Lsh(big.NewInt(1), 64*MaxWords)
	huge.Sub(huge, big.NewInt(1))
	if _, err := New(huge); err == nil {
		t.Error("oversized modulus accepted")
	}
}

func TestFpArithmeticAgainstBig(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	for _, tc := range testPrimes {
		p := sidhPrime(tc.eA, tc.eB)
		f := mustField(t, p)
		for i := 0; i < testIterations; i++ {
			x, vx := randFp(f, rng)
			y, vy := randFp(f, rng)
			var z Fp

			f.FpAdd(&z, &x, &y)
			checkFp(t, f, tc.name+" add", &z, new(big.Int).Add(vx, vy))
			f.FpSub(&z, &x, &y)
			checkFp(t, f, tc.name+" sub", &z, new(big.Int).Sub(vx, vy))
			f.FpMul(&z, &x, &y)
			checkFp(t, f, tc.name+" mul", &z, new(big.Int).Mul(vx, vy))
			f.FpSqr(&z, &x)
			checkFp(t, f, tc.name+" sqr", &z, new(big.Int).Mul(vx, vx))
			f.FpNeg(&z, &x)
			checkFp(t, f, tc.name+" neg", &z, new(big.Int).Neg(vx))
			f.FpHalf(&z, &x)
			checkFp(t, f, tc.name+" half", &z, new(big.Int).Mul(vx, new(big.Int).ModInverse(big.NewInt(2), p)))

			// (a+b)-b = a
			f.FpAdd(&z, &x, &y)
			f.FpSub(&z, &z, &y)
			if !f.FpEqual(&z, &x) {
				t.Fatalf("%s: (a+b)-b != a", tc.name)
			}
		}
	}
}

func TestFpInversions(t *testing.T) {
	rng := rand.New(rand.NewSource(2))
	for _, tc := range testPrimes {
		p := sidhPrime(tc.eA, tc.eB)
		f := mustField(t, p)
		one := f.FpOne()
		for i := 0; i < testIterations/4; i++ {
			x, vx := randFp(f, rng)
			var inv, vinv, prod Fp
			f.FpInv(&inv, &x)
			f.FpVartimeInv(&vinv, &x)
			checkFp(t, f, tc.name+" inv", &inv, new(big.Int).ModInverse(vx, p))
			if !f.FpEqual(&inv, &vinv) {
				t.Fatalf("%s: constant time and variable time inversions differ", tc.name)
			}
			f.FpMul(&prod, &x, &inv)
			if !f.FpEqual(&prod, &one) {
				t.Fatalf("%s: a*a^-1 != 1", tc.name)
			}
		}
		var zero, z Fp
		f.FpVartimeInv(&z, &zero)
		if !f.FpIsZero(&z) {
			t.Errorf("%s: 1/0 should be 0", tc.name)
		}
	}
}

func TestFpSqrt(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	f := mustField(t, sidhPrime(216, 137))
	for i := 0; i < testIterations; i++ {
		x, vx := randFp(f, rng)
		isSq := big.Jacobi(vx, f.modulus) >= 0
		if f.FpIsSquare(&x) != isSq {
			t.Fatalf("FpIsSquare mismatch for %x", vx)
		}
		var r, r2 Fp
		ok := f.FpSqrt(&r, &x)
		if ok != isSq {
			t.Fatalf("FpSqrt reported %v, want %v", ok, isSq)
		}
		if ok {
			f.FpSqr(&r2, &r)
			if !f.FpEqual(&r2, &x) {
				t.Fatal("FpSqrt returned a wrong root")
			}
		}
	}
}

func TestFp2Arithmetic(t *testing.T) {
	rng := rand.New(rand.NewSource(4))
	for _, tc := range testPrimes {
		p := sidhPrime(tc.eA, tc.eB)
		f := mustField(t, p)
		one := f.One()
		for i := 0; i < testIterations/2; i++ {
			x, a, b := randFp2(f, rng)
			y, c, d := randFp2(f, rng)
			var z Fp2

			f.Mul(&z, &x, &y)
			re := new(big.Int).Sub(new(big.Int).Mul(a, c), new(big.Int).Mul(b, d))
			im := new(big.Int).Add(new(big.Int).Mul(a, d), new(big.Int).Mul(b, c))
			checkFp(t, f, tc.name+" mul re", &z.A, re)
			checkFp(t, f, tc.name+" mul im", &z.B, im)

			var sq, xx Fp2
			f.Sqr(&sq, &x)
			f.Mul(&xx, &x, &x)
			if !f.Equal(&sq, &xx) {
				t.Fatalf("%s: x^2 != x*x", tc.name)
			}

			var inv, vinv Fp2
			f.Inv(&inv, &x)
			f.VartimeInv(&vinv, &x)
			if !f.Equal(&inv, &vinv) {
				t.Fatalf("%s: Inv and VartimeInv differ", tc.name)
			}
			f.Mul(&z, &inv, &x)
			if !f.Equal(&z, &one) {
				t.Fatalf("%s: x*x^-1 != 1", tc.name)
			}

			var s Fp2
			f.Add(&s, &x, &y)
			f.Sub(&s, &s, &y)
			if !f.Equal(&s, &x) {
				t.Fatalf("%s: (x+y)-y != x", tc.name)
			}
		}
	}
}

func TestBatch3Inv(t *testing.T) {
	rng := rand.New(rand.NewSource(5))
	f := mustField(t, sidhPrime(250, 159))
	x1, _, _ := randFp2(f, rng)
	x2, _, _ := randFp2(f, rng)
	x3, _, _ := randFp2(f, rng)
	var y1, y2, y3, w Fp2
	f.Batch3Inv(&x1, &x2, &x3, &y1, &y2, &y3)
	for _, c := range [][2]*Fp2{{&x1, &y1}, {&x2, &y2}, {&x3, &y3}} {
		f.Inv(&w, c[0])
		if !f.Equal(&w, c[1]) {
			t.Fatal("Batch3Inv differs from Inv")
		}
	}
}

func TestFp2Sqrt(t *testing.T) {
	rng := rand.New(rand.NewSource(6))
	for _, tc := range testPrimes {
		f := mustField(t, sidhPrime(tc.eA, tc.eB))
		squares, nonSquares := 0, 0
		for i := 0; i < testIterations/2; i++ {
			x, _, _ := randFp2(f, rng)

			// Squares always have a root.
			var sq, r, r2 Fp2
			f.Sqr(&sq, &x)
			if !f.IsSquare(&sq) {
				t.Fatalf("%s: x^2 reported as non-square", tc.name)
			}
			if !f.Sqrt(&r, &sq) {
				t.Fatalf("%s: Sqrt failed on a square", tc.name)
			}
			f.Sqr(&r2, &r)
			if !f.Equal(&r2, &sq) {
				t.Fatalf("%s: Sqrt returned a wrong root", tc.name)
			}

			// Random elements: Sqrt and IsSquare agree.
			ok := f.Sqrt(&r, &x)
			if ok != f.IsSquare(&x) {
				t.Fatalf("%s: Sqrt and IsSquare disagree", tc.name)
			}
			if ok {
				squares++
			} else {
				nonSquares++
			}
		}
		if squares == 0 || nonSquares == 0 {
			t.Errorf("%s: implausible distribution of squares: %d/%d", tc.name, squares, nonSquares)
		}
	}
}

func TestSqrtOfMinusOne(t *testing.T) {
	f := mustField(t, sidhPrime(216, 137))
	one := f.One()
	var m, r, r2 Fp2
	f.Neg(&m, &one)
	if !f.Sqrt(&r, &m) {
		t.Fatal("-1 is a square in F_p^2")
	}
	f.Sqr(&r2, &r)
	if !f.Equal(&r2, &m) {
		t.Fatal("wrong square root of -1")
	}
}

// Elements of F_p that are non-squares there have purely imaginary roots,
// which Sqrt selects without branching on alpha.
func TestFp2SqrtOfBaseField(t *testing.T) {
	rng := rand.New(rand.NewSource(9))
	for _, tc := range testPrimes {
		f := mustField(t, sidhPrime(tc.eA, tc.eB))
		for i := 0; i < testIterations/4; i++ {
			a, _ := randFp(f, rng)
			x := Fp2{A: a}
			var r, r2 Fp2
			if !f.Sqrt(&r, &x) {
				t.Fatalf("%s: elements of F_p are squares in F_p^2", tc.name)
			}
			f.Sqr(&r2, &r)
			if !f.Equal(&r2, &x) {
				t.Fatalf("%s: wrong root of an element of F_p", tc.name)
			}
			if f.FpIsSquare(&a) == f.FpIsZero(&r.A) && !f.FpIsZero(&a) {
				t.Fatalf("%s: root has the wrong shape", tc.name)
			}
		}
	}
}

func TestCtEqual(t *testing.T) {
	rng := rand.New(rand.NewSource(10))
	f := mustField(t, sidhPrime(216, 137))
	x, _, _ := randFp2(f, rng)
	one := f.FpOne()
	y := x
	if f.ctEqual(&x, &y) != 1 {
		t.Error("equal elements reported as different")
	}
	f.FpAdd(&y.B, &y.B, &one)
	if f.ctEqual(&x, &y) != 0 {
		t.Error("different elements reported as equal")
	}
	y = x
	f.FpAdd(&y.A, &y.A, &one)
	if f.ctEqual(&x, &y) != 0 {
		t.Error("different elements reported as equal")
	}
	var zero Fp2
	if f.ctEqual(&zero, &zero) != 1 {
		t.Error("zero differs from itself")
	}
}

func TestCondSwapAndSelect(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	f := mustField(t, sidhPrime(216, 137))
	x, _, _ := randFp2(f, rng)
	y, _, _ := randFp2(f, rng)
	a, b := x, y
	f.CondSwap(&a, &b, 0)
	if a != x || b != y {
		t.Error("CondSwap(0) modified its inputs")
	}
	f.CondSwap(&a, &b, 1)
	if a != y || b != x {
		t.Error("CondSwap(1) did not swap")
	}
	var z Fp2
	f.Select(&z, &x, &y, 0)
	if z != x {
		t.Error("Select(0) != x")
	}
	f.Select(&z, &x, &y, 1)
	if z != y {
		t.Error("Select(1) != y")
	}
}

func TestEncodingRoundTrip(t *testing.T) {
	rng := rand.New(rand.NewSource(8))
	for _, tc := range testPrimes {
		f := mustField(t, sidhPrime(tc.eA, tc.eB))
		buf := make([]byte, 2*f.Bytelen)
		for i := 0; i < 8; i++ {
			x, a, b := randFp2(f, rng)
			f.ToBytes(buf, &x)
			lo := new(big.Int).SetBytes(reverse(buf[:f.Bytelen]))
			hi := new(big.Int).SetBytes(reverse(buf[f.Bytelen:]))
			if lo.Cmp(a) != 0 || hi.Cmp(b) != 0 {
				t.Fatalf("%s: encoding is not little endian real part first", tc.name)
			}
			var y Fp2
			f.FromBytes(&y, buf)
			if !f.Equal(&x, &y) {
				t.Fatalf("%s: decode(encode(x)) != x", tc.name)
			}
		}
	}
}

func TestRingInverse(t *testing.T) {
	rng := rand.New(rand.NewSource(9))
	m := new(big.Int).Exp(big.NewInt(3), big.NewInt(137), nil)
	phi := new(big.Int).Mul(big.NewInt(2), new(big.Int).Exp(big.NewInt(3), big.NewInt(136), nil))
	r, err := NewRing(m, phi)
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 16; i++ {
		v := new(big.Int).Rand(rng, m)
		if new(big.Int).Mod(v, big.NewInt(3)).Sign() == 0 {
			v.Add(v, big.NewInt(1))
		}
		var x, inv Fp
		r.FpFromBig(&x, v)
		r.FpInv(&inv, &x)
		want := new(big.Int).ModInverse(v, m)
		if got := r.FpToBig(&inv); got.Cmp(want) != 0 {
			t.Fatalf("inverse mod 3^137: got %x, want %x", got, want)
		}
	}
}

func reverse(b []byte) []byte {
	out := make([]byte, len(b))
	for i := range b {
		out[len(b)-1-i] = b[i]
	}
	return out
}

func BenchmarkFp2Mul(b *testing.B) {
	f := mustField(b, sidhPrime(216, 137))
	rng := rand.New(rand.NewSource(10))
	x, _, _ := randFp2(f, rng)
	y, _, _ := randFp2(f, rng)
	for n := 0; n < b.N; n++ {
		f.Mul(&x, &x, &y)
	}
}

func BenchmarkFp2Inv(b *testing.B) {
	f := mustField(b, sidhPrime(216, 137))
	rng := rand.New(rand.NewSource(11))
	x, _, _ := randFp2(f, rng)
	for n := 0; n < b.N; n++ {
		f.Inv(&x, &x)
	}
}

func BenchmarkFp2VartimeInv(b *testing.B) {
	f := mustField(b, sidhPrime(216, 137))
	rng := rand.New(rand.NewSource(12))
	x, _, _ := randFp2(f, rng)
	for n := 0; n < b.N; n++ {
		f.VartimeInv(&x, &x)
	}
}
