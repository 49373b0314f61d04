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

// Package params holds the domain parameters of the supported SIDH primes.
// Parameters are built once, on first use, and never modified afterwards.
package params

import (
	"fmt"
	"math/big"
	"sync"

	"github.com/pkg/errors"

	"github.com/isogeny/sike/internal/field"
	"github.com/isogeny/sike/internal/isogeny"
)

// ID identifies a parameter set.
type ID uint8

const (
	P434 ID = iota + 1
	P503
	P610
	P751
)

// All lists the supported parameter sets, smallest first.
var All = []ID{P434, P503, P610, P751}

var ErrUnknownID = errors.New("sike: unknown parameter set")

func (id ID) String() string {
	switch id {
	case P434:
		return "p434"
	case P503:
		return "p503"
	case P610:
		return "p610"
	case P751:
		return "p751"
	}
	return fmt.Sprintf("ID(%d)", uint8(id))
}

// Parse maps a name such as "p434" (or "P434") to an ID.
func Parse(name string) (ID, error) {
	for _, id := range All {
		if name == id.String() || name == "P"+id.String()[1:] {
			return id, nil
		}
	}
	return 0, errors.Wrapf(ErrUnknownID, "%q", name)
}

// Domain parameters of one side of the protocol. Side A works with the
// 2^eA torsion, side B with the 3^eB torsion.
type DomainParams struct {
	// P, Q and R = P-Q, affine x-coordinates in Montgomery form
	AffineP, AffineQ, AffineR field.Fp2
	// Optimal isogeny tree traversal
	IsogenyStrategy []uint32
	// ell and e with ell^e the torsion order
	Ell, E uint
	Order  *big.Int
	// Max bit length of a secret scalar
	SecretBitLen uint
	// Byte length of a secret scalar
	SecretByteLen int
	// Byte length of an integer modulo Order
	OrderByteLen int
	// Size of a compressed public key owned by this side. Its coordinates
	// are taken in the other side's torsion.
	CompressedPublicKeySize int
	// Pohlig-Hellman window width and traversal of the digit tree
	DlogWindow   uint
	DlogStrategy []uint32
}

// Params describes one SIDH parameter set.
type Params struct {
	ID   ID
	Name string
	// Prime field, p = 2^eA*3^eB - 1
	Field *field.Field
	// Length of an encoded F_p element
	Bytelen int
	// Starting curve
	InitCurve isogeny.ProjectiveCurveParameters
	// Non-square u = k + i used by Elligator 2
	ElligatorU field.Fp2

	A, B DomainParams

	// Size of an encoded j-invariant
	SharedSecretSize int
	// Size of an uncompressed public key, three F_p^2 elements
	PublicKeySize int
	// Length of the KEM message m and of the rejection secret s
	MsgLen int
	// Length of the KEM shared key
	KemSize int
	// SIKE ciphertext and private key sizes
	CiphertextSize int
	PrivateKeySize int
}

// Side returns the domain parameters of side A (a == true) or B.
func (p *Params) Side(a bool) *DomainParams {
	if a {
		return &p.A
	}
	return &p.B
}

type torsion struct {
	P, Q, R  field.Fp2
	strategy []uint32
}

type setup struct {
	id      ID
	name    string
	eA, eB  uint
	initA   uint64
	msgLen  int
	kemSize int
	A, B    torsion
}

// Isogeny cost ratios used when no published strategy exists. The values
// are the relative costs of xDBLe/xTPLe steps against isogeny evaluations.
const (
	mul4Cost  = 12
	eval4Cost = 8
	mul3Cost  = 12
	eval3Cost = 4
)

func build(s *setup) (*Params, error) {
	pA := new(big.Int).Lsh(big.NewInt(1), s.eA)
	pB := new(big.Int).Exp(big.NewInt(3), big.NewInt(int64(s.eB)), nil)
	prime := new(big.Int).Mul(pA, pB)
	prime.Sub(prime, big.NewInt(1))

	f, err := field.New(prime)
	if err != nil {
		return nil, errors.Wrapf(err, "%s", s.name)
	}

	p := &Params{
		ID:      s.id,
		Name:    s.name,
		Field:   f,
		Bytelen: f.Bytelen,
		MsgLen:  s.msgLen,
		KemSize: s.kemSize,
	}
	f.SetUint64(&p.InitCurve.A, s.initA, 0)
	p.InitCurve.C = f.One()

	p.A = DomainParams{
		AffineP:         s.A.P,
		AffineQ:         s.A.Q,
		AffineR:         s.A.R,
		IsogenyStrategy: s.A.strategy,
		Ell:             2,
		E:               s.eA,
		Order:           pA,
		SecretBitLen:    s.eA,
		DlogWindow:      4,
	}
	p.B = DomainParams{
		AffineP:         s.B.P,
		AffineQ:         s.B.Q,
		AffineR:         s.B.R,
		IsogenyStrategy: s.B.strategy,
		Ell:             3,
		E:               s.eB,
		Order:           pB,
		SecretBitLen:    uint(pB.BitLen() - 1),
		DlogWindow:      3,
	}
	if p.A.IsogenyStrategy == nil {
		p.A.IsogenyStrategy = isogeny.OptimalStrategy(int(s.eA/2), mul4Cost, eval4Cost)
	}
	if p.B.IsogenyStrategy == nil {
		p.B.IsogenyStrategy = isogeny.OptimalStrategy(int(s.eB), mul3Cost, eval3Cost)
	}
	if !isogeny.ValidStrategy(p.A.IsogenyStrategy, int(s.eA/2)) ||
		!isogeny.ValidStrategy(p.B.IsogenyStrategy, int(s.eB)) {
		return nil, errors.Errorf("%s: malformed isogeny strategy", s.name)
	}

	for _, d := range []*DomainParams{&p.A, &p.B} {
		d.SecretByteLen = int((d.SecretBitLen + 7) / 8)
		top := new(big.Int).Sub(d.Order, big.NewInt(1))
		d.OrderByteLen = (top.BitLen() + 7) / 8

		// Digits of the discrete logarithm are computed in base ell^w, with
		// one extra (shorter) digit when w does not divide e.
		digits := int((d.E + d.DlogWindow - 1) / d.DlogWindow)
		ratio := uint(1)
		if d.Ell == 3 {
			ratio = 2
		}
		d.DlogStrategy = isogeny.OptimalStrategy(digits, d.DlogWindow*ratio, d.DlogWindow)
	}
	// x0, x1, x2, A, flags and two Elligator counters
	p.A.CompressedPublicKeySize = 3*p.B.OrderByteLen + 2*p.Bytelen + 3
	p.B.CompressedPublicKeySize = 3*p.A.OrderByteLen + 2*p.Bytelen + 3

	p.SharedSecretSize = 2 * p.Bytelen
	p.PublicKeySize = 3 * p.SharedSecretSize
	p.CiphertextSize = p.PublicKeySize + p.MsgLen
	p.PrivateKeySize = p.MsgLen + p.B.SecretByteLen + p.PublicKeySize

	// Smallest k such that k + i is not a square.
	for k := uint64(0); ; k++ {
		f.SetUint64(&p.ElligatorU, k, 1)
		if !f.IsSquare(&p.ElligatorU) {
			break
		}
	}
	return p, nil
}

var (
	once   sync.Once
	sets   map[ID]*Params
	setErr error
)

func load() {
	sets = make(map[ID]*Params, len(All))
	for id, ctor := range map[ID]func() (*Params, error){
		P434: newP434,
		P503: newP503,
		P610: newP610,
		P751: newP751,
	} {
		p, err := ctor()
		if err != nil {
			setErr = err
			return
		}
		sets[id] = p
	}
}

// Get returns the parameters identified by id.
func Get(id ID) (*Params, error) {
	once.Do(load)
	if setErr != nil {
		return nil, setErr
	}
	p, ok := sets[id]
	if !ok {
		return nil, errors.Wrapf(ErrUnknownID, "%v", id)
	}
	return p, nil
}

// Must is like Get but panics on error.
func Must(id ID) *Params {
	p, err := Get(id)
	if err != nil {
		panic(err)
	}
	return p
}
