// Package stark implements ECDSA over the STARK friendly curve and the
// derivation of a STARK key pair from an Ethereum account.
//
// The curve is y^2 = x^3 + alpha*x + beta over the prime field of order
// fieldPrime.
package stark

import (
	"math/big"
)

var (
	fieldPrime = hexInt("800000000000011000000000000000000000000000000000000000000000001")
	alpha      = big.NewInt(1)
	beta       = hexInt("6f21413efbe40de150e596d72f7a8c5609ad26c15c915c1f4cdfcb99cee9e89")

	// EcOrder is the order of the generator point.
	EcOrder = hexInt("800000000000010ffffffffffffffffb781126dcae7b2321e66a241adc64d2f")

	generator = &point{
		x: hexInt("1ef15c18599971b7beced415a40f0c7deacfd9b0d1819e03d723d8bc943cfca"),
		y: hexInt("5668060aa49730b7be4801df46ec62de53ecd11abe43a32873000c36e8dc1f"),
	}
)

func hexInt(s string) *big.Int {
	n, ok := new(big.Int).SetString(s, 16)
	if !ok {
		panic("stark: bad constant " + s)
	}
	return n
}

// point is an affine curve point; nil is the point at infinity.
type point struct {
	x, y *big.Int
}

func (p *point) onCurve() bool {
	if p == nil {
		return true
	}
	return curveY2(p.x).Cmp(new(big.Int).Exp(p.y, big.NewInt(2), fieldPrime)) == 0
}

// curveY2 returns x^3 + alpha*x + beta mod p.
func curveY2(x *big.Int) *big.Int {
	y2 := new(big.Int).Exp(x, big.NewInt(3), fieldPrime)
	y2.Add(y2, new(big.Int).Mul(alpha, x))
	y2.Add(y2, beta)
	return y2.Mod(y2, fieldPrime)
}

func (p *point) neg() *point {
	if p == nil {
		return nil
	}
	return &point{x: p.x, y: new(big.Int).Mod(new(big.Int).Neg(p.y), fieldPrime)}
}

func divMod(n, d *big.Int) *big.Int {
	inv := new(big.Int).ModInverse(d, fieldPrime)
	r := new(big.Int).Mul(n, inv)
	return r.Mod(r, fieldPrime)
}

func add(a, b *point) *point {
	if a == nil {
		return b
	}
	if b == nil {
		return a
	}
	if a.x.Cmp(b.x) == 0 {
		if a.y.Cmp(b.y) == 0 {
			return double(a)
		}
		return nil
	}
	num := new(big.Int).Sub(b.y, a.y)
	den := new(big.Int).Sub(b.x, a.x)
	den.Mod(den, fieldPrime)
	m := divMod(num.Mod(num, fieldPrime), den)

	x := new(big.Int).Mul(m, m)
	x.Sub(x, a.x)
	x.Sub(x, b.x)
	x.Mod(x, fieldPrime)

	y := new(big.Int).Sub(a.x, x)
	y.Mul(y, m)
	y.Sub(y, a.y)
	y.Mod(y, fieldPrime)
	return &point{x: x, y: y}
}

func double(a *point) *point {
	if a == nil || a.y.Sign() == 0 {
		return nil
	}
	num := new(big.Int).Mul(a.x, a.x)
	num.Mul(num, big.NewInt(3))
	num.Add(num, alpha)
	num.Mod(num, fieldPrime)
	den := new(big.Int).Lsh(a.y, 1)
	den.Mod(den, fieldPrime)
	m := divMod(num, den)

	x := new(big.Int).Mul(m, m)
	x.Sub(x, new(big.Int).Lsh(a.x, 1))
	x.Mod(x, fieldPrime)

	y := new(big.Int).Sub(a.x, x)
	y.Mul(y, m)
	y.Sub(y, a.y)
	y.Mod(y, fieldPrime)
	return &point{x: x, y: y}
}

func mul(k *big.Int, a *point) *point {
	var r *point
	for i := k.BitLen() - 1; i >= 0; i-- {
		r = double(r)
		if k.Bit(i) == 1 {
			r = add(r, a)
		}
	}
	return r
}

// pointsFromX returns both curve points with the given x coordinate.
func pointsFromX(x *big.Int) ([]*point, bool) {
	if x.Sign() < 0 || x.Cmp(fieldPrime) >= 0 {
		return nil, false
	}
	y := new(big.Int).ModSqrt(curveY2(x), fieldPrime)
	if y == nil {
		return nil, false
	}
	p := &point{x: new(big.Int).Set(x), y: y}
	return []*point{p, p.neg()}, true
}
