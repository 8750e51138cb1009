package stark

import (
	"crypto/hmac"
	"crypto/sha256"
	"errors"
	"fmt"
	"math/big"
	"regexp"
	"strings"
)

var (
	ErrInvalidHash       = errors.New("invalid message hash")
	ErrInvalidSignature  = errors.New("invalid stark signature")
	ErrInvalidPrivateKey = errors.New("invalid stark private key")
	ErrInvalidStarkKey   = errors.New("invalid stark key")

	hexPattern = regexp.MustCompile(`^[0-9a-fA-F]+$`)

	// r and w must fit in 251 bits for the on chain verifier.
	maxEcdsaValue = new(big.Int).Lsh(big.NewInt(1), 251)

	one           = big.NewInt(1)
	orderMinusOne = new(big.Int).Sub(EcOrder, one)
)

type Signature struct {
	R *big.Int
	S *big.Int
}

// Serialize returns 0x followed by r and s, each as 64 hex digits.
func (s *Signature) Serialize() string {
	return fmt.Sprintf("0x%064x%064x", s.R, s.S)
}

func ParseSignature(sig string) (*Signature, error) {
	h := strip0x(sig)
	if len(h) != 128 || !hexPattern.MatchString(h) {
		return nil, ErrInvalidSignature
	}
	return &Signature{R: hexInt(h[:64]), S: hexInt(h[64:])}, nil
}

func strip0x(s string) string {
	return strings.TrimPrefix(strings.TrimPrefix(s, "0x"), "0X")
}

// HashToInt turns a hex message hash into the integer that gets signed.
// Leading zeros are insignificant. A hash of 63 significant digits is padded
// with a trailing zero nibble, which the truncation to the bit length of the
// curve order then drops again.
func HashToInt(hash string) (*big.Int, error) {
	h := strip0x(hash)
	if len(h) == 0 || !hexPattern.MatchString(h) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidHash, hash)
	}
	h = strings.TrimLeft(h, "0")
	if len(h) > 63 {
		return nil, fmt.Errorf("%w: %q is wider than 252 bits", ErrInvalidHash, hash)
	}
	if h == "" {
		return new(big.Int), nil
	}
	if len(h) == 63 {
		h += "0"
	}
	z := hexInt(h)
	byteLen := (z.BitLen() + 7) / 8
	if delta := byteLen*8 - EcOrder.BitLen(); delta > 0 {
		z.Rsh(z, uint(delta))
	}
	if z.Cmp(EcOrder) >= 0 {
		z.Sub(z, EcOrder)
	}
	return z, nil
}

// Sign signs z with priv. The nonce is derived from priv and z following
// RFC 6979, so equal inputs give equal signatures.
func Sign(priv, z *big.Int) (*Signature, error) {
	if priv.Sign() <= 0 || priv.Cmp(EcOrder) >= 0 {
		return nil, ErrInvalidPrivateKey
	}
	if z.Sign() < 0 || z.Cmp(EcOrder) >= 0 {
		return nil, ErrInvalidHash
	}
	nonces := newNonceGenerator(priv, z)
	for {
		k := nonces.next()
		r := new(big.Int).Mod(mul(k, generator).x, EcOrder)
		if r.Sign() == 0 || r.Cmp(maxEcdsaValue) >= 0 {
			continue
		}
		sum := new(big.Int).Mul(r, priv)
		sum.Add(sum, z)
		sum.Mod(sum, EcOrder)
		if sum.Sign() == 0 {
			continue
		}
		s := new(big.Int).ModInverse(k, EcOrder)
		s.Mul(s, sum)
		s.Mod(s, EcOrder)
		w := new(big.Int).ModInverse(s, EcOrder)
		if w.Cmp(maxEcdsaValue) >= 0 {
			continue
		}
		return &Signature{R: r, S: s}, nil
	}
}

func verify(pub *point, z *big.Int, sig *Signature) bool {
	if sig.R.Sign() <= 0 || sig.R.Cmp(EcOrder) >= 0 || sig.S.Sign() <= 0 || sig.S.Cmp(EcOrder) >= 0 {
		return false
	}
	w := new(big.Int).ModInverse(sig.S, EcOrder)
	u1 := new(big.Int).Mul(z, w)
	u1.Mod(u1, EcOrder)
	u2 := new(big.Int).Mul(sig.R, w)
	u2.Mod(u2, EcOrder)
	x := add(mul(u1, generator), mul(u2, pub))
	if x == nil {
		return false
	}
	return new(big.Int).Mod(x.x, EcOrder).Cmp(sig.R) == 0
}

// VerifyWithStarkKey checks a serialized signature over hash against a stark
// key, which only carries the x coordinate of the public key.
func VerifyWithStarkKey(starkKey, hash, signature string) (bool, error) {
	h := strip0x(starkKey)
	if len(h) == 0 || !hexPattern.MatchString(h) {
		return false, fmt.Errorf("%w: %q", ErrInvalidStarkKey, starkKey)
	}
	candidates, ok := pointsFromX(hexInt(h))
	if !ok {
		return false, fmt.Errorf("%w: %q is not on the curve", ErrInvalidStarkKey, starkKey)
	}
	z, err := HashToInt(hash)
	if err != nil {
		return false, err
	}
	sig, err := ParseSignature(signature)
	if err != nil {
		return false, err
	}
	for _, pub := range candidates {
		if verify(pub, z, sig) {
			return true, nil
		}
	}
	return false, nil
}

// nonceGenerator is the HMAC-SHA256 DRBG of RFC 6979 section 3.2.
type nonceGenerator struct {
	k, v []byte
	used bool
}

func newNonceGenerator(priv, z *big.Int) *nonceGenerator {
	x := int2octets(priv)
	h := int2octets(new(big.Int).Mod(z, EcOrder))
	g := &nonceGenerator{
		k: make([]byte, sha256.Size),
		v: make([]byte, sha256.Size),
	}
	for i := range g.v {
		g.v[i] = 0x01
	}
	g.k = g.mac(g.v, []byte{0x00}, x, h)
	g.v = g.mac(g.v)
	g.k = g.mac(g.v, []byte{0x01}, x, h)
	g.v = g.mac(g.v)
	return g
}

func (g *nonceGenerator) mac(data ...[]byte) []byte {
	m := hmac.New(sha256.New, g.k)
	for _, d := range data {
		m.Write(d)
	}
	return m.Sum(nil)
}

func (g *nonceGenerator) reseed() {
	g.k = g.mac(g.v, []byte{0x00})
	g.v = g.mac(g.v)
}

func (g *nonceGenerator) next() *big.Int {
	if g.used {
		g.reseed()
	}
	g.used = true
	for {
		g.v = g.mac(g.v)
		k := bits2int(g.v)
		if k.Cmp(one) > 0 && k.Cmp(orderMinusOne) < 0 {
			return k
		}
		g.reseed()
	}
}

// bits2int truncates by the byte length of the value, not of b, so a
// digest with a leading zero byte is not shifted.
func bits2int(b []byte) *big.Int {
	n := new(big.Int).SetBytes(b)
	if shift := (n.BitLen()+7)/8*8 - EcOrder.BitLen(); shift > 0 {
		n.Rsh(n, uint(shift))
	}
	return n
}

func int2octets(n *big.Int) []byte {
	out := make([]byte, 32)
	return n.FillBytes(out)
}
