package stark

import (
	"crypto/sha256"
	"fmt"
	"math/big"
	"strconv"
	"strings"

	"github.com/btcsuite/btcd/btcutil/hdkeychain"
	"github.com/btcsuite/btcd/chaincfg"
	"github.com/x-xyz/goimx/domain"
)

const (
	purpose = 2645

	LayerStarkEx          = "starkex"
	ApplicationImmutableX = "immutablex"
	DefaultIndex          = 1
)

var (
	bits31 = big.NewInt(1<<31 - 1)

	// largest multiple of EcOrder below 2^256
	grindLimit = func() *big.Int {
		max := new(big.Int).Lsh(big.NewInt(1), 256)
		return max.Sub(max, new(big.Int).Mod(max, EcOrder))
	}()
)

// KeyPair is a STARK private key with its public point.
type KeyPair struct {
	private *big.Int
	public  *point
}

func NewKeyPair(private *big.Int) (*KeyPair, error) {
	if private.Sign() <= 0 || private.Cmp(EcOrder) >= 0 {
		return nil, ErrInvalidPrivateKey
	}
	return &KeyPair{
		private: new(big.Int).Set(private),
		public:  mul(private, generator),
	}, nil
}

func KeyPairFromHex(private string) (*KeyPair, error) {
	h := strip0x(private)
	if len(h) == 0 || !hexPattern.MatchString(h) {
		return nil, ErrInvalidPrivateKey
	}
	return NewKeyPair(hexInt(h))
}

// StarkKey is the public key: 0x followed by x as 64 hex digits.
func (k *KeyPair) StarkKey() string {
	return fmt.Sprintf("0x%064x", k.public.x)
}

func (k *KeyPair) PrivateKeyHex() string {
	return fmt.Sprintf("0x%064x", k.private)
}

func (k *KeyPair) Sign(hash string) (*Signature, error) {
	z, err := HashToInt(hash)
	if err != nil {
		return nil, err
	}
	return Sign(k.private, z)
}

func (k *KeyPair) SignHash(hash string) (string, error) {
	sig, err := k.Sign(hash)
	if err != nil {
		return "", &domain.SigningError{Op: "SignHash", Err: err}
	}
	return sig.Serialize(), nil
}

// Path is a BIP32 path; hardened elements include hdkeychain.HardenedKeyStart.
type Path []uint32

func (p Path) String() string {
	var b strings.Builder
	b.WriteString("m")
	for _, i := range p {
		b.WriteString("/")
		if i >= hdkeychain.HardenedKeyStart {
			b.WriteString(strconv.FormatUint(uint64(i-hdkeychain.HardenedKeyStart), 10))
			b.WriteString("'")
		} else {
			b.WriteString(strconv.FormatUint(uint64(i), 10))
		}
	}
	return b.String()
}

// AccountPath returns m/2645'/layer'/application'/eth1'/eth2'/index where
// layer and application are the low 31 bits of the sha256 of their names and
// eth1, eth2 are the low and next 31 bits of the address.
func AccountPath(layer, application, ethAddress string, index uint32) (Path, error) {
	h := strip0x(ethAddress)
	if len(h) == 0 || !hexPattern.MatchString(h) {
		return nil, fmt.Errorf("invalid eth address %q", ethAddress)
	}
	address := hexInt(h)
	eth1 := new(big.Int).And(address, bits31)
	eth2 := new(big.Int).And(new(big.Int).Rsh(address, 31), bits31)
	return Path{
		hdkeychain.HardenedKeyStart + purpose,
		hdkeychain.HardenedKeyStart + low31(sha256.Sum256([]byte(layer))),
		hdkeychain.HardenedKeyStart + low31(sha256.Sum256([]byte(application))),
		hdkeychain.HardenedKeyStart + uint32(eth1.Uint64()),
		hdkeychain.HardenedKeyStart + uint32(eth2.Uint64()),
		index,
	}, nil
}

func low31(digest [sha256.Size]byte) uint32 {
	n := new(big.Int).SetBytes(digest[:])
	return uint32(n.And(n, bits31).Uint64())
}

// KeyFromPath derives the BIP32 child at path from seed and grinds it into a
// STARK private key.
func KeyFromPath(seed []byte, path Path) (*big.Int, error) {
	key, err := hdkeychain.NewMaster(seed, &chaincfg.MainNetParams)
	if err != nil {
		return nil, err
	}
	for _, i := range path {
		if key, err = key.Derive(i); err != nil {
			return nil, err
		}
	}
	priv, err := key.ECPrivKey()
	if err != nil {
		return nil, err
	}
	return GrindKey(priv.Serialize()), nil
}

// GrindKey hashes seed with an increasing index until the digest is below the
// largest multiple of the curve order that fits 256 bits, then reduces it.
func GrindKey(seed []byte) *big.Int {
	for i := int64(0); ; i++ {
		key := hashKeyWithIndex(seed, i)
		if key.Cmp(grindLimit) < 0 {
			return key.Mod(key, EcOrder)
		}
	}
}

func hashKeyWithIndex(seed []byte, index int64) *big.Int {
	ib := big.NewInt(index).Bytes()
	if len(ib) == 0 {
		ib = []byte{0}
	}
	digest := sha256.Sum256(append(append([]byte{}, seed...), ib...))
	return new(big.Int).SetBytes(digest[:])
}
