package stark

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"math/big"
	"regexp"
	"strings"
	"testing"

	"github.com/btcsuite/btcd/btcutil/hdkeychain"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"github.com/x-xyz/goimx/base/ctx"
	"github.com/x-xyz/goimx/domain"
	"github.com/x-xyz/goimx/domain/wallet/mocks"
	"github.com/x-xyz/goimx/service/ethsigner"
)

const (
	testHash = "0x5a1b3c1f0ac0b2a2b0fbf4b3c95c4d9a1a8f3f7a5e6b1c2d3e4f5a6b7c8d9e0"
	l1Key    = "0x4c0883a69102937d6231471b5dbb6204fe5129617082792ae468d01a3f362318"
)

var signaturePattern = regexp.MustCompile(`^0x[0-9a-f]{128}$`)

func TestGeneratorOnCurve(t *testing.T) {
	req := require.New(t)
	req.True(generator.onCurve())
	req.Nil(mul(EcOrder, generator))
	req.True(mul(big.NewInt(12345), generator).onCurve())
}

func TestAddDouble(t *testing.T) {
	req := require.New(t)
	two := double(generator)
	req.True(samePoint(mul(big.NewInt(2), generator), two))
	three := add(two, generator)
	req.True(samePoint(mul(big.NewInt(3), generator), three))
	req.True(samePoint(add(three, two), add(double(two), generator)))
	req.Nil(add(generator, generator.neg()))
	req.Equal(generator, add(nil, generator))
}

func samePoint(a, b *point) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.x.Cmp(b.x) == 0 && a.y.Cmp(b.y) == 0
}

func TestHashToInt(t *testing.T) {
	req := require.New(t)

	z, err := HashToInt("0x1234")
	req.NoError(err)
	req.Equal(big.NewInt(0x1234), z)

	// 63 digits keep their value
	h63 := "7" + strings.Repeat("1", 62)
	z, err = HashToInt("0x" + h63)
	req.NoError(err)
	req.Equal(hexInt(h63), z)

	// leading zeros do not count towards the width
	for _, padded := range []string{"0x0" + h63, "0x000" + h63, "0X" + h63} {
		z, err = HashToInt(padded)
		req.NoError(err, padded)
		req.Equal(hexInt(h63), z, padded)
	}

	z, err = HashToInt("0x0000")
	req.NoError(err)
	req.Equal(0, z.Sign())

	for _, bad := range []string{
		"", "0x", "0xzz", "-0x1",
		"0x" + strings.Repeat("f", 64),
		"0x" + strings.Repeat("1", 65),
	} {
		_, err := HashToInt(bad)
		req.ErrorIs(err, ErrInvalidHash, bad)
	}
}

func TestKnownStarkKey(t *testing.T) {
	kp, err := KeyPairFromHex("0x3c1e9550e66958296d11b60f8e8e7a7ad990d07fa65d5f7652c4a6c87d4e3cc")
	require.NoError(t, err)
	require.Equal(t, "0x077a3b314db07c45076d11f62b6f9e748a39790441823307743cf00d6597ea43", kp.StarkKey())
}

func TestKnownSignatures(t *testing.T) {
	kp, err := KeyPairFromHex("0x3c1e9550e66958296d11b60f8e8e7a7ad990d07fa65d5f7652c4a6c87d4e3cc")
	require.NoError(t, err)

	cases := []struct {
		Hash string
		Sig  string
	}{
		{
			Hash: "0x1",
			Sig:  "0x06fdd4e4bf3fcd781997f9deba654356e629177ce4d804bc527044f222828f25033302ce7c82a7e199a8d7faaae8a53a2f447c9dd1262b1862b03a46104bc1d2",
		},
		{
			Hash: testHash,
			Sig:  "0x05fa6b8a44e97236ba4ba16ad48db729e70ed116fed0691be056e86d05a09bc301109e69025fde75d65f28e67f50f493993ec5a45bae69b4385ab747e1f98bc3",
		},
		{
			Hash: "0x7" + strings.Repeat("1", 62),
			Sig:  "0x0328af2b59938837ec8b8b7b6d21cfeae8f1b8cb7d68153105ab3c42016f0cf5005c77c8acd302309d0c6dbac2ebbe4f7c03495b72714369586527260bd542bf",
		},
		{
			Hash: "0x07" + strings.Repeat("1", 62),
			Sig:  "0x0328af2b59938837ec8b8b7b6d21cfeae8f1b8cb7d68153105ab3c42016f0cf5005c77c8acd302309d0c6dbac2ebbe4f7c03495b72714369586527260bd542bf",
		},
	}

	for _, c := range cases {
		sig, err := kp.SignHash(c.Hash)
		require.NoError(t, err, c.Hash)
		require.Equal(t, c.Sig, sig, c.Hash)

		ok, err := VerifyWithStarkKey(kp.StarkKey(), c.Hash, c.Sig)
		require.NoError(t, err, c.Hash)
		require.True(t, ok, c.Hash)
	}

	// the zero padded hash verifies against its canonical form
	sig, err := kp.SignHash("0x07" + strings.Repeat("1", 62))
	require.NoError(t, err)
	ok, err := VerifyWithStarkKey(kp.StarkKey(), "0x7"+strings.Repeat("1", 62), sig)
	require.NoError(t, err)
	require.True(t, ok)
}

func TestKnownKeyDerivation(t *testing.T) {
	// bip39 seed of "range mountain blast problem vibrant void vivid doctor
	// cluster enough melody salt layer language laptop boat major space
	// monkey unit glimpse pause change vibrant"
	seed, err := hex.DecodeString("ed43abe2785ca9dfe74a2a8b05feaf2cdd4eda6847914674f88f5f114c3b694d4ae930dd3808088ce40143430157ed79a66d7ff8d4919bd833d31d4a0f16f441")
	require.NoError(t, err)
	address := "0xa4864d977b944315389d1765ffa7e66F74ee8cd7"

	cases := []struct {
		Index uint32
		Path  string
		Key   string
	}{
		{
			Index: 0,
			Path:  "m/2645'/579218131'/891216374'/1961790679'/2135936222'/0",
			Key:   "0x06cf0a8bf113352eb863157a45c5e5567abb34f8d32cddafd2c22aa803f4892c",
		},
		{
			Index: 7,
			Path:  "m/2645'/579218131'/891216374'/1961790679'/2135936222'/7",
			Key:   "0x0341751bdc42841da35ab74d13a1372c1f0250617e8a2ef96034d9f46e6847af",
		},
	}

	for _, c := range cases {
		path, err := AccountPath(LayerStarkEx, "starkdeployement", address, c.Index)
		require.NoError(t, err)
		require.Equal(t, c.Path, path.String())

		priv, err := KeyFromPath(seed, path)
		require.NoError(t, err)
		require.Equal(t, c.Key, fmt.Sprintf("0x%064x", priv))
	}
}

type keyPairTestSuite struct {
	suite.Suite
	kp *KeyPair
}

func TestKeyPairSuite(t *testing.T) {
	suite.Run(t, new(keyPairTestSuite))
}

func (s *keyPairTestSuite) SetupSuite() {
	kp, err := KeyPairFromHex("0x3c1e9550e66958296d11b60f8e8e7a7ad990d07fa65d5f7652c4a6c87d4e3cc")
	s.Require().NoError(err)
	s.kp = kp
}

func (s *keyPairTestSuite) TestStarkKeyFormat() {
	s.Regexp(`^0x[0-9a-f]{64}$`, s.kp.StarkKey())
	s.True(s.kp.public.onCurve())
}

func (s *keyPairTestSuite) TestSignVerify() {
	sig, err := s.kp.SignHash(testHash)
	s.Require().NoError(err)
	s.Regexp(signaturePattern, sig)

	ok, err := VerifyWithStarkKey(s.kp.StarkKey(), testHash, sig)
	s.Require().NoError(err)
	s.True(ok)
}

func (s *keyPairTestSuite) TestSignDeterministic() {
	a, err := s.kp.SignHash(testHash)
	s.Require().NoError(err)
	b, err := s.kp.SignHash(testHash)
	s.Require().NoError(err)
	s.Equal(a, b)

	c, err := s.kp.SignHash("0x1")
	s.Require().NoError(err)
	s.NotEqual(a, c)
}

func (s *keyPairTestSuite) TestVerifyRejectsTampering() {
	sig, err := s.kp.SignHash(testHash)
	s.Require().NoError(err)

	ok, err := VerifyWithStarkKey(s.kp.StarkKey(), "0x1234", sig)
	s.Require().NoError(err)
	s.False(ok)

	other, err := KeyPairFromHex("0x2")
	s.Require().NoError(err)
	ok, err = VerifyWithStarkKey(other.StarkKey(), testHash, sig)
	s.Require().NoError(err)
	s.False(ok)

	_, err = VerifyWithStarkKey(s.kp.StarkKey(), testHash, "0x1234")
	s.ErrorIs(err, ErrInvalidSignature)
}

func (s *keyPairTestSuite) TestSignHashInvalid() {
	_, err := s.kp.SignHash("not a hash")
	s.ErrorIs(err, domain.ErrSigningFailure)
	s.ErrorIs(err, ErrInvalidHash)
}

func (s *keyPairTestSuite) TestSignatureRoundTrip() {
	sig, err := s.kp.Sign(testHash)
	s.Require().NoError(err)
	parsed, err := ParseSignature(sig.Serialize())
	s.Require().NoError(err)
	s.Equal(0, sig.R.Cmp(parsed.R))
	s.Equal(0, sig.S.Cmp(parsed.S))
}

func TestNewKeyPairRange(t *testing.T) {
	req := require.New(t)
	_, err := NewKeyPair(big.NewInt(0))
	req.ErrorIs(err, ErrInvalidPrivateKey)
	_, err = NewKeyPair(EcOrder)
	req.ErrorIs(err, ErrInvalidPrivateKey)
	_, err = KeyPairFromHex("0xnope")
	req.ErrorIs(err, ErrInvalidPrivateKey)
}

func TestAccountPath(t *testing.T) {
	req := require.New(t)
	path, err := AccountPath(LayerStarkEx, ApplicationImmutableX, "0x00000000000000000000000000000000FFFFFFFF", DefaultIndex)
	req.NoError(err)
	req.Len(path, 6)

	layer := sha256.Sum256([]byte("starkex"))
	req.Equal(hdkeychain.HardenedKeyStart+purpose, int(path[0]))
	req.Equal(uint32(hdkeychain.HardenedKeyStart)+low31(layer), path[1])
	req.Equal(uint32(hdkeychain.HardenedKeyStart+(1<<31-1)), path[3])
	req.Equal(uint32(hdkeychain.HardenedKeyStart+1), path[4])
	req.Equal(uint32(1), path[5])

	req.Regexp(`^m/2645'/\d+'/\d+'/2147483647'/1'/1$`, path.String())

	_, err = AccountPath(LayerStarkEx, ApplicationImmutableX, "0xnothex", DefaultIndex)
	req.Error(err)
}

func TestGrindKey(t *testing.T) {
	req := require.New(t)
	seed := []byte("some seed")
	a := GrindKey(seed)
	req.Equal(-1, a.Cmp(EcOrder))
	req.Equal(0, a.Cmp(GrindKey(seed)))
	req.NotEqual(0, a.Cmp(GrindKey([]byte("other seed"))))
}

type deriverTestSuite struct {
	suite.Suite
	ctx ctx.Ctx
}

func TestDeriverSuite(t *testing.T) {
	suite.Run(t, new(deriverTestSuite))
}

func (s *deriverTestSuite) SetupTest() {
	s.ctx = ctx.Background()
}

func (s *deriverTestSuite) TestDeterministic() {
	signer, err := ethsigner.NewFromHex(l1Key)
	s.Require().NoError(err)
	d := NewDeriver(nil)

	a, err := d.Derive(s.ctx, signer)
	s.Require().NoError(err)
	b, err := d.Derive(s.ctx, signer)
	s.Require().NoError(err)
	s.Equal(a.StarkKey(), b.StarkKey())

	sig, err := a.SignHash(testHash)
	s.Require().NoError(err)
	ok, err := VerifyWithStarkKey(a.StarkKey(), testHash, sig)
	s.Require().NoError(err)
	s.True(ok)
}

func (s *deriverTestSuite) TestKnownAccount() {
	signer, err := ethsigner.NewFromHex(l1Key)
	s.Require().NoError(err)

	got, err := NewDeriver(nil).Derive(s.ctx, signer)
	s.Require().NoError(err)
	s.Equal("0x05615c3af819bc150d2e5aa083bd3db2b3919db28a7670c96adb3b6f1d603a1d", got.StarkKey())
	s.Equal("0x05d320c2e3cd065c62b1edb1a9b5baed325cedd72004c0932565240739a4fddc", got.(*KeyPair).PrivateKeyHex())
}

func (s *deriverTestSuite) TestDistinctAccounts() {
	one, err := ethsigner.Generate()
	s.Require().NoError(err)
	two, err := ethsigner.Generate()
	s.Require().NoError(err)
	d := NewDeriver(nil)

	a, err := d.Derive(s.ctx, one)
	s.Require().NoError(err)
	b, err := d.Derive(s.ctx, two)
	s.Require().NoError(err)
	s.NotEqual(a.StarkKey(), b.StarkKey())
}

func (s *deriverTestSuite) TestIndexChangesKey() {
	signer, err := ethsigner.NewFromHex(l1Key)
	s.Require().NoError(err)
	a, err := NewDeriver(nil).Derive(s.ctx, signer)
	s.Require().NoError(err)
	b, err := NewDeriver(&DeriverCfg{Index: 2}).Derive(s.ctx, signer)
	s.Require().NoError(err)
	s.NotEqual(a.StarkKey(), b.StarkKey())
}

func (s *deriverTestSuite) TestSignerFailure() {
	cause := errors.New("locked")
	m := &mocks.Signer{}
	m.On("GetAddress", mock.Anything).Return("0xabc", nil).Once()
	m.On("SignMessage", mock.Anything, AccountMessage).Return("", cause).Once()

	_, err := NewDeriver(nil).Derive(s.ctx, m)
	s.ErrorIs(err, domain.ErrSigningFailure)
	s.ErrorIs(err, cause)
	m.AssertExpectations(s.T())
}

func (s *deriverTestSuite) TestAddressFailure() {
	m := &mocks.Signer{}
	m.On("GetAddress", mock.Anything).Return("", errors.New("no account")).Once()

	_, err := NewDeriver(nil).Derive(s.ctx, m)
	s.ErrorIs(err, domain.ErrSigningFailure)
	m.AssertNotCalled(s.T(), "SignMessage", mock.Anything, mock.Anything)
}
