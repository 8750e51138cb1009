// Package ethsigner provides a private key backed wallet.Signer and the raw
// message signing every transfer starts with.
package ethsigner

import (
	"crypto/ecdsa"
	"fmt"

	"github.com/ethereum/go-ethereum/accounts/keystore"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/x-xyz/goimx/base/ctx"
	"github.com/x-xyz/goimx/base/ethereum"
	"github.com/x-xyz/goimx/domain/wallet"
)

type signer struct {
	key *ecdsa.PrivateKey
}

func New(key *ecdsa.PrivateKey) wallet.Signer {
	return &signer{key: key}
}

// NewFromHex accepts a hex private key with or without 0x prefix.
func NewFromHex(privateKey string) (wallet.Signer, error) {
	key, err := ethereum.ParseKey(privateKey)
	if err != nil {
		return nil, fmt.Errorf("failed to parse private key: %w", err)
	}
	return New(key), nil
}

// NewFromKeystore decrypts a web3 secret storage json.
func NewFromKeystore(keyJson []byte, password string) (wallet.Signer, error) {
	key, err := keystore.DecryptKey(keyJson, password)
	if err != nil {
		return nil, fmt.Errorf("failed to decrypt key: %w", err)
	}
	return New(key.PrivateKey), nil
}

// Generate returns a signer over a fresh random key.
func Generate() (wallet.Signer, error) {
	key, _, err := ethereum.GenerateKey()
	if err != nil {
		return nil, fmt.Errorf("failed to generate private key: %w", err)
	}
	return New(key), nil
}

func (s *signer) GetAddress(c ctx.Ctx) (string, error) {
	return ethereum.AddressOf(s.key).Hex(), nil
}

func (s *signer) SignMessage(c ctx.Ctx, message string) (string, error) {
	sig, err := ethereum.SignMsg([]byte(message), s.key)
	if err != nil {
		return "", err
	}
	return hexutil.Encode(sig), nil
}
