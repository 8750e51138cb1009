// Package wallet declares the two credential capabilities a transfer is signed with.
package wallet

import (
	"github.com/x-xyz/goimx/base/ctx"
)

// Signer is the primary (L1) credential supplied by the caller's environment.
// The SDK never sees its private key.
type Signer interface {
	// GetAddress returns the account address in any letter case.
	GetAddress(c ctx.Ctx) (string, error)
	// SignMessage returns a 0x hex personal_sign signature over message.
	SignMessage(c ctx.Ctx, message string) (string, error)
}

// StarkSigner is a second layer key pair derived from a Signer.
type StarkSigner interface {
	// StarkKey is the public key, 0x hex of the x coordinate.
	StarkKey() string
	// SignHash signs a hex payload hash and returns the wire encoded signature.
	SignHash(hash string) (string, error)
}

// StarkDeriver derives the StarkSigner bound to a Signer's account.
// Derivation is deterministic per account.
type StarkDeriver interface {
	Derive(c ctx.Ctx, signer Signer) (StarkSigner, error)
}
