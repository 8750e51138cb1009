// Package sandbox describes a local stand-in for the remote transfers service.
package sandbox

import (
	"github.com/x-xyz/goimx/base/ctx"
	"github.com/x-xyz/goimx/domain"
	"github.com/x-xyz/goimx/domain/collection"
	"github.com/x-xyz/goimx/domain/transfer"
)

// BurnStarkKey is the receiver stark key issued for domain.BurnAddress
const BurnStarkKey = "0x0"

type User struct {
	EthAddress domain.Address `json:"ether_key" validate:"required,address"`
	StarkKey   string         `json:"stark_key" validate:"required,startswith=0x"`
}

// Pending is an issued signable transfer waiting for its signed submission.
type Pending struct {
	Request  transfer.GetSignableTransferRequest
	Response transfer.GetSignableTransferResponse
}

type Repo interface {
	SaveUser(c ctx.Ctx, user User) error
	FindUser(c ctx.Ctx, address domain.Address) (*User, error)

	SavePending(c ctx.Ctx, nonce string, p Pending) error
	FindPending(c ctx.Ctx, nonce string) (*Pending, error)
	// TakePending removes the pending transfer; only one caller gets it.
	TakePending(c ctx.Ctx, nonce string) (*Pending, error)

	NextId(c ctx.Ctx) int64
	Create(c ctx.Ctx, t transfer.Transfer) error
	FindOne(c ctx.Ctx, id int64) (*transfer.Transfer, error)

	SaveCollection(c ctx.Ctx, col collection.Collection) error
	FindCollection(c ctx.Ctx, address domain.Address) (*collection.Collection, error)
}

type Usecase interface {
	transfer.Api
	collection.Api
	RegisterUser(c ctx.Ctx, user User) error
	RegisterCollection(c ctx.Ctx, col collection.Collection) error
}
