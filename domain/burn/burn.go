package burn

import (
	"github.com/x-xyz/goimx/base/ctx"
	"github.com/x-xyz/goimx/domain"
	"github.com/x-xyz/goimx/domain/transfer"
	"github.com/x-xyz/goimx/domain/wallet"
)

// Request is a transfer whose receiver is always domain.BurnAddress
type Request struct {
	Sender domain.Address `json:"sender"`
	Token  transfer.Token `json:"token"`
	Amount string         `json:"amount"`
}

type Usecase interface {
	Burn(c ctx.Ctx, signer wallet.Signer, req Request) (*transfer.TransferResult, error)
	GetBurn(c ctx.Ctx, req transfer.GetTransferRequest) (*transfer.Transfer, error)
}
