package usecase

import (
	"fmt"

	"github.com/x-xyz/goimx/base/ctx"
	"github.com/x-xyz/goimx/base/log"
	"github.com/x-xyz/goimx/base/validator"
	"github.com/x-xyz/goimx/domain"
	"github.com/x-xyz/goimx/domain/burn"
	"github.com/x-xyz/goimx/domain/transfer"
	"github.com/x-xyz/goimx/domain/wallet"
)

type BurnUseCaseCfg struct {
	TransferUC transfer.Usecase
	Api        transfer.Api
}

type burnUsecase struct {
	transferUC transfer.Usecase
	api        transfer.Api
}

func New(cfg *BurnUseCaseCfg) burn.Usecase {
	return &burnUsecase{
		transferUC: cfg.TransferUC,
		api:        cfg.Api,
	}
}

// Burn transfers the token to domain.BurnAddress.
func (u *burnUsecase) Burn(c ctx.Ctx, signer wallet.Signer, req burn.Request) (*transfer.TransferResult, error) {
	res, err := u.transferUC.ExecuteTransfer(c, signer, transfer.TransferRequest{
		Sender:   req.Sender,
		Token:    req.Token,
		Amount:   req.Amount,
		Receiver: domain.BurnAddress,
	})
	if err != nil {
		c.WithFields(log.Fields{
			"sender": req.Sender,
			"token":  req.Token,
			"err":    err,
		}).Error("transferUC.ExecuteTransfer failed")
		return nil, err
	}
	return res, nil
}

// GetBurn looks the transfer up with a single call and returns it unmodified.
func (u *burnUsecase) GetBurn(c ctx.Ctx, req transfer.GetTransferRequest) (*transfer.Transfer, error) {
	if err := validator.Struct(req); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrBadParamInput, err)
	}
	return u.api.GetTransfer(c, req)
}
