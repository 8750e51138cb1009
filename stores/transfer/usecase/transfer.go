package usecase

import (
	"fmt"
	"strings"

	"github.com/x-xyz/goimx/base/ctx"
	"github.com/x-xyz/goimx/base/log"
	"github.com/x-xyz/goimx/base/validator"
	"github.com/x-xyz/goimx/domain"
	"github.com/x-xyz/goimx/domain/transfer"
	"github.com/x-xyz/goimx/domain/wallet"
	"github.com/x-xyz/goimx/service/ethsigner"
)

type TransferUseCaseCfg struct {
	Api     transfer.Api
	Deriver wallet.StarkDeriver
}

type transferUsecase struct {
	api     transfer.Api
	deriver wallet.StarkDeriver
}

func New(cfg *TransferUseCaseCfg) transfer.Usecase {
	return &transferUsecase{
		api:     cfg.Api,
		deriver: cfg.Deriver,
	}
}

// ExecuteTransfer fetches signable details, signs them with both credentials
// and submits the signed transfer. Nothing is signed unless the signable
// details carry every field the submission needs.
func (u *transferUsecase) ExecuteTransfer(c ctx.Ctx, signer wallet.Signer, req transfer.TransferRequest) (*transfer.TransferResult, error) {
	if err := validator.Struct(req); err != nil {
		c.WithFields(log.Fields{
			"req": req,
			"err": err,
		}).Warn("validator.Struct failed")
		return nil, fmt.Errorf("%w: %v", domain.ErrBadParamInput, err)
	}

	signable, err := u.api.GetSignableTransferV1(c, transfer.GetSignableTransferRequest{
		Sender:   req.Sender,
		Token:    req.Token,
		Amount:   req.Amount,
		Receiver: req.Receiver,
	})
	if err != nil {
		c.WithFields(log.Fields{
			"sender":   req.Sender,
			"receiver": req.Receiver,
			"err":      err,
		}).Error("api.GetSignableTransferV1 failed")
		return nil, err
	}
	if err := signable.Check(); err != nil {
		c.WithField("err", err).Error("signable.Check failed")
		return nil, err
	}

	starkSigner, err := u.deriver.Derive(c, signer)
	if err != nil {
		c.WithField("err", err).Error("deriver.Derive failed")
		return nil, err
	}

	ethSignature, err := ethsigner.SignRaw(c, signer, *signable.SignableMessage)
	if err != nil {
		return nil, err
	}

	starkSignature, err := starkSigner.SignHash(*signable.PayloadHash)
	if err != nil {
		c.WithFields(log.Fields{
			"payloadHash": *signable.PayloadHash,
			"err":         err,
		}).Error("starkSigner.SignHash failed")
		return nil, err
	}

	address, err := signer.GetAddress(c)
	if err != nil {
		c.WithField("err", err).Error("signer.GetAddress failed")
		return nil, &domain.SigningError{Op: "GetAddress", Err: err}
	}

	resp, err := u.api.CreateTransferV1(c, transfer.CreateTransferParams{
		Request: transfer.CreateTransferRequest{
			SenderStarkKey:      *signable.SenderStarkKey,
			SenderVaultId:       *signable.SenderVaultId,
			ReceiverStarkKey:    *signable.ReceiverStarkKey,
			ReceiverVaultId:     *signable.ReceiverVaultId,
			AssetId:             *signable.AssetId,
			Amount:              *signable.Amount,
			Nonce:               *signable.Nonce,
			ExpirationTimestamp: *signable.ExpirationTimestamp,
			StarkSignature:      starkSignature,
		},
		EthAddress:   strings.ToLower(address),
		EthSignature: ethSignature,
	})
	if err != nil {
		c.WithFields(log.Fields{
			"sender": req.Sender,
			"nonce":  signable.Nonce.String(),
			"err":    err,
		}).Error("api.CreateTransferV1 failed")
		return nil, err
	}

	return &transfer.TransferResult{
		SentSignature: resp.SentSignature,
		Status:        resp.Status,
		Time:          resp.Time,
		TransferId:    resp.TransferId,
	}, nil
}
