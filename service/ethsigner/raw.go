package ethsigner

import (
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/x-xyz/goimx/base/ctx"
	"github.com/x-xyz/goimx/base/ethereum"
	"github.com/x-xyz/goimx/base/log"
	"github.com/x-xyz/goimx/domain"
	"github.com/x-xyz/goimx/domain/wallet"
)

// SignRaw has signer sign message with the personal message prefix and
// returns the signature as 0x hex with v in {27, 28}.
func SignRaw(c ctx.Ctx, signer wallet.Signer, message string) (string, error) {
	sig, err := SignRawBytes(c, signer, message)
	if err != nil {
		return "", err
	}
	return hexutil.Encode(sig), nil
}

// SignRawBytes is SignRaw without the hex encoding.
func SignRawBytes(c ctx.Ctx, signer wallet.Signer, message string) ([]byte, error) {
	signature, err := signer.SignMessage(c, message)
	if err != nil {
		c.WithField("err", err).Error("signer.SignMessage failed")
		return nil, &domain.SigningError{Op: "SignMessage", Err: err}
	}
	sig, err := ethereum.NormalizeSignature(signature)
	if err != nil {
		c.WithFields(log.Fields{
			"signature": signature,
			"err":       err,
		}).Error("ethereum.NormalizeSignature failed")
		return nil, &domain.SigningError{Op: "SignMessage", Err: err}
	}
	return sig, nil
}
