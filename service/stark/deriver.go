package stark

import (
	"github.com/x-xyz/goimx/base/ctx"
	"github.com/x-xyz/goimx/base/ethereum"
	"github.com/x-xyz/goimx/base/log"
	"github.com/x-xyz/goimx/domain"
	"github.com/x-xyz/goimx/domain/wallet"
	"github.com/x-xyz/goimx/service/ethsigner"
)

// AccountMessage is signed by the L1 account; the s component of the
// signature seeds the STARK key.
const AccountMessage = "Only sign this request if you’ve initiated an action with Immutable X."

type DeriverCfg struct {
	Layer       string
	Application string
	Index       uint32
}

type deriver struct {
	layer       string
	application string
	index       uint32
}

// NewDeriver returns the Immutable X deriver when cfg is nil.
func NewDeriver(cfg *DeriverCfg) wallet.StarkDeriver {
	d := &deriver{
		layer:       LayerStarkEx,
		application: ApplicationImmutableX,
		index:       DefaultIndex,
	}
	if cfg != nil {
		if cfg.Layer != "" {
			d.layer = cfg.Layer
		}
		if cfg.Application != "" {
			d.application = cfg.Application
		}
		if cfg.Index != 0 {
			d.index = cfg.Index
		}
	}
	return d
}

func (d *deriver) Derive(c ctx.Ctx, signer wallet.Signer) (wallet.StarkSigner, error) {
	address, err := signer.GetAddress(c)
	if err != nil {
		c.WithField("err", err).Error("signer.GetAddress failed")
		return nil, &domain.SigningError{Op: "GetAddress", Err: err}
	}
	sig, err := ethsigner.SignRawBytes(c, signer, AccountMessage)
	if err != nil {
		return nil, err
	}
	path, err := AccountPath(d.layer, d.application, address, d.index)
	if err != nil {
		c.WithFields(log.Fields{
			"address": address,
			"err":     err,
		}).Error("AccountPath failed")
		return nil, &domain.SigningError{Op: "DeriveStarkKey", Err: err}
	}
	priv, err := KeyFromPath(ethereum.SignatureS(sig), path)
	if err != nil {
		c.WithFields(log.Fields{
			"path": path.String(),
			"err":  err,
		}).Error("KeyFromPath failed")
		return nil, &domain.SigningError{Op: "DeriveStarkKey", Err: err}
	}
	kp, err := NewKeyPair(priv)
	if err != nil {
		return nil, &domain.SigningError{Op: "DeriveStarkKey", Err: err}
	}
	return kp, nil
}
