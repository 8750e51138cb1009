package usecase

import (
	"errors"
	"fmt"
	"hash/fnv"
	"math/big"
	"strconv"
	"time"

	"github.com/ethereum/go-ethereum/crypto"
	"github.com/google/uuid"

	"github.com/x-xyz/goimx/base/ctx"
	"github.com/x-xyz/goimx/base/ethereum"
	"github.com/x-xyz/goimx/base/log"
	"github.com/x-xyz/goimx/base/ptr"
	"github.com/x-xyz/goimx/base/validator"
	"github.com/x-xyz/goimx/domain"
	"github.com/x-xyz/goimx/domain/collection"
	"github.com/x-xyz/goimx/domain/sandbox"
	"github.com/x-xyz/goimx/domain/transfer"
	"github.com/x-xyz/goimx/service/stark"
)

const (
	StatusSuccess = "success"

	defaultValidity = 30 * 24 * time.Hour
)

var (
	mask250 = new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 250), big.NewInt(1))
	mask31  = uint64(1<<31 - 1)
)

type SandboxUseCaseCfg struct {
	Repo sandbox.Repo
	// Validity is how long issued signable details stay submittable.
	Validity time.Duration
	Now      func() time.Time
}

type sandboxUsecase struct {
	repo     sandbox.Repo
	validity time.Duration
	now      func() time.Time
}

func New(cfg *SandboxUseCaseCfg) sandbox.Usecase {
	u := &sandboxUsecase{
		repo:     cfg.Repo,
		validity: cfg.Validity,
		now:      cfg.Now,
	}
	if u.validity <= 0 {
		u.validity = defaultValidity
	}
	if u.now == nil {
		u.now = time.Now
	}
	return u
}

func (u *sandboxUsecase) RegisterUser(c ctx.Ctx, user sandbox.User) error {
	if err := validator.Struct(user); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrBadParamInput, err)
	}
	user.EthAddress = user.EthAddress.ToLower()
	if err := u.repo.SaveUser(c, user); err != nil {
		c.WithFields(log.Fields{
			"user": user,
			"err":  err,
		}).Error("repo.SaveUser failed")
		return err
	}
	return nil
}

func (u *sandboxUsecase) RegisterCollection(c ctx.Ctx, col collection.Collection) error {
	if !validator.IsValidAddress(string(col.Address)) || col.Name == "" {
		return fmt.Errorf("%w: collection needs an address and a name", domain.ErrBadParamInput)
	}
	col.Address = col.Address.ToLower()
	return u.repo.SaveCollection(c, col)
}

func (u *sandboxUsecase) GetCollection(c ctx.Ctx, address domain.Address) (*collection.Collection, error) {
	return u.repo.FindCollection(c, address)
}

func (u *sandboxUsecase) GetSignableTransferV1(c ctx.Ctx, req transfer.GetSignableTransferRequest) (*transfer.GetSignableTransferResponse, error) {
	if err := validator.Struct(transfer.TransferRequest(req)); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrBadParamInput, err)
	}

	sender, err := u.findUser(c, req.Sender)
	if err != nil {
		return nil, err
	}
	receiverKey := sandbox.BurnStarkKey
	if !req.Receiver.Equals(domain.BurnAddress) {
		receiver, err := u.findUser(c, req.Receiver)
		if err != nil {
			return nil, err
		}
		receiverKey = receiver.StarkKey
	}

	assetId := assetIdOf(req.Token)
	senderVault := vaultIdOf(sender.StarkKey, assetId)
	receiverVault := vaultIdOf(receiverKey, assetId)
	nonce := transfer.NumberScalar(strconv.FormatUint(uint64(uuid.New().ID()), 10))
	expiration := transfer.NumberScalar(strconv.FormatInt(u.now().Add(u.validity).Unix()/3600, 10))
	payloadHash := hashFields(
		sender.StarkKey, senderVault.String(),
		receiverKey, receiverVault.String(),
		assetId, req.Amount, nonce.String(), expiration.String(),
	)
	message := fmt.Sprintf(
		"Only sign this message if you initiated this transfer.\nAmount: %s\nAsset: %s\nReceiver: %s\nNonce: %s",
		req.Amount, assetId, receiverKey, nonce,
	)

	resp := transfer.GetSignableTransferResponse{
		SignableMessage:     ptr.String(message),
		PayloadHash:         ptr.String(payloadHash),
		SenderStarkKey:      ptr.String(sender.StarkKey),
		SenderVaultId:       ptr.Of(senderVault),
		ReceiverStarkKey:    ptr.String(receiverKey),
		ReceiverVaultId:     ptr.Of(receiverVault),
		AssetId:             ptr.String(assetId),
		Amount:              ptr.String(req.Amount),
		Nonce:               ptr.Of(nonce),
		ExpirationTimestamp: ptr.Of(expiration),
	}
	if err := u.repo.SavePending(c, nonce.String(), sandbox.Pending{Request: req, Response: resp}); err != nil {
		c.WithFields(log.Fields{
			"nonce": nonce,
			"err":   err,
		}).Error("repo.SavePending failed")
		return nil, err
	}
	return &resp, nil
}

func (u *sandboxUsecase) CreateTransferV1(c ctx.Ctx, params transfer.CreateTransferParams) (*transfer.CreateTransferResponse, error) {
	body := params.Request
	pending, err := u.repo.FindPending(c, body.Nonce.String())
	if errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("%w: unknown nonce %s", domain.ErrBadParamInput, body.Nonce)
	} else if err != nil {
		return nil, err
	}
	issued := pending.Response

	if !matches(body, issued) {
		return nil, fmt.Errorf("%w: transfer does not match the signable details", domain.ErrBadParamInput)
	}
	if expiration, err := strconv.ParseInt(body.ExpirationTimestamp.String(), 10, 64); err != nil || expiration*3600 < u.now().Unix() {
		return nil, fmt.Errorf("%w: signable details expired", domain.ErrBadParamInput)
	}

	if !domain.Address(params.EthAddress).Equals(pending.Request.Sender) {
		return nil, fmt.Errorf("%w: %s is not the sender", domain.ErrInvalidSignature, params.EthAddress)
	}
	ok, err := ethereum.ValidateMsgSignature([]byte(*issued.SignableMessage), params.EthSignature, params.EthAddress)
	if err != nil || !ok {
		c.WithFields(log.Fields{
			"address": params.EthAddress,
			"err":     err,
		}).Warn("eth signature rejected")
		return nil, fmt.Errorf("%w: eth signature", domain.ErrInvalidSignature)
	}
	ok, err = stark.VerifyWithStarkKey(*issued.SenderStarkKey, *issued.PayloadHash, body.StarkSignature)
	if err != nil || !ok {
		c.WithFields(log.Fields{
			"starkKey": *issued.SenderStarkKey,
			"err":      err,
		}).Warn("stark signature rejected")
		return nil, fmt.Errorf("%w: stark signature", domain.ErrInvalidSignature)
	}

	if _, err := u.repo.TakePending(c, body.Nonce.String()); err != nil {
		return nil, fmt.Errorf("%w: transfer %s already submitted", domain.ErrBadParamInput, body.Nonce)
	}

	now := u.now()
	id := u.repo.NextId(c)
	record := transfer.Transfer{
		TransactionId: id,
		Status:        StatusSuccess,
		User:          pending.Request.Sender.ToLowerStr(),
		Receiver:      pending.Request.Receiver.ToLowerStr(),
		Token:         pending.Request.Token,
		Timestamp:     ptr.String(now.UTC().Format(time.RFC3339)),
	}
	if err := u.repo.Create(c, record); err != nil {
		c.WithFields(log.Fields{
			"id":  id,
			"err": err,
		}).Error("repo.Create failed")
		return nil, err
	}

	return &transfer.CreateTransferResponse{
		SentSignature: ptr.String(body.StarkSignature),
		Status:        ptr.String(StatusSuccess),
		Time:          ptr.Int64(now.Unix()),
		TransferId:    ptr.Int64(id),
	}, nil
}

func (u *sandboxUsecase) GetTransfer(c ctx.Ctx, req transfer.GetTransferRequest) (*transfer.Transfer, error) {
	id, err := strconv.ParseInt(req.Id, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("%w: transfer id %q", domain.ErrBadParamInput, req.Id)
	}
	return u.repo.FindOne(c, id)
}

func (u *sandboxUsecase) findUser(c ctx.Ctx, address domain.Address) (*sandbox.User, error) {
	user, err := u.repo.FindUser(c, address)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("%w: %s is not registered", domain.ErrBadParamInput, address)
	} else if err != nil {
		c.WithFields(log.Fields{
			"address": address,
			"err":     err,
		}).Error("repo.FindUser failed")
		return nil, err
	}
	return user, nil
}

func matches(body transfer.CreateTransferRequest, issued transfer.GetSignableTransferResponse) bool {
	return body.SenderStarkKey == *issued.SenderStarkKey &&
		body.SenderVaultId.String() == issued.SenderVaultId.String() &&
		body.ReceiverStarkKey == *issued.ReceiverStarkKey &&
		body.ReceiverVaultId.String() == issued.ReceiverVaultId.String() &&
		body.AssetId == *issued.AssetId &&
		body.Amount == *issued.Amount &&
		body.ExpirationTimestamp.String() == issued.ExpirationTimestamp.String()
}

// assetIdOf hashes the token into a 250 bit id.
func assetIdOf(token transfer.Token) string {
	return hashFields(string(token.Type), token.Data.TokenAddress.ToLowerStr(), token.Data.TokenId)
}

func vaultIdOf(starkKey, assetId string) transfer.Scalar {
	h := fnv.New64a()
	h.Write([]byte(starkKey))
	h.Write([]byte(assetId))
	return transfer.NumberScalar(strconv.FormatUint(h.Sum64()&mask31, 10))
}

// hashFields is keccak256 over the fields, masked to 250 bits so it is a
// valid stark message.
func hashFields(fields ...string) string {
	data := make([][]byte, 0, len(fields))
	for _, f := range fields {
		data = append(data, []byte(f), []byte{0})
	}
	n := new(big.Int).SetBytes(crypto.Keccak256(data...))
	return fmt.Sprintf("0x%x", n.And(n, mask250))
}
