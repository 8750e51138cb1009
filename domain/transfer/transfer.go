package transfer

import (
	"fmt"

	"github.com/x-xyz/goimx/base/ctx"
	"github.com/x-xyz/goimx/domain"
	"github.com/x-xyz/goimx/domain/wallet"
)

// TransferRequest is the caller input of ExecuteTransfer
type TransferRequest struct {
	Sender   domain.Address `json:"sender" validate:"required,address"`
	Token    Token          `json:"token"`
	Amount   string         `json:"amount" validate:"required,amount"`
	Receiver domain.Address `json:"receiver" validate:"required,address"`
}

func (r TransferRequest) Validate() error {
	return r.Token.Validate()
}

type GetSignableTransferRequest struct {
	Sender   domain.Address `json:"sender"`
	Token    Token          `json:"token"`
	Amount   string         `json:"amount"`
	Receiver domain.Address `json:"receiver"`
}

// GetSignableTransferResponse mirrors the wire schema, where every field is optional.
type GetSignableTransferResponse struct {
	SignableMessage     *string `json:"signable_message,omitempty"`
	PayloadHash         *string `json:"payload_hash,omitempty"`
	SenderStarkKey      *string `json:"sender_stark_key,omitempty"`
	SenderVaultId       *Scalar `json:"sender_vault_id,omitempty"`
	ReceiverStarkKey    *string `json:"receiver_stark_key,omitempty"`
	ReceiverVaultId     *Scalar `json:"receiver_vault_id,omitempty"`
	AssetId             *string `json:"asset_id,omitempty"`
	Amount              *string `json:"amount,omitempty"`
	Nonce               *Scalar `json:"nonce,omitempty"`
	ExpirationTimestamp *Scalar `json:"expiration_timestamp,omitempty"`
}

// MissingFields lists the json names of absent fields a signed submission needs.
func (r *GetSignableTransferResponse) MissingFields() []string {
	var missing []string
	check := func(name string, present bool) {
		if !present {
			missing = append(missing, name)
		}
	}
	check("signable_message", r.SignableMessage != nil)
	check("payload_hash", r.PayloadHash != nil)
	check("sender_stark_key", r.SenderStarkKey != nil)
	check("sender_vault_id", r.SenderVaultId != nil)
	check("receiver_stark_key", r.ReceiverStarkKey != nil)
	check("receiver_vault_id", r.ReceiverVaultId != nil)
	check("asset_id", r.AssetId != nil)
	check("amount", r.Amount != nil)
	check("nonce", r.Nonce != nil)
	check("expiration_timestamp", r.ExpirationTimestamp != nil)
	return missing
}

// Check returns ErrInvalidServerResponse when any required field is absent.
func (r *GetSignableTransferResponse) Check() error {
	if r == nil {
		return fmt.Errorf("%w: empty body", domain.ErrInvalidServerResponse)
	}
	if missing := r.MissingFields(); len(missing) > 0 {
		return fmt.Errorf("%w: missing %v", domain.ErrInvalidServerResponse, missing)
	}
	return nil
}

// CreateTransferRequest is the signed submission body.
type CreateTransferRequest struct {
	SenderStarkKey      string `json:"sender_stark_key"`
	SenderVaultId       Scalar `json:"sender_vault_id"`
	ReceiverStarkKey    string `json:"receiver_stark_key"`
	ReceiverVaultId     Scalar `json:"receiver_vault_id"`
	AssetId             string `json:"asset_id"`
	Amount              string `json:"amount"`
	Nonce               Scalar `json:"nonce"`
	ExpirationTimestamp Scalar `json:"expiration_timestamp"`
	StarkSignature      string `json:"stark_signature"`
}

// CreateTransferParams carries the body plus the two header fields.
type CreateTransferParams struct {
	Request      CreateTransferRequest
	EthAddress   string
	EthSignature string
}

type CreateTransferResponse struct {
	SentSignature *string `json:"sent_signature,omitempty"`
	Status        *string `json:"status,omitempty"`
	Time          *int64  `json:"time,omitempty"`
	TransferId    *int64  `json:"transfer_id,omitempty"`
}

// TransferResult is what ExecuteTransfer hands back; absent fields stay absent.
type TransferResult struct {
	SentSignature *string `json:"sent_signature,omitempty"`
	Status        *string `json:"status,omitempty"`
	Time          *int64  `json:"time,omitempty"`
	TransferId    *int64  `json:"transfer_id,omitempty"`
}

type GetTransferRequest struct {
	Id string `json:"id" validate:"required"`
}

// Transfer is the status record of a submitted transfer
type Transfer struct {
	TransactionId int64   `json:"transaction_id"`
	Status        string  `json:"status"`
	User          string  `json:"user"`
	Receiver      string  `json:"receiver"`
	Token         Token   `json:"token"`
	Timestamp     *string `json:"timestamp,omitempty"`
}

// Api is the remote transfers service
type Api interface {
	GetSignableTransferV1(c ctx.Ctx, req GetSignableTransferRequest) (*GetSignableTransferResponse, error)
	CreateTransferV1(c ctx.Ctx, params CreateTransferParams) (*CreateTransferResponse, error)
	GetTransfer(c ctx.Ctx, req GetTransferRequest) (*Transfer, error)
}

type Usecase interface {
	ExecuteTransfer(c ctx.Ctx, signer wallet.Signer, req TransferRequest) (*TransferResult, error)
}
