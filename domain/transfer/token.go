package transfer

import (
	"fmt"

	"github.com/x-xyz/goimx/base/validator"
	"github.com/x-xyz/goimx/domain"
)

type TokenType string

const (
	TokenTypeETH    TokenType = "ETH"
	TokenTypeERC20  TokenType = "ERC20"
	TokenTypeERC721 TokenType = "ERC721"
)

// Token describes the asset being moved
type Token struct {
	Type TokenType `json:"type" validate:"required,oneof=ETH ERC20 ERC721"`
	Data TokenData `json:"data"`
}

type TokenData struct {
	TokenId      string         `json:"token_id,omitempty"`
	TokenAddress domain.Address `json:"token_address,omitempty"`
	Decimals     *int           `json:"decimals,omitempty"`
}

// Validate enforces the per type data requirements
func (t Token) Validate() error {
	switch t.Type {
	case TokenTypeETH:
		return nil
	case TokenTypeERC20:
		if !validator.IsValidAddress(string(t.Data.TokenAddress)) {
			return fmt.Errorf("%w: erc20 token address %q", domain.ErrBadParamInput, t.Data.TokenAddress)
		}
		return nil
	case TokenTypeERC721:
		if !validator.IsValidAddress(string(t.Data.TokenAddress)) {
			return fmt.Errorf("%w: erc721 token address %q", domain.ErrBadParamInput, t.Data.TokenAddress)
		}
		if t.Data.TokenId == "" {
			return fmt.Errorf("%w: erc721 token id is required", domain.ErrBadParamInput)
		}
		return nil
	}
	return fmt.Errorf("%w: unknown token type %q", domain.ErrBadParamInput, t.Type)
}
