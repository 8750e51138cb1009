// Command imxcli burns tokens and looks up transfers and collections.
package main

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/x-xyz/goimx/base/ctx"
	"github.com/x-xyz/goimx/base/log"
	"github.com/x-xyz/goimx/domain"
	"github.com/x-xyz/goimx/domain/burn"
	"github.com/x-xyz/goimx/domain/transfer"
	"github.com/x-xyz/goimx/service/imx"
	"github.com/x-xyz/goimx/service/stark"
	burn_usecase "github.com/x-xyz/goimx/stores/burn/usecase"
	transfer_usecase "github.com/x-xyz/goimx/stores/transfer/usecase"
)

const usage = `usage: imxcli <command> [flags]

commands:
  burn            burn a token: --token-type --token-id --token-address --amount
  get-burn        show a burn transfer: --id
  get-collection  show a collection: --address
  stark-key       print the stark key derived from the wallet
`

func main() {
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}
	if err := run(ctx.Background(), viper.GetViper(), os.Args[1], os.Args[2:], os.Stdout); err != nil {
		log.Log().WithFields(log.Fields{
			"command": os.Args[1],
			"err":     err,
		}).Error("imxcli failed")
		os.Exit(1)
	}
}

func run(c ctx.Ctx, v *viper.Viper, command string, args []string, out io.Writer) error {
	fs := pflag.NewFlagSet(command, pflag.ContinueOnError)
	addCommonFlags(fs)

	var (
		tokenType    = fs.String("token-type", string(transfer.TokenTypeERC721), "ETH, ERC20 or ERC721")
		tokenId      = fs.String("token-id", "", "ERC721 token id")
		tokenAddress = fs.String("token-address", "", "token contract address")
		decimals     = fs.Int("decimals", 0, "ERC20 decimals")
		amount       = fs.String("amount", "1", "amount to burn")
		id           = fs.String("id", "", "transfer id")
		address      = fs.String("address", "", "collection address")
	)
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, err := LoadConfig(v, fs)
	if err != nil {
		return err
	}
	if err := log.SetLevel(cfg.Log.Level); err != nil {
		return err
	}
	url, err := cfg.Imx.Url()
	if err != nil {
		return err
	}
	client := imx.NewClient(&imx.ClientCfg{
		HttpClient: http.Client{},
		Timeout:    cfg.Imx.Timeout,
		BaseUrl:    url,
	})
	deriver := stark.NewDeriver(nil)
	burnUC := burn_usecase.New(&burn_usecase.BurnUseCaseCfg{
		TransferUC: transfer_usecase.New(&transfer_usecase.TransferUseCaseCfg{
			Api:     client,
			Deriver: deriver,
		}),
		Api: client,
	})

	switch command {
	case "burn":
		signer, err := cfg.Wallet.Signer()
		if err != nil {
			return err
		}
		sender, err := signer.GetAddress(c)
		if err != nil {
			return err
		}
		token := transfer.Token{
			Type: transfer.TokenType(*tokenType),
			Data: transfer.TokenData{
				TokenId:      *tokenId,
				TokenAddress: domain.Address(*tokenAddress),
			},
		}
		if fs.Changed("decimals") {
			token.Data.Decimals = decimals
		}
		res, err := burnUC.Burn(c, signer, burn.Request{
			Sender: domain.Address(sender),
			Token:  token,
			Amount: *amount,
		})
		if err != nil {
			return err
		}
		return printJson(out, res)

	case "get-burn":
		if *id == "" {
			return fmt.Errorf("%w: --id is required", domain.ErrBadParamInput)
		}
		res, err := burnUC.GetBurn(c, transfer.GetTransferRequest{Id: *id})
		if err != nil {
			return err
		}
		return printJson(out, res)

	case "get-collection":
		if *address == "" {
			return fmt.Errorf("%w: --address is required", domain.ErrBadParamInput)
		}
		res, err := client.GetCollection(c, domain.Address(*address))
		if err != nil {
			return err
		}
		return printJson(out, res)

	case "stark-key":
		signer, err := cfg.Wallet.Signer()
		if err != nil {
			return err
		}
		address, err := signer.GetAddress(c)
		if err != nil {
			return err
		}
		starkSigner, err := deriver.Derive(c, signer)
		if err != nil {
			return err
		}
		return printJson(out, map[string]string{
			"address":   address,
			"stark_key": starkSigner.StarkKey(),
		})
	}
	return fmt.Errorf("unknown command %q\n%s", command, usage)
}

func printJson(out io.Writer, v interface{}) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
