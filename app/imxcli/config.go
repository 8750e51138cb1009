package main

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/x-xyz/goimx/domain/wallet"
	"github.com/x-xyz/goimx/service/ethsigner"
	"github.com/x-xyz/goimx/service/imx"
)

type Config struct {
	Imx    ImxConfig    `mapstructure:"imx"`
	Wallet WalletConfig `mapstructure:"wallet"`
	Log    LogConfig    `mapstructure:"log"`
}

type ImxConfig struct {
	Env     string        `mapstructure:"env"`
	BaseUrl string        `mapstructure:"base_url"`
	Timeout time.Duration `mapstructure:"timeout"`
}

type WalletConfig struct {
	PrivateKey string `mapstructure:"private_key"`
	Keystore   string `mapstructure:"keystore"`
	Password   string `mapstructure:"password"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
}

// flagKeys binds common command line flags to config keys.
var flagKeys = map[string]string{
	"config":      "config",
	"env":         "imx.env",
	"base-url":    "imx.base_url",
	"timeout":     "imx.timeout",
	"private-key": "wallet.private_key",
	"keystore":    "wallet.keystore",
	"password":    "wallet.password",
	"log-level":   "log.level",
}

func addCommonFlags(fs *pflag.FlagSet) {
	fs.String("config", "", "yaml config file")
	fs.String("env", "ropsten", "api environment: ropsten or mainnet")
	fs.String("base-url", "", "api base url, overrides --env")
	fs.Duration("timeout", 30*time.Second, "timeout of each api request")
	fs.String("private-key", "", "hex private key of the L1 wallet")
	fs.String("keystore", "", "keystore file of the L1 wallet")
	fs.String("password", "", "keystore password")
	fs.String("log-level", "info", "debug, info, warn or error")
}

// LoadConfig merges defaults, the optional config file, environment variables
// named after the keys (IMX_BASE_URL, WALLET_PRIVATE_KEY, ...) and flags, in
// increasing precedence.
func LoadConfig(v *viper.Viper, fs *pflag.FlagSet) (Config, error) {
	cfg := Config{}
	for flag, key := range flagKeys {
		if f := fs.Lookup(flag); f != nil {
			if err := v.BindPFlag(key, f); err != nil {
				return cfg, err
			}
		}
	}
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("imx.env", "ropsten")
	v.SetDefault("imx.timeout", 30*time.Second)
	v.SetDefault("log.level", "info")

	if file := v.GetString("config"); file != "" {
		v.SetConfigType("yaml")
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return cfg, fmt.Errorf("failed to read config %s: %w", file, err)
		}
	}

	if err := v.Unmarshal(&cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func (c ImxConfig) Url() (string, error) {
	if c.BaseUrl != "" {
		return c.BaseUrl, nil
	}
	url, ok := imx.Environments[c.Env]
	if !ok {
		return "", fmt.Errorf("unknown env %q", c.Env)
	}
	return url, nil
}

func (c WalletConfig) Signer() (wallet.Signer, error) {
	switch {
	case c.PrivateKey != "":
		return ethsigner.NewFromHex(c.PrivateKey)
	case c.Keystore != "":
		keyJson, err := os.ReadFile(c.Keystore)
		if err != nil {
			return nil, err
		}
		return ethsigner.NewFromKeystore(keyJson, c.Password)
	}
	return nil, errors.New("no wallet configured: set --private-key or --keystore")
}
