package provider

import (
	"errors"
	"time"

	"github.com/x-xyz/goimx/base/ctx"
)

var (
	ErrNotFound = errors.New("Cache not found")
)

// Provider is the raw byte store behind cache.Service.
type Provider interface {
	Get(c ctx.Ctx, key string) ([]byte, time.Duration, error)
	Set(c ctx.Ctx, key string, value []byte, ttl time.Duration) error
}
