package cache

import (
	"errors"
	"time"

	"github.com/x-xyz/goimx/base/ctx"
	"github.com/x-xyz/goimx/service/cache/provider"
)

var (
	ErrNotFound = errors.New("Cache not found")
)

// OneTimeGetter loads the value on a miss. It must return a pointer.
type OneTimeGetter func() (interface{}, error)

type Serializer func(interface{}) ([]byte, error)

type Deserializer func([]byte, interface{}) error

// Service stores serialized values under "<Pfx>:<key>" for Ttl. It backs
// read-through lookups of remote resources that rarely change.
type Service interface {
	GetByFunc(c ctx.Ctx, key string, container interface{}, getter OneTimeGetter) error
	Get(c ctx.Ctx, key string, container interface{}) error
	Set(c ctx.Ctx, key string, value interface{}) error
}

type ServiceConfig struct {
	Ttl time.Duration
	// Pfx namespaces keys when several services share one provider.
	Pfx         string
	Cache       provider.Provider
	Serialize   Serializer
	Deserialize Deserializer
}
