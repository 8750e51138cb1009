package imx

import (
	"net/http"
	"time"

	"github.com/x-xyz/goimx/base/metrics"
	"github.com/x-xyz/goimx/domain/collection"
	"github.com/x-xyz/goimx/domain/transfer"
	"github.com/x-xyz/goimx/service/cache"
)

const (
	MainnetApi = "https://api.x.immutable.com"
	RopstenApi = "https://api.ropsten.x.immutable.com"

	HeaderEthAddress   = "x-imx-eth-address"
	HeaderEthSignature = "x-imx-eth-signature"
	HeaderRequestId    = "X-Request-Id"
)

// Environments maps environment names accepted in config to api base urls.
var Environments = map[string]string{
	"mainnet": MainnetApi,
	"ropsten": RopstenApi,
}

// Client is the transport for the remote transfers and collections api.
// It never retries.
type Client interface {
	transfer.Api
	collection.Api
}

type ClientCfg struct {
	HttpClient http.Client
	Timeout    time.Duration
	BaseUrl    string
	Metrics    metrics.Service
	// CollectionCache is optional. Transfers are never cached.
	CollectionCache cache.Service
}

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
