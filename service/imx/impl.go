package imx

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	bCtx "github.com/x-xyz/goimx/base/ctx"
	"github.com/x-xyz/goimx/base/log"
	"github.com/x-xyz/goimx/base/metrics"
	"github.com/x-xyz/goimx/domain"
	"github.com/x-xyz/goimx/domain/collection"
	"github.com/x-xyz/goimx/domain/transfer"
	"github.com/x-xyz/goimx/service/cache"
)

func NewClient(cfg *ClientCfg) Client {
	baseUrl := cfg.BaseUrl
	if baseUrl == "" {
		baseUrl = RopstenApi
	}
	m := cfg.Metrics
	if m == nil {
		m = metrics.New("imx")
	}
	return &client{
		client:  cfg.HttpClient,
		timeout: cfg.Timeout,
		baseUrl: strings.TrimSuffix(baseUrl, "/"),
		metrics: m,
		cache:   cfg.CollectionCache,
	}
}

type client struct {
	client  http.Client
	timeout time.Duration
	baseUrl string
	metrics metrics.Service
	cache   cache.Service
}

func (c *client) GetSignableTransferV1(ctx bCtx.Ctx, req transfer.GetSignableTransferRequest) (*transfer.GetSignableTransferResponse, error) {
	resp := &transfer.GetSignableTransferResponse{}
	if err := c.do(ctx, "GetSignableTransferV1", http.MethodPost, "/v1/signable-transfer-details", nil, req, resp); err != nil {
		return nil, err
	}
	return resp, nil
}

func (c *client) CreateTransferV1(ctx bCtx.Ctx, params transfer.CreateTransferParams) (*transfer.CreateTransferResponse, error) {
	header := http.Header{}
	header.Set(HeaderEthAddress, params.EthAddress)
	header.Set(HeaderEthSignature, params.EthSignature)
	resp := &transfer.CreateTransferResponse{}
	if err := c.do(ctx, "CreateTransferV1", http.MethodPost, "/v1/transfers", header, params.Request, resp); err != nil {
		return nil, err
	}
	return resp, nil
}

func (c *client) GetTransfer(ctx bCtx.Ctx, req transfer.GetTransferRequest) (*transfer.Transfer, error) {
	resp := &transfer.Transfer{}
	path := fmt.Sprintf("/v1/transfers/%s", url.PathEscape(req.Id))
	if err := c.do(ctx, "GetTransfer", http.MethodGet, path, nil, nil, resp); err != nil {
		return nil, err
	}
	return resp, nil
}

func (c *client) GetCollection(ctx bCtx.Ctx, address domain.Address) (*collection.Collection, error) {
	if c.cache == nil {
		return c.getCollection(ctx, address)
	}
	resp := &collection.Collection{}
	if err := c.cache.GetByFunc(ctx, address.ToLowerStr(), resp, func() (interface{}, error) {
		return c.getCollection(ctx, address)
	}); err != nil {
		return nil, err
	}
	return resp, nil
}

func (c *client) getCollection(ctx bCtx.Ctx, address domain.Address) (*collection.Collection, error) {
	resp := &collection.Collection{}
	path := fmt.Sprintf("/v1/collections/%s", url.PathEscape(address.ToLowerStr()))
	if err := c.do(ctx, "GetCollection", http.MethodGet, path, nil, nil, resp); err != nil {
		return nil, err
	}
	return resp, nil
}

// do sends in as the json body when set and decodes a 2xx body into out.
// Every failure comes back as a *domain.TransportError.
func (c *client) do(ctx bCtx.Ctx, op, method, path string, header http.Header, in, out interface{}) error {
	defer c.metrics.BumpTime("request.latency", "op:"+op).End()
	ctx, cancel := bCtx.WithTimeout(ctx, c.timeout)
	defer cancel()

	url := c.baseUrl + path
	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			ctx.WithFields(log.Fields{
				"url": url,
				"err": err,
			}).Error("json.Marshal failed")
			return &domain.TransportError{Op: op, Err: err}
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		ctx.WithFields(log.Fields{
			"url": url,
			"err": err,
		}).Error("NewRequestWithContext failed")
		return &domain.TransportError{Op: op, Err: err}
	}
	for k, vs := range header {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	requestId := uuid.NewString()
	req.Header.Set(HeaderRequestId, requestId)

	resp, err := c.client.Do(req)
	if err != nil {
		c.metrics.BumpSum("request.err", 1, "op:"+op)
		ctx.WithFields(log.Fields{
			"url":       url,
			"requestId": requestId,
			"err":       err,
		}).Error("client.Do failed")
		return &domain.TransportError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		ctx.WithFields(log.Fields{
			"url": url,
			"err": err,
		}).Error("failed to read body")
		return &domain.TransportError{Op: op, StatusCode: resp.StatusCode, Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.metrics.BumpSum("request.err", 1, "op:"+op, fmt.Sprintf("status:%d", resp.StatusCode))
		errResp := ErrorResponse{}
		_ = json.Unmarshal(data, &errResp)
		ctx.WithFields(log.Fields{
			"url":        url,
			"requestId":  requestId,
			"statusCode": resp.StatusCode,
			"code":       errResp.Code,
		}).Error("resp.StatusCode not 2xx")
		return &domain.TransportError{
			Op:         op,
			StatusCode: resp.StatusCode,
			Code:       errResp.Code,
			Message:    errResp.Message,
		}
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		ctx.WithFields(log.Fields{
			"url": url,
			"err": err,
		}).Error("json.Unmarshal failed")
		return &domain.TransportError{Op: op, StatusCode: resp.StatusCode, Err: err}
	}
	return nil
}
