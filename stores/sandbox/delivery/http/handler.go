package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/x-xyz/goimx/base/ctx"
	"github.com/x-xyz/goimx/base/delivery"
	"github.com/x-xyz/goimx/base/log"
	"github.com/x-xyz/goimx/domain"
	"github.com/x-xyz/goimx/domain/collection"
	"github.com/x-xyz/goimx/domain/sandbox"
	"github.com/x-xyz/goimx/domain/transfer"
	"github.com/x-xyz/goimx/middleware"
	"github.com/x-xyz/goimx/service/imx"
)

type handler struct {
	sandbox sandbox.Usecase
}

// New registers the subset of the remote api the SDK talks to.
func New(e *echo.Echo, us sandbox.Usecase) {
	h := &handler{
		sandbox: us,
	}

	v1 := e.Group("/v1")
	v1.POST("/users", h.registerUser)
	v1.POST("/signable-transfer-details", h.getSignableTransfer)
	v1.POST("/transfers", h.createTransfer)
	v1.GET("/transfers/:id", h.getTransfer)
	v1.POST("/collections", h.registerCollection)
	v1.GET("/collections/:address", h.getCollection, middleware.IsValidAddress("address"))
}

func (h *handler) registerUser(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)
	user := sandbox.User{}
	if err := c.Bind(&user); err != nil {
		return delivery.MakeErrorResp(c, domain.ErrBadParamInput)
	}
	if err := h.sandbox.RegisterUser(ctx, user); err != nil {
		ctx.WithFields(log.Fields{
			"user": user,
			"err":  err,
		}).Warn("sandbox.RegisterUser failed")
		return delivery.MakeErrorResp(c, err)
	}
	return c.JSON(http.StatusOK, user)
}

func (h *handler) getSignableTransfer(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)
	req := transfer.GetSignableTransferRequest{}
	if err := c.Bind(&req); err != nil {
		return delivery.MakeErrorResp(c, domain.ErrBadParamInput)
	}
	resp, err := h.sandbox.GetSignableTransferV1(ctx, req)
	if err != nil {
		ctx.WithFields(log.Fields{
			"req": req,
			"err": err,
		}).Warn("sandbox.GetSignableTransferV1 failed")
		return delivery.MakeErrorResp(c, err)
	}
	return c.JSON(http.StatusOK, resp)
}

func (h *handler) createTransfer(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)
	req := transfer.CreateTransferRequest{}
	if err := c.Bind(&req); err != nil {
		return delivery.MakeErrorResp(c, domain.ErrBadParamInput)
	}
	resp, err := h.sandbox.CreateTransferV1(ctx, transfer.CreateTransferParams{
		Request:      req,
		EthAddress:   c.Request().Header.Get(imx.HeaderEthAddress),
		EthSignature: c.Request().Header.Get(imx.HeaderEthSignature),
	})
	if err != nil {
		ctx.WithFields(log.Fields{
			"nonce": req.Nonce.String(),
			"err":   err,
		}).Warn("sandbox.CreateTransferV1 failed")
		return delivery.MakeErrorResp(c, err)
	}
	return c.JSON(http.StatusOK, resp)
}

func (h *handler) getTransfer(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)
	resp, err := h.sandbox.GetTransfer(ctx, transfer.GetTransferRequest{Id: c.Param("id")})
	if err != nil {
		return delivery.MakeErrorResp(c, err)
	}
	return c.JSON(http.StatusOK, resp)
}

func (h *handler) registerCollection(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)
	col := collection.Collection{}
	if err := c.Bind(&col); err != nil {
		return delivery.MakeErrorResp(c, domain.ErrBadParamInput)
	}
	if err := h.sandbox.RegisterCollection(ctx, col); err != nil {
		return delivery.MakeErrorResp(c, err)
	}
	return c.JSON(http.StatusOK, col)
}

func (h *handler) getCollection(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)
	resp, err := h.sandbox.GetCollection(ctx, domain.Address(c.Param("address")))
	if err != nil {
		return delivery.MakeErrorResp(c, err)
	}
	return c.JSON(http.StatusOK, resp)
}
