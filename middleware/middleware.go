package middleware

import (
	"fmt"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/x-xyz/goimx/base/ctx"
	"github.com/x-xyz/goimx/base/delivery"
	"github.com/x-xyz/goimx/base/log"
	"github.com/x-xyz/goimx/base/metrics"
	"github.com/x-xyz/goimx/base/validator"
	"github.com/x-xyz/goimx/domain"
)

// GoMiddleware represent the data-struct for middleware
type GoMiddleware struct {
	metrics metrics.Service
}

// InitMiddleware initialize the middleware
func InitMiddleware() *GoMiddleware {
	return &GoMiddleware{metrics: metrics.New("http")}
}

// CORS will handle the CORS middleware
func (m *GoMiddleware) CORS(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		c.Response().Header().Set("Access-Control-Allow-Origin", "*")
		return next(c)
	}
}

// AddContext stores a ctx.Ctx tagged with the request id under "ctx"
func (m *GoMiddleware) AddContext() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) (err error) {
			requestId := c.Request().Header.Get(echo.HeaderXRequestID)
			if requestId == "" {
				requestId = c.Response().Header().Get(echo.HeaderXRequestID)
			}
			cont := ctx.WithValue(ctx.From(c.Request().Context()), "requestID", requestId)
			c.Set("ctx", cont)
			return next(c)
		}
	}
}

// ResponseLogger logs response for every request
func (m *GoMiddleware) ResponseLogger() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			defer m.metrics.BumpTime("request.time", "method:"+c.Request().Method, "path:"+c.Path()).End()

			start := time.Now()

			err := next(c)
			if err != nil {
				c.Error(err)
			}

			req := c.Request()
			res := c.Response()

			fields := log.Fields{
				"ms":         time.Since(start).Seconds() * 1000,
				"httpStatus": res.Status,
				"host":       req.Host,
				"remoteIP":   c.RealIP(),
				"uri":        req.URL.Path,
				"httpMethod": req.Method,
				"size":       res.Size,
				"userAgent":  req.UserAgent(),
			}

			if res.Status >= 400 {
				fields["nextErr"] = err
				m.metrics.BumpSum("request.err", 1, fmt.Sprintf("status:%d", res.Status))
			}

			cont, ok := c.Get("ctx").(ctx.Ctx)
			if !ok {
				cont = ctx.Background()
			}
			cont.WithFields(fields).Info("response")
			return nil
		}
	}
}

func IsValidAddress(param string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) (err error) {
			if !validator.IsValidAddress(c.Param(param)) {
				return delivery.MakeErrorResp(c, fmt.Errorf("%w: invalid address", domain.ErrBadParamInput))
			}
			return next(c)
		}
	}
}
