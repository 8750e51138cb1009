package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/suite"

	"github.com/x-xyz/goimx/base/ctx"
)

type middlewareSuite struct {
	suite.Suite
	e *echo.Echo
}

func TestMiddlewareSuite(t *testing.T) {
	suite.Run(t, new(middlewareSuite))
}

func (s *middlewareSuite) SetupTest() {
	m := InitMiddleware()
	s.e = echo.New()
	s.e.Use(m.ResponseLogger())
	s.e.Use(m.AddContext())
	s.e.GET("/ctx", func(c echo.Context) error {
		cont := c.Get("ctx").(ctx.Ctx)
		return c.String(http.StatusOK, cont.Value("requestID").(string))
	})
	s.e.GET("/addr/:address", func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	}, IsValidAddress("address"))
}

func (s *middlewareSuite) TestAddContext() {
	req := httptest.NewRequest(http.MethodGet, "/ctx", nil)
	req.Header.Set(echo.HeaderXRequestID, "req-1")
	rec := httptest.NewRecorder()
	s.e.ServeHTTP(rec, req)
	s.Equal(http.StatusOK, rec.Code)
	s.Equal("req-1", rec.Body.String())
}

func (s *middlewareSuite) TestIsValidAddress() {
	rec := httptest.NewRecorder()
	s.e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/addr/0xabcdef0000000000000000000000000000000001", nil))
	s.Equal(http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	s.e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/addr/nope", nil))
	s.Equal(http.StatusBadRequest, rec.Code)
	s.Contains(rec.Body.String(), "bad_request")
}
