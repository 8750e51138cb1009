package delivery

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/x-xyz/goimx/domain"
)

const (
	CodeBadRequest       = "bad_request"
	CodeNotFound         = "resource_not_found"
	CodeInvalidSignature = "invalid_signature"
	CodeInternal         = "internal_error"
)

// ErrorResponse is the error body every endpoint answers with.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// StatusOf maps domain errors to an http status and error code.
func StatusOf(err error) (int, string) {
	switch {
	case errors.Is(err, domain.ErrBadParamInput):
		return http.StatusBadRequest, CodeBadRequest
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound, CodeNotFound
	case errors.Is(err, domain.ErrInvalidSignature):
		return http.StatusUnauthorized, CodeInvalidSignature
	}
	return http.StatusInternalServerError, CodeInternal
}

func MakeErrorResp(c echo.Context, err error) error {
	status, code := StatusOf(err)
	return c.JSON(status, ErrorResponse{Code: code, Message: err.Error()})
}

// MakeJsonResp writes data as is, or as an ErrorResponse when data is an error.
func MakeJsonResp(c echo.Context, status int, data interface{}) error {
	if err, ok := data.(error); ok {
		return MakeErrorResp(c, err)
	}
	return c.JSON(status, data)
}
