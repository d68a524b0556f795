package api

import (
	"errors"
	"fmt"
	"net/http"

	errorsmod "cosmossdk.io/errors"
	"github.com/gin-gonic/gin"

	pooltypes "github.com/paw-chain/pawswap/x/pool/types"
	tokentypes "github.com/paw-chain/pawswap/x/token/types"
)

// errorStatuses maps registered module errors to HTTP status codes. The
// first match wins, so more specific errors come first.
var errorStatuses = []struct {
	err    *errorsmod.Error
	status int
}{
	{pooltypes.ErrUnauthorized, http.StatusForbidden},
	{tokentypes.ErrUnauthorized, http.StatusForbidden},

	{pooltypes.ErrPoolNotInitialized, http.StatusNotFound},
	{tokentypes.ErrTokenNotFound, http.StatusNotFound},

	{pooltypes.ErrPoolAlreadyInitialized, http.StatusConflict},
	{tokentypes.ErrTokenExists, http.StatusConflict},

	{pooltypes.ErrInsufficientReserves, http.StatusUnprocessableEntity},
	{pooltypes.ErrInsufficientLiquidity, http.StatusUnprocessableEntity},
	{pooltypes.ErrSlippageExceeded, http.StatusUnprocessableEntity},
	{pooltypes.ErrTransferFailed, http.StatusUnprocessableEntity},
	{tokentypes.ErrInsufficientBalance, http.StatusUnprocessableEntity},
	{tokentypes.ErrInsufficientAllowance, http.StatusUnprocessableEntity},

	{pooltypes.ErrInvalidAmount, http.StatusBadRequest},
	{pooltypes.ErrInvalidToken, http.StatusBadRequest},
	{pooltypes.ErrInvalidAddress, http.StatusBadRequest},
	{pooltypes.ErrInvalidParams, http.StatusBadRequest},
	{tokentypes.ErrInvalidAmount, http.StatusBadRequest},
	{tokentypes.ErrInvalidDenom, http.StatusBadRequest},
	{tokentypes.ErrInvalidAddress, http.StatusBadRequest},

	{pooltypes.ErrInvariantViolation, http.StatusInternalServerError},
}

// classifyError returns the HTTP status and a "codespace:code" identifier
// for err.
func classifyError(err error) (int, string) {
	for _, e := range errorStatuses {
		if errors.Is(err, e.err) {
			return e.status, fmt.Sprintf("%s:%d", e.err.Codespace(), e.err.ABCICode())
		}
	}
	return http.StatusInternalServerError, "INTERNAL_ERROR"
}

// writeError renders a keeper error as an ErrorResponse
func (s *Server) writeError(c *gin.Context, err error) {
	status, code := classifyError(err)
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", "path", c.FullPath(), "request_id", c.GetString(contextKeyRequestID), "error", err)
	}
	c.JSON(status, ErrorResponse{
		Error:   http.StatusText(status),
		Code:    code,
		Details: err.Error(),
	})
}

// writeBadRequest renders an input validation failure
func writeBadRequest(c *gin.Context, message string, err error) {
	c.JSON(http.StatusBadRequest, ErrorResponse{
		Error:   message,
		Code:    "INVALID_REQUEST",
		Details: err.Error(),
	})
}
