// Package handler holds the gin handlers of the renewal API.
package handler

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/taxrenew/backend/internal/domain/shared"
	"github.com/taxrenew/backend/internal/interfaces/http/dto"
	"github.com/taxrenew/backend/internal/interfaces/http/middleware"
)

// BaseHandler provides common handler utilities
type BaseHandler struct{}

func getRequestID(c *gin.Context) string {
	if id := middleware.GetRequestID(c); id != "" {
		return id
	}
	return c.GetHeader(middleware.RequestIDHeader)
}

// Success sends a success response
func (h *BaseHandler) Success(c *gin.Context, data any) {
	c.JSON(http.StatusOK, dto.NewSuccessResponse(data))
}

// Error sends an error response with the appropriate status code
func (h *BaseHandler) Error(c *gin.Context, statusCode int, code, message string) {
	if dto.IsRetryableStatus(statusCode) {
		c.Header("Retry-After", strconv.Itoa(dto.RetryAfterSeconds))
	}
	c.JSON(statusCode, dto.NewErrorResponseWithRequestID(code, message, getRequestID(c)))
}

// ErrorWithCode sends an error response, deriving status code from error code
func (h *BaseHandler) ErrorWithCode(c *gin.Context, code, message string) {
	h.Error(c, dto.GetHTTPStatus(code), code, message)
}

// BadRequest sends a 400 bad request response
func (h *BaseHandler) BadRequest(c *gin.Context, message string) {
	h.Error(c, http.StatusBadRequest, dto.ErrCodeBadRequest, message)
}

// InternalError sends a 500 internal server error response
func (h *BaseHandler) InternalError(c *gin.Context, message string) {
	h.Error(c, http.StatusInternalServerError, dto.ErrCodeInternal, message)
}

// HandleError maps domain errors to their HTTP status. A request deadline
// that escaped the services is a 503. Anything else is a 500.
func (h *BaseHandler) HandleError(c *gin.Context, err error) {
	if err == nil {
		return
	}
	_ = c.Error(err)

	var domainErr *shared.DomainError
	if errors.As(err, &domainErr) {
		h.ErrorWithCode(c, dto.NormalizeErrorCode(domainErr.Code), domainErr.Message)
		return
	}
	if errors.Is(err, context.DeadlineExceeded) {
		h.ErrorWithCode(c, dto.ErrCodeTimeout, "Request timed out")
		return
	}

	h.InternalError(c, "An unexpected error occurred")
}

// BindJSON decodes the body into obj and writes the error response on
// failure. With allowEmpty an absent body leaves obj at its zero value.
func (h *BaseHandler) BindJSON(c *gin.Context, obj any, allowEmpty bool) bool {
	err := c.ShouldBindJSON(obj)
	if err == nil {
		return true
	}

	var (
		maxBytesErr   *http.MaxBytesError
		validationErr validator.ValidationErrors
		syntaxErr     *json.SyntaxError
		typeErr       *json.UnmarshalTypeError
	)
	switch {
	case errors.Is(err, io.EOF) && allowEmpty:
		return true
	case errors.As(err, &maxBytesErr):
		h.ErrorWithCode(c, dto.ErrCodeRequestTooLarge, "Request body exceeds maximum allowed size")
	case errors.As(err, &validationErr):
		middleware.HandleValidationError(c, err)
	case errors.As(err, &syntaxErr), errors.As(err, &typeErr),
		errors.Is(err, io.EOF), errors.Is(err, io.ErrUnexpectedEOF):
		h.ErrorWithCode(c, dto.ErrCodeInvalidJSON, "Request body is not valid JSON")
	default:
		h.BadRequest(c, err.Error())
	}
	return false
}
