package dto

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/taxrenew/backend/internal/domain/shared"
)

func TestGetHTTPStatus(t *testing.T) {
	tests := []struct {
		code     string
		expected int
	}{
		{ErrCodeInternal, http.StatusInternalServerError},
		{ErrCodeValidation, http.StatusBadRequest},
		{ErrCodeInvalidInput, http.StatusBadRequest},
		{ErrCodeInvalidDateFormat, http.StatusBadRequest},
		{ErrCodeRequestTooLarge, http.StatusRequestEntityTooLarge},
		{ErrCodeNotFound, http.StatusNotFound},
		{ErrCodeDuplicateRequest, http.StatusConflict},
		{ErrCodeStoreUnavailable, http.StatusServiceUnavailable},
		{ErrCodeTimeout, http.StatusServiceUnavailable},
		{ErrCodeRateLimited, http.StatusTooManyRequests},
		{"UNKNOWN_CODE", http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			assert.Equal(t, tt.expected, GetHTTPStatus(tt.code))
		})
	}
}

func TestNormalizeErrorCode_CoversDomainErrors(t *testing.T) {
	domainErrors := []*shared.DomainError{
		shared.ErrNotFound,
		shared.ErrInvalidInput,
		shared.ErrInvalidDateFormat,
		shared.ErrStoreUnavailable,
		shared.ErrConcurrentModification,
		shared.ErrDuplicateRequest,
	}
	for _, de := range domainErrors {
		t.Run(de.Code, func(t *testing.T) {
			code := NormalizeErrorCode(de.Code)
			assert.NotEqual(t, de.Code, code, "domain code should be mapped")
			_, ok := ErrorCodeHTTPStatus[code]
			assert.True(t, ok, "mapped code %s has no status", code)
		})
	}

	assert.Equal(t, ErrCodeNotFound, NormalizeErrorCode(ErrCodeNotFound))
	assert.Equal(t, "CUSTOM", NormalizeErrorCode("CUSTOM"))
}

func TestIsRetryableStatus(t *testing.T) {
	assert.True(t, IsRetryableStatus(http.StatusServiceUnavailable))
	assert.True(t, IsRetryableStatus(http.StatusTooManyRequests))
	assert.False(t, IsRetryableStatus(http.StatusBadRequest))
	assert.False(t, IsRetryableStatus(http.StatusInternalServerError))
}

func TestResponseJSON(t *testing.T) {
	t.Run("success omits error", func(t *testing.T) {
		b, err := json.Marshal(NewSuccessResponse(map[string]int{"deletedCount": 3}))
		require.NoError(t, err)
		assert.JSONEq(t, `{"success":true,"data":{"deletedCount":3}}`, string(b))
	})

	t.Run("error carries request id", func(t *testing.T) {
		b, err := json.Marshal(NewErrorResponseWithRequestID(ErrCodeInvalidInput, "licensePlate is required", "req-1"))
		require.NoError(t, err)
		assert.JSONEq(t, `{"success":false,"error":{"code":"ERR_INVALID_INPUT","message":"licensePlate is required","request_id":"req-1"}}`, string(b))
	})

	t.Run("validation details", func(t *testing.T) {
		resp := NewValidationErrorResponse("Request validation failed", "", []ValidationDetail{
			{Field: "licensePlates", Message: "This field is required"},
		})
		assert.Equal(t, ErrCodeValidation, resp.Error.Code)
		require.Len(t, resp.Error.Details, 1)
		assert.Equal(t, "licensePlates", resp.Error.Details[0].Field)
	})
}
