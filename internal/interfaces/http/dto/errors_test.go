package dto

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetHTTPStatus(t *testing.T) {
	tests := []struct {
		code   string
		status int
	}{
		{ErrCodeNotFound, http.StatusNotFound},
		{ErrCodeInvalidState, http.StatusUnprocessableEntity},
		{ErrCodeEmptyInventory, http.StatusUnprocessableEntity},
		{ErrCodeValidation, http.StatusBadRequest},
		{ErrCodeAlreadyExists, http.StatusConflict},
		{"ERR_SOMETHING_ELSE", http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			assert.Equal(t, tt.status, GetHTTPStatus(tt.code))
		})
	}
}

func TestNormalizeErrorCode(t *testing.T) {
	t.Run("maps domain codes to transport codes", func(t *testing.T) {
		assert.Equal(t, ErrCodeInvalidState, NormalizeErrorCode("INVALID_TRANSITION"))
		assert.Equal(t, ErrCodeEmptyInventory, NormalizeErrorCode("EMPTY_INVENTORY"))
		assert.Equal(t, ErrCodeValidationRequired, NormalizeErrorCode("EMPTY_MANAGER_NOTE"))
		assert.Equal(t, ErrCodeNotFound, NormalizeErrorCode("NOT_FOUND"))
	})

	t.Run("passes unknown codes through", func(t *testing.T) {
		assert.Equal(t, "CUSTOM_CODE", NormalizeErrorCode("CUSTOM_CODE"))
	})
}
