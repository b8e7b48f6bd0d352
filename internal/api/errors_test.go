package api

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifyStatus(t *testing.T) {
	tests := []struct {
		status       int
		isAuth       bool
		isValidation bool
	}{
		{http.StatusUnauthorized, true, false},
		{http.StatusForbidden, true, false},
		{http.StatusBadRequest, false, true},
		{http.StatusNotFound, false, false},
		{http.StatusInternalServerError, false, false},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("%d", tt.status), func(t *testing.T) {
			err := classifyStatus(tt.status, "msg")
			assert.Equal(t, tt.isAuth, IsAuthError(err))
			assert.Equal(t, tt.isValidation, IsValidationError(err))
			assert.False(t, IsNetworkError(err))
		})
	}
}

func TestErrorClassSurvivesWrapping(t *testing.T) {
	err := classifyStatus(http.StatusUnauthorized, "expired")
	wrapped := fmt.Errorf("login: %w", err)

	assert.True(t, IsAuthError(wrapped))
	assert.Equal(t, "expired", ServerMessage(wrapped))
}

func TestNetworkErrorUnwrap(t *testing.T) {
	cause := errors.New("connection refused")
	err := &NetworkError{Op: "GET /stories", Err: cause}

	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "GET /stories")
}

func TestServerMessage_NoAPIError(t *testing.T) {
	assert.Empty(t, ServerMessage(errors.New("plain")))
	assert.Empty(t, ServerMessage(nil))
}

func TestAPIErrorMessageFormatting(t *testing.T) {
	withMsg := &APIError{StatusCode: 400, Message: "bad title"}
	assert.Equal(t, "server returned 400: bad title", withMsg.Error())

	withoutMsg := &APIError{StatusCode: 502}
	assert.Equal(t, "server returned 502", withoutMsg.Error())
}
