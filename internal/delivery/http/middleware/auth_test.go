package middleware

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"eventdesk/internal/delivery/http/helpers"
)

var testLogger = slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError}))

type fakeVerifier struct {
	userID string
	err    error

	lastToken string
}

func (f *fakeVerifier) Verify(token string) (string, error) {
	f.lastToken = token
	if f.err != nil {
		return "", f.err
	}
	return f.userID, nil
}

func TestRequireAuth(t *testing.T) {
	tests := []struct {
		name       string
		header     string
		verifyErr  error
		wantStatus int
		wantMsg    string
	}{
		{
			name:       "missing header",
			header:     "",
			wantStatus: http.StatusUnauthorized,
			wantMsg:    "missing authorization header",
		},
		{
			name:       "wrong scheme",
			header:     "Basic abc123",
			wantStatus: http.StatusUnauthorized,
			wantMsg:    "invalid authorization format",
		},
		{
			name:       "empty token",
			header:     "Bearer ",
			wantStatus: http.StatusUnauthorized,
			wantMsg:    "missing token",
		},
		{
			name:       "verifier rejects token",
			header:     "Bearer bad-token",
			verifyErr:  errors.New("signature invalid"),
			wantStatus: http.StatusUnauthorized,
			wantMsg:    "invalid or expired token",
		},
		{
			name:       "valid token reaches the handler",
			header:     "Bearer good-token",
			wantStatus: http.StatusOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			verifier := &fakeVerifier{userID: "user-123", err: tt.verifyErr}

			var gotUserID string
			var handlerCalled bool
			next := func(w http.ResponseWriter, r *http.Request) {
				handlerCalled = true
				gotUserID, _ = UserIDFromContext(r.Context())
				w.WriteHeader(http.StatusOK)
			}

			req := httptest.NewRequest(http.MethodGet, "/events", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rr := httptest.NewRecorder()
			RequireAuth(verifier, testLogger)(next)(rr, req)

			require.Equal(t, tt.wantStatus, rr.Code)
			if tt.wantStatus != http.StatusOK {
				require.False(t, handlerCalled, "handler must not run on auth failure")
				var envelope helpers.APIResponse
				require.NoError(t, json.NewDecoder(rr.Body).Decode(&envelope))
				require.NotNil(t, envelope.Error)
				assert.Equal(t, helpers.ErrCodeUnauthorized, envelope.Error.Code)
				assert.Equal(t, tt.wantMsg, envelope.Error.Message)
				return
			}
			require.True(t, handlerCalled)
			assert.Equal(t, "user-123", gotUserID)
			assert.Equal(t, "good-token", verifier.lastToken)
		})
	}
}

func TestUserIDFromContext_Absent(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	_, ok := UserIDFromContext(req.Context())
	assert.False(t, ok)
}
