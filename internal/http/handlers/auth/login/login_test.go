package login_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/product-catalog/internal/http/handlers/auth/login"
	services "github.com/magabrotheeeer/product-catalog/internal/services/auth"
)

type MockService struct {
	mock.Mock
}

func (m *MockService) Login(ctx context.Context, username, password string) (string, error) {
	args := m.Called(ctx, username, password)
	return args.String(0), args.Error(1)
}

func newNoopLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))
}

func TestLoginHandler(t *testing.T) {
	tests := []struct {
		name           string
		body           string
		mockSetup      func(m *MockService)
		expectedStatus int
		expectToken    bool
	}{
		{
			name: "successful login",
			body: `{"username":"admin","password":"admin123"}`,
			mockSetup: func(m *MockService) {
				m.On("Login", mock.Anything, "admin", "admin123").
					Return("some.jwt.token", nil)
			},
			expectedStatus: http.StatusOK,
			expectToken:    true,
		},
		{
			name: "invalid credentials",
			body: `{"username":"admin","password":"wrong"}`,
			mockSetup: func(m *MockService) {
				m.On("Login", mock.Anything, "admin", "wrong").
					Return("", services.ErrInvalidCredentials)
			},
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "missing password",
			body:           `{"username":"admin"}`,
			mockSetup:      func(m *MockService) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "invalid json",
			body:           `{"username":`,
			mockSetup:      func(m *MockService) {},
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service := new(MockService)
			tt.mockSetup(service)
			handler := login.New(newNoopLogger(), service)

			req := httptest.NewRequest(http.MethodPost, "/api/auth/login", bytes.NewBufferString(tt.body))
			req.Header.Set("Content-Type", "application/json")
			rr := httptest.NewRecorder()

			handler.ServeHTTP(rr, req)

			assert.Equal(t, tt.expectedStatus, rr.Code)

			var resp map[string]any
			require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
			if tt.expectToken {
				assert.Equal(t, "some.jwt.token", resp["token"])
			} else {
				assert.Equal(t, "Error", resp["status"])
				assert.NotEmpty(t, resp["error"])
			}
			service.AssertExpectations(t)
		})
	}
}
