package forgotpassword

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	c "resetpoint/internal/core/domain/common"
	"resetpoint/internal/core/domain/reset"
	"resetpoint/internal/core/domain/user"
	service "resetpoint/internal/core/services/forgot_password"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	RequestID = "8f14e45f-ceea-467f-a34e-95b5b41e0a7d"
	Token     = "plaintext-reset-token"
)

type stubService struct {
	err   error
	input *service.Input
}

func (s *stubService) Run(ctx context.Context, input service.Input) (result service.Result, err error) {
	if s.err != nil {
		return result, s.err
	}
	s.input = &input
	result.User = user.User{ID: user.ID(1), Email: c.Email("test@test.test")}
	result.Request = reset.Request{ID: reset.ID(RequestID), UserID: user.ID(1)}
	result.Token = reset.PlaintextToken(Token)
	return result, nil
}

func TestForgotPasswordHandler(t *testing.T) {
	cases := []struct {
		id             string
		body           string
		serviceError   error
		expectedStatus int
		expectedEmail  string
	}{
		{
			id:             "success",
			body:           `{"email": "test@test.test"}`,
			expectedStatus: http.StatusOK,
			expectedEmail:  "test@test.test",
		},
		{
			id:             "invalid json",
			body:           `{"email": "test@test.test"`,
			expectedStatus: http.StatusBadRequest,
		},
		{
			id:             "missing email",
			body:           `{}`,
			expectedStatus: http.StatusBadRequest,
		},
		{
			id:             "not an email",
			body:           `{"email": "not-an-email"}`,
			expectedStatus: http.StatusBadRequest,
		},
		{
			id:             "unknown email",
			body:           `{"email": "test@test.test"}`,
			serviceError:   user.ErrUserDoesNotExist,
			expectedStatus: http.StatusUnprocessableEntity,
		},
		{
			id:             "reset already pending",
			body:           `{"email": "test@test.test"}`,
			serviceError:   reset.ErrResetAlreadyPending,
			expectedStatus: http.StatusConflict,
		},
	}

	for _, testcase := range cases {
		t.Run(testcase.id, func(t *testing.T) {
			stub := &stubService{err: testcase.serviceError}
			handler := New(stub, false)

			rw := httptest.NewRecorder()
			r := httptest.NewRequest(
				http.MethodPost,
				"/auth/password_reset/token",
				strings.NewReader(testcase.body),
			)
			handler.ServeHTTP(rw, r)

			assert.Equal(t, testcase.expectedStatus, rw.Code)
			if testcase.expectedEmail != "" {
				require.NotNil(t, stub.input)
				assert.Equal(t, c.Email(testcase.expectedEmail), stub.input.Email)
			}
		})
	}
}

func TestForgotPasswordHandlerTestModeHeaders(t *testing.T) {
	body := `{"email": "test@test.test"}`

	t.Run("test mode exposes the token", func(t *testing.T) {
		handler := New(&stubService{}, true)
		rw := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodPost, "/auth/password_reset/token", strings.NewReader(body))

		handler.ServeHTTP(rw, r)

		require.Equal(t, http.StatusOK, rw.Code)
		assert.Equal(t, RequestID, rw.Header().Get("x-test-reset-request-id"))
		assert.Equal(t, Token, rw.Header().Get("x-test-reset-token"))
	})

	t.Run("headers are not set otherwise", func(t *testing.T) {
		handler := New(&stubService{}, false)
		rw := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodPost, "/auth/password_reset/token", strings.NewReader(body))

		handler.ServeHTTP(rw, r)

		require.Equal(t, http.StatusOK, rw.Code)
		assert.Empty(t, rw.Header().Get("x-test-reset-request-id"))
		assert.Empty(t, rw.Header().Get("x-test-reset-token"))
	})
}
