package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"court-booking/internal/data/entity"
	"court-booking/internal/data/repository/mocks"
	"court-booking/pkg/token"
	"court-booking/pkg/utils"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func echoUser() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID, _ := utils.GetUserIDFromContext(r.Context())
		role, _ := utils.GetRoleFromContext(r.Context())
		w.Write([]byte(userID.String() + "|" + role))
	})
}

func TestAuth(t *testing.T) {
	tokens := token.NewManager("test-secret", time.Hour)
	userID := uuid.New()
	signed, tokenID, _, err := tokens.Issue(userID, "owner", "owner@example.com")
	require.NoError(t, err)

	t.Run("valid session", func(t *testing.T) {
		sessions := new(mocks.SessionRepository)
		sessions.On("FindValidSession", mock.Anything, tokenID).
			Return(&entity.Session{UserID: userID, TokenID: tokenID}, nil)

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer "+signed)
		rec := httptest.NewRecorder()

		Auth(tokens, sessions, zap.NewNop())(echoUser()).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, userID.String()+"|owner", rec.Body.String())
	})

	t.Run("revoked session", func(t *testing.T) {
		sessions := new(mocks.SessionRepository)
		sessions.On("FindValidSession", mock.Anything, tokenID).Return(nil, nil)

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer "+signed)
		rec := httptest.NewRecorder()

		Auth(tokens, sessions, zap.NewNop())(echoUser()).ServeHTTP(rec, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("malformed header", func(t *testing.T) {
		sessions := new(mocks.SessionRepository)

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Token "+signed)
		rec := httptest.NewRecorder()

		Auth(tokens, sessions, zap.NewNop())(echoUser()).ServeHTTP(rec, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		sessions.AssertNotCalled(t, "FindValidSession", mock.Anything, mock.Anything)
	})

	t.Run("query token only on websocket upgrade", func(t *testing.T) {
		sessions := new(mocks.SessionRepository)
		sessions.On("FindValidSession", mock.Anything, tokenID).
			Return(&entity.Session{UserID: userID, TokenID: tokenID}, nil)

		plain := httptest.NewRequest(http.MethodGet, "/ws?token="+signed, nil)
		rec := httptest.NewRecorder()
		Auth(tokens, sessions, zap.NewNop())(echoUser()).ServeHTTP(rec, plain)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)

		upgrade := httptest.NewRequest(http.MethodGet, "/ws?token="+signed, nil)
		upgrade.Header.Set("Upgrade", "websocket")
		rec = httptest.NewRecorder()
		Auth(tokens, sessions, zap.NewNop())(echoUser()).ServeHTTP(rec, upgrade)
		assert.Equal(t, http.StatusOK, rec.Code)
	})
}

func TestRequireRole(t *testing.T) {
	h := RequireRole(zap.NewNop(), "admin")(echoUser())

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req = req.WithContext(utils.SetUserContext(context.Background(), uuid.New(), "customer"))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req = req.WithContext(utils.SetUserContext(context.Background(), uuid.New(), "admin"))
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRateLimiter(t *testing.T) {
	rl := NewRateLimiter(1, 2, zap.NewNop())
	now := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)
	rl.now = func() time.Time { return now }

	h := rl.Limit(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodPost, "/api/auth/login", nil)
		req.RemoteAddr = "10.0.0.1:5000"
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		codes = append(codes, rec.Code)
	}
	assert.Equal(t, []int{200, 200, 429}, codes)

	// another client has its own bucket
	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", nil)
	req.RemoteAddr = "10.0.0.2:5000"
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRecover(t *testing.T) {
	h := Recover(zap.NewNop())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), `"success":false`)
}
