package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/chronotes/chronotes/internal/codestore"
	"github.com/chronotes/chronotes/internal/model"
	"github.com/chronotes/chronotes/internal/pkg/errcode"
	appErr "github.com/chronotes/chronotes/internal/pkg/errors"
	"github.com/chronotes/chronotes/internal/pkg/jwt"
	"github.com/chronotes/chronotes/internal/service"
)

type memUsers struct {
	byEmail map[string]*model.User
}

func (m *memUsers) FindByEmail(_ context.Context, email string) (*model.User, error) {
	user, ok := m.byEmail[email]
	if !ok {
		return nil, appErr.ErrNotFound
	}
	return user, nil
}

func (m *memUsers) FindByID(_ context.Context, id string) (*model.User, error) {
	for _, user := range m.byEmail {
		if user.ID == id {
			return user, nil
		}
	}
	return nil, appErr.ErrNotFound
}

func (m *memUsers) Insert(_ context.Context, user *model.User) (int64, error) {
	if _, ok := m.byEmail[user.Email]; ok {
		return 0, appErr.ErrEmailTaken
	}
	clone := *user
	m.byEmail[user.Email] = &clone
	return 1, nil
}

func (m *memUsers) Update(_ context.Context, user *model.User) (int64, error) {
	if _, ok := m.byEmail[user.Email]; !ok {
		return 0, nil
	}
	clone := *user
	m.byEmail[user.Email] = &clone
	return 1, nil
}

type captureSender struct {
	lastCode string
}

func (s *captureSender) SendVerificationCode(_, code string) error {
	s.lastCode = code
	return nil
}

type envelope struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func newTestRouter(t *testing.T) (*gin.Engine, *captureSender) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	users := &memUsers{byEmail: make(map[string]*model.User)}
	sender := &captureSender{}
	issuer := jwt.NewIssuer([]byte("0123456789abcdef0123456789abcdef"), time.Hour)
	svc := service.NewAuthService(users, codestore.NewMemory(128, time.Hour), sender, issuer)

	engine := gin.New()
	RegisterRoutes(engine.Group("/api/v1"), RouterDeps{Auth: NewAuthHandler(svc), Issuer: issuer})
	return engine, sender
}

func doJSON(t *testing.T, engine *gin.Engine, method, path string, body interface{}, headers map[string]string) envelope {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	return env
}

func TestAuthFlowOverHTTP(t *testing.T) {
	engine, sender := newTestRouter(t)

	env := doJSON(t, engine, "POST", "/api/v1/auth/send-code", gin.H{"email": "bob@example.com"}, nil)
	require.Equal(t, 0, env.Code)
	require.Len(t, sender.lastCode, 6)

	env = doJSON(t, engine, "POST", "/api/v1/auth/register", gin.H{
		"email":      "bob@example.com",
		"verifyCode": sender.lastCode,
		"password":   "Passw0rd",
	}, nil)
	require.Equal(t, 0, env.Code)
	var result struct {
		Token    string `json:"token"`
		Email    string `json:"email"`
		Username string `json:"username"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &result))
	require.Equal(t, "bob@example.com", result.Email)
	require.Equal(t, "bob", result.Username)
	require.NotEmpty(t, result.Token)

	env = doJSON(t, engine, "POST", "/api/v1/auth/login", gin.H{
		"email":    "bob@example.com",
		"password": "Passw0rd",
	}, nil)
	require.Equal(t, 0, env.Code)

	env = doJSON(t, engine, "GET", "/api/v1/auth/me", nil, map[string]string{
		"Authorization": "Bearer " + result.Token,
	})
	require.Equal(t, 0, env.Code)

	env = doJSON(t, engine, "PUT", "/api/v1/auth/profile", gin.H{
		"username": "Bobby",
		"bio":      "hello",
	}, map[string]string{"Authorization": "Bearer " + result.Token})
	require.Equal(t, 0, env.Code)
}

func TestAuthErrorCodesOverHTTP(t *testing.T) {
	engine, sender := newTestRouter(t)

	env := doJSON(t, engine, "POST", "/api/v1/auth/login", gin.H{"email": "nobody@x.com", "password": "p"}, nil)
	require.Equal(t, errcode.ErrUserNotFound, env.Code)

	env = doJSON(t, engine, "POST", "/api/v1/auth/register", gin.H{
		"email": "a@x.com", "verifyCode": "000000", "password": "p",
	}, nil)
	require.Equal(t, errcode.ErrInvalidCode, env.Code)

	env = doJSON(t, engine, "POST", "/api/v1/auth/send-code", gin.H{"email": "a@x.com"}, nil)
	require.Equal(t, 0, env.Code)
	env = doJSON(t, engine, "POST", "/api/v1/auth/register", gin.H{
		"email": "a@x.com", "verifyCode": sender.lastCode, "password": "Passw0rd",
	}, nil)
	require.Equal(t, 0, env.Code)

	env = doJSON(t, engine, "POST", "/api/v1/auth/send-code", gin.H{"email": "a@x.com"}, nil)
	require.Equal(t, errcode.ErrEmailTaken, env.Code)

	env = doJSON(t, engine, "POST", "/api/v1/auth/login", gin.H{"email": "a@x.com", "password": "wrong"}, nil)
	require.Equal(t, errcode.ErrInvalidPassword, env.Code)

	env = doJSON(t, engine, "GET", "/api/v1/auth/me", nil, nil)
	require.Equal(t, errcode.ErrUnauthorized, env.Code)

	env = doJSON(t, engine, "POST", "/api/v1/auth/send-code", gin.H{"email": "  "}, nil)
	require.Equal(t, errcode.ErrInvalid, env.Code)
}
