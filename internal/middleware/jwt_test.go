package middleware

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/chronotes/chronotes/internal/pkg/jwt"
)

func TestJWTAuth(t *testing.T) {
	gin.SetMode(gin.TestMode)
	issuer := jwt.NewIssuer([]byte("0123456789abcdef0123456789abcdef"), time.Hour)
	token, err := issuer.Issue("a@x.com")
	require.NoError(t, err)

	tests := []struct {
		name      string
		header    string
		wantAbort bool
		wantEmail string
	}{
		{name: "valid bearer", header: "Bearer " + token, wantAbort: false, wantEmail: "a@x.com"},
		{name: "missing header", header: "", wantAbort: true},
		{name: "wrong scheme", header: "Basic " + token, wantAbort: true},
		{name: "garbage token", header: "Bearer not.a.token", wantAbort: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := gin.CreateTestContext(httptest.NewRecorder())
			c.Request = httptest.NewRequest("GET", "/api/v1/auth/me", nil)
			if tt.header != "" {
				c.Request.Header.Set("Authorization", tt.header)
			}
			JWTAuth(issuer)(c)
			require.Equal(t, tt.wantAbort, c.IsAborted())
			if tt.wantEmail != "" {
				require.Equal(t, tt.wantEmail, c.GetString(ContextEmailKey))
			}
		})
	}
}

func TestJWTAuthExpiredToken(t *testing.T) {
	gin.SetMode(gin.TestMode)
	expired := jwt.NewIssuer([]byte("0123456789abcdef0123456789abcdef"), -time.Minute)
	token, err := expired.Issue("a@x.com")
	require.NoError(t, err)

	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest("GET", "/api/v1/auth/me", nil)
	c.Request.Header.Set("Authorization", "Bearer "+token)
	JWTAuth(expired)(c)
	require.True(t, c.IsAborted())
}
