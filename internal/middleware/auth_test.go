package middleware

import (
	"net/http"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/valyala/fasthttp"

	"github.com/fastygo/homeplanner/pkg/httpcontext"
)

const testSecret = "test-secret"

func sign(t *testing.T, method jwt.SigningMethod, key interface{}, claims jwt.MapClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(method, claims).SignedString(key)
	require.NoError(t, err)
	return token
}

// run passes a request through JWTAuth and reports the owner seen by the next handler.
func run(cfg AuthConfig, authorization string) (*fasthttp.RequestCtx, string, bool) {
	var (
		owner  string
		called bool
	)
	next := func(ctx *fasthttp.RequestCtx) {
		called = true
		owner = httpcontext.Owner(ctx)
	}

	ctx := &fasthttp.RequestCtx{}
	if authorization != "" {
		ctx.Request.Header.Set("Authorization", authorization)
	}
	JWTAuth(cfg, nil)(next)(ctx)
	return ctx, owner, called
}

func TestJWTAuth_ValidToken(t *testing.T) {
	token := sign(t, jwt.SigningMethodHS256, []byte(testSecret), jwt.MapClaims{
		"user_id": "u1",
		"exp":     time.Now().Add(time.Hour).Unix(),
	})

	_, owner, called := run(AuthConfig{Secret: testSecret}, "Bearer "+token)
	assert.True(t, called)
	assert.Equal(t, "u1", owner)
}

func TestJWTAuth_SubjectFallback(t *testing.T) {
	token := sign(t, jwt.SigningMethodHS256, []byte(testSecret), jwt.MapClaims{"sub": "u9"})

	_, owner, called := run(AuthConfig{Secret: testSecret}, "bearer "+token)
	assert.True(t, called)
	assert.Equal(t, "u9", owner)
}

func TestJWTAuth_CustomClaim(t *testing.T) {
	token := sign(t, jwt.SigningMethodHS256, []byte(testSecret), jwt.MapClaims{"uid": "u3"})

	_, owner, _ := run(AuthConfig{Secret: testSecret, OwnerClaim: "uid"}, "Bearer "+token)
	assert.Equal(t, "u3", owner)
}

func TestJWTAuth_NoToken(t *testing.T) {
	_, owner, called := run(AuthConfig{Secret: testSecret}, "")
	assert.True(t, called)
	assert.Equal(t, "", owner)
}

func TestJWTAuth_Rejected(t *testing.T) {
	cases := map[string]string{
		"wrong secret": sign(t, jwt.SigningMethodHS256, []byte("other"), jwt.MapClaims{"user_id": "u1"}),
		"expired": sign(t, jwt.SigningMethodHS256, []byte(testSecret), jwt.MapClaims{
			"user_id": "u1",
			"exp":     time.Now().Add(-time.Hour).Unix(),
		}),
		"no owner":      sign(t, jwt.SigningMethodHS256, []byte(testSecret), jwt.MapClaims{"role": "admin"}),
		"wrong issuer":  sign(t, jwt.SigningMethodHS256, []byte(testSecret), jwt.MapClaims{"user_id": "u1", "iss": "elsewhere"}),
		"none alg":      sign(t, jwt.SigningMethodNone, jwt.UnsafeAllowNoneSignatureType, jwt.MapClaims{"user_id": "u1"}),
		"garbage":       "not.a.token",
	}

	for name, token := range cases {
		t.Run(name, func(t *testing.T) {
			ctx, owner, called := run(AuthConfig{Secret: testSecret, Issuer: "homeplanner"}, "Bearer "+token)
			assert.False(t, called)
			assert.Equal(t, "", owner)
			assert.Equal(t, http.StatusUnauthorized, ctx.Response.StatusCode())
			assert.JSONEq(t, `{"error":"Unauthorized"}`, string(ctx.Response.Body()))
		})
	}
}

func TestJWTAuth_IssuerAccepted(t *testing.T) {
	token := sign(t, jwt.SigningMethodHS256, []byte(testSecret), jwt.MapClaims{"user_id": "u1", "iss": "homeplanner"})

	_, owner, called := run(AuthConfig{Secret: testSecret, Issuer: "homeplanner"}, "Bearer "+token)
	assert.True(t, called)
	assert.Equal(t, "u1", owner)
}
