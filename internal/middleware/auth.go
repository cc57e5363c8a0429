package middleware

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v4"
	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/fastygo/homeplanner/pkg/httpcontext"
)

// AuthConfig configures JWTAuth.
type AuthConfig struct {
	Secret string
	// Issuer, when set, must match the token's iss claim.
	Issuer string
	// OwnerClaim names the claim holding the user id. "sub" is used as a fallback.
	OwnerClaim string
}

var errNoOwner = errors.New("token carries no owner claim")

// JWTAuth resolves the request owner from an HMAC-signed bearer token.
//
// Requests without a token continue with no owner, leaving the handler to
// reject them. A token that is present but invalid is answered with 401.
func JWTAuth(cfg AuthConfig, logger *zap.Logger) func(fasthttp.RequestHandler) fasthttp.RequestHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.OwnerClaim == "" {
		cfg.OwnerClaim = "user_id"
	}
	parser := jwt.NewParser(jwt.WithValidMethods([]string{"HS256", "HS384", "HS512"}))
	keyFunc := func(*jwt.Token) (interface{}, error) {
		return []byte(cfg.Secret), nil
	}

	return func(next fasthttp.RequestHandler) fasthttp.RequestHandler {
		return func(ctx *fasthttp.RequestCtx) {
			tokenString := extractToken(ctx)
			if tokenString == "" {
				next(ctx)
				return
			}

			claims := jwt.MapClaims{}
			token, err := parser.ParseWithClaims(tokenString, claims, keyFunc)
			if err == nil && cfg.Issuer != "" && !claims.VerifyIssuer(cfg.Issuer, true) {
				err = jwt.NewValidationError("issuer mismatch", jwt.ValidationErrorIssuer)
			}
			var owner string
			if err == nil {
				owner, err = ownerFromClaims(claims, cfg.OwnerClaim)
			}
			if err != nil || !token.Valid {
				logger.Warn("invalid jwt token",
					zap.String("request_id", httpcontext.RequestID(ctx)),
					zap.Error(err))
				unauthorized(ctx)
				return
			}

			httpcontext.SetOwner(ctx, owner)
			next(ctx)
		}
	}
}

func ownerFromClaims(claims jwt.MapClaims, claim string) (string, error) {
	if v, ok := claims[claim].(string); ok && v != "" {
		return v, nil
	}
	if v, ok := claims["sub"].(string); ok && v != "" {
		return v, nil
	}
	return "", errNoOwner
}

func extractToken(ctx *fasthttp.RequestCtx) string {
	header := strings.TrimSpace(string(ctx.Request.Header.Peek("Authorization")))
	if header == "" {
		return ""
	}
	if len(header) > 7 && strings.EqualFold(header[:7], "Bearer ") {
		return strings.TrimSpace(header[7:])
	}
	return header
}

func unauthorized(ctx *fasthttp.RequestCtx) {
	body, _ := json.Marshal(map[string]string{"error": "Unauthorized"})
	ctx.Response.Header.SetContentType("application/json")
	ctx.SetStatusCode(http.StatusUnauthorized)
	ctx.SetBody(body)
}
