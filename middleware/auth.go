package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/cppla/conduit/utils"
)

const (
	// ContextUserIDKey is the key used to store authenticated user ID in Gin context.
	ContextUserIDKey = "user_id"
	// ContextTokenKey stores the raw bearer token inside Gin context.
	ContextTokenKey = "token"
)

// Authenticator verifies bearer tokens and rejects revoked ones.
type Authenticator struct {
	tokens  *utils.TokenProvider
	revoker *utils.TokenRevoker
}

// NewAuthenticator creates an Authenticator.
func NewAuthenticator(tokens *utils.TokenProvider, revoker *utils.TokenRevoker) *Authenticator {
	return &Authenticator{tokens: tokens, revoker: revoker}
}

// Required ensures the request is authenticated via JWT.
func (a *Authenticator) Required() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		authHeader := ctx.GetHeader("Authorization")
		if authHeader == "" {
			utils.Error(ctx, http.StatusUnauthorized, 40101, "authorization header missing")
			ctx.Abort()
			return
		}
		code, msg := a.authenticate(ctx, authHeader)
		if code != 0 {
			utils.Error(ctx, http.StatusUnauthorized, code, msg)
			ctx.Abort()
			return
		}
		ctx.Next()
	}
}

// Optional authenticates when a token is presented and lets anonymous requests through.
// A presented but invalid token is still rejected.
func (a *Authenticator) Optional() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		authHeader := ctx.GetHeader("Authorization")
		if authHeader == "" {
			ctx.Next()
			return
		}
		code, msg := a.authenticate(ctx, authHeader)
		if code != 0 {
			utils.Error(ctx, http.StatusUnauthorized, code, msg)
			ctx.Abort()
			return
		}
		ctx.Next()
	}
}

func (a *Authenticator) authenticate(ctx *gin.Context, authHeader string) (int, string) {
	// "Token" is the scheme RealWorld clients send
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !(strings.EqualFold(parts[0], "Bearer") || strings.EqualFold(parts[0], "Token")) {
		return 40102, "invalid authorization header format"
	}

	tokenString := strings.TrimSpace(parts[1])
	if tokenString == "" {
		return 40103, "empty bearer token"
	}

	if a.revoker.IsRevoked(ctx.Request.Context(), tokenString) {
		return 40104, "token revoked"
	}

	claims, err := a.tokens.Verify(tokenString)
	if err != nil {
		return 40105, "invalid token"
	}

	ctx.Set(ContextUserIDKey, claims.Subject)
	ctx.Set(ContextTokenKey, tokenString)
	return 0, ""
}

// UserID returns the authenticated caller, or "" for anonymous requests.
func UserID(ctx *gin.Context) string {
	return ctx.GetString(ContextUserIDKey)
}

// Token returns the bearer token of the request, if authenticated.
func Token(ctx *gin.Context) string {
	return ctx.GetString(ContextTokenKey)
}
