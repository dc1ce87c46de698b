package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cppla/conduit/utils"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newAuthRouter(t *testing.T) (*gin.Engine, *utils.TokenProvider, *utils.TokenRevoker) {
	t.Helper()
	key, err := utils.GenerateSigningKey()
	require.NoError(t, err)
	tokens := utils.NewTokenProvider(key, "conduit-test", time.Hour)
	revoker := utils.NewTokenRevoker(nil)
	auth := NewAuthenticator(tokens, revoker)

	r := gin.New()
	r.GET("/private", auth.Required(), func(ctx *gin.Context) {
		ctx.String(http.StatusOK, UserID(ctx))
	})
	r.GET("/public", auth.Optional(), func(ctx *gin.Context) {
		ctx.String(http.StatusOK, "caller="+UserID(ctx))
	})
	return r, tokens, revoker
}

func get(r http.Handler, path, authHeader string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthRequired(t *testing.T) {
	r, tokens, revoker := newAuthRouter(t)
	token, err := tokens.Issue("user-1")
	require.NoError(t, err)

	assert.Equal(t, http.StatusUnauthorized, get(r, "/private", "").Code)
	assert.Equal(t, http.StatusUnauthorized, get(r, "/private", "Basic abc").Code)
	assert.Equal(t, http.StatusUnauthorized, get(r, "/private", "Bearer not-a-jwt").Code)

	for _, scheme := range []string{"Bearer ", "Token "} {
		w := get(r, "/private", scheme+token)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "user-1", w.Body.String())
	}

	revoker.Revoke(context.Background(), token, time.Now().Add(time.Hour))
	assert.Equal(t, http.StatusUnauthorized, get(r, "/private", "Bearer "+token).Code)
}

func TestAuthOptional(t *testing.T) {
	r, tokens, _ := newAuthRouter(t)
	token, err := tokens.Issue("user-1")
	require.NoError(t, err)

	w := get(r, "/public", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "caller=", w.Body.String())

	w = get(r, "/public", "Token "+token)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "caller=user-1", w.Body.String())

	assert.Equal(t, http.StatusUnauthorized, get(r, "/public", "Token garbage").Code)
}

func TestRateLimiter(t *testing.T) {
	l := NewRateLimiter(4)
	now := time.Unix(1_700_000_000, 0)
	l.now = func() time.Time { return now }

	r := gin.New()
	r.Use(l.Middleware())
	r.GET("/", func(ctx *gin.Context) { ctx.Status(http.StatusOK) })

	// burst is half the per-minute rate
	assert.Equal(t, http.StatusOK, get(r, "/", "").Code)
	assert.Equal(t, http.StatusOK, get(r, "/", "").Code)
	assert.Equal(t, http.StatusTooManyRequests, get(r, "/", "").Code)

	now = now.Add(15 * time.Second)
	assert.Equal(t, http.StatusOK, get(r, "/", "").Code)
}

func TestMetricsRecordsRoute(t *testing.T) {
	r := gin.New()
	r.Use(Metrics())
	r.GET("/things/:id", func(ctx *gin.Context) { ctx.Status(http.StatusNoContent) })

	before := testCounter(t, "/things/:id", "204")
	assert.Equal(t, http.StatusNoContent, get(r, "/things/7", "").Code)
	assert.Equal(t, before+1, testCounter(t, "/things/:id", "204"))
}

func testCounter(t *testing.T, route, status string) float64 {
	t.Helper()
	return testutil.ToFloat64(httpRequestsTotal.WithLabelValues(route, http.MethodGet, status))
}
