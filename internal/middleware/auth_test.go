package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	iauth "github.com/bookhaven/backend/internal/auth"
	"github.com/bookhaven/backend/internal/models"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	m.Run()
}

func newTokenService(t *testing.T) *iauth.TokenService {
	t.Helper()

	svc, err := iauth.NewTokenService(iauth.TokenConfig{
		Secret:      "primary-secret",
		EmailSecret: "email-secret",
		ResetSecret: "reset-secret",
	})
	require.NoError(t, err)
	return svc
}

func newProtectedRouter(tokens *iauth.TokenService, extra ...gin.HandlerFunc) *gin.Engine {
	r := gin.New()
	chain := append([]gin.HandlerFunc{Auth(tokens)}, extra...)
	chain = append(chain, func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"userID": c.GetString(CtxUserIDKey),
			"role":   c.GetString(CtxRoleKey),
		})
	})
	r.GET("/protected", chain...)
	return r
}

func doGet(r http.Handler, bearer string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if bearer != "" {
		req.Header.Set("Authorization", bearer)
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestAuthRejectsMissingHeader(t *testing.T) {
	r := newProtectedRouter(newTokenService(t))

	rec := doGet(r, "")
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = doGet(r, "Basic abc123")
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = doGet(r, "Bearer garbage")
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	require.Equal(t, "Bearer", rec.Header().Get("WWW-Authenticate"))
}

func TestAuthAcceptsValidToken(t *testing.T) {
	tokens := newTokenService(t)
	r := newProtectedRouter(tokens)

	token, err := tokens.IssueAccessToken(&models.Account{
		ID:       "acc-1",
		Username: "reader",
		Role:     models.RoleAdmin,
	})
	require.NoError(t, err)

	rec := doGet(r, "Bearer "+token)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), `"userID":"acc-1"`)
	require.Contains(t, rec.Body.String(), `"role":"admin"`)
}

func TestAuthRejectsExpiredToken(t *testing.T) {
	past := time.Now().Add(-2 * time.Hour)
	issuer, err := iauth.NewTokenService(iauth.TokenConfig{
		Secret:      "primary-secret",
		EmailSecret: "email-secret",
		ResetSecret: "reset-secret",
		AccessTTL:   time.Hour,
		Clock:       func() time.Time { return past },
	})
	require.NoError(t, err)

	token, err := issuer.IssueAccessToken(&models.Account{ID: "acc-1"})
	require.NoError(t, err)

	r := newProtectedRouter(newTokenService(t))
	rec := doGet(r, "Bearer "+token)
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequireRole(t *testing.T) {
	tokens := newTokenService(t)
	r := newProtectedRouter(tokens, RequireRole(models.RoleAdmin))

	userToken, err := tokens.IssueAccessToken(&models.Account{ID: "acc-1", Role: models.RoleUser})
	require.NoError(t, err)
	adminToken, err := tokens.IssueAccessToken(&models.Account{ID: "acc-2", Role: models.RoleAdmin})
	require.NoError(t, err)

	rec := doGet(r, "Bearer "+userToken)
	require.Equal(t, http.StatusForbidden, rec.Code)

	rec = doGet(r, "Bearer "+adminToken)
	require.Equal(t, http.StatusOK, rec.Code)
}
