package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

var testSecret = []byte("test-secret")

func signToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	if _, ok := claims["exp"]; !ok {
		claims["exp"] = time.Now().Add(time.Hour).Unix()
	}
	s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(testSecret)
	require.NoError(t, err)
	return s
}

// admin 専用ルートの最小構成（RequireAuth → RequireRole）
func adminRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.DELETE("/accounts/:id", RequireAuth(testSecret), RequireRole("admin"), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"sub": c.GetString(CtxUserIDKey)})
	})
	return r
}

func doDelete(r *gin.Engine, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodDelete, "/accounts/user1", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRequireAuth_RejectsMissingOrBrokenToken(t *testing.T) {
	r := adminRouter()

	require.Equal(t, http.StatusUnauthorized, doDelete(r, "").Code)
	require.Equal(t, http.StatusUnauthorized, doDelete(r, "not-a-jwt").Code)

	// 署名鍵が違うトークンも弾く
	bad, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "admin1", "role": "admin", "exp": time.Now().Add(time.Hour).Unix(),
	}).SignedString([]byte("other-secret"))
	require.NoError(t, err)
	require.Equal(t, http.StatusUnauthorized, doDelete(r, bad).Code)
}

func TestRequireAuth_RejectsExpiredToken(t *testing.T) {
	r := adminRouter()
	expired := signToken(t, jwt.MapClaims{
		"sub": "admin1", "role": "admin", "exp": time.Now().Add(-time.Hour).Unix(),
	})
	require.Equal(t, http.StatusUnauthorized, doDelete(r, expired).Code)
}

func TestRequireRole_AdminOnly(t *testing.T) {
	r := adminRouter()

	// 一般ユーザーは 403
	user := signToken(t, jwt.MapClaims{"sub": "user1", "role": "user"})
	require.Equal(t, http.StatusForbidden, doDelete(r, user).Code)

	// role クレーム無しも 403
	noRole := signToken(t, jwt.MapClaims{"sub": "user1"})
	require.Equal(t, http.StatusForbidden, doDelete(r, noRole).Code)

	// admin は通る
	admin := signToken(t, jwt.MapClaims{"sub": "admin1", "role": "admin"})
	w := doDelete(r, admin)
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), "admin1")
}
