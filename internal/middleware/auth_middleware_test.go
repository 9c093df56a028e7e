package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"restaurant_ops_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

type errorEnvelope struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func authTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/protected", AuthMiddleware(), RoleAuthMiddleware("admin", "manager"), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"user_id": c.MustGet("userID")})
	})
	return r
}

func doAuthRequest(t *testing.T, r *gin.Engine, token string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeEnvelope(t *testing.T, w *httptest.ResponseRecorder) errorEnvelope {
	t.Helper()
	var env errorEnvelope
	if err := json.Unmarshal(w.Body.Bytes(), &env); err != nil {
		t.Fatalf("response is not an error envelope: %v", err)
	}
	return env
}

func TestAuthMiddlewareMissingHeader(t *testing.T) {
	utils.SetJWTSecret("test-secret")
	w := doAuthRequest(t, authTestRouter(), "")
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}
	if env := decodeEnvelope(t, w); env.Error.Code != utils.ErrCodeUnauthorized {
		t.Errorf("expected code %s, got %s", utils.ErrCodeUnauthorized, env.Error.Code)
	}
}

func TestAuthMiddlewareInvalidToken(t *testing.T) {
	utils.SetJWTSecret("test-secret")
	w := doAuthRequest(t, authTestRouter(), "not-a-token")
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}
	if env := decodeEnvelope(t, w); env.Error.Code != utils.ErrCodeUnauthorized {
		t.Errorf("expected code %s, got %s", utils.ErrCodeUnauthorized, env.Error.Code)
	}
}

func TestRoleAuthMiddlewareForbidden(t *testing.T) {
	utils.SetJWTSecret("test-secret")
	token, err := utils.GenerateAccessToken(7, "line-cook", "staff")
	if err != nil {
		t.Fatalf("failed to generate token: %v", err)
	}
	w := doAuthRequest(t, authTestRouter(), token)
	if w.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", w.Code)
	}
	if env := decodeEnvelope(t, w); env.Error.Code != utils.ErrCodeForbidden {
		t.Errorf("expected code %s, got %s", utils.ErrCodeForbidden, env.Error.Code)
	}
}

func TestAuthMiddlewareAllowsPermittedRole(t *testing.T) {
	utils.SetJWTSecret("test-secret")
	token, err := utils.GenerateAccessToken(3, "shift-lead", "manager")
	if err != nil {
		t.Fatalf("failed to generate token: %v", err)
	}
	w := doAuthRequest(t, authTestRouter(), token)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
}
