package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"igreja_backend/internal/domain"
)

var testSecret = []byte("segredo-de-teste")

func protectedRouter(minimum string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	group := r.Group("/", RequireAuth(testSecret))
	if minimum != "" {
		group.Use(RequireRole(minimum))
	}
	group.GET("/ping", func(c *gin.Context) {
		identity, _ := CurrentUser(c)
		c.JSON(http.StatusOK, gin.H{"user_id": identity.UserID, "role": identity.Role})
	})
	return r
}

func TestRequireAuth_MissingToken(t *testing.T) {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	protectedRouter("").ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}
	if body := w.Body.String(); !containsAll(body, `"success":false`, `"error"`) {
		t.Fatalf("unexpected envelope: %s", body)
	}
}

func TestRequireAuth_BearerToken(t *testing.T) {
	token, err := GenerateToken(testSecret, 7, domain.RoleLeader, time.Hour)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	protectedRouter("").ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d (%s)", w.Code, w.Body.String())
	}
	if body := w.Body.String(); !containsAll(body, `"user_id":7`, `"role":"leader"`) {
		t.Fatalf("identity not propagated: %s", body)
	}
}

func TestRequireAuth_SessionCookie(t *testing.T) {
	token, err := GenerateToken(testSecret, 3, domain.RoleMember, time.Hour)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: token})
	protectedRouter("").ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 via cookie, got %d", w.Code)
	}
}

func TestRequireAuth_ExpiredToken(t *testing.T) {
	token, err := GenerateToken(testSecret, 7, domain.RoleAdmin, -time.Minute)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	protectedRouter("").ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for expired token, got %d", w.Code)
	}
}

func TestRequireAuth_WrongSecret(t *testing.T) {
	token, err := GenerateToken([]byte("outro-segredo"), 7, domain.RoleAdmin, time.Hour)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	protectedRouter("").ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for forged token, got %d", w.Code)
	}
}

func TestRequireRole_Hierarchy(t *testing.T) {
	cases := []struct {
		role    string
		minimum string
		want    int
	}{
		{domain.RoleAdmin, domain.RoleLeader, http.StatusOK},
		{domain.RoleLeader, domain.RoleLeader, http.StatusOK},
		{domain.RoleMember, domain.RoleLeader, http.StatusForbidden},
		{domain.RoleLeader, domain.RoleAdmin, http.StatusForbidden},
	}

	for _, tc := range cases {
		token, err := GenerateToken(testSecret, 1, tc.role, time.Hour)
		if err != nil {
			t.Fatalf("GenerateToken: %v", err)
		}
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/ping", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		protectedRouter(tc.minimum).ServeHTTP(w, req)

		if w.Code != tc.want {
			t.Fatalf("role %s against minimum %s: expected %d, got %d", tc.role, tc.minimum, tc.want, w.Code)
		}
	}
}

func containsAll(s string, parts ...string) bool {
	for _, p := range parts {
		if !strings.Contains(s, p) {
			return false
		}
	}
	return true
}
