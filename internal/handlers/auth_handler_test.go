package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"catalogo-backend/internal/middleware"
	"catalogo-backend/internal/service"
)

func authRouter(t *testing.T, adminPassword string) *gin.Engine {
	t.Helper()

	authService, err := service.NewAuthService("admin", adminPassword, "test-secret")
	if err != nil {
		t.Fatalf("failed to build auth service: %v", err)
	}

	handler := NewAuthHandler(authService)

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.POST("/api/v1/login", handler.Login)
	router.POST("/api/v1/logout", handler.Logout)
	return router
}

func postLogin(router *gin.Engine, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/login", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestLoginIssuesTokenAndCookie(t *testing.T) {
	router := authRouter(t, "hunter2")

	w := postLogin(router, `{"username":"admin","password":"hunter2"}`)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d: %s", http.StatusOK, w.Code, w.Body.String())
	}

	var resp struct {
		Token string `json:"token"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Token == "" {
		t.Fatal("expected a session token in the response")
	}

	var found bool
	for _, cookie := range w.Result().Cookies() {
		if cookie.Name == middleware.AuthTokenCookieName {
			found = true
			if !cookie.HttpOnly {
				t.Error("expected session cookie to be http-only")
			}
			if cookie.Value == "" {
				t.Error("expected session cookie to carry the token")
			}
		}
	}
	if !found {
		t.Fatal("expected a session cookie to be set")
	}
}

func TestLoginRejectsWrongPassword(t *testing.T) {
	router := authRouter(t, "hunter2")

	w := postLogin(router, `{"username":"admin","password":"wrong"}`)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected status %d, got %d", http.StatusUnauthorized, w.Code)
	}
}

func TestLoginUnavailableWithoutConfiguredPassword(t *testing.T) {
	router := authRouter(t, "")

	w := postLogin(router, `{"username":"admin","password":"anything"}`)

	if w.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected status %d, got %d", http.StatusServiceUnavailable, w.Code)
	}
}

func TestLogoutClearsSessionCookie(t *testing.T) {
	router := authRouter(t, "hunter2")

	req := httptest.NewRequest(http.MethodPost, "/api/v1/logout", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, w.Code)
	}

	for _, cookie := range w.Result().Cookies() {
		if cookie.Name == middleware.AuthTokenCookieName && cookie.MaxAge >= 0 {
			t.Fatalf("expected session cookie to be expired, got max-age %d", cookie.MaxAge)
		}
	}
}
