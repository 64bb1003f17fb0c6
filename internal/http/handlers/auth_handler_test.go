package handlers

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/CalebBennett-Harper/locus/internal/domain"
	"github.com/CalebBennett-Harper/locus/internal/http/middleware"
	"github.com/CalebBennett-Harper/locus/internal/services"
)

type stubAuth struct {
	request func(email string) error
	redeem  func(token string) (*domain.Session, error)
	session func(id string) (*domain.Session, error)
	signout func(id string) error
	admin   bool
}

func (s *stubAuth) RequestMagicLink(_ context.Context, email string) error { return s.request(email) }
func (s *stubAuth) Redeem(_ context.Context, token string) (*domain.Session, error) {
	return s.redeem(token)
}
func (s *stubAuth) Session(_ context.Context, id string) (*domain.Session, error) {
	return s.session(id)
}
func (s *stubAuth) SignOut(_ context.Context, id string) error { return s.signout(id) }
func (s *stubAuth) IsAdmin(sess *domain.Session) bool          { return sess != nil && s.admin }

func authTestRouter(h *Handlers) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	grp := r.Group("/api/auth")
	grp.POST("/magic-link", h.RequestMagicLink)
	grp.GET("/callback", h.Callback)
	grp.GET("/session", h.SessionInfo)
	grp.POST("/signout", h.SignOut)
	return r
}

func TestRequestMagicLink(t *testing.T) {
	var asked string
	auth := &stubAuth{request: func(email string) error {
		asked = email
		return nil
	}}
	r := authTestRouter(New(nil, auth, nil, nil, Options{}))

	w := postJSON(r, "/api/auth/magic-link", `{"email":"admin@locus.app"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	if asked != "admin@locus.app" {
		t.Fatalf("asked = %q", asked)
	}
	if body := decodeBody(t, w); body["success"] != true {
		t.Fatalf("body = %v", body)
	}
}

func TestRequestMagicLink_MissingEmail(t *testing.T) {
	auth := &stubAuth{request: func(string) error {
		t.Fatal("service must not be called")
		return nil
	}}
	r := authTestRouter(New(nil, auth, nil, nil, Options{}))

	w := postJSON(r, "/api/auth/magic-link", `{}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", w.Code)
	}
}

func TestRequestMagicLink_MailFailure(t *testing.T) {
	auth := &stubAuth{request: func(string) error { return errors.New("smtp down") }}
	r := authTestRouter(New(nil, auth, nil, nil, Options{}))

	w := postJSON(r, "/api/auth/magic-link", `{"email":"admin@locus.app"}`)
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d", w.Code)
	}
}

func TestCallback_SetsCookieAndRedirects(t *testing.T) {
	auth := &stubAuth{redeem: func(token string) (*domain.Session, error) {
		if token != "tok-1" {
			t.Fatalf("token = %q", token)
		}
		return &domain.Session{ID: "sess-1", Email: "admin@locus.app"}, nil
	}}
	r := authTestRouter(New(nil, auth, nil, nil, Options{PostLoginRedirect: "/dashboard"}))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/auth/callback?token=tok-1", nil))

	if w.Code != http.StatusFound {
		t.Fatalf("status = %d", w.Code)
	}
	if loc := w.Header().Get("Location"); loc != "/dashboard" {
		t.Fatalf("Location = %q", loc)
	}
	setCookie := w.Header().Get("Set-Cookie")
	if !strings.Contains(setCookie, middleware.SessionCookie+"=sess-1") {
		t.Fatalf("Set-Cookie = %q", setCookie)
	}
	if !strings.Contains(setCookie, "HttpOnly") {
		t.Fatalf("session cookie must be HttpOnly: %q", setCookie)
	}
}

func TestCallback_InvalidToken(t *testing.T) {
	auth := &stubAuth{redeem: func(string) (*domain.Session, error) {
		return nil, services.ErrTokenInvalid
	}}
	r := authTestRouter(New(nil, auth, nil, nil, Options{}))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/auth/callback?token=used", nil))
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d", w.Code)
	}
	if body := decodeBody(t, w); body["code"] != "unauthorized" {
		t.Fatalf("code = %v", body["code"])
	}
}

func TestCallback_MissingToken(t *testing.T) {
	auth := &stubAuth{redeem: func(string) (*domain.Session, error) {
		t.Fatal("redeem must not be called")
		return nil, nil
	}}
	r := authTestRouter(New(nil, auth, nil, nil, Options{}))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/auth/callback", nil))
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", w.Code)
	}
}

func TestSessionInfo_Anonymous(t *testing.T) {
	auth := &stubAuth{session: func(string) (*domain.Session, error) { return nil, nil }}
	r := authTestRouter(New(nil, auth, nil, nil, Options{}))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/auth/session", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	body := decodeBody(t, w)
	if body["authenticated"] != false || body["is_admin"] != false {
		t.Fatalf("body = %v", body)
	}
}

func TestSessionInfo_Admin(t *testing.T) {
	auth := &stubAuth{
		session: func(id string) (*domain.Session, error) {
			if id != "sess-1" {
				t.Fatalf("session id = %q", id)
			}
			return &domain.Session{ID: "sess-1", Email: "admin@locus.app"}, nil
		},
		admin: true,
	}
	r := authTestRouter(New(nil, auth, nil, nil, Options{}))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/auth/session", nil)
	req.AddCookie(&http.Cookie{Name: middleware.SessionCookie, Value: "sess-1"})
	r.ServeHTTP(w, req)

	body := decodeBody(t, w)
	if body["authenticated"] != true || body["is_admin"] != true || body["email"] != "admin@locus.app" {
		t.Fatalf("body = %v", body)
	}
}

func TestSignOut_ClearsCookie(t *testing.T) {
	var dropped string
	auth := &stubAuth{signout: func(id string) error {
		dropped = id
		return nil
	}}
	r := authTestRouter(New(nil, auth, nil, nil, Options{}))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/auth/signout", nil)
	req.AddCookie(&http.Cookie{Name: middleware.SessionCookie, Value: "sess-1"})
	r.ServeHTTP(w, req)

	if w.Code != http.StatusNoContent {
		t.Fatalf("status = %d", w.Code)
	}
	if dropped != "sess-1" {
		t.Fatalf("dropped = %q", dropped)
	}
	setCookie := w.Header().Get("Set-Cookie")
	if !strings.Contains(setCookie, middleware.SessionCookie+"=") || !strings.Contains(setCookie, "Max-Age=0") {
		t.Fatalf("expected cookie cleared, got %q", setCookie)
	}
}
