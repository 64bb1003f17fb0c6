package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/CalebBennett-Harper/locus/internal/domain"
	"github.com/CalebBennett-Harper/locus/internal/services"
)

//
// Stubs
//

type stubWaitlist struct {
	create       func(domain.SignupForm) (*domain.Signup, error)
	list         func() ([]domain.Signup, error)
	updateStatus func(id, status string, notes *string) (*domain.Signup, error)
	updateFull   func(*domain.Signup) (*domain.Signup, error)
	del          func(string) error
	stats        func() (domain.Stats, error)
}

func (s *stubWaitlist) Create(_ context.Context, f domain.SignupForm) (*domain.Signup, error) {
	return s.create(f)
}
func (s *stubWaitlist) List(context.Context) ([]domain.Signup, error) { return s.list() }
func (s *stubWaitlist) UpdateStatus(_ context.Context, id, status string, notes *string) (*domain.Signup, error) {
	return s.updateStatus(id, status, notes)
}
func (s *stubWaitlist) UpdateFull(_ context.Context, rec *domain.Signup) (*domain.Signup, error) {
	return s.updateFull(rec)
}
func (s *stubWaitlist) Delete(_ context.Context, id string) error { return s.del(id) }
func (s *stubWaitlist) Stats(context.Context) (domain.Stats, error) {
	return s.stats()
}

type stubPrivileged struct {
	create func(*domain.Signup) (*domain.Signup, error)
}

func (s *stubPrivileged) CreateSignup(_ context.Context, rec *domain.Signup) (*domain.Signup, error) {
	return s.create(rec)
}

type stubMailer struct {
	sent chan domain.Signup
}

func (s *stubMailer) SendWelcome(rec domain.Signup) {
	if s.sent != nil {
		s.sent <- rec
	}
}

//
// Helpers
//

func testRouter(h *Handlers) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	api := r.Group("/api")
	api.POST("/waitlist", h.SubmitWaitlist)
	api.POST("/signup", h.PrivilegedSignup)
	api.POST("/send-welcome-email", h.SendWelcomeEmail)
	r.GET("/health", h.Health)
	return r
}

func postJSON(r *gin.Engine, path, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var m map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &m); err != nil {
		t.Fatalf("invalid JSON body %q: %v", w.Body.String(), err)
	}
	return m
}

func storedSignup() *domain.Signup {
	return &domain.Signup{
		ID:         "id-1",
		Name:       "Ada Lovelace",
		Email:      "ada@example.com",
		Occupation: "Engineer",
		Age:        21,
		Status:     domain.StatusPending,
		CreatedAt:  time.Now().UTC(),
	}
}

//
// POST /api/waitlist
//

func TestSubmitWaitlist_Success_AgeAsNumber(t *testing.T) {
	var gotForm domain.SignupForm
	wl := &stubWaitlist{create: func(f domain.SignupForm) (*domain.Signup, error) {
		gotForm = f
		return storedSignup(), nil
	}}
	h := New(wl, nil, nil, nil, Options{})
	r := testRouter(h)

	w := postJSON(r, "/api/waitlist",
		`{"name":"Ada Lovelace","email":"ada@example.com","occupation":"Engineer","age":21}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
	}
	if gotForm.Age != "21" {
		t.Fatalf("numeric age not coerced to string, got %q", gotForm.Age)
	}
	body := decodeBody(t, w)
	result, ok := body["result"].(map[string]any)
	if !ok || result["email"] != "ada@example.com" {
		t.Fatalf("unexpected body: %v", body)
	}
}

func TestSubmitWaitlist_AgeAsString(t *testing.T) {
	wl := &stubWaitlist{create: func(f domain.SignupForm) (*domain.Signup, error) {
		if f.Age != "21" {
			t.Fatalf("age = %q", f.Age)
		}
		return storedSignup(), nil
	}}
	r := testRouter(New(wl, nil, nil, nil, Options{}))

	w := postJSON(r, "/api/waitlist",
		`{"name":"Ada","email":"ada@example.com","occupation":"Engineer","age":"21"}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d", w.Code)
	}
}

func TestSubmitWaitlist_ValidationErrors(t *testing.T) {
	wl := &stubWaitlist{create: func(domain.SignupForm) (*domain.Signup, error) {
		return nil, &services.ValidationError{Fields: map[string]string{
			"name": "Name is required",
			"age":  "Age must be between 18-25",
		}}
	}}
	r := testRouter(New(wl, nil, nil, nil, Options{}))

	w := postJSON(r, "/api/waitlist", `{"email":"ada@example.com"}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", w.Code)
	}
	body := decodeBody(t, w)
	if body["code"] != "validation_failed" {
		t.Fatalf("code = %v", body["code"])
	}
	errs, ok := body["errors"].(map[string]any)
	if !ok || errs["name"] != "Name is required" || errs["age"] != "Age must be between 18-25" {
		t.Fatalf("errors = %v", body["errors"])
	}
}

func TestSubmitWaitlist_DuplicateEmail(t *testing.T) {
	wl := &stubWaitlist{create: func(domain.SignupForm) (*domain.Signup, error) {
		return nil, services.ErrDuplicateEmail
	}}
	r := testRouter(New(wl, nil, nil, nil, Options{}))

	w := postJSON(r, "/api/waitlist",
		`{"name":"Ada","email":"ada@example.com","occupation":"Engineer","age":"21"}`)
	if w.Code != http.StatusConflict {
		t.Fatalf("status = %d", w.Code)
	}
	if body := decodeBody(t, w); body["code"] != "duplicate_email" {
		t.Fatalf("code = %v", body["code"])
	}
}

func TestSubmitWaitlist_StoreUnavailable(t *testing.T) {
	for _, sentinel := range []error{services.ErrAuthorizationDenied, services.ErrBackendUnavailable} {
		wl := &stubWaitlist{create: func(domain.SignupForm) (*domain.Signup, error) {
			return nil, sentinel
		}}
		r := testRouter(New(wl, nil, nil, nil, Options{}))

		w := postJSON(r, "/api/waitlist",
			`{"name":"Ada","email":"ada@example.com","occupation":"Engineer","age":"21"}`)
		if w.Code != http.StatusServiceUnavailable {
			t.Fatalf("%v: status = %d", sentinel, w.Code)
		}
		if body := decodeBody(t, w); body["code"] != "backend_unavailable" {
			t.Fatalf("%v: code = %v", sentinel, body["code"])
		}
	}
}

func TestSubmitWaitlist_BadJSON(t *testing.T) {
	wl := &stubWaitlist{create: func(domain.SignupForm) (*domain.Signup, error) {
		t.Fatal("service must not be called on malformed JSON")
		return nil, nil
	}}
	r := testRouter(New(wl, nil, nil, nil, Options{}))

	w := postJSON(r, "/api/waitlist", `{not json`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", w.Code)
	}
}

//
// POST /api/signup
//

func TestPrivilegedSignup_MissingFields(t *testing.T) {
	priv := &stubPrivileged{create: func(*domain.Signup) (*domain.Signup, error) {
		t.Fatal("writer must not be called")
		return nil, nil
	}}
	r := testRouter(New(nil, nil, priv, nil, Options{}))

	w := postJSON(r, "/api/signup", `{"name":"Ada","email":"ada@example.com"}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", w.Code)
	}
	body := decodeBody(t, w)
	if body["error"] != "Missing required fields" {
		t.Fatalf("error = %v", body["error"])
	}
	if body["result"] != nil {
		t.Fatalf("result should be null, got %v", body["result"])
	}
}

func TestPrivilegedSignup_Success(t *testing.T) {
	priv := &stubPrivileged{create: func(rec *domain.Signup) (*domain.Signup, error) {
		if rec.Age != 21 || rec.Email != "ada@example.com" {
			t.Fatalf("unexpected record: %+v", rec)
		}
		stored := *rec
		stored.ID = "id-9"
		return &stored, nil
	}}
	r := testRouter(New(nil, nil, priv, nil, Options{}))

	w := postJSON(r, "/api/signup",
		`{"name":"Ada","email":"ada@example.com","occupation":"Engineer","age":"21"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
	}
	// The fallback client requires both keys present, error explicitly null.
	raw := w.Body.String()
	if !strings.Contains(raw, `"error":null`) {
		t.Fatalf("expected error:null in %s", raw)
	}
	body := decodeBody(t, w)
	result, ok := body["result"].(map[string]any)
	if !ok || result["id"] != "id-9" {
		t.Fatalf("result = %v", body["result"])
	}
}

func TestPrivilegedSignup_Duplicate(t *testing.T) {
	priv := &stubPrivileged{create: func(*domain.Signup) (*domain.Signup, error) {
		return nil, errors.New("UNIQUE constraint failed: waitlist_signups.email")
	}}
	r := testRouter(New(nil, nil, priv, nil, Options{}))

	w := postJSON(r, "/api/signup",
		`{"name":"Ada","email":"ada@example.com","occupation":"Engineer","age":"21"}`)
	if w.Code != http.StatusConflict {
		t.Fatalf("status = %d", w.Code)
	}
	if body := decodeBody(t, w); body["error"] != "Email already registered" {
		t.Fatalf("error = %v", body["error"])
	}
}

func TestPrivilegedSignup_NonNumericAge(t *testing.T) {
	priv := &stubPrivileged{create: func(*domain.Signup) (*domain.Signup, error) {
		t.Fatal("writer must not be called")
		return nil, nil
	}}
	r := testRouter(New(nil, nil, priv, nil, Options{}))

	w := postJSON(r, "/api/signup",
		`{"name":"Ada","email":"ada@example.com","occupation":"Engineer","age":"abc"}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", w.Code)
	}
}

//
// POST /api/send-welcome-email
//

func TestSendWelcomeEmail_Success(t *testing.T) {
	mailer := &stubMailer{sent: make(chan domain.Signup, 1)}
	r := testRouter(New(nil, nil, nil, mailer, Options{}))

	w := postJSON(r, "/api/send-welcome-email",
		`{"name":"Ada","email":"ada@example.com","cities":"London, Paris"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}

	select {
	case rec := <-mailer.sent:
		if rec.Email != "ada@example.com" || rec.Cities != "London, Paris" {
			t.Fatalf("unexpected dispatch: %+v", rec)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("welcome email never dispatched")
	}

	body := decodeBody(t, w)
	if body["success"] != true {
		t.Fatalf("success = %v", body["success"])
	}
	email, ok := body["email"].(map[string]any)
	if !ok || email["to"] != "ada@example.com" || email["subject"] == "" {
		t.Fatalf("email = %v", body["email"])
	}
}

func TestSendWelcomeEmail_MissingFields(t *testing.T) {
	mailer := &stubMailer{}
	r := testRouter(New(nil, nil, nil, mailer, Options{}))

	w := postJSON(r, "/api/send-welcome-email", `{"name":"Ada"}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", w.Code)
	}
}

//
// GET /health
//

func TestHealth(t *testing.T) {
	r := testRouter(New(nil, nil, nil, nil, Options{}))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	if body := decodeBody(t, w); body["status"] != "ok" {
		t.Fatalf("body = %v", body)
	}
}
