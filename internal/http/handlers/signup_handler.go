// Public signup HTTP handlers.
//
// This file exposes the unauthenticated endpoints:
//   - POST /api/waitlist            (validated public submission)
//   - POST /api/signup              (privileged insert, used as the fallback
//     target when the public write path is denied)
//   - POST /api/send-welcome-email  (best-effort confirmation dispatch)
//   - GET  /health                  (liveness)
//
// Handlers are transport-thin: they validate input, call application
// services, and translate results into HTTP responses.
package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/CalebBennett-Harper/locus/internal/domain"
	"github.com/CalebBennett-Harper/locus/internal/mail"
	"github.com/CalebBennett-Harper/locus/internal/services"
)

//
// Service contracts (context-aware)
//

// WaitlistService defines the signup lifecycle operations consumed by HTTP
// handlers. Implementations must be safe for concurrent use and honor the
// provided context.
type WaitlistService interface {
	// Create validates and stores a public submission.
	Create(ctx context.Context, form domain.SignupForm) (*domain.Signup, error)
	// List returns every signup, newest first.
	List(ctx context.Context) ([]domain.Signup, error)
	// UpdateStatus moves a signup through the review workflow.
	UpdateStatus(ctx context.Context, id, status string, notes *string) (*domain.Signup, error)
	// UpdateFull replaces the mutable fields of a signup.
	UpdateFull(ctx context.Context, rec *domain.Signup) (*domain.Signup, error)
	// Delete removes a signup permanently.
	Delete(ctx context.Context, id string) error
	// Stats computes the aggregate dashboard counters.
	Stats(ctx context.Context) (domain.Stats, error)
}

// PrivilegedWriter inserts a signup with elevated credentials, bypassing the
// policy that restricts the public write path.
type PrivilegedWriter interface {
	CreateSignup(ctx context.Context, s *domain.Signup) (*domain.Signup, error)
}

// WelcomeDispatcher delivers the signup confirmation email. Best-effort by
// contract: implementations swallow failures.
type WelcomeDispatcher interface {
	SendWelcome(s domain.Signup)
}

// AuthService defines the magic-link sign-in operations consumed by the auth
// handlers.
type AuthService interface {
	RequestMagicLink(ctx context.Context, email string) error
	Redeem(ctx context.Context, tokenID string) (*domain.Session, error)
	Session(ctx context.Context, sessionID string) (*domain.Session, error)
	SignOut(ctx context.Context, sessionID string) error
	IsAdmin(sess *domain.Session) bool
}

//
// Handler wiring
//

// Options carries the transport-level knobs the handlers need.
type Options struct {
	// SecureCookies marks the session cookie Secure. Enable in production.
	SecureCookies bool
	// SessionTTL bounds the session cookie lifetime. Should match the
	// AuthService session TTL. Defaults to 24h when zero.
	SessionTTL time.Duration
	// PostLoginRedirect is where the magic-link callback sends the browser
	// after establishing a session. Defaults to "/".
	PostLoginRedirect string
}

// Handlers groups the HTTP endpoints for signups, auth, email, and export.
type Handlers struct {
	waitlist   WaitlistService
	auth       AuthService
	privileged PrivilegedWriter
	mailer     WelcomeDispatcher
	opts       Options
}

// New constructs a Handlers instance bound to the given services.
// privileged and mailer may be nil when the corresponding endpoints are not
// mounted.
func New(waitlist WaitlistService, auth AuthService, privileged PrivilegedWriter, mailer WelcomeDispatcher, opts Options) *Handlers {
	if opts.SessionTTL <= 0 {
		opts.SessionTTL = 24 * time.Hour
	}
	if opts.PostLoginRedirect == "" {
		opts.PostLoginRedirect = "/"
	}
	return &Handlers{
		waitlist:   waitlist,
		auth:       auth,
		privileged: privileged,
		mailer:     mailer,
		opts:       opts,
	}
}

//
// DTOs
//

// flexString accepts a JSON string or number and stores its textual form.
// The landing page sends age as a string; other clients send a number.
type flexString string

func (f *flexString) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || string(data) == "null" {
		*f = ""
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = flexString(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*f = flexString(n.String())
	return nil
}

// SignupRequest is the JSON payload for POST /api/waitlist and
// POST /api/signup.
type SignupRequest struct {
	Name       string     `json:"name" example:"Ada Lovelace"`
	Email      string     `json:"email" example:"ada@example.com"`
	Occupation string     `json:"occupation" example:"Engineer"`
	Age        flexString `json:"age" swaggertype:"string" example:"21"`
	University string     `json:"university,omitempty"`
	Cities     string     `json:"cities,omitempty"`
	Linkedin   string     `json:"linkedin,omitempty"`
}

func (r SignupRequest) form() domain.SignupForm {
	return domain.SignupForm{
		Name:       r.Name,
		Email:      r.Email,
		Occupation: r.Occupation,
		Age:        string(r.Age),
		University: r.University,
		Cities:     r.Cities,
		Linkedin:   r.Linkedin,
	}
}

// SubmitResponse wraps a stored signup.
type SubmitResponse struct {
	Result *domain.Signup `json:"result"`
}

// PrivilegedResponse mirrors the fallback endpoint contract: exactly one of
// result and error is set.
type PrivilegedResponse struct {
	Result *domain.Signup `json:"result"`
	Error  *string        `json:"error"`
}

// WelcomeEmailRequest is the JSON payload for POST /api/send-welcome-email.
type WelcomeEmailRequest struct {
	Name   string `json:"name" example:"Ada Lovelace"`
	Email  string `json:"email" example:"ada@example.com"`
	Cities string `json:"cities,omitempty" example:"London, Paris"`
}

// WelcomeEmailResponse reports the dispatch. The shape is identical whether
// the mail was sent for real or only logged in development.
type WelcomeEmailResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Email   struct {
		To      string `json:"to"`
		Subject string `json:"subject"`
	} `json:"email"`
}

//
// Handlers
//

// SubmitWaitlist godoc
// @ID          submitWaitlist
// @Summary     Join the waitlist
// @Description Validates and stores a public signup, then dispatches a welcome email best-effort.
// @Tags        Waitlist
// @Accept      json
// @Produce     json
//
// @Param       body  body  handlers.SignupRequest  true  "Signup payload"
//
// @Success     201  {object}  handlers.SubmitResponse
// @Failure     400  {object}  handlers.ValidationErrorResponse  "Validation failed"
// @Failure     409  {object}  handlers.ErrorResponse            "Email already registered"
// @Failure     503  {object}  handlers.ErrorResponse            "Store unavailable"
// @Router      /waitlist [post]
func (h *Handlers) SubmitWaitlist(c *gin.Context) {
	var req SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid JSON body")
		return
	}

	rec, err := h.waitlist.Create(c.Request.Context(), req.form())
	if err != nil {
		var verr *services.ValidationError
		switch {
		case errors.As(err, &verr):
			failValidation(c, verr.Fields)
		case errors.Is(err, services.ErrDuplicateEmail):
			fail(c, http.StatusConflict, ErrCodeDuplicateEmail, "email already registered")
		case errors.Is(err, services.ErrAuthorizationDenied), errors.Is(err, services.ErrBackendUnavailable):
			fail(c, http.StatusServiceUnavailable, ErrCodeBackendUnavailable, "signup store unavailable")
		default:
			fail(c, http.StatusInternalServerError, ErrCodeInternal, "failed to store signup")
		}
		return
	}
	ok(c, http.StatusCreated, SubmitResponse{Result: rec})
}

// PrivilegedSignup godoc
// @ID          privilegedSignup
// @Summary     Privileged signup insert
// @Description Inserts a signup with elevated credentials. Fallback target for denied public writes; skips the welcome email (the caller already owns it).
// @Tags        Waitlist
// @Accept      json
// @Produce     json
//
// @Param       body  body  handlers.SignupRequest  true  "Signup payload"
//
// @Success     200  {object}  handlers.PrivilegedResponse
// @Failure     400  {object}  handlers.PrivilegedResponse  "Missing required fields"
// @Failure     409  {object}  handlers.PrivilegedResponse  "Email already registered"
// @Failure     500  {object}  handlers.PrivilegedResponse  "Insert failed"
// @Router      /signup [post]
func (h *Handlers) PrivilegedSignup(c *gin.Context) {
	var req SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		privErr(c, http.StatusBadRequest, "invalid JSON body")
		return
	}

	if strings.TrimSpace(req.Name) == "" || strings.TrimSpace(req.Email) == "" ||
		strings.TrimSpace(req.Occupation) == "" || strings.TrimSpace(string(req.Age)) == "" {
		privErr(c, http.StatusBadRequest, "Missing required fields")
		return
	}
	age, err := strconv.Atoi(strings.TrimSpace(string(req.Age)))
	if err != nil {
		privErr(c, http.StatusBadRequest, "Age must be a number")
		return
	}

	rec, err := h.privileged.CreateSignup(c.Request.Context(), &domain.Signup{
		Name:        strings.TrimSpace(req.Name),
		Email:       strings.TrimSpace(req.Email),
		Occupation:  strings.TrimSpace(req.Occupation),
		Age:         age,
		University:  strings.TrimSpace(req.University),
		Cities:      strings.TrimSpace(req.Cities),
		LinkedinURL: strings.TrimSpace(req.Linkedin),
	})
	if err != nil {
		if errors.Is(err, services.ErrDuplicateEmail) || isDuplicateMsg(err) {
			privErr(c, http.StatusConflict, "Email already registered")
			return
		}
		privErr(c, http.StatusInternalServerError, err.Error())
		return
	}
	ok(c, http.StatusOK, PrivilegedResponse{Result: rec})
}

// privErr writes the {result:null, error} shape the fallback client expects.
func privErr(c *gin.Context, status int, msg string) {
	c.AbortWithStatusJSON(status, PrivilegedResponse{Error: &msg})
}

// isDuplicateMsg covers raw driver errors the privileged path may surface
// without service-layer classification.
func isDuplicateMsg(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "unique constraint") || strings.Contains(msg, "duplicate key")
}

// SendWelcomeEmail godoc
// @ID          sendWelcomeEmail
// @Summary     Dispatch a welcome email
// @Description Sends (or, outside production, logs) the signup confirmation. Always reports the composed envelope; delivery is best-effort.
// @Tags        Email
// @Accept      json
// @Produce     json
//
// @Param       body  body  handlers.WelcomeEmailRequest  true  "Recipient"
//
// @Success     200  {object}  handlers.WelcomeEmailResponse
// @Failure     400  {object}  handlers.ErrorResponse  "Missing name or email"
// @Router      /send-welcome-email [post]
func (h *Handlers) SendWelcomeEmail(c *gin.Context) {
	var req WelcomeEmailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid JSON body")
		return
	}
	if strings.TrimSpace(req.Name) == "" || strings.TrimSpace(req.Email) == "" {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "name and email are required")
		return
	}

	go h.mailer.SendWelcome(domain.Signup{
		Name:   req.Name,
		Email:  req.Email,
		Cities: req.Cities,
	})

	resp := WelcomeEmailResponse{
		Success: true,
		Message: "Welcome email dispatched",
	}
	resp.Email.To = req.Email
	resp.Email.Subject = mail.WelcomeSubject
	ok(c, http.StatusOK, resp)
}

// Health godoc
// @ID          health
// @Summary     Liveness probe
// @Tags        Ops
// @Produce     json
// @Success     200  {object}  map[string]string
// @Router      /health [get]
func (h *Handlers) Health(c *gin.Context) {
	ok(c, http.StatusOK, gin.H{"status": "ok"})
}
