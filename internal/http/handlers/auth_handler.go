// Auth HTTP handlers.
//
// This file exposes the magic-link sign-in flow:
//   - POST /api/auth/magic-link  (request a sign-in link)
//   - GET  /api/auth/callback    (redeem the link, set the session cookie)
//   - GET  /api/auth/session     (report the caller's session state)
//   - POST /api/auth/signout     (drop the session)
//
// The session rides in an HTTP-only cookie. Admin gating happens in
// middleware.RequireAdmin, not here; this file only establishes and reports
// sessions.
package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/CalebBennett-Harper/locus/internal/http/middleware"
	"github.com/CalebBennett-Harper/locus/internal/services"
)

// MagicLinkRequest is the JSON payload for requesting a sign-in link.
type MagicLinkRequest struct {
	Email string `json:"email" binding:"required" example:"admin@locus.app"`
}

// MagicLinkResponse acknowledges the request without revealing whether the
// address matters.
type MagicLinkResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// SessionResponse reports the caller's session state.
type SessionResponse struct {
	Authenticated bool   `json:"authenticated"`
	IsAdmin       bool   `json:"is_admin"`
	Email         string `json:"email,omitempty"`
}

// RequestMagicLink godoc
// @ID          requestMagicLink
// @Summary     Request a sign-in link
// @Description Emails a single-use sign-in link. A link goes to any address; only the configured admin's session passes the gate.
// @Tags        Auth
// @Accept      json
// @Produce     json
//
// @Param       body  body  handlers.MagicLinkRequest  true  "Address"
//
// @Success     200  {object}  handlers.MagicLinkResponse
// @Failure     400  {object}  handlers.ErrorResponse
// @Failure     500  {object}  handlers.ErrorResponse
// @Router      /auth/magic-link [post]
func (h *Handlers) RequestMagicLink(c *gin.Context) {
	var req MagicLinkRequest
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.Email) == "" {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "email is required")
		return
	}

	if err := h.auth.RequestMagicLink(c.Request.Context(), req.Email); err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeInternal, "failed to send sign-in link")
		return
	}
	ok(c, http.StatusOK, MagicLinkResponse{
		Success: true,
		Message: "Check your email for a sign-in link",
	})
}

// Callback godoc
// @ID          authCallback
// @Summary     Redeem a sign-in link
// @Description Consumes the single-use token, sets the session cookie, and redirects to the dashboard.
// @Tags        Auth
// @Produce     json
//
// @Param       token  query  string  true  "Login token"
//
// @Success     302  {string}  string  "Redirect"
// @Failure     400  {object}  handlers.ErrorResponse
// @Failure     401  {object}  handlers.ErrorResponse  "Invalid or expired link"
// @Router      /auth/callback [get]
func (h *Handlers) Callback(c *gin.Context) {
	token := c.Query("token")
	if token == "" {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "token is required")
		return
	}

	sess, err := h.auth.Redeem(c.Request.Context(), token)
	if err != nil {
		if errors.Is(err, services.ErrTokenInvalid) {
			fail(c, http.StatusUnauthorized, ErrCodeUnauthorized, "invalid or expired sign-in link")
			return
		}
		fail(c, http.StatusInternalServerError, ErrCodeInternal, "failed to establish session")
		return
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.SessionCookie, sess.ID,
		int(h.opts.SessionTTL.Seconds()), "/", "", h.opts.SecureCookies, true)
	c.Redirect(http.StatusFound, h.opts.PostLoginRedirect)
}

// SessionInfo godoc
// @ID          sessionInfo
// @Summary     Current session state
// @Tags        Auth
// @Produce     json
// @Success     200  {object}  handlers.SessionResponse
// @Router      /auth/session [get]
func (h *Handlers) SessionInfo(c *gin.Context) {
	token, _ := c.Cookie(middleware.SessionCookie)
	sess, err := h.auth.Session(c.Request.Context(), token)
	if err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeInternal, "failed to resolve session")
		return
	}
	if sess == nil {
		ok(c, http.StatusOK, SessionResponse{})
		return
	}
	ok(c, http.StatusOK, SessionResponse{
		Authenticated: true,
		IsAdmin:       h.auth.IsAdmin(sess),
		Email:         sess.Email,
	})
}

// SignOut godoc
// @ID          signOut
// @Summary     Drop the current session
// @Tags        Auth
// @Produce     json
// @Success     204  {string}  string  "No Content"
// @Router      /auth/signout [post]
func (h *Handlers) SignOut(c *gin.Context) {
	token, _ := c.Cookie(middleware.SessionCookie)
	if err := h.auth.SignOut(c.Request.Context(), token); err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeInternal, "failed to sign out")
		return
	}
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.SessionCookie, "", -1, "/", "", h.opts.SecureCookies, true)
	noContent(c)
}
