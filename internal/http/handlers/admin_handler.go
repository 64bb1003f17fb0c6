// Admin HTTP handlers.
//
// This file exposes the review workflow behind the admin gate:
//   - GET    /api/admin/signups            (full list, newest first)
//   - GET    /api/admin/stats              (aggregate counters)
//   - PATCH  /api/admin/signups/{id}/status
//   - PUT    /api/admin/signups/{id}      (full edit)
//   - DELETE /api/admin/signups/{id}
//   - GET    /api/export                  (CSV download of every signup)
package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/CalebBennett-Harper/locus/internal/domain"
	"github.com/CalebBennett-Harper/locus/internal/export"
	"github.com/CalebBennett-Harper/locus/internal/services"
)

// ListSignupsResponse wraps the full signup list.
type ListSignupsResponse struct {
	Signups []domain.Signup `json:"signups"`
}

// UpdateStatusRequest is the JSON payload for the status transition.
type UpdateStatusRequest struct {
	Status string  `json:"status" binding:"required" example:"approved"`
	Notes  *string `json:"notes,omitempty"`
}

// UpdateSignupRequest is the JSON payload for a full admin edit. Age accepts
// a string or a number, matching the public intake.
type UpdateSignupRequest struct {
	Name       string     `json:"name"`
	Email      string     `json:"email"`
	Occupation string     `json:"occupation"`
	Age        flexString `json:"age" swaggertype:"string"`
	University string     `json:"university"`
	Cities     string     `json:"cities"`
	Linkedin   string     `json:"linkedin_url"`
	Status     string     `json:"status"`
	Notes      string     `json:"notes"`
}

// ListSignups godoc
// @ID          listSignups
// @Summary     List all signups
// @Tags        Admin
// @Produce     json
// @Success     200  {object}  handlers.ListSignupsResponse
// @Failure     401  {object}  handlers.ErrorResponse
// @Failure     503  {object}  handlers.ErrorResponse
// @Router      /admin/signups [get]
func (h *Handlers) ListSignups(c *gin.Context) {
	items, err := h.waitlist.List(c.Request.Context())
	if err != nil {
		fail(c, http.StatusServiceUnavailable, ErrCodeBackendUnavailable, "signup store unavailable")
		return
	}
	ok(c, http.StatusOK, ListSignupsResponse{Signups: items})
}

// GetStats godoc
// @ID          getStats
// @Summary     Aggregate signup counters
// @Tags        Admin
// @Produce     json
// @Success     200  {object}  domain.Stats
// @Failure     401  {object}  handlers.ErrorResponse
// @Failure     503  {object}  handlers.ErrorResponse
// @Router      /admin/stats [get]
func (h *Handlers) GetStats(c *gin.Context) {
	stats, err := h.waitlist.Stats(c.Request.Context())
	if err != nil {
		fail(c, http.StatusServiceUnavailable, ErrCodeBackendUnavailable, "signup store unavailable")
		return
	}
	ok(c, http.StatusOK, stats)
}

// UpdateStatus godoc
// @ID          updateSignupStatus
// @Summary     Transition a signup's review status
// @Description Sets status to pending, approved, or rejected. Notes are only written when present in the payload.
// @Tags        Admin
// @Accept      json
// @Produce     json
//
// @Param       id    path  string                         true  "Signup ID"
// @Param       body  body  handlers.UpdateStatusRequest  true  "New status"
//
// @Success     200  {object}  domain.Signup
// @Failure     400  {object}  handlers.ErrorResponse  "Unknown status"
// @Failure     404  {object}  handlers.ErrorResponse  "Signup not found"
// @Router      /admin/signups/{id}/status [patch]
func (h *Handlers) UpdateStatus(c *gin.Context) {
	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "status is required")
		return
	}

	rec, err := h.waitlist.UpdateStatus(c.Request.Context(), c.Param("id"), req.Status, req.Notes)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidStatus):
			fail(c, http.StatusBadRequest, ErrCodeBadRequest, "status must be pending, approved, or rejected")
		case errors.Is(err, services.ErrSignupNotFound):
			fail(c, http.StatusNotFound, ErrCodeNotFound, "signup not found")
		default:
			fail(c, http.StatusInternalServerError, ErrCodeInternal, "failed to update status")
		}
		return
	}
	ok(c, http.StatusOK, rec)
}

// UpdateSignup godoc
// @ID          updateSignup
// @Summary     Edit a signup
// @Description Replaces the mutable fields of a signup. ID and creation time never change.
// @Tags        Admin
// @Accept      json
// @Produce     json
//
// @Param       id    path  string                        true  "Signup ID"
// @Param       body  body  handlers.UpdateSignupRequest  true  "Edited record"
//
// @Success     200  {object}  domain.Signup
// @Failure     400  {object}  handlers.ErrorResponse
// @Failure     404  {object}  handlers.ErrorResponse
// @Failure     409  {object}  handlers.ErrorResponse  "Email already registered"
// @Router      /admin/signups/{id} [put]
func (h *Handlers) UpdateSignup(c *gin.Context) {
	var req UpdateSignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid JSON body")
		return
	}

	age := 0
	if s := strings.TrimSpace(string(req.Age)); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil {
			fail(c, http.StatusBadRequest, ErrCodeBadRequest, "age must be a number")
			return
		}
		age = n
	}

	rec, err := h.waitlist.UpdateFull(c.Request.Context(), &domain.Signup{
		ID:          c.Param("id"),
		Name:        req.Name,
		Email:       req.Email,
		Occupation:  req.Occupation,
		Age:         age,
		University:  req.University,
		Cities:      req.Cities,
		LinkedinURL: req.Linkedin,
		Status:      req.Status,
		Notes:       req.Notes,
	})
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidStatus):
			fail(c, http.StatusBadRequest, ErrCodeBadRequest, "status must be pending, approved, or rejected")
		case errors.Is(err, services.ErrDuplicateEmail):
			fail(c, http.StatusConflict, ErrCodeDuplicateEmail, "email already registered")
		case errors.Is(err, services.ErrSignupNotFound):
			fail(c, http.StatusNotFound, ErrCodeNotFound, "signup not found")
		default:
			fail(c, http.StatusInternalServerError, ErrCodeInternal, "failed to update signup")
		}
		return
	}
	ok(c, http.StatusOK, rec)
}

// DeleteSignup godoc
// @ID          deleteSignup
// @Summary     Delete a signup
// @Tags        Admin
// @Produce     json
// @Param       id  path  string  true  "Signup ID"
// @Success     204  {string}  string  "No Content"
// @Failure     404  {object}  handlers.ErrorResponse
// @Router      /admin/signups/{id} [delete]
func (h *Handlers) DeleteSignup(c *gin.Context) {
	if err := h.waitlist.Delete(c.Request.Context(), c.Param("id")); err != nil {
		if errors.Is(err, services.ErrSignupNotFound) {
			fail(c, http.StatusNotFound, ErrCodeNotFound, "signup not found")
			return
		}
		fail(c, http.StatusInternalServerError, ErrCodeInternal, "failed to delete signup")
		return
	}
	noContent(c)
}

// ExportCSV godoc
// @ID          exportCSV
// @Summary     Download every signup as CSV
// @Description Streams the full list in fixed column order with a dated attachment filename.
// @Tags        Admin
// @Produce     text/csv
// @Success     200  {string}  string  "CSV body"
// @Failure     401  {object}  handlers.ErrorResponse
// @Failure     503  {object}  handlers.ErrorResponse
// @Router      /export [get]
func (h *Handlers) ExportCSV(c *gin.Context) {
	items, err := h.waitlist.List(c.Request.Context())
	if err != nil {
		fail(c, http.StatusServiceUnavailable, ErrCodeBackendUnavailable, "signup store unavailable")
		return
	}

	body := export.CSV(items)
	c.Header("Content-Disposition", `attachment; filename="`+export.Filename(time.Now())+`"`)
	c.Data(http.StatusOK, "text/csv; charset=utf-8", []byte(body))
}
