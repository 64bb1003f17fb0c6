// Package services – privileged fallback writer.
//
// The public submission path runs with restricted, policy-limited write
// permissions. When that write is denied, WaitlistService retries exactly
// once through a FallbackWriter. Two implementations are provided: an HTTP
// client for a remote /api/signup endpoint holding service credentials, and
// a direct writer over an unrestricted DB handle (used when this process is
// itself the privileged endpoint).
package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/CalebBennett-Harper/locus/internal/domain"
)

// HTTPFallback posts the rejected insert to a privileged signup endpoint.
type HTTPFallback struct {
	// BaseURL is the endpoint root, e.g. "https://locus.app".
	BaseURL string
	// Client is the HTTP client used for the request. Defaults to a client
	// with a 10s timeout when nil.
	Client *http.Client
}

// fallbackPayload mirrors the /api/signup request schema.
type fallbackPayload struct {
	Name       string `json:"name"`
	Email      string `json:"email"`
	Occupation string `json:"occupation"`
	Age        string `json:"age"`
	University string `json:"university,omitempty"`
	Cities     string `json:"cities,omitempty"`
	Linkedin   string `json:"linkedin,omitempty"`
}

// fallbackResponse mirrors the /api/signup response schema.
type fallbackResponse struct {
	Result *domain.Signup `json:"result"`
	Error  *string        `json:"error"`
}

// CreateSignup submits the record through the privileged endpoint and
// returns the stored record. A non-2xx response or a response-level error
// is surfaced as a plain error; the caller does not retry further.
func (f *HTTPFallback) CreateSignup(ctx context.Context, s *domain.Signup) (*domain.Signup, error) {
	body, err := json.Marshal(fallbackPayload{
		Name:       s.Name,
		Email:      s.Email,
		Occupation: s.Occupation,
		Age:        strconv.Itoa(s.Age),
		University: s.University,
		Cities:     s.Cities,
		Linkedin:   s.LinkedinURL,
	})
	if err != nil {
		return nil, err
	}

	url := strings.TrimRight(f.BaseURL, "/") + "/api/signup"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	client := f.Client
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var out fallbackResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("fallback endpoint returned status %d", resp.StatusCode)
	}
	if resp.StatusCode != http.StatusOK || out.Result == nil {
		if out.Error != nil {
			return nil, fmt.Errorf("fallback insert failed: %s", *out.Error)
		}
		return nil, fmt.Errorf("fallback endpoint returned status %d", resp.StatusCode)
	}
	return out.Result, nil
}

// DBFallback writes through an unrestricted GORM handle, bypassing the
// policy that rejected the original insert.
type DBFallback struct {
	DB   *gorm.DB
	Repo SignupRepo
}

// CreateSignup inserts the record with elevated credentials.
func (f *DBFallback) CreateSignup(ctx context.Context, s *domain.Signup) (*domain.Signup, error) {
	return f.Repo.CreateSignup(ctx, f.DB, s)
}
