package oauth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"cinetrip-backend/internal/config"
)

var (
	ErrNotConfigured    = errors.New("google sign-in is not configured")
	ErrTokenRejected    = errors.New("google id token rejected")
	ErrAudienceMismatch = errors.New("google id token issued for another client")
	ErrEmailNotVerified = errors.New("google account email is not verified")
)

// GoogleIdentity is the verified subset of an ID token.
type GoogleIdentity struct {
	Subject string
	Email   string
	Name    string
	Picture string
}

// GoogleVerifier checks ID tokens with Google's tokeninfo endpoint.
type GoogleVerifier struct {
	clientID     string
	tokenInfoURL string
	httpClient   *http.Client
}

func NewGoogleVerifier(cfg config.GoogleConfig) *GoogleVerifier {
	return &GoogleVerifier{
		clientID:     strings.TrimSpace(cfg.ClientID),
		tokenInfoURL: cfg.TokenInfoURL,
		httpClient:   &http.Client{Timeout: 10 * time.Second},
	}
}

type tokenInfo struct {
	Aud           string `json:"aud"`
	Sub           string `json:"sub"`
	Email         string `json:"email"`
	EmailVerified string `json:"email_verified"`
	Name          string `json:"name"`
	Picture       string `json:"picture"`
}

// Verify returns ErrTokenRejected (or one of its refinements) for tokens Google does not accept.
func (v *GoogleVerifier) Verify(ctx context.Context, idToken string) (*GoogleIdentity, error) {
	if v.clientID == "" {
		return nil, ErrNotConfigured
	}

	endpoint, err := url.Parse(v.tokenInfoURL)
	if err != nil {
		return nil, fmt.Errorf("parse tokeninfo url: %w", err)
	}
	q := endpoint.Query()
	q.Set("id_token", idToken)
	endpoint.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("build tokeninfo request: %w", err)
	}

	resp, err := v.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("call tokeninfo: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusBadRequest || resp.StatusCode == http.StatusUnauthorized {
		return nil, ErrTokenRejected
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("tokeninfo returned %s", resp.Status)
	}

	var info tokenInfo
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return nil, fmt.Errorf("decode tokeninfo: %w", err)
	}

	if info.Aud != v.clientID {
		return nil, fmt.Errorf("%w: %w", ErrTokenRejected, ErrAudienceMismatch)
	}
	if info.Sub == "" || info.Email == "" {
		return nil, ErrTokenRejected
	}
	if info.EmailVerified != "true" {
		return nil, fmt.Errorf("%w: %w", ErrTokenRejected, ErrEmailNotVerified)
	}

	return &GoogleIdentity{
		Subject: info.Sub,
		Email:   strings.ToLower(info.Email),
		Name:    strings.TrimSpace(info.Name),
		Picture: info.Picture,
	}, nil
}
