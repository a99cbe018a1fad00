package sheets

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/oauth2"
)

var (
	// ErrNoIdentity means neither REPL_IDENTITY nor WEB_REPL_RENEWAL is set.
	ErrNoIdentity = errors.New("X_REPLIT_TOKEN not found")
	// ErrNotConnected means the connector has no usable Google Sheets credential.
	ErrNotConnected = errors.New("Google Sheet not connected")
)

// ConnectorConfig locates the connector endpoint that hands out the
// Google Sheets access token for this deployment.
type ConnectorConfig struct {
	Host           string
	ReplIdentity   string
	WebReplRenewal string
	// DefaultTTL applies when the connector does not report an expiry.
	DefaultTTL time.Duration
	HTTPClient *http.Client
	// BaseURL overrides "https://"+Host.
	BaseURL string
}

type connectionResponse struct {
	Items []struct {
		Settings struct {
			AccessToken string `json:"access_token"`
			ExpiresAt   string `json:"expires_at"`
			OAuth       struct {
				Credentials struct {
					AccessToken string `json:"access_token"`
				} `json:"credentials"`
			} `json:"oauth"`
		} `json:"settings"`
	} `json:"items"`
}

type connectorSource struct {
	cfg    ConnectorConfig
	client *http.Client
	now    func() time.Time
}

// NewTokenSource returns a lazily-fetching token source. The token is kept in
// memory and fetched again only once it has expired.
func NewTokenSource(cfg ConnectorConfig) oauth2.TokenSource {
	client := cfg.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}
	if cfg.DefaultTTL <= 0 {
		cfg.DefaultTTL = 50 * time.Minute
	}
	return oauth2.ReuseTokenSource(nil, &connectorSource{cfg: cfg, client: client, now: time.Now})
}

func (c ConnectorConfig) identity() (string, error) {
	switch {
	case c.ReplIdentity != "":
		return "repl " + c.ReplIdentity, nil
	case c.WebReplRenewal != "":
		return "depl " + c.WebReplRenewal, nil
	default:
		return "", ErrNoIdentity
	}
}

func (c ConnectorConfig) endpoint() string {
	base := c.BaseURL
	if base == "" {
		base = "https://" + c.Host
	}
	q := url.Values{}
	q.Set("include_secrets", "true")
	q.Set("connector_names", "google-sheet")
	return strings.TrimSuffix(base, "/") + "/api/v2/connection?" + q.Encode()
}

func (s *connectorSource) Token() (*oauth2.Token, error) {
	ident, err := s.cfg.identity()
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequest(http.MethodGet, s.cfg.endpoint(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	// sent verbatim; Header.Set would canonicalize the underscore name
	req.Header["X_REPLIT_TOKEN"] = []string{ident}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch connection: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch connection: unexpected status %d", resp.StatusCode)
	}

	var body connectionResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("decode connection: %w", err)
	}
	if len(body.Items) == 0 {
		return nil, ErrNotConnected
	}

	settings := body.Items[0].Settings
	access := settings.AccessToken
	if access == "" {
		access = settings.OAuth.Credentials.AccessToken
	}
	if access == "" {
		return nil, ErrNotConnected
	}

	expiry := s.now().Add(s.cfg.DefaultTTL)
	if settings.ExpiresAt != "" {
		if t, err := time.Parse(time.RFC3339, settings.ExpiresAt); err == nil {
			expiry = t
		}
	}

	return &oauth2.Token{
		AccessToken: access,
		TokenType:   "Bearer",
		Expiry:      expiry,
	}, nil
}
