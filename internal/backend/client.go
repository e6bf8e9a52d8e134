// Package backend implements the REST client for the JobCal backend service.
// All business data lives server-side; this package is the only place that
// talks to it.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strconv"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"go-jobcal-web/config"
	"go-jobcal-web/internal/domain"
	"go-jobcal-web/pkg/apperror"
	"go-jobcal-web/pkg/logger"
	"go-jobcal-web/pkg/session"
)

// apiPrefix is prepended to every backend path.
const apiPrefix = "/api"

const postingCacheTTL = 20 * time.Minute

type Client struct {
	baseURL  string
	http     *http.Client
	store    session.Store
	cfg      *config.Config
	postings *gocache.Cache
}

// NewClient builds the backend client. The cookie jar carries the backend's
// session cookie through the OAuth exchange; the transport stage handles the
// bearer token (see transport.go).
func NewClient(cfg *config.Config, store session.Store) (*Client, error) {
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, fmt.Errorf("backend: cookie jar: %w", err)
	}

	return &Client{
		baseURL: cfg.BackendURL,
		http: &http.Client{
			Jar: jar,
			Transport: &authTransport{
				base:  http.DefaultTransport,
				store: store,
			},
		},
		store:    store,
		cfg:      cfg,
		postings: gocache.New(postingCacheTTL, 10*time.Minute),
	}, nil
}

var _ domain.Backend = (*Client)(nil)

func (c *Client) ParseJobPosting(ctx context.Context, postingURL string) (*domain.ParseResult, error) {
	var result domain.ParseResult
	body := map[string]string{"url": postingURL}
	if err := c.do(ctx, http.MethodPost, "/jobs/parse", body, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *Client) CreateJobPosting(ctx context.Context, draft *domain.JobPostingCreate) (*domain.JobPosting, error) {
	var posting domain.JobPosting
	if err := c.do(ctx, http.MethodPost, "/jobs", draft, &posting); err != nil {
		return nil, err
	}
	return &posting, nil
}

func (c *Client) GetJobPosting(ctx context.Context, id int64) (*domain.JobPosting, error) {
	key := strconv.FormatInt(id, 10)
	if cached, found := c.postings.Get(key); found {
		posting := cached.(domain.JobPosting)
		return &posting, nil
	}

	var posting domain.JobPosting
	if err := c.do(ctx, http.MethodGet, "/jobs/"+key, nil, &posting); err != nil {
		return nil, err
	}
	c.postings.SetDefault(key, posting)
	return &posting, nil
}

func (c *Client) ListApplications(ctx context.Context) ([]domain.Application, error) {
	var apps []domain.Application
	if err := c.do(ctx, http.MethodGet, "/applications", nil, &apps); err != nil {
		return nil, err
	}
	for i := range apps {
		normalizeApplication(&apps[i])
	}
	return apps, nil
}

func (c *Client) GetApplication(ctx context.Context, id int64) (*domain.Application, error) {
	var app domain.Application
	if err := c.do(ctx, http.MethodGet, "/applications/"+strconv.FormatInt(id, 10), nil, &app); err != nil {
		return nil, err
	}
	normalizeApplication(&app)
	return &app, nil
}

func (c *Client) UpdateApplicationStatus(ctx context.Context, id int64, update domain.ApplicationUpdate) (*domain.Application, error) {
	var app domain.Application
	path := "/applications/" + strconv.FormatInt(id, 10) + "/status"
	if err := c.do(ctx, http.MethodPatch, path, update, &app); err != nil {
		return nil, err
	}
	normalizeApplication(&app)
	return &app, nil
}

func (c *Client) DeleteApplication(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, "/applications/"+strconv.FormatInt(id, 10), nil, nil)
}

func (c *Client) FetchAccessToken(ctx context.Context) error {
	// The bearer arrives via the response Authorization header and is stored
	// by the transport stage; the body is irrelevant.
	return c.do(ctx, http.MethodGet, "/auth/token", nil, nil)
}

func (c *Client) Logout(ctx context.Context) error {
	return c.do(ctx, http.MethodPost, "/logout", nil, nil)
}

// LoginURL builds the Cognito hosted-UI login URL. When provider settings are
// incomplete it falls back to the backend-proxied OAuth start path.
func (c *Client) LoginURL() string {
	cfg := c.cfg
	if cfg.CognitoDomain == "" || cfg.CognitoClientID == "" || cfg.CognitoRedirectURI == "" {
		return c.baseURL + "/oauth2/authorization/cognito"
	}

	u, err := url.Parse(cfg.CognitoDomain)
	if err != nil {
		return c.baseURL + "/oauth2/authorization/cognito"
	}
	u.Path = "/login"

	q := url.Values{}
	q.Set("client_id", cfg.CognitoClientID)
	q.Set("response_type", cfg.CognitoResponseType)
	q.Set("scope", cfg.CognitoScope)
	q.Set("redirect_uri", cfg.CognitoRedirectURI)
	if cfg.CognitoIDP != "" {
		q.Set("identity_provider", cfg.CognitoIDP)
	}
	u.RawQuery = q.Encode()

	return u.String()
}

// backendError is the error body shape the backend uses.
type backendError struct {
	Detail  string `json:"detail"`
	Message string `json:"message"`
}

// do performs one backend call and decodes the response into out (when out is
// non-nil). 401 surfaces as a distinguished Unauthorized AppError; transport
// failures propagate unchanged.
func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("backend: encode request: %w", err)
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+apiPrefix+path, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		return apperror.Unauthorized("session invalid")
	}
	if resp.StatusCode >= 400 {
		var errBody backendError
		message := ""
		if decodeErr := json.NewDecoder(resp.Body).Decode(&errBody); decodeErr == nil {
			if errBody.Detail != "" {
				message = errBody.Detail
			} else {
				message = errBody.Message
			}
		}
		return apperror.FromStatus(resp.StatusCode, message)
	}

	if out == nil {
		// Drain so the connection can be reused.
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("backend: decode %s %s: %w", method, path, err)
	}
	return nil
}

// normalizeApplication coerces the status onto one of the five canonical
// variants before anything downstream sees it.
func normalizeApplication(app *domain.Application) {
	raw := string(app.Status)
	normalized := domain.NormalizeStatus(raw)
	if string(normalized) != raw && logger.Log != nil {
		// Lossy fallback: an unmapped backend status becomes NOT_APPLIED.
		logger.Log.Debug("normalized unrecognized application status",
			"application_id", app.ID, "raw_status", raw)
	}
	app.Status = normalized
}
