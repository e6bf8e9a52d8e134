package backend_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-jobcal-web/config"
	"go-jobcal-web/internal/backend"
	"go-jobcal-web/internal/domain"
	"go-jobcal-web/pkg/apperror"
	"go-jobcal-web/pkg/logger"
	"go-jobcal-web/pkg/session"
)

func TestMain(m *testing.M) {
	logger.Init()
	os.Exit(m.Run())
}

func newClient(t *testing.T, serverURL string, store session.Store) *backend.Client {
	t.Helper()
	client, err := backend.NewClient(&config.Config{BackendURL: serverURL}, store)
	require.NoError(t, err)
	return client
}

func TestBearerAttachedToRequests(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		_ = json.NewEncoder(w).Encode([]domain.Application{})
	}))
	defer srv.Close()

	store := session.NewMemoryStore()
	store.SetToken("tok-123")
	client := newClient(t, srv.URL, store)

	_, err := client.ListApplications(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Bearer tok-123", gotAuth)
}

func TestSilentTokenRotation(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Authorization", "Bearer rotated-456")
		_ = json.NewEncoder(w).Encode([]domain.Application{})
	}))
	defer srv.Close()

	store := session.NewMemoryStore()
	store.SetToken("old-123")
	client := newClient(t, srv.URL, store)

	_, err := client.ListApplications(context.Background())
	require.NoError(t, err)

	token, ok := store.Token()
	require.True(t, ok)
	assert.Equal(t, "rotated-456", token)
}

func TestUnauthorizedEvictsTokenAndIsDistinguished(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	store := session.NewMemoryStore()
	store.SetToken("stale")
	client := newClient(t, srv.URL, store)

	_, err := client.ListApplications(context.Background())
	require.Error(t, err)
	assert.True(t, apperror.IsUnauthorized(err))

	_, ok := store.Token()
	assert.False(t, ok, "401 must evict the stored token")
}

func TestListNormalizesStatuses(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/applications", r.URL.Path)
		_, _ = w.Write([]byte(`[
			{"id": 1, "status": "applied", "job_posting": {"id": 10}},
			{"id": 2, "status": "bogus", "job_posting": {"id": 20}},
			{"id": 3, "status": "ACCEPTED", "job_posting": {"id": 30}}
		]`))
	}))
	defer srv.Close()

	client := newClient(t, srv.URL, session.NewMemoryStore())
	apps, err := client.ListApplications(context.Background())
	require.NoError(t, err)
	require.Len(t, apps, 3)

	assert.Equal(t, domain.StatusApplied, apps[0].Status)
	assert.Equal(t, domain.StatusNotApplied, apps[1].Status)
	assert.Equal(t, domain.StatusAccepted, apps[2].Status)
}

func TestUpdateApplicationStatusPath(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPatch, r.Method)
		assert.Equal(t, "/api/applications/7/status", r.URL.Path)

		var update domain.ApplicationUpdate
		if assert.NoError(t, json.NewDecoder(r.Body).Decode(&update)) {
			assert.Equal(t, domain.StatusInProgress, update.Status)
		}

		_, _ = w.Write([]byte(`{"id": 7, "status": "IN_PROGRESS", "job_posting": {"id": 70}}`))
	}))
	defer srv.Close()

	client := newClient(t, srv.URL, session.NewMemoryStore())
	app, err := client.UpdateApplicationStatus(context.Background(), 7, domain.ApplicationUpdate{Status: domain.StatusInProgress})
	require.NoError(t, err)
	assert.Equal(t, domain.StatusInProgress, app.Status)
}

func TestGetJobPostingUsesCache(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		_, _ = w.Write([]byte(`{"id": 5, "company_name": "Acme"}`))
	}))
	defer srv.Close()

	client := newClient(t, srv.URL, session.NewMemoryStore())

	first, err := client.GetJobPosting(context.Background(), 5)
	require.NoError(t, err)
	second, err := client.GetJobPosting(context.Background(), 5)
	require.NoError(t, err)

	assert.Equal(t, 1, calls)
	assert.Equal(t, first.CompanyName, second.CompanyName)
}

func TestParseJobPostingFailureIsNotAnError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/jobs/parse", r.URL.Path)
		_, _ = w.Write([]byte(`{"success": false, "error": "unsupported site"}`))
	}))
	defer srv.Close()

	client := newClient(t, srv.URL, session.NewMemoryStore())
	result, err := client.ParseJobPosting(context.Background(), "https://example.com/job")
	require.NoError(t, err)
	assert.False(t, result.Success)
	assert.Equal(t, "unsupported site", result.Error)
}

func TestLoginURL(t *testing.T) {
	t.Run("Should build the hosted-UI URL from Cognito settings", func(t *testing.T) {
		client, err := backend.NewClient(&config.Config{
			BackendURL:          "https://api.example.com",
			CognitoDomain:       "https://auth.example.com",
			CognitoClientID:     "client-1",
			CognitoRedirectURI:  "https://app.example.com/oauth/callback",
			CognitoIDP:          "Google",
			CognitoResponseType: "code",
			CognitoScope:        "openid+profile+email",
		}, session.NewMemoryStore())
		require.NoError(t, err)

		loginURL, err := url.Parse(client.LoginURL())
		require.NoError(t, err)

		assert.Equal(t, "auth.example.com", loginURL.Host)
		assert.Equal(t, "/login", loginURL.Path)
		q := loginURL.Query()
		assert.Equal(t, "client-1", q.Get("client_id"))
		assert.Equal(t, "code", q.Get("response_type"))
		assert.Equal(t, "https://app.example.com/oauth/callback", q.Get("redirect_uri"))
		assert.Equal(t, "Google", q.Get("identity_provider"))
	})

	t.Run("Should fall back to the backend OAuth start path", func(t *testing.T) {
		client, err := backend.NewClient(&config.Config{
			BackendURL: "https://api.example.com",
		}, session.NewMemoryStore())
		require.NoError(t, err)

		assert.Equal(t, "https://api.example.com/oauth2/authorization/cognito", client.LoginURL())
	})
}
