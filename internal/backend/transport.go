package backend

import (
	"net/http"

	"go-jobcal-web/pkg/session"
)

// authTransport is the single interceptor stage that owns every token side
// effect: attach the stored bearer on the way out, capture a rotated token
// from the response Authorization header on the way in, and evict the stored
// token on any 401 regardless of which operation triggered it.
type authTransport struct {
	base  http.RoundTripper
	store session.Store
}

func (t *authTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if token, ok := t.store.Token(); ok {
		// Per RoundTripper contract the request must not be mutated.
		req = req.Clone(req.Context())
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := t.base.RoundTrip(req)
	if err != nil {
		return nil, err
	}

	// Silent token rotation: the backend may hand back a fresh bearer in the
	// response header of any call.
	if rotated := session.ParseBearer(resp.Header.Get("Authorization")); rotated != "" {
		t.store.SetToken(rotated)
	}

	if resp.StatusCode == http.StatusUnauthorized {
		t.store.Clear()
	}

	return resp, nil
}
