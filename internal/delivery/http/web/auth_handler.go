package web

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"go-jobcal-web/internal/domain"
	"go-jobcal-web/internal/state"
	"go-jobcal-web/pkg/auth"
	"go-jobcal-web/pkg/logger"
	"go-jobcal-web/pkg/session"
)

type AuthHandler struct {
	backend  domain.Backend
	state    *state.List
	store    session.Store
	verifier *auth.Provider
}

func NewAuthHandler(r *gin.Engine, backend domain.Backend, list *state.List, store session.Store, verifier *auth.Provider) {
	handler := &AuthHandler{backend: backend, state: list, store: store, verifier: verifier}

	r.GET("/login", handler.Login)
	r.GET("/oauth/callback", handler.Callback)
	r.POST("/logout", handler.Logout)
}

// Login sends the browser to the Cognito hosted login page (or the backend's
// OAuth start path when provider settings are absent).
func (h *AuthHandler) Login(c *gin.Context) {
	c.Redirect(http.StatusFound, h.backend.LoginURL())
}

// Callback is the provider redirect-back route: tokens arrive as query
// parameters, get stored, and the main view takes over after a fresh
// bootstrap.
func (h *AuthHandler) Callback(c *gin.Context) {
	accessToken := c.Query("accessToken")
	if accessToken == "" {
		accessToken = c.Query("access_token")
	}
	if accessToken == "" {
		logger.Log.Warn("oauth callback without access token")
		c.Redirect(http.StatusSeeOther, "/")
		return
	}

	// Verify the signature against the Cognito JWKS when configured; a token
	// that does not verify is discarded rather than stored.
	if h.verifier != nil {
		if err := h.verifier.Verify(accessToken); err != nil {
			logger.Log.Warn("oauth callback token failed verification", "error", err)
			c.Redirect(http.StatusSeeOther, "/")
			return
		}
	}

	h.store.SetToken(accessToken)

	if err := h.state.Refresh(c.Request.Context(), true); err != nil {
		logRefreshFailure(c, err)
	}
	c.Redirect(http.StatusSeeOther, "/")
}

func (h *AuthHandler) Logout(c *gin.Context) {
	h.state.Logout(c.Request.Context())
	c.Redirect(http.StatusSeeOther, "/")
}
