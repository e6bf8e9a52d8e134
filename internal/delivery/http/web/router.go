package web

import (
	"html/template"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"go-jobcal-web/config"
	"go-jobcal-web/internal/delivery/http/middleware"
	"go-jobcal-web/internal/domain"
	"go-jobcal-web/internal/state"
	"go-jobcal-web/pkg/auth"
	"go-jobcal-web/pkg/session"
)

type RouterDeps struct {
	Backend      domain.Backend
	State        *state.List
	Store        session.Store
	Validate     *validator.Validate
	JWKSProvider *auth.Provider // nil when no Cognito domain is configured
	Config       *config.Config
}

func NewRouter(deps RouterDeps) *gin.Engine {
	r := gin.New()

	r.Use(gin.Recovery())
	r.Use(gin.Logger())
	r.Use(middleware.RequestID())
	r.Use(middleware.ErrorHandler())

	r.SetHTMLTemplate(template.Must(template.New("").Funcs(templateFuncs).ParseFS(templateFS, "templates/*.tmpl")))

	NewCalendarHandler(r, deps.State)
	NewJobHandler(r, deps.Backend, deps.State, deps.Validate)
	NewApplicationHandler(r, deps.State)
	NewAuthHandler(r, deps.Backend, deps.State, deps.Store, deps.JWKSProvider)

	return r
}
