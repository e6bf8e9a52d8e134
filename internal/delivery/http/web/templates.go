package web

import (
	"embed"
	"html/template"

	"go-jobcal-web/internal/domain"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

var templateFuncs = template.FuncMap{
	// deref renders optional backend fields ("" when absent).
	"deref": func(s *string) string {
		if s == nil {
			return ""
		}
		return *s
	},
	"allStatuses": func() []domain.Status {
		return domain.AllStatuses
	},
}
