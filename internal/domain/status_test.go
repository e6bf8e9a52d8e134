package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"go-jobcal-web/internal/domain"
)

func TestNormalizeStatus(t *testing.T) {
	t.Run("Should accept all canonical values", func(t *testing.T) {
		for _, s := range domain.AllStatuses {
			assert.Equal(t, s, domain.NormalizeStatus(string(s)))
		}
	})

	t.Run("Should be case-insensitive", func(t *testing.T) {
		assert.Equal(t, domain.StatusApplied, domain.NormalizeStatus("applied"))
		assert.Equal(t, domain.StatusInProgress, domain.NormalizeStatus("in_progress"))
		assert.Equal(t, domain.StatusAccepted, domain.NormalizeStatus("Accepted"))
	})

	t.Run("Should map unrecognized values to NOT_APPLIED", func(t *testing.T) {
		assert.Equal(t, domain.StatusNotApplied, domain.NormalizeStatus("bogus"))
		assert.Equal(t, domain.StatusNotApplied, domain.NormalizeStatus(""))
		assert.Equal(t, domain.StatusNotApplied, domain.NormalizeStatus("WITHDRAWN"))
	})
}

func TestStatusLookupsAreExhaustive(t *testing.T) {
	// A missing mapping is a defect, not a runtime fallback.
	for _, s := range domain.AllStatuses {
		assert.NotEmpty(t, s.Label(), "label for %s", s)
		assert.NotEmpty(t, s.Color(), "color for %s", s)
		style := s.Style()
		assert.NotEmpty(t, style.Background, "background for %s", s)
		assert.NotEmpty(t, style.Text, "text for %s", s)
		assert.NotEmpty(t, style.Border, "border for %s", s)
		assert.NotEmpty(t, style.Accent, "accent for %s", s)
	}
}
