package web

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"go-jobcal-web/internal/calendar"
	"go-jobcal-web/internal/state"
)

type CalendarHandler struct {
	state *state.List
}

func NewCalendarHandler(r *gin.Engine, list *state.List) {
	handler := &CalendarHandler{state: list}

	r.GET("/", handler.Index)
	r.POST("/refresh", handler.Refresh)
}

type indexView struct {
	Snapshot state.Snapshot
	Grid     MonthGrid
	HasDates bool
}

// Index renders the month calendar, the full application table and, when a
// selection is active, the detail panel.
func (h *CalendarHandler) Index(c *gin.Context) {
	snap := h.state.Snapshot()

	switch snap.Phase {
	case state.PhaseUninitialized, state.PhaseAuthenticating, state.PhaseLoading:
		c.HTML(http.StatusOK, "loading.tmpl", nil)
		return
	case state.PhaseUnauthenticated:
		c.HTML(http.StatusOK, "login.tmpl", nil)
		return
	}

	now := time.Now()
	events := calendar.Project(snap.Applications)
	view := indexView{
		Snapshot: snap,
		Grid:     buildMonthGrid(parseMonthCursor(c.Query("month"), now), events, now),
		HasDates: len(events) > 0,
	}
	c.HTML(http.StatusOK, "index.tmpl", view)
}

// Refresh is the explicit user retry: a visible re-fetch. Non-auth failures
// keep the current list; they are logged by the state machine's caller only.
func (h *CalendarHandler) Refresh(c *gin.Context) {
	if err := h.state.Refresh(c.Request.Context(), true); err != nil {
		logRefreshFailure(c, err)
	}
	c.Redirect(http.StatusSeeOther, "/")
}
