package web

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"go-jobcal-web/internal/delivery/http/response"
	"go-jobcal-web/internal/domain"
	"go-jobcal-web/internal/state"
	"go-jobcal-web/pkg/logger"
)

type ApplicationHandler struct {
	state *state.List
}

func NewApplicationHandler(r *gin.Engine, list *state.List) {
	handler := &ApplicationHandler{state: list}

	apps := r.Group("/applications")
	{
		apps.POST("/:id/select", handler.Select)
		apps.POST("/deselect", handler.Deselect)
		apps.POST("/:id/status", handler.UpdateStatus)
		apps.POST("/:id/delete", handler.Delete)
	}
}

// Select opens the detail panel for one application.
func (h *ApplicationHandler) Select(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.Redirect(http.StatusSeeOther, "/")
		return
	}
	h.state.Select(id)
	c.Redirect(http.StatusSeeOther, "/")
}

func (h *ApplicationHandler) Deselect(c *gin.Context) {
	h.state.ClearSelection()
	c.Redirect(http.StatusSeeOther, "/")
}

type statusUpdateRequest struct {
	Status string `json:"status" binding:"required"`
}

// UpdateStatus is the detail-panel status change. The panel shows the chosen
// status immediately; on failure this endpoint hands back the prior value so
// the display reverts. No automatic retry.
func (h *ApplicationHandler) UpdateStatus(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "invalid application id", nil)
		return
	}

	var req statusUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "status is required", nil)
		return
	}

	// Remember the pre-update value for the revert path.
	previous := domain.StatusNotApplied
	if selected, ok := h.state.Selected(); ok && selected.ID == id {
		previous = selected.Status
	}

	status := domain.NormalizeStatus(req.Status)
	if err := h.state.UpdateStatus(c.Request.Context(), id, status); err != nil {
		logger.Log.Error("status update failed", "application_id", id, "error", err)
		response.Error(c, http.StatusBadGateway, "status update failed", gin.H{
			"revert_to": previous,
		})
		return
	}

	response.Success(c, http.StatusOK, "status updated", gin.H{"status": status})
}

func (h *ApplicationHandler) Delete(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.Redirect(http.StatusSeeOther, "/")
		return
	}

	if err := h.state.Delete(c.Request.Context(), id); err != nil {
		logger.Log.Error("delete failed", "application_id", id, "error", err)
	}
	c.Redirect(http.StatusSeeOther, "/")
}

func logRefreshFailure(c *gin.Context, err error) {
	reqID, _ := c.Get("RequestID")
	logger.Log.Warn("application list refresh failed", "request_id", reqID, "error", err)
}
