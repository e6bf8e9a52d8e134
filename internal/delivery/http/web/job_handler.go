package web

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"go-jobcal-web/internal/delivery/http/response"
	"go-jobcal-web/internal/domain"
	"go-jobcal-web/internal/state"
	"go-jobcal-web/pkg/logger"
)

type JobHandler struct {
	backend  domain.Backend
	state    *state.List
	validate *validator.Validate
}

func NewJobHandler(r *gin.Engine, backend domain.Backend, list *state.List, validate *validator.Validate) {
	handler := &JobHandler{backend: backend, state: list, validate: validate}

	jobs := r.Group("/jobs")
	{
		jobs.POST("/parse", handler.Parse)
		jobs.POST("", handler.Create)
	}
}

type parseRequest struct {
	URL string `json:"url" binding:"required,url"`
}

// Parse is the first step of the add flow: ask the backend to extract job
// fields from a posting URL. Failure is a normal outcome here; the modal
// offers manual entry, so the draft in the reply is always usable.
func (h *JobHandler) Parse(c *gin.Context) {
	var req parseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "채용 공고 URL을 입력해주세요.", nil)
		return
	}

	result, err := h.backend.ParseJobPosting(c.Request.Context(), req.URL)
	if err != nil {
		logger.Log.Warn("posting parse request failed", "url", req.URL, "error", err)
		response.Error(c, http.StatusBadGateway, "파싱 중 오류가 발생했습니다.", gin.H{
			"fallback": emptyDraft(req.URL),
		})
		return
	}

	if !result.Success || result.Data == nil {
		message := result.Error
		if message == "" {
			message = "파싱에 실패했습니다."
		}
		response.Error(c, http.StatusUnprocessableEntity, message, gin.H{
			"fallback": emptyDraft(req.URL),
		})
		return
	}

	response.Success(c, http.StatusOK, "parsed", result.Data)
}

// Create persists the edited draft and refreshes the list so the new posting
// shows up immediately. A missing deadline is allowed; the reply carries a
// warning since the posting will not appear on the calendar.
func (h *JobHandler) Create(c *gin.Context) {
	var draft domain.JobPostingCreate
	if err := c.ShouldBindJSON(&draft); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid job posting payload", nil)
		return
	}
	if err := h.validate.Struct(&draft); err != nil {
		response.Error(c, http.StatusBadRequest, "회사명, 직무명, URL은 필수입니다.", err.Error())
		return
	}

	posting, err := h.backend.CreateJobPosting(c.Request.Context(), &draft)
	if err != nil {
		logger.Log.Error("posting create failed", "error", err)
		response.Error(c, http.StatusBadGateway, "저장 중 오류가 발생했습니다.", nil)
		return
	}

	if err := h.state.Refresh(c.Request.Context(), true); err != nil {
		logRefreshFailure(c, err)
	}

	warning := ""
	if posting.Deadline == nil || *posting.Deadline == "" {
		warning = "마감일이 없어 캘린더에는 표시되지 않습니다."
	}
	response.Success(c, http.StatusCreated, warning, posting)
}

func emptyDraft(url string) domain.JobPostingCreate {
	return domain.JobPostingCreate{OriginalURL: url}
}
