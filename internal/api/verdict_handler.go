package api

import (
	"fmt"
	"net/http"
	"strconv"

	"goverdict/app"
	"goverdict/domain/verdict"
	"goverdict/internal/errors"
	"goverdict/models"

	"github.com/gin-gonic/gin"
)

const (
	defaultListLimit = 50
	maxListLimit     = 500
)

// VerdictHandler handles verdict requests
type VerdictHandler struct {
	service *app.VerdictService
}

// NewVerdictHandler creates a new verdict handler
func NewVerdictHandler(service *app.VerdictService) *VerdictHandler {
	return &VerdictHandler{service: service}
}

// mvpRequest is the body of POST /verdicts/mvp
type mvpRequest struct {
	JobID       string                         `json:"job_id"`
	Pain        *verdict.PainScoreInput        `json:"pain"`
	Competition *verdict.CompetitionScoreInput `json:"competition"`
}

// batchRequest is the body of POST /verdicts/batch
type batchRequest struct {
	Requests []models.EvaluationRequest `json:"requests"`
}

// CreateVerdict scores one request
func (h *VerdictHandler) CreateVerdict(c *gin.Context) {
	var req models.EvaluationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, errors.InvalidInput(fmt.Sprintf("invalid request body: %v", err)))
		return
	}
	h.evaluate(c, req)
}

// CreateMVPVerdict scores pain and competition with the MVP weights
func (h *VerdictHandler) CreateMVPVerdict(c *gin.Context) {
	var body mvpRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		respondError(c, errors.InvalidInput(fmt.Sprintf("invalid request body: %v", err)))
		return
	}
	h.evaluate(c, models.EvaluationRequest{
		JobID: body.JobID,
		Mode:  models.ModeMVP,
		Input: verdict.Input{Pain: body.Pain, Competition: body.Competition},
	})
}

func (h *VerdictHandler) evaluate(c *gin.Context, req models.EvaluationRequest) {
	record, err := h.service.Evaluate(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, record)
}

// CreateBatch scores every request in the body. Per-request failures are
// reported in the items; the response is 200 unless the batch itself is
// rejected.
func (h *VerdictHandler) CreateBatch(c *gin.Context) {
	var body batchRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		respondError(c, errors.InvalidInput(fmt.Sprintf("invalid request body: %v", err)))
		return
	}

	result, err := h.service.EvaluateBatch(c.Request.Context(), body.Requests)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// GetVerdict returns a stored verdict
func (h *VerdictHandler) GetVerdict(c *gin.Context) {
	record, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, record)
}

// ListJobVerdicts returns a job's verdicts, newest first
func (h *VerdictHandler) ListJobVerdicts(c *gin.Context) {
	limit := defaultListLimit
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 || n > maxListLimit {
			respondError(c, errors.InvalidInput(fmt.Sprintf("limit must be between 1 and %d", maxListLimit)))
			return
		}
		limit = n
	}

	jobID := c.Param("jobId")
	records, err := h.service.ListByJob(c.Request.Context(), jobID, limit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"job_id":   jobID,
		"count":    len(records),
		"verdicts": records,
	})
}

// GetConfig returns the active thresholds and their hash
func (h *VerdictHandler) GetConfig(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"config_hash": h.service.ConfigHash(),
		"thresholds":  h.service.Thresholds(),
	})
}

func respondError(c *gin.Context, err error) {
	status := errors.HTTPStatus(err)
	if status >= http.StatusInternalServerError {
		_ = c.Error(err)
	}
	c.JSON(status, gin.H{
		"error": err.Error(),
		"code":  errors.GetCode(err),
	})
}
