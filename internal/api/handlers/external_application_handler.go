package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/emploirapide/api/internal/services"
	"github.com/emploirapide/api/internal/utils"
)

type ExternalApplicationHandler struct {
	svc services.ExternalApplicationService
}

func NewExternalApplicationHandler(svc services.ExternalApplicationService) *ExternalApplicationHandler {
	return &ExternalApplicationHandler{svc: svc}
}

func (h *ExternalApplicationHandler) List(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	apps, err := h.svc.List(c.Request.Context(), userID)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"applications": apps})
}

type createExternalApplicationRequest struct {
	JobID   string          `json:"jobId"`
	JobData json.RawMessage `json:"jobData"`
}

func (h *ExternalApplicationHandler) Create(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var req createExternalApplicationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, utils.E(utils.CodeInvalidArgument, "ExternalApplicationHandler.Create", "invalid request body", err))
		return
	}

	app, err := h.svc.Create(c.Request.Context(), userID, req.JobID, req.JobData)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, app)
}

func (h *ExternalApplicationHandler) UpdateStatus(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var req updateApplicationStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, utils.E(utils.CodeInvalidArgument, "ExternalApplicationHandler.UpdateStatus", "invalid request body", err))
		return
	}

	app, err := h.svc.UpdateStatus(c.Request.Context(), userID, c.Param("id"), req.Status)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, app)
}
