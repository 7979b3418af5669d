package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/emploirapide/api/internal/services"
	"github.com/emploirapide/api/internal/utils"
)

type ApplicationHandler struct {
	svc services.ApplicationService
}

func NewApplicationHandler(svc services.ApplicationService) *ApplicationHandler {
	return &ApplicationHandler{svc: svc}
}

func (h *ApplicationHandler) List(c *gin.Context) {
	id, ok := requireIdentity(c)
	if !ok {
		return
	}

	apps, err := h.svc.List(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"applications": apps})
}

type createApplicationRequest struct {
	JobID       string  `json:"jobId"`
	CoverLetter *string `json:"coverLetter"`
}

func (h *ApplicationHandler) Create(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var req createApplicationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, utils.E(utils.CodeInvalidArgument, "ApplicationHandler.Create", "invalid request body", err))
		return
	}

	app, err := h.svc.Create(c.Request.Context(), userID, req.JobID, req.CoverLetter)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, app)
}

type updateApplicationStatusRequest struct {
	Status string `json:"status"`
}

func (h *ApplicationHandler) UpdateStatus(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var req updateApplicationStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, utils.E(utils.CodeInvalidArgument, "ApplicationHandler.UpdateStatus", "invalid request body", err))
		return
	}

	app, err := h.svc.UpdateStatus(c.Request.Context(), userID, c.Param("id"), req.Status)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, app)
}
