package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/emploirapide/api/internal/services"
	"github.com/emploirapide/api/internal/utils"
)

type SavedJobHandler struct {
	svc services.SavedJobService
}

func NewSavedJobHandler(svc services.SavedJobService) *SavedJobHandler {
	return &SavedJobHandler{svc: svc}
}

func (h *SavedJobHandler) List(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	jobs, err := h.svc.List(c.Request.Context(), userID)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"savedJobs": jobs})
}

type saveJobRequest struct {
	JobID   string          `json:"jobId"`
	JobData json.RawMessage `json:"jobData"`
}

func (h *SavedJobHandler) Save(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var req saveJobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, utils.E(utils.CodeInvalidArgument, "SavedJobHandler.Save", "invalid request body", err))
		return
	}

	saved, err := h.svc.Save(c.Request.Context(), userID, req.JobID, req.JobData)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, saved)
}

func (h *SavedJobHandler) Unsave(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	if err := h.svc.Unsave(c.Request.Context(), userID, c.Param("jobId")); err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "offre retirée des favoris"})
}
