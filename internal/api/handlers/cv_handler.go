package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/emploirapide/api/internal/services"
	"github.com/emploirapide/api/internal/utils"
)

type CVHandler struct {
	svc services.CVService
}

func NewCVHandler(svc services.CVService) *CVHandler {
	return &CVHandler{svc: svc}
}

func (h *CVHandler) List(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	cvs, err := h.svc.List(c.Request.Context(), userID)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"cvs": cvs})
}

type uploadCVRequest struct {
	FileName string `json:"fileName"`
	FileData string `json:"fileData"` // data:application/pdf;base64,...
}

func (h *CVHandler) Upload(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var req uploadCVRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, utils.E(utils.CodeInvalidArgument, "CVHandler.Upload", "invalid request body", err))
		return
	}

	cv, err := h.svc.Upload(c.Request.Context(), userID, req.FileName, req.FileData)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, cv)
}

func (h *CVHandler) Delete(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	if err := h.svc.Delete(c.Request.Context(), userID, c.Param("id")); err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "CV supprimé"})
}
