package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/emploirapide/api/internal/services"
	"github.com/emploirapide/api/internal/utils"
)

type SearchHandler struct {
	svc services.SearchService
}

func NewSearchHandler(svc services.SearchService) *SearchHandler {
	return &SearchHandler{svc: svc}
}

func (h *SearchHandler) Search(c *gin.Context) {
	page := 1
	if raw := c.Query("page"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			writeError(c, utils.E(utils.CodeInvalidArgument, "SearchHandler.Search", "page must be a positive integer", err))
			return
		}
		page = n
	}

	result, err := h.svc.Search(c.Request.Context(), services.SearchParams{
		Query:          c.Query("query"),
		Location:       c.Query("location"),
		Page:           page,
		EmploymentType: c.Query("employmentType"),
		Source:         c.Query("source"),
	})
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}
