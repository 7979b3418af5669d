package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/emploirapide/api/internal/models"
	"github.com/emploirapide/api/internal/services"
	"github.com/emploirapide/api/internal/utils"
)

type JobHandler struct {
	svc services.JobService
}

func NewJobHandler(svc services.JobService) *JobHandler {
	return &JobHandler{svc: svc}
}

// jobResponse is the public shape of a listing: raw salary bounds replaced
// by the formatted string, owner fields flattened.
type jobResponse struct {
	ID                string    `json:"id"`
	Title             string    `json:"title"`
	Company           string    `json:"company"`
	Location          string    `json:"location"`
	Description       string    `json:"description"`
	Requirements      *string   `json:"requirements,omitempty"`
	Salary            string    `json:"salary"`
	ContractType      string    `json:"contractType"`
	Category          string    `json:"category"`
	Keywords          []string  `json:"keywords"`
	Status            string    `json:"status"`
	CompanyLogo       string    `json:"companyLogo,omitempty"`
	RecruiterName     string    `json:"recruiterName,omitempty"`
	ApplicationsCount int64     `json:"applicationsCount"`
	CreatedAt         time.Time `json:"createdAt"`
	UpdatedAt         time.Time `json:"updatedAt"`
}

func toJobResponse(j models.JobWithMeta) jobResponse {
	company := j.Company
	if company == "" {
		company = j.OwnerCompanyName
	}

	var keywords []string
	if len(j.Keywords) > 0 {
		_ = json.Unmarshal(j.Keywords, &keywords)
	}
	if keywords == nil {
		keywords = []string{}
	}

	return jobResponse{
		ID:                j.ID,
		Title:             j.Title,
		Company:           company,
		Location:          j.Location,
		Description:       j.Description,
		Requirements:      j.Requirements,
		Salary:            models.FormatSalary(j.SalaryMin, j.SalaryMax),
		ContractType:      j.ContractType,
		Category:          j.Category,
		Keywords:          keywords,
		Status:            string(j.Status),
		CompanyLogo:       j.OwnerPhoto,
		RecruiterName:     j.OwnerName,
		ApplicationsCount: j.ApplicationCount,
		CreatedAt:         j.CreatedAt,
		UpdatedAt:         j.UpdatedAt,
	}
}

func toJobResponses(jobs []models.JobWithMeta) []jobResponse {
	out := make([]jobResponse, 0, len(jobs))
	for _, j := range jobs {
		out = append(out, toJobResponse(j))
	}
	return out
}

func (h *JobHandler) ListPublished(c *gin.Context) {
	limit := 0
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			writeError(c, utils.E(utils.CodeInvalidArgument, "JobHandler.ListPublished", "limit must be a positive integer", err))
			return
		}
		limit = n
	}

	jobs, err := h.svc.ListPublished(c.Request.Context(), c.Query("query"), c.Query("contractType"), limit)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"jobs": toJobResponses(jobs)})
}

func (h *JobHandler) Get(c *gin.Context) {
	job, err := h.svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, toJobResponse(*job))
}

func (h *JobHandler) ListMine(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	jobs, err := h.svc.ListByRecruiter(c.Request.Context(), userID)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"jobs": toJobResponses(jobs)})
}

type createJobRequest struct {
	Title        string   `json:"title"`
	Company      string   `json:"company"`
	Location     string   `json:"location"`
	Description  string   `json:"description"`
	Requirements *string  `json:"requirements"`
	SalaryMin    *int     `json:"salaryMin"`
	SalaryMax    *int     `json:"salaryMax"`
	ContractType string   `json:"contractType"`
	Category     string   `json:"category"`
	Keywords     []string `json:"keywords"`
	Status       string   `json:"status"`
}

func (h *JobHandler) Create(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var req createJobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, utils.E(utils.CodeInvalidArgument, "JobHandler.Create", "invalid request body", err))
		return
	}

	job, err := h.svc.Create(c.Request.Context(), userID, services.CreateJobInput{
		Title:        req.Title,
		Company:      req.Company,
		Location:     req.Location,
		Description:  req.Description,
		Requirements: req.Requirements,
		SalaryMin:    req.SalaryMin,
		SalaryMax:    req.SalaryMax,
		ContractType: req.ContractType,
		Category:     req.Category,
		Keywords:     req.Keywords,
		Status:       req.Status,
	})
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, job)
}

type updateJobRequest struct {
	Title        *string   `json:"title"`
	Company      *string   `json:"company"`
	Location     *string   `json:"location"`
	Description  *string   `json:"description"`
	Requirements *string   `json:"requirements"`
	SalaryMin    *int      `json:"salaryMin"`
	SalaryMax    *int      `json:"salaryMax"`
	ContractType *string   `json:"contractType"`
	Category     *string   `json:"category"`
	Keywords     *[]string `json:"keywords"`
	Status       *string   `json:"status"`
}

func (h *JobHandler) Update(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var req updateJobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, utils.E(utils.CodeInvalidArgument, "JobHandler.Update", "invalid request body", err))
		return
	}

	job, err := h.svc.Update(c.Request.Context(), userID, c.Param("id"), services.UpdateJobPatch{
		Title:        req.Title,
		Company:      req.Company,
		Location:     req.Location,
		Description:  req.Description,
		Requirements: req.Requirements,
		SalaryMin:    req.SalaryMin,
		SalaryMax:    req.SalaryMax,
		ContractType: req.ContractType,
		Category:     req.Category,
		Keywords:     req.Keywords,
		Status:       req.Status,
	})
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, job)
}

func (h *JobHandler) Delete(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	if err := h.svc.Delete(c.Request.Context(), userID, c.Param("id")); err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "offre supprimée"})
}
