package services

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/emploirapide/api/internal/jsearch"
	"github.com/emploirapide/api/internal/models"
	"github.com/emploirapide/api/internal/utils"
)

const localSearchLimit = 20

// JobResult is the common shape both local and external listings are mapped
// to for aggregated search.
type JobResult struct {
	ID               string   `json:"id"`
	Title            string   `json:"title"`
	Company          string   `json:"company"`
	Location         string   `json:"location"`
	Type             string   `json:"type"`
	Salary           string   `json:"salary"`
	PostedAt         string   `json:"postedAt"`
	Description      string   `json:"description"`
	Logo             string   `json:"logo,omitempty"`
	ApplyLink        string   `json:"applyLink,omitempty"`
	Qualifications   []string `json:"qualifications"`
	Responsibilities []string `json:"responsibilities"`
	Requirements     *string  `json:"requirements,omitempty"`
	IsLocal          bool     `json:"isLocal"`
	ApplicationCount int64    `json:"applicationCount,omitempty"`
}

type SearchParams struct {
	Query          string
	Location       string
	Page           int
	EmploymentType string
	Source         string // all | local | external
}

type SearchResult struct {
	Jobs     []JobResult `json:"jobs"`
	Total    int         `json:"total"`
	Local    int         `json:"local"`
	External int         `json:"external"`
}

type SearchService interface {
	Search(ctx context.Context, p SearchParams) (*SearchResult, error)
}

type searchService struct {
	jobs     JobService
	provider *jsearch.Client
	log      *logrus.Logger
}

func NewSearchService(jobs JobService, provider *jsearch.Client, log *logrus.Logger) SearchService {
	return &searchService{jobs: jobs, provider: provider, log: log}
}

func (s *searchService) Search(ctx context.Context, p SearchParams) (*SearchResult, error) {
	const op = "SearchService.Search"

	if p.Query == "" {
		p.Query = "emploi"
	}
	if p.Location == "" {
		p.Location = "Côte d'Ivoire"
	}
	if p.Source == "" {
		p.Source = "all"
	}

	result := &SearchResult{Jobs: []JobResult{}}

	if p.Source == "all" || p.Source == "local" {
		query := p.Query
		if query == "emploi" {
			query = ""
		}
		local, err := s.jobs.ListPublished(ctx, query, p.EmploymentType, localSearchLimit)
		if err != nil {
			return nil, err
		}
		for _, j := range local {
			result.Jobs = append(result.Jobs, localResult(j))
		}
		result.Local = len(result.Jobs)
	}

	if p.Source == "all" || p.Source == "external" {
		external, err := s.searchExternal(ctx, p)
		if err != nil {
			return nil, err
		}
		result.Jobs = append(result.Jobs, external...)
		result.External = len(external)
	}

	result.Total = len(result.Jobs)
	return result, nil
}

func (s *searchService) searchExternal(ctx context.Context, p SearchParams) ([]JobResult, error) {
	const op = "SearchService.Search"

	// No credential configured: skip the external leg instead of failing
	// the whole search.
	if s.provider == nil || !s.provider.Configured() {
		if s.log != nil {
			s.log.Debug("external job search skipped: no api key configured")
		}
		return nil, nil
	}

	listings, err := s.provider.Search(ctx, p.Query, p.Location, p.Page, p.EmploymentType)
	if err != nil {
		var apiErr *jsearch.APIError
		if errors.As(err, &apiErr) {
			switch apiErr.StatusCode {
			case 429:
				return nil, utils.E(utils.CodeRateLimited, op, "request limit reached, please retry later", err)
			case 401:
				return nil, utils.EStatus(401, op, "invalid search provider credential", err)
			default:
				return nil, utils.EStatus(apiErr.StatusCode, op, apiErr.Message, err)
			}
		}
		return nil, utils.E(utils.CodeUpstream, op, "external job search failed", err)
	}

	out := make([]JobResult, 0, len(listings))
	for _, j := range listings {
		out = append(out, externalResult(j, p.Location))
	}
	return out, nil
}

func salaryBound(v *int) string {
	if v == nil {
		return "N/A"
	}
	return strconv.Itoa(*v)
}

func localResult(j models.JobWithMeta) JobResult {
	return JobResult{
		ID:               j.ID,
		Title:            j.Title,
		Company:          j.Company,
		Location:         j.Location,
		Type:             j.ContractType,
		Salary:           models.FormatSalary(j.SalaryMin, j.SalaryMax),
		PostedAt:         j.CreatedAt.Format("02/01/2006"),
		Description:      j.Description,
		Logo:             j.OwnerPhoto,
		Qualifications:   []string{},
		Responsibilities: []string{},
		Requirements:     j.Requirements,
		IsLocal:          true,
		ApplicationCount: j.ApplicationCount,
	}
}

func externalResult(j jsearch.Job, fallbackLocation string) JobResult {
	location := j.JobCity
	if location == "" {
		location = j.JobCountry
	}
	if location == "" {
		location = fallbackLocation
	}

	typ := j.JobEmploymentType
	if typ == "" {
		typ = "Full-time"
	}

	salary := "Salaire non spécifié"
	switch {
	case j.JobSalary != "":
		salary = j.JobSalary
	case j.JobMinSalary != nil || j.JobMaxSalary != nil:
		salary = strings.TrimSpace(fmt.Sprintf("%s - %s %s",
			salaryBound(j.JobMinSalary), salaryBound(j.JobMaxSalary), j.JobSalaryCurrency))
	}

	postedAt := "Date non spécifiée"
	if j.JobPostedAt != "" {
		if t, err := time.Parse(time.RFC3339, j.JobPostedAt); err == nil {
			postedAt = t.Format("02/01/2006")
		}
	}

	description := j.JobDescription
	if description == "" {
		description = "Description non disponible"
	}

	return JobResult{
		ID:               j.JobID,
		Title:            j.JobTitle,
		Company:          j.EmployerName,
		Location:         location,
		Type:             typ,
		Salary:           salary,
		PostedAt:         postedAt,
		Description:      description,
		Logo:             j.EmployerLogo,
		ApplyLink:        j.JobApplyLink,
		Qualifications:   j.JobHighlights.Qualifications,
		Responsibilities: j.JobHighlights.Responsibilities,
		IsLocal:          false,
	}
}
