package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"github.com/emploirapide/api/internal/cache"
	"github.com/emploirapide/api/internal/models"
	pgrepo "github.com/emploirapide/api/internal/repositories/postgres"
	"github.com/emploirapide/api/internal/utils"
)

const (
	publishedCacheTTL = time.Minute
	detailCacheTTL    = time.Minute

	// publishedVersionKey namespaces every published-list cache key. Job
	// mutations delete it, which orphans all cached lists at once without
	// having to enumerate filter combinations.
	publishedVersionKey = "jobs:published:version"
)

type CreateJobInput struct {
	Title        string
	Company      string
	Location     string
	Description  string
	Requirements *string
	SalaryMin    *int
	SalaryMax    *int
	ContractType string
	Category     string
	Keywords     []string
	Status       string
}

// UpdateJobPatch applies only the fields that are set; nil pointers leave
// the stored value untouched.
type UpdateJobPatch struct {
	Title        *string
	Company      *string
	Location     *string
	Description  *string
	Requirements *string
	SalaryMin    *int
	SalaryMax    *int
	ContractType *string
	Category     *string
	Keywords     *[]string
	Status       *string
}

type JobService interface {
	ListPublished(ctx context.Context, query, contractType string, limit int) ([]models.JobWithMeta, error)
	Get(ctx context.Context, id string) (*models.JobWithMeta, error)
	ListByRecruiter(ctx context.Context, recruiterID string) ([]models.JobWithMeta, error)
	Create(ctx context.Context, recruiterID string, in CreateJobInput) (*models.Job, error)
	Update(ctx context.Context, recruiterID, jobID string, patch UpdateJobPatch) (*models.Job, error)
	Delete(ctx context.Context, recruiterID, jobID string) error
}

type jobService struct {
	jobs  pgrepo.JobRepository
	cache cache.Cache
}

// NewJobService builds the job listing store. cache may be nil, in which
// case every read goes to the database.
func NewJobService(jobs pgrepo.JobRepository, c cache.Cache) JobService {
	return &jobService{jobs: jobs, cache: c}
}

func (s *jobService) ListPublished(ctx context.Context, query, contractType string, limit int) ([]models.JobWithMeta, error) {
	const op = "JobService.ListPublished"

	if limit <= 0 {
		limit = 15
	}

	var key string
	if s.cache != nil {
		key = fmt.Sprintf("jobs:published:%s:%s:%s:%d",
			s.publishedVersion(ctx), strings.ToLower(query), contractType, limit)

		var cached []models.JobWithMeta
		if hit, err := s.cache.GetJSON(ctx, key, &cached); err == nil && hit {
			return cached, nil
		}
	}

	jobs, err := s.jobs.ListPublic(ctx, pgrepo.PublicFilter{
		Query:        query,
		ContractType: contractType,
		Limit:        limit,
	})
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to list published jobs", err)
	}

	if s.cache != nil {
		_ = s.cache.SetJSON(ctx, key, jobs, publishedCacheTTL)
	}
	return jobs, nil
}

func (s *jobService) Get(ctx context.Context, id string) (*models.JobWithMeta, error) {
	const op = "JobService.Get"

	if id == "" {
		return nil, utils.E(utils.CodeInvalidArgument, op, "job id is required", nil)
	}

	key := detailCacheKey(id)
	if s.cache != nil {
		var cached models.JobWithMeta
		if hit, err := s.cache.GetJSON(ctx, key, &cached); err == nil && hit {
			return &cached, nil
		}
	}

	job, err := s.jobs.GetWithMeta(ctx, id)
	if err != nil {
		if errors.Is(err, utils.ErrNotFound) {
			return nil, utils.E(utils.CodeNotFound, op, "job not found", err)
		}
		return nil, utils.E(utils.CodeInternal, op, "failed to load job", err)
	}

	if s.cache != nil {
		_ = s.cache.SetJSON(ctx, key, job, detailCacheTTL)
	}
	return job, nil
}

func (s *jobService) ListByRecruiter(ctx context.Context, recruiterID string) ([]models.JobWithMeta, error) {
	const op = "JobService.ListByRecruiter"

	if recruiterID == "" {
		return nil, utils.E(utils.CodeInvalidArgument, op, "recruiter id is required", nil)
	}

	jobs, err := s.jobs.ListByRecruiter(ctx, recruiterID)
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to list recruiter jobs", err)
	}
	return jobs, nil
}

func (s *jobService) Create(ctx context.Context, recruiterID string, in CreateJobInput) (*models.Job, error) {
	const op = "JobService.Create"

	if recruiterID == "" {
		return nil, utils.E(utils.CodeInvalidArgument, op, "recruiter id is required", nil)
	}
	for field, value := range map[string]string{
		"title":         in.Title,
		"company":       in.Company,
		"location":      in.Location,
		"description":   in.Description,
		"contract_type": in.ContractType,
		"category":      in.Category,
	} {
		if strings.TrimSpace(value) == "" {
			return nil, utils.E(utils.CodeInvalidArgument, op, field+" is required", nil)
		}
	}

	status := models.JobStatusActive
	if in.Status != "" {
		status = models.JobStatus(in.Status)
	}

	keywords, err := encodeKeywords(in.Keywords)
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to encode keywords", err)
	}

	now := time.Now().UTC()
	job := &models.Job{
		ID:           uuid.NewString(),
		UserID:       recruiterID,
		Title:        in.Title,
		Company:      in.Company,
		Location:     in.Location,
		Description:  in.Description,
		Requirements: in.Requirements,
		SalaryMin:    in.SalaryMin,
		SalaryMax:    in.SalaryMax,
		ContractType: in.ContractType,
		Category:     in.Category,
		Keywords:     keywords,
		Status:       status,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.jobs.Create(ctx, job); err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to create job", err)
	}

	s.invalidatePublished(ctx)
	return job, nil
}

func (s *jobService) Update(ctx context.Context, recruiterID, jobID string, patch UpdateJobPatch) (*models.Job, error) {
	const op = "JobService.Update"

	if recruiterID == "" || jobID == "" {
		return nil, utils.E(utils.CodeInvalidArgument, op, "recruiter id and job id are required", nil)
	}

	fields := map[string]any{}
	if patch.Title != nil {
		fields["title"] = *patch.Title
	}
	if patch.Company != nil {
		fields["company"] = *patch.Company
	}
	if patch.Location != nil {
		fields["location"] = *patch.Location
	}
	if patch.Description != nil {
		fields["description"] = *patch.Description
	}
	if patch.Requirements != nil {
		fields["requirements"] = *patch.Requirements
	}
	if patch.SalaryMin != nil {
		fields["salary_min"] = *patch.SalaryMin
	}
	if patch.SalaryMax != nil {
		fields["salary_max"] = *patch.SalaryMax
	}
	if patch.ContractType != nil {
		fields["contract_type"] = *patch.ContractType
	}
	if patch.Category != nil {
		fields["category"] = *patch.Category
	}
	if patch.Status != nil {
		fields["status"] = *patch.Status
	}
	if patch.Keywords != nil {
		keywords, err := encodeKeywords(*patch.Keywords)
		if err != nil {
			return nil, utils.E(utils.CodeInternal, op, "failed to encode keywords", err)
		}
		fields["keywords"] = keywords
	}
	if len(fields) == 0 {
		return nil, utils.E(utils.CodeInvalidArgument, op, "no fields to update", nil)
	}
	fields["updated_at"] = time.Now().UTC()

	// Ownership and existence fail identically: a recruiter cannot tell
	// another recruiter's job apart from a missing one.
	if err := s.jobs.UpdateOwned(ctx, recruiterID, jobID, fields); err != nil {
		if errors.Is(err, utils.ErrNotFound) {
			return nil, utils.E(utils.CodeNotFound, op, "job not found", err)
		}
		return nil, utils.E(utils.CodeInternal, op, "failed to update job", err)
	}

	s.invalidateDetail(ctx, jobID)
	s.invalidatePublished(ctx)

	job, err := s.jobs.GetOwned(ctx, recruiterID, jobID)
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to reload job", err)
	}
	return job, nil
}

func (s *jobService) Delete(ctx context.Context, recruiterID, jobID string) error {
	const op = "JobService.Delete"

	if recruiterID == "" || jobID == "" {
		return utils.E(utils.CodeInvalidArgument, op, "recruiter id and job id are required", nil)
	}

	if err := s.jobs.DeleteOwned(ctx, recruiterID, jobID); err != nil {
		if errors.Is(err, utils.ErrNotFound) {
			return utils.E(utils.CodeNotFound, op, "job not found", err)
		}
		return utils.E(utils.CodeInternal, op, "failed to delete job", err)
	}

	s.invalidateDetail(ctx, jobID)
	s.invalidatePublished(ctx)
	return nil
}

func (s *jobService) invalidateDetail(ctx context.Context, jobID string) {
	if s.cache != nil {
		_ = s.cache.Del(ctx, detailCacheKey(jobID))
	}
}

// invalidatePublished drops the version key, detaching every cached
// published list. The orphaned entries fall out on their own TTL.
func (s *jobService) invalidatePublished(ctx context.Context) {
	if s.cache != nil {
		_ = s.cache.Del(ctx, publishedVersionKey)
	}
}

// publishedVersion returns the current list-cache namespace, minting a new
// one after an invalidation.
func (s *jobService) publishedVersion(ctx context.Context) string {
	var ver string
	if hit, err := s.cache.GetJSON(ctx, publishedVersionKey, &ver); err == nil && hit && ver != "" {
		return ver
	}

	ver = uuid.NewString()
	_ = s.cache.SetJSON(ctx, publishedVersionKey, ver, 0)
	return ver
}

func detailCacheKey(jobID string) string {
	return "jobs:detail:" + jobID
}

func encodeKeywords(keywords []string) (datatypes.JSON, error) {
	if keywords == nil {
		keywords = []string{}
	}
	b, err := json.Marshal(keywords)
	if err != nil {
		return nil, err
	}
	return datatypes.JSON(b), nil
}
