package postgres

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/emploirapide/api/internal/models"
	"github.com/emploirapide/api/internal/utils"
)

// PublicFilter narrows the public job listing.
type PublicFilter struct {
	Query        string
	ContractType string
	Limit        int
}

type JobRepository interface {
	Create(ctx context.Context, j *models.Job) error
	GetWithMeta(ctx context.Context, id string) (*models.JobWithMeta, error)
	ListPublic(ctx context.Context, f PublicFilter) ([]models.JobWithMeta, error)
	ListByRecruiter(ctx context.Context, recruiterID string) ([]models.JobWithMeta, error)
	GetOwned(ctx context.Context, recruiterID, jobID string) (*models.Job, error)
	UpdateOwned(ctx context.Context, recruiterID, jobID string, fields map[string]any) error
	DeleteOwned(ctx context.Context, recruiterID, jobID string) error
	Exists(ctx context.Context, jobID string) (bool, error)
}

type jobRepo struct {
	db *gorm.DB
}

func NewJobRepo(db *gorm.DB) JobRepository {
	return &jobRepo{db: db}
}

func (r *jobRepo) Create(ctx context.Context, j *models.Job) error {
	return r.db.WithContext(ctx).Create(j).Error
}

func (r *jobRepo) GetWithMeta(ctx context.Context, id string) (*models.JobWithMeta, error) {
	var j models.Job
	err := r.db.WithContext(ctx).
		Preload("User").
		Where("id = ?", id).
		Take(&j).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, utils.ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	counts, err := r.applicationCounts(ctx, []string{j.ID})
	if err != nil {
		return nil, err
	}
	meta := withMeta(j, counts)
	return &meta, nil
}

func (r *jobRepo) ListPublic(ctx context.Context, f PublicFilter) ([]models.JobWithMeta, error) {
	if f.Limit <= 0 {
		f.Limit = 15
	}

	q := r.db.WithContext(ctx).
		Preload("User").
		Where("status = ?", models.JobStatusActive)

	if f.Query != "" {
		like := "%" + strings.ToLower(f.Query) + "%"
		q = q.Where("LOWER(title) LIKE ? OR LOWER(description) LIKE ? OR LOWER(company) LIKE ?", like, like, like)
	}
	if f.ContractType != "" && f.ContractType != "all" {
		q = q.Where("contract_type = ?", f.ContractType)
	}

	var jobs []models.Job
	if err := q.Order("created_at DESC").Limit(f.Limit).Find(&jobs).Error; err != nil {
		return nil, err
	}
	return r.attachMeta(ctx, jobs)
}

func (r *jobRepo) ListByRecruiter(ctx context.Context, recruiterID string) ([]models.JobWithMeta, error) {
	var jobs []models.Job
	err := r.db.WithContext(ctx).
		Where("user_id = ?", recruiterID).
		Order("created_at DESC").
		Find(&jobs).Error
	if err != nil {
		return nil, err
	}
	return r.attachMeta(ctx, jobs)
}

func (r *jobRepo) GetOwned(ctx context.Context, recruiterID, jobID string) (*models.Job, error) {
	var j models.Job
	err := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", jobID, recruiterID).
		Take(&j).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, utils.ErrNotFound
	}
	return &j, err
}

func (r *jobRepo) UpdateOwned(ctx context.Context, recruiterID, jobID string, fields map[string]any) error {
	res := r.db.WithContext(ctx).
		Model(&models.Job{}).
		Where("id = ? AND user_id = ?", jobID, recruiterID).
		Updates(fields)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return utils.ErrNotFound
	}
	return nil
}

func (r *jobRepo) DeleteOwned(ctx context.Context, recruiterID, jobID string) error {
	res := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", jobID, recruiterID).
		Delete(&models.Job{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return utils.ErrNotFound
	}
	return nil
}

func (r *jobRepo) Exists(ctx context.Context, jobID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Job{}).
		Where("id = ?", jobID).
		Count(&count).Error
	return count > 0, err
}

// applicationCounts returns application totals for the given jobs in one
// grouped query.
func (r *jobRepo) applicationCounts(ctx context.Context, jobIDs []string) (map[string]int64, error) {
	counts := map[string]int64{}
	if len(jobIDs) == 0 {
		return counts, nil
	}

	type row struct {
		JobID string
		Total int64
	}
	var rows []row
	err := r.db.WithContext(ctx).
		Model(&models.Application{}).
		Select("job_id, COUNT(*) AS total").
		Where("job_id IN ?", jobIDs).
		Group("job_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	for _, rr := range rows {
		counts[rr.JobID] = rr.Total
	}
	return counts, nil
}

func (r *jobRepo) attachMeta(ctx context.Context, jobs []models.Job) ([]models.JobWithMeta, error) {
	ids := make([]string, 0, len(jobs))
	for _, j := range jobs {
		ids = append(ids, j.ID)
	}
	counts, err := r.applicationCounts(ctx, ids)
	if err != nil {
		return nil, err
	}

	out := make([]models.JobWithMeta, 0, len(jobs))
	for _, j := range jobs {
		out = append(out, withMeta(j, counts))
	}
	return out, nil
}

func withMeta(j models.Job, counts map[string]int64) models.JobWithMeta {
	meta := models.JobWithMeta{Job: j, ApplicationCount: counts[j.ID]}
	if j.User != nil {
		meta.OwnerName = j.User.Name
		meta.OwnerCompanyName = j.User.CompanyName
		meta.OwnerPhoto = j.User.ProfilePhoto
	}
	meta.Job.User = nil
	return meta
}
