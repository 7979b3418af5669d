package postgres

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/emploirapide/api/internal/models"
	"github.com/emploirapide/api/internal/utils"
)

type ApplicationRepository interface {
	// Create relies on the store's unique (user_id, job_id) index: a
	// concurrent duplicate insert comes back as utils.ErrDuplicate.
	Create(ctx context.Context, a *models.Application) error
	GetWithJob(ctx context.Context, id string) (*models.Application, error)
	ListByCandidate(ctx context.Context, userID string) ([]models.Application, error)
	ListByJobOwner(ctx context.Context, recruiterID string) ([]models.Application, error)
	UpdateStatus(ctx context.Context, id string, status models.ApplicationStatus) error
}

type applicationRepo struct {
	db *gorm.DB
}

func NewApplicationRepo(db *gorm.DB) ApplicationRepository {
	return &applicationRepo{db: db}
}

func (r *applicationRepo) Create(ctx context.Context, a *models.Application) error {
	err := r.db.WithContext(ctx).Create(a).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return utils.ErrDuplicate
	}
	return err
}

func (r *applicationRepo) GetWithJob(ctx context.Context, id string) (*models.Application, error) {
	var a models.Application
	err := r.db.WithContext(ctx).
		Preload("Job").
		Where("id = ?", id).
		Take(&a).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, utils.ErrNotFound
	}
	return &a, err
}

func (r *applicationRepo) ListByCandidate(ctx context.Context, userID string) ([]models.Application, error) {
	var apps []models.Application
	err := r.db.WithContext(ctx).
		Preload("Job").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&apps).Error
	return apps, err
}

func (r *applicationRepo) ListByJobOwner(ctx context.Context, recruiterID string) ([]models.Application, error) {
	var apps []models.Application
	err := r.db.WithContext(ctx).
		Preload("Job").
		Preload("User").
		Joins("JOIN jobs ON jobs.id = applications.job_id").
		Where("jobs.user_id = ?", recruiterID).
		Order("applications.created_at DESC").
		Find(&apps).Error
	return apps, err
}

func (r *applicationRepo) UpdateStatus(ctx context.Context, id string, status models.ApplicationStatus) error {
	res := r.db.WithContext(ctx).
		Model(&models.Application{}).
		Where("id = ?", id).
		Update("status", status)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return utils.ErrNotFound
	}
	return nil
}
