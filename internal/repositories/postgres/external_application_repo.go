package postgres

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/emploirapide/api/internal/models"
	"github.com/emploirapide/api/internal/utils"
)

type ExternalApplicationRepository interface {
	Create(ctx context.Context, a *models.ExternalApplication) error
	ListByCandidate(ctx context.Context, userID string) ([]models.ExternalApplication, error)
	GetOwned(ctx context.Context, userID, id string) (*models.ExternalApplication, error)
	UpdateStatus(ctx context.Context, id string, status string) error
}

type externalApplicationRepo struct {
	db *gorm.DB
}

func NewExternalApplicationRepo(db *gorm.DB) ExternalApplicationRepository {
	return &externalApplicationRepo{db: db}
}

func (r *externalApplicationRepo) Create(ctx context.Context, a *models.ExternalApplication) error {
	err := r.db.WithContext(ctx).Create(a).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return utils.ErrDuplicate
	}
	return err
}

func (r *externalApplicationRepo) ListByCandidate(ctx context.Context, userID string) ([]models.ExternalApplication, error) {
	var apps []models.ExternalApplication
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("applied_at DESC").
		Find(&apps).Error
	return apps, err
}

func (r *externalApplicationRepo) GetOwned(ctx context.Context, userID, id string) (*models.ExternalApplication, error) {
	var a models.ExternalApplication
	err := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		Take(&a).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, utils.ErrNotFound
	}
	return &a, err
}

func (r *externalApplicationRepo) UpdateStatus(ctx context.Context, id string, status string) error {
	return r.db.WithContext(ctx).
		Model(&models.ExternalApplication{}).
		Where("id = ?", id).
		Update("status", status).Error
}
