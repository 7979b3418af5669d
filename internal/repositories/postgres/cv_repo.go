package postgres

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/emploirapide/api/internal/models"
	"github.com/emploirapide/api/internal/utils"
)

type CVRepository interface {
	Create(ctx context.Context, cv *models.CV) error
	ListByUser(ctx context.Context, userID string) ([]models.CV, error)
	GetOwned(ctx context.Context, userID, id string) (*models.CV, error)
	Delete(ctx context.Context, id string) error
}

type cvRepo struct {
	db *gorm.DB
}

func NewCVRepo(db *gorm.DB) CVRepository {
	return &cvRepo{db: db}
}

func (r *cvRepo) Create(ctx context.Context, cv *models.CV) error {
	return r.db.WithContext(ctx).Create(cv).Error
}

func (r *cvRepo) ListByUser(ctx context.Context, userID string) ([]models.CV, error) {
	var cvs []models.CV
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("uploaded_at DESC").
		Find(&cvs).Error
	return cvs, err
}

func (r *cvRepo) GetOwned(ctx context.Context, userID, id string) (*models.CV, error) {
	var cv models.CV
	err := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		Take(&cv).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, utils.ErrNotFound
	}
	return &cv, err
}

func (r *cvRepo) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&models.CV{}).Error
}
