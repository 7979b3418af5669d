package postgres

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/emploirapide/api/internal/models"
	"github.com/emploirapide/api/internal/utils"
)

type SavedJobRepository interface {
	Create(ctx context.Context, s *models.SavedJob) error
	ListByCandidate(ctx context.Context, userID string) ([]models.SavedJob, error)
	// DeleteByJob removes the bookmark for (userID, jobID); deleting an
	// absent pair is a no-op.
	DeleteByJob(ctx context.Context, userID, jobID string) error
}

type savedJobRepo struct {
	db *gorm.DB
}

func NewSavedJobRepo(db *gorm.DB) SavedJobRepository {
	return &savedJobRepo{db: db}
}

func (r *savedJobRepo) Create(ctx context.Context, s *models.SavedJob) error {
	err := r.db.WithContext(ctx).Create(s).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return utils.ErrDuplicate
	}
	return err
}

func (r *savedJobRepo) ListByCandidate(ctx context.Context, userID string) ([]models.SavedJob, error) {
	var saved []models.SavedJob
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("saved_at DESC").
		Find(&saved).Error
	return saved, err
}

func (r *savedJobRepo) DeleteByJob(ctx context.Context, userID, jobID string) error {
	return r.db.WithContext(ctx).
		Where("user_id = ? AND job_id = ?", userID, jobID).
		Delete(&models.SavedJob{}).Error
}
