package services

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"github.com/emploirapide/api/internal/models"
	pgrepo "github.com/emploirapide/api/internal/repositories/postgres"
	"github.com/emploirapide/api/internal/utils"
)

type SavedJobService interface {
	List(ctx context.Context, candidateID string) ([]map[string]any, error)
	Save(ctx context.Context, candidateID, jobID string, jobData json.RawMessage) (*models.SavedJob, error)
	Unsave(ctx context.Context, candidateID, jobID string) error
}

type savedJobService struct {
	saved pgrepo.SavedJobRepository
}

func NewSavedJobService(saved pgrepo.SavedJobRepository) SavedJobService {
	return &savedJobService{saved: saved}
}

func (s *savedJobService) List(ctx context.Context, candidateID string) ([]map[string]any, error) {
	const op = "SavedJobService.List"

	if candidateID == "" {
		return nil, utils.E(utils.CodeUnauthorized, op, "authentication required", nil)
	}

	rows, err := s.saved.ListByCandidate(ctx, candidateID)
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to list saved jobs", err)
	}

	out := make([]map[string]any, 0, len(rows))
	for _, r := range rows {
		entry := decodeSnapshot(r.JobData)
		entry["savedJobId"] = r.ID
		entry["jobId"] = r.JobID
		entry["savedAt"] = r.SavedAt
		out = append(out, entry)
	}
	return out, nil
}

func (s *savedJobService) Save(ctx context.Context, candidateID, jobID string, jobData json.RawMessage) (*models.SavedJob, error) {
	const op = "SavedJobService.Save"

	if candidateID == "" {
		return nil, utils.E(utils.CodeUnauthorized, op, "authentication required", nil)
	}
	if jobID == "" || len(jobData) == 0 {
		return nil, utils.E(utils.CodeInvalidArgument, op, "jobId and jobData are required", nil)
	}

	saved := &models.SavedJob{
		ID:      uuid.NewString(),
		UserID:  candidateID,
		JobID:   jobID,
		JobData: datatypes.JSON(jobData),
		SavedAt: time.Now().UTC(),
	}

	if err := s.saved.Create(ctx, saved); err != nil {
		if errors.Is(err, utils.ErrDuplicate) {
			return nil, utils.E(utils.CodeConflict, op, "job already saved", err)
		}
		return nil, utils.E(utils.CodeInternal, op, "failed to save job", err)
	}
	return saved, nil
}

// Unsave removes the bookmark if present. Removing a job that was never
// saved is not an error.
func (s *savedJobService) Unsave(ctx context.Context, candidateID, jobID string) error {
	const op = "SavedJobService.Unsave"

	if candidateID == "" {
		return utils.E(utils.CodeUnauthorized, op, "authentication required", nil)
	}
	if jobID == "" {
		return utils.E(utils.CodeInvalidArgument, op, "jobId is required", nil)
	}

	if err := s.saved.DeleteByJob(ctx, candidateID, jobID); err != nil {
		return utils.E(utils.CodeInternal, op, "failed to remove saved job", err)
	}
	return nil
}
