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

const externalApplied = "applied"

type ExternalApplicationService interface {
	List(ctx context.Context, candidateID string) ([]map[string]any, error)
	Create(ctx context.Context, candidateID, jobID string, jobData json.RawMessage) (*models.ExternalApplication, error)
	UpdateStatus(ctx context.Context, candidateID, applicationID, status string) (*models.ExternalApplication, error)
}

type externalApplicationService struct {
	applications pgrepo.ExternalApplicationRepository
}

func NewExternalApplicationService(applications pgrepo.ExternalApplicationRepository) ExternalApplicationService {
	return &externalApplicationService{applications: applications}
}

// List returns each application's job snapshot decoded and merged with its
// tracking fields, the way the jobs were shaped when the candidate applied.
func (s *externalApplicationService) List(ctx context.Context, candidateID string) ([]map[string]any, error) {
	const op = "ExternalApplicationService.List"

	if candidateID == "" {
		return nil, utils.E(utils.CodeUnauthorized, op, "authentication required", nil)
	}

	apps, err := s.applications.ListByCandidate(ctx, candidateID)
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to list external applications", err)
	}

	out := make([]map[string]any, 0, len(apps))
	for _, a := range apps {
		entry := decodeSnapshot(a.JobData)
		entry["id"] = a.ID
		entry["jobId"] = a.JobID
		entry["status"] = a.Status
		entry["appliedAt"] = a.AppliedAt
		out = append(out, entry)
	}
	return out, nil
}

func (s *externalApplicationService) Create(ctx context.Context, candidateID, jobID string, jobData json.RawMessage) (*models.ExternalApplication, error) {
	const op = "ExternalApplicationService.Create"

	if candidateID == "" {
		return nil, utils.E(utils.CodeUnauthorized, op, "authentication required", nil)
	}
	if jobID == "" || len(jobData) == 0 {
		return nil, utils.E(utils.CodeInvalidArgument, op, "jobId and jobData are required", nil)
	}

	app := &models.ExternalApplication{
		ID:        uuid.NewString(),
		UserID:    candidateID,
		JobID:     jobID,
		JobData:   datatypes.JSON(jobData),
		Status:    externalApplied,
		AppliedAt: time.Now().UTC(),
	}

	if err := s.applications.Create(ctx, app); err != nil {
		if errors.Is(err, utils.ErrDuplicate) {
			return nil, utils.E(utils.CodeConflict, op, "you have already applied to this job", err)
		}
		return nil, utils.E(utils.CodeInternal, op, "failed to record external application", err)
	}
	return app, nil
}

func (s *externalApplicationService) UpdateStatus(ctx context.Context, candidateID, applicationID, status string) (*models.ExternalApplication, error) {
	const op = "ExternalApplicationService.UpdateStatus"

	if candidateID == "" {
		return nil, utils.E(utils.CodeUnauthorized, op, "authentication required", nil)
	}
	if applicationID == "" || status == "" {
		return nil, utils.E(utils.CodeInvalidArgument, op, "applicationId and status are required", nil)
	}

	app, err := s.applications.GetOwned(ctx, candidateID, applicationID)
	if err != nil {
		if errors.Is(err, utils.ErrNotFound) {
			return nil, utils.E(utils.CodeNotFound, op, "application not found", err)
		}
		return nil, utils.E(utils.CodeInternal, op, "failed to load application", err)
	}

	// External tracking labels are the candidate's own; no fixed vocabulary.
	if err := s.applications.UpdateStatus(ctx, app.ID, status); err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to update status", err)
	}

	app.Status = status
	return app, nil
}

// decodeSnapshot restores a snapshot's fields. Clients may submit jobData
// either as an object or as JSON-encoded text; the text form is unwrapped
// and re-parsed so both round-trip to the same shape. Anything else is
// nested under "jobData" instead of being dropped.
func decodeSnapshot(data datatypes.JSON) map[string]any {
	var m map[string]any
	if err := json.Unmarshal(data, &m); err == nil && m != nil {
		return m
	}

	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		if err := json.Unmarshal([]byte(s), &m); err == nil && m != nil {
			return m
		}
		return map[string]any{"jobData": s}
	}

	var v any
	if err := json.Unmarshal(data, &v); err == nil {
		return map[string]any{"jobData": v}
	}
	return map[string]any{}
}
