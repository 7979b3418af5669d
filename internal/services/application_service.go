package services

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/emploirapide/api/internal/models"
	pgrepo "github.com/emploirapide/api/internal/repositories/postgres"
	"github.com/emploirapide/api/internal/utils"
)

// Identity is the authenticated caller as resolved by the session check.
type Identity struct {
	UserID string
	Role   models.UserRole
}

// ApplicationView is an application with the extra projection the caller's
// role grants: recruiters additionally see the applicant's public profile.
type ApplicationView struct {
	models.Application
	Applicant *models.PublicApplicant `json:"user,omitempty"`
}

type ApplicationService interface {
	List(ctx context.Context, id Identity) ([]ApplicationView, error)
	Create(ctx context.Context, candidateID, jobID string, coverLetter *string) (*models.Application, error)
	UpdateStatus(ctx context.Context, recruiterID, applicationID, status string) (*models.Application, error)
}

type applicationService struct {
	applications pgrepo.ApplicationRepository
	jobs         pgrepo.JobRepository
}

func NewApplicationService(applications pgrepo.ApplicationRepository, jobs pgrepo.JobRepository) ApplicationService {
	return &applicationService{applications: applications, jobs: jobs}
}

func (s *applicationService) List(ctx context.Context, id Identity) ([]ApplicationView, error) {
	const op = "ApplicationService.List"

	if id.UserID == "" {
		return nil, utils.E(utils.CodeUnauthorized, op, "authentication required", nil)
	}

	switch id.Role {
	case models.RoleCandidate:
		apps, err := s.applications.ListByCandidate(ctx, id.UserID)
		if err != nil {
			return nil, utils.E(utils.CodeInternal, op, "failed to list applications", err)
		}
		views := make([]ApplicationView, 0, len(apps))
		for _, a := range apps {
			a.User = nil
			views = append(views, ApplicationView{Application: a})
		}
		return views, nil

	case models.RoleRecruiter:
		apps, err := s.applications.ListByJobOwner(ctx, id.UserID)
		if err != nil {
			return nil, utils.E(utils.CodeInternal, op, "failed to list applications", err)
		}
		views := make([]ApplicationView, 0, len(apps))
		for _, a := range apps {
			view := ApplicationView{Application: a}
			if a.User != nil {
				applicant := a.User.PublicApplicant()
				view.Applicant = &applicant
			}
			view.Application.User = nil
			views = append(views, view)
		}
		return views, nil

	default:
		return []ApplicationView{}, nil
	}
}

func (s *applicationService) Create(ctx context.Context, candidateID, jobID string, coverLetter *string) (*models.Application, error) {
	const op = "ApplicationService.Create"

	if candidateID == "" {
		return nil, utils.E(utils.CodeUnauthorized, op, "authentication required", nil)
	}
	if jobID == "" {
		return nil, utils.E(utils.CodeInvalidArgument, op, "job id is required", nil)
	}

	exists, err := s.jobs.Exists(ctx, jobID)
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to check job", err)
	}
	if !exists {
		return nil, utils.E(utils.CodeNotFound, op, "job not found", nil)
	}

	app := &models.Application{
		ID:          uuid.NewString(),
		UserID:      candidateID,
		JobID:       jobID,
		CoverLetter: coverLetter,
		Status:      models.ApplicationPending,
		CreatedAt:   time.Now().UTC(),
	}

	// The unique (user, job) index arbitrates concurrent duplicates; no
	// pre-check that could race with the insert.
	if err := s.applications.Create(ctx, app); err != nil {
		if errors.Is(err, utils.ErrDuplicate) {
			return nil, utils.E(utils.CodeConflict, op, "you have already applied to this job", err)
		}
		return nil, utils.E(utils.CodeInternal, op, "failed to create application", err)
	}
	return app, nil
}

func (s *applicationService) UpdateStatus(ctx context.Context, recruiterID, applicationID, status string) (*models.Application, error) {
	const op = "ApplicationService.UpdateStatus"

	if recruiterID == "" {
		return nil, utils.E(utils.CodeUnauthorized, op, "authentication required", nil)
	}
	if applicationID == "" || status == "" {
		return nil, utils.E(utils.CodeInvalidArgument, op, "application id and status are required", nil)
	}
	if !models.ValidApplicationStatus(status) {
		return nil, utils.E(utils.CodeInvalidArgument, op, "unknown application status", nil)
	}

	app, err := s.applications.GetWithJob(ctx, applicationID)
	if err != nil {
		if errors.Is(err, utils.ErrNotFound) {
			return nil, utils.E(utils.CodeNotFound, op, "application not found", err)
		}
		return nil, utils.E(utils.CodeInternal, op, "failed to load application", err)
	}
	if app.Job == nil || app.Job.UserID != recruiterID {
		// Same answer as a missing application: ownership is not leaked.
		return nil, utils.E(utils.CodeNotFound, op, "application not found", nil)
	}

	if err := s.applications.UpdateStatus(ctx, applicationID, models.ApplicationStatus(status)); err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to update status", err)
	}

	app.Status = models.ApplicationStatus(status)
	return app, nil
}
