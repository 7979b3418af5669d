package services

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/emploirapide/api/internal/models"
	pgrepo "github.com/emploirapide/api/internal/repositories/postgres"
	"github.com/emploirapide/api/internal/storage"
	"github.com/emploirapide/api/internal/utils"
)

const maxCVSize = 10 << 20 // 10 MiB

type CVService interface {
	List(ctx context.Context, userID string) ([]models.CV, error)
	Upload(ctx context.Context, userID, filename, fileData string) (*models.CV, error)
	Delete(ctx context.Context, userID, cvID string) error
}

type cvService struct {
	cvs   pgrepo.CVRepository
	store storage.Store
	log   *logrus.Logger
}

func NewCVService(cvs pgrepo.CVRepository, store storage.Store, log *logrus.Logger) CVService {
	return &cvService{cvs: cvs, store: store, log: log}
}

func (s *cvService) List(ctx context.Context, userID string) ([]models.CV, error) {
	const op = "CVService.List"

	if userID == "" {
		return nil, utils.E(utils.CodeUnauthorized, op, "authentication required", nil)
	}

	cvs, err := s.cvs.ListByUser(ctx, userID)
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to list CVs", err)
	}
	return cvs, nil
}

func (s *cvService) Upload(ctx context.Context, userID, filename, fileData string) (*models.CV, error) {
	const op = "CVService.Upload"

	if userID == "" {
		return nil, utils.E(utils.CodeUnauthorized, op, "authentication required", nil)
	}
	if filename == "" || fileData == "" {
		return nil, utils.E(utils.CodeInvalidArgument, op, "fileName and fileData are required", nil)
	}

	contentType, data, err := utils.ParseDataURI(fileData)
	if err != nil {
		return nil, utils.E(utils.CodeInvalidArgument, op, "invalid CV payload", err)
	}
	if len(data) > maxCVSize {
		return nil, utils.E(utils.CodeInvalidArgument, op, "CV exceeds the 10MB limit", nil)
	}
	if contentType != "application/pdf" {
		return nil, utils.E(utils.CodeInvalidArgument, op, "CV must be a PDF", nil)
	}

	objectKey := fmt.Sprintf("cvs/%s/%s.pdf", userID, uuid.NewString())
	url, err := s.store.Upload(ctx, objectKey, contentType, bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, utils.E(utils.CodeUpstream, op, "failed to store CV", err)
	}

	cv := &models.CV{
		ID:         uuid.NewString(),
		UserID:     userID,
		Filename:   sanitizeFilename(filename),
		URL:        url,
		ObjectKey:  objectKey,
		UploadedAt: time.Now().UTC(),
	}
	if err := s.cvs.Create(ctx, cv); err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to record CV", err)
	}
	return cv, nil
}

func (s *cvService) Delete(ctx context.Context, userID, cvID string) error {
	const op = "CVService.Delete"

	if userID == "" {
		return utils.E(utils.CodeUnauthorized, op, "authentication required", nil)
	}

	cv, err := s.cvs.GetOwned(ctx, userID, cvID)
	if err != nil {
		if errors.Is(err, utils.ErrNotFound) {
			return utils.E(utils.CodeNotFound, op, "CV not found", err)
		}
		return utils.E(utils.CodeInternal, op, "failed to load CV", err)
	}

	if err := s.cvs.Delete(ctx, cv.ID); err != nil {
		return utils.E(utils.CodeInternal, op, "failed to delete CV", err)
	}

	// The record is gone either way; a stale object is only wasted space.
	if err := s.store.Delete(ctx, cv.ObjectKey); err != nil {
		s.log.WithError(err).WithField("object", cv.ObjectKey).Warn("failed to remove stored CV")
	}
	return nil
}

func sanitizeFilename(name string) string {
	name = strings.TrimSpace(name)
	name = strings.ReplaceAll(name, "/", "_")
	name = strings.ReplaceAll(name, "\\", "_")
	if name == "" {
		name = "cv.pdf"
	}
	return name
}
