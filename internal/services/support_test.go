package services

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/emploirapide/api/internal/models"
	"github.com/emploirapide/api/internal/utils"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := "file:" + uuid.NewString() + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	err = db.AutoMigrate(
		&models.User{},
		&models.Job{},
		&models.Application{},
		&models.ExternalApplication{},
		&models.SavedJob{},
		&models.CV{},
	)
	if err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func seedUser(t *testing.T, db *gorm.DB, role models.UserRole) *models.User {
	t.Helper()

	u := &models.User{
		ID:        uuid.NewString(),
		Email:     uuid.NewString() + "@example.ci",
		Name:      "Test " + string(role),
		Role:      role,
		CreatedAt: time.Now().UTC(),
		UpdatedAt: time.Now().UTC(),
	}
	if role == models.RoleRecruiter {
		u.CompanyName = "Ivoire Tech"
	}
	if err := db.Create(u).Error; err != nil {
		t.Fatalf("seed user: %v", err)
	}
	return u
}

func seedJob(t *testing.T, db *gorm.DB, recruiterID string, status models.JobStatus) *models.Job {
	t.Helper()

	j := &models.Job{
		ID:           uuid.NewString(),
		UserID:       recruiterID,
		Title:        "Développeur Go",
		Company:      "Ivoire Tech",
		Location:     "Abidjan",
		Description:  "Construire des services backend",
		ContractType: models.ContractCDI,
		Category:     "Informatique",
		Keywords:     datatypes.JSON(`["go","backend"]`),
		Status:       status,
		CreatedAt:    time.Now().UTC(),
		UpdatedAt:    time.Now().UTC(),
	}
	if err := db.Create(j).Error; err != nil {
		t.Fatalf("seed job: %v", err)
	}
	return j
}

type fakeCache struct {
	entries map[string][]byte
	gets    int
	hits    int
}

func newFakeCache() *fakeCache {
	return &fakeCache{entries: map[string][]byte{}}
}

func (c *fakeCache) GetJSON(_ context.Context, key string, dst any) (bool, error) {
	c.gets++
	b, ok := c.entries[key]
	if !ok {
		return false, nil
	}
	if err := json.Unmarshal(b, dst); err != nil {
		return false, nil
	}
	c.hits++
	return true, nil
}

func (c *fakeCache) SetJSON(_ context.Context, key string, val any, _ time.Duration) error {
	b, err := json.Marshal(val)
	if err != nil {
		return err
	}
	c.entries[key] = b
	return nil
}

func (c *fakeCache) Del(_ context.Context, keys ...string) error {
	for _, k := range keys {
		delete(c.entries, k)
	}
	return nil
}

type fakeStore struct {
	uploaded  map[string][]byte
	deleted   []string
	uploadErr error
}

func newFakeStore() *fakeStore {
	return &fakeStore{uploaded: map[string][]byte{}}
}

func (s *fakeStore) Upload(_ context.Context, objectName, _ string, r io.Reader, _ int64) (string, error) {
	if s.uploadErr != nil {
		return "", s.uploadErr
	}
	b, _ := io.ReadAll(r)
	s.uploaded[objectName] = b
	return "https://files.example.ci/" + objectName, nil
}

func (s *fakeStore) Delete(_ context.Context, objectName string) error {
	s.deleted = append(s.deleted, objectName)
	delete(s.uploaded, objectName)
	return nil
}

func wantCode(t *testing.T, err error, code utils.Code) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected %s error, got nil", code)
	}
	var ae *utils.AppError
	if !errors.As(err, &ae) {
		t.Fatalf("expected AppError, got %T: %v", err, err)
	}
	if ae.Code != code {
		t.Fatalf("expected code %s, got %s (%v)", code, ae.Code, err)
	}
}
