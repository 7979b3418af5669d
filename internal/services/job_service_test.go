package services

import (
	"context"
	"testing"

	"github.com/emploirapide/api/internal/models"
	pgrepo "github.com/emploirapide/api/internal/repositories/postgres"
	"github.com/emploirapide/api/internal/utils"
)

func TestJobServiceCreateDefaultsToActive(t *testing.T) {
	db := newTestDB(t)
	svc := NewJobService(pgrepo.NewJobRepo(db), nil)
	recruiter := seedUser(t, db, models.RoleRecruiter)

	job, err := svc.Create(context.Background(), recruiter.ID, CreateJobInput{
		Title:        "Comptable",
		Company:      "Ivoire Finances",
		Location:     "Abidjan",
		Description:  "Tenue de la comptabilité",
		ContractType: models.ContractCDD,
		Category:     "Finance",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if job.Status != models.JobStatusActive {
		t.Fatalf("status = %s, want active", job.Status)
	}
}

func TestJobServiceCreateRequiresFields(t *testing.T) {
	db := newTestDB(t)
	svc := NewJobService(pgrepo.NewJobRepo(db), nil)
	recruiter := seedUser(t, db, models.RoleRecruiter)

	_, err := svc.Create(context.Background(), recruiter.ID, CreateJobInput{
		Title: "Sans description",
	})
	wantCode(t, err, utils.CodeInvalidArgument)
}

func TestJobServiceListPublishedExcludesPaused(t *testing.T) {
	db := newTestDB(t)
	svc := NewJobService(pgrepo.NewJobRepo(db), nil)
	recruiter := seedUser(t, db, models.RoleRecruiter)

	active := seedJob(t, db, recruiter.ID, models.JobStatusActive)
	seedJob(t, db, recruiter.ID, models.JobStatusPaused)
	seedJob(t, db, recruiter.ID, models.JobStatusClosed)

	jobs, err := svc.ListPublished(context.Background(), "", "", 0)
	if err != nil {
		t.Fatalf("list published: %v", err)
	}
	if len(jobs) != 1 {
		t.Fatalf("got %d jobs, want 1", len(jobs))
	}
	if jobs[0].ID != active.ID {
		t.Fatalf("got job %s, want %s", jobs[0].ID, active.ID)
	}
}

func TestJobServiceGetIncludesOwnerMeta(t *testing.T) {
	db := newTestDB(t)
	svc := NewJobService(pgrepo.NewJobRepo(db), nil)
	recruiter := seedUser(t, db, models.RoleRecruiter)
	job := seedJob(t, db, recruiter.ID, models.JobStatusActive)

	got, err := svc.Get(context.Background(), job.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.OwnerCompanyName != recruiter.CompanyName {
		t.Fatalf("owner company = %q, want %q", got.OwnerCompanyName, recruiter.CompanyName)
	}
	if got.OwnerName != recruiter.Name {
		t.Fatalf("owner name = %q, want %q", got.OwnerName, recruiter.Name)
	}
}

func TestJobServiceGetMissing(t *testing.T) {
	db := newTestDB(t)
	svc := NewJobService(pgrepo.NewJobRepo(db), nil)

	_, err := svc.Get(context.Background(), "no-such-job")
	wantCode(t, err, utils.CodeNotFound)
}

func TestJobServiceUpdateByOtherRecruiterIsNotFound(t *testing.T) {
	db := newTestDB(t)
	svc := NewJobService(pgrepo.NewJobRepo(db), nil)
	owner := seedUser(t, db, models.RoleRecruiter)
	other := seedUser(t, db, models.RoleRecruiter)
	job := seedJob(t, db, owner.ID, models.JobStatusActive)

	title := "Titre modifié"
	_, err := svc.Update(context.Background(), other.ID, job.ID, UpdateJobPatch{Title: &title})
	wantCode(t, err, utils.CodeNotFound)

	// The row is untouched.
	kept, err := svc.Get(context.Background(), job.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if kept.Title != job.Title {
		t.Fatalf("title = %q, want %q", kept.Title, job.Title)
	}
}

func TestJobServiceUpdatePartial(t *testing.T) {
	db := newTestDB(t)
	svc := NewJobService(pgrepo.NewJobRepo(db), nil)
	owner := seedUser(t, db, models.RoleRecruiter)
	job := seedJob(t, db, owner.ID, models.JobStatusActive)

	status := "paused"
	updated, err := svc.Update(context.Background(), owner.ID, job.ID, UpdateJobPatch{Status: &status})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Status != models.JobStatusPaused {
		t.Fatalf("status = %s, want paused", updated.Status)
	}
	if updated.Title != job.Title {
		t.Fatalf("title changed: %q", updated.Title)
	}
}

func TestJobServiceCachedListServesHit(t *testing.T) {
	db := newTestDB(t)
	c := newFakeCache()
	svc := NewJobService(pgrepo.NewJobRepo(db), c)
	recruiter := seedUser(t, db, models.RoleRecruiter)
	seedJob(t, db, recruiter.ID, models.JobStatusActive)

	if _, err := svc.ListPublished(context.Background(), "", "", 0); err != nil {
		t.Fatalf("warm list: %v", err)
	}
	hitsBefore := c.hits

	jobs, err := svc.ListPublished(context.Background(), "", "", 0)
	if err != nil {
		t.Fatalf("cached list: %v", err)
	}
	if len(jobs) != 1 {
		t.Fatalf("got %d jobs, want 1", len(jobs))
	}
	if c.hits <= hitsBefore {
		t.Fatal("second identical list did not come from the cache")
	}
}

func TestJobServicePauseEvictsPublishedCache(t *testing.T) {
	db := newTestDB(t)
	svc := NewJobService(pgrepo.NewJobRepo(db), newFakeCache())
	recruiter := seedUser(t, db, models.RoleRecruiter)
	job := seedJob(t, db, recruiter.ID, models.JobStatusActive)

	// Warm the published list with the job still active.
	warm, err := svc.ListPublished(context.Background(), "", "", 0)
	if err != nil {
		t.Fatalf("warm list: %v", err)
	}
	if len(warm) != 1 {
		t.Fatalf("warm list got %d jobs, want 1", len(warm))
	}

	status := "paused"
	if _, err := svc.Update(context.Background(), recruiter.ID, job.ID, UpdateJobPatch{Status: &status}); err != nil {
		t.Fatalf("pause: %v", err)
	}

	jobs, err := svc.ListPublished(context.Background(), "", "", 0)
	if err != nil {
		t.Fatalf("list after pause: %v", err)
	}
	if len(jobs) != 0 {
		t.Fatalf("paused job still served from cache: %d jobs", len(jobs))
	}
}

func TestJobServiceCreateEvictsPublishedCache(t *testing.T) {
	db := newTestDB(t)
	svc := NewJobService(pgrepo.NewJobRepo(db), newFakeCache())
	recruiter := seedUser(t, db, models.RoleRecruiter)

	// Warm the cache while no job exists.
	warm, err := svc.ListPublished(context.Background(), "", "", 0)
	if err != nil {
		t.Fatalf("warm list: %v", err)
	}
	if len(warm) != 0 {
		t.Fatalf("warm list got %d jobs, want 0", len(warm))
	}

	if _, err := svc.Create(context.Background(), recruiter.ID, CreateJobInput{
		Title:        "Electricien",
		Company:      "Ivoire Energie",
		Location:     "Abidjan",
		Description:  "Installations électriques",
		ContractType: models.ContractCDI,
		Category:     "BTP",
	}); err != nil {
		t.Fatalf("create: %v", err)
	}

	jobs, err := svc.ListPublished(context.Background(), "", "", 0)
	if err != nil {
		t.Fatalf("list after create: %v", err)
	}
	if len(jobs) != 1 {
		t.Fatalf("new job missing from published list: %d jobs", len(jobs))
	}
}

func TestJobServiceDeleteEvictsPublishedCache(t *testing.T) {
	db := newTestDB(t)
	svc := NewJobService(pgrepo.NewJobRepo(db), newFakeCache())
	recruiter := seedUser(t, db, models.RoleRecruiter)
	job := seedJob(t, db, recruiter.ID, models.JobStatusActive)

	if _, err := svc.ListPublished(context.Background(), "", "", 0); err != nil {
		t.Fatalf("warm list: %v", err)
	}

	if err := svc.Delete(context.Background(), recruiter.ID, job.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}

	jobs, err := svc.ListPublished(context.Background(), "", "", 0)
	if err != nil {
		t.Fatalf("list after delete: %v", err)
	}
	if len(jobs) != 0 {
		t.Fatalf("deleted job still served from cache: %d jobs", len(jobs))
	}
}

func TestJobServiceDeleteByOtherRecruiterIsNotFound(t *testing.T) {
	db := newTestDB(t)
	svc := NewJobService(pgrepo.NewJobRepo(db), nil)
	owner := seedUser(t, db, models.RoleRecruiter)
	other := seedUser(t, db, models.RoleRecruiter)
	job := seedJob(t, db, owner.ID, models.JobStatusActive)

	err := svc.Delete(context.Background(), other.ID, job.ID)
	wantCode(t, err, utils.CodeNotFound)

	if err := svc.Delete(context.Background(), owner.ID, job.ID); err != nil {
		t.Fatalf("owner delete: %v", err)
	}
	_, err = svc.Get(context.Background(), job.ID)
	wantCode(t, err, utils.CodeNotFound)
}
