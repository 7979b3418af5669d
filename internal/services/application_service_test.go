package services

import (
	"context"
	"testing"

	"github.com/emploirapide/api/internal/models"
	pgrepo "github.com/emploirapide/api/internal/repositories/postgres"
	"github.com/emploirapide/api/internal/utils"
)

func TestApplicationServiceCreateAndDuplicate(t *testing.T) {
	db := newTestDB(t)
	svc := NewApplicationService(pgrepo.NewApplicationRepo(db), pgrepo.NewJobRepo(db))
	recruiter := seedUser(t, db, models.RoleRecruiter)
	candidate := seedUser(t, db, models.RoleCandidate)
	job := seedJob(t, db, recruiter.ID, models.JobStatusActive)

	letter := "Je suis très motivé."
	app, err := svc.Create(context.Background(), candidate.ID, job.ID, &letter)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if app.Status != models.ApplicationPending {
		t.Fatalf("status = %s, want pending", app.Status)
	}

	_, err = svc.Create(context.Background(), candidate.ID, job.ID, nil)
	wantCode(t, err, utils.CodeConflict)

	var count int64
	if err := db.Model(&models.Application{}).Count(&count).Error; err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 1 {
		t.Fatalf("got %d applications, want 1", count)
	}
}

func TestApplicationServiceCreateMissingJob(t *testing.T) {
	db := newTestDB(t)
	svc := NewApplicationService(pgrepo.NewApplicationRepo(db), pgrepo.NewJobRepo(db))
	candidate := seedUser(t, db, models.RoleCandidate)

	_, err := svc.Create(context.Background(), candidate.ID, "no-such-job", nil)
	wantCode(t, err, utils.CodeNotFound)
}

func TestApplicationServiceListPerRole(t *testing.T) {
	db := newTestDB(t)
	svc := NewApplicationService(pgrepo.NewApplicationRepo(db), pgrepo.NewJobRepo(db))
	recruiter := seedUser(t, db, models.RoleRecruiter)
	otherRecruiter := seedUser(t, db, models.RoleRecruiter)
	candidate := seedUser(t, db, models.RoleCandidate)
	job := seedJob(t, db, recruiter.ID, models.JobStatusActive)

	if _, err := svc.Create(context.Background(), candidate.ID, job.ID, nil); err != nil {
		t.Fatalf("create: %v", err)
	}

	// The candidate sees their application with the job embedded.
	mine, err := svc.List(context.Background(), Identity{UserID: candidate.ID, Role: models.RoleCandidate})
	if err != nil {
		t.Fatalf("candidate list: %v", err)
	}
	if len(mine) != 1 {
		t.Fatalf("candidate got %d applications, want 1", len(mine))
	}
	if mine[0].Job == nil || mine[0].Job.ID != job.ID {
		t.Fatalf("candidate view missing job")
	}
	if mine[0].Applicant != nil {
		t.Fatalf("candidate view should not carry the applicant projection")
	}

	// The job owner sees it with the applicant's public fields.
	received, err := svc.List(context.Background(), Identity{UserID: recruiter.ID, Role: models.RoleRecruiter})
	if err != nil {
		t.Fatalf("recruiter list: %v", err)
	}
	if len(received) != 1 {
		t.Fatalf("recruiter got %d applications, want 1", len(received))
	}
	if received[0].Applicant == nil || received[0].Applicant.Email != candidate.Email {
		t.Fatalf("recruiter view missing applicant projection")
	}

	// Another recruiter sees nothing.
	other, err := svc.List(context.Background(), Identity{UserID: otherRecruiter.ID, Role: models.RoleRecruiter})
	if err != nil {
		t.Fatalf("other recruiter list: %v", err)
	}
	if len(other) != 0 {
		t.Fatalf("other recruiter got %d applications, want 0", len(other))
	}
}

func TestApplicationServiceUpdateStatus(t *testing.T) {
	db := newTestDB(t)
	svc := NewApplicationService(pgrepo.NewApplicationRepo(db), pgrepo.NewJobRepo(db))
	recruiter := seedUser(t, db, models.RoleRecruiter)
	otherRecruiter := seedUser(t, db, models.RoleRecruiter)
	candidate := seedUser(t, db, models.RoleCandidate)
	job := seedJob(t, db, recruiter.ID, models.JobStatusActive)

	app, err := svc.Create(context.Background(), candidate.ID, job.ID, nil)
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	_, err = svc.UpdateStatus(context.Background(), recruiter.ID, app.ID, "definitely-not-a-status")
	wantCode(t, err, utils.CodeInvalidArgument)

	_, err = svc.UpdateStatus(context.Background(), otherRecruiter.ID, app.ID, "reviewed")
	wantCode(t, err, utils.CodeNotFound)

	updated, err := svc.UpdateStatus(context.Background(), recruiter.ID, app.ID, "shortlisted")
	if err != nil {
		t.Fatalf("update status: %v", err)
	}
	if updated.Status != models.ApplicationShortlisted {
		t.Fatalf("status = %s, want shortlisted", updated.Status)
	}
}
