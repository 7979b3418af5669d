package services

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/emploirapide/api/internal/models"
	pgrepo "github.com/emploirapide/api/internal/repositories/postgres"
	"github.com/emploirapide/api/internal/utils"
)

func strp(s string) *string { return &s }

func TestProfileServicePartialUpdate(t *testing.T) {
	db := newTestDB(t)
	svc := NewProfileService(pgrepo.NewUserRepo(db), newFakeStore())
	candidate := seedUser(t, db, models.RoleCandidate)

	skills := json.RawMessage(`["Go","SQL"]`)
	profile, err := svc.Update(context.Background(), candidate.ID, ProfilePatch{
		City:   strp("Bouaké"),
		Skills: &skills,
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}

	if profile["city"] != "Bouaké" {
		t.Fatalf("city = %v", profile["city"])
	}
	// Untouched fields keep their stored value.
	if profile["name"] != candidate.Name {
		t.Fatalf("name = %v, want %v", profile["name"], candidate.Name)
	}
	got, ok := profile["skills"].([]any)
	if !ok || len(got) != 2 {
		t.Fatalf("skills = %v", profile["skills"])
	}
}

func TestProfileServiceRoleShapesView(t *testing.T) {
	db := newTestDB(t)
	svc := NewProfileService(pgrepo.NewUserRepo(db), newFakeStore())
	recruiter := seedUser(t, db, models.RoleRecruiter)
	candidate := seedUser(t, db, models.RoleCandidate)

	rp, err := svc.Get(context.Background(), recruiter.ID)
	if err != nil {
		t.Fatalf("get recruiter: %v", err)
	}
	if rp["companyName"] != recruiter.CompanyName {
		t.Fatalf("recruiter view missing companyName: %v", rp)
	}
	if _, ok := rp["skills"]; ok {
		t.Fatalf("recruiter view should not carry candidate sub-records")
	}

	cp, err := svc.Get(context.Background(), candidate.ID)
	if err != nil {
		t.Fatalf("get candidate: %v", err)
	}
	if _, ok := cp["skills"]; !ok {
		t.Fatalf("candidate view missing skills")
	}
	if _, ok := cp["companyName"]; ok {
		t.Fatalf("candidate view should not carry recruiter fields")
	}
}

func TestProfileServicePhotoUpload(t *testing.T) {
	db := newTestDB(t)
	store := newFakeStore()
	svc := NewProfileService(pgrepo.NewUserRepo(db), store)
	candidate := seedUser(t, db, models.RoleCandidate)

	payload := "data:image/png;base64," + base64.StdEncoding.EncodeToString([]byte("fake png bytes"))
	profile, err := svc.Update(context.Background(), candidate.ID, ProfilePatch{
		ProfilePhoto: strp(payload),
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}

	url, _ := profile["profilePhoto"].(string)
	if !strings.HasPrefix(url, "https://files.example.ci/profiles/"+candidate.ID+"/") {
		t.Fatalf("profilePhoto = %q", url)
	}
	if len(store.uploaded) != 1 {
		t.Fatalf("uploaded %d objects, want 1", len(store.uploaded))
	}
}

func TestProfileServiceUploadFailureCommitsNothing(t *testing.T) {
	db := newTestDB(t)
	store := newFakeStore()
	store.uploadErr = errors.New("bucket unavailable")
	svc := NewProfileService(pgrepo.NewUserRepo(db), store)
	candidate := seedUser(t, db, models.RoleCandidate)

	payload := "data:image/png;base64," + base64.StdEncoding.EncodeToString([]byte("x"))
	_, err := svc.Update(context.Background(), candidate.ID, ProfilePatch{
		City:         strp("Yamoussoukro"),
		ProfilePhoto: strp(payload),
	})
	wantCode(t, err, utils.CodeUpstream)

	// The whole patch is rejected, including fields unrelated to the photo.
	profile, err := svc.Get(context.Background(), candidate.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if profile["city"] != candidate.City {
		t.Fatalf("city = %v, want %v", profile["city"], candidate.City)
	}
}
