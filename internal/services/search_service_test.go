package services

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/emploirapide/api/internal/jsearch"
	"github.com/emploirapide/api/internal/logger"
	"github.com/emploirapide/api/internal/models"
	pgrepo "github.com/emploirapide/api/internal/repositories/postgres"
	"github.com/emploirapide/api/internal/utils"
)

func TestSearchServiceLocalOnly(t *testing.T) {
	db := newTestDB(t)
	jobSvc := NewJobService(pgrepo.NewJobRepo(db), nil)
	recruiter := seedUser(t, db, models.RoleRecruiter)
	seedJob(t, db, recruiter.ID, models.JobStatusActive)
	seedJob(t, db, recruiter.ID, models.JobStatusPaused)

	// No credential: the external leg is skipped even for source=all.
	svc := NewSearchService(jobSvc, jsearch.NewClient("", ""), logger.New())

	result, err := svc.Search(context.Background(), SearchParams{Source: "all"})
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if result.Local != 1 || result.External != 0 || result.Total != 1 {
		t.Fatalf("counts = %+v", result)
	}
	job := result.Jobs[0]
	if !job.IsLocal {
		t.Fatal("local job not flagged as local")
	}
	if job.Salary != "Salaire non spécifié" {
		t.Fatalf("salary = %q", job.Salary)
	}
}

func TestSearchServiceMergesExternal(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"data":[{"job_id":"ext-1","job_title":"Ingénieur réseau","employer_name":"Orange CI","job_city":"Abidjan","job_employment_type":"CONTRACTOR","job_min_salary":200000,"job_max_salary":400000,"job_salary_currency":"XOF","job_apply_link":"https://apply.example.com/ext-1"}]}`))
	}))
	defer srv.Close()

	db := newTestDB(t)
	jobSvc := NewJobService(pgrepo.NewJobRepo(db), nil)
	recruiter := seedUser(t, db, models.RoleRecruiter)
	local := seedJob(t, db, recruiter.ID, models.JobStatusActive)

	svc := NewSearchService(jobSvc, jsearch.NewClient("key", srv.URL), logger.New())

	result, err := svc.Search(context.Background(), SearchParams{})
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if result.Local != 1 || result.External != 1 || result.Total != 2 {
		t.Fatalf("counts = %+v", result)
	}

	// Local listings come first.
	if result.Jobs[0].ID != local.ID || !result.Jobs[0].IsLocal {
		t.Fatalf("first job = %+v", result.Jobs[0])
	}

	ext := result.Jobs[1]
	if ext.ID != "ext-1" || ext.IsLocal {
		t.Fatalf("external job = %+v", ext)
	}
	if ext.ApplyLink != "https://apply.example.com/ext-1" {
		t.Fatalf("applyLink = %q", ext.ApplyLink)
	}
	if ext.Salary != "200000 - 400000 XOF" {
		t.Fatalf("external salary = %q", ext.Salary)
	}
}

func TestSearchServiceSourceLocalSkipsProvider(t *testing.T) {
	called := false
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		called = true
		_, _ = w.Write([]byte(`{"data":[]}`))
	}))
	defer srv.Close()

	db := newTestDB(t)
	svc := NewSearchService(NewJobService(pgrepo.NewJobRepo(db), nil), jsearch.NewClient("key", srv.URL), logger.New())

	if _, err := svc.Search(context.Background(), SearchParams{Source: "local"}); err != nil {
		t.Fatalf("search: %v", err)
	}
	if called {
		t.Fatal("provider queried for source=local")
	}
}

func TestSearchServiceRateLimited(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"message":"Too many requests"}`))
	}))
	defer srv.Close()

	db := newTestDB(t)
	svc := NewSearchService(NewJobService(pgrepo.NewJobRepo(db), nil), jsearch.NewClient("key", srv.URL), logger.New())

	_, err := svc.Search(context.Background(), SearchParams{Source: "external"})
	wantCode(t, err, utils.CodeRateLimited)
}

func TestSearchServiceForwardsProviderStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte(`{"message":"You are not subscribed to this API."}`))
	}))
	defer srv.Close()

	db := newTestDB(t)
	svc := NewSearchService(NewJobService(pgrepo.NewJobRepo(db), nil), jsearch.NewClient("key", srv.URL), logger.New())

	_, err := svc.Search(context.Background(), SearchParams{Source: "external"})
	if err == nil {
		t.Fatal("expected error")
	}
	if got := utils.HTTPStatus(err); got != http.StatusForbidden {
		t.Fatalf("status = %d, want 403", got)
	}
}
