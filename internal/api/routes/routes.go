package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/emploirapide/api/internal/api/handlers"
	"github.com/emploirapide/api/internal/api/middleware"
	"github.com/emploirapide/api/internal/auth"
)

type Deps struct {
	Tokens *auth.TokenService

	Auth        *handlers.AuthHandler
	Job         *handlers.JobHandler
	Search      *handlers.SearchHandler
	Application *handlers.ApplicationHandler
	External    *handlers.ExternalApplicationHandler
	SavedJob    *handlers.SavedJobHandler
	Profile     *handlers.ProfileHandler
	CV          *handlers.CVHandler
}

func RegisterRoutes(r *gin.Engine, d Deps) {
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "pong"})
	})

	api := r.Group("/api")

	// Public surface
	api.POST("/auth/signup", d.Auth.Signup)
	api.POST("/auth/login", d.Auth.Login)
	api.GET("/jobs", d.Search.Search)
	api.GET("/jobs/published", d.Job.ListPublished)
	api.GET("/jobs/:id", d.Job.Get)

	authed := api.Group("/")
	authed.Use(middleware.JWTAuth(d.Tokens))

	// Recruiter surface
	recruiter := authed.Group("/recruiter", middleware.RequireRecruiter())
	recruiter.GET("/jobs", d.Job.ListMine)
	recruiter.POST("/jobs", d.Job.Create)
	recruiter.PATCH("/jobs/:id", d.Job.Update)
	recruiter.DELETE("/jobs/:id", d.Job.Delete)
	recruiter.GET("/profile", d.Profile.Me)
	recruiter.PATCH("/profile", d.Profile.Update)

	// Applications: any authenticated role may list; creating is a
	// candidate action, status review a recruiter action.
	authed.GET("/applications", d.Application.List)
	authed.POST("/applications", middleware.RequireCandidate(), d.Application.Create)
	authed.PATCH("/applications/:id", middleware.RequireRecruiter(), d.Application.UpdateStatus)

	// Candidate surface
	candidate := authed.Group("/", middleware.RequireCandidate())
	candidate.GET("/applications/external", d.External.List)
	candidate.POST("/applications/external", d.External.Create)
	candidate.PATCH("/applications/external/:id", d.External.UpdateStatus)

	candidate.GET("/saved-jobs", d.SavedJob.List)
	candidate.POST("/saved-jobs", d.SavedJob.Save)
	candidate.DELETE("/saved-jobs/:jobId", d.SavedJob.Unsave)

	candidate.GET("/candidate/profile", d.Profile.Me)
	candidate.PATCH("/candidate/profile", d.Profile.Update)

	candidate.GET("/candidate/cv", d.CV.List)
	candidate.POST("/candidate/cv", d.CV.Upload)
	candidate.DELETE("/candidate/cv/:id", d.CV.Delete)
}
