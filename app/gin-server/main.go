package main

import (
	"context"
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/emploirapide/api/internal/api/handlers"
	"github.com/emploirapide/api/internal/api/middleware"
	"github.com/emploirapide/api/internal/api/routes"
	"github.com/emploirapide/api/internal/auth"
	"github.com/emploirapide/api/internal/cache"
	"github.com/emploirapide/api/internal/config"
	"github.com/emploirapide/api/internal/database"
	"github.com/emploirapide/api/internal/jsearch"
	"github.com/emploirapide/api/internal/logger"
	"github.com/emploirapide/api/internal/repositories/postgres"
	"github.com/emploirapide/api/internal/services"
	"github.com/emploirapide/api/internal/storage"
)

func main() {
	_ = godotenv.Load()

	log := logger.New()
	cfg := config.MustLoad()
	ctx := context.Background()

	db, err := database.Open(cfg.Database)
	if err != nil {
		log.WithError(err).Fatal("postgres init")
	}
	log.Info("postgres connected")

	rdb, err := cache.NewRedisClient(ctx, cfg.Redis)
	if err != nil {
		log.WithError(err).Fatal("redis init")
	}
	log.Info("redis connected")

	store, err := storage.NewMinIOStore(cfg.MinIO)
	if err != nil {
		log.WithError(err).Fatal("minio init")
	}
	log.Info("minio ready")

	tokens, err := auth.NewTokenService(cfg.JWT.Secret, cfg.JWT.TokenTTL)
	if err != nil {
		log.WithError(err).Fatal("token service init")
	}

	provider := jsearch.NewClient(cfg.JSearch.APIKey, cfg.JSearch.BaseURL)
	if !provider.Configured() {
		log.Warn("RAPIDAPI_KEY not set, external job search disabled")
	}

	users := postgres.NewUserRepo(db)
	jobs := postgres.NewJobRepo(db)
	applications := postgres.NewApplicationRepo(db)
	externals := postgres.NewExternalApplicationRepo(db)
	saved := postgres.NewSavedJobRepo(db)
	cvs := postgres.NewCVRepo(db)

	jobSvc := services.NewJobService(jobs, cache.NewRedisCache(rdb))

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger(log))

	routes.RegisterRoutes(r, routes.Deps{
		Tokens:      tokens,
		Auth:        handlers.NewAuthHandler(services.NewAuthService(users, tokens)),
		Job:         handlers.NewJobHandler(jobSvc),
		Search:      handlers.NewSearchHandler(services.NewSearchService(jobSvc, provider, log)),
		Application: handlers.NewApplicationHandler(services.NewApplicationService(applications, jobs)),
		External:    handlers.NewExternalApplicationHandler(services.NewExternalApplicationService(externals)),
		SavedJob:    handlers.NewSavedJobHandler(services.NewSavedJobService(saved)),
		Profile:     handlers.NewProfileHandler(services.NewProfileService(users, store)),
		CV:          handlers.NewCVHandler(services.NewCVService(cvs, store, log)),
	})

	addr := fmt.Sprintf(":%d", cfg.API.Port)
	log.WithField("addr", addr).Info("listening")
	if err := r.Run(addr); err != nil {
		log.WithError(err).Fatal("server stopped")
	}
}
