package api

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rpupo63/portfolio-backend/auth"
	"github.com/rpupo63/portfolio-backend/database"
	"github.com/rpupo63/portfolio-backend/models"
)

type profileStore interface {
	FindByEmail(ctx context.Context, email string) (*models.Profile, error)
	FindFirst(ctx context.Context) (*models.Profile, error)
	Add(ctx context.Context, profile *models.Profile) error
	UpsertByEmail(ctx context.Context, name, email string) (*models.Profile, error)
}

type projectStore interface {
	FindAll(ctx context.Context, skill string) ([]*models.Project, error)
	Add(ctx context.Context, project *models.Project) error
	AddWithLinks(ctx context.Context, project *models.Project, links []models.Link) error
	Search(ctx context.Context, q string, limit int) ([]*models.Project, error)
}

type skillStore interface {
	FindAll(ctx context.Context) ([]*models.Skill, error)
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*models.Skill, error)
	Search(ctx context.Context, q string, limit int) ([]*models.Skill, error)
}

type projectSkillStore interface {
	CountBySkill(ctx context.Context, limit int) ([]models.SkillCount, error)
}

// stores is what the handlers need from the database
type stores struct {
	profiles      profileStore
	projects      projectStore
	skills        skillStore
	projectSkills projectSkillStore
}

func storesFrom(db database.Database) stores {
	return stores{
		profiles:      db.ProfileRepo(),
		projects:      db.ProjectRepo(),
		skills:        db.SkillRepo(),
		projectSkills: db.ProjectSkillRepo(),
	}
}

// initializeHandlers creates and returns all handlers organized in a routeHandlers struct
func initializeHandlers(s stores, hasher *auth.Hasher, tokens *auth.Tokens, startupTime time.Time) *routeHandlers {
	return &routeHandlers{
		healthHandler:  newHealthHandler(startupTime),
		authHandler:    newAuthHandler(s.profiles, hasher, tokens),
		profileHandler: newProfileHandler(s.profiles),
		projectHandler: newProjectHandler(s.projects),
		skillHandler:   newSkillHandler(s.skills, s.projectSkills),
		searchHandler:  newSearchHandler(s.projects, s.skills),
	}
}
