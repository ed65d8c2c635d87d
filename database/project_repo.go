package database

import (
	"context"

	"github.com/rpupo63/portfolio-backend/errs"
	"github.com/rpupo63/portfolio-backend/models"
	"gorm.io/gorm"
)

type ProjectRepo struct {
	db *gorm.DB
}

func NewProjectRepo(db *gorm.DB) *ProjectRepo {
	return &ProjectRepo{db}
}

func expandProject(db *gorm.DB) *gorm.DB {
	return db.Preload("Skills.Skill").Preload("Links")
}

// FindAll returns projects newest first. A non-empty skill keeps only the
// projects associated with the skill of exactly that name.
func (r *ProjectRepo) FindAll(ctx context.Context, skill string) ([]*models.Project, error) {
	query := expandProject(r.db.WithContext(ctx))
	if skill != "" {
		query = query.Where("EXISTS (?)", r.db.
			Table("project_skills").
			Select("1").
			Joins("JOIN skills ON skills.id = project_skills.skill_id").
			Where("project_skills.project_id = projects.id AND skills.name = ?", skill))
	}

	var projects []*models.Project
	err := query.Order("projects.created_at DESC").Find(&projects).Error
	return projects, err
}

// Add inserts a new project into the database
func (r *ProjectRepo) Add(ctx context.Context, project *models.Project) error {
	return r.db.WithContext(ctx).Omit("Skills", "Links").Create(project).Error
}

// AddWithLinks inserts the project and its links in one transaction. A
// failure rolls back both and is reported as errs.ErrTransactionFailed
// wrapping the statement error.
func (r *ProjectRepo) AddWithLinks(ctx context.Context, project *models.Project, links []models.Link) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Skills", "Links").Create(project).Error; err != nil {
			return err
		}
		if len(links) == 0 {
			return nil
		}
		for i := range links {
			links[i].ProjectID = project.ID
		}
		return tx.Create(&links).Error
	})
	if err != nil {
		return errs.NewTransactionFailedError("project with links insert", err)
	}
	return nil
}

// Search matches q case-insensitively against title or description.
func (r *ProjectRepo) Search(ctx context.Context, q string, limit int) ([]*models.Project, error) {
	pattern := containsPattern(q)

	var projects []*models.Project
	err := expandProject(r.db.WithContext(ctx)).
		Where("projects.title ILIKE ? OR projects.description ILIKE ?", pattern, pattern).
		Order("projects.created_at DESC").
		Limit(limit).
		Find(&projects).Error
	return projects, err
}
