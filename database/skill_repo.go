package database

import (
	"context"

	"github.com/google/uuid"
	"github.com/rpupo63/portfolio-backend/models"
	"gorm.io/gorm"
)

type SkillRepo struct {
	db *gorm.DB
}

func NewSkillRepo(db *gorm.DB) *SkillRepo {
	return &SkillRepo{db}
}

// FindAll returns all skills ordered by name
func (r *SkillRepo) FindAll(ctx context.Context) ([]*models.Skill, error) {
	var skills []*models.Skill
	err := r.db.WithContext(ctx).Order("name ASC").Find(&skills).Error
	return skills, err
}

// FindByIDs returns the skills with the given ids, in no particular order
func (r *SkillRepo) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*models.Skill, error) {
	if len(ids) == 0 {
		return []*models.Skill{}, nil
	}

	var skills []*models.Skill
	err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&skills).Error
	return skills, err
}

// Search matches q case-insensitively against the skill name
func (r *SkillRepo) Search(ctx context.Context, q string, limit int) ([]*models.Skill, error) {
	var skills []*models.Skill
	err := r.db.WithContext(ctx).
		Where("name ILIKE ?", containsPattern(q)).
		Order("name ASC").
		Limit(limit).
		Find(&skills).Error
	return skills, err
}

type ProjectSkillRepo struct {
	db *gorm.DB
}

func NewProjectSkillRepo(db *gorm.DB) *ProjectSkillRepo {
	return &ProjectSkillRepo{db}
}

// CountBySkill groups project-skill rows by skill and returns the limit
// most used skills, highest count first.
func (r *ProjectSkillRepo) CountBySkill(ctx context.Context, limit int) ([]models.SkillCount, error) {
	var counts []models.SkillCount
	err := r.db.WithContext(ctx).
		Model(&models.ProjectSkill{}).
		Select("skill_id, COUNT(*) AS count").
		Group("skill_id").
		Order("count DESC, skill_id ASC").
		Limit(limit).
		Scan(&counts).Error
	return counts, err
}
