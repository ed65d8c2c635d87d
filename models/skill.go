package models

import "github.com/google/uuid"

// Skill is a named capability, unique by name
type Skill struct {
	ID   uuid.UUID `json:"id" db:"id" gorm:"type:uuid;primaryKey;default:gen_random_uuid();not null"`
	Name string    `json:"name" db:"name" gorm:"type:text;not null;uniqueIndex:idx_skill_name"`
}

// ProjectSkill links a project to a skill
type ProjectSkill struct {
	ID        uuid.UUID `json:"id" db:"id" gorm:"type:uuid;primaryKey;default:gen_random_uuid();not null"`
	ProjectID uuid.UUID `json:"projectId" db:"project_id" gorm:"type:uuid;not null;uniqueIndex:idx_project_skill_unique"`
	SkillID   uuid.UUID `json:"skillId" db:"skill_id" gorm:"type:uuid;not null;uniqueIndex:idx_project_skill_unique;index:idx_project_skill_skill_id"`

	Skill Skill `json:"skill" gorm:"foreignKey:SkillID;references:ID;constraint:OnDelete:CASCADE"`
}

// SkillCount is one row of the project-skill usage aggregation
type SkillCount struct {
	SkillID uuid.UUID `json:"skillId" gorm:"column:skill_id"`
	Count   int64     `json:"count" gorm:"column:count"`
}

// TopSkill is a skill with the number of projects using it
type TopSkill struct {
	Skill
	Count int64 `json:"count"`
}
