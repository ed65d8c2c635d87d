package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	WorkPersonalProject = "Personal Project"
	WorkOpenSource      = "Open Source"

	LinkTypeGithub = "github"
)

// Project is a portfolio entry owned by exactly one profile
type Project struct {
	ID          uuid.UUID `json:"id" db:"id" gorm:"type:uuid;primaryKey;default:gen_random_uuid();not null"`
	Title       string    `json:"title" db:"title" gorm:"type:text;not null"`
	Description string    `json:"description" db:"description" gorm:"type:text;not null"`
	Work        string    `json:"work" db:"work" gorm:"type:text;not null"`
	ProfileID   uuid.UUID `json:"profileId" db:"profile_id" gorm:"type:uuid;not null;index:idx_project_profile_id"`
	CreatedAt   time.Time `json:"createdAt" db:"created_at" gorm:"type:timestamptz;not null;autoCreateTime;index:idx_project_created_at"`

	Skills []ProjectSkill `json:"skills" gorm:"foreignKey:ProjectID;references:ID;constraint:OnDelete:CASCADE"`
	Links  []Link         `json:"links" gorm:"foreignKey:ProjectID;references:ID;constraint:OnDelete:CASCADE"`
}

// Normalize replaces nil collections with empty ones so they encode as [].
func (p *Project) Normalize() {
	if p.Skills == nil {
		p.Skills = []ProjectSkill{}
	}
	if p.Links == nil {
		p.Links = []Link{}
	}
}

// Link is a typed URL attached to a project
type Link struct {
	ID        uuid.UUID `json:"id" db:"id" gorm:"type:uuid;primaryKey;default:gen_random_uuid();not null"`
	Type      string    `json:"type" db:"type" gorm:"type:text;not null"`
	URL       string    `json:"url" db:"url" gorm:"type:text;not null"`
	ProjectID uuid.UUID `json:"projectId" db:"project_id" gorm:"type:uuid;not null;index:idx_link_project_id"`
}
