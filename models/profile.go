package models

import (
	"time"

	"github.com/google/uuid"
)

// Profile is the portfolio owner's identity and credential record
type Profile struct {
	ID        uuid.UUID `json:"id" db:"id" gorm:"type:uuid;primaryKey;default:gen_random_uuid();not null"`
	Email     string    `json:"email" db:"email" gorm:"type:text;not null;uniqueIndex:idx_profile_email"`
	Name      string    `json:"name" db:"name" gorm:"type:text;not null"`
	Password  *string   `json:"-" db:"password" gorm:"type:text"` // bcrypt hash, nil when no local credential is set
	CreatedAt time.Time `json:"createdAt" db:"created_at" gorm:"type:timestamptz;not null;autoCreateTime"`

	Education []Education `json:"education" gorm:"foreignKey:ProfileID;references:ID;constraint:OnDelete:CASCADE"`
	Skills    []Skill     `json:"skills" gorm:"many2many:profile_skills"`
	Projects  []Project   `json:"projects" gorm:"foreignKey:ProfileID;references:ID;constraint:OnDelete:CASCADE"`

	// Links are only stored per project; the key is kept for clients and is always empty.
	Links []Link `json:"links" gorm:"-"`
}

// HasPassword reports whether a local credential has been set.
func (p *Profile) HasPassword() bool {
	return p.Password != nil && *p.Password != ""
}

// Normalize replaces nil collections with empty ones so they encode as [].
func (p *Profile) Normalize() {
	if p.Education == nil {
		p.Education = []Education{}
	}
	if p.Skills == nil {
		p.Skills = []Skill{}
	}
	if p.Projects == nil {
		p.Projects = []Project{}
	}
	if p.Links == nil {
		p.Links = []Link{}
	}
	for i := range p.Projects {
		p.Projects[i].Normalize()
	}
}
