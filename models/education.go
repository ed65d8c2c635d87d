package models

import (
	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Education is a read-only entry attached to a profile
type Education struct {
	ID        uuid.UUID       `json:"id" db:"id" gorm:"type:uuid;primaryKey;default:gen_random_uuid();not null"`
	ProfileID uuid.UUID       `json:"profileId" db:"profile_id" gorm:"type:uuid;not null;index:idx_education_profile_id"`
	School    string          `json:"school" db:"school" gorm:"type:text;not null"`
	Degree    string          `json:"degree" db:"degree" gorm:"type:text;not null;default:''"`
	Field     string          `json:"field" db:"field" gorm:"type:text;not null;default:''"`
	StartDate datatypes.Date  `json:"startDate" db:"start_date" gorm:"type:date;not null"`
	EndDate   *datatypes.Date `json:"endDate,omitempty" db:"end_date" gorm:"type:date"`
}

func (Education) TableName() string {
	return "education"
}
