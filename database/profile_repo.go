package database

import (
	"context"
	"errors"

	"github.com/rpupo63/portfolio-backend/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ProfileRepo struct {
	db *gorm.DB
}

func NewProfileRepo(db *gorm.DB) *ProfileRepo {
	return &ProfileRepo{db}
}

// expandProfile preloads everything GET /profile returns.
func expandProfile(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Education", func(db *gorm.DB) *gorm.DB {
			return db.Order("education.start_date DESC")
		}).
		Preload("Skills", func(db *gorm.DB) *gorm.DB {
			return db.Order("skills.name ASC")
		}).
		Preload("Projects", func(db *gorm.DB) *gorm.DB {
			return db.Order("projects.created_at DESC")
		}).
		Preload("Projects.Skills.Skill").
		Preload("Projects.Links")
}

// FindByEmail returns the profile with the given email, or nil when there is none
func (r *ProfileRepo) FindByEmail(ctx context.Context, email string) (*models.Profile, error) {
	var profile models.Profile
	err := r.db.WithContext(ctx).Where("email = ?", email).Take(&profile).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

// FindFirst returns the oldest profile with all of its relations, or nil when the store is empty
func (r *ProfileRepo) FindFirst(ctx context.Context) (*models.Profile, error) {
	var profile models.Profile
	err := expandProfile(r.db.WithContext(ctx)).Order("profiles.created_at ASC").Take(&profile).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

// Add inserts a new profile into the database
func (r *ProfileRepo) Add(ctx context.Context, profile *models.Profile) error {
	return r.db.WithContext(ctx).Create(profile).Error
}

// UpsertByEmail creates the profile if the email is unknown, otherwise
// updates its name, and returns it with all of its relations. The write and
// the read back share one transaction so they run on the primary even when
// read replicas are registered.
func (r *ProfileRepo) UpsertByEmail(ctx context.Context, name, email string) (*models.Profile, error) {
	var expanded models.Profile
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		profile := models.Profile{Name: name, Email: email}
		err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "email"}},
			DoUpdates: clause.AssignmentColumns([]string{"name", "email"}),
		}).Create(&profile).Error
		if err != nil {
			return err
		}
		return expandProfile(tx).Where("email = ?", email).Take(&expanded).Error
	})
	if err != nil {
		return nil, err
	}
	return &expanded, nil
}
