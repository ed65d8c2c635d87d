package database

import (
	"context"
	"strings"

	"gorm.io/gorm"
)

type Database struct {
	db               *gorm.DB
	profileRepo      *ProfileRepo
	projectRepo      *ProjectRepo
	skillRepo        *SkillRepo
	projectSkillRepo *ProjectSkillRepo
}

// New initializes a new Database struct with each repository using a shared GORM database instance
func New(db *gorm.DB) Database {
	return Database{
		db:               db,
		profileRepo:      NewProfileRepo(db),
		projectRepo:      NewProjectRepo(db),
		skillRepo:        NewSkillRepo(db),
		projectSkillRepo: NewProjectSkillRepo(db),
	}
}

// Accessor methods for each repository

func (d Database) ProfileRepo() *ProfileRepo {
	return d.profileRepo
}

func (d Database) ProjectRepo() *ProjectRepo {
	return d.projectRepo
}

func (d Database) SkillRepo() *SkillRepo {
	return d.skillRepo
}

func (d Database) ProjectSkillRepo() *ProjectSkillRepo {
	return d.projectSkillRepo
}

// Ping checks that the primary connection is usable.
func (d Database) Ping(ctx context.Context) error {
	sqlDB, err := d.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// containsPattern turns q into an ILIKE pattern matching q anywhere,
// with LIKE wildcards in q taken literally.
func containsPattern(q string) string {
	return "%" + likeEscaper.Replace(q) + "%"
}
