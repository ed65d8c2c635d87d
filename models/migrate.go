package models

import (
	"fmt"
	"sort"

	"github.com/rs/zerolog/log"
	"gorm.io/gen"
	"gorm.io/gorm"
)

/*
Schema tooling.

AUTO_MIGRATE=true runs Migrate on startup, creating or altering the tables,
indexes and foreign keys declared by the model tags.

GENERATE_MODELS=true migrates, prints the column mismatch report and writes
typed query helpers to ./generated, then exits:

	=== COLUMN MISMATCH REPORT ===
	--- Table: projects ---
	Found 1 columns not accounted for in model:
	  - legacy_slug
*/

// All lists every persisted model in dependency order.
func All() []interface{} {
	return []interface{}{
		&Profile{},
		&Education{},
		&Skill{},
		&Project{},
		&ProjectSkill{},
		&Link{},
	}
}

// Migrate creates or updates the schema for every model.
func Migrate(db *gorm.DB) error {
	// gen_random_uuid() ships with core PostgreSQL only from 13 on
	if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS "pgcrypto"`).Error; err != nil {
		return fmt.Errorf("enable pgcrypto extension: %w", err)
	}
	if err := db.AutoMigrate(All()...); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	log.Info().Int("models", len(All())).Msg("Database migration completed")
	return nil
}

// GenerateModels migrates the schema, reports column drift and generates
// query helpers with gorm/gen.
func GenerateModels(db *gorm.DB) error {
	if err := db.Exec("SELECT 1").Error; err != nil {
		return fmt.Errorf("database not reachable: %w", err)
	}

	migrateDB := db.Session(&gorm.Session{
		SkipDefaultTransaction: true,
		PrepareStmt:            false,
	})
	if err := Migrate(migrateDB); err != nil {
		return err
	}

	if err := PrintColumnMismatchReport(db); err != nil {
		return err
	}

	g := gen.NewGenerator(gen.Config{
		OutPath:           "./generated",
		Mode:              gen.WithDefaultQuery | gen.WithQueryInterface,
		FieldNullable:     true,
		FieldCoverable:    true,
		FieldWithIndexTag: true,
		FieldWithTypeTag:  true,
	})
	g.UseDB(db)
	g.ApplyBasic(All()...)
	g.Execute()

	log.Info().Str("outPath", "./generated").Msg("Model generation complete")
	return nil
}

// PrintColumnMismatchReport prints, per table, the columns that exist in the
// database but have no field in the corresponding model.
func PrintColumnMismatchReport(db *gorm.DB) error {
	fmt.Println("=== COLUMN MISMATCH REPORT ===")

	totalMismatches := 0
	for _, model := range All() {
		tableName, modelFields, err := modelColumns(db, model)
		if err != nil {
			return err
		}
		fmt.Printf("\n--- Table: %s ---\n", tableName)

		if !db.Migrator().HasTable(tableName) {
			fmt.Println("Table does not exist yet (will be created during migration)")
			continue
		}

		dbColumns, err := tableColumns(db, tableName)
		if err != nil {
			return err
		}

		mismatches := findColumnMismatches(dbColumns, modelFields)
		if len(mismatches) == 0 {
			fmt.Println("All columns are accounted for in the model.")
			continue
		}

		fmt.Printf("Found %d columns not accounted for in model:\n", len(mismatches))
		for _, col := range mismatches {
			fmt.Printf("  - %s\n", col)
		}
		totalMismatches += len(mismatches)
	}

	fmt.Printf("\n=== SUMMARY ===\n")
	fmt.Printf("Total mismatched columns across all tables: %d\n", totalMismatches)
	return nil
}

// modelColumns resolves the table name and column names GORM uses for model.
func modelColumns(db *gorm.DB, model interface{}) (string, []string, error) {
	stmt := &gorm.Statement{DB: db}
	if err := stmt.Parse(model); err != nil {
		return "", nil, fmt.Errorf("parse model %T: %w", model, err)
	}

	var columns []string
	for _, field := range stmt.Schema.Fields {
		if field.DBName != "" {
			columns = append(columns, field.DBName)
		}
	}
	return stmt.Schema.Table, columns, nil
}

func tableColumns(db *gorm.DB, tableName string) ([]string, error) {
	columnTypes, err := db.Migrator().ColumnTypes(tableName)
	if err != nil {
		return nil, fmt.Errorf("error querying columns for table %s: %w", tableName, err)
	}

	columns := make([]string, 0, len(columnTypes))
	for _, ct := range columnTypes {
		columns = append(columns, ct.Name())
	}
	return columns, nil
}

// findColumnMismatches returns the database columns missing from the model, sorted.
func findColumnMismatches(dbColumns, modelFields []string) []string {
	modelFieldSet := make(map[string]bool, len(modelFields))
	for _, field := range modelFields {
		modelFieldSet[field] = true
	}

	var mismatches []string
	for _, col := range dbColumns {
		if !modelFieldSet[col] {
			mismatches = append(mismatches, col)
		}
	}
	sort.Strings(mismatches)
	return mismatches
}
