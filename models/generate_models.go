package models

import (
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"
	"gorm.io/gen"
	"gorm.io/gorm"
	"gorm.io/gorm/schema"
)

/*
Model generation and column report.

GENERATE_MODELS=true writes typed query helpers for every portfolio model into
./generated (run after migrations so the tables exist).

GENERATE_COLUMN_REPORT=true prints, per table, the columns that exist in the
database but have no matching field on the Go model:

	--- Table: skills ---
	Found 1 columns not accounted for in model:
	  - legacy_level
*/

// All returns one zero value of every persisted model
func All() []any {
	return []any{&Project{}, &Skill{}, &Experience{}, &Message{}}
}

func GenerateModels(db *gorm.DB, outPath string) {
	if outPath == "" {
		outPath = "./generated"
	}

	g := gen.NewGenerator(gen.Config{
		OutPath:           outPath,
		Mode:              gen.WithDefaultQuery | gen.WithQueryInterface,
		FieldNullable:     true,
		FieldCoverable:    true,
		FieldWithIndexTag: true,
		FieldWithTypeTag:  true,
	})
	g.UseDB(db)
	g.ApplyBasic(Project{}, Skill{}, Experience{}, Message{})
	g.Execute()

	log.Info().Str("outPath", outPath).Msg("model generation complete")
}

// ColumnMismatch lists database columns with no counterpart on a model
type ColumnMismatch struct {
	Table   string
	Columns []string
}

// GenerateColumnMismatchReport compares every model table against the live schema
func GenerateColumnMismatchReport(db *gorm.DB) ([]ColumnMismatch, error) {
	var report []ColumnMismatch
	for _, model := range All() {
		stmt := &gorm.Statement{DB: db}
		if err := stmt.Parse(model); err != nil {
			return nil, fmt.Errorf("error parsing model %T: %w", model, err)
		}

		columnTypes, err := db.Migrator().ColumnTypes(model)
		if err != nil {
			return nil, fmt.Errorf("error reading columns for table %s: %w", stmt.Schema.Table, err)
		}

		dbColumns := make([]string, 0, len(columnTypes))
		for _, ct := range columnTypes {
			dbColumns = append(dbColumns, ct.Name())
		}

		report = append(report, ColumnMismatch{
			Table:   stmt.Schema.Table,
			Columns: findColumnMismatches(dbColumns, modelColumns(stmt.Schema)),
		})
	}
	return report, nil
}

// PrintColumnMismatchReport writes the report in the console format shown above
func PrintColumnMismatchReport(report []ColumnMismatch) {
	fmt.Println("=== COLUMN MISMATCH REPORT ===")
	total := 0
	for _, table := range report {
		fmt.Printf("\n--- Table: %s ---\n", table.Table)
		if len(table.Columns) == 0 {
			fmt.Println("All columns are accounted for in the model.")
			continue
		}
		fmt.Printf("Found %d columns not accounted for in model:\n", len(table.Columns))
		for _, col := range table.Columns {
			fmt.Printf("  - %s\n", col)
		}
		total += len(table.Columns)
	}
	fmt.Printf("\n=== SUMMARY ===\n")
	fmt.Printf("Total mismatched columns across all tables: %d\n", total)
}

func modelColumns(s *schema.Schema) []string {
	var columns []string
	for _, field := range s.Fields {
		if field.DBName == "" || field.StructField.Anonymous {
			continue
		}
		columns = append(columns, field.DBName)
	}
	return columns
}

// findColumnMismatches finds columns that exist in the database but not in the model
func findColumnMismatches(dbColumns, modelFields []string) []string {
	known := make(map[string]bool, len(modelFields))
	for _, field := range modelFields {
		known[strings.ToLower(field)] = true
	}

	var mismatches []string
	for _, col := range dbColumns {
		if !known[strings.ToLower(col)] {
			mismatches = append(mismatches, col)
		}
	}
	return mismatches
}
