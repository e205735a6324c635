package models

import (
	"fmt"
	"io"
	"sort"

	"gorm.io/gorm"
)

/*
Column Mismatch Report Usage:

The report lists database columns that no longer map to a field of the
corresponding Go model, which usually means a column was added by hand or a
field was renamed without a migration.

1. Set the environment variable: GENERATE_COLUMN_REPORT=true
2. Run the application: go run .

Example output:
=== COLUMN MISMATCH REPORT ===
--- Table: comments ---
Found 1 columns not accounted for in model:
  - legacy_likes

=== SUMMARY ===
Total mismatched columns across all tables: 1
*/

// All returns every model managed by the schema, in migration order.
func All() []interface{} {
	return []interface{}{
		&User{},
		&Blog{},
		&BlogLike{},
		&Comment{},
	}
}

// Migrate creates or updates every table the server needs.
func Migrate(db *gorm.DB) error {
	migrateDB := db.Session(&gorm.Session{
		SkipDefaultTransaction: true,
		PrepareStmt:            false,
	})

	if err := migrateDB.AutoMigrate(All()...); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	return nil
}

// TableMismatch holds the unmapped columns of one table.
type TableMismatch struct {
	Table   string
	Columns []string
	Missing bool // the table does not exist yet
}

// ColumnReport is the result of GenerateColumnMismatchReport.
type ColumnReport struct {
	Tables []TableMismatch
}

// Total returns the number of unmapped columns across all tables.
func (r ColumnReport) Total() int {
	total := 0
	for _, t := range r.Tables {
		total += len(t.Columns)
	}
	return total
}

// Print writes the report in a human readable form.
func (r ColumnReport) Print(w io.Writer) {
	fmt.Fprintln(w, "=== COLUMN MISMATCH REPORT ===")
	for _, t := range r.Tables {
		fmt.Fprintf(w, "\n--- Table: %s ---\n", t.Table)
		switch {
		case t.Missing:
			fmt.Fprintln(w, "Table does not exist yet (will be created during migration)")
		case len(t.Columns) == 0:
			fmt.Fprintln(w, "All columns are accounted for in the model.")
		default:
			fmt.Fprintf(w, "Found %d columns not accounted for in model:\n", len(t.Columns))
			for _, col := range t.Columns {
				fmt.Fprintf(w, "  - %s\n", col)
			}
		}
	}
	fmt.Fprintf(w, "\n=== SUMMARY ===\n")
	fmt.Fprintf(w, "Total mismatched columns across all tables: %d\n", r.Total())
}

// GenerateColumnMismatchReport compares live table columns with model fields.
func GenerateColumnMismatchReport(db *gorm.DB) (ColumnReport, error) {
	var report ColumnReport

	for _, model := range All() {
		stmt := &gorm.Statement{DB: db}
		if err := stmt.Parse(model); err != nil {
			return report, fmt.Errorf("parse model %T: %w", model, err)
		}
		tableName := stmt.Schema.Table

		if !db.Migrator().HasTable(model) {
			report.Tables = append(report.Tables, TableMismatch{Table: tableName, Missing: true})
			continue
		}

		columnTypes, err := db.Migrator().ColumnTypes(model)
		if err != nil {
			return report, fmt.Errorf("error querying columns for table %s: %w", tableName, err)
		}

		dbColumns := make([]string, 0, len(columnTypes))
		for _, ct := range columnTypes {
			dbColumns = append(dbColumns, ct.Name())
		}

		report.Tables = append(report.Tables, TableMismatch{
			Table:   tableName,
			Columns: findColumnMismatches(dbColumns, stmt.Schema.DBNames),
		})
	}

	sort.Slice(report.Tables, func(i, j int) bool {
		return report.Tables[i].Table < report.Tables[j].Table
	})
	return report, nil
}

// findColumnMismatches finds columns that exist in the database but not in the model
func findColumnMismatches(dbColumns, modelFields []string) []string {
	modelFieldSet := make(map[string]bool)
	for _, field := range modelFields {
		modelFieldSet[field] = true
	}

	var mismatches []string
	for _, col := range dbColumns {
		if !modelFieldSet[col] {
			mismatches = append(mismatches, col)
		}
	}

	return mismatches
}
