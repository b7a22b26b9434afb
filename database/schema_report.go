package database

import (
	"fmt"
	"io"
	"sort"

	"github.com/rpupo63/portfolio-api/models"
	"gorm.io/gorm"
)

// TableReport lists the columns of one table that no model field maps to.
type TableReport struct {
	Table     string
	Missing   bool // table has not been created yet
	Unmatched []string
}

// ColumnMismatchReport inspects every model's table and collects database
// columns the models do not account for.
func ColumnMismatchReport(db *gorm.DB) ([]TableReport, error) {
	var reports []TableReport

	for _, model := range models.All() {
		stmt := &gorm.Statement{DB: db}
		if err := stmt.Parse(model); err != nil {
			return nil, fmt.Errorf("parse model %T: %w", model, err)
		}
		table := stmt.Schema.Table

		report := TableReport{Table: table}
		if !db.Migrator().HasTable(table) {
			report.Missing = true
			reports = append(reports, report)
			continue
		}

		columns, err := db.Migrator().ColumnTypes(table)
		if err != nil {
			return nil, fmt.Errorf("error querying columns for table %s: %w", table, err)
		}

		mapped := make(map[string]bool, len(stmt.Schema.DBNames))
		for _, name := range stmt.Schema.DBNames {
			mapped[name] = true
		}
		for _, col := range columns {
			if !mapped[col.Name()] {
				report.Unmatched = append(report.Unmatched, col.Name())
			}
		}
		sort.Strings(report.Unmatched)
		reports = append(reports, report)
	}

	return reports, nil
}

// WriteColumnMismatchReport prints the report and returns the number of unmatched columns.
func WriteColumnMismatchReport(w io.Writer, reports []TableReport) int {
	fmt.Fprintln(w, "=== COLUMN MISMATCH REPORT ===")

	total := 0
	for _, r := range reports {
		fmt.Fprintf(w, "\n--- Table: %s ---\n", r.Table)
		switch {
		case r.Missing:
			fmt.Fprintln(w, "Table does not exist yet (will be created during migration)")
		case len(r.Unmatched) > 0:
			fmt.Fprintf(w, "Found %d columns not accounted for in model:\n", len(r.Unmatched))
			for _, col := range r.Unmatched {
				fmt.Fprintf(w, "  - %s\n", col)
			}
			total += len(r.Unmatched)
		default:
			fmt.Fprintln(w, "All columns are accounted for in the model.")
		}
	}

	fmt.Fprintf(w, "\n=== SUMMARY ===\n")
	fmt.Fprintf(w, "Total mismatched columns across all tables: %d\n", total)
	return total
}
