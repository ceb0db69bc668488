package postgresql

import (
	"context"
	_ "embed"

	"github.com/cmlabs-hris/wage-tracker/internal/pkg/database"
)

//go:embed schema.sql
var schemaDDL string

// EnsureSchema creates the four payroll tables and their constraints when missing.
func EnsureSchema(ctx context.Context, db *database.DB) error {
	return database.Wrap("apply schema", db.ApplySchema(ctx, schemaDDL))
}
