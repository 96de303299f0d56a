// Package migrations ships the goose SQL files inside the migrate binary.
package migrations

import "embed"

// Dir is the directory inside FS that goose reads.
const Dir = "goose_sql"

//go:embed goose_sql/*.sql
var FS embed.FS
