package migrations

import "embed"

// FS contains embedded SQLite migrations for the raw payload cache.
//
//go:embed *.sql
var FS embed.FS
