package migrations

import "embed"

// FS contains embedded SQLite migrations for the fixture mirror.
//
//go:embed *.sql
var FS embed.FS
