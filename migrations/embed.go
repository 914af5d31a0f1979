package migrations

import "embed"

// SQLite and Postgres store forward-only SQL migrations per dialect, embedded into the binary.
//
//go:embed sqlite/*.sql
var SQLite embed.FS

//go:embed postgres/*.sql
var Postgres embed.FS
