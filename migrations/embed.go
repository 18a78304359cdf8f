package migrations

import "embed"

// FS contains the versioned SQL migrations bundled into the binary.
//
//go:embed *.sql
var FS embed.FS
