package migrations

import "embed"

// FS holds the schema migrations shipped with the binary.
//
//go:embed *.sql
var FS embed.FS
