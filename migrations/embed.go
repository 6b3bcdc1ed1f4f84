// Package migrations embeds the versioned SQL schema so the server and the
// migrate CLI ship it inside the binary.
package migrations

import "embed"

// FS holds every NNNNNN_name.{up,down}.sql file in this directory
//
//go:embed *.sql
var FS embed.FS
