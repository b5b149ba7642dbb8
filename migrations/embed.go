// Package migrations embeds the SQL schema migrations applied by
// cmd/migrate and the server's auto-migrate option.
package migrations

import "embed"

// FS holds the numbered up/down migration files
//
//go:embed *.sql
var FS embed.FS
