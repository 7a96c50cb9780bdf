// Package migrations embeds the SQL migration files so they compile into
// the binary and apply at startup.
package migrations

import "embed"

//go:embed *.sql
var Migrations embed.FS
