// Package migrations embeds the workouts service schema migrations.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
