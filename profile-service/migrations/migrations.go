// Package migrations embeds the profile service schema migrations.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
