// Package migrations embeds the comments service schema migrations.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
