// Package migrations embeds the auth service schema migrations so the
// binary can apply them at startup and the integration tests can apply
// them against throwaway containers.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
