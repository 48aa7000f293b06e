// Package migrations embeds the catalog service database migrations.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
