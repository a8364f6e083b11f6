// Package migrations embeds the Postgres schema so the server can migrate
// without a checkout of this directory.
package migrations

import "embed"

//go:embed *.sql
var Files embed.FS
