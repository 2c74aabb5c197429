// Package migrations embeds the SQL schema migrations for the Postgres
// remote store and the SQLite local cache.
package migrations

import "embed"

//go:embed postgres sqlite
var FS embed.FS
