// Package migrations holds the SQL migrations that AutoMigrate cannot express
// (partial unique indexes, trigram search indexes).
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
