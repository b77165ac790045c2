// Package migrations embeds the bill schema migrations so the goose
// programmatic API can apply them at server start and in test harnesses.
package migrations

import "embed"

// FS holds the *.sql migration files embedded at compile time, so the
// binary never depends on a migrations directory existing at runtime.
//
//go:embed *.sql
var FS embed.FS
