// Package migrations содержит SQL-схему IndieVia, встроенную в бинарник.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
