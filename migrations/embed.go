// Package migrations embeds the committed Momo schema migrations so
// the seed tool ships as a single binary.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
