// Package migrations holds the goose schema migrations. Each migration
// registers itself in init; the embedded FS lets goose discover them without
// the source tree present at runtime.
package migrations

import "embed"

//go:embed *.go
var Embed embed.FS
