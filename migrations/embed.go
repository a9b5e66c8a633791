// Package migrations goose迁移脚本，编译进cmd/migrate
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
