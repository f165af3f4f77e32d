// Package reflectometry holds assets shared by the commands of the
// reflectometry service.
package reflectometry

import "embed"

// Migrations contains the goose migrations of the fit service schema.
//
//go:embed migrations/*.sql
var Migrations embed.FS
