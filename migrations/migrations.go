// Package migrations embeds the versioned schema for every supported driver.
// Files are grouped by driver name and applied with golang-migrate.
package migrations

import "embed"

// FS holds the postgres/ and sqlite/ migration directories.
//
//go:embed postgres/*.sql sqlite/*.sql
var FS embed.FS
