package postgresql

import _ "embed"

// Schema creates every table the repositories read and write.
//
//go:embed schema.sql
var Schema string
