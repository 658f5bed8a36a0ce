package rules

import (
	_ "embed"
)

//go:embed docs/reference.md
var reference string

// Reference returns the markdown rule reference shown by `sfo rules docs`.
func Reference() string {
	return reference
}
