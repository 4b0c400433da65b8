package internal

import (
	"embed"
	"io/fs"
)

// BuiltinCatalog contains the built-in plan catalog embedded in the binary
//
//go:embed builtin/*.yaml
var BuiltinCatalog embed.FS

// GetBuiltinCatalogFS returns the embedded filesystem containing the built-in catalog
func GetBuiltinCatalogFS() fs.FS {
	return BuiltinCatalog
}

// BuiltinCatalogPath is the path of the catalog file inside the embedded filesystem
const BuiltinCatalogPath = "builtin/plans.yaml"
