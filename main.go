package main

import (
	"github.com/gokul-sureshkumar/Tariff-AI/cmd"
	"github.com/gokul-sureshkumar/Tariff-AI/internal"
)

func main() {
	// Hand the embedded builtin catalog to the cmd package
	cmd.BuiltinCatalogFS = internal.BuiltinCatalog
	cmd.BuiltinCatalogPath = internal.BuiltinCatalogPath

	cmd.Execute()
}
