// Package main provides the entry point for the raml2doc config schema generation.
package main

import (
	"os"

	"github.com/yeisme/raml2doc/pkg/utils/schema"
)

//go:generate go run github.com/yeisme/raml2doc/cmd/schema
func main() {
	if _, err := os.Stat("../../docs"); os.IsNotExist(err) {
		if err := os.Mkdir("../../docs", 0755); err != nil {
			panic(err)
		}
	}

	configSchemaFile, err := os.Create("../../docs/config_schema.json")
	if err != nil {
		panic(err)
	}
	defer func() {
		_ = configSchemaFile.Close()
	}()

	if err := schema.GenConfigSchema(configSchemaFile); err != nil {
		panic(err)
	}
}
