// Package demo embeds the sample revenue batch served when the application
// runs with the demo source.
package demo

import (
	"embed"
	"io/fs"

	"revcompare/internal/files"
)

// Dir is the directory of the embedded reports
const Dir = "data"

// Name is the source label of the embedded batch
const Name = "demo"

//go:embed data/*.csv
var content embed.FS

// FS returns the embedded reports.
func FS() fs.FS {
	return content
}

// Inputs returns one loader input per embedded report, sorted by name.
func Inputs() ([]files.Input, error) {
	return files.FromFS(content, Dir)
}
