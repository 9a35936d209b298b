package server

import (
	"embed"
	"io/fs"
)

//go:embed all:web
var webFS embed.FS

// GetWebFS returns the embedded web UI filesystem.
// Returns nil if the web directory is missing (dev mode).
func GetWebFS() fs.FS {
	subFS, err := fs.Sub(webFS, "web")
	if err != nil {
		return nil
	}
	return subFS
}
