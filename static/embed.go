package staticfiles

import (
	"embed"
	"io/fs"
)

//go:embed css/* js/*
var embedded embed.FS

// EmbeddedFS holds the canvas client, toast poller and chart renderer.
func EmbeddedFS() fs.FS {
	return embedded
}
