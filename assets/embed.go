// Package assets holds the sample logo set compiled into the binary.
// It is used when no LOGO_DIR is configured so the server always has
// something to serve.
package assets

import (
	"embed"
	"io/fs"
)

//go:embed logos/*.png
var logos embed.FS

// Logos returns the embedded logo images rooted at the logos directory.
func Logos() fs.FS {
	sub, err := fs.Sub(logos, "logos")
	if err != nil {
		// fs.Sub only fails on an invalid path literal.
		panic(err)
	}
	return sub
}
