package assets

import (
	"embed"

	"github.com/benbjohnson/hashfs"
)

//go:embed static
var FS embed.FS

// HashFS serves the embedded assets under content-hashed names so they
// can be cached forever.
var HashFS = hashfs.NewFS(FS)
