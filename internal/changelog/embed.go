package changelog

import (
	"embed"
	"io/fs"
)

//go:embed templates/*.tmpl
var embeddedTemplates embed.FS

// EmbeddedTemplates returns the default fragments built into the binary,
// rooted so that each fragment is at "<name>.tmpl".
func EmbeddedTemplates() fs.FS {
	sub, err := fs.Sub(embeddedTemplates, "templates")
	if err != nil {
		// the directory is part of the build; a failure here is a build defect
		panic(err)
	}
	return sub
}
