package changelog

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
)

// FileTitle is the first line kept at the top of the changelog file.
const FileTitle = "# Changelog"

// PrependFile writes entry at the top of the changelog at path, below the
// title line. The file is created when it does not exist.
func PrependFile(path, entry string) error {
	existing, err := os.ReadFile(path)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("reading changelog: %w", err)
	}

	content := Prepend(string(existing), entry)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return fmt.Errorf("writing changelog: %w", err)
	}
	logDebug("[changelog] prepended %d bytes to %s", len(entry), path)
	return nil
}

// Prepend returns existing with entry inserted after the title line.
func Prepend(existing, entry string) string {
	rest := strings.TrimLeft(existing, "\n")
	if first, after, _ := strings.Cut(rest, "\n"); strings.TrimSpace(first) == FileTitle {
		rest = after
	}
	rest = strings.TrimLeft(rest, "\n")

	var b strings.Builder
	b.WriteString(FileTitle)
	b.WriteString("\n\n")
	b.WriteString(strings.TrimSpace(entry))
	b.WriteString("\n")
	if rest != "" {
		b.WriteString("\n")
		b.WriteString(rest)
		if !strings.HasSuffix(rest, "\n") {
			b.WriteString("\n")
		}
	}
	return b.String()
}
