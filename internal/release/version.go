package release

import (
	"fmt"
	"strings"

	"github.com/hashicorp/go-version"

	"github.com/declare-cloud/releasenotes/internal/rules"
)

// InitialVersion is used when nothing has been released yet.
const InitialVersion = "1.0.0"

// NextVersion bumps last by sev. A major bump resets minor and patch, a
// minor bump resets patch. With no previous release any releasable
// severity yields InitialVersion. A none severity yields "".
// A leading "v" on last is accepted; the result never carries one.
func NextVersion(last string, sev rules.Severity) (string, error) {
	if sev.Rank() == rules.SeverityNone.Rank() {
		return "", nil
	}

	last = strings.TrimSpace(last)
	if last == "" {
		return InitialVersion, nil
	}

	v, err := version.NewVersion(last)
	if err != nil {
		return "", fmt.Errorf("parsing last version %q: %w", last, err)
	}

	parts := v.Segments()
	major, minor, patch := parts[0], parts[1], parts[2]
	switch sev {
	case rules.SeverityMajor:
		major, minor, patch = major+1, 0, 0
	case rules.SeverityMinor:
		minor, patch = minor+1, 0
	default:
		patch++
	}

	next, err := version.NewVersion(fmt.Sprintf("%d.%d.%d", major, minor, patch))
	if err != nil {
		return "", fmt.Errorf("building next version: %w", err)
	}
	return next.String(), nil
}

// ReleaseType names the kind of bump between two versions, matching the
// severity tokens. It returns "" when either version does not parse or
// next is not greater than last.
func ReleaseType(last, next string) string {
	if next == "" {
		return ""
	}
	nv, err := version.NewVersion(next)
	if err != nil {
		return ""
	}
	if last == "" {
		return string(rules.SeverityMajor)
	}
	lv, err := version.NewVersion(last)
	if err != nil || !nv.GreaterThan(lv) {
		return ""
	}

	ls, ns := lv.Segments(), nv.Segments()
	switch {
	case ns[0] != ls[0]:
		return string(rules.SeverityMajor)
	case ns[1] != ls[1]:
		return string(rules.SeverityMinor)
	default:
		return string(rules.SeverityPatch)
	}
}
