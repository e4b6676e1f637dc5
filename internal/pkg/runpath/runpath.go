// Package runpath derives the per-run output location from the input path.
package runpath

import (
	"path/filepath"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Stem returns the output folder name derived from a PRD path: the base name
// without its extension, NFKC-normalized and lowercased, with anything
// outside [a-z0-9-_] mapped to '-'. The derivation is deterministic so reruns
// of the same input land in the same place.
func Stem(prdPath string) string {
	base := filepath.Base(prdPath)
	stem := strings.TrimSuffix(base, filepath.Ext(base))

	stem = norm.NFKC.String(stem)
	stem = strings.ToLower(stem)

	var b strings.Builder
	for _, r := range stem {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '-', r == '_':
			b.WriteRune(r)
		default:
			b.WriteRune('-')
		}
	}

	out := strings.Trim(b.String(), "-")
	if out == "" {
		return "run"
	}
	return out
}

// OutputRoot joins the configured output directory with the derived stem.
func OutputRoot(outputDir, prdPath string) string {
	return filepath.Join(outputDir, Stem(prdPath))
}
