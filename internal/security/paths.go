// Package security guards the files cellmeasure writes from names it does
// not control, such as object set names taken from configuration.
package security

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

// ErrPathEscape is returned when a path resolves outside its directory.
var ErrPathEscape = errors.New("path escapes directory")

const maxFilenameLen = 128

// SanitizeFilename maps an arbitrary name to a safe file name. Runs of
// characters other than ASCII letters, digits, dot, underscore and dash
// become a single underscore; leading and trailing dots and underscores
// are trimmed. An empty result becomes "unknown".
func SanitizeFilename(s string) string {
	var b strings.Builder
	lastUnderscore := false
	for _, r := range s {
		if b.Len() >= maxFilenameLen {
			break
		}
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '.', r == '_', r == '-':
			b.WriteRune(r)
			lastUnderscore = r == '_'
		case !lastUnderscore:
			b.WriteRune('_')
			lastUnderscore = true
		}
	}
	out := strings.Trim(b.String(), "._")
	if out == "" {
		return "unknown"
	}
	return out
}

// JoinWithin joins name onto dir and checks the result, with symlinks in
// existing parents resolved, stays inside dir.
func JoinWithin(dir, name string) (string, error) {
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("resolve %s: %w", dir, err)
	}
	canonicalDir, err := filepath.EvalSymlinks(absDir)
	if err != nil {
		return "", fmt.Errorf("resolve %s: %w", dir, err)
	}

	joined := filepath.Join(absDir, name)
	canonical, err := resolveExisting(joined)
	if err != nil {
		return "", err
	}

	rel, err := filepath.Rel(canonicalDir, canonical)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("%w: %s not within %s", ErrPathEscape, name, dir)
	}
	return joined, nil
}

// resolveExisting resolves symlinks in the longest existing prefix of p.
func resolveExisting(p string) (string, error) {
	if resolved, err := filepath.EvalSymlinks(p); err == nil {
		return resolved, nil
	}
	parent := filepath.Dir(p)
	if parent == p {
		return p, nil
	}
	resolvedParent, err := resolveExisting(parent)
	if err != nil {
		return "", err
	}
	return filepath.Join(resolvedParent, filepath.Base(p)), nil
}
