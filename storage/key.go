package storage

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Upload sections, one per promotional content collection.
const (
	SectionHero    = "hero"
	SectionSpecial = "special"
	SectionLaptop  = "laptop"
)

var (
	whitespaceRe = regexp.MustCompile(`\s+`)
	unsafeRe     = regexp.MustCompile(`[^a-z0-9._-]`)
	dashRunRe    = regexp.MustCompile(`-+`)
	edgeSepRe    = regexp.MustCompile(`^[-.]+|[-.]+$`)
)

// SanitizeFilename lowercases, replaces whitespace with dashes, strips
// unsafe characters, collapses repeated dashes and trims leading/trailing
// separators, preserving the file extension.
func SanitizeFilename(filename string) string {
	trimmed := strings.ToLower(strings.TrimSpace(filename))

	ext := ""
	base := trimmed
	if idx := strings.LastIndex(trimmed, "."); idx >= 0 {
		ext = trimmed[idx+1:]
		base = trimmed[:idx]
	}

	base = whitespaceRe.ReplaceAllString(base, "-")
	base = unsafeRe.ReplaceAllString(base, "")
	base = dashRunRe.ReplaceAllString(base, "-")
	base = edgeSepRe.ReplaceAllString(base, "")

	if ext != "" {
		return base + "." + ext
	}
	return base
}

// BuildObjectKey returns the deterministic key scheme
// section/YYYY/MM/DD/<token>-<sanitized-filename>.
func BuildObjectKey(section, filename string) string {
	now := time.Now()
	return fmt.Sprintf("%s/%s/%s-%s",
		section,
		now.Format("2006/01/02"),
		uuid.New().String(),
		SanitizeFilename(filename),
	)
}
