package domain

import (
	"regexp"
	"strings"
)

const (
	// MaxSlugLength bounds the length of a generated file name stem
	MaxSlugLength = 60

	fallbackSlug = "untitled"
)

var slugSeparators = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify turns a display title into a filesystem-safe name stem
func Slugify(title string) string {
	slug := slugSeparators.ReplaceAllString(strings.ToLower(title), "-")
	slug = strings.Trim(slug, "-")
	if len(slug) > MaxSlugLength {
		slug = strings.TrimRight(slug[:MaxSlugLength], "-")
	}
	if slug == "" {
		return fallbackSlug
	}
	return slug
}
