package utils

import (
	"encoding/json"
	log "github.com/sirupsen/logrus"
	"regexp"
	"strings"
)

func AsJson(v interface{}) string {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		log.Errorf("error marshalling: %v", err)
	}
	return string(b)
}

// Truncate shortens s to at most n runes, marking the cut.
func Truncate(s string, n int) string {
	runes := []rune(s)
	if n <= 0 || len(runes) <= n {
		return s
	}
	return string(runes[:n]) + "…"
}

var nonSlug = regexp.MustCompile(`[^a-z0-9]+`)

// Slug lowercases s and collapses everything but ascii letters and digits
// into single dashes.
func Slug(s string) string {
	slug := strings.Trim(nonSlug.ReplaceAllString(strings.ToLower(s), "-"), "-")
	if len(slug) > 48 {
		slug = strings.TrimRight(slug[:48], "-")
	}
	if slug == "" {
		return "package"
	}
	return slug
}
