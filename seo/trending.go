package seo

import (
	mapset "github.com/deckarep/golang-set/v2"
	"strings"
)

var trending = []string{
	"#nogreeforanybody",
	"#fearwomen",
	"#naija",
	"#Lagos",
	"#relationships",
	"#stoic",
	"#redpill",
	"#sapa",
	"#breakfast",
}

// Trending returns the trending hashtags, most popular first.
func Trending() []string {
	return append([]string(nil), trending...)
}

// Enhance returns a copy of t with the first n trending hashtags appended,
// skipping any it already carries (case-insensitive).
func Enhance(t Template, n int) Template {
	t = t.clone()
	if n <= 0 {
		return t
	}
	if n > len(trending) {
		n = len(trending)
	}
	present := mapset.NewThreadUnsafeSet[string]()
	for _, h := range t.Hashtags {
		present.Add(strings.ToLower(h))
	}
	for _, h := range trending[:n] {
		if present.Add(strings.ToLower(h)) {
			t.Hashtags = append(t.Hashtags, h)
		}
	}
	return t
}
