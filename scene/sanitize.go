package scene

import (
	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
	"regexp"
	"strconv"
	"strings"
	"unicode"
)

var fenceReplacer = strings.NewReplacer("```json", "", "```JSON", "", "```", "")

func clean(raw string) string {
	s := fenceReplacer.Replace(raw)
	return strings.Map(func(r rune) rune {
		switch r {
		case '\u200b', '\u200c', '\u200d', '\u2060', '\ufeff':
			return -1
		}
		if unicode.IsControl(r) && r != '\n' && r != '\r' && r != '\t' {
			return -1
		}
		return r
	}, s)
}

// extractJSON strips markdown fences and returns the first balanced JSON
// value shaped like a scene list. Brackets in a preamble ("the [3] scenes")
// are skipped. When nothing is scene-shaped the first valid value is
// returned so the caller can report what it got. Returns "" when there is
// no valid JSON at all.
func extractJSON(raw string) string {
	found := candidates(clean(raw))
	for _, c := range found {
		if scenesShaped(c) {
			return c
		}
	}
	if len(found) > 0 {
		return found[0]
	}
	return ""
}

// candidates lists every balanced, valid JSON object or array in s in the
// order they start. A valid value is consumed whole, so nested values are
// not reported twice.
func candidates(s string) []string {
	var found []string
	for start := 0; start < len(s); {
		i := strings.IndexAny(s[start:], "[{")
		if i == -1 {
			break
		}
		start += i
		end := balancedEnd(s[start:])
		if end > 0 && gjson.Valid(s[start:start+end]) {
			found = append(found, s[start:start+end])
			start += end
			continue
		}
		start++
	}
	return found
}

// balancedEnd returns the length of the bracketed value s opens with, or -1
// when it is truncated.
func balancedEnd(s string) int {
	depth := 0
	inString := false
	escaped := false
	for i := 0; i < len(s); i++ {
		ch := s[i]
		if inString {
			if escaped {
				escaped = false
				continue
			}
			if ch == '\\' {
				escaped = true
				continue
			}
			if ch == '"' {
				inString = false
			}
			continue
		}
		switch ch {
		case '"':
			inString = true
		case '{', '[':
			depth++
		case '}', ']':
			depth--
			if depth == 0 {
				return i + 1
			}
		}
	}
	return -1
}

// scenesShaped reports whether v is an object carrying "scenes" or an
// array holding at least one object.
func scenesShaped(v string) bool {
	if v == "" {
		return false
	}
	root := gjson.Parse(v)
	if root.IsObject() {
		return root.Get("scenes").Exists()
	}
	if root.IsArray() {
		for _, e := range root.Array() {
			if e.IsObject() {
				return true
			}
		}
	}
	return false
}

var sceneHeader = regexp.MustCompile(`(?i)^scene\s+\D*(\d*)`)

// legacyScenes reads the plain text layout older prompts produced:
//
//	SCENE 1
//	Wetin you bring come table?
//
// Each header opens an entry, following non-empty lines are its dialogue.
// Stage directions starting with '[', '(' or '{' are dropped. The entries
// come back as a JSON array so they go through the same decoding as a
// structured reply. Returns "" when raw has no scene headers.
func legacyScenes(raw string) string {
	type block struct {
		id    int
		lines []string
	}
	var blocks []*block
	for _, line := range strings.Split(clean(raw), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if strings.HasPrefix(strings.ToUpper(line), "SCENE ") {
			b := &block{id: len(blocks) + 1}
			if m := sceneHeader.FindStringSubmatch(line); m != nil && m[1] != "" {
				if n, err := strconv.Atoi(m[1]); err == nil {
					b.id = n
				}
			}
			blocks = append(blocks, b)
			continue
		}
		if len(blocks) == 0 || strings.ContainsAny(line[:1], "[({") {
			continue
		}
		last := blocks[len(blocks)-1]
		last.lines = append(last.lines, line)
	}
	if len(blocks) == 0 {
		return ""
	}

	doc := "[]"
	for _, b := range blocks {
		entry, _ := sjson.Set("{}", "scene_id", b.id)
		entry, _ = sjson.Set(entry, "dialogue", strings.Join(b.lines, "\n"))
		doc, _ = sjson.SetRaw(doc, "-1", entry)
	}
	return doc
}
