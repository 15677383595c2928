package seo

import (
	"fmt"
	"github.com/Odunjoy/NaijaStoic-props/errs"
	mapset "github.com/deckarep/golang-set/v2"
	"regexp"
	"strconv"
	"strings"
)

// Mode selects how Match picks a template: Auto scores the text against
// every template, manual mode looks up ID.
type Mode struct {
	Manual bool
	ID     int
}

var Auto = Mode{}

func Manual(id int) Mode {
	return Mode{Manual: true, ID: id}
}

func (m Mode) String() string {
	if m.Manual {
		return fmt.Sprintf("manual:%d", m.ID)
	}
	return "auto"
}

// ParseMode accepts "auto", "" (auto) and "manual:<id>".
func ParseMode(s string) (Mode, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" || s == "auto" {
		return Auto, nil
	}
	if rest, ok := strings.CutPrefix(s, "manual:"); ok {
		id, err := strconv.Atoi(strings.TrimSpace(rest))
		if err != nil {
			return Mode{}, errs.Newf(errs.InvalidInput, "invalid template id %q", rest)
		}
		return Manual(id), nil
	}
	return Mode{}, errs.Newf(errs.InvalidInput, "invalid template mode %q, expected auto or manual:<id>", s)
}

var (
	wordSplit = regexp.MustCompile(`[^\p{L}\p{N}]+`)
	stopWords = mapset.NewSet(
		"about", "after", "also", "before", "does", "dey", "everybody", "everyone",
		"from", "have", "into", "just", "like", "make", "never", "nobody", "only",
		"still", "stop", "talk", "that", "their", "them", "they", "this", "until",
		"wants", "want", "what", "when", "where", "which", "with", "your",
	)
)

// keywords are the lowercased tags and the significant words of both titles.
func keywords(t Template) []string {
	set := mapset.NewThreadUnsafeSet[string]()
	out := make([]string, 0)
	add := func(k string) {
		k = strings.TrimSpace(strings.TrimPrefix(strings.ToLower(k), "#"))
		if k != "" && set.Add(k) {
			out = append(out, k)
		}
	}
	for _, tag := range t.Tags {
		add(tag)
	}
	for _, title := range []string{t.LocalizedTitle, t.OriginalTitle} {
		for _, w := range wordSplit.Split(strings.ToLower(title), -1) {
			if len([]rune(w)) >= 4 && !stopWords.Contains(w) {
				add(w)
			}
		}
	}
	return out
}

// score counts the distinct keywords contained in text, which must already
// be lowercased.
func score(text string, kws []string) int {
	n := 0
	for _, k := range kws {
		if strings.Contains(text, k) {
			n++
		}
	}
	return n
}

// Match picks exactly one template. In auto mode the highest score wins,
// ties go to the lowest id, and text matching nothing gets Default.
func (s *Store) Match(text string, mode Mode) (Template, error) {
	if mode.Manual {
		return s.Get(mode.ID)
	}
	lower := strings.ToLower(text)
	best, bestScore := 0, 0
	for i, e := range s.entries {
		if sc := score(lower, e.keywords); sc > bestScore {
			best, bestScore = i, sc
		}
	}
	return s.entries[best].template.clone(), nil
}

// Scores reports the auto-mode score of every template keyed by id.
func (s *Store) Scores(text string) map[int]int {
	lower := strings.ToLower(text)
	out := make(map[int]int, len(s.entries))
	for _, e := range s.entries {
		out[e.template.ID] = score(lower, e.keywords)
	}
	return out
}
