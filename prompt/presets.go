package prompt

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// SlangPair maps a western phrase to its Naija equivalent.
type SlangPair struct {
	Western string `json:"western"`
	Naija   string `json:"naija"`
}

type Character struct {
	Key         string `json:"key"`
	Name        string `json:"name"`
	Role        string `json:"role"`
	Description string `json:"description"`
	Temperament string `json:"temperament"`
}

// The tables below are initialised once and never written; accessors hand
// out copies.
var slang = []SlangPair{
	{"high value man", "Odogwu"},
	{"high-value man", "Odogwu"},
	{"top man", "Top Man"},
	{"breakup", "breakfast"},
	{"break up", "breakfast"},
	{"broke up", "give breakfast"},
	{"financial struggle", "Sapa"},
	{"struggling financially", "dey for Sapa"},
	{"being scammed", "Maga"},
	{"scammed", "Maga"},
	{"used", "Spare Tire"},
	{"social media clout", "Wash"},
	{"clout", "Packaging"},
	{"controversial plan", "Format"},
	{"scheme", "Update"},
	{"don't back down", "No Gree For Anybody"},
	{"stand your ground", "No Gree For Anybody"},
	{"stay wise", "Stay Woke"},
	{"be smart", "Eye Don Open"},
	{"dollars", "Naira"},
	{"$", "₦"},
	{"relationship", "situationship"},
	{"modern woman", "Slay Queen"},
	{"independent woman", "Boss Lady"},
	{"sigma male", "Original Man"},
	{"alpha male", "Odogwu"},
}

var characters = []Character{
	{
		Key:         "odogwu",
		Name:        "Odogwu",
		Role:        "hero",
		Description: "muscular Nigerian man, 30s, dark skin, sharp goatee",
		Temperament: "calm, logical, never raises his voice",
	},
	{
		Key:         "antagonist",
		Name:        "Chioma",
		Role:        "antagonist",
		Description: "tall, curvy Nigerian woman, 30s, medium dark skin, perfect contour and bold red lipstick",
		Temperament: "emotional, entitled, talks fast",
	},
}

var settings = []string{
	"luxury Lagos penthouse living room with floor-to-ceiling windows showing Lekki city lights",
	"exclusive rooftop lounge in Victoria Island with a view of the Atlantic at sunset",
	"high-end Lekki bedroom with a large wardrobe, modern Nigerian interior design, softly lit",
	"lush private garden patio in Ikoyi with tropical plants and soft ambient lighting",
	"busy Yaba street corner at night with buka lights and danfo buses passing",
	"Lekki-Ikoyi Link Bridge at dusk with the skyline glowing behind",
}

func Slang() []SlangPair {
	return append([]SlangPair(nil), slang...)
}

func Characters() []Character {
	return append([]Character(nil), characters...)
}

// CharacterByRole returns the character cast as role, hero or antagonist.
// Unknown roles get the hero.
func CharacterByRole(role string) Character {
	for _, c := range characters {
		if c.Role == role {
			return c
		}
	}
	return characters[0]
}

func Settings() []string {
	return append([]string(nil), settings...)
}

// DetectSlang returns the slang pairs whose western phrase occurs in text as
// a whole word or phrase, in table order.
func DetectSlang(text string) []SlangPair {
	lower := strings.ToLower(text)
	out := make([]SlangPair, 0)
	for _, p := range slang {
		if containsPhrase(lower, p.Western) {
			out = append(out, p)
		}
	}
	return out
}

func containsPhrase(text, phrase string) bool {
	for from := 0; from <= len(text); {
		i := strings.Index(text[from:], phrase)
		if i < 0 {
			return false
		}
		i += from
		end := i + len(phrase)
		if boundary(text, phrase, i, end) {
			return true
		}
		_, size := utf8.DecodeRuneInString(text[i:])
		from = i + size
	}
	return false
}

// boundary reports whether the match text[start:end] is not glued to a
// surrounding word. Phrases that start or end with a symbol need no boundary
// on that side.
func boundary(text, phrase string, start, end int) bool {
	first, _ := utf8.DecodeRuneInString(phrase)
	last, _ := utf8.DecodeLastRuneInString(phrase)
	if isWord(first) && start > 0 {
		if r, _ := utf8.DecodeLastRuneInString(text[:start]); isWord(r) {
			return false
		}
	}
	if isWord(last) && end < len(text) {
		if r, _ := utf8.DecodeRuneInString(text[end:]); isWord(r) {
			return false
		}
	}
	return true
}

func isWord(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}
