package prompt

import (
	"github.com/Odunjoy/NaijaStoic-props/errs"
	"strings"
)

type Style string

const (
	Luxury     Style = "Luxury"
	Casual     Style = "Casual"
	Streetwise Style = "Streetwise"
)

type stylePreset struct {
	palette  string
	wardrobe string
	setting  int
}

var styles = map[Style]stylePreset{
	Luxury: {
		palette:  "deep purple night sky with warm gold highlights, sunset glow on glass",
		wardrobe: "tailored blazers, silk, a luxury wristwatch",
		setting:  0,
	},
	Casual: {
		palette:  "soft orange sunset fading to blue hour, lofi haze",
		wardrobe: "linen shirts, clean sneakers, relaxed fits",
		setting:  1,
	},
	Streetwise: {
		palette:  "night neon, sodium street lights, moody teal and amber",
		wardrobe: "bomber jackets, cargo pants, fresh streetwear sneakers",
		setting:  4,
	},
}

var styleOrder = []Style{Luxury, Casual, Streetwise}

func Styles() []Style {
	return append([]Style(nil), styleOrder...)
}

// ParseStyle is case-insensitive; an empty string is an error.
func ParseStyle(s string) (Style, error) {
	for _, st := range styleOrder {
		if strings.EqualFold(strings.TrimSpace(s), string(st)) {
			return st, nil
		}
	}
	return "", errs.Newf(errs.InvalidInput, "unknown style %q, expected one of %v", s, styleOrder)
}

func (s Style) Valid() bool {
	_, ok := styles[s]
	return ok
}

func (s Style) Palette() string {
	return styles[s].palette
}

func (s Style) Setting() string {
	return settings[styles[s].setting]
}

type Language string

const (
	Pidgin  Language = "pidgin"
	Mixed   Language = "mixed"
	English Language = "english"
)

type languagePreset struct {
	name        string
	instruction string
	endPhrase   string
}

var languages = map[Language]languagePreset{
	Pidgin: {
		name:        "Nigerian Vibe",
		instruction: "Rewrite into authentic Nigerian Pidgin English. Raw, expressive and full of local street flavour (Warri/Lagos style).",
		endPhrase:   "No gree for anybody",
	},
	Mixed: {
		name:        "Urban Lagos Mix",
		instruction: "Rewrite into an urban Lagos mix: educated Lagos professionals switching codes naturally, professional English spiced with catchy Pidgin phrases and slang.",
		endPhrase:   "No gree for anybody",
	},
	English: {
		name:        "Standard Nigerian English",
		instruction: "Rewrite into standard Nigerian English: clear, grammatical and assertive. Absolutely no Pidgin and no street slang (no Sapa, no breakfast, no gree).",
		endPhrase:   "Do not back down from your principles",
	},
}

var languageOrder = []Language{Pidgin, Mixed, English}

func Languages() []Language {
	return append([]Language(nil), languageOrder...)
}

// ParseLanguage is case-insensitive; an empty string means Pidgin.
func ParseLanguage(s string) (Language, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return Pidgin, nil
	}
	if _, ok := languages[Language(s)]; ok {
		return Language(s), nil
	}
	return "", errs.Newf(errs.InvalidInput, "unknown language %q, expected one of %v", s, languageOrder)
}

func (l Language) Valid() bool {
	_, ok := languages[l]
	return ok
}

func (l Language) Name() string {
	return languages[l].name
}

// EndPhrase closes the final scene.
func (l Language) EndPhrase() string {
	return languages[l].endPhrase
}

func (l Language) Instruction() string {
	return languages[l].instruction
}
