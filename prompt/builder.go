package prompt

import (
	"fmt"
	"github.com/Odunjoy/NaijaStoic-props/ai"
	"github.com/Odunjoy/NaijaStoic-props/errs"
	"github.com/Odunjoy/NaijaStoic-props/scene"
	"github.com/Odunjoy/NaijaStoic-props/seo"
	"strings"
	"unicode/utf8"
)

// MaxScriptRunes bounds the script sent to the model.
const MaxScriptRunes = 20000

var systemInstruction = buildSystemInstruction()

func buildSystemInstruction() string {
	var b strings.Builder
	b.WriteString(`You are the head writer and director of NaijaStoic, a short-form video channel.
You turn western "stoic" monologues into 3-scene Nigerian skits that follow the logic trap: hook, pivot, dunk.

Brand rules:
- The protagonist stays calm and logical at all times. He never shouts, never insults, never begs.
- The antagonist is emotional and entitled in the hook, cornered by the pivot, silenced by the dunk.
- Colour palette is night or sunset only: purples, deep blues, warm gold and orange. No daylight scenes.
- Settings are Lagos: Lekki, Victoria Island, Ikoyi, Yaba. Use real Lagos references.
- All money is in Naira (₦). Never use dollars.
- Pidgin must sound authentic, the way people talk in Lagos and Warri, never a caricature.
- Vertical 9:16 framing for every image prompt.
- Motion prompts begin with "` + scene.MotionBase + `"

Characters:
`)
	for _, c := range characters {
		fmt.Fprintf(&b, "- %s (%s): %s. %s.\n", c.Name, c.Role, c.Description, c.Temperament)
	}
	b.WriteString("\nRespond with JSON only. No markdown, no commentary.")
	return b.String()
}

// SystemInstruction is the fixed instruction sent with every request.
func SystemInstruction() string {
	return systemInstruction
}

// Build assembles the request for one transformation. It does no I/O.
func Build(script string, t seo.Template, style Style, lang Language) (ai.Request, error) {
	script = strings.TrimSpace(script)
	if script == "" {
		return ai.Request{}, errs.Newf(errs.InvalidInput, "script is empty")
	}
	if n := utf8.RuneCountInString(script); n > MaxScriptRunes {
		return ai.Request{}, errs.Newf(errs.InvalidInput, "script is %d characters, the limit is %d", n, MaxScriptRunes)
	}
	if !style.Valid() {
		return ai.Request{}, errs.Newf(errs.InvalidInput, "unknown style %q", style)
	}
	if !lang.Valid() {
		return ai.Request{}, errs.Newf(errs.InvalidInput, "unknown language %q", lang)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Transform this script into the %s format.\n\n", lang.Name())

	b.WriteString("Theme anchor:\n")
	fmt.Fprintf(&b, "- Title: %s (original: %s)\n", t.LocalizedTitle, t.OriginalTitle)
	fmt.Fprintf(&b, "- Tags: %s\n", strings.Join(t.Tags, ", "))
	fmt.Fprintf(&b, "- Hashtags: %s\n\n", strings.Join(t.Hashtags, " "))

	fmt.Fprintf(&b, "Visual style: %s\n", style)
	fmt.Fprintf(&b, "- Palette: %s\n", style.Palette())
	fmt.Fprintf(&b, "- Wardrobe: %s\n", styles[style].wardrobe)
	fmt.Fprintf(&b, "- Setting: %s\n\n", style.Setting())

	b.WriteString("Requirements:\n")
	fmt.Fprintf(&b, "1. %s\n", lang.Instruction())
	b.WriteString("2. Exactly 3 scenes: 1 Hook (Close-up), 2 Pivot (Two-shot), 3 Dunk (Final Close-up).\n")
	b.WriteString("3. Each dialogue is 10-15 words max.\n")
	b.WriteString("4. Convert every currency amount to Naira.\n")
	b.WriteString("5. Give each scene 2-4 sound effect cues.\n")
	fmt.Fprintf(&b, "6. End the final scene with \"%s\".\n", lang.EndPhrase())
	if anchors := DetectSlang(script); len(anchors) > 0 && lang != English {
		b.WriteString("\nSlang anchors:\n")
		for _, p := range anchors {
			fmt.Fprintf(&b, "- %q -> %q\n", p.Western, p.Naija)
		}
	}

	b.WriteString("\nOutput format: JSON ONLY, matching this schema:\n")
	b.WriteString(ResponseSchema())
	b.WriteString("\n\nOriginal script:\n")
	b.WriteString(script)
	b.WriteString("\n")

	return ai.Request{
		SystemInstruction: systemInstruction,
		Input:             b.String(),
		JSON:              true,
	}, nil
}
