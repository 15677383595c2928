package scene

import (
	"fmt"
	"github.com/Odunjoy/NaijaStoic-props/discord"
	"github.com/Odunjoy/NaijaStoic-props/errs"
	"github.com/tidwall/gjson"
	"strconv"
	"strings"
)

var knownKeys = []string{"scene_id", "shot_type", "dialogue", "image_prompt", "i2v_motion_prompt", "motion_prompt", "sfx"}

// Parse turns a raw model response into exactly Count scenes in narrative
// order. Structured JSON is tried first, then plain "SCENE n" blocks. It
// only checks structure. A single missing dialogue is patched with the beat
// placeholder; anything worse is a MalformedResponse carrying raw.
func Parse(raw string) ([]Scene, error) {
	cleaned := extractJSON(raw)
	if !scenesShaped(cleaned) {
		if legacy := legacyScenes(raw); legacy != "" {
			discord.Warnf("Response has no JSON scenes, reading SCENE headers instead")
			cleaned = legacy
		}
	}
	if cleaned == "" || !gjson.Valid(cleaned) {
		return nil, errs.NewMalformed("response is not valid JSON", raw)
	}
	root := gjson.Parse(cleaned)
	entries := root
	if root.IsObject() {
		entries = root.Get("scenes")
	}
	if !entries.IsArray() {
		return nil, errs.NewMalformed("response has no scenes array", raw)
	}

	usable := make([]gjson.Result, 0, Count)
	for _, e := range entries.Array() {
		if isScene(e) {
			usable = append(usable, e)
		}
	}
	if len(usable) != Count {
		return nil, errs.NewMalformed(fmt.Sprintf("expected %d scenes, got %d usable", Count, len(usable)), raw)
	}

	scenes := make([]Scene, 0, Count)
	var missingDialogue []int
	for i, e := range usable {
		s := decode(e, i+1)
		if s.Dialogue == "" {
			missingDialogue = append(missingDialogue, s.SceneID)
		}
		scenes = append(scenes, s)
	}
	if len(missingDialogue) > 1 {
		return nil, errs.NewMalformed(fmt.Sprintf("scenes %v have no dialogue", missingDialogue), raw)
	}
	if len(missingDialogue) == 1 {
		id := missingDialogue[0]
		discord.Warnf("Scene %d has no dialogue, using placeholder", id)
		scenes[id-1].Dialogue = DefaultDialogue(Beat(id))
	}
	return scenes, nil
}

func isScene(e gjson.Result) bool {
	if !e.IsObject() {
		return false
	}
	for _, k := range knownKeys {
		if e.Get(k).Exists() {
			return true
		}
	}
	return false
}

func decode(e gjson.Result, id int) Scene {
	beat := Beat(id)
	if given, ok := sceneID(e.Get("scene_id")); ok && given != id {
		discord.Warnf("Scene at position %d claims id %d, renumbering", id, given)
	}
	s := Scene{
		SceneID:      id,
		ShotType:     text(e.Get("shot_type")),
		Dialogue:     text(e.Get("dialogue")),
		ImagePrompt:  text(e.Get("image_prompt")),
		MotionPrompt: text(e.Get("i2v_motion_prompt")),
		SFX:          cues(e.Get("sfx")),
	}
	if s.MotionPrompt == "" {
		s.MotionPrompt = text(e.Get("motion_prompt"))
	}
	if s.ShotType == "" {
		s.ShotType = DefaultShotType(beat)
	}
	if s.ImagePrompt == "" {
		s.ImagePrompt = DefaultImagePrompt(beat)
	}
	if s.MotionPrompt == "" {
		s.MotionPrompt = DefaultMotionPrompt(beat)
	}
	if len(s.SFX) == 0 {
		s.SFX = DefaultSFX(beat)
	}
	return s
}

func sceneID(v gjson.Result) (int, bool) {
	switch v.Type {
	case gjson.Number:
		return int(v.Int()), true
	case gjson.String:
		id, err := strconv.Atoi(strings.TrimSpace(v.Str))
		return id, err == nil
	}
	return 0, false
}

// text reads a string field. Arrays of lines are joined, other JSON values
// count as missing.
func text(v gjson.Result) string {
	switch {
	case v.Type == gjson.String:
		return strings.TrimSpace(v.Str)
	case v.IsArray():
		lines := make([]string, 0)
		for _, l := range v.Array() {
			if l.Type == gjson.String && strings.TrimSpace(l.Str) != "" {
				lines = append(lines, strings.TrimSpace(l.Str))
			}
		}
		return strings.Join(lines, "\n")
	}
	return ""
}

// cues normalizes sfx to an ordered list: a bare string becomes a single
// cue, empty entries are dropped.
func cues(v gjson.Result) []string {
	out := make([]string, 0)
	switch {
	case v.Type == gjson.String:
		if c := strings.TrimSpace(v.Str); c != "" {
			out = append(out, c)
		}
	case v.IsArray():
		for _, c := range v.Array() {
			if c.Type == gjson.String {
				if s := strings.TrimSpace(c.Str); s != "" {
					out = append(out, s)
				}
			}
		}
	}
	return out
}
