package production

import (
	"fmt"
	"github.com/Odunjoy/NaijaStoic-props/prompt"
	"github.com/Odunjoy/NaijaStoic-props/scene"
	mapset "github.com/deckarep/golang-set/v2"
	"math"
	"strings"
	"time"
)

const (
	// SceneSeconds is the slot each scene gets in the edit.
	SceneSeconds = 7
	// about 150 words a minute
	wordsPerSecond = 2.5
	maxSceneWords  = 20
	maxHooks       = 5
	platformRatio  = "9:16"
)

// Extras is editing material derived from a finished package. It is never
// part of the exported document.
type Extras struct {
	Video     VideoMetadata     `json:"video"`
	Scenes    []SceneNotes      `json:"scenes"`
	Audio     AudioManifest     `json:"audio"`
	Visuals   Visuals           `json:"visuals"`
	Motion    []PlatformPrompts `json:"motion"`
	Structure StructureReport   `json:"structure"`
}

type VideoMetadata struct {
	Title           string    `json:"title"`
	CreatedAt       time.Time `json:"created_at"`
	TotalScenes     int       `json:"total_scenes"`
	DurationSeconds int       `json:"duration_seconds"`
	Animation       string    `json:"animation"`
	Language        string    `json:"language"`
	OnscreenHooks   []string  `json:"onscreen_hooks"`
	FinalLesson     string    `json:"final_lesson"`
	Format          string    `json:"format"`
	TargetPlatform  string    `json:"target_platform"`
	ContentType     string    `json:"content_type"`
}

type SceneNotes struct {
	SceneID           int     `json:"scene_id"`
	Beat              string  `json:"beat"`
	FocalCharacter    string  `json:"focal_character"`
	CameraPerspective string  `json:"camera_perspective"`
	NarrativeFocus    string  `json:"narrative_focus"`
	EditingNotes      string  `json:"editing_notes"`
	EmotionalTone     string  `json:"emotional_tone"`
	Purpose           string  `json:"scene_purpose"`
	TimestampSeconds  int     `json:"timestamp_seconds"`
	DurationSeconds   int     `json:"duration_seconds"`
	SpeechSeconds     float64 `json:"estimated_speech_seconds"`
}

type MusicTrack struct {
	Section  string `json:"section"`
	Prompt   string `json:"prompt"`
	Duration string `json:"duration"`
	Fade     string `json:"fade"`
}

type Volume struct {
	Music    float64 `json:"music"`
	Dialogue float64 `json:"dialogue"`
	SFX      float64 `json:"sfx"`
	Ambient  float64 `json:"ambient"`
}

type SceneAudio struct {
	SceneID  int      `json:"scene_id"`
	Cues     []string `json:"cues"`
	Volume   Volume   `json:"volume"`
	Layering []string `json:"layering"`
}

type Marker struct {
	Name string `json:"name"`
	At   string `json:"at"`
}

type AudioManifest struct {
	Music   []MusicTrack `json:"music_tracks"`
	Ambient []string     `json:"ambient_layer"`
	Scenes  []SceneAudio `json:"scene_sfx"`
	Markers []Marker     `json:"timing_markers"`
}

type Visuals struct {
	Animation        string       `json:"animation"`
	EstablishingShot string       `json:"establishing_shot"`
	Props            prompt.Props `json:"props"`
}

type RunwayPrompt struct {
	Prompt         string `json:"prompt"`
	Duration       int    `json:"duration"`
	MotionBucketID int    `json:"motion_bucket_id"`
	Style          string `json:"style"`
	AspectRatio    string `json:"aspect_ratio"`
}

type Keyframes struct {
	Start string `json:"frame_0"`
	End   string `json:"frame_end"`
}

type LumaPrompt struct {
	Prompt      string    `json:"prompt"`
	Keyframes   Keyframes `json:"keyframes"`
	Loop        bool      `json:"loop"`
	AspectRatio string    `json:"aspect_ratio"`
}

type PlatformPrompts struct {
	SceneID int          `json:"scene_id"`
	Runway  RunwayPrompt `json:"runway"`
	Luma    LumaPrompt   `json:"luma"`
}

// StructureReport lists soft problems an editor should look at. A package
// with issues is still valid.
type StructureReport struct {
	Valid  bool     `json:"valid"`
	Issues []string `json:"issues"`
}

type beatNote struct {
	phase     string
	role      string
	narrative string
	editing   string
	tone      string
	purpose   string
	volume    Volume
	layering  []string
}

var beatNotes = map[scene.Beat]beatNote{
	scene.Hook: {
		phase:     "Hook",
		role:      "antagonist",
		narrative: "Making entitled demands, establishing conflict",
		editing:   "Emphasize entitled expression, wild gestures. Build initial conflict. Consider light VFX on key words.",
		tone:      "Entitled, demanding",
		purpose:   "Establish conflict and grab attention",
		volume:    Volume{Music: 0.6, Dialogue: 1.0, SFX: 0.4, Ambient: 0.3},
		layering:  []string{"dialogue", "music", "ambient", "sfx"},
	},
	scene.Pivot: {
		phase:     "Pivot",
		role:      "hero",
		narrative: "Asking the critical question, the shift begins",
		editing:   "KEY MOMENT: Emphasize the question. Slight pause before delivery. This is the trap being set.",
		tone:      "Strategic, questioning",
		purpose:   "Turn the tables with logic",
		volume:    Volume{Music: 0.3, Dialogue: 1.0, SFX: 0.7, Ambient: 0.2},
		layering:  []string{"dialogue", "sfx", "ambient", "music"},
	},
	scene.Dunk: {
		phase:     "Dunk",
		role:      "hero",
		narrative: "Delivering the logical breakdown and final point",
		editing:   "PAYOFF: Strong confident delivery. Knowing smile. Final mic drop moment. Consider SFX emphasis.",
		tone:      "Confident, logical",
		purpose:   "Deliver the logical knockout",
		volume:    Volume{Music: 0.8, Dialogue: 1.0, SFX: 0.9, Ambient: 0.3},
		layering:  []string{"dialogue", "sfx", "music", "ambient"},
	},
}

var musicTracks = []MusicTrack{
	{"intro", "Slowed + reverb Afrobeats instrumental, lofi hip-hop vibe, purple aesthetic, 80 BPM, chill and moody", "7s", "fade_in"},
	{"pivot", "Tension-building minimalist beat, slowed tempo, suspenseful strings, dramatic pause moment", "7s", "crossfade"},
	{"dunk", "Epic bass drop, cinematic boom, triumphant undertone, Afrobeats percussion, powerful finish", "7s", "fade_out"},
}

var ambientLayer = []string{
	"Lagos city ambiance (distant traffic, city hum)",
	"Wind chime or subtle bell tones",
	"Coffee shop ambiance (very subtle)",
	"Light rain against window (optional for mood)",
}

type hookRule struct {
	words []string
	hooks []string
}

var hookRules = []hookRule{
	{[]string{"pay", "bills", "deserve", "entitled", "prize"}, []string{"POV: The Toxic Council", "POV: Entitlement Mentality", "POV: Slay Queen Logic"}},
	{[]string{"man", "woman", "date", "marriage", "breakfast"}, []string{"POV: Modern Relationships", "POV: High Value Standards", "POV: Breakfast Served Hot"}},
	{[]string{"logic", "sense", "why", "how"}, []string{"POV: Logic Applied", "POV: The Logic Trap", "POV: No Gree For Anybody"}},
}

type lessonRule struct {
	words  []string
	lesson string
}

var lessonRules = []lessonRule{
	{[]string{"pay", "bills", "deserve", "entitled"}, "Your value comes from your character, not your entitlement. No gree for sapa mentality."},
	{[]string{"prize", "worth", "standards"}, "A true prize doesn't need to announce its price. Character over packaging."},
	{[]string{"marriage", "man", "woman", "date"}, "Relationships na partnership, no be entitlement workshop. Stay logical."},
	{[]string{"why", "how", "logic"}, "Question everything with logic. When emotions rise, wisdom must lead."},
}

const defaultLesson = "Protect your peace and use your logic. No gree for anybody."

// Describe derives the editing extras for p. It is deterministic apart from
// CreatedAt, which is set to now.
func Describe(p *Package, style prompt.Style, lang prompt.Language, anim prompt.Animation, now time.Time) *Extras {
	dialogue := make([]string, 0, len(p.Scenes))
	for _, s := range p.Scenes {
		dialogue = append(dialogue, s.Dialogue)
	}
	spoken := strings.ToLower(strings.Join(dialogue, " "))

	x := &Extras{
		Video: VideoMetadata{
			Title:           p.SeoData.Title,
			CreatedAt:       now,
			TotalScenes:     len(p.Scenes),
			DurationSeconds: len(p.Scenes) * SceneSeconds,
			Animation:       anim.Name(),
			Language:        lang.Name(),
			OnscreenHooks:   OnscreenHooks(p.SeoData.Title, spoken),
			FinalLesson:     FinalLesson(spoken),
			Format:          prompt.AspectRatio,
			TargetPlatform:  "TikTok, Instagram Reels, YouTube Shorts",
			ContentType:     "Nigerian Stoic Logic - Relationship Commentary",
		},
		Scenes: make([]SceneNotes, 0, len(p.Scenes)),
		Audio: AudioManifest{
			Music:   append([]MusicTrack(nil), musicTracks...),
			Ambient: append([]string(nil), ambientLayer...),
			Scenes:  make([]SceneAudio, 0, len(p.Scenes)),
			Markers: timingMarkers(len(p.Scenes)),
		},
		Visuals: Visuals{
			Animation:        anim.Name(),
			EstablishingShot: prompt.EstablishingShot(anim, style),
			Props:            prompt.ReferenceProps(anim, style),
		},
		Motion:    make([]PlatformPrompts, 0, len(p.Scenes)),
		Structure: ValidateStructure(p.Scenes),
	}

	for _, s := range p.Scenes {
		note := beatNotes[s.Beat()]
		x.Scenes = append(x.Scenes, sceneNotes(s, note))
		x.Audio.Scenes = append(x.Audio.Scenes, SceneAudio{
			SceneID:  s.SceneID,
			Cues:     append(make([]string, 0, len(s.SFX)), s.SFX...),
			Volume:   note.volume,
			Layering: append([]string(nil), note.layering...),
		})
		x.Motion = append(x.Motion, platformPrompts(s, anim))
	}
	return x
}

func sceneNotes(s scene.Scene, note beatNote) SceneNotes {
	focal := prompt.CharacterByRole(note.role)
	other := prompt.CharacterByRole("antagonist")
	if note.role == "antagonist" {
		other = prompt.CharacterByRole("hero")
	}
	return SceneNotes{
		SceneID:           s.SceneID,
		Beat:              s.Beat().String(),
		FocalCharacter:    focal.Name,
		CameraPerspective: fmt.Sprintf("%s - %s's perspective, steady, eye level from %s's position", s.ShotType, focal.Name, other.Name),
		NarrativeFocus:    note.narrative,
		EditingNotes:      note.editing,
		EmotionalTone:     note.tone,
		Purpose:           note.phase + " - " + note.purpose,
		TimestampSeconds:  (s.SceneID - 1) * SceneSeconds,
		DurationSeconds:   SceneSeconds,
		SpeechSeconds:     EstimateDuration(s.Dialogue),
	}
}

func platformPrompts(s scene.Scene, anim prompt.Animation) PlatformPrompts {
	look := "Maintain 3D aesthetic."
	if anim.IsFlat() {
		look = "Maintain 2D aesthetic."
	}
	motion := fmt.Sprintf("%s %s Lips syncing accurately to dialogue audio track.", s.MotionPrompt, look)
	return PlatformPrompts{
		SceneID: s.SceneID,
		Runway: RunwayPrompt{
			Prompt:         motion,
			Duration:       10,
			MotionBucketID: 127,
			Style:          anim.Name(),
			AspectRatio:    platformRatio,
		},
		Luma: LumaPrompt{
			Prompt:      motion,
			Keyframes:   Keyframes{Start: "Starting position", End: "Ending position with minimal change"},
			AspectRatio: platformRatio,
		},
	}
}

// EstimateDuration is the speaking time of dialogue in seconds, rounded to
// one decimal.
func EstimateDuration(dialogue string) float64 {
	words := len(strings.Fields(dialogue))
	return math.Round(float64(words)/wordsPerSecond*10) / 10
}

// ValidateStructure checks the hook, pivot, dunk layout and flags scenes
// whose dialogue is too long for its slot.
func ValidateStructure(scenes []scene.Scene) StructureReport {
	issues := make([]string, 0)
	if len(scenes) != scene.Count {
		issues = append(issues, fmt.Sprintf("Expected %d scenes, got %d", scene.Count, len(scenes)))
	}
	for i, s := range scenes {
		if s.SceneID != i+1 {
			issues = append(issues, fmt.Sprintf("Scene at position %d has id %d", i+1, s.SceneID))
		}
		words := len(strings.Fields(s.Dialogue))
		if words == 0 {
			issues = append(issues, fmt.Sprintf("Scene %d has no dialogue", s.SceneID))
		}
		if words > maxSceneWords {
			issues = append(issues, fmt.Sprintf("Scene %d has %d words (should be 10-15 for %d sec)", s.SceneID, words, SceneSeconds))
		}
	}
	return StructureReport{Valid: len(issues) == 0, Issues: issues}
}

// OnscreenHooks suggests up to five POV overlays. The title hook always
// comes first.
func OnscreenHooks(title, spoken string) []string {
	if title == "" {
		title = "Naija Stoic Logic"
	}
	seen := mapset.NewThreadUnsafeSet[string]()
	hooks := make([]string, 0, maxHooks)
	add := func(h string) {
		if len(hooks) < maxHooks && seen.Add(h) {
			hooks = append(hooks, h)
		}
	}
	add("POV: " + title)
	for _, r := range hookRules {
		if mentions(spoken, r.words) {
			for _, h := range r.hooks {
				add(h)
			}
		}
	}
	return hooks
}

// FinalLesson picks the closing card text from the first theme the dialogue
// mentions.
func FinalLesson(spoken string) string {
	for _, r := range lessonRules {
		if mentions(spoken, r.words) {
			return r.lesson
		}
	}
	return defaultLesson
}

func mentions(text string, words []string) bool {
	for _, w := range words {
		if strings.Contains(text, w) {
			return true
		}
	}
	return false
}

func timingMarkers(scenes int) []Marker {
	pivot := SceneSeconds
	dunk := 2 * SceneSeconds
	end := scenes * SceneSeconds
	return []Marker{
		{"intro_music_start", clock(0)},
		{"hook_dialogue", clock(1)},
		{"record_scratch", clock(pivot)},
		{"pivot_question", clock(pivot + 1)},
		{"tension_build", clock(pivot + SceneSeconds/2)},
		{"first_bass_thud", clock(dunk)},
		{"second_bass_thud", clock(dunk + SceneSeconds/2)},
		{"mic_drop", clock(end - 1)},
		{"outro_fade", clock(end)},
	}
}

func clock(sec int) string {
	return fmt.Sprintf("%d:%02d", sec/60, sec%60)
}
