package scene

// Count is the number of scenes in every document: hook, pivot, dunk.
const Count = 3

// Beat is the narrative position of a scene in the logic trap.
type Beat int

const (
	Hook Beat = iota + 1
	Pivot
	Dunk
)

func (b Beat) String() string {
	switch b {
	case Hook:
		return "hook"
	case Pivot:
		return "pivot"
	case Dunk:
		return "dunk"
	}
	return "unknown"
}

// Scene is one beat of the production package.
type Scene struct {
	SceneID      int      `json:"scene_id" jsonschema:"minimum=1,maximum=3" jsonschema_description:"Position in the logic trap: 1 hook, 2 pivot, 3 dunk."`
	ShotType     string   `json:"shot_type" jsonschema_description:"Camera framing for the scene, e.g. Close-up or Two-shot."`
	Dialogue     string   `json:"dialogue" jsonschema_description:"The spoken line for this scene, 10 to 15 words."`
	ImagePrompt  string   `json:"image_prompt" jsonschema_description:"Text-to-image prompt for the first frame of the scene."`
	MotionPrompt string   `json:"i2v_motion_prompt" jsonschema_description:"Image-to-video motion prompt. Subtle movement only."`
	SFX          []string `json:"sfx" jsonschema_description:"Ordered sound effect cues for the scene."`
}

func (s Scene) Beat() Beat {
	return Beat(s.SceneID)
}

// Clone returns a deep copy with a non-nil SFX slice.
func (s Scene) Clone() Scene {
	s.SFX = append(make([]string, 0, len(s.SFX)), s.SFX...)
	return s
}

type defaults struct {
	shot     string
	dialogue string
	image    string
	sfx      []string
}

var beatDefaults = map[Beat]defaults{
	Hook: {
		shot:     "Close-up",
		dialogue: "Make I ask you one simple question.",
		image:    "Close-up of a calm Nigerian man in a Lekki penthouse at sunset, warm purple and orange palette, vertical 9:16",
		sfx: []string{
			"Low-tempo slowed + reverb Afrobeats instrumental",
			"Muffled city noise in background",
			"Soft lofi hip-hop beat starting",
		},
	},
	Pivot: {
		shot:     "Two-shot",
		dialogue: "So wetin you bring come table?",
		image:    "Two-shot of a calm Nigerian man facing an animated woman on a Lagos rooftop at night, city lights behind, vertical 9:16",
		sfx: []string{
			"Record scratch sound effect",
			"Brief silence for dramatic pause (1-2s)",
			"Tension-building string note",
			"Subtle heartbeat sound emerging",
		},
	},
	Dunk: {
		shot:     "Final Close-up",
		dialogue: "No gree for anybody.",
		image:    "Final close-up of a composed Nigerian man with a slight smile, Lekki skyline at night, moody neon palette, vertical 9:16",
		sfx: []string{
			"Deep bass thud on key logic points",
			"Heartbeat intensifying",
			"Mic drop sound effect at end",
			"Cinematic boom/impact sound",
		},
	},
}

// MotionBase is prepended to every default motion prompt.
const MotionBase = "Stay on one spot at all times. Subtle movements only."

var cameraCycle = map[Beat]string{
	Hook:  "Slow push-in on the face.",
	Pivot: "Static camera, slight handheld sway.",
	Dunk:  "Slow pull-out as he turns away.",
}

// DefaultShotType and the other Default helpers give the deterministic
// values used to patch a missing field.
func DefaultShotType(b Beat) string {
	return beatDefaults[b].shot
}

func DefaultDialogue(b Beat) string {
	return beatDefaults[b].dialogue
}

func DefaultImagePrompt(b Beat) string {
	return beatDefaults[b].image
}

func DefaultMotionPrompt(b Beat) string {
	return MotionBase + " " + cameraCycle[b]
}

func DefaultSFX(b Beat) []string {
	return append([]string(nil), beatDefaults[b].sfx...)
}
