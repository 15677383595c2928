package prompt

import (
	"fmt"
	"github.com/Odunjoy/NaijaStoic-props/errs"
	"strings"
)

// Animation is the render look asset prompts are written for.
type Animation string

const (
	LofiAnime Animation = "2d_lofi"
	CGI       Animation = "3d_cgi"
)

// AspectRatio is shared by every generated asset.
const AspectRatio = "vertical 9:16"

type animationPreset struct {
	name string
	base string
}

var animations = map[Animation]animationPreset{
	LofiAnime: {
		name: "2D Lofi Anime",
		base: "2D lofi anime style, clean flat colors, minimalist shading",
	},
	CGI: {
		name: "3D CGI Pixar Style",
		base: "3D CGI animated film style, large expressive eyes, smooth shading",
	},
}

var animationOrder = []Animation{LofiAnime, CGI}

func Animations() []Animation {
	return append([]Animation(nil), animationOrder...)
}

// ParseAnimation is case-insensitive; an empty string means CGI.
func ParseAnimation(s string) (Animation, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return CGI, nil
	}
	if _, ok := animations[Animation(s)]; ok {
		return Animation(s), nil
	}
	return "", errs.Newf(errs.InvalidInput, "unknown animation %q, expected one of %v", s, animationOrder)
}

func (a Animation) Valid() bool {
	_, ok := animations[a]
	return ok
}

func (a Animation) Name() string {
	return animations[a].name
}

func (a Animation) BaseStyle() string {
	return animations[a].base
}

// IsFlat reports whether motion should keep a 2D look.
func (a Animation) IsFlat() bool {
	return a == LofiAnime
}

// EstablishingShot is the wide location prompt shown before scene 1.
func EstablishingShot(a Animation, st Style) string {
	return fmt.Sprintf("Location: Full image of both characters standing in a %s. %s, %s.", st.Setting(), a.BaseStyle(), AspectRatio)
}

// Props are reference prompts used to keep characters and the location
// consistent across the generated images.
type Props struct {
	Hero       string `json:"hero"`
	Antagonist string `json:"antagonist"`
	Setting    string `json:"setting"`
}

func ReferenceProps(a Animation, st Style) Props {
	look := fmt.Sprintf("Visual Style: %s. %s, %s.", st.Palette(), a.BaseStyle(), AspectRatio)
	profile := func(c Character) string {
		return fmt.Sprintf("Character Reference Profile: %s, %s, wearing %s. Standing against a plain background for reference. %s",
			c.Name, c.Description, styles[st].wardrobe, look)
	}
	hero, antagonist := CharacterByRole("hero"), CharacterByRole("antagonist")
	return Props{
		Hero:       profile(hero),
		Antagonist: profile(antagonist),
		Setting:    fmt.Sprintf("Environment Reference: Full shot of the %s with no characters. Show lighting, architectural details, and atmosphere. %s", st.Setting(), look),
	}
}
