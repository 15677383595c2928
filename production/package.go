package production

import (
	"bytes"
	"encoding/json"
	"fmt"
	"github.com/Odunjoy/NaijaStoic-props/errs"
	"github.com/Odunjoy/NaijaStoic-props/scene"
	"github.com/Odunjoy/NaijaStoic-props/seo"
	"strings"
)

type SeoData struct {
	Title    string   `json:"title"`
	Tags     []string `json:"tags"`
	Hashtags []string `json:"hashtags"`
}

// Package is the exported document. It is complete by construction: exactly
// scene.Count scenes with ids 1..Count in order, and no nil slices.
type Package struct {
	SeoData SeoData       `json:"seo_data"`
	Scenes  []scene.Scene `json:"scenes"`
}

// Assemble merges a template and parsed scenes. Inputs are copied.
func Assemble(t seo.Template, scenes []scene.Scene) (*Package, error) {
	if len(scenes) != scene.Count {
		return nil, errs.Newf(errs.MalformedResponse, "package needs %d scenes, got %d", scene.Count, len(scenes))
	}
	p := &Package{
		SeoData: SeoData{
			Title:    t.LocalizedTitle,
			Tags:     append(make([]string, 0, len(t.Tags)), t.Tags...),
			Hashtags: append(make([]string, 0, len(t.Hashtags)), t.Hashtags...),
		},
		Scenes: make([]scene.Scene, 0, scene.Count),
	}
	for i, s := range scenes {
		if s.SceneID != i+1 {
			return nil, errs.Newf(errs.MalformedResponse, "scene at position %d has id %d", i+1, s.SceneID)
		}
		if strings.TrimSpace(s.Dialogue) == "" {
			return nil, errs.Newf(errs.MalformedResponse, "scene %d has no dialogue", s.SceneID)
		}
		p.Scenes = append(p.Scenes, s.Clone())
	}
	return p, nil
}

// Marshal renders the package as indented JSON. Equal packages give
// byte-identical output.
func (p *Package) Marshal() ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(p); err != nil {
		return nil, fmt.Errorf("marshalling package: %w", err)
	}
	return buf.Bytes(), nil
}
