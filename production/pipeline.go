package production

import (
	"context"
	"github.com/Odunjoy/NaijaStoic-props/ai"
	"github.com/Odunjoy/NaijaStoic-props/config"
	"github.com/Odunjoy/NaijaStoic-props/discord"
	"github.com/Odunjoy/NaijaStoic-props/errs"
	"github.com/Odunjoy/NaijaStoic-props/prompt"
	"github.com/Odunjoy/NaijaStoic-props/scene"
	"github.com/Odunjoy/NaijaStoic-props/seo"
	"github.com/Odunjoy/NaijaStoic-props/utils"
	"time"
)

type Options struct {
	// Attempts is the total number of generation calls allowed.
	Attempts         int
	Backoff          time.Duration
	TrendingHashtags int
	DefaultStyle     prompt.Style
	DefaultLanguage  prompt.Language
}

func OptionsFromConfig(c *config.Config) Options {
	o := Options{
		Attempts:         c.GenerationAttempts,
		Backoff:          c.GenerationBackoff,
		TrendingHashtags: c.SeoTrendingHashtags,
		DefaultStyle:     prompt.Luxury,
		DefaultLanguage:  prompt.Pidgin,
	}
	if s, err := prompt.ParseStyle(c.DefaultStyle); err == nil {
		o.DefaultStyle = s
	} else {
		discord.Warnf("Ignoring DEFAULT_STYLE: %v", err)
	}
	if l, err := prompt.ParseLanguage(c.DefaultLanguage); err == nil {
		o.DefaultLanguage = l
	} else {
		discord.Warnf("Ignoring DEFAULT_LANGUAGE: %v", err)
	}
	return o
}

// Input is one transformation request. Mode is "auto" or "manual:<id>";
// empty Style and Language take the transformer defaults.
type Input struct {
	Script   string `json:"script"`
	Mode     string `json:"template"`
	Style    string `json:"style"`
	Language string `json:"language"`
	// Animation only shapes the extras; empty means 3d_cgi.
	Animation string `json:"animation"`
}

type resolved struct {
	mode      seo.Mode
	style     prompt.Style
	lang      prompt.Language
	animation prompt.Animation
}

// Transformer runs the pipeline. It holds only read-only state and is safe
// for concurrent use.
type Transformer struct {
	store     *seo.Store
	generator ai.Generator
	opts      Options
}

func NewTransformer(store *seo.Store, generator ai.Generator, opts Options) *Transformer {
	if opts.Attempts < 1 {
		opts.Attempts = 1
	}
	if !opts.DefaultStyle.Valid() {
		opts.DefaultStyle = prompt.Luxury
	}
	if !opts.DefaultLanguage.Valid() {
		opts.DefaultLanguage = prompt.Pidgin
	}
	return &Transformer{store: store, generator: generator, opts: opts}
}

func (t *Transformer) resolve(in Input) (r resolved, err error) {
	if r.mode, err = seo.ParseMode(in.Mode); err != nil {
		return r, err
	}
	r.style = t.opts.DefaultStyle
	if in.Style != "" {
		if r.style, err = prompt.ParseStyle(in.Style); err != nil {
			return r, err
		}
	}
	r.lang = t.opts.DefaultLanguage
	if in.Language != "" {
		if r.lang, err = prompt.ParseLanguage(in.Language); err != nil {
			return r, err
		}
	}
	r.animation, err = prompt.ParseAnimation(in.Animation)
	return r, err
}

// Transform returns a complete package or an error, never a partial one.
func (t *Transformer) Transform(ctx context.Context, in Input) (*Package, error) {
	r, err := t.resolve(in)
	if err != nil {
		return nil, err
	}

	tpl, err := t.store.Match(in.Script, r.mode)
	if err != nil {
		return nil, err
	}
	discord.Infof("Template %d (%s) selected by %s", tpl.ID, tpl.LocalizedTitle, r.mode)

	req, err := prompt.Build(in.Script, tpl, r.style, r.lang)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	scenes, err := ai.GenerateWithRetry(ctx, t.generator, req, scene.Parse, t.opts.Attempts, t.opts.Backoff)
	if err != nil {
		if raw := errs.Raw(err); raw != "" {
			discord.Errorf("Unusable response:\n%s", discord.Code(utils.Truncate(raw, 1500)))
		}
		return nil, errs.Wrap(err, "generating scenes", errs.Transient)
	}
	discord.Infof("Generated %d scenes in %s", len(scenes), time.Since(start).Round(time.Millisecond))

	if t.opts.TrendingHashtags > 0 {
		tpl = seo.Enhance(tpl, t.opts.TrendingHashtags)
	}
	return Assemble(tpl, scenes)
}

// Extras describes p using the same style, language and animation
// resolution as Transform.
func (t *Transformer) Extras(p *Package, in Input) (*Extras, error) {
	r, err := t.resolve(in)
	if err != nil {
		return nil, err
	}
	return Describe(p, r.style, r.lang, r.animation, time.Now()), nil
}
