package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Odunjoy/NaijaStoic-props/ai"
	"github.com/Odunjoy/NaijaStoic-props/config"
	"github.com/Odunjoy/NaijaStoic-props/errs"
	"github.com/Odunjoy/NaijaStoic-props/production"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const reply = `{"scenes":[
 {"scene_id":1,"shot_type":"Close-up","dialogue":"If you no get 50 Million, no talk to me.","image_prompt":"a","i2v_motion_prompt":"b","sfx":["x"]},
 {"scene_id":2,"shot_type":"Two-shot","dialogue":"Wetin you bring come table?","image_prompt":"a","i2v_motion_prompt":"b","sfx":["y"]},
 {"scene_id":3,"shot_type":"Final Close-up","dialogue":"No gree for anybody.","image_prompt":"a","i2v_motion_prompt":"b","sfx":["z"]}
]}`

// withFakeGenerator points the config at a temp output dir and swaps the
// backend for one that answers with reply. It returns the output dir and a
// pointer to the number of generation calls.
func withFakeGenerator(t *testing.T, reply string) (string, *int) {
	t.Helper()
	old, oldGen := *config.TheConfig, newGenerator
	t.Cleanup(func() {
		*config.TheConfig = old
		newGenerator = oldGen
	})
	out := t.TempDir()
	*config.TheConfig = config.Config{
		GenerationAttempts:  1,
		SeoTrendingHashtags: 3,
		DefaultStyle:        "Luxury",
		DefaultLanguage:     "pidgin",
		Output:              out,
	}
	calls := 0
	newGenerator = func(context.Context, *config.Config) (ai.Generator, error) {
		return ai.GeneratorFunc(func(context.Context, ai.Request) (string, error) {
			calls++
			return reply, nil
		}), nil
	}
	return out, &calls
}

func runTransform(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newTransformCmd()
	var buf bytes.Buffer
	cmd.SetOut(&buf)
	cmd.SetErr(&buf)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return buf.String(), err
}

func TestTransformPrint(t *testing.T) {
	out, calls := withFakeGenerator(t, reply)

	stdout, err := runTransform(t, "--text", "If you no get 50 Million, no talk to me", "-t", "manual:1", "--print")
	require.NoError(t, err)
	assert.Equal(t, 1, *calls)

	var p production.Package
	require.NoError(t, json.Unmarshal([]byte(stdout), &p))
	assert.Len(t, p.Scenes, 3)
	assert.Equal(t, "Wetin you bring come table?", p.Scenes[1].Dialogue)
	assert.Contains(t, p.SeoData.Hashtags, "#nogreeforanybody")

	entries, err := os.ReadDir(out)
	require.NoError(t, err)
	assert.Empty(t, entries, "--print must not export")
}

func TestTransformExport(t *testing.T) {
	out, _ := withFakeGenerator(t, reply)

	stdout, err := runTransform(t, "--text", "money and breakfast", "--style", "Casual")
	require.NoError(t, err)

	path := strings.TrimSpace(stdout)
	assert.Equal(t, out, filepath.Dir(path))
	written, err := os.ReadFile(path)
	require.NoError(t, err)
	var p production.Package
	require.NoError(t, json.Unmarshal(written, &p))
	assert.Len(t, p.Scenes, 3)
}

func TestTransformPrintExtras(t *testing.T) {
	withFakeGenerator(t, reply)

	stdout, err := runTransform(t, "--text", "x", "--print", "--print-extras", "--animation", "2d_lofi")
	require.NoError(t, err)

	dec := json.NewDecoder(strings.NewReader(stdout))
	var p production.Package
	var x production.Extras
	require.NoError(t, dec.Decode(&p))
	require.NoError(t, dec.Decode(&x))
	assert.Equal(t, p.SeoData.Title, x.Video.Title)
	assert.Equal(t, "2D Lofi Anime", x.Visuals.Animation)
	assert.Len(t, x.Motion, 3)
}

func TestTransformFailures(t *testing.T) {
	_, calls := withFakeGenerator(t, "I cannot help with that.")

	_, err := runTransform(t, "--text", "x", "--print")
	assert.True(t, errs.Is(err, errs.MalformedResponse), "%v", err)
	assert.Equal(t, 1, *calls)

	_, err = runTransform(t, "--text", "x", "--style", "Baroque")
	assert.True(t, errs.Is(err, errs.InvalidInput), "%v", err)
	assert.Equal(t, 1, *calls)

	_, err = runTransform(t, "--template", "auto")
	assert.True(t, errs.Is(err, errs.InvalidInput), "%v", err)
}

func TestReadScript(t *testing.T) {
	s, err := readScript(nil, "", "inline")
	require.NoError(t, err)
	assert.Equal(t, "inline", s)

	s, err = readScript(strings.NewReader("from stdin"), "-", "")
	require.NoError(t, err)
	assert.Equal(t, "from stdin", s)

	path := filepath.Join(t.TempDir(), "script.txt")
	require.NoError(t, os.WriteFile(path, []byte("from file"), 0644))
	s, err = readScript(nil, path, "")
	require.NoError(t, err)
	assert.Equal(t, "from file", s)

	for _, c := range [][2]string{{"", ""}, {path, "both"}, {filepath.Join(t.TempDir(), "missing"), ""}} {
		_, err := readScript(nil, c[0], c[1])
		assert.True(t, errs.Is(err, errs.InvalidInput), "%v: %v", c, err)
	}
}
