package seo

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/Odunjoy/NaijaStoic-props/errs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const header = "id,original_title,naija_title,tags,hashtags\n"

func parse(t *testing.T, rows string) *Store {
	t.Helper()
	s, err := Parse(strings.NewReader(header + rows))
	require.NoError(t, err)
	return s
}

func TestEmbeddedTable(t *testing.T) {
	s, err := Load("")
	require.NoError(t, err)
	require.Equal(t, 58, s.Len())
	for i, tpl := range s.All() {
		assert.Equal(t, i+1, tpl.ID)
		assert.NotEmpty(t, tpl.LocalizedTitle)
		assert.NotEmpty(t, tpl.Tags)
		assert.NotEmpty(t, tpl.Hashtags)
	}
}

func TestManualReturnsThatTemplate(t *testing.T) {
	s := MustLoad("")
	for _, tpl := range s.All() {
		got, err := s.Match("anything at all", Manual(tpl.ID))
		require.NoError(t, err)
		assert.Equal(t, tpl, got)
	}
}

func TestManualUnknownID(t *testing.T) {
	s := MustLoad("")
	for _, id := range []int{0, -1, 59, 1000} {
		_, err := s.Match("", Manual(id))
		assert.True(t, errs.Is(err, errs.TemplateNotFound), "id %d: %v", id, err)
	}
}

func TestAutoZeroOverlapFallsBackToDefault(t *testing.T) {
	s := MustLoad("")
	for _, text := range []string{"", "   ", "qqq zzz xyz", "🙂🙂"} {
		got, err := s.Match(text, Auto)
		require.NoError(t, err)
		assert.Equal(t, 1, got.ID)
		assert.Equal(t, s.Default(), got)
	}
}

func TestAutoHighestScoreAndLowestIDTieBreak(t *testing.T) {
	s := parse(t, `5,Alpha,Alpha,"money","#a"
3,Beta,Beta,"money","#b"
7,Gamma,Gamma,"money,bills","#c"
`)
	got, err := s.Match("Money matters", Auto)
	require.NoError(t, err)
	assert.Equal(t, 3, got.ID)

	got, err = s.Match("MONEY and BILLS", Auto)
	require.NoError(t, err)
	assert.Equal(t, 7, got.ID)

	got, err = s.Match("gamma alpha", Auto)
	require.NoError(t, err)
	assert.Equal(t, 5, got.ID)

	assert.Equal(t, map[int]int{3: 1, 5: 1, 7: 2}, s.Scores("money bills"))
}

func TestAutoIsDeterministic(t *testing.T) {
	s := MustLoad("")
	text := "She want me to pay all the bills but refuse to cook. Sapa dey my side."
	first, err := s.Match(text, Auto)
	require.NoError(t, err)
	for i := 0; i < 10; i++ {
		again, err := s.Match(text, Auto)
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
}

func TestMalformedRowsAreSkipped(t *testing.T) {
	s := parse(t, `x,Bad Id,Bad Id,"a","#a"
9,Short
10,Empty Title,,"a","#a"
2,Good,Good Title,"a, b ,,a","#x,#y"
2,Duplicate,Duplicate,"a","#a"
`)
	require.Equal(t, 1, s.Len())
	got, err := s.Get(2)
	require.NoError(t, err)
	assert.Equal(t, "Good Title", got.LocalizedTitle)
	assert.Equal(t, []string{"a", "b"}, got.Tags)
	assert.Equal(t, []string{"#x", "#y"}, got.Hashtags)
}

func TestUnusableTable(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.csv"))
	assert.True(t, errs.Is(err, errs.Configuration), "%v", err)

	_, err = Parse(strings.NewReader(""))
	assert.True(t, errs.Is(err, errs.Configuration), "%v", err)

	_, err = Parse(strings.NewReader("id,title\n1,x\n"))
	assert.True(t, errs.Is(err, errs.Configuration), "%v", err)

	_, err = Parse(strings.NewReader(header + "x,a,b,c,d\n"))
	assert.True(t, errs.Is(err, errs.Configuration), "%v", err)
}

func TestTemplatesAreCopies(t *testing.T) {
	s := MustLoad("")
	got, err := s.Get(1)
	require.NoError(t, err)
	got.Tags[0] = "mutated"
	got.Hashtags = append(got.Hashtags, "#mutated")

	again, err := s.Get(1)
	require.NoError(t, err)
	assert.NotEqual(t, "mutated", again.Tags[0])
	assert.NotContains(t, again.Hashtags, "#mutated")
}

func TestParseMode(t *testing.T) {
	cases := []struct {
		in   string
		want Mode
	}{
		{"", Auto},
		{"auto", Auto},
		{" AUTO ", Auto},
		{"manual:1", Manual(1)},
		{"manual: 42", Manual(42)},
	}
	for _, c := range cases {
		got, err := ParseMode(c.in)
		require.NoError(t, err, c.in)
		assert.Equal(t, c.want, got, c.in)
	}
	for _, in := range []string{"manual:", "manual:abc", "best", "1"} {
		_, err := ParseMode(in)
		assert.True(t, errs.Is(err, errs.InvalidInput), in)
	}
	assert.Equal(t, "manual:7", Manual(7).String())
	assert.Equal(t, "auto", Auto.String())
}

func TestEnhance(t *testing.T) {
	tpl := Template{ID: 1, Hashtags: []string{"#Naija"}}
	got := Enhance(tpl, 3)
	assert.Equal(t, []string{"#Naija", "#nogreeforanybody", "#fearwomen"}, got.Hashtags)
	assert.Equal(t, []string{"#Naija"}, tpl.Hashtags)

	assert.Equal(t, tpl.Hashtags, Enhance(tpl, 0).Hashtags)
	assert.Len(t, Enhance(Template{}, 100).Hashtags, len(Trending()))
}
