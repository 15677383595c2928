package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/Odunjoy/NaijaStoic-props/ai"
	"github.com/Odunjoy/NaijaStoic-props/errs"
	"github.com/Odunjoy/NaijaStoic-props/production"
	"github.com/Odunjoy/NaijaStoic-props/prompt"
	"github.com/Odunjoy/NaijaStoic-props/seo"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const response = `{"scenes":[
 {"scene_id":1,"shot_type":"Close-up","dialogue":"One","image_prompt":"a","i2v_motion_prompt":"b","sfx":["x"]},
 {"scene_id":2,"shot_type":"Two-shot","dialogue":"Two","image_prompt":"a","i2v_motion_prompt":"b","sfx":["y"]},
 {"scene_id":3,"shot_type":"Final Close-up","dialogue":"Three","image_prompt":"a","i2v_motion_prompt":"b","sfx":["z"]}
]}`

func newServer(t *testing.T, g ai.Generator) (*Server, string) {
	t.Helper()
	store := seo.MustLoad("")
	out := t.TempDir()
	tr := production.NewTransformer(store, g, production.Options{Attempts: 1, Backoff: time.Millisecond})
	return New(store, tr, out), out
}

func do(s *Server, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	return rec
}

var ok = ai.GeneratorFunc(func(_ context.Context, _ ai.Request) (string, error) {
	return response, nil
})

func TestTemplates(t *testing.T) {
	s, _ := newServer(t, ok)

	rec := do(s, http.MethodGet, "/templates", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var all []seo.Template
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &all))
	assert.Len(t, all, 58)
	assert.NotEmpty(t, rec.Header().Get(echo.HeaderXRequestID))

	rec = do(s, http.MethodGet, "/templates/7", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var one seo.Template
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &one))
	assert.Equal(t, 7, one.ID)

	assert.Equal(t, http.StatusNotFound, do(s, http.MethodGet, "/templates/99", "").Code)
	assert.Equal(t, http.StatusBadRequest, do(s, http.MethodGet, "/templates/abc", "").Code)
}

func TestStyles(t *testing.T) {
	s, _ := newServer(t, ok)
	rec := do(s, http.MethodGet, "/styles", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var body stylesResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, []prompt.Style{prompt.Luxury, prompt.Casual, prompt.Streetwise}, body.Styles)
	assert.Equal(t, []prompt.Language{prompt.Pidgin, prompt.Mixed, prompt.English}, body.Languages)
	assert.Equal(t, []prompt.Animation{prompt.LofiAnime, prompt.CGI}, body.Animations)
	require.Len(t, body.Characters, 2)
	assert.Equal(t, "Odogwu", body.Characters[0].Name)
	assert.Equal(t, prompt.Settings(), body.Settings)
	assert.Contains(t, body.Trending, "#nogreeforanybody")
}

func TestTransformWithExtras(t *testing.T) {
	s, _ := newServer(t, ok)
	rec := do(s, http.MethodPost, "/transform?extras=1",
		`{"script":"If you no get 50 Million for account, no talk to me","template":"manual:1","animation":"2d_lofi"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var body transformResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.NotNil(t, body.Package)
	require.NotNil(t, body.Extras)
	assert.Len(t, body.Package.Scenes, 3)
	assert.Equal(t, body.Package.SeoData.Title, body.Extras.Video.Title)
	assert.Equal(t, prompt.LofiAnime.Name(), body.Extras.Visuals.Animation)
	assert.Len(t, body.Extras.Motion, 3)

	rec = do(s, http.MethodPost, "/transform?extras=1", `{"script":"x","animation":"claymation"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUnclassifiedErrorsAreInternal(t *testing.T) {
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)
	errorHandler(errors.New("disk on fire"), c)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	var body errorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, errs.Internal, body.Error)
	assert.Equal(t, "disk on fire", body.Message)

	s, _ := newServer(t, ok)
	assert.Equal(t, http.StatusNotFound, do(s, http.MethodGet, "/nope", "").Code)
}

func TestTransformAndExport(t *testing.T) {
	s, out := newServer(t, ok)
	rec := do(s, http.MethodPost, "/transform",
		`{"script":"If you no get 50 Million for account, no talk to me","template":"manual:1","style":"Luxury","export":true}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var p production.Package
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &p))
	assert.Equal(t, seo.MustLoad("").Default().LocalizedTitle, p.SeoData.Title)
	assert.Len(t, p.Scenes, 3)

	path := rec.Header().Get(PackageFileHeader)
	require.NotEmpty(t, path)
	written, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.JSONEq(t, rec.Body.String(), string(written))
	assert.True(t, strings.HasPrefix(path, out))

	rec = do(s, http.MethodGet, "/packages", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var listed []production.Exported
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &listed))
	require.Len(t, listed, 1)
	assert.Equal(t, p.SeoData.Title, listed[0].Title)
}

func TestTransformErrors(t *testing.T) {
	cases := []struct {
		name   string
		g      ai.Generator
		body   string
		status int
		kind   errs.Kind
	}{
		{"bad json", ok, `{"script":`, http.StatusBadRequest, errs.InvalidInput},
		{"unknown template", ok, `{"script":"x","template":"manual:0"}`, http.StatusNotFound, errs.TemplateNotFound},
		{"unknown style", ok, `{"script":"x","style":"Gothic"}`, http.StatusBadRequest, errs.InvalidInput},
		{"quota", ai.GeneratorFunc(func(context.Context, ai.Request) (string, error) {
			return "", errs.Newf(errs.Quota, "out of credit")
		}), `{"script":"x"}`, http.StatusTooManyRequests, errs.Quota},
		{"malformed", ai.GeneratorFunc(func(context.Context, ai.Request) (string, error) {
			return `{"scenes":[]}`, nil
		}), `{"script":"x"}`, http.StatusBadGateway, errs.MalformedResponse},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			s, _ := newServer(t, c.g)
			rec := do(s, http.MethodPost, "/transform", c.body)
			assert.Equal(t, c.status, rec.Code, rec.Body.String())
			var body errorResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, c.kind, body.Error)
			if c.kind == errs.MalformedResponse {
				assert.Equal(t, `{"scenes":[]}`, body.Raw)
			}
		})
	}
}
