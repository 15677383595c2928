package api

import (
	"errors"
	"github.com/Odunjoy/NaijaStoic-props/cleanup"
	"github.com/Odunjoy/NaijaStoic-props/discord"
	"github.com/Odunjoy/NaijaStoic-props/errs"
	"github.com/Odunjoy/NaijaStoic-props/production"
	"github.com/Odunjoy/NaijaStoic-props/prompt"
	"github.com/Odunjoy/NaijaStoic-props/seo"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"net/http"
	"os"
	"strconv"
	"time"
)

const PackageFileHeader = "X-Package-File"

type Server struct {
	e           *echo.Echo
	store       *seo.Store
	transformer *production.Transformer
	exports     *production.Cache[[]*production.Exported]
	output      string
}

// New wires the routes. Packages are exported into output on request when
// output is not empty.
func New(store *seo.Store, transformer *production.Transformer, output string) *Server {
	s := &Server{
		e:           echo.New(),
		store:       store,
		transformer: transformer,
		exports:     production.NewExportsCache(output, 15*time.Minute),
		output:      output,
	}
	s.e.HideBanner = true
	s.e.HTTPErrorHandler = errorHandler
	s.e.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		Generator: uuid.NewString,
	}), middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: []string{"*"},
	}), middleware.GzipWithConfig(middleware.DefaultGzipConfig),
		middleware.BodyLimit("1M"), middleware.Logger(), middleware.Recover())
	s.routes()
	return s
}

func (s *Server) Handler() http.Handler {
	return s.e
}

// Start blocks until the server is closed by the Echo cleanup hook.
func (s *Server) Start(addr string) error {
	if s.output != "" {
		if _, err := s.exports.Get(true); err != nil {
			discord.Errorf("error listing packages: %v", err)
		}
	}
	cleanup.AddOnStopFunc(cleanup.Echo, func(_ os.Signal) {
		if err := s.e.Close(); err != nil {
			discord.Errorf("error closing server: %v", err)
		}
	})
	discord.Infof("Listening on %s", addr)
	err := s.e.Start(addr)
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

type transformRequest struct {
	production.Input
	Export bool `json:"export"`
}

type stylesResponse struct {
	Styles     []prompt.Style     `json:"styles"`
	Languages  []prompt.Language  `json:"languages"`
	Animations []prompt.Animation `json:"animations"`
	Characters []prompt.Character `json:"characters"`
	Settings   []string           `json:"settings"`
	Trending   []string           `json:"trending_hashtags"`
}

// transformResponse is sent instead of the bare package when extras are
// requested.
type transformResponse struct {
	Package *production.Package `json:"package"`
	Extras  *production.Extras  `json:"extras"`
}

func (s *Server) routes() {
	s.e.GET("/templates", func(c echo.Context) error {
		return c.JSON(http.StatusOK, s.store.All())
	})
	s.e.GET("/templates/:id", func(c echo.Context) error {
		id, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			return errs.Newf(errs.InvalidInput, "invalid template id %q", c.Param("id"))
		}
		t, err := s.store.Get(id)
		if err != nil {
			return err
		}
		return c.JSON(http.StatusOK, t)
	})
	s.e.GET("/styles", func(c echo.Context) error {
		return c.JSON(http.StatusOK, stylesResponse{
			Styles:     prompt.Styles(),
			Languages:  prompt.Languages(),
			Animations: prompt.Animations(),
			Characters: prompt.Characters(),
			Settings:   prompt.Settings(),
			Trending:   seo.Trending(),
		})
	})
	s.e.GET("/packages", func(c echo.Context) error {
		if s.output == "" {
			return c.JSON(http.StatusOK, []*production.Exported{})
		}
		b, err := s.exports.GetJSON(false)
		if err != nil {
			return err
		}
		return c.JSONBlob(http.StatusOK, b)
	})
	s.e.POST("/transform", func(c echo.Context) error {
		req := &transformRequest{}
		if err := c.Bind(req); err != nil {
			return errs.New(errs.InvalidInput, "invalid request body", err)
		}
		p, err := s.transformer.Transform(c.Request().Context(), req.Input)
		if err != nil {
			return err
		}
		if req.Export && s.output != "" {
			path, err := production.Export(s.output, p)
			if err != nil {
				return err
			}
			s.exports.Invalidate()
			c.Response().Header().Set(PackageFileHeader, path)
		}
		if withExtras, _ := strconv.ParseBool(c.QueryParam("extras")); withExtras {
			x, err := s.transformer.Extras(p, req.Input)
			if err != nil {
				return err
			}
			return c.JSON(http.StatusOK, transformResponse{Package: p, Extras: x})
		}
		b, err := p.Marshal()
		if err != nil {
			return err
		}
		return c.JSONBlob(http.StatusOK, b)
	})
}
