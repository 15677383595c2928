package api

import (
	"errors"
	"github.com/Odunjoy/NaijaStoic-props/discord"
	"github.com/Odunjoy/NaijaStoic-props/errs"
	"github.com/labstack/echo/v4"
	"net/http"
)

type errorResponse struct {
	Error   errs.Kind `json:"error"`
	Message string    `json:"message"`
	Raw     string    `json:"raw,omitempty"`
}

var statusByKind = map[errs.Kind]int{
	errs.InvalidInput:      http.StatusBadRequest,
	errs.TemplateNotFound:  http.StatusNotFound,
	errs.Transient:         http.StatusServiceUnavailable,
	errs.Quota:             http.StatusTooManyRequests,
	errs.Auth:              http.StatusBadGateway,
	errs.MalformedResponse: http.StatusBadGateway,
	errs.Configuration:     http.StatusInternalServerError,
	errs.Internal:          http.StatusInternalServerError,
}

func errorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}
	kind := errs.KindOf(err)
	var he *echo.HTTPError
	if kind == "" && errors.As(err, &he) {
		if e := c.JSON(he.Code, he); e != nil {
			discord.Errorf("error writing response: %v", e)
		}
		return
	}
	if kind == "" {
		kind = errs.Internal
	}
	status, ok := statusByKind[kind]
	if !ok {
		status = http.StatusInternalServerError
	}
	if status >= 500 {
		discord.Errorf("%s %s: %v", c.Request().Method, c.Path(), err)
	}
	if e := c.JSON(status, errorResponse{Error: kind, Message: err.Error(), Raw: errs.Raw(err)}); e != nil {
		discord.Errorf("error writing response: %v", e)
	}
}
