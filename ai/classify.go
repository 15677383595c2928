package ai

import (
	"context"
	"errors"
	"fmt"
	"github.com/Odunjoy/NaijaStoic-props/errs"
	"net/http"
	"strings"
)

// classify maps a backend failure onto the error taxonomy by status code,
// falling back to the message text.
func classify(provider string, status int, err error) error {
	if err == nil {
		return nil
	}
	msg := fmt.Sprintf("%s request failed", provider)
	text := strings.ToLower(err.Error())
	quota := strings.Contains(text, "quota") || strings.Contains(text, "resource_exhausted") ||
		strings.Contains(text, "billing")

	switch {
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		return errs.New(errs.Transient, msg, err)
	case status == http.StatusUnauthorized, status == http.StatusForbidden:
		return errs.New(errs.Auth, msg+": check the API key", err)
	case status == http.StatusTooManyRequests && quota:
		return errs.New(errs.Quota, msg+": quota exhausted", err)
	case status == http.StatusTooManyRequests, status == http.StatusRequestTimeout, status >= 500:
		return errs.New(errs.Transient, msg, err)
	case status == http.StatusBadRequest && strings.Contains(text, "api key"):
		return errs.New(errs.Auth, msg+": check the API key", err)
	case status >= 400:
		return errs.New(errs.Configuration, msg, err)
	case quota:
		return errs.New(errs.Quota, msg+": quota exhausted", err)
	}
	// network failures carry no status
	return errs.New(errs.Transient, msg, err)
}
