// Package web defines common components for a server-rendered web application.
package web

import (
	"errors"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"
)

// ErrorCoder is implemented by domain errors that carry a stable,
// user-facing error code.
type ErrorCoder interface {
	error
	ErrorCode() string
}

// CodeUnknown is the error code surfaced for failures that have no
// user-correctable cause.
const CodeUnknown = "unknown"

// ErrorCode extracts the stable error code from err, falling back to
// CodeUnknown for infrastructure failures.
func ErrorCode(err error) string {
	var coder ErrorCoder
	if errors.As(err, &coder) {
		return coder.ErrorCode()
	}

	return CodeUnknown
}

// RedirectError sends the browser back to the originating form with the
// error code in the query string.
func RedirectError(gctx *gin.Context, route string, err error) {
	q := url.Values{}
	q.Set("error", ErrorCode(err))

	gctx.Redirect(http.StatusSeeOther, route+"?"+q.Encode())
}

// Redirect sends the browser to the given route.
func Redirect(gctx *gin.Context, route string) {
	gctx.Redirect(http.StatusSeeOther, route)
}
