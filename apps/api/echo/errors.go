package echoapi

import (
	"net/http"
	"strings"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/pkg/errors"

	"github.com/trezcool/elimu/core"
	"github.com/trezcool/elimu/core/catalog"
	"github.com/trezcool/elimu/core/progress"
	"github.com/trezcool/elimu/core/user"
)

var (
	errUnauthorized  = echo.NewHTTPError(http.StatusUnauthorized, "user not authenticated")
	errHttpForbidden = echo.NewHTTPError(http.StatusForbidden, "permission denied")
	errHttpNotFound  = echo.NewHTTPError(http.StatusNotFound, "not found")
)

// notFoundErrs are the domain sentinels that map to a 404.
var notFoundErrs = map[error]struct{}{
	user.ErrNotFound:           {},
	catalog.ErrSubjectNotFound: {},
	catalog.ErrLessonNotFound:  {},
	catalog.ErrQuizNotFound:    {},
	progress.ErrNotFound:       {},
}

// newAppHTTPErrorHandler returns a custom echo.HTTPErrorHandler that knows how to handle our errors.
// signalShutdown is called in order to gracefully shutdown the Server whenever a core.shutdown error is caught.
// Every error response carries the same `{"error": ...}` body shape.
func newAppHTTPErrorHandler(logger core.Logger, translator ut.Translator, signalShutdown func()) echo.HTTPErrorHandler {
	return func(err error, ctx echo.Context) {
		var code int
		var message interface{}

		cause := errors.Cause(err)
		if _, ok := notFoundErrs[cause]; ok {
			cause = echo.NewHTTPError(http.StatusNotFound, cause.Error())
		}

		switch origErr := cause.(type) {
		case *echo.HTTPError:
			if origErr == middleware.ErrJWTMissing {
				code = http.StatusUnauthorized
				message = origErr.Message
				break
			}
			if origErr.Internal != nil {
				if herr, ok := origErr.Internal.(*echo.HTTPError); ok {
					origErr = herr
				}
			}
			code = origErr.Code
			message = origErr.Message
		case validator.ValidationErrors:
			fldErrs := make([]string, 0, len(origErr))
			for _, vErr := range origErr {
				fldErrs = append(fldErrs, vErr.Field()+": "+vErr.Translate(translator))
			}
			code = http.StatusBadRequest
			message = strings.Join(fldErrs, "; ")
		case *core.ValidationError:
			if origErr.Fields != nil {
				fldErrs := make([]string, 0, len(origErr.Fields))
				for _, fErr := range origErr.Fields {
					fldErrs = append(fldErrs, fErr.Field+": "+fErr.Error)
				}
				message = strings.Join(fldErrs, "; ")
			} else {
				message = origErr.Error()
			}
			code = http.StatusBadRequest
		default: // any other error is a server error
			code = http.StatusInternalServerError
			msg := http.StatusText(http.StatusInternalServerError)
			message = msg

			var usr user.User
			if claims, cErr := getContextClaims(ctx); cErr == nil {
				usr.ID = claims.Subject
				usr.MobileNumber = claims.MobileNumber
			}
			logger.Error(msg, errors.Wrap(err, msg), usr)

			// shutting down...
			if core.IsShutdown(err) {
				signalShutdown()
			}
		}

		if m, ok := message.(string); ok {
			if ctx.Echo().Debug && code == http.StatusInternalServerError {
				m = err.Error()
			}
			message = echo.Map{"error": m}
		}

		// Send response
		if !ctx.Response().Committed {
			if ctx.Request().Method == http.MethodHead { // Issue #608
				err = ctx.NoContent(code)
			} else {
				err = ctx.JSON(code, message)
			}
			if err != nil {
				ctx.Echo().Logger.Error(err)
			}
		}
	}
}
