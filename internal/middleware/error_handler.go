package middleware

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/archoffice/bff-admin/pkg/errs"
	"github.com/archoffice/bff-admin/pkg/httpclient"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

type errorBody struct {
	Error errorMessage `json:"error"`
}

type errorMessage struct {
	Message string `json:"message"`
}

// ErrorHandler answers every error that escapes a handler. Tagged errors
// carrying a downstream response forward that response unchanged.
func ErrorHandler(logger zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		log := LoggerFrom(c, logger)

		if tagged, ok := errs.As(err); ok {
			cause := err
			if tagged.Err != nil {
				cause = tagged.Err
			}
			log.Error().Err(cause).Str("component", "ErrorHandler").Str("kind", tagged.Kind.String()).Msg(tagged.Message)

			if c.Response().Committed {
				return
			}

			var respErr *httpclient.ResponseError
			if errors.As(err, &respErr) && respErr.StatusCode != 0 && len(respErr.Body) > 0 {
				writeDownstreamResponse(c, log, respErr)
				return
			}

			status := tagged.Status
			if status == 0 {
				status = errs.ErrStatusInternalServer
			}
			write(c, log, status, errorBody{Error: errorMessage{Message: tagged.Message}})
			return
		}

		var he *echo.HTTPError
		if errors.As(err, &he) {
			if he.Internal != nil {
				log.Warn().Err(he.Internal).Str("component", "ErrorHandler").Int("status", he.Code).Msg("")
			} else {
				log.Warn().Err(err).Str("component", "ErrorHandler").Int("status", he.Code).Msg("")
			}

			if c.Response().Committed {
				return
			}

			message, ok := he.Message.(string)
			if !ok {
				message = http.StatusText(he.Code)
			}
			write(c, log, he.Code, echo.Map{"message": message})
			return
		}

		log.Error().Err(err).Str("component", "ErrorHandler").Msg(errs.MsgInternalServer)
		if c.Response().Committed {
			return
		}
		write(c, log, errs.ErrStatusInternalServer, echo.Map{"message": errs.MsgInternalServer})
	}
}

func writeDownstreamResponse(c echo.Context, log zerolog.Logger, respErr *httpclient.ResponseError) {
	if json.Valid(respErr.Body) {
		if err := c.JSONBlob(respErr.StatusCode, respErr.Body); err != nil {
			log.Error().Err(err).Str("component", "ErrorHandler").Msg("failed to write response")
		}
		return
	}

	write(c, log, respErr.StatusCode, string(respErr.Body))
}

func write(c echo.Context, log zerolog.Logger, status int, body interface{}) {
	var err error
	if c.Request().Method == http.MethodHead {
		err = c.NoContent(status)
	} else {
		err = c.JSON(status, body)
	}
	if err != nil {
		log.Error().Err(err).Str("component", "ErrorHandler").Msg("failed to write response")
	}
}
