package validator

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"
)

// UnknownFieldError reports a body key that no request field declares.
type UnknownFieldError struct {
	Field string
}

func (e *UnknownFieldError) Error() string {
	return fmt.Sprintf("unknown field %q", e.Field)
}

// JSONSerializer is echo's default serializer with a strict decoder: bodies
// carrying keys outside the request struct are rejected.
type JSONSerializer struct {
	echo.DefaultJSONSerializer
}

func (s JSONSerializer) Deserialize(c echo.Context, i interface{}) error {
	decoder := json.NewDecoder(c.Request().Body)
	decoder.DisallowUnknownFields()

	err := decoder.Decode(i)
	if err == nil {
		return nil
	}

	if field, ok := unknownField(err); ok {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error()).SetInternal(&UnknownFieldError{Field: field})
	}

	return echo.NewHTTPError(http.StatusBadRequest, err.Error()).SetInternal(err)
}

// unknownField extracts the key from the decoder's `json: unknown field "x"`
// error, which has no exported type.
func unknownField(err error) (string, bool) {
	quoted, ok := strings.CutPrefix(err.Error(), "json: unknown field ")
	if !ok {
		return "", false
	}

	field, unquoteErr := strconv.Unquote(quoted)
	if unquoteErr != nil {
		return "", false
	}

	return field, true
}
