package errors

import (
	stderrors "errors"
	"net/http"

	"github.com/labstack/echo/v4"
)

// MapToHTTPError translates core outcomes into the HTTP contract:
// validation and unknown-sender failures are 422, duplicate names 409,
// missing participants 404, anything else an opaque 500 carrying the
// cause as internal detail.
func MapToHTTPError(err error) *echo.HTTPError {
	switch {
	case stderrors.Is(err, ErrValidation), stderrors.Is(err, ErrUnknownSender):
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	case stderrors.Is(err, ErrNameTaken):
		return echo.NewHTTPError(http.StatusConflict, err.Error())
	case stderrors.Is(err, ErrParticipantNotFound):
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	default:
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error").SetInternal(err)
	}
}
