package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/getplume/plume/domain"
	"github.com/getplume/plume/logger"
)

// Error maps a domain error onto the HTTP response. Unexpected errors are
// logged and reported as a generic 500 without leaking internals.
func (h *Handler) Error(c echo.Context, err error) error {
	var ve *domain.ValidationError
	switch {
	case errors.As(err, &ve):
		return c.JSON(http.StatusBadRequest, map[string]any{"detail": ve.Msg})
	case errors.Is(err, domain.ErrUnauthenticated):
		return c.JSON(http.StatusUnauthorized, map[string]any{"detail": domain.ErrUnauthenticated.Error()})
	case errors.Is(err, domain.ErrForbidden):
		return c.JSON(http.StatusForbidden, map[string]any{"detail": domain.ErrForbidden.Error()})
	case errors.Is(err, domain.ErrNotFound):
		return c.JSON(http.StatusNotFound, map[string]any{"detail": domain.ErrNotFound.Error()})
	default:
		if logger.Log != nil {
			logger.Log.Error("internal error",
				zap.String("path", c.Path()),
				zap.Error(err),
			)
		}
		return c.JSON(http.StatusInternalServerError, map[string]any{"detail": "internal server error"})
	}
}

func (h *Handler) BadRequest(c echo.Context, detail string) error {
	return c.JSON(http.StatusBadRequest, map[string]any{"detail": detail})
}

func errBadRequest(msg string) error {
	return domain.NewValidationError("%s", msg)
}

// uintParam parses a numeric path parameter. Non-numeric values never match
// an existing entity, so they surface as 404.
func uintParam(c echo.Context, name string) (uint, error) {
	raw := c.Param(name)
	val, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return 0, domain.ErrNotFound
	}
	return uint(val), nil
}

func commentParams(c echo.Context) (postID, id uint, err error) {
	postID, err = uintParam(c, "post_id")
	if err != nil {
		return 0, 0, err
	}
	id, err = uintParam(c, "id")
	if err != nil {
		return 0, 0, err
	}
	return postID, id, nil
}
