package api

import (
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/getplume/plume/domain"
)

// parsePostQuery reads the post listing parameters. The second return value
// reports whether pagination was requested; without limit/offset the full
// ordered set is returned as a plain array.
func parsePostQuery(c echo.Context) (domain.PostQuery, bool, error) {
	var q domain.PostQuery
	paginated := false

	if raw := c.QueryParam("group"); raw != "" {
		gid, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			return q, false, errBadRequest("invalid group filter")
		}
		g := uint(gid)
		q.GroupID = &g
	}
	q.Search = c.QueryParam("search")

	if raw := c.QueryParam("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit < 0 {
			return q, false, errBadRequest("invalid limit")
		}
		q.Limit = &limit
		paginated = true
	}
	if raw := c.QueryParam("offset"); raw != "" {
		offset, err := strconv.Atoi(raw)
		if err != nil || offset < 0 {
			return q, false, errBadRequest("invalid offset")
		}
		q.Offset = &offset
		paginated = true
	}

	return q, paginated, nil
}
