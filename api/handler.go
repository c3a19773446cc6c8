// Package api exposes the HTTP surface of the Plume blogging platform over
// echo. Handlers stay thin: they parse the request, hand off to a resource
// service, and map domain errors onto HTTP status codes.
package api

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/getplume/plume/blob"
	"github.com/getplume/plume/identity"
	"github.com/getplume/plume/service"
)

type Handler struct {
	posts    *service.PostService
	comments *service.CommentService
	groups   *service.GroupService
	follows  *service.FollowService
	provider identity.Provider
	blobs    blob.Store
}

func NewHandler(
	posts *service.PostService,
	comments *service.CommentService,
	groups *service.GroupService,
	follows *service.FollowService,
	provider identity.Provider,
	blobs blob.Store,
) *Handler {
	return &Handler{
		posts:    posts,
		comments: comments,
		groups:   groups,
		follows:  follows,
		provider: provider,
		blobs:    blobs,
	}
}

func (h *Handler) RegisterRoutes(g *echo.Group) {
	g.Use(h.AuthMiddleware)

	g.GET("/posts", h.HandleListPosts)
	g.POST("/posts", h.HandleCreatePost)
	g.GET("/posts/:id", h.HandleGetPost)
	g.PUT("/posts/:id", h.HandleUpdatePost)
	g.PATCH("/posts/:id", h.HandleUpdatePost)
	g.DELETE("/posts/:id", h.HandleDeletePost)

	g.GET("/groups", h.HandleListGroups)
	g.GET("/groups/:id", h.HandleGetGroup)

	g.GET("/posts/:post_id/comments", h.HandleListComments)
	g.POST("/posts/:post_id/comments", h.HandleCreateComment)
	g.GET("/posts/:post_id/comments/:id", h.HandleGetComment)
	g.PUT("/posts/:post_id/comments/:id", h.HandleUpdateComment)
	g.PATCH("/posts/:post_id/comments/:id", h.HandleUpdateComment)
	g.DELETE("/posts/:post_id/comments/:id", h.HandleDeleteComment)

	g.GET("/follow", h.HandleListFollows)
	g.POST("/follow", h.HandleCreateFollow)
}

// AuthMiddleware resolves the bearer token, if any, to the acting user. A
// missing header means an anonymous actor; read-only endpoints accept that,
// write paths reject it further down with 401. A present but invalid token
// is rejected immediately.
func (h *Handler) AuthMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		header := c.Request().Header.Get("Authorization")
		if header == "" {
			return next(c)
		}

		token := strings.TrimPrefix(header, "Bearer ")
		user, err := h.provider.Resolve(c.Request().Context(), token)
		if err != nil {
			return h.Error(c, err)
		}

		c.Set("actor", user)
		return next(c)
	}
}

func actorFrom(c echo.Context) *identity.User {
	if u, ok := c.Get("actor").(*identity.User); ok {
		return u
	}
	return nil
}

// -- Posts --

func (h *Handler) HandleListPosts(c echo.Context) error {
	q, paginated, err := parsePostQuery(c)
	if err != nil {
		return h.Error(c, err)
	}

	posts, total, err := h.posts.List(c.Request().Context(), actorFrom(c), q)
	if err != nil {
		return h.Error(c, err)
	}

	if paginated {
		return c.JSON(http.StatusOK, map[string]any{
			"count":   total,
			"results": posts,
		})
	}
	return c.JSON(http.StatusOK, posts)
}

func (h *Handler) HandleCreatePost(c echo.Context) error {
	in, err := h.bindPostInput(c)
	if err != nil {
		return h.Error(c, err)
	}

	post, err := h.posts.Create(c.Request().Context(), actorFrom(c), *in)
	if err != nil {
		return h.Error(c, err)
	}
	return c.JSON(http.StatusCreated, post)
}

func (h *Handler) HandleGetPost(c echo.Context) error {
	id, err := uintParam(c, "id")
	if err != nil {
		return h.Error(c, err)
	}
	post, err := h.posts.Get(c.Request().Context(), actorFrom(c), id)
	if err != nil {
		return h.Error(c, err)
	}
	return c.JSON(http.StatusOK, post)
}

func (h *Handler) HandleUpdatePost(c echo.Context) error {
	id, err := uintParam(c, "id")
	if err != nil {
		return h.Error(c, err)
	}

	var body struct {
		Text  *string         `json:"text"`
		Group json.RawMessage `json:"group"`
	}
	if err := c.Bind(&body); err != nil {
		return h.BadRequest(c, "invalid request body")
	}

	in := service.UpdatePostInput{Text: body.Text}
	if len(body.Group) > 0 {
		if string(body.Group) == "null" {
			in.ClearGroup = true
		} else {
			var gid uint
			if err := json.Unmarshal(body.Group, &gid); err != nil {
				return h.BadRequest(c, "invalid group reference")
			}
			in.GroupID = &gid
		}
	}

	post, err := h.posts.Update(c.Request().Context(), actorFrom(c), id, in)
	if err != nil {
		return h.Error(c, err)
	}
	return c.JSON(http.StatusOK, post)
}

func (h *Handler) HandleDeletePost(c echo.Context) error {
	id, err := uintParam(c, "id")
	if err != nil {
		return h.Error(c, err)
	}
	if err := h.posts.Delete(c.Request().Context(), actorFrom(c), id); err != nil {
		return h.Error(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// bindPostInput accepts either a JSON body or a multipart form with an
// optional image upload. Uploaded files go to the blob store; only the
// returned reference enters the domain.
func (h *Handler) bindPostInput(c echo.Context) (*service.CreatePostInput, error) {
	var in service.CreatePostInput

	contentType := c.Request().Header.Get(echo.HeaderContentType)
	if strings.HasPrefix(contentType, echo.MIMEMultipartForm) {
		in.Text = c.FormValue("text")
		if raw := c.FormValue("group"); raw != "" {
			gid, err := strconv.ParseUint(raw, 10, 32)
			if err != nil {
				return nil, errBadRequest("invalid group reference")
			}
			g := uint(gid)
			in.GroupID = &g
		}
		if file, err := c.FormFile("image"); err == nil {
			src, err := file.Open()
			if err != nil {
				return nil, err
			}
			defer src.Close()
			ref, err := h.blobs.Save(c.Request().Context(), file.Filename, src)
			if err != nil {
				return nil, err
			}
			in.Image = &ref
		}
		return &in, nil
	}

	var body struct {
		Text  string `json:"text"`
		Group *uint  `json:"group"`
	}
	if err := c.Bind(&body); err != nil {
		return nil, errBadRequest("invalid request body")
	}
	in.Text = body.Text
	in.GroupID = body.Group
	return &in, nil
}

// -- Groups --

func (h *Handler) HandleListGroups(c echo.Context) error {
	groups, err := h.groups.List(c.Request().Context(), actorFrom(c))
	if err != nil {
		return h.Error(c, err)
	}
	return c.JSON(http.StatusOK, groups)
}

func (h *Handler) HandleGetGroup(c echo.Context) error {
	id, err := uintParam(c, "id")
	if err != nil {
		return h.Error(c, err)
	}
	group, err := h.groups.Get(c.Request().Context(), actorFrom(c), id)
	if err != nil {
		return h.Error(c, err)
	}
	return c.JSON(http.StatusOK, group)
}

// -- Comments --

func (h *Handler) HandleListComments(c echo.Context) error {
	postID, err := uintParam(c, "post_id")
	if err != nil {
		return h.Error(c, err)
	}
	comments, err := h.comments.List(c.Request().Context(), actorFrom(c), postID)
	if err != nil {
		return h.Error(c, err)
	}
	return c.JSON(http.StatusOK, comments)
}

func (h *Handler) HandleCreateComment(c echo.Context) error {
	postID, err := uintParam(c, "post_id")
	if err != nil {
		return h.Error(c, err)
	}

	// Only text is read from the body; author, parent post, and timestamp
	// come from the request context and path.
	var body struct {
		Text string `json:"text"`
	}
	if err := c.Bind(&body); err != nil {
		return h.BadRequest(c, "invalid request body")
	}

	comment, err := h.comments.Create(c.Request().Context(), actorFrom(c), postID, body.Text)
	if err != nil {
		return h.Error(c, err)
	}
	return c.JSON(http.StatusCreated, comment)
}

func (h *Handler) HandleGetComment(c echo.Context) error {
	postID, id, err := commentParams(c)
	if err != nil {
		return h.Error(c, err)
	}
	comment, err := h.comments.Get(c.Request().Context(), actorFrom(c), postID, id)
	if err != nil {
		return h.Error(c, err)
	}
	return c.JSON(http.StatusOK, comment)
}

func (h *Handler) HandleUpdateComment(c echo.Context) error {
	postID, id, err := commentParams(c)
	if err != nil {
		return h.Error(c, err)
	}

	var body struct {
		Text string `json:"text"`
	}
	if err := c.Bind(&body); err != nil {
		return h.BadRequest(c, "invalid request body")
	}

	comment, err := h.comments.Update(c.Request().Context(), actorFrom(c), postID, id, body.Text)
	if err != nil {
		return h.Error(c, err)
	}
	return c.JSON(http.StatusOK, comment)
}

func (h *Handler) HandleDeleteComment(c echo.Context) error {
	postID, id, err := commentParams(c)
	if err != nil {
		return h.Error(c, err)
	}
	if err := h.comments.Delete(c.Request().Context(), actorFrom(c), postID, id); err != nil {
		return h.Error(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// -- Follows --

func (h *Handler) HandleListFollows(c echo.Context) error {
	follows, err := h.follows.List(c.Request().Context(), actorFrom(c), c.QueryParam("search"))
	if err != nil {
		return h.Error(c, err)
	}
	return c.JSON(http.StatusOK, follows)
}

func (h *Handler) HandleCreateFollow(c echo.Context) error {
	var body struct {
		Following string `json:"following"`
	}
	if err := c.Bind(&body); err != nil {
		return h.BadRequest(c, "invalid request body")
	}

	follow, err := h.follows.Create(c.Request().Context(), actorFrom(c), body.Following)
	if err != nil {
		return h.Error(c, err)
	}
	return c.JSON(http.StatusCreated, follow)
}
