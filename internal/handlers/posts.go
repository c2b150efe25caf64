package handlers

import (
	"net/http"

	"blogapi/internal/apperrors"
	"blogapi/internal/services"

	"github.com/gin-gonic/gin"
)

type PostRequest struct {
	Title   string `json:"title" binding:"required"`
	Content string `json:"content" binding:"required"`
	// Nil means published.
	Published *bool `json:"published"`
}

func (r PostRequest) input() services.PostInput {
	published := true
	if r.Published != nil {
		published = *r.Published
	}
	return services.PostInput{Title: r.Title, Content: r.Content, Published: published}
}

type ListPostsQuery struct {
	Limit  int    `form:"limit" binding:"min=0"`
	Skip   int    `form:"skip" binding:"min=0"`
	Search string `form:"search"`
}

func (h *Handler) ListPosts(c *gin.Context) {
	var q ListPostsQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	posts, err := h.postService.List(c.Request.Context(), services.PostFilter{
		Search: q.Search,
		Limit:  q.Limit,
		Skip:   q.Skip,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, posts)
}

func (h *Handler) GetPost(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	post, err := h.postService.Get(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, postError(err, id))
		return
	}

	c.JSON(http.StatusOK, post)
}

func (h *Handler) CreatePost(c *gin.Context) {
	var req PostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user := currentUser(c)
	post, err := h.postService.Create(c.Request.Context(), user, req.input())
	if err != nil {
		h.respondError(c, err)
		return
	}

	h.auditService.LogAction(&user.ID, services.ActionCreatePost, idString(post.ID), map[string]string{"title": post.Title}, c.ClientIP())

	c.JSON(http.StatusCreated, post)
}

func (h *Handler) UpdatePost(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req PostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user := currentUser(c)
	post, err := h.postService.Update(c.Request.Context(), id, user, req.input())
	if err != nil {
		h.respondError(c, postError(err, id))
		return
	}

	h.auditService.LogAction(&user.ID, services.ActionUpdatePost, idString(post.ID), nil, c.ClientIP())

	c.JSON(http.StatusOK, post)
}

func (h *Handler) DeletePost(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	user := currentUser(c)
	if err := h.postService.Delete(c.Request.Context(), id, user); err != nil {
		h.respondError(c, postError(err, id))
		return
	}

	h.auditService.LogAction(&user.ID, services.ActionDeletePost, idString(id), nil, c.ClientIP())

	c.Status(http.StatusNoContent)
}

// postError names the post in a bare not-found from the post store.
func postError(err error, id uint) error {
	if err == apperrors.ErrNotFound {
		return notFound("post", id)
	}
	return err
}
