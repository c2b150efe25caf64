package handlers

import (
	"net/http"

	"blogapi/internal/services"

	"github.com/gin-gonic/gin"
)

type VoteRequest struct {
	PostID uint `json:"post_id" binding:"required"`
	// 1 adds a vote, 0 retracts it.
	Dir *int `json:"dir" binding:"required,oneof=0 1"`
}

func (h *Handler) Vote(c *gin.Context) {
	var req VoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user := currentUser(c)
	dir := services.Direction(*req.Dir)
	if err := h.voteService.Apply(c.Request.Context(), req.PostID, user, dir); err != nil {
		h.respondError(c, postError(err, req.PostID))
		return
	}

	action, message := services.ActionVoteAdd, "Successfully added Vote"
	if dir == services.DirectionDown {
		action, message = services.ActionVoteRemove, "Successfully deleted Vote"
	}
	h.auditService.LogAction(&user.ID, action, idString(req.PostID), nil, c.ClientIP())

	c.JSON(http.StatusCreated, gin.H{"message": message})
}
