package handler

import (
	"net/http"

	"workflowhub/internal/middleware"

	"github.com/gin-gonic/gin"
)

type CommentHandler struct {
	comments CommentService
}

func NewCommentHandler(comments CommentService) *CommentHandler {
	return &CommentHandler{comments: comments}
}

// CommentRequest представляет новый комментарий
type CommentRequest struct {
	Content string `json:"content"`
}

// Create добавляет комментарий к задаче от имени текущего пользователя
// @Summary      Comment on a task
// @Tags         Comments
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id path string true "Task ID"
// @Param        request body CommentRequest true "Comment"
// @Success      201 {object} model.Comment
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Router       /tasks/{id}/comments [post]
func (h *CommentHandler) Create(c *gin.Context) {
	taskID, ok := paramID(c, "id")
	if !ok {
		return
	}

	var req CommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	comment, err := h.comments.AddComment(c.Request.Context(), middleware.ActorFrom(c), taskID, req.Content)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, comment)
}

// GetByTaskID возвращает комментарии задачи, новые первыми
// @Summary      List comments of a task
// @Tags         Comments
// @Security     BearerAuth
// @Produce      json
// @Param        id path string true "Task ID"
// @Success      200 {array} model.Comment
// @Failure      404 {object} ErrorResponse
// @Router       /tasks/{id}/comments [get]
func (h *CommentHandler) GetByTaskID(c *gin.Context) {
	taskID, ok := paramID(c, "id")
	if !ok {
		return
	}

	comments, err := h.comments.ListComments(c.Request.Context(), taskID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, comments)
}
