package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/taskforge-api/dto"
	"github.com/taskforge-api/services"
)

// CommentController handles comment endpoints
type CommentController struct {
	commentService *services.CommentService
}

// NewCommentController creates a new comment controller
func NewCommentController(commentService *services.CommentService) *CommentController {
	return &CommentController{commentService: commentService}
}

// RegisterRoutes registers comment routes
func (c *CommentController) RegisterRoutes(router *gin.RouterGroup) {
	comments := router.Group("/comments")
	{
		comments.POST("", c.CreateComment)
		comments.GET("", c.ListComments)
		comments.GET("/:id", c.GetComment)
		comments.PATCH("/:id", c.UpdateComment)
		comments.DELETE("/:id", c.DeleteComment)
	}
}

func (c *CommentController) CreateComment(ctx *gin.Context) {
	var req dto.CreateCommentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		respondBindError(ctx, err)
		return
	}
	comment, err := req.Parse()
	if err != nil {
		respondError(ctx, err)
		return
	}

	created, err := c.commentService.Create(ctx.Request.Context(), comment)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, created)
}

// ListComments returns every matching comment as a plain array
func (c *CommentController) ListComments(ctx *gin.Context) {
	var filter dto.CommentFilter
	if err := ctx.ShouldBindQuery(&filter); err != nil {
		respondBindError(ctx, err)
		return
	}

	comments, err := c.commentService.FindAll(ctx.Request.Context(), filter)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, comments)
}

func (c *CommentController) GetComment(ctx *gin.Context) {
	comment, err := c.commentService.FindOne(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, comment)
}

func (c *CommentController) UpdateComment(ctx *gin.Context) {
	var req dto.UpdateCommentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		respondBindError(ctx, err)
		return
	}
	changes, err := req.Parse()
	if err != nil {
		respondError(ctx, err)
		return
	}

	comment, err := c.commentService.Update(ctx.Request.Context(), ctx.Param("id"), changes)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, comment)
}

func (c *CommentController) DeleteComment(ctx *gin.Context) {
	comment, err := c.commentService.Remove(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, comment)
}
