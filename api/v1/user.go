package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/taskforge-api/dto"
	"github.com/taskforge-api/services"
)

// UserController handles user endpoints. Passwords never appear in responses.
type UserController struct {
	userService *services.UserService
}

// NewUserController creates a new user controller
func NewUserController(userService *services.UserService) *UserController {
	return &UserController{userService: userService}
}

// RegisterRoutes registers user routes
func (c *UserController) RegisterRoutes(router *gin.RouterGroup) {
	users := router.Group("/users")
	{
		users.POST("", c.CreateUser)
		users.GET("", c.ListUsers)
		users.GET("/:id", c.GetUser)
		users.PATCH("/:id", c.UpdateUser)
		users.DELETE("/:id", c.DeleteUser)
	}
}

// CreateUser registers a user; a taken email answers 409
func (c *UserController) CreateUser(ctx *gin.Context) {
	var req dto.CreateUserRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		respondBindError(ctx, err)
		return
	}
	user, err := req.Parse()
	if err != nil {
		respondError(ctx, err)
		return
	}

	created, err := c.userService.Create(ctx.Request.Context(), user)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, created)
}

func (c *UserController) ListUsers(ctx *gin.Context) {
	var filter dto.UserFilter
	if err := ctx.ShouldBindQuery(&filter); err != nil {
		respondBindError(ctx, err)
		return
	}
	query, err := filter.Parse()
	if err != nil {
		respondError(ctx, err)
		return
	}

	page, err := c.userService.FindAll(ctx.Request.Context(), query)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, page)
}

func (c *UserController) GetUser(ctx *gin.Context) {
	user, err := c.userService.FindOne(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, user)
}

func (c *UserController) UpdateUser(ctx *gin.Context) {
	var req dto.UpdateUserRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		respondBindError(ctx, err)
		return
	}
	changes, err := req.Parse()
	if err != nil {
		respondError(ctx, err)
		return
	}

	user, err := c.userService.Update(ctx.Request.Context(), ctx.Param("id"), changes)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, user)
}

func (c *UserController) DeleteUser(ctx *gin.Context) {
	user, err := c.userService.Remove(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, user)
}
