// Package user maps the HTTP surface of the user resource onto the
// application service.
package user

import (
	"net/http"
	"strconv"

	"github.com/nesmy/users-api/api/response"
	userapp "github.com/nesmy/users-api/application/user"
	userdomain "github.com/nesmy/users-api/domain/user"
	"github.com/nesmy/users-api/pkg/apierr"

	"github.com/gin-gonic/gin"
)

// DataDTO is the request envelope: {"data": {...}}.
type DataDTO struct {
	Data *userdomain.User `json:"data"`
}

// Controller handles the /users routes.
type Controller struct {
	userService *userapp.Service
}

// NewController creates the user controller.
func NewController(userService *userapp.Service) *Controller {
	return &Controller{userService: userService}
}

// RegisterRoutes registers the user routes on the group.
func (c *Controller) RegisterRoutes(router *gin.RouterGroup) {
	users := router.Group("/users")
	{
		users.POST("", c.CreateUser)
		users.GET("", c.FindByBirthDateBetween)
		users.GET("/:id", c.GetUser)
		users.PUT("/:id", c.UpdateUser)
		users.PATCH("/:id", c.PatchUser)
		users.DELETE("/:id", c.DeleteUser)
	}
}

// CreateUser handles POST /users.
func (c *Controller) CreateUser(ctx *gin.Context) {
	payload, ok := bindPayload(ctx)
	if !ok {
		return
	}

	created, err := c.userService.Create(ctx.Request.Context(), payload)
	if err != nil {
		response.HandleError(ctx, err)
		return
	}
	response.Data(ctx, http.StatusCreated, created)
}

// GetUser handles GET /users/:id. Absence at the service layer becomes a 404
// here; the service itself treats it as a valid result.
func (c *Controller) GetUser(ctx *gin.Context) {
	id, ok := pathID(ctx)
	if !ok {
		return
	}

	u, err := c.userService.FindByID(ctx.Request.Context(), id)
	if err != nil {
		response.HandleError(ctx, err)
		return
	}
	if u == nil {
		response.HandleError(ctx, apierr.RecordNotFound())
		return
	}
	response.Data(ctx, http.StatusOK, u)
}

// UpdateUser handles PUT /users/:id (full replace).
func (c *Controller) UpdateUser(ctx *gin.Context) {
	id, ok := pathID(ctx)
	if !ok {
		return
	}
	payload, ok := bindPayload(ctx)
	if !ok {
		return
	}

	updated, err := c.userService.Update(ctx.Request.Context(), id, payload)
	if err != nil {
		response.HandleError(ctx, err)
		return
	}
	response.Data(ctx, http.StatusOK, updated)
}

// PatchUser handles PATCH /users/:id (partial update).
func (c *Controller) PatchUser(ctx *gin.Context) {
	id, ok := pathID(ctx)
	if !ok {
		return
	}
	payload, ok := bindPayload(ctx)
	if !ok {
		return
	}

	patched, err := c.userService.Patch(ctx.Request.Context(), id, payload)
	if err != nil {
		response.HandleError(ctx, err)
		return
	}
	response.Data(ctx, http.StatusOK, patched)
}

// DeleteUser handles DELETE /users/:id.
func (c *Controller) DeleteUser(ctx *gin.Context) {
	id, ok := pathID(ctx)
	if !ok {
		return
	}

	deleted, err := c.userService.DeleteByID(ctx.Request.Context(), id)
	if err != nil {
		response.HandleError(ctx, err)
		return
	}
	if !deleted {
		response.HandleError(ctx, apierr.RecordNotFound())
		return
	}
	response.Text(ctx, http.StatusOK, "User was successfully deleted.")
}

// FindByBirthDateBetween handles GET /users?startBirthDate=&endBirthDate=.
func (c *Controller) FindByBirthDateBetween(ctx *gin.Context) {
	start, ok := queryDate(ctx, "startBirthDate")
	if !ok {
		return
	}
	end, ok := queryDate(ctx, "endBirthDate")
	if !ok {
		return
	}

	users, err := c.userService.FindByBirthDateBetween(ctx.Request.Context(), start, end)
	if err != nil {
		response.HandleError(ctx, err)
		return
	}
	if users == nil {
		users = []*userdomain.User{}
	}
	response.Data(ctx, http.StatusOK, users)
}

// bindPayload decodes the {"data": ...} envelope. A missing data field
// behaves as an empty payload so the service reports it uniformly.
func bindPayload(ctx *gin.Context) (*userdomain.User, bool) {
	var req DataDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.BadRequest(ctx, "", "Invalid request body.")
		return nil, false
	}
	if req.Data == nil {
		return &userdomain.User{}, true
	}
	return req.Data, true
}

func pathID(ctx *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		response.BadRequest(ctx, "userId", "User id must be an integer.")
		return 0, false
	}
	return id, true
}

func queryDate(ctx *gin.Context, name string) (userdomain.Date, bool) {
	value := ctx.Query(name)
	if value == "" {
		response.BadRequest(ctx, name, name+" is required.")
		return userdomain.Date{}, false
	}
	d, err := userdomain.ParseDate(value)
	if err != nil {
		response.BadRequest(ctx, name, name+" must be a date in format "+userdomain.DateLayout+".")
		return userdomain.Date{}, false
	}
	return d, true
}
