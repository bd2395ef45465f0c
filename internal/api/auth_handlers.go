package api

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/yourname/dreamcatcher/internal"
	"github.com/yourname/dreamcatcher/internal/service"
)

func Register(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req service.RegisterRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			HandleError(c, app.Logger(), err, 400, "Invalid JSON")
			return
		}

		user, err := service.Register(c.Request.Context(), app.UserRepo(), &req)
		if err != nil {
			HandleError(c, app.Logger(), err, 500, "Failed to register user")
			return
		}
		HandleCreated(c, app.Logger(), user)
	}
}

func LoginJSON(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req service.LoginRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			HandleError(c, app.Logger(), err, 400, "Invalid JSON")
			return
		}
		login(c, app, &req)
	}
}

// LoginForm accepts the OAuth2 password form (username, password).
func LoginForm(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req service.LoginRequest
		if err := c.ShouldBind(&req); err != nil {
			HandleError(c, app.Logger(), err, 400, "Invalid form")
			return
		}
		login(c, app, &req)
	}
}

func login(c *gin.Context, app App, req *service.LoginRequest) {
	token, err := service.Login(c.Request.Context(), app.UserRepo(), app.Tokens(), req)
	if errors.Is(err, internal.ErrUnauthorized) {
		HandleError(c, app.Logger(), err, 401, "Incorrect email or password")
		return
	}
	if err != nil {
		HandleError(c, app.Logger(), err, 500, "Failed to log in")
		return
	}
	HandleSuccess(c, app.Logger(), token, nil)
}

func Me(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		HandleSuccess(c, app.Logger(), currentUser(c), nil)
	}
}
