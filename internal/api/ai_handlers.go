package api

import (
	"github.com/gin-gonic/gin"
	"github.com/yourname/dreamcatcher/internal/service"
)

func GetAIStatus(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		HandleSuccess(c, app.Logger(), service.Status(app.Assistant()), nil)
	}
}

func GetInsights(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		insights, err := service.BuildInsights(c.Request.Context(), app.Repos(), app.Assistant(), currentUser(c))
		if err != nil {
			HandleError(c, app.Logger(), err, 500, "Failed to build insights")
			return
		}
		HandleSuccess(c, app.Logger(), insights, nil)
	}
}

func PostBrainstorm(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req service.BrainstormRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			HandleError(c, app.Logger(), err, 400, "Invalid JSON")
			return
		}

		result, err := service.Brainstorm(c.Request.Context(), app.Assistant(), &req)
		if err != nil {
			HandleError(c, app.Logger(), err, 500, "Failed to brainstorm")
			return
		}
		HandleSuccess(c, app.Logger(), result, nil)
	}
}
