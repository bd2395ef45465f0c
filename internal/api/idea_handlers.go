package api

import (
	"github.com/gin-gonic/gin"
	"github.com/yourname/dreamcatcher/internal/service"
)

func PostIdea(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req service.IdeaRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			HandleError(c, app.Logger(), err, 400, "Invalid JSON")
			return
		}

		idea, err := service.CreateIdea(c.Request.Context(), app.IdeaRepo(), currentUser(c), &req)
		if err != nil {
			HandleError(c, app.Logger(), err, 500, "Failed to save idea")
			return
		}
		HandleCreated(c, app.Logger(), idea)
	}
}

func ListIdeas(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		var q service.IdeaQuery
		if err := c.ShouldBindQuery(&q); err != nil {
			HandleError(c, app.Logger(), err, 400, "Invalid query")
			return
		}

		ideas, err := service.ListIdeas(c.Request.Context(), app.IdeaRepo(), currentUser(c), &q)
		if err != nil {
			HandleError(c, app.Logger(), err, 500, "Failed to fetch ideas")
			return
		}
		HandleSuccess(c, app.Logger(), ideas, listMeta(q.Skip, q.Limit, len(ideas)))
	}
}

func GetIdea(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		idea, err := service.GetIdea(c.Request.Context(), app.IdeaRepo(), currentUser(c), c.Param("id"))
		if err != nil {
			HandleError(c, app.Logger(), err, 500, "Failed to fetch idea")
			return
		}
		HandleSuccess(c, app.Logger(), idea, nil)
	}
}

func PutIdea(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		var patch service.IdeaPatch
		if err := c.ShouldBindJSON(&patch); err != nil {
			HandleError(c, app.Logger(), err, 400, "Invalid JSON")
			return
		}

		idea, err := service.UpdateIdea(c.Request.Context(), app.IdeaRepo(), currentUser(c), c.Param("id"), &patch)
		if err != nil {
			HandleError(c, app.Logger(), err, 500, "Failed to update idea")
			return
		}
		HandleSuccess(c, app.Logger(), idea, nil)
	}
}

func DeleteIdea(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := service.DeleteIdea(c.Request.Context(), app.IdeaRepo(), currentUser(c), c.Param("id")); err != nil {
			HandleError(c, app.Logger(), err, 500, "Failed to delete idea")
			return
		}
		HandleNoContent(c, app.Logger())
	}
}
