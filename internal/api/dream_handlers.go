package api

import (
	"github.com/gin-gonic/gin"
	"github.com/yourname/dreamcatcher/internal/service"
)

func PostDream(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := currentUser(c)

		var req service.DreamRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			HandleError(c, app.Logger(), err, 400, "Invalid JSON")
			return
		}

		dream, err := service.CreateDream(c.Request.Context(), app.DreamRepo(), user, &req)
		if err != nil {
			HandleError(c, app.Logger(), err, 500, "Failed to save dream")
			return
		}

		HandleCreated(c, app.Logger(), dream)
	}
}

func ListDreams(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := currentUser(c)

		var q service.DreamQuery
		if err := c.ShouldBindQuery(&q); err != nil {
			HandleError(c, app.Logger(), err, 400, "Invalid query")
			return
		}

		dreams, err := service.ListDreams(c.Request.Context(), app.DreamRepo(), user, &q)
		if err != nil {
			HandleError(c, app.Logger(), err, 500, "Failed to fetch dreams")
			return
		}

		HandleSuccess(c, app.Logger(), dreams, listMeta(q.Skip, q.Limit, len(dreams)))
	}
}

func GetDream(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		dream, err := service.GetDream(c.Request.Context(), app.DreamRepo(), currentUser(c), c.Param("id"))
		if err != nil {
			HandleError(c, app.Logger(), err, 500, "Failed to fetch dream")
			return
		}
		HandleSuccess(c, app.Logger(), dream, nil)
	}
}

func PutDream(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		var patch service.DreamPatch
		if err := c.ShouldBindJSON(&patch); err != nil {
			HandleError(c, app.Logger(), err, 400, "Invalid JSON")
			return
		}

		dream, err := service.UpdateDream(c.Request.Context(), app.DreamRepo(), currentUser(c), c.Param("id"), &patch)
		if err != nil {
			HandleError(c, app.Logger(), err, 500, "Failed to update dream")
			return
		}
		HandleSuccess(c, app.Logger(), dream, nil)
	}
}

func DeleteDream(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := service.DeleteDream(c.Request.Context(), app.DreamRepo(), currentUser(c), c.Param("id")); err != nil {
			HandleError(c, app.Logger(), err, 500, "Failed to delete dream")
			return
		}
		HandleNoContent(c, app.Logger())
	}
}

func InterpretDream(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		dream, err := service.InterpretDream(c.Request.Context(), app.DreamRepo(), app.Assistant(), currentUser(c), c.Param("id"))
		if err != nil {
			HandleError(c, app.Logger(), err, 500, "Failed to interpret dream")
			return
		}
		HandleSuccess(c, app.Logger(), dream, nil)
	}
}
